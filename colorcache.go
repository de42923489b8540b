package img2frame

// nearestCache memoizes nearest-centroid lookups for a single
// reassignment pass. Centroids move between iterations, so a cache
// never outlives the pass that filled it; within a pass the mapping
// from color to nearest centroid is exact, which keeps quantization
// results identical whether the cache is enabled or not. Images with
// large flat regions hit the same packed RGB key over and over and
// skip the 16-way distance scan.
type nearestCache map[uint32]uint8

// nearest returns the palette index closest to c, consulting the cache
// first. The boolean reports whether the lookup was a cache hit.
func (nc nearestCache) nearest(c RGB, pal Palette) (uint8, bool) {
	key := c.toUint32()
	if idx, ok := nc[key]; ok {
		return idx, true
	}
	idx := nearestCentroid(c, pal)
	nc[key] = idx
	return idx, false
}
