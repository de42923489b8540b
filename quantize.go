package img2frame

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/wbrown/img2frame/imageutil"
)

// DefaultMaxIterations is the cap on k-means refinement rounds. On
// typical photographic input the loop converges well before the cap.
const DefaultMaxIterations = 24

// bytesPerPixel is the input pixel layout: R, G, B, A.
const bytesPerPixel = 4

// Quantizer reduces full-color RGBA pixel buffers to 16-color 4-bit
// frames. It encapsulates the k-means configuration, the random source
// used to seed the initial cluster assignment, and cache statistics,
// allowing multiple independent quantizers with different settings.
//
// A Quantizer is not safe for concurrent use; create one per goroutine.
type Quantizer struct {
	// Configuration options
	MaxIterations int
	UseColorCache bool

	// Random source for the initial cluster assignment
	rng *rand.Rand

	// Statistics
	lastIterations int
	cacheHits      int
	cacheMisses    int
}

// QuantizerOption is a functional option for configuring a Quantizer.
type QuantizerOption func(*Quantizer)

// NewQuantizer creates a new Quantizer with the given options.
// Default values: MaxIterations=24, UseColorCache=true, and a random
// source seeded from system entropy.
func NewQuantizer(opts ...QuantizerOption) *Quantizer {
	q := &Quantizer{
		MaxIterations: DefaultMaxIterations,
		UseColorCache: true,
		rng:           rand.New(rand.NewSource(entropySeed())),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// WithSeed seeds the cluster assignment random source with a fixed
// value, making quantization deterministic across runs.
func WithSeed(seed int64) QuantizerOption {
	return func(q *Quantizer) {
		q.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand sets the random source used for the initial cluster
// assignment.
func WithRand(rng *rand.Rand) QuantizerOption {
	return func(q *Quantizer) {
		q.rng = rng
	}
}

// WithMaxIterations sets the cap on k-means refinement rounds.
func WithMaxIterations(n int) QuantizerOption {
	return func(q *Quantizer) {
		q.MaxIterations = n
	}
}

// WithColorCache enables or disables the nearest-centroid color cache.
// Results are identical either way; the cache trades memory for fewer
// distance computations on images with repeated colors.
func WithColorCache(enabled bool) QuantizerOption {
	return func(q *Quantizer) {
		q.UseColorCache = enabled
	}
}

// entropySeed draws a seed from the system entropy source, falling
// back to the wall clock if the read fails.
func entropySeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// Quantize converts a flat RGBA pixel buffer (four bytes per pixel,
// alpha ignored) into a packed 4-bit index buffer of numPixels/2 bytes
// plus the 16-color palette the indices refer to. Pixel i occupies the
// high nibble of byte i/2 when i is even and the low nibble when odd.
// Palette slot 0 always comes out as pure black, taken over from
// whichever cluster was darkest by luminance, and the packed indices
// are relabeled to match.
//
// The input buffer is never modified. The clustering starts from a
// random assignment, so two calls agree only when the Quantizer was
// configured with a fixed seed.
func (q *Quantizer) Quantize(rgba []byte) ([]byte, Palette, error) {
	var pal Palette
	if len(rgba) == 0 {
		return nil, pal, ErrEmptyImage
	}
	if len(rgba)%bytesPerPixel != 0 {
		return nil, pal, fmt.Errorf("%w: %d bytes is not a whole number of RGBA pixels",
			ErrBufferSize, len(rgba))
	}
	numPixels := len(rgba) / bytesPerPixel
	if numPixels%2 != 0 {
		return nil, pal, fmt.Errorf("%w: got %d pixels", ErrOddPixelCount, numPixels)
	}

	// Initial assignment: every pixel gets a uniform random cluster.
	// Labels live in their own buffer, leaving the input intact.
	labels := make([]uint8, numPixels)
	for i := range labels {
		labels[i] = uint8(q.rng.Intn(PaletteSize))
	}

	// Lloyd's loop: recompute centroids from the current labels, then
	// reassign every pixel to its nearest centroid. The loop always
	// runs at least once and stops after the first pass that changes
	// nothing, or at the iteration cap. The palette keeps the
	// centroids of the last update step even when the cap interrupts
	// a still-changing run.
	maxIterations := q.MaxIterations
	if maxIterations < 1 {
		maxIterations = 1
	}
	iterations := 0
	changed := true
	for changed && iterations < maxIterations {
		updateCentroids(&pal, rgba, labels)
		changed = q.assignClusters(pal, rgba, labels)
		iterations++
	}
	q.lastIterations = iterations

	packed := packIndices(labels)
	forceDarkestToBlack(&pal, packed)
	return packed, pal, nil
}

// QuantizeImage flattens any image to RGBA and quantizes it, returning
// a Frame that carries the source geometry alongside the palette. The
// pixel count width*height must be even.
func (q *Quantizer) QuantizeImage(img image.Image) (*Frame, error) {
	rgba := imageutil.RGBAImageFromImage(img)
	packed, pal, err := q.Quantize(rgba.Pix)
	if err != nil {
		return nil, err
	}
	return &Frame{
		Pix:     packed,
		Rect:    image.Rect(0, 0, rgba.Width(), rgba.Height()),
		Palette: pal,
	}, nil
}

// Iterations returns the number of k-means rounds the last Quantize
// call ran before converging or hitting the cap.
func (q *Quantizer) Iterations() int {
	return q.lastIterations
}

// CacheStats returns color cache statistics accumulated since
// construction or the last ResetStats call.
func (q *Quantizer) CacheStats() (hits, misses int, hitRate float64) {
	total := q.cacheHits + q.cacheMisses
	if total == 0 {
		return 0, 0, 0
	}
	return q.cacheHits, q.cacheMisses, float64(q.cacheHits) / float64(total)
}

// ResetStats resets all statistics counters.
func (q *Quantizer) ResetStats() {
	q.cacheHits = 0
	q.cacheMisses = 0
	q.lastIterations = 0
}

// updateCentroids recomputes each cluster centroid as the integer mean
// of its member pixels. A cluster with no members keeps its previous
// centroid instead of collapsing to a default color, so it can only
// win pixels back on later passes if its old position still earns them.
func updateCentroids(pal *Palette, rgba []byte, labels []uint8) {
	var sums [PaletteSize][3]uint64
	var counts [PaletteSize]uint64

	for i, label := range labels {
		px := rgba[i*bytesPerPixel:]
		sums[label][0] += uint64(px[0])
		sums[label][1] += uint64(px[1])
		sums[label][2] += uint64(px[2])
		counts[label]++
	}

	for c := range pal {
		if counts[c] == 0 {
			continue
		}
		pal[c] = RGB{
			R: uint8(sums[c][0] / counts[c]),
			G: uint8(sums[c][1] / counts[c]),
			B: uint8(sums[c][2] / counts[c]),
		}
	}
}

// assignClusters reassigns every pixel to the centroid with the
// smallest squared Euclidean RGB distance, preferring the lowest
// cluster index on ties. It reports whether any assignment changed.
func (q *Quantizer) assignClusters(pal Palette, rgba []byte, labels []uint8) bool {
	var cache nearestCache
	if q.UseColorCache {
		cache = make(nearestCache)
	}

	changed := false
	for i := range labels {
		px := rgba[i*bytesPerPixel:]
		c := RGB{R: px[0], G: px[1], B: px[2]}

		var best uint8
		if cache != nil {
			var hit bool
			best, hit = cache.nearest(c, pal)
			if hit {
				q.cacheHits++
			} else {
				q.cacheMisses++
			}
		} else {
			best = nearestCentroid(c, pal)
		}

		if labels[i] != best {
			labels[i] = best
			changed = true
		}
	}
	return changed
}

// nearestCentroid returns the index of the palette entry closest to c
// by squared Euclidean distance. The comparison is strict, so the
// lowest index wins ties.
func nearestCentroid(c RGB, pal Palette) uint8 {
	best := 0
	bestDist := c.distanceSquared(pal[0])
	for i := 1; i < PaletteSize; i++ {
		if d := c.distanceSquared(pal[i]); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint8(best)
}

// packIndices packs 4-bit cluster labels two per byte: even pixel
// indices take the high nibble, odd pixel indices the low nibble.
func packIndices(labels []uint8) []byte {
	packed := make([]byte, len(labels)/2)
	for i, label := range labels {
		shift := uint(4 * (1 - i&1))
		packed[i/2] |= label << shift
	}
	return packed
}

// forceDarkestToBlack rewrites the palette so that slot 0 holds pure
// black in place of the darkest entry. When the darkest entry is not
// already slot 0 the two palette slots are exchanged, and every packed
// byte is relabeled through a 256-entry table that swaps the two index
// values in both nibbles independently, leaving all other indices
// untouched. Consumers read the indices directly, so the relabeling
// has to cover the whole buffer, not just the palette table.
func forceDarkestToBlack(pal *Palette, packed []byte) {
	darkest := pal.Darkest()
	pal[darkest] = RGB{}
	if darkest == 0 {
		return
	}
	pal[0], pal[darkest] = pal[darkest], pal[0]

	swap := func(idx byte) byte {
		switch idx {
		case 0:
			return byte(darkest)
		case byte(darkest):
			return 0
		}
		return idx
	}
	var lut [256]byte
	for b := 0; b < 256; b++ {
		lut[b] = swap(byte(b)>>4)<<4 | swap(byte(b)&0x0f)
	}
	for i, b := range packed {
		packed[i] = lut[b]
	}
}
