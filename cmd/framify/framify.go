package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/wbrown/img2frame"
	"github.com/wbrown/img2frame/imageutil"
)

func main() {
	inputFile := flag.String("input", "",
		"Path to the input image file (required)")
	outputFile := flag.String("output", "",
		"Path to save the output: .f4b writes a frame container, "+
			"image extensions write the palettized render")
	targetWidth := flag.Int("width", 0,
		"Resize to this width before quantizing (0 keeps the source size)")
	blurRadius := flag.Float64("blur", 0,
		"Gaussian blur radius applied before resizing (0 disables)")
	sharpen := flag.Bool("sharpen", false,
		"Apply an unsharp mask after resizing")
	grayscale := flag.Bool("gray", false,
		"Quantize the grayscale conversion of the input")
	seed := flag.Int64("seed", -1,
		"Seed for the cluster assignment (-1 uses system entropy)")
	iterations := flag.Int("iterations", img2frame.DefaultMaxIterations,
		"Maximum number of k-means iterations")
	noCache := flag.Bool("nocache", false,
		"Disable the nearest-centroid color cache")
	preview := flag.Bool("preview", false,
		"Print a truecolor ANSI preview to stdout")
	cardFile := flag.String("card", "",
		"Path to save a palette card PNG")
	fontPath := flag.String("font", "",
		"TTF font for palette card labels (unlabeled if empty)")
	cardCell := flag.Int("cardcell", 64,
		"Swatch size in pixels for the palette card")
	stats := flag.Bool("stats", false,
		"Print cache and round-trip error statistics")
	flag.Parse()

	if *inputFile == "" {
		fmt.Println("Please provide the image using the -input flag")
		flag.PrintDefaults()
		os.Exit(1)
	}

	img, err := imageutil.LoadImage(*inputFile)
	if err != nil {
		fmt.Printf("Error loading image: %v\n", err)
		os.Exit(1)
	}

	if *grayscale {
		img = imageutil.GrayscaleToRGBA(imageutil.ToGrayscale(img))
	}

	prepared := imageutil.PrepareForFrame(img, *targetWidth, imageutil.PrepareOptions{
		BlurRadius: *blurRadius,
		Sharpen:    *sharpen,
	})

	opts := []img2frame.QuantizerOption{
		img2frame.WithMaxIterations(*iterations),
	}
	if *seed >= 0 {
		opts = append(opts, img2frame.WithSeed(*seed))
	}
	if *noCache {
		opts = append(opts, img2frame.WithColorCache(false))
	}
	quantizer := img2frame.NewQuantizer(opts...)

	start := time.Now()
	frame, err := quantizer.QuantizeImage(prepared)
	if err != nil {
		fmt.Printf("Error quantizing image: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	bounds := frame.Bounds()
	fmt.Printf("Quantized %dx%d to 16 colors in %d iterations (%v)\n",
		bounds.Dx(), bounds.Dy(), quantizer.Iterations(), elapsed)

	if *outputFile != "" {
		if strings.HasSuffix(strings.ToLower(*outputFile), ".f4b") {
			if err := img2frame.WriteFrameFile(frame, *outputFile); err != nil {
				fmt.Printf("Error writing frame container: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Frame container written to %s\n", *outputFile)
		} else {
			rendered, err := frame.RGBA()
			if err != nil {
				fmt.Printf("Error rendering frame: %v\n", err)
				os.Exit(1)
			}
			if err := imageutil.SaveImage(rendered, *outputFile); err != nil {
				fmt.Printf("Error writing image: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Palettized render written to %s\n", *outputFile)
		}
	}

	if *cardFile != "" {
		var fontBitmaps *img2frame.FontBitmaps
		if *fontPath != "" {
			fontBitmaps, err = img2frame.LoadFontBitmaps(*fontPath)
			if err != nil {
				fmt.Printf("Error loading font: %v\n", err)
				// Continue with an unlabeled card
				fontBitmaps = nil
			}
		}
		card := img2frame.PaletteCard(frame.Palette, fontBitmaps, *cardCell)
		if err := imageutil.SavePNG(card, *cardFile); err != nil {
			fmt.Printf("Error writing palette card: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Palette card written to %s\n", *cardFile)
	}

	if *preview {
		ansiArt := img2frame.RenderToANSI(frame)
		fmt.Print(img2frame.CompressANSI(ansiArt))
	}

	if *stats {
		hits, misses, hitRate := quantizer.CacheStats()
		fmt.Printf("Color cache: %d hits, %d misses (%.1f%% hit rate)\n",
			hits, misses, hitRate*100)

		rendered, err := frame.RGBA()
		if err == nil {
			roundTrip := &imageutil.RGBAImage{RGBA: rendered}
			fmt.Printf("Round-trip MSE: %.2f\n",
				imageutil.CalculateMSE(prepared, roundTrip))
		}
	}
}
