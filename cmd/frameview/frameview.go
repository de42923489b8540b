package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wbrown/img2frame"
	"github.com/wbrown/img2frame/imageutil"
)

func main() {
	inputFile := flag.String("input", "",
		"Path to the frame container file (required)")
	outputFile := flag.String("output", "",
		"Path to export the frame as an image")
	scale := flag.Int("scale", 1,
		"Integer upscale factor for the image export")
	ansi := flag.Bool("ansi", false,
		"Print a truecolor ANSI preview to stdout")
	showPalette := flag.Bool("palette", false,
		"Print the 16 palette entries")
	flag.Parse()

	if *inputFile == "" {
		fmt.Println("Please provide the frame container using the -input flag")
		flag.PrintDefaults()
		os.Exit(1)
	}

	frame, err := img2frame.ReadFrameFile(*inputFile)
	if err != nil {
		fmt.Printf("Error reading frame container: %v\n", err)
		os.Exit(1)
	}

	bounds := frame.Bounds()
	fmt.Printf("%s: %dx%d, %d pixels, %d packed bytes\n",
		*inputFile, bounds.Dx(), bounds.Dy(), frame.NumPixels(), len(frame.Pix))

	if *showPalette {
		for i, c := range frame.Palette {
			fmt.Printf("  %2d: %s\n", i, c.Hex())
		}
	}

	if *ansi {
		ansiArt := img2frame.RenderToANSI(frame)
		fmt.Print(img2frame.CompressANSI(ansiArt))
	}

	if *outputFile != "" {
		img := img2frame.FrameToImage(frame, *scale)
		if err := imageutil.SaveImage(img, *outputFile); err != nil {
			fmt.Printf("Error writing image: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Image written to %s\n", *outputFile)
	}
}
