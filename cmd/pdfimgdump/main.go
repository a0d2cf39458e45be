// Command pdfimgdump decodes one JSON-described PDF image XObject and
// writes the resulting pixel buffer as a PNG, and optionally a BMP.
//
// Usage:
//
//	pdfimgdump -desc image.json -o out.png [-bmp out.bmp] [-rgba]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	stdimage "image"
	"image/png"

	"golang.org/x/image/bmp"

	pdfimg "github.com/cocosip/go-pdf-image/image"
	"github.com/cocosip/go-pdf-image/imagestream"
	"github.com/cocosip/go-pdf-image/nativejpeg"
	"github.com/cocosip/go-pdf-image/nativejpx"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "pdfimgdump: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("pdfimgdump", flag.ContinueOnError)
	descPath := fs.String("desc", "", "path to a JSON image descriptor (required)")
	outPath := fs.String("o", "", "output PNG path (default: <desc>.png)")
	bmpPath := fs.String("bmp", "", "also write a BMP preview to this path")
	forceRGBA := fs.Bool("rgba", false, "force RGBA output even without a mask")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *descPath == "" {
		fs.Usage()
		return fmt.Errorf("missing -desc")
	}

	stream, err := loadDescriptor(*descPath)
	if err != nil {
		return fmt.Errorf("loading descriptor: %w", err)
	}

	native := imagestream.NewRegistry()
	native.Register(nativejpeg.FilterName, nativejpeg.New())
	native.Register(nativejpx.FilterName, nativejpx.New())

	img, err := pdfimg.BuildImage(context.Background(), nil, stream, false, native)
	if err != nil {
		return fmt.Errorf("building image: %w", err)
	}

	desc, err := img.CreateImageData(*forceRGBA)
	if err != nil {
		return fmt.Errorf("decoding image data: %w", err)
	}

	out := *outPath
	if out == "" {
		out = trimExt(*descPath) + ".png"
	}
	if err := writePNG(out, desc); err != nil {
		return fmt.Errorf("writing PNG: %w", err)
	}
	fmt.Fprintf(os.Stderr, "%s: %s %dx%d -> %s\n", *descPath, desc.Kind, desc.Width, desc.Height, out)

	if *bmpPath != "" {
		if err := writeBMP(*bmpPath, desc); err != nil {
			return fmt.Errorf("writing BMP: %w", err)
		}
		fmt.Fprintf(os.Stderr, "%s: -> %s\n", *descPath, *bmpPath)
	}
	return nil
}

func writePNG(path string, d *pdfimg.Descriptor) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, toStdImage(d)); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func writeBMP(path string, d *pdfimg.Descriptor) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := bmp.Encode(f, toStdImage(d)); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// toStdImage adapts a Descriptor's packed buffer to the standard library's
// image.Image so both png and bmp encoders can consume it directly.
func toStdImage(d *pdfimg.Descriptor) stdimage.Image {
	rect := stdimage.Rect(0, 0, d.Width, d.Height)
	switch d.Kind {
	case pdfimg.Gray1BPP:
		gray := stdimage.NewGray(rect)
		rowBytes := (d.Width + 7) / 8
		for y := 0; y < d.Height; y++ {
			row := d.Data[y*rowBytes:]
			for x := 0; x < d.Width; x++ {
				bit := (row[x/8] >> uint(7-x%8)) & 1
				v := byte(0)
				if bit == 1 {
					v = 255
				}
				gray.Pix[y*gray.Stride+x] = v
			}
		}
		return gray
	case pdfimg.RGB24BPP:
		rgba := stdimage.NewNRGBA(rect)
		for y := 0; y < d.Height; y++ {
			srcRow := d.Data[y*d.Width*3:]
			dstRow := rgba.Pix[y*rgba.Stride:]
			for x := 0; x < d.Width; x++ {
				dstRow[x*4+0] = srcRow[x*3+0]
				dstRow[x*4+1] = srcRow[x*3+1]
				dstRow[x*4+2] = srcRow[x*3+2]
				dstRow[x*4+3] = 255
			}
		}
		return rgba
	default: // RGBA32BPP
		rgba := stdimage.NewNRGBA(rect)
		for y := 0; y < d.Height; y++ {
			srcRow := d.Data[y*d.Width*4:]
			dstRow := rgba.Pix[y*rgba.Stride:]
			copy(dstRow[:d.Width*4], srcRow[:d.Width*4])
		}
		return rgba
	}
}

func trimExt(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return path
}
