package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cocosip/go-pdf-image/imagestream"
	"github.com/cocosip/go-pdf-image/pdfobj"
)

// colorSpaceJSON is the JSON shape of an image's ColorSpace entry. Name
// is one of DeviceGray/DeviceRGB/DeviceCMYK/Indexed; the Base/HiVal/Lookup
// fields are only meaningful when Name is Indexed.
type colorSpaceJSON struct {
	Name   string `json:"name"`
	Base   string `json:"base,omitempty"`
	HiVal  int    `json:"hival,omitempty"`
	Lookup string `json:"lookup,omitempty"` // base64-encoded table bytes
}

// streamJSON is the on-disk descriptor for one image or sub-image (SMask,
// Mask). Data is a path to the raw stream bytes, resolved relative to the
// descriptor file's own directory.
type streamJSON struct {
	Width            int              `json:"width"`
	Height           int              `json:"height"`
	BitsPerComponent int              `json:"bitsPerComponent,omitempty"`
	ColorSpace       *colorSpaceJSON  `json:"colorSpace,omitempty"`
	ImageMask        bool             `json:"imageMask,omitempty"`
	Decode           []float64        `json:"decode,omitempty"`
	Matte            []float64        `json:"matte,omitempty"`
	Filter           string           `json:"filter,omitempty"`
	Data             string           `json:"data"`
	SMask            *streamJSON      `json:"smask,omitempty"`
	Mask             *streamJSON      `json:"mask,omitempty"`
	ColorKey         []int64          `json:"colorKey,omitempty"`
}

// loadDescriptor reads path and builds the pdfobj.Stream that
// image.BuildImage expects, recursively building SMask/Mask sub-streams.
func loadDescriptor(path string) (pdfobj.Stream, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return pdfobj.Stream{}, err
	}
	var sj streamJSON
	if err := json.Unmarshal(raw, &sj); err != nil {
		return pdfobj.Stream{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return buildStream(&sj, filepath.Dir(path))
}

func buildStream(sj *streamJSON, baseDir string) (pdfobj.Stream, error) {
	dict, err := buildDictionary(sj, baseDir)
	if err != nil {
		return pdfobj.Stream{}, err
	}
	data, err := os.ReadFile(filepath.Join(baseDir, sj.Data))
	if err != nil {
		return pdfobj.Stream{}, fmt.Errorf("reading data file for %v: %w", sj, err)
	}
	reader := imagestream.NewMemoryStream(data, sj.Filter, imagestream.Borrowed)
	return pdfobj.Stream{Dict: dict, Reader: reader}, nil
}

func buildDictionary(sj *streamJSON, baseDir string) (pdfobj.Dictionary, error) {
	dict := pdfobj.Dictionary{
		"Width":  int64(sj.Width),
		"Height": int64(sj.Height),
	}
	if sj.ImageMask {
		dict["ImageMask"] = true
	}
	if sj.BitsPerComponent != 0 {
		dict["BitsPerComponent"] = int64(sj.BitsPerComponent)
	}
	if len(sj.Decode) > 0 {
		dict["Decode"] = floatArray(sj.Decode)
	}
	if len(sj.Matte) > 0 {
		dict["Matte"] = floatArray(sj.Matte)
	}
	if len(sj.ColorKey) > 0 {
		dict["Mask"] = intArray(sj.ColorKey)
	}
	if sj.ColorSpace != nil {
		cs, err := buildColorSpace(sj.ColorSpace)
		if err != nil {
			return nil, err
		}
		dict["ColorSpace"] = cs
	}
	if sj.SMask != nil {
		s, err := buildStream(sj.SMask, baseDir)
		if err != nil {
			return nil, fmt.Errorf("smask: %w", err)
		}
		dict["SMask"] = &s
	}
	if sj.Mask != nil {
		m, err := buildStream(sj.Mask, baseDir)
		if err != nil {
			return nil, fmt.Errorf("mask: %w", err)
		}
		dict["Mask"] = &m
	}
	return dict, nil
}

// buildColorSpace turns a colorSpaceJSON into the pdfobj.Object form
// image.BuildImage's resolveColorSpace expects: a bare Name, or an
// ["Indexed", base, hival, lookup] array.
func buildColorSpace(cs *colorSpaceJSON) (pdfobj.Object, error) {
	if cs.Name != "Indexed" {
		return pdfobj.Name(cs.Name), nil
	}
	lookup, err := base64.StdEncoding.DecodeString(cs.Lookup)
	if err != nil {
		return nil, fmt.Errorf("decoding Indexed lookup table: %w", err)
	}
	base := cs.Base
	if base == "" {
		base = "DeviceRGB"
	}
	return pdfobj.Array{
		pdfobj.Name("Indexed"),
		pdfobj.Name(base),
		int64(cs.HiVal),
		string(lookup),
	}, nil
}

func floatArray(vs []float64) pdfobj.Array {
	arr := make(pdfobj.Array, len(vs))
	for i, v := range vs {
		arr[i] = v
	}
	return arr
}

func intArray(vs []int64) pdfobj.Array {
	arr := make(pdfobj.Array, len(vs))
	for i, v := range vs {
		arr[i] = v
	}
	return arr
}
