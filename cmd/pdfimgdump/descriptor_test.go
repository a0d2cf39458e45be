package main

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/cocosip/go-pdf-image/pdfobj"
)

func TestBuildDictionary_DeviceRGB(t *testing.T) {
	sj := &streamJSON{
		Width: 2, Height: 1, BitsPerComponent: 8,
		ColorSpace: &colorSpaceJSON{Name: "DeviceRGB"},
		Decode:     []float64{0, 1, 0, 1, 0, 1},
	}
	dict, err := buildDictionary(sj, t.TempDir())
	if err != nil {
		t.Fatalf("buildDictionary: %v", err)
	}
	if w, ok := dict.GetInt("Width"); !ok || w != 2 {
		t.Errorf("Width = %v, %v", w, ok)
	}
	if name, ok := dict.GetName("ColorSpace"); !ok || name != "DeviceRGB" {
		t.Errorf("ColorSpace = %v, %v", name, ok)
	}
	if arr, ok := dict.GetFloatArray("Decode"); !ok || len(arr) != 6 {
		t.Errorf("Decode = %v, %v", arr, ok)
	}
}

func TestBuildDictionary_Indexed(t *testing.T) {
	lookup := base64.StdEncoding.EncodeToString([]byte{255, 0, 0, 0, 255, 0})
	sj := &streamJSON{
		Width: 1, Height: 1, BitsPerComponent: 8,
		ColorSpace: &colorSpaceJSON{Name: "Indexed", Base: "DeviceRGB", HiVal: 1, Lookup: lookup},
	}
	dict, err := buildDictionary(sj, t.TempDir())
	if err != nil {
		t.Fatalf("buildDictionary: %v", err)
	}
	arr, ok := dict.GetArray("ColorSpace")
	if !ok || len(arr) != 4 {
		t.Fatalf("ColorSpace array = %v, %v", arr, ok)
	}
	if name, _ := arr[0].(pdfobj.Name); name != "Indexed" {
		t.Errorf("arr[0] = %v, want Indexed", arr[0])
	}
	if table, _ := arr[3].(string); len(table) != 6 {
		t.Errorf("lookup table len = %d, want 6", len(table))
	}
}

func TestBuildDictionary_ImageMaskHasNoBPCEntry(t *testing.T) {
	sj := &streamJSON{Width: 1, Height: 1, ImageMask: true}
	dict, err := buildDictionary(sj, t.TempDir())
	if err != nil {
		t.Fatalf("buildDictionary: %v", err)
	}
	if _, ok := dict.Get("BitsPerComponent"); ok {
		t.Error("BitsPerComponent must be absent when the JSON omits it, letting the image factory default it")
	}
	if b, ok := dict.GetBool("ImageMask"); !ok || !b {
		t.Error("ImageMask must be true")
	}
}

func TestLoadDescriptor_BuildsStreamFromDataFile(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "pixels.bin")
	if err := os.WriteFile(dataPath, []byte{10, 20, 30}, 0o644); err != nil {
		t.Fatal(err)
	}
	descPath := filepath.Join(dir, "img.json")
	descJSON := `{
		"width": 1, "height": 1, "bitsPerComponent": 8,
		"colorSpace": {"name": "DeviceRGB"},
		"data": "pixels.bin"
	}`
	if err := os.WriteFile(descPath, []byte(descJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	stream, err := loadDescriptor(descPath)
	if err != nil {
		t.Fatalf("loadDescriptor: %v", err)
	}
	if w, _ := stream.Dict.GetInt("Width"); w != 1 {
		t.Errorf("Width = %d, want 1", w)
	}
	es, ok := stream.Reader.(interface{ GetBytes(int) ([]byte, error) })
	if !ok {
		t.Fatal("Reader does not expose GetBytes")
	}
	got, err := es.GetBytes(-1)
	if err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	if len(got) != 3 || got[0] != 10 {
		t.Errorf("got %v, want [10 20 30]", got)
	}
}

func TestLoadDescriptor_NestedSMask(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "rgb.bin"), []byte{1, 2, 3}, 0o644)
	os.WriteFile(filepath.Join(dir, "alpha.bin"), []byte{200}, 0o644)
	descJSON := `{
		"width": 1, "height": 1, "bitsPerComponent": 8,
		"colorSpace": {"name": "DeviceRGB"},
		"data": "rgb.bin",
		"smask": {"width": 1, "height": 1, "bitsPerComponent": 8, "data": "alpha.bin"}
	}`
	descPath := filepath.Join(dir, "img.json")
	os.WriteFile(descPath, []byte(descJSON), 0o644)

	stream, err := loadDescriptor(descPath)
	if err != nil {
		t.Fatalf("loadDescriptor: %v", err)
	}
	smaskObj, has := stream.Dict.Get("SMask")
	if !has {
		t.Fatal("expected SMask entry")
	}
	smaskStream, ok := smaskObj.(*pdfobj.Stream)
	if !ok {
		t.Fatalf("SMask = %T, want *pdfobj.Stream", smaskObj)
	}
	if w, _ := smaskStream.Dict.GetInt("Width"); w != 1 {
		t.Errorf("SMask Width = %d, want 1", w)
	}
}

func TestTrimExt(t *testing.T) {
	cases := map[string]string{
		"foo.json":        "foo",
		"dir/bar.json":    "dir/bar",
		"noext":           "noext",
		"dir.with.dot/x":  "dir.with.dot/x",
	}
	for in, want := range cases {
		if got := trimExt(in); got != want {
			t.Errorf("trimExt(%q) = %q, want %q", in, got, want)
		}
	}
}
