package image

import (
	"context"
	"testing"

	"github.com/cocosip/go-pdf-image/imagestream"
	"github.com/cocosip/go-pdf-image/pdfobj"
)

func pdfStream(dict pdfobj.Dictionary, data []byte) pdfobj.Stream {
	return pdfobj.Stream{Dict: dict, Reader: imagestream.NewMemoryStream(data, "", imagestream.Owned)}
}

func TestBuildImage_BasicRGB(t *testing.T) {
	dict := pdfobj.Dictionary{
		"Width": int64(1), "Height": int64(1),
		"BitsPerComponent": int64(8), "ColorSpace": pdfobj.Name("DeviceRGB"),
	}
	img, err := BuildImage(context.Background(), nil, pdfStream(dict, []byte{10, 20, 30}), false, nil)
	if err != nil {
		t.Fatalf("BuildImage: %v", err)
	}
	if img.Width() != 1 || img.Height() != 1 {
		t.Errorf("dims = %dx%d, want 1x1", img.Width(), img.Height())
	}
	if img.NumComps() != 3 {
		t.Errorf("NumComps = %d, want 3", img.NumComps())
	}
	if img.HasMask() {
		t.Error("image with no SMask/Mask must report HasMask()=false")
	}
}

func TestBuildImage_RejectsNonPositiveDimensions(t *testing.T) {
	dict := pdfobj.Dictionary{"Width": int64(0), "Height": int64(1), "BitsPerComponent": int64(8)}
	_, err := BuildImage(context.Background(), nil, pdfStream(dict, nil), false, nil)
	if err == nil {
		t.Fatal("expected FormatError for Width=0")
	}
	if _, ok := err.(*FormatError); !ok {
		t.Errorf("expected *FormatError, got %T", err)
	}
}

func TestBuildImage_ImageMaskDefaultsBPC1NoColorSpace(t *testing.T) {
	dict := pdfobj.Dictionary{"Width": int64(2), "Height": int64(2), "ImageMask": true}
	img, err := BuildImage(context.Background(), nil, pdfStream(dict, []byte{0x80, 0x40}), false, nil)
	if err != nil {
		t.Fatalf("BuildImage: %v", err)
	}
	if img.BitsPerComponent() != 1 {
		t.Errorf("BitsPerComponent = %d, want 1", img.BitsPerComponent())
	}
	if !img.IsImageMask() {
		t.Error("IsImageMask() must be true")
	}
}

func TestBuildImage_MissingBPCOnNonMaskFails(t *testing.T) {
	dict := pdfobj.Dictionary{"Width": int64(1), "Height": int64(1), "ColorSpace": pdfobj.Name("DeviceGray")}
	_, err := BuildImage(context.Background(), nil, pdfStream(dict, []byte{128}), false, nil)
	if err == nil {
		t.Fatal("expected FormatError: BitsPerComponent is mandatory on a non-mask image")
	}
	if _, ok := err.(*FormatError); !ok {
		t.Errorf("expected *FormatError, got %T", err)
	}
}

func TestBuildImage_ImageMaskMissingBPCDefaultsTo1(t *testing.T) {
	dict := pdfobj.Dictionary{"Width": int64(1), "Height": int64(1), "ImageMask": true}
	img, err := BuildImage(context.Background(), nil, pdfStream(dict, []byte{0x80}), false, nil)
	if err != nil {
		t.Fatalf("BuildImage: %v", err)
	}
	if img.BitsPerComponent() != 1 {
		t.Errorf("BitsPerComponent = %d, want 1", img.BitsPerComponent())
	}
}

func TestBuildImage_UnsupportedColorSpaceName(t *testing.T) {
	dict := pdfobj.Dictionary{
		"Width": int64(1), "Height": int64(1), "BitsPerComponent": int64(8),
		"ColorSpace": pdfobj.Name("Separation"),
	}
	_, err := BuildImage(context.Background(), nil, pdfStream(dict, []byte{1}), false, nil)
	if err == nil {
		t.Fatal("expected an error for an unsupported color space")
	}
}

func TestBuildImage_SMaskWiredAndExclusiveOfMask(t *testing.T) {
	smaskDict := pdfobj.Dictionary{
		"Width": int64(1), "Height": int64(1), "BitsPerComponent": int64(8),
	}
	smaskStream := &pdfobj.Stream{Dict: smaskDict, Reader: imagestream.NewMemoryStream([]byte{200}, "", imagestream.Owned)}

	dict := pdfobj.Dictionary{
		"Width": int64(1), "Height": int64(1), "BitsPerComponent": int64(8),
		"ColorSpace": pdfobj.Name("DeviceRGB"),
		"SMask":      smaskStream,
		// Mask must be ignored entirely because SMask is present.
		"Mask": pdfobj.Array{int64(0), int64(10), int64(0), int64(10), int64(0), int64(10)},
	}
	img, err := BuildImage(context.Background(), nil, pdfStream(dict, []byte{1, 2, 3}), false, nil)
	if err != nil {
		t.Fatalf("BuildImage: %v", err)
	}
	if !img.HasMask() {
		t.Fatal("expected HasMask()=true with SMask present")
	}
	if img.colorKey != nil {
		t.Error("Mask array must be ignored when SMask is present")
	}
	if img.smask == nil {
		t.Fatal("expected smask sub-image to be built")
	}
}

func TestBuildImage_ColorKeyMaskArray(t *testing.T) {
	dict := pdfobj.Dictionary{
		"Width": int64(1), "Height": int64(1), "BitsPerComponent": int64(8),
		"ColorSpace": pdfobj.Name("DeviceRGB"),
		"Mask":       pdfobj.Array{int64(0), int64(20), int64(0), int64(20), int64(0), int64(20)},
	}
	img, err := BuildImage(context.Background(), nil, pdfStream(dict, []byte{10, 10, 10}), false, nil)
	if err != nil {
		t.Fatalf("BuildImage: %v", err)
	}
	if len(img.colorKey) != 6 {
		t.Fatalf("colorKey len = %d, want 6", len(img.colorKey))
	}
}

func TestBuildImage_MaskStreamWithoutImageMaskIsDropped(t *testing.T) {
	maskDict := pdfobj.Dictionary{"Width": int64(1), "Height": int64(1), "BitsPerComponent": int64(1)}
	maskStream := &pdfobj.Stream{Dict: maskDict, Reader: imagestream.NewMemoryStream([]byte{0}, "", imagestream.Owned)}

	dict := pdfobj.Dictionary{
		"Width": int64(1), "Height": int64(1), "BitsPerComponent": int64(8),
		"ColorSpace": pdfobj.Name("DeviceRGB"),
		"Mask":       maskStream,
	}
	img, err := BuildImage(context.Background(), nil, pdfStream(dict, []byte{1, 2, 3}), false, nil)
	if err != nil {
		t.Fatalf("BuildImage: %v", err)
	}
	if img.HasMask() {
		t.Error("a Mask stream whose dictionary lacks ImageMask must be dropped, not wired in")
	}
}

func TestBuildImage_MaskStreamWithImageMaskIsWired(t *testing.T) {
	maskDict := pdfobj.Dictionary{"Width": int64(1), "Height": int64(1), "ImageMask": true}
	maskStream := &pdfobj.Stream{Dict: maskDict, Reader: imagestream.NewMemoryStream([]byte{0x80}, "", imagestream.Owned)}

	dict := pdfobj.Dictionary{
		"Width": int64(1), "Height": int64(1), "BitsPerComponent": int64(8),
		"ColorSpace": pdfobj.Name("DeviceRGB"),
		"Mask":       maskStream,
	}
	img, err := BuildImage(context.Background(), nil, pdfStream(dict, []byte{1, 2, 3}), false, nil)
	if err != nil {
		t.Fatalf("BuildImage: %v", err)
	}
	if !img.HasMask() {
		t.Fatal("expected HasMask()=true")
	}
	if img.maskImage == nil || !img.maskImage.IsImageMask() {
		t.Error("Mask stream sub-image must be built and flagged as an image mask")
	}
}

func TestBuildImage_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dict := pdfobj.Dictionary{"Width": int64(1), "Height": int64(1), "BitsPerComponent": int64(8)}
	_, err := BuildImage(ctx, nil, pdfStream(dict, nil), false, nil)
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
}
