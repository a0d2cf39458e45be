package image

import "testing"

func TestDownscaleConfig_ValidateDefaults(t *testing.T) {
	var cfg DownscaleConfig
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate on zero value: %v", err)
	}
	want := [3]int{5000, 10000, 15000}
	if cfg.Thresholds != want {
		t.Errorf("got %v, want %v", cfg.Thresholds, want)
	}
}

func TestDownscaleConfig_ValidateRejectsNonIncreasing(t *testing.T) {
	cfg := DownscaleConfig{Thresholds: [3]int{100, 100, 200}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-strictly-increasing thresholds")
	}
	cfg2 := DownscaleConfig{Thresholds: [3]int{0, 10, 20}}
	if err := cfg2.Validate(); err == nil {
		t.Fatal("expected error for zero first threshold")
	}
}

func TestDownscaleConfig_ValidateAcceptsCustom(t *testing.T) {
	cfg := DownscaleConfig{Thresholds: [3]int{1000, 2000, 3000}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.scaleBits(2500) != 2 {
		t.Errorf("scaleBits(2500) = %d, want 2", cfg.scaleBits(2500))
	}
}
