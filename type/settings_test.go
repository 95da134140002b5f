package i2stypes

import (
	"errors"
	"testing"
)

func TestDefaultOptionsValidate(t *testing.T) {
	s, err := DefaultOptions().Settings()
	if err != nil {
		t.Fatalf("Default options should validate: %v", err)
	}
	sil, ok := s.Mode.(Silhouette)
	if !ok {
		t.Fatalf("Expected Silhouette mode, got %T", s.Mode)
	}
	if sil.Threshold != 128 || sil.CleanupActive() {
		t.Errorf("Unexpected silhouette defaults %+v", sil)
	}
	if s.Target.Width != 6 || s.Target.Height != 6 || s.Target.Unit != UnitInches {
		t.Errorf("Unexpected target %+v", s.Target)
	}
}

func TestOptionsModeConversion(t *testing.T) {
	o := DefaultOptions()
	o.Mode = "MultiColor"
	o.ColorLayers = 8
	o.Background = "Remove"
	o.Quantizer = "mediancut"
	o.Metric = "RGB"
	s, err := o.Settings()
	if err != nil {
		t.Fatal(err)
	}
	m, ok := s.Mode.(Multicolor)
	if !ok {
		t.Fatalf("Expected Multicolor, got %T", s.Mode)
	}
	if m.ColorLayers != 8 || m.Background != BackgroundRemove || m.Quantizer != QuantizerMedianCut || m.Metric != MetricRGB {
		t.Errorf("Unexpected multicolor settings %+v", m)
	}

	o.Mode = "lineart"
	s, err = o.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Mode.(LineArt); !ok {
		t.Errorf("Expected LineArt, got %T", s.Mode)
	}
}

func TestSettingsRejectOutOfRange(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*Options)
	}{
		{"detail", func(o *Options) { o.Detail = -1 }},
		{"detail", func(o *Options) { o.Detail = 101 }},
		{"smoothing", func(o *Options) { o.Smoothing = 101 }},
		{"unit", func(o *Options) { o.Unit = "cm" }},
		{"targetWidth", func(o *Options) { o.TargetWidth = 0 }},
		{"targetWidth", func(o *Options) { o.TargetWidth = 24.5 }},
		{"targetHeight", func(o *Options) { o.Unit = "mm"; o.TargetHeight = 700 }},
		{"threshold", func(o *Options) { o.Threshold = 256 }},
		{"minRegionSize", func(o *Options) { o.MinRegionSize = 11 }},
		{"erosionLevel", func(o *Options) { o.ErosionLevel = 6 }},
		{"colorLayers", func(o *Options) { o.Mode = ModeMulticolor; o.ColorLayers = 1 }},
		{"colorLayers", func(o *Options) { o.Mode = ModeMulticolor; o.ColorLayers = 17 }},
		{"minAreaThreshold", func(o *Options) { o.Mode = ModeMulticolor; o.MinAreaThreshold = 5.5 }},
		{"background", func(o *Options) { o.Mode = ModeMulticolor; o.Background = "blur" }},
		{"quantizer", func(o *Options) { o.Mode = ModeMulticolor; o.Quantizer = "octree" }},
		{"metric", func(o *Options) { o.Mode = ModeMulticolor; o.Metric = "hsv" }},
		{"mode", func(o *Options) { o.Mode = "sketch" }},
	}
	for _, tt := range tests {
		o := DefaultOptions()
		tt.mutate(&o)
		_, err := o.Settings()
		if !errors.Is(err, ErrInvalidSettings) {
			t.Errorf("%s: expected ErrInvalidSettings, got %v", tt.field, err)
			continue
		}
		var se *SettingsError
		if !errors.As(err, &se) || se.Field != tt.field {
			t.Errorf("Expected field %s, got %v", tt.field, err)
		}
	}
}

func TestSettingsBoundariesAccepted(t *testing.T) {
	o := DefaultOptions()
	o.Detail = 100
	o.Smoothing = 100
	o.TargetWidth = 24
	o.Threshold = 0
	o.ErosionLevel = 5
	if _, err := o.Settings(); err != nil {
		t.Errorf("Inclusive upper bounds should validate: %v", err)
	}

	o = DefaultOptions()
	o.Unit = "mm"
	o.TargetWidth = 609.6
	if _, err := o.Settings(); err != nil {
		t.Errorf("609.6mm should validate: %v", err)
	}
}

func TestSettingsNilMode(t *testing.T) {
	s := Settings{Detail: 50, Target: TargetSize{Width: 1, Height: 1, Unit: UnitMM}}
	var se *SettingsError
	if err := s.Validate(); !errors.As(err, &se) || se.Field != "mode" {
		t.Errorf("Expected mode error for nil mode, got %v", s.Validate())
	}
}

func TestColorHelpers(t *testing.T) {
	if got := (Color{R: 255, G: 16, B: 0}).Hex(); got != "#ff1000" {
		t.Errorf("Expected #ff1000, got %s", got)
	}
	if Black.Luminance() != 0 {
		t.Errorf("Expected black luminance 0, got %v", Black.Luminance())
	}
	if White.Luminance() < 254.9 {
		t.Errorf("Expected white luminance ~255, got %v", White.Luminance())
	}
	p := Path{Points: make([]Point, 4), Holes: [][]Point{make([]Point, 3)}}
	if p.PointCount() != 7 {
		t.Errorf("Expected 7 points, got %d", p.PointCount())
	}
}
