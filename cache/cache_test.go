package cache

import (
	"bytes"
	"strings"
	"testing"
	"time"

	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
)

func TestKeyDependsOnDataAndOptions(t *testing.T) {
	opts := i2stypes.DefaultOptions()
	k1, err := Key([]byte("image"), opts)
	if err != nil {
		t.Fatal(err)
	}
	k2, _ := Key([]byte("image"), opts)
	if k1 != k2 {
		t.Errorf("Expected stable key, got %s and %s", k1, k2)
	}
	if !strings.HasPrefix(k1, keyPrefix) {
		t.Errorf("Expected prefix %s, got %s", keyPrefix, k1)
	}

	other := opts
	other.Detail = 80
	k3, _ := Key([]byte("image"), other)
	if k3 == k1 {
		t.Error("Different options should give a different key")
	}
	k4, _ := Key([]byte("other"), opts)
	if k4 == k1 {
		t.Error("Different image data should give a different key")
	}
}

func TestResultCodec(t *testing.T) {
	result := &i2stypes.Result{
		SVG: strings.Repeat(`<path d="M 0 0 L 10 0 L 10 10 Z" fill="#000000" />`, 50),
		Stats: i2stypes.Stats{
			PathCount:      50,
			PointCount:     150,
			ProcessingTime: 12 * time.Millisecond,
			OutputWidth:    6,
			OutputHeight:   3,
			Unit:           i2stypes.UnitInches,
		},
		DroppedLayers: []string{"#ff0000"},
		Warnings:      []string{"1 color layer(s) failed to trace and were dropped"},
	}

	data, err := encodeResult(result)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) >= len(result.SVG) {
		t.Errorf("Expected compressed payload smaller than %d, got %d", len(result.SVG), len(data))
	}

	got, err := decodeResult(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.SVG != result.SVG {
		t.Error("SVG changed after round trip")
	}
	if got.Stats != result.Stats {
		t.Errorf("Expected stats %+v, got %+v", result.Stats, got.Stats)
	}
	if len(got.DroppedLayers) != 1 || got.DroppedLayers[0] != "#ff0000" {
		t.Errorf("Unexpected dropped layers %v", got.DroppedLayers)
	}
}

func TestDecompressRejectsGarbage(t *testing.T) {
	if _, err := decompress([]byte("not zstd")); err == nil {
		t.Error("Expected error for non-zstd payload")
	}
	out, err := decompress(nil)
	if err != nil || !bytes.Equal(out, nil) {
		t.Errorf("Expected empty passthrough, got %v %v", out, err)
	}
}
