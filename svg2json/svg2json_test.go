package svg2json

import (
	"encoding/json"
	"testing"

	"github.com/jimwalker53/Image-to-SVG/svgdoc"
	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
)

func sampleDocument() string {
	sq := i2stypes.Path{
		Points: []i2stypes.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}},
		Closed: true,
	}
	layers := []i2stypes.Layer{
		{Name: "Color 1", Color: i2stypes.Black, Paths: []i2stypes.Path{sq}},
		{Name: "Color 2", Color: i2stypes.Color{R: 255}, Paths: []i2stypes.Path{sq, sq}},
	}
	s := i2stypes.Settings{
		Mode:   i2stypes.LineArt{},
		Target: i2stypes.TargetSize{Width: 6, Height: 6, Unit: i2stypes.UnitInches},
	}
	doc, _ := svgdoc.Assemble(layers, s, 40, 20)
	return doc
}

func TestParseDocument(t *testing.T) {
	d, err := ParseDocument(sampleDocument())
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if d.Width != "6inches" || d.Height != "3inches" {
		t.Errorf("Unexpected size %s x %s", d.Width, d.Height)
	}
	if len(d.ViewBox) != 4 || d.ViewBox[2] != 40 || d.ViewBox[3] != 20 {
		t.Errorf("Unexpected viewBox %v", d.ViewBox)
	}
	if len(d.Layers) != 2 {
		t.Fatalf("Expected 2 layers, got %d", len(d.Layers))
	}
	first := d.Layers[0]
	if first.ID != "layer-1" || first.Name != "Color 1" || first.Fill != "#000000" {
		t.Errorf("Unexpected first layer %+v", first)
	}
	if first.PathCount != 1 || first.PointCount != 4 {
		t.Errorf("Expected 1 path / 4 points, got %d / %d", first.PathCount, first.PointCount)
	}
	second := d.Layers[1]
	if second.Fill != "#ff0000" || second.PathCount != 2 || second.PointCount != 8 {
		t.Errorf("Unexpected second layer %+v", second)
	}
}

func TestParseDocumentJSON(t *testing.T) {
	data, err := ParseDocumentJSON(sampleDocument())
	if err != nil {
		t.Fatal(err)
	}
	var back Document
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(back.Layers) != 2 || back.Layers[1].Name != "Color 2" {
		t.Errorf("Unexpected round trip %+v", back)
	}
}

func TestParseDocumentInvalid(t *testing.T) {
	if _, err := ParseDocument("<svg"); err == nil {
		t.Error("Expected error for malformed document")
	}
}
