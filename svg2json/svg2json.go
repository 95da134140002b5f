package svg2json

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/jimwalker53/Image-to-SVG/geometry"
	"github.com/rustyoz/svg"
)

// Layer 一个 <g> 图层的摘要
type Layer struct {
	ID         string   `json:"id"`
	Name       string   `json:"name,omitempty"`
	Fill       string   `json:"fill"`
	PathCount  int      `json:"pathCount"`
	PointCount int      `json:"pointCount"`
	Paths      []string `json:"paths"`
}

// Document 文档摘要
type Document struct {
	Width   string    `json:"width"`
	Height  string    `json:"height"`
	ViewBox []float64 `json:"viewBox"`
	Layers  []Layer   `json:"layers"`
}

// ParseDocument 把生成的 SVG 文档解析回图层摘要
func ParseDocument(doc string) (*Document, error) {
	parsed, err := svg.ParseSvg(doc, "document", 1.0)
	if err != nil {
		return nil, err
	}
	viewBox, err := parsed.ViewBoxValues()
	if err != nil {
		return nil, fmt.Errorf("invalid viewBox %q: %w", parsed.ViewBox, err)
	}

	names := extractLayerNames(doc)
	out := &Document{
		Width:   parsed.Width,
		Height:  parsed.Height,
		ViewBox: viewBox,
		Layers:  make([]Layer, 0, len(parsed.Groups)),
	}
	for _, g := range parsed.Groups {
		layer := Layer{ID: g.ID, Name: names[g.ID], Paths: []string{}}
		for _, e := range g.Elements {
			p, ok := e.(*svg.Path)
			if !ok {
				continue
			}
			if layer.Fill == "" && p.Fill != nil {
				layer.Fill = *p.Fill
			}
			layer.Paths = append(layer.Paths, p.D)
			layer.PointCount += len(geometry.ExtractPoints(p.D))
		}
		layer.PathCount = len(layer.Paths)
		out.Layers = append(out.Layers, layer)
	}
	return out, nil
}

// ParseDocumentJSON 返回缩进后的 JSON
func ParseDocumentJSON(doc string) ([]byte, error) {
	d, err := ParseDocument(doc)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(d, "", "  ")
}

// extractLayerNames 从 SVG 字符串中提取所有 <g> 的 id -> data-name
func extractLayerNames(doc string) map[string]string {
	type Group struct {
		ID   string `xml:"id,attr"`
		Name string `xml:"data-name,attr"`
	}

	type SVG struct {
		Groups []Group `xml:"g"`
	}

	var s SVG
	if err := xml.NewDecoder(strings.NewReader(doc)).Decode(&s); err != nil {
		return nil
	}

	names := make(map[string]string, len(s.Groups))
	for _, g := range s.Groups {
		names[g.ID] = g.Name
	}
	return names
}
