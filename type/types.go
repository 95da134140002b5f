package i2stypes

import (
	"fmt"
	"image"
	"time"
)

// Transparent 透明像素在分配表中的哨兵值
const Transparent = -1

// Color 设备 RGB 颜色
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// Hex 返回 #rrggbb 形式
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Luminance 0.299R+0.587G+0.114B
func (c Color) Luminance() float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// Point 源像素坐标系中的点
type Point struct {
	X, Y float64
}

// Path 一条轮廓；Holes 为同一元素内的内孔子路径
type Path struct {
	Points []Point
	Holes  [][]Point
	Closed bool
	Fill   Color
}

// PointCount 外轮廓与内孔的点数之和
func (p Path) PointCount() int {
	n := len(p.Points)
	for _, h := range p.Holes {
		n += len(h)
	}
	return n
}

// Layer 同一颜色的一组路径
type Layer struct {
	ID    string
	Name  string
	Color Color
	Paths []Path
}

// Palette 量化结果：颜色表 + 每个像素的颜色索引（透明像素为 Transparent）
type Palette struct {
	Colors      []Color
	Assignments []int
}

// Polarity 描边器把哪一侧当作前景
type Polarity int

const (
	// DarkForeground 低于阈值的像素为前景（黑=切割）
	DarkForeground Polarity = iota
	// LightForeground 高于等于阈值的像素为前景
	LightForeground
)

// TraceOptions 传给外部描边器的参数
type TraceOptions struct {
	MinFeatureSize int
	CurveTolerance float64
	Threshold      uint8
	Polarity       Polarity
}

// TraceResult 描边器输出：每个元素一条路径命令串，以及坐标包围盒
type TraceResult struct {
	Paths  []string
	Bounds image.Rectangle
}

// Stats 转换统计
type Stats struct {
	PathCount       int           `json:"pathCount"`
	PointCount      int           `json:"pointCount"`
	ProcessingTime  time.Duration `json:"processingTime"`
	OriginalWidth   int           `json:"originalWidth"`
	OriginalHeight  int           `json:"originalHeight"`
	ProcessedWidth  int           `json:"processedWidth"`
	ProcessedHeight int           `json:"processedHeight"`
	OutputWidth     float64       `json:"outputWidth"`
	OutputHeight    float64       `json:"outputHeight"`
	Unit            Unit          `json:"unit"`
	FileSize        int           `json:"fileSize"`
}

// Result 一次转换的结果
type Result struct {
	SVG           string   `json:"svg"`
	Layers        []Layer  `json:"-"`
	Stats         Stats    `json:"stats"`
	DroppedLayers []string `json:"droppedLayers,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// Empty 转换成功但没有产生任何图层
func (r *Result) Empty() bool {
	return len(r.Layers) == 0
}
