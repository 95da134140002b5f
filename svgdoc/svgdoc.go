package svgdoc

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/jimwalker53/Image-to-SVG/geometry"
	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
)

// OutputSize 按源图宽高比修正目标尺寸：会造成变形的那一边由另一边重新计算
func OutputSize(target i2stypes.TargetSize, srcW, srcH int) (float64, float64) {
	w, h := target.Width, target.Height
	if srcW <= 0 || srcH <= 0 || w <= 0 || h <= 0 {
		return w, h
	}
	aspect := float64(srcW) / float64(srcH)
	if w/h > aspect {
		w = h * aspect
	} else {
		h = w / aspect
	}
	return w, h
}

// Assemble 生成带物理尺寸的 SVG 文档。viewBox 使用描边器的像素坐标，
// width/height 带单位，每个图层一个 <g>，图层内每条路径一个 <path>。
func Assemble(layers []i2stypes.Layer, s i2stypes.Settings, srcW, srcH int) (string, i2stypes.Stats) {
	outW, outH := OutputSize(s.Target, srcW, srcH)
	unit := string(s.Target.Unit)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startraw(
		fmt.Sprintf(`width="%s%s"`, formatDimension(outW), unit),
		fmt.Sprintf(`height="%s%s"`, formatDimension(outH), unit),
		fmt.Sprintf(`viewBox="0 0 %d %d"`, srcW, srcH),
	)

	stats := i2stypes.Stats{
		ProcessedWidth:  srcW,
		ProcessedHeight: srcH,
		OutputWidth:     outW,
		OutputHeight:    outH,
		Unit:            s.Target.Unit,
	}
	for i, layer := range layers {
		canvas.Group(
			fmt.Sprintf(`id="layer-%d"`, i+1),
			fmt.Sprintf(`data-name="%s"`, html.EscapeString(layer.Name)),
		)
		fill := fmt.Sprintf(`fill="%s"`, layer.Color.Hex())
		for _, p := range layer.Paths {
			canvas.Path(geometry.FormatPath(p), fill)
		}
		canvas.Gend()

		stats.PathCount += len(layer.Paths)
		stats.PointCount += geometry.CountPoints(layer.Paths)
	}
	canvas.End()

	doc := buf.String()
	stats.FileSize = len(doc)
	return doc, stats
}

// formatDimension 最多四位小数
func formatDimension(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
