package color2svg

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/gotranspile/gotrace"
	"github.com/jimwalker53/Image-to-SVG/geometry"
	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
)

// Tracer 基于 gotrace（potrace）的描边器，无状态，可并发使用
type Tracer struct {
	// AlphaMax 拐角判定阈值，0 表示使用 gotrace 默认值
	AlphaMax float64
}

// New 默认参数的描边器
func New() *Tracer {
	return &Tracer{}
}

// Trace 把二值位图转成路径命令串。每个顶层轮廓一条命令串，它的内孔作为同一条命令串里的子路径；
// 内孔里的岛递归成新的命令串。坐标为源像素坐标系（y 向下）。
func (t *Tracer) Trace(mask *image.Gray, opts i2stypes.TraceOptions) (i2stypes.TraceResult, error) {
	sz := mask.Rect.Size()
	result := i2stypes.TraceResult{Bounds: image.Rect(0, 0, sz.X, sz.Y)}
	if sz.X == 0 || sz.Y == 0 {
		return result, nil
	}

	bm := gotrace.BitmapFromGray(mask, foreground(opts))

	conf := gotrace.DefaultConfig()
	conf.TurdSize = opts.MinFeatureSize
	if opts.CurveTolerance > 0 {
		conf.OptTolerance = opts.CurveTolerance
	}
	if t.AlphaMax > 0 {
		conf.AlphaMax = t.AlphaMax
	}

	paths, err := gotrace.Trace(bm, conf)
	if err != nil {
		return result, fmt.Errorf("%w: %v", i2stypes.ErrTrace, err)
	}

	result.Paths = renderTree(paths, float64(sz.Y), nil)
	return result, nil
}

// foreground 按极性和阈值判定前景像素
func foreground(opts i2stypes.TraceOptions) func(c color.Gray) bool {
	th := opts.Threshold
	if opts.Polarity == i2stypes.LightForeground {
		return func(c color.Gray) bool { return c.Y >= th }
	}
	return func(c color.Gray) bool { return c.Y < th }
}

// renderTree 遍历 potrace 的兄弟/子节点树
func renderTree(p *gotrace.Path, height float64, out []string) []string {
	for ; p != nil; p = p.Sibling {
		var b strings.Builder
		writeCurve(&b, &p.Curve)
		for q := p.Childlist; q != nil; q = q.Sibling {
			b.WriteByte(' ')
			writeCurve(&b, &q.Curve)
		}
		// potrace 的 y 轴向上
		out = append(out, geometry.FlipY(b.String(), height))
		for q := p.Childlist; q != nil; q = q.Sibling {
			out = renderTree(q.Childlist, height, out)
		}
	}
	return out
}

// writeCurve 起点是最后一段的终点；拐角段经过顶点 C[i][1]，曲线段以 C[i][0]、C[i][1] 为控制点
func writeCurve(b *strings.Builder, c *gotrace.Curve) {
	if c.N == 0 {
		return
	}
	writePoint(b, "M", c.C[c.N-1][2])
	for i := 0; i < c.N; i++ {
		seg := c.C[i]
		switch c.Tag[i] {
		case gotrace.POTRACE_CORNER:
			writePoint(b, " L", seg[1])
			writePoint(b, " L", seg[2])
		case gotrace.POTRACE_CURVETO:
			writePoint(b, " C", seg[0])
			writePoint(b, "", seg[1])
			writePoint(b, "", seg[2])
		}
	}
	b.WriteString(" Z")
}

func writePoint(b *strings.Builder, op string, p gotrace.DPoint) {
	b.WriteString(op)
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(p.X, 'f', 3, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(p.Y, 'f', 3, 64))
}
