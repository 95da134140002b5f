package modes

import (
	"fmt"
	"image"

	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
)

// BoundingBoxTracer 测试用描边器：把前景像素的包围盒输出为一个矩形路径。
// 仅供测试使用，几何结果精确可预期；实际转换使用 color2svg.Tracer。
type BoundingBoxTracer struct {
	// FailWhen 返回 true 时该蒙版描边失败
	FailWhen func(mask *image.Gray) bool
}

func (t BoundingBoxTracer) Trace(mask *image.Gray, opts i2stypes.TraceOptions) (i2stypes.TraceResult, error) {
	b := mask.Bounds()
	res := i2stypes.TraceResult{Bounds: image.Rect(0, 0, b.Dx(), b.Dy())}
	if t.FailWhen != nil && t.FailWhen(mask) {
		return res, fmt.Errorf("%w: forced failure", i2stypes.ErrTrace)
	}

	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := mask.GrayAt(x, y).Y
			fg := v < opts.Threshold
			if opts.Polarity == i2stypes.LightForeground {
				fg = v >= opts.Threshold
			}
			if !fg {
				continue
			}
			minX, minY = min(minX, x), min(minY, y)
			maxX, maxY = max(maxX, x), max(maxY, y)
		}
	}
	if maxX < minX {
		return res, nil
	}
	x0, y0 := minX-b.Min.X, minY-b.Min.Y
	x1, y1 := maxX-b.Min.X+1, maxY-b.Min.Y+1
	res.Paths = []string{fmt.Sprintf("M %d %d L %d %d L %d %d L %d %d Z", x0, y0, x1, y0, x1, y1, x0, y1)}
	return res, nil
}
