package modes

import (
	"errors"
	"fmt"
	"image"

	"github.com/jimwalker53/Image-to-SVG/geometry"
	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
	"github.com/jimwalker53/Image-to-SVG/utils"
	"go.uber.org/zap"
)

// Tracer 把二值位图转成路径命令串的外部描边器
type Tracer interface {
	Trace(mask *image.Gray, opts i2stypes.TraceOptions) (i2stypes.TraceResult, error)
}

// Output 模式处理结果
type Output struct {
	Layers []i2stypes.Layer
	// Dropped 描边失败被丢弃的颜色（仅多色模式）
	Dropped []string
}

// Processor 模式处理器
type Processor struct {
	Tracer        Tracer
	Parallel      int
	SampleCap     int
	MaxIterations int
}

// New 使用给定描边器创建处理器
func New(tracer Tracer) *Processor {
	return &Processor{Tracer: tracer, Parallel: 4}
}

// Process 按模式分派，一次转换只走一个分支
func (p *Processor) Process(img *image.NRGBA, s i2stypes.Settings) (Output, error) {
	if p.Tracer == nil {
		return Output{}, errors.New("no tracer configured")
	}
	switch m := s.Mode.(type) {
	case i2stypes.Silhouette:
		return p.silhouette(img, m, s)
	case i2stypes.Multicolor:
		return p.multicolor(img, m, s)
	case i2stypes.LineArt:
		return p.lineArt(img, s)
	default:
		return Output{}, &i2stypes.SettingsError{Field: "mode", Reason: fmt.Sprintf("unsupported mode %T", s.Mode)}
	}
}

// traceError 保证描边错误可以被 errors.Is(err, ErrTrace) 识别
func traceError(mode string, err error) error {
	if errors.Is(err, i2stypes.ErrTrace) {
		return fmt.Errorf("%s: %w", mode, err)
	}
	return fmt.Errorf("%s: %w: %v", mode, i2stypes.ErrTrace, err)
}

// buildPaths 把描边结果展开成点序列：先平滑再简化，少于 3 个点的环丢弃
func buildPaths(res i2stypes.TraceResult, fill i2stypes.Color, smoothing int, tolerance float64) []i2stypes.Path {
	iterations := geometry.SmoothingIterations(smoothing)
	ring := func(pts []i2stypes.Point) []i2stypes.Point {
		pts = geometry.Smooth(pts, iterations)
		return geometry.SimplifyClosed(pts, tolerance)
	}

	paths := make([]i2stypes.Path, 0, len(res.Paths))
	for _, d := range res.Paths {
		subs := geometry.ExtractSubpaths(d)
		if len(subs) == 0 {
			continue
		}
		outer := ring(subs[0])
		if len(outer) < 3 {
			continue
		}
		p := i2stypes.Path{Points: outer, Closed: true, Fill: fill}
		for _, h := range subs[1:] {
			if hole := ring(h); len(hole) >= 3 {
				p.Holes = append(p.Holes, hole)
			}
		}
		paths = append(paths, p)
	}
	return paths
}

func layerID(n int) string {
	return fmt.Sprintf("layer-%d", n)
}

func logLayer(mode string, layer i2stypes.Layer) {
	utils.Logger.Debug("layer traced",
		zap.String("mode", mode),
		zap.String("layer", layer.Name),
		zap.String("color", layer.Color.Hex()),
		zap.Int("paths", len(layer.Paths)),
		zap.Int("points", geometry.CountPoints(layer.Paths)))
}
