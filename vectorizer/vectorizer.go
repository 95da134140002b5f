package vectorizer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/jimwalker53/Image-to-SVG/config"
	"github.com/jimwalker53/Image-to-SVG/imageutil"
	"github.com/jimwalker53/Image-to-SVG/modes"
	"github.com/jimwalker53/Image-to-SVG/svgdoc"
	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
	"github.com/jimwalker53/Image-to-SVG/utils"
	"go.uber.org/zap"
)

// Vectorizer 转换入口：解码缩放 -> 模式处理 -> 组装文档 -> 计时
type Vectorizer struct {
	decoder      imageutil.Decoder
	processor    *modes.Processor
	maxDimension int
}

// New 按配置创建转换器
func New(cfg config.VectorizeConfig, tracer modes.Tracer) *Vectorizer {
	p := modes.New(tracer)
	p.Parallel = cfg.Parallel
	p.SampleCap = cfg.SampleCap
	p.MaxIterations = cfg.MaxIterations

	maxDim := cfg.MaxDimension
	if maxDim <= 0 {
		maxDim = imageutil.DefaultMaxDimension
	}
	return &Vectorizer{
		decoder:      imageutil.Decoder{FFmpegFallback: cfg.FFmpegFallback},
		processor:    p,
		maxDimension: maxDim,
	}
}

// Convert 把编码后的图片转换为 SVG。设置在任何像素处理之前校验。
func (v *Vectorizer) Convert(ctx context.Context, data []byte, s i2stypes.Settings) (*i2stypes.Result, error) {
	start := time.Now()
	if err := s.Validate(); err != nil {
		return nil, err
	}

	img, origW, origH, err := v.decoder.DecodeAndResize(ctx, data, v.maxDimension)
	if err != nil {
		utils.Logger.Error("decode failed", zap.Int("bytes", len(data)), zap.Error(err))
		return nil, err
	}
	return v.run(img, origW, origH, s, start)
}

// ConvertImage 对已解码的图片执行转换
func (v *Vectorizer) ConvertImage(src image.Image, s i2stypes.Settings) (*i2stypes.Result, error) {
	start := time.Now()
	if err := s.Validate(); err != nil {
		return nil, err
	}

	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: zero-sized image", i2stypes.ErrDecode)
	}
	img := imageutil.ToNRGBA(src)
	if w, h := imageutil.FitWithin(b.Dx(), b.Dy(), v.maxDimension); w != b.Dx() || h != b.Dy() {
		img = imageutil.Resize(img, w, h, imageutil.InterpolationArea)
	}
	return v.run(img, b.Dx(), b.Dy(), s, start)
}

func (v *Vectorizer) run(img *image.NRGBA, origW, origH int, s i2stypes.Settings, start time.Time) (*i2stypes.Result, error) {
	b := img.Bounds()
	utils.Logger.Info("conversion started",
		zap.String("mode", s.Mode.Name()),
		zap.Int("width", b.Dx()), zap.Int("height", b.Dy()),
		zap.Int("detail", s.Detail), zap.Int("smoothing", s.Smoothing))

	out, err := v.processor.Process(img, s)
	if err != nil {
		utils.Logger.Error("conversion failed", zap.String("mode", s.Mode.Name()), zap.Error(err))
		return nil, err
	}

	doc, stats := svgdoc.Assemble(out.Layers, s, b.Dx(), b.Dy())
	stats.OriginalWidth = origW
	stats.OriginalHeight = origH
	stats.ProcessingTime = time.Since(start)

	result := &i2stypes.Result{
		SVG:           doc,
		Layers:        out.Layers,
		Stats:         stats,
		DroppedLayers: out.Dropped,
	}
	result.Warnings = warnings(result, s)

	utils.Logger.Info("conversion finished",
		zap.String("mode", s.Mode.Name()),
		zap.Int("layers", len(result.Layers)),
		zap.Int("paths", stats.PathCount),
		zap.Int("points", stats.PointCount),
		zap.Int("bytes", stats.FileSize),
		zap.Duration("cost", stats.ProcessingTime))
	return result, nil
}

// warnings 成功但结果可能不符合预期的情况
func warnings(r *i2stypes.Result, s i2stypes.Settings) []string {
	var w []string
	if r.Empty() {
		w = append(w, "no paths were produced; the output contains no layers")
	}
	if len(r.DroppedLayers) > 0 {
		w = append(w, fmt.Sprintf("%d color layer(s) failed to trace and were dropped", len(r.DroppedLayers)))
	}
	if m, ok := s.Mode.(i2stypes.Multicolor); ok && !r.Empty() && len(r.Layers) < m.ColorLayers {
		w = append(w, fmt.Sprintf("produced %d of %d requested color layers", len(r.Layers), m.ColorLayers))
	}
	return w
}
