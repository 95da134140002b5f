package modes

import (
	"fmt"
	"image"
	"math/rand"
	"sync"

	"github.com/jimwalker53/Image-to-SVG/geometry"
	"github.com/jimwalker53/Image-to-SVG/imageutil"
	"github.com/jimwalker53/Image-to-SVG/img2color"
	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
	"github.com/jimwalker53/Image-to-SVG/utils"
	"go.uber.org/zap"
)

type colorTrace struct {
	paths []i2stypes.Path
	err   error
}

// prepareBackground 按背景策略预处理：keep 合成到白底，remove 把近背景色置透明
func prepareBackground(img *image.NRGBA, bg i2stypes.Background) *image.NRGBA {
	switch bg {
	case i2stypes.BackgroundKeep:
		return imageutil.FlattenOnWhite(img)
	case i2stypes.BackgroundRemove:
		return img2color.RemoveBackground(img, img2color.DefaultBackgroundDeltaE)
	default:
		return img
	}
}

// multicolor 量化 -> 按亮度排序 -> 每种颜色一张蒙版并行描边 -> 面积过滤
func (p *Processor) multicolor(img *image.NRGBA, m i2stypes.Multicolor, s i2stypes.Settings) (Output, error) {
	src := prepareBackground(img, m.Background)
	if !img2color.HasOpaque(src) {
		utils.Logger.Info("no opaque pixels left after background handling")
		return Output{}, nil
	}

	palette := img2color.Run(src, m.Quantizer, img2color.Config{
		K:             m.ColorLayers,
		Metric:        m.Metric,
		Rand:          rand.New(rand.NewSource(m.Seed)),
		SampleCap:     p.SampleCap,
		MaxIterations: p.MaxIterations,
	})
	palette = img2color.SortByLuminance(palette)

	masks, err := img2color.SplitColors(palette, src.Bounds())
	if err != nil {
		return Output{}, err
	}

	b := src.Bounds()
	minArea := m.MinAreaThreshold / 100 * float64(b.Dx()*b.Dy())
	pr := multicolorParams(s.Detail)
	opts := i2stypes.TraceOptions{
		MinFeatureSize: pr.MinFeature,
		CurveTolerance: pr.CurveTolerance,
		Threshold:      pr.Threshold,
		Polarity:       i2stypes.DarkForeground,
	}

	results := p.traceAll(masks, palette.Colors, opts, s.Smoothing, pr.SimplifyTolerance)

	var out Output
	for i, r := range results {
		c := palette.Colors[i]
		if r.err != nil {
			utils.Logger.Warn("color layer trace failed, dropping layer",
				zap.Int("index", i), zap.String("color", c.Hex()), zap.Error(r.err))
			out.Dropped = append(out.Dropped, c.Hex())
			continue
		}

		kept := r.paths[:0]
		for _, path := range r.paths {
			if geometry.PathArea(path) >= minArea {
				kept = append(kept, path)
			}
		}
		if len(kept) == 0 {
			continue
		}

		n := len(out.Layers) + 1
		layer := i2stypes.Layer{
			ID:    layerID(n),
			Name:  fmt.Sprintf("Color %d", n),
			Color: c,
			Paths: kept,
		}
		logLayer(i2stypes.ModeMulticolor, layer)
		out.Layers = append(out.Layers, layer)
	}
	return out, nil
}

// traceAll 有并发上限地描边每张蒙版，结果按调色板顺序返回，单层失败互不影响
func (p *Processor) traceAll(masks []*image.Gray, colors []i2stypes.Color, opts i2stypes.TraceOptions, smoothing int, tolerance float64) []colorTrace {
	results := make([]colorTrace, len(masks))
	parallel := p.Parallel
	if parallel <= 0 {
		parallel = 1
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, parallel)
	for i, mask := range masks {
		wg.Add(1)
		go func(idx int, mask *image.Gray) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					results[idx].err = fmt.Errorf("%w: tracer panic: %v", i2stypes.ErrTrace, r)
				}
			}()

			res, err := p.Tracer.Trace(mask, opts)
			if err != nil {
				results[idx].err = err
				return
			}
			results[idx].paths = buildPaths(res, colors[idx], smoothing, tolerance)
		}(i, mask)
	}
	wg.Wait()
	return results
}
