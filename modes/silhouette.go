package modes

import (
	"image"

	"github.com/jimwalker53/Image-to-SVG/cleanup"
	"github.com/jimwalker53/Image-to-SVG/imageutil"
	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
)

// silhouette 灰度 ->（可选）二值清理 -> 描边，输出单个黑色图层
func (p *Processor) silhouette(img *image.NRGBA, m i2stypes.Silhouette, s i2stypes.Settings) (Output, error) {
	gray := imageutil.ToGrayscale(img)
	threshold := m.Threshold
	if m.CleanupActive() {
		gray = cleanup.Run(gray, m)
		// 已经二值化
		threshold = 128
	}

	pr := silhouetteParams(s.Detail)
	res, err := p.Tracer.Trace(gray, i2stypes.TraceOptions{
		MinFeatureSize: pr.MinFeature,
		CurveTolerance: pr.CurveTolerance,
		Threshold:      uint8(threshold),
		Polarity:       i2stypes.DarkForeground,
	})
	if err != nil {
		return Output{}, traceError(i2stypes.ModeSilhouette, err)
	}

	paths := buildPaths(res, i2stypes.Black, s.Smoothing, pr.SimplifyTolerance)
	if len(paths) == 0 {
		return Output{}, nil
	}
	layer := i2stypes.Layer{ID: layerID(1), Name: "Silhouette", Color: i2stypes.Black, Paths: paths}
	logLayer(i2stypes.ModeSilhouette, layer)
	return Output{Layers: []i2stypes.Layer{layer}}, nil
}
