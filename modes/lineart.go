package modes

import (
	"image"
	"math"

	"github.com/jimwalker53/Image-to-SVG/imageutil"
	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
)

// EdgeImage 拉普拉斯边缘响应取绝对值、按最大值归一化后反相，得到白底黑边
func EdgeImage(gray *image.Gray) *image.Gray {
	resp := imageutil.ConvolveGrayFloat(gray, imageutil.LaplacianKernel())
	b := gray.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))

	var peak float64
	for _, row := range resp {
		for _, v := range row {
			peak = math.Max(peak, math.Abs(v))
		}
	}
	if peak == 0 {
		for i := range out.Pix {
			out.Pix[i] = 255
		}
		return out
	}

	for y, row := range resp {
		for x, v := range row {
			edge := math.Abs(v) / peak * 255
			out.Pix[y*out.Stride+x] = uint8(math.Round(255 - edge))
		}
	}
	return out
}

// lineArt 边缘检测后描边，输出单个黑色图层
func (p *Processor) lineArt(img *image.NRGBA, s i2stypes.Settings) (Output, error) {
	edges := EdgeImage(imageutil.ToGrayscale(img))

	pr := lineArtParams(s.Detail)
	res, err := p.Tracer.Trace(edges, i2stypes.TraceOptions{
		MinFeatureSize: pr.MinFeature,
		CurveTolerance: pr.CurveTolerance,
		Threshold:      pr.Threshold,
		Polarity:       i2stypes.DarkForeground,
	})
	if err != nil {
		return Output{}, traceError(i2stypes.ModeLineArt, err)
	}

	paths := buildPaths(res, i2stypes.Black, s.Smoothing, pr.SimplifyTolerance)
	if len(paths) == 0 {
		return Output{}, nil
	}
	layer := i2stypes.Layer{ID: layerID(1), Name: "Line Art", Color: i2stypes.Black, Paths: paths}
	logLayer(i2stypes.ModeLineArt, layer)
	return Output{Layers: []i2stypes.Layer{layer}}, nil
}
