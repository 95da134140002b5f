package imageutil

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Interpolation 缩放插值方式
type Interpolation int

const (
	// InterpolationArea 使用 Catmull-Rom，适合缩小
	InterpolationArea Interpolation = iota
	InterpolationLinear
	InterpolationNearest
)

// FitWithin 计算等比缩放到 maxDimension 以内后的尺寸；已经足够小时原样返回
func FitWithin(width, height, maxDimension int) (int, int) {
	if maxDimension <= 0 || (width <= maxDimension && height <= maxDimension) {
		return width, height
	}
	scale := math.Min(float64(maxDimension)/float64(width), float64(maxDimension)/float64(height))
	w := max(1, int(math.Round(float64(width)*scale)))
	h := max(1, int(math.Round(float64(height)*scale)))
	return min(w, maxDimension), min(h, maxDimension)
}

// Resize 缩放到指定尺寸，保留 alpha
func Resize(img *image.NRGBA, width, height int, interp Interpolation) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))

	var scaler draw.Scaler
	switch interp {
	case InterpolationLinear:
		scaler = draw.BiLinear
	case InterpolationNearest:
		scaler = draw.NearestNeighbor
	default:
		scaler = draw.CatmullRom
	}

	scaler.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
