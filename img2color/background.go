package img2color

import (
	"image"

	"github.com/jimwalker53/Image-to-SVG/imageutil"
	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
)

// DefaultBackgroundDeltaE 与背景估计色的 LAB 距离小于该值即视为背景
const DefaultBackgroundDeltaE = 18.0

// EstimateBackground 取边框一圈不透明像素的均值作为背景色
func EstimateBackground(img *image.NRGBA) (i2stypes.Color, bool) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	var r, g, bl, n int
	add := func(x, y int) {
		i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
		if img.Pix[i+3] <= OpaqueAlpha {
			return
		}
		r += int(img.Pix[i])
		g += int(img.Pix[i+1])
		bl += int(img.Pix[i+2])
		n++
	}
	for x := 0; x < w; x++ {
		add(x, 0)
		if h > 1 {
			add(x, h-1)
		}
	}
	for y := 1; y < h-1; y++ {
		add(0, y)
		if w > 1 {
			add(w-1, y)
		}
	}
	if n == 0 {
		return i2stypes.Color{}, false
	}
	return i2stypes.Color{
		R: uint8((r + n/2) / n),
		G: uint8((g + n/2) / n),
		B: uint8((bl + n/2) / n),
	}, true
}

// RemoveBackground 把与背景估计色色差小于 deltaE 的像素置为透明，返回新图
func RemoveBackground(img *image.NRGBA, deltaE float64) *image.NRGBA {
	out := imageutil.ToNRGBA(img)

	bg, ok := EstimateBackground(img)
	if !ok {
		return out
	}
	ref := ToLab(bg)
	limit := deltaE * deltaE

	for i := 0; i+3 < len(out.Pix); i += 4 {
		if out.Pix[i+3] <= OpaqueAlpha {
			continue
		}
		l := ToLab(i2stypes.Color{R: out.Pix[i], G: out.Pix[i+1], B: out.Pix[i+2]})
		dl, da, db := l.L-ref.L, l.A-ref.A, l.B-ref.B
		if dl*dl+da*da+db*db < limit {
			out.Pix[i+3] = 0
		}
	}
	return out
}
