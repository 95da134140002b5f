package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// ToNRGBA 拷贝成原点在 (0,0) 的 NRGBA，不与输入共享内存
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// FlattenOnWhite 把半透明像素合成到白底上，结果完全不透明
func FlattenOnWhite(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(b)
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := uint32(img.Pix[i+3])
		for c := 0; c < 3; c++ {
			v := uint32(img.Pix[i+c])
			dst.Pix[i+c] = uint8((v*a + 255*(255-a) + 127) / 255)
		}
		dst.Pix[i+3] = 255
	}
	return dst
}

// ToGrayscale BT.601 亮度，透明部分按白底处理
func ToGrayscale(img *image.NRGBA) *image.Gray {
	flat := FlattenOnWhite(img)
	b := flat.Bounds()
	gray := image.NewGray(b)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			i := y*flat.Stride + x*4
			r, g, bl := float64(flat.Pix[i]), float64(flat.Pix[i+1]), float64(flat.Pix[i+2])
			gray.Pix[y*gray.Stride+x] = clampUint8(0.299*r + 0.587*g + 0.114*bl + 0.5)
		}
	}
	return gray
}
