package imageutil

import (
	"image"
	"image/color"
)

// CreateSolidImage 纯色测试图
func CreateSolidImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	FillRect(img, img.Bounds(), c)
	return img
}

// FillRect 在测试图上填充矩形
func FillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// CreateSolidGray 纯色灰度图
func CreateSolidGray(width, height int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// FillGrayRect 在灰度图上填充矩形
func FillGrayRect(img *image.Gray, r image.Rectangle, v uint8) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Pix[y*img.Stride+x] = v
		}
	}
}

// CountGray 统计取值为 v 的像素数
func CountGray(img *image.Gray, v uint8) int {
	n := 0
	for _, p := range img.Pix {
		if p == v {
			n++
		}
	}
	return n
}
