package imageutil

import "image"

// Kernel 卷积核
type Kernel struct {
	Values [][]float64
	Width  int
	Height int
}

// NewKernel 由二维切片构造卷积核
func NewKernel(values [][]float64) *Kernel {
	height := len(values)
	width := 0
	if height > 0 {
		width = len(values[0])
	}
	return &Kernel{
		Values: values,
		Width:  width,
		Height: height,
	}
}

// LaplacianKernel 3x3 离散拉普拉斯算子（8 邻域）
func LaplacianKernel() *Kernel {
	return NewKernel([][]float64{
		{-1, -1, -1},
		{-1, 8, -1},
		{-1, -1, -1},
	})
}

// ConvolveGrayFloat 对灰度图做卷积，返回未截断的浮点结果。边界像素按复制边缘处理。
func ConvolveGrayFloat(img *image.Gray, kernel *Kernel) [][]float64 {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	dst := make([][]float64, height)

	halfKW := kernel.Width / 2
	halfKH := kernel.Height / 2

	for y := 0; y < height; y++ {
		dst[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var sum float64
			for ky := 0; ky < kernel.Height; ky++ {
				for kx := 0; kx < kernel.Width; kx++ {
					sx := clampInt(x+kx-halfKW, 0, width-1)
					sy := clampInt(y+ky-halfKH, 0, height-1)
					sum += float64(img.Pix[sy*img.Stride+sx]) * kernel.Values[ky][kx]
				}
			}
			dst[y][x] = sum
		}
	}
	return dst
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
