package geometry

import i2stypes "github.com/jimwalker53/Image-to-SVG/type"

// SmoothingIterations smoothing 0-100 映射到 Chaikin 迭代次数
func SmoothingIterations(smoothing int) int {
	if smoothing <= 0 {
		return 0
	}
	return smoothing / 25
}

// Smooth Chaikin 切角：每一轮把每条线段替换为其 1/4 和 3/4 处的两个点，首尾端点保持不变
func Smooth(points []i2stypes.Point, iterations int) []i2stypes.Point {
	out := append([]i2stypes.Point(nil), points...)
	if len(points) < 3 {
		return out
	}
	for it := 0; it < iterations; it++ {
		next := make([]i2stypes.Point, 0, 2*len(out))
		next = append(next, out[0])
		for i := 0; i < len(out)-1; i++ {
			a, b := out[i], out[i+1]
			next = append(next,
				i2stypes.Point{X: 0.75*a.X + 0.25*b.X, Y: 0.75*a.Y + 0.25*b.Y},
				i2stypes.Point{X: 0.25*a.X + 0.75*b.X, Y: 0.25*a.Y + 0.75*b.Y},
			)
		}
		next = append(next, out[len(out)-1])
		out = next
	}
	return out
}
