package img2color

import (
	"math"

	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
)

// D65 参考白
const (
	refX = 0.95047
	refY = 1.00000
	refZ = 1.08883
)

var srgbToLinear [256]float64

func init() {
	for i := range srgbToLinear {
		v := float64(i) / 255
		if v <= 0.04045 {
			srgbToLinear[i] = v / 12.92
		} else {
			srgbToLinear[i] = math.Pow((v+0.055)/1.055, 2.4)
		}
	}
}

// Lab CIE L*a*b* 坐标，只用于距离比较
type Lab struct {
	L, A, B float64
}

// ToLab sRGB -> 线性 RGB -> XYZ(D65) -> Lab
func ToLab(c i2stypes.Color) Lab {
	r := srgbToLinear[c.R]
	g := srgbToLinear[c.G]
	b := srgbToLinear[c.B]

	x := (r*0.4124564 + g*0.3575761 + b*0.1804375) / refX
	y := (r*0.2126729 + g*0.7151522 + b*0.0721750) / refY
	z := (r*0.0193339 + g*0.1191920 + b*0.9503041) / refZ

	fx, fy, fz := labF(x), labF(y), labF(z)
	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

func labF(t float64) float64 {
	const delta = 6.0 / 29
	if t > delta*delta*delta {
		return math.Cbrt(t)
	}
	return t/(3*delta*delta) + 4.0/29
}

// DeltaE CIE76 色差
func DeltaE(a, b i2stypes.Color) float64 {
	la, lb := ToLab(a), ToLab(b)
	dl, da, db := la.L-lb.L, la.A-lb.A, la.B-lb.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// vec 聚类空间中的一个点
type vec [3]float64

// space 把颜色映射进聚类空间，并给出该空间下的平方距离
type space struct {
	project func(c i2stypes.Color) vec
}

// weightedRGB 2:4:3 加权的 RGB 距离，把权重的平方根乘进坐标后就是欧氏距离
var weightedRGB = space{
	project: func(c i2stypes.Color) vec {
		return vec{float64(c.R) * math.Sqrt2, float64(c.G) * 2, float64(c.B) * math.Sqrt(3)}
	},
}

var labSpace = space{
	project: func(c i2stypes.Color) vec {
		l := ToLab(c)
		return vec{l.L, l.A, l.B}
	},
}

func spaceFor(m i2stypes.Metric) space {
	if m == i2stypes.MetricRGB {
		return weightedRGB
	}
	return labSpace
}

func dist2(a, b vec) float64 {
	d0, d1, d2 := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return d0*d0 + d1*d1 + d2*d2
}

func nearest(p vec, centroids []vec) int {
	best := 0
	bestDist := math.MaxFloat64
	for i, c := range centroids {
		if d := dist2(p, c); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
