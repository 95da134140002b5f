package img2color

import (
	"image"
	"math/rand"

	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
)

const (
	DefaultSampleCap     = 50000
	DefaultMaxIterations = 20
	// OpaqueAlpha alpha 不大于该值的像素视为透明
	OpaqueAlpha = 128
)

// Config 量化参数
type Config struct {
	K             int
	Metric        i2stypes.Metric
	Rand          *rand.Rand
	SampleCap     int
	MaxIterations int
}

func (c Config) withDefaults() Config {
	if c.K < 1 {
		c.K = 1
	}
	if c.Metric == "" {
		c.Metric = i2stypes.MetricLAB
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(1))
	}
	if c.SampleCap <= 0 {
		c.SampleCap = DefaultSampleCap
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	return c
}

// Quantize k-means++ 量化，使用默认采样上限和迭代次数
func Quantize(img *image.NRGBA, k int, metric i2stypes.Metric, rng *rand.Rand) i2stypes.Palette {
	return KMeans(img, Config{K: k, Metric: metric, Rand: rng})
}

// opaquePixels 收集不透明像素的下标和颜色
func opaquePixels(img *image.NRGBA) ([]int, []i2stypes.Color) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	idx := make([]int, 0, w*h)
	cols := make([]i2stypes.Color, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			p := img.Pix[o : o+4]
			if p[3] <= OpaqueAlpha {
				continue
			}
			idx = append(idx, y*w+x)
			cols = append(cols, i2stypes.Color{R: p[0], G: p[1], B: p[2]})
		}
	}
	return idx, cols
}

// HasOpaque 是否存在 alpha 大于 OpaqueAlpha 的像素
func HasOpaque(img *image.NRGBA) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.Pix[img.PixOffset(x, y)+3] > OpaqueAlpha {
				return true
			}
		}
	}
	return false
}

// emptyPalette 没有不透明像素时返回单一白色、全零分配
func emptyPalette(n int) i2stypes.Palette {
	return i2stypes.Palette{
		Colors:      []i2stypes.Color{i2stypes.White},
		Assignments: make([]int, n),
	}
}

// stride 均匀跨步采样
func stride(points []vec, limit int) []vec {
	if len(points) <= limit {
		return points
	}
	step := (len(points) + limit - 1) / limit
	out := make([]vec, 0, limit)
	for i := 0; i < len(points); i += step {
		out = append(out, points[i])
	}
	return out
}

// KMeans k-means++ 初始化 + Lloyd 迭代。
// 超过 SampleCap 个不透明像素时在跨步子样本上聚类，再把所有不透明像素重新分配到最终质心。
func KMeans(img *image.NRGBA, cfg Config) i2stypes.Palette {
	cfg = cfg.withDefaults()
	b := img.Bounds()
	total := b.Dx() * b.Dy()

	idx, cols := opaquePixels(img)
	if len(idx) == 0 {
		return emptyPalette(total)
	}

	sp := spaceFor(cfg.Metric)
	points := make([]vec, len(cols))
	for i, c := range cols {
		points[i] = sp.project(c)
	}

	sample := stride(points, cfg.SampleCap)
	centroids := seedPlusPlus(sample, cfg.K, cfg.Rand)
	centroids = lloyd(sample, centroids, cfg.MaxIterations)

	assign := make([]int, len(points))
	for i, p := range points {
		assign[i] = nearest(p, centroids)
	}
	return buildPalette(total, idx, cols, assign, len(centroids))
}

// seedPlusPlus 第一个质心均匀随机，之后按到最近质心的平方距离加权抽样。
// 剩余点全部与已有质心重合时提前结束，此时质心数少于 k。
func seedPlusPlus(points []vec, k int, rng *rand.Rand) []vec {
	centroids := make([]vec, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	d2 := make([]float64, len(points))
	for i, p := range points {
		d2[i] = dist2(p, centroids[0])
	}

	for len(centroids) < k {
		var sum float64
		for _, d := range d2 {
			sum += d
		}
		if sum == 0 {
			break
		}

		target := rng.Float64() * sum
		pick := -1
		var acc float64
		for i, d := range d2 {
			if d == 0 {
				continue
			}
			pick = i
			acc += d
			if acc >= target {
				break
			}
		}
		c := points[pick]
		centroids = append(centroids, c)
		for i, p := range points {
			if d := dist2(p, c); d < d2[i] {
				d2[i] = d
			}
		}
	}
	return centroids
}

// lloyd 分配 -> 重算质心，直到分配不再变化或达到 maxIter 轮
func lloyd(points []vec, centroids []vec, maxIter int) []vec {
	k := len(centroids)
	assign := make([]int, len(points))
	for i := range assign {
		assign[i] = -1
	}

	sums := make([]vec, k)
	counts := make([]int, k)
	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, p := range points {
			c := nearest(p, centroids)
			if c != assign[i] {
				assign[i] = c
				changed = true
			}
		}
		if !changed {
			break
		}

		for c := range sums {
			sums[c] = vec{}
			counts[c] = 0
		}
		for i, p := range points {
			c := assign[i]
			sums[c][0] += p[0]
			sums[c][1] += p[1]
			sums[c][2] += p[2]
			counts[c]++
		}
		for c := range centroids {
			// 空簇保留原质心
			if counts[c] == 0 {
				continue
			}
			n := float64(counts[c])
			centroids[c] = vec{sums[c][0] / n, sums[c][1] / n, sums[c][2] / n}
		}
	}
	return centroids
}

// buildPalette 用每簇成员的 RGB 均值作为调色板颜色，去掉没有成员的簇并重排下标
func buildPalette(total int, idx []int, cols []i2stypes.Color, assign []int, k int) i2stypes.Palette {
	type acc struct {
		r, g, b, n int
	}
	accs := make([]acc, k)
	for i, c := range cols {
		a := &accs[assign[i]]
		a.r += int(c.R)
		a.g += int(c.G)
		a.b += int(c.B)
		a.n++
	}

	remap := make([]int, k)
	var colors []i2stypes.Color
	for c, a := range accs {
		if a.n == 0 {
			remap[c] = -1
			continue
		}
		remap[c] = len(colors)
		colors = append(colors, i2stypes.Color{
			R: uint8((a.r + a.n/2) / a.n),
			G: uint8((a.g + a.n/2) / a.n),
			B: uint8((a.b + a.n/2) / a.n),
		})
	}

	assignments := make([]int, total)
	for i := range assignments {
		assignments[i] = i2stypes.Transparent
	}
	for i, p := range idx {
		assignments[p] = remap[assign[i]]
	}
	return i2stypes.Palette{Colors: colors, Assignments: assignments}
}
