package cleanup

import (
	"image"

	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
	"github.com/jimwalker53/Image-to-SVG/utils"
	"go.uber.org/zap"
)

const (
	Black uint8 = 0
	White uint8 = 255
)

// clone 拷贝成原点在 (0,0)、行紧凑的新灰度图
func clone(src *image.Gray) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+b.Dx()], src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):])
	}
	return dst
}

// Threshold 小于阈值为黑（切割），否则为白
func Threshold(src *image.Gray, threshold int) *image.Gray {
	dst := clone(src)
	for i, v := range dst.Pix {
		if int(v) < threshold {
			dst.Pix[i] = Black
		} else {
			dst.Pix[i] = White
		}
	}
	return dst
}

// Invert 黑白互换
func Invert(src *image.Gray) *image.Gray {
	dst := clone(src)
	for i, v := range dst.Pix {
		dst.Pix[i] = 255 - v
	}
	return dst
}

// Erode 3x3 腐蚀 iterations 轮：黑像素只有在 8 邻域全黑时保留，边框像素一律置白
func Erode(src *image.Gray, iterations int) *image.Gray {
	cur := clone(src)
	b := cur.Bounds()
	w, h := b.Dx(), b.Dy()

	for it := 0; it < iterations; it++ {
		next := image.NewGray(b)
		for i := range next.Pix {
			next.Pix[i] = White
		}
		for y := 1; y < h-1; y++ {
			for x := 1; x < w-1; x++ {
				if cur.Pix[y*w+x] != Black {
					continue
				}
				keep := true
				for dy := -1; dy <= 1 && keep; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if cur.Pix[(y+dy)*w+x+dx] != Black {
							keep = false
							break
						}
					}
				}
				if keep {
					next.Pix[y*w+x] = Black
				}
			}
		}
		cur = next
	}
	return cur
}

var neighbors4 = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// RemoveEdgeRegions 从边框上所有黑像素出发做 4 连通泛洪，碰到的像素全部置白
func RemoveEdgeRegions(src *image.Gray) *image.Gray {
	dst := clone(src)
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return dst
	}

	queue := make([]int, 0, 2*(w+h))
	seed := func(x, y int) {
		i := y*w + x
		if dst.Pix[i] == Black {
			dst.Pix[i] = White
			queue = append(queue, i)
		}
	}
	for x := 0; x < w; x++ {
		seed(x, 0)
		seed(x, h-1)
	}
	for y := 0; y < h; y++ {
		seed(0, y)
		seed(w-1, y)
	}

	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		x, y := i%w, i/w
		for _, d := range neighbors4 {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			j := ny*w + nx
			if dst.Pix[j] == Black {
				dst.Pix[j] = White
				queue = append(queue, j)
			}
		}
	}
	return dst
}

// Label 4 连通黑色区域标号，labels 中 0 表示白色，区域从 1 开始编号；sizes[i] 是第 i+1 号区域的像素数
func Label(src *image.Gray) (labels []int, sizes []int) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	g := clone(src)
	labels = make([]int, w*h)

	var queue []int
	for start := range labels {
		if g.Pix[start] != Black || labels[start] != 0 {
			continue
		}
		id := len(sizes) + 1
		size := 0
		labels[start] = id
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			i := queue[0]
			queue = queue[1:]
			size++
			x, y := i%w, i/w
			for _, d := range neighbors4 {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				j := ny*w + nx
				if g.Pix[j] == Black && labels[j] == 0 {
					labels[j] = id
					queue = append(queue, j)
				}
			}
		}
		sizes = append(sizes, size)
	}
	return labels, sizes
}

// RemoveSmallRegions 像素数小于 percent% × 宽 × 高 的 4 连通黑色区域置白
func RemoveSmallRegions(src *image.Gray, percent float64) *image.Gray {
	dst := clone(src)
	if percent <= 0 {
		return dst
	}
	b := dst.Bounds()
	minSize := percent / 100 * float64(b.Dx()*b.Dy())

	labels, sizes := Label(dst)
	removed := 0
	for i, id := range labels {
		if id == 0 {
			continue
		}
		if float64(sizes[id-1]) < minSize {
			dst.Pix[i] = White
			removed++
		}
	}
	utils.Logger.Debug("small regions removed",
		zap.Int("regions", len(sizes)), zap.Int("pixels", removed), zap.Float64("minSize", minSize))
	return dst
}

// Run 依次执行阈值、反相、腐蚀、去边缘区域、去小区域，每一步都返回新的缓冲区
func Run(gray *image.Gray, opts i2stypes.Silhouette) *image.Gray {
	out := Threshold(gray, opts.Threshold)
	if opts.Invert {
		out = Invert(out)
	}
	if opts.ErosionLevel > 0 {
		out = Erode(out, opts.ErosionLevel)
	}
	if opts.RemoveEdgeRegions {
		out = RemoveEdgeRegions(out)
	}
	if opts.MinRegionSize > 0 {
		out = RemoveSmallRegions(out, opts.MinRegionSize)
	}
	return out
}

// CountBlack 黑像素数
func CountBlack(g *image.Gray) int {
	n := 0
	b := g.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if g.GrayAt(x, y).Y == Black {
				n++
			}
		}
	}
	return n
}
