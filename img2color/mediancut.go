package img2color

import (
	"image"
	"sort"

	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
)

// box 中位切分的颜色盒
type box struct {
	pixels     []i2stypes.Color
	rMin, rMax int
	gMin, gMax int
	bMin, bMax int
}

// calculateRange 计算盒子在三个通道上的范围
func (b *box) calculateRange() {
	if len(b.pixels) == 0 {
		return
	}

	b.rMin, b.rMax = 255, 0
	b.gMin, b.gMax = 255, 0
	b.bMin, b.bMax = 255, 0

	for _, p := range b.pixels {
		b.rMin = min(b.rMin, int(p.R))
		b.rMax = max(b.rMax, int(p.R))
		b.gMin = min(b.gMin, int(p.G))
		b.gMax = max(b.gMax, int(p.G))
		b.bMin = min(b.bMin, int(p.B))
		b.bMax = max(b.bMax, int(p.B))
	}
}

func (b *box) widest() (channel int, span int) {
	r, g, bl := b.rMax-b.rMin, b.gMax-b.gMin, b.bMax-b.bMin
	switch {
	case r >= g && r >= bl:
		return 0, r
	case g >= r && g >= bl:
		return 1, g
	default:
		return 2, bl
	}
}

func (b *box) mean() i2stypes.Color {
	var rSum, gSum, bSum int
	for _, p := range b.pixels {
		rSum += int(p.R)
		gSum += int(p.G)
		bSum += int(p.B)
	}
	n := len(b.pixels)
	return i2stypes.Color{
		R: uint8((rSum + n/2) / n),
		G: uint8((gSum + n/2) / n),
		B: uint8((bSum + n/2) / n),
	}
}

// MedianCut 中位切分量化：反复沿范围最大的通道在中位数处切开范围最大的盒子。
// 所有盒子都只剩单一颜色时提前停止。像素按 Metric 分配到最近的盒子均值。
func MedianCut(img *image.NRGBA, cfg Config) i2stypes.Palette {
	cfg = cfg.withDefaults()
	b := img.Bounds()
	total := b.Dx() * b.Dy()

	idx, cols := opaquePixels(img)
	if len(idx) == 0 {
		return emptyPalette(total)
	}

	// 采样
	pixels := cols
	if len(cols) > cfg.SampleCap {
		step := (len(cols) + cfg.SampleCap - 1) / cfg.SampleCap
		pixels = make([]i2stypes.Color, 0, cfg.SampleCap)
		for i := 0; i < len(cols); i += step {
			pixels = append(pixels, cols[i])
		}
	} else {
		pixels = append([]i2stypes.Color(nil), cols...)
	}

	initial := &box{pixels: pixels}
	initial.calculateRange()
	boxes := []*box{initial}

	for len(boxes) < cfg.K {
		// 找到范围最大的盒子
		split := -1
		maxRange := 0
		for i, bx := range boxes {
			if _, span := bx.widest(); span > maxRange {
				maxRange = span
				split = i
			}
		}
		if split < 0 {
			break
		}

		target := boxes[split]
		channel, _ := target.widest()
		sort.Slice(target.pixels, func(i, j int) bool {
			switch channel {
			case 0:
				return target.pixels[i].R < target.pixels[j].R
			case 1:
				return target.pixels[i].G < target.pixels[j].G
			default:
				return target.pixels[i].B < target.pixels[j].B
			}
		})

		medianIndex := len(target.pixels) / 2
		box1 := &box{pixels: target.pixels[:medianIndex]}
		box2 := &box{pixels: target.pixels[medianIndex:]}
		box1.calculateRange()
		box2.calculateRange()

		boxes = append(boxes[:split], append([]*box{box1, box2}, boxes[split+1:]...)...)
	}

	sp := spaceFor(cfg.Metric)
	centroids := make([]vec, len(boxes))
	for i, bx := range boxes {
		centroids[i] = sp.project(bx.mean())
	}

	assign := make([]int, len(cols))
	for i, c := range cols {
		assign[i] = nearest(sp.project(c), centroids)
	}
	return buildPalette(total, idx, cols, assign, len(centroids))
}
