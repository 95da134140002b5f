package img2color

import (
	"image"
	"sort"

	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
)

// Run 按选择的量化算法生成调色板
func Run(img *image.NRGBA, q i2stypes.Quantizer, cfg Config) i2stypes.Palette {
	switch q {
	case i2stypes.QuantizerMedianCut:
		return MedianCut(img, cfg)
	default:
		return KMeans(img, cfg)
	}
}

// SortByLuminance 按亮度从暗到亮重排调色板，并同步重写分配表
func SortByLuminance(p i2stypes.Palette) i2stypes.Palette {
	order := make([]int, len(p.Colors))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return p.Colors[order[i]].Luminance() < p.Colors[order[j]].Luminance()
	})

	remap := make([]int, len(order))
	colors := make([]i2stypes.Color, len(order))
	for newIdx, oldIdx := range order {
		remap[oldIdx] = newIdx
		colors[newIdx] = p.Colors[oldIdx]
	}

	assignments := make([]int, len(p.Assignments))
	for i, a := range p.Assignments {
		if a < 0 {
			assignments[i] = a
			continue
		}
		assignments[i] = remap[a]
	}
	return i2stypes.Palette{Colors: colors, Assignments: assignments}
}

// Coverage 每个调色板颜色分到的像素数
func Coverage(p i2stypes.Palette) []int {
	counts := make([]int, len(p.Colors))
	for _, a := range p.Assignments {
		if a >= 0 && a < len(counts) {
			counts[a]++
		}
	}
	return counts
}
