package img2color

import (
	"fmt"
	"image"

	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
)

// SplitColors 为每个调色板颜色生成一张二值蒙版：属于该颜色为黑，其余（包括透明像素）为白
func SplitColors(p i2stypes.Palette, bounds image.Rectangle) ([]*image.Gray, error) {
	w, h := bounds.Dx(), bounds.Dy()
	if len(p.Assignments) != w*h {
		return nil, fmt.Errorf("assignment length %d does not match %dx%d", len(p.Assignments), w, h)
	}
	if len(p.Colors) == 0 {
		return nil, fmt.Errorf("empty palette")
	}

	masks := make([]*image.Gray, len(p.Colors))
	for i := range masks {
		masks[i] = image.NewGray(image.Rect(0, 0, w, h))
		// 默认白色背景
		for j := range masks[i].Pix {
			masks[i].Pix[j] = 255
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := p.Assignments[y*w+x]
			if a < 0 {
				continue
			}
			masks[a].Pix[y*masks[a].Stride+x] = 0
		}
	}
	return masks, nil
}
