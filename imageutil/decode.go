package imageutil

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
	"github.com/jimwalker53/Image-to-SVG/utils"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxDimension 超过该边长的输入会被等比缩小
const DefaultMaxDimension = 4000

// Decoder 位图解码器
type Decoder struct {
	// FFmpegFallback 标准解码器不认识的格式交给 ffmpeg 转成 PNG 再解
	FFmpegFallback bool
}

// Decode 解码 png/jpeg/gif/bmp/tiff/webp
func (d Decoder) Decode(ctx context.Context, data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", i2stypes.ErrDecode)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err == nil {
		utils.Logger.Debug("image decoded", zap.String("format", format))
		return img, nil
	}
	if !d.FFmpegFallback {
		return nil, fmt.Errorf("%w: %v", i2stypes.ErrDecode, err)
	}

	utils.Logger.Info("builtin decoders rejected input, trying ffmpeg", zap.Error(err))
	pngData, ffErr := transcodePNG(ctx, data)
	if ffErr != nil {
		return nil, fmt.Errorf("%w: %v (ffmpeg: %v)", i2stypes.ErrDecode, err, ffErr)
	}
	img, _, err = image.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("%w: decode ffmpeg output: %v", i2stypes.ErrDecode, err)
	}
	return img, nil
}

// DecodeAndResize 解码并在任一边超过 maxDimension 时等比缩小，从不放大。
// 返回的宽高是原始尺寸。
func (d Decoder) DecodeAndResize(ctx context.Context, data []byte, maxDimension int) (*image.NRGBA, int, int, error) {
	img, err := d.Decode(ctx, data)
	if err != nil {
		return nil, 0, 0, err
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, 0, 0, fmt.Errorf("%w: zero-sized image", i2stypes.ErrDecode)
	}

	src := ToNRGBA(img)
	w, h := FitWithin(b.Dx(), b.Dy(), maxDimension)
	if w == b.Dx() && h == b.Dy() {
		return src, b.Dx(), b.Dy(), nil
	}
	utils.Logger.Info("resizing oversized input",
		zap.Int("width", b.Dx()), zap.Int("height", b.Dy()),
		zap.Int("newWidth", w), zap.Int("newHeight", h))
	return Resize(src, w, h, InterpolationArea), b.Dx(), b.Dy(), nil
}

// DecodeAndResize 使用默认解码器（不启用 ffmpeg）
func DecodeAndResize(data []byte, maxDimension int) (*image.NRGBA, int, int, error) {
	return Decoder{}.DecodeAndResize(context.Background(), data, maxDimension)
}

// transcodePNG 通过 ffmpeg image2pipe 把任意单帧图片转成 PNG
func transcodePNG(ctx context.Context, data []byte) ([]byte, error) {
	var out, stderr bytes.Buffer
	err := ffmpeg.OutputContext(ctx, []*ffmpeg.Stream{ffmpeg.Input("pipe:0")}, "pipe:1", ffmpeg.KwArgs{
		"format":   "image2pipe",
		"vcodec":   "png",
		"frames:v": 1,
	}).
		WithInput(bytes.NewReader(data)).
		WithOutput(&out).
		WithErrorOutput(&stderr).
		Run()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg transcode: %w", err)
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no output")
	}
	return out.Bytes(), nil
}
