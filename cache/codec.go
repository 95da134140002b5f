package cache

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// 结果在写入 redis 前用 zstd 压缩
var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil)
)

func compress(data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	return encoder.EncodeAll(data, make([]byte, 0, len(data)/4))
}

func decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	out, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return out, nil
}
