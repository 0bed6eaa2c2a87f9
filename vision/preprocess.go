package vision

import (
	"image"

	"golang.org/x/image/draw"
)

// Preprocess scales img to the model input size and returns normalized float32
// pixels in the configured layout.
func Preprocess(img image.Image, cfg Config) []float32 {
	cfg.ApplyDefaults()
	size := cfg.InputSize
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	plane := size * size
	out := make([]float32, 3*plane)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			off := dst.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				v := float32(dst.Pix[off+c]) / 255
				std := cfg.Std[c]
				if std == 0 {
					std = 1
				}
				v = (v - cfg.Mean[c]) / std
				if cfg.Layout == LayoutNHWC {
					out[(y*size+x)*3+c] = v
				} else {
					out[c*plane+y*size+x] = v
				}
			}
		}
	}
	return out
}

func inputShape(cfg Config) []int64 {
	s := int64(cfg.InputSize)
	if cfg.Layout == LayoutNHWC {
		return []int64{1, s, s, 3}
	}
	return []int64{1, 3, s, s}
}
