package modes

import "math"

// params 由 detail 推出的描边与简化参数。三种模式各自一套线性映射，
// detail 越高 MinFeature 与两个容差越小，点数只增不减。
type params struct {
	MinFeature        int
	CurveTolerance    float64
	SimplifyTolerance float64
	Threshold         uint8
}

func silhouetteParams(detail int) params {
	coarse := float64(100 - detail)
	return params{
		MinFeature:        int(math.Round(coarse / 10)),
		CurveTolerance:    0.1 + 0.009*coarse,
		SimplifyTolerance: 0.02 * coarse,
	}
}

func multicolorParams(detail int) params {
	coarse := float64(100 - detail)
	return params{
		MinFeature:        int(math.Round(coarse / 50)),
		CurveTolerance:    0.2 + 0.008*coarse,
		SimplifyTolerance: 0.025 * coarse,
		Threshold:         128,
	}
}

func lineArtParams(detail int) params {
	coarse := float64(100 - detail)
	th := 64 + math.Round(1.28*float64(detail))
	return params{
		MinFeature:        int(math.Round(coarse / 20)),
		CurveTolerance:    0.1 + 0.006*coarse,
		SimplifyTolerance: 0.015 * coarse,
		Threshold:         uint8(math.Min(th, 255)),
	}
}
