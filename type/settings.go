package i2stypes

import (
	"fmt"
	"strings"
)

// Unit 输出物理尺寸单位，字面量直接拼在数值后面
type Unit string

const (
	UnitInches Unit = "inches"
	UnitMM     Unit = "mm"
)

// MaxTarget 返回该单位下允许的最大目标边长
func (u Unit) MaxTarget() float64 {
	switch u {
	case UnitMM:
		return 609.6
	default:
		return 24
	}
}

// Background 多色模式下的背景处理方式
type Background string

const (
	BackgroundKeep        Background = "keep"
	BackgroundTransparent Background = "transparent"
	BackgroundRemove      Background = "remove"
)

// Quantizer 颜色量化算法
type Quantizer string

const (
	QuantizerKMeans    Quantizer = "kmeans"
	QuantizerMedianCut Quantizer = "mediancut"
)

// Metric 聚类使用的颜色距离
type Metric string

const (
	MetricLAB Metric = "lab"
	MetricRGB Metric = "rgb"
)

const (
	ModeSilhouette = "silhouette"
	ModeMulticolor = "multicolor"
	ModeLineArt    = "lineart"
)

// Mode 转换模式，只有 Silhouette / Multicolor / LineArt 三种实现
type Mode interface {
	Name() string
	isMode()
}

// Silhouette 单色阈值模式
type Silhouette struct {
	Threshold         int
	Invert            bool
	RemoveEdgeRegions bool
	MinRegionSize     float64 // 占图像面积的百分比
	ErosionLevel      int
}

func (Silhouette) Name() string { return ModeSilhouette }
func (Silhouette) isMode()      {}

// CleanupActive 是否需要走二值清理流程
func (s Silhouette) CleanupActive() bool {
	return s.Invert || s.RemoveEdgeRegions || s.MinRegionSize > 0 || s.ErosionLevel > 0
}

// Multicolor 调色板分层模式
type Multicolor struct {
	ColorLayers      int
	MinAreaThreshold float64 // 占图像面积的百分比
	Background       Background
	Quantizer        Quantizer
	Metric           Metric
	Seed             int64
}

func (Multicolor) Name() string { return ModeMulticolor }
func (Multicolor) isMode()      {}

// LineArt 边缘检测线稿模式
type LineArt struct{}

func (LineArt) Name() string { return ModeLineArt }
func (LineArt) isMode()      {}

// TargetSize 期望的输出物理尺寸
type TargetSize struct {
	Width  float64
	Height float64
	Unit   Unit
}

// Settings 一次转换的不可变配置
type Settings struct {
	Mode      Mode
	Detail    int
	Smoothing int
	Target    TargetSize
}

// Validate 在任何像素处理之前校验所有取值，越界直接拒绝，不做钳制
func (s Settings) Validate() error {
	if err := checkInt("detail", s.Detail, 0, 100); err != nil {
		return err
	}
	if err := checkInt("smoothing", s.Smoothing, 0, 100); err != nil {
		return err
	}
	switch s.Target.Unit {
	case UnitInches, UnitMM:
	default:
		return &SettingsError{Field: "unit", Reason: fmt.Sprintf("unsupported value %q", s.Target.Unit)}
	}
	limit := s.Target.Unit.MaxTarget()
	if s.Target.Width <= 0 || s.Target.Width > limit {
		return rangeError("targetWidth", s.Target.Width, 0, limit)
	}
	if s.Target.Height <= 0 || s.Target.Height > limit {
		return rangeError("targetHeight", s.Target.Height, 0, limit)
	}

	switch m := s.Mode.(type) {
	case Silhouette:
		if err := checkInt("threshold", m.Threshold, 0, 255); err != nil {
			return err
		}
		if err := checkFloat("minRegionSize", m.MinRegionSize, 0, 10); err != nil {
			return err
		}
		return checkInt("erosionLevel", m.ErosionLevel, 0, 5)
	case Multicolor:
		if err := checkInt("colorLayers", m.ColorLayers, 2, 16); err != nil {
			return err
		}
		if err := checkFloat("minAreaThreshold", m.MinAreaThreshold, 0, 5); err != nil {
			return err
		}
		switch m.Background {
		case BackgroundKeep, BackgroundTransparent, BackgroundRemove:
		default:
			return &SettingsError{Field: "background", Reason: fmt.Sprintf("unsupported value %q", m.Background)}
		}
		switch m.Quantizer {
		case QuantizerKMeans, QuantizerMedianCut:
		default:
			return &SettingsError{Field: "quantizer", Reason: fmt.Sprintf("unsupported value %q", m.Quantizer)}
		}
		switch m.Metric {
		case MetricLAB, MetricRGB:
		default:
			return &SettingsError{Field: "metric", Reason: fmt.Sprintf("unsupported value %q", m.Metric)}
		}
		return nil
	case LineArt:
		return nil
	default:
		return &SettingsError{Field: "mode", Reason: "unsupported mode"}
	}
}

func checkInt(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return rangeError(field, float64(v), float64(lo), float64(hi))
	}
	return nil
}

func checkFloat(field string, v, lo, hi float64) error {
	if v < lo || v > hi {
		return rangeError(field, v, lo, hi)
	}
	return nil
}

// Options 扁平的设置表示，供配置文件、命令行和 HTTP 表单使用
type Options struct {
	Mode              string  `mapstructure:"mode" json:"mode"`
	Detail            int     `mapstructure:"detail" json:"detail"`
	Smoothing         int     `mapstructure:"smoothing" json:"smoothing"`
	ColorLayers       int     `mapstructure:"color_layers" json:"colorLayers"`
	MinAreaThreshold  float64 `mapstructure:"min_area_threshold" json:"minAreaThreshold"`
	Background        string  `mapstructure:"background" json:"background"`
	Quantizer         string  `mapstructure:"quantizer" json:"quantizer"`
	Metric            string  `mapstructure:"metric" json:"metric"`
	Seed              int64   `mapstructure:"seed" json:"seed"`
	TargetWidth       float64 `mapstructure:"target_width" json:"targetWidth"`
	TargetHeight      float64 `mapstructure:"target_height" json:"targetHeight"`
	Unit              string  `mapstructure:"unit" json:"unit"`
	Threshold         int     `mapstructure:"threshold" json:"threshold"`
	RemoveEdgeRegions bool    `mapstructure:"remove_edge_regions" json:"removeEdgeRegions"`
	MinRegionSize     float64 `mapstructure:"min_region_size" json:"minRegionSize"`
	ErosionLevel      int     `mapstructure:"erosion_level" json:"erosionLevel"`
	Invert            bool    `mapstructure:"invert" json:"invert"`
}

// DefaultOptions 默认设置
func DefaultOptions() Options {
	return Options{
		Mode:             ModeSilhouette,
		Detail:           50,
		Smoothing:        0,
		ColorLayers:      4,
		MinAreaThreshold: 0.1,
		Background:       string(BackgroundTransparent),
		Quantizer:        string(QuantizerKMeans),
		Metric:           string(MetricLAB),
		Seed:             1,
		TargetWidth:      6,
		TargetHeight:     6,
		Unit:             string(UnitInches),
		Threshold:        128,
	}
}

// Settings 把扁平选项转换为带类型的 Settings 并校验
func (o Options) Settings() (Settings, error) {
	var mode Mode
	switch strings.ToLower(o.Mode) {
	case ModeSilhouette:
		mode = Silhouette{
			Threshold:         o.Threshold,
			Invert:            o.Invert,
			RemoveEdgeRegions: o.RemoveEdgeRegions,
			MinRegionSize:     o.MinRegionSize,
			ErosionLevel:      o.ErosionLevel,
		}
	case ModeMulticolor:
		mode = Multicolor{
			ColorLayers:      o.ColorLayers,
			MinAreaThreshold: o.MinAreaThreshold,
			Background:       Background(strings.ToLower(o.Background)),
			Quantizer:        Quantizer(strings.ToLower(o.Quantizer)),
			Metric:           Metric(strings.ToLower(o.Metric)),
			Seed:             o.Seed,
		}
	case ModeLineArt:
		mode = LineArt{}
	default:
		return Settings{}, &SettingsError{Field: "mode", Reason: fmt.Sprintf("unsupported value %q", o.Mode)}
	}

	s := Settings{
		Mode:      mode,
		Detail:    o.Detail,
		Smoothing: o.Smoothing,
		Target: TargetSize{
			Width:  o.TargetWidth,
			Height: o.TargetHeight,
			Unit:   Unit(strings.ToLower(o.Unit)),
		},
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
