package config

import (
	"fmt"
	"time"

	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig     `mapstructure:"server"`
	Redis     RedisConfig      `mapstructure:"redis"`
	Vectorize VectorizeConfig  `mapstructure:"vectorize"`
	Defaults  i2stypes.Options `mapstructure:"defaults"`
}

type ServerConfig struct {
	Port    string `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	MaxSize int64  `mapstructure:"max_size"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type VectorizeConfig struct {
	MaxDimension   int  `mapstructure:"max_dimension"`
	SampleCap      int  `mapstructure:"sample_cap"`
	MaxIterations  int  `mapstructure:"max_iterations"`
	Parallel       int  `mapstructure:"parallel"`
	FFmpegFallback bool `mapstructure:"ffmpeg_fallback"`
}

// Load 从 YAML 文件加载配置
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// New 使用默认配置路径加载配置
func New() *Config {
	cfg, err := Load("config.yaml")
	if err != nil {
		return Default()
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.max_size", 20*1024*1024)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 24*time.Hour)

	v.SetDefault("vectorize.max_dimension", 4000)
	v.SetDefault("vectorize.sample_cap", 50000)
	v.SetDefault("vectorize.max_iterations", 20)
	v.SetDefault("vectorize.parallel", 4)
	v.SetDefault("vectorize.ffmpeg_fallback", true)

	d := i2stypes.DefaultOptions()
	v.SetDefault("defaults.mode", d.Mode)
	v.SetDefault("defaults.detail", d.Detail)
	v.SetDefault("defaults.smoothing", d.Smoothing)
	v.SetDefault("defaults.color_layers", d.ColorLayers)
	v.SetDefault("defaults.min_area_threshold", d.MinAreaThreshold)
	v.SetDefault("defaults.background", d.Background)
	v.SetDefault("defaults.quantizer", d.Quantizer)
	v.SetDefault("defaults.metric", d.Metric)
	v.SetDefault("defaults.seed", d.Seed)
	v.SetDefault("defaults.target_width", d.TargetWidth)
	v.SetDefault("defaults.target_height", d.TargetHeight)
	v.SetDefault("defaults.unit", d.Unit)
	v.SetDefault("defaults.threshold", d.Threshold)
	v.SetDefault("defaults.remove_edge_regions", d.RemoveEdgeRegions)
	v.SetDefault("defaults.min_region_size", d.MinRegionSize)
	v.SetDefault("defaults.erosion_level", d.ErosionLevel)
	v.SetDefault("defaults.invert", d.Invert)
}

// Default 内置默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    ":8080",
			Mode:    "debug",
			MaxSize: 20 * 1024 * 1024,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			TTL:  24 * time.Hour,
		},
		Vectorize: VectorizeConfig{
			MaxDimension:   4000,
			SampleCap:      50000,
			MaxIterations:  20,
			Parallel:       4,
			FFmpegFallback: true,
		},
		Defaults: i2stypes.DefaultOptions(),
	}
}
