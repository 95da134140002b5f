package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jimwalker53/Image-to-SVG/config"
	"github.com/jimwalker53/Image-to-SVG/utils"
	"go.uber.org/zap"
)

var Version = "dev"

func main() {

	inputPath := flag.String("input", "", "输入图片路径")
	outputPath := flag.String("output", "", "输出 SVG 路径，默认与输入同名")
	configPath := flag.String("config", "", "配置文件路径，默认读取 ./config.yaml")
	mode := flag.String("mode", "", "转换模式 silhouette / multicolor / lineart")
	detail := flag.Int("detail", 0, "细节程度 0-100")
	smoothing := flag.Int("smoothing", 0, "平滑程度 0-100")
	colors := flag.Int("colors", 0, "多色模式的颜色层数 2-16")
	width := flag.Float64("width", 0, "目标宽度")
	height := flag.Float64("height", 0, "目标高度")
	unit := flag.String("unit", "", "尺寸单位 inches / mm")
	optionsJSON := flag.String("options", "", "JSON 形式的完整设置，覆盖其他参数")
	writeJSON := flag.Bool("json", false, "同时输出图层 JSON 摘要")
	serve := flag.Bool("serve", false, "以 HTTP 服务方式运行")

	help := flag.Bool("help", false, "显示帮助信息")
	flag.Parse()
	if *help {
		flag.Usage()
		return
	}

	cfg := config.New()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Printf("Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if err := utils.InitLogger(cfg.Server.Mode); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer utils.Sync()

	// 先刷新日志再退出
	fail := func(msg string, fields ...zap.Field) {
		utils.Logger.Error(msg, fields...)
		utils.Sync()
		os.Exit(1)
	}

	if *serve {
		if err := runServer(cfg); err != nil {
			fail("server stopped", zap.Error(err))
		}
		return
	}

	if *inputPath == "" {
		flag.Usage()
		return
	}

	opts := cfg.Defaults
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			opts.Mode = *mode
		case "detail":
			opts.Detail = *detail
		case "smoothing":
			opts.Smoothing = *smoothing
		case "colors":
			opts.ColorLayers = *colors
		case "width":
			opts.TargetWidth = *width
		case "height":
			opts.TargetHeight = *height
		case "unit":
			opts.Unit = *unit
		}
	})
	if *optionsJSON != "" {
		if err := json.Unmarshal([]byte(*optionsJSON), &opts); err != nil {
			fail("invalid options", zap.Error(err))
		}
	}

	ctx := context.Background()
	if err := convertFile(ctx, cfg, *inputPath, *outputPath, opts, *writeJSON); err != nil {
		fail("conversion failed", zap.String("input", *inputPath), zap.Error(err))
	}
}
