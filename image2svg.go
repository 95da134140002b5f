package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jimwalker53/Image-to-SVG/cache"
	"github.com/jimwalker53/Image-to-SVG/color2svg"
	"github.com/jimwalker53/Image-to-SVG/config"
	"github.com/jimwalker53/Image-to-SVG/server"
	"github.com/jimwalker53/Image-to-SVG/svg2json"
	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
	"github.com/jimwalker53/Image-to-SVG/utils"
	"github.com/jimwalker53/Image-to-SVG/vectorizer"
	"go.uber.org/zap"
)

// outputPaths 输出路径为空时使用输入文件名替换扩展名
func outputPaths(inputPath, outputPath string) (svgPath, jsonPath string) {
	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".svg"
	}
	return outputPath, strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".json"
}

func convertFile(ctx context.Context, cfg *config.Config, inputPath, outputPath string, opts i2stypes.Options, writeJSON bool) error {
	settings, err := opts.Settings()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	vec := vectorizer.New(cfg.Vectorize, color2svg.New())
	result, err := vec.Convert(ctx, data, settings)
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		utils.Logger.Warn(w, zap.String("input", inputPath))
	}

	svgPath, jsonPath := outputPaths(inputPath, outputPath)
	if dir := filepath.Dir(svgPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(svgPath, []byte(result.SVG), 0644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	utils.Logger.Info("svg written",
		zap.String("output", svgPath),
		zap.Int("layers", len(result.Layers)),
		zap.Int("paths", result.Stats.PathCount),
		zap.Float64("width", result.Stats.OutputWidth),
		zap.Float64("height", result.Stats.OutputHeight),
		zap.String("unit", string(result.Stats.Unit)))

	if !writeJSON {
		return nil
	}
	summary, err := svg2json.ParseDocumentJSON(result.SVG)
	if err != nil {
		return fmt.Errorf("build json summary: %w", err)
	}
	if err := os.WriteFile(jsonPath, summary, 0644); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	utils.Logger.Info("json summary written", zap.String("output", jsonPath))
	return nil
}

func runServer(cfg *config.Config) error {
	var rc server.ResultCache
	if cfg.Redis.Enabled {
		redisCache := cache.NewRedisCache(&cfg.Redis)
		if err := redisCache.Ping(context.Background()); err != nil {
			utils.Logger.Warn("redis connection failed, cache disabled", zap.Error(err))
		} else {
			utils.Logger.Info("redis connected successfully")
			rc = redisCache
		}
		defer redisCache.Close()
	}

	gin.SetMode(cfg.Server.Mode)
	vec := vectorizer.New(cfg.Vectorize, color2svg.New())
	r := server.NewRouter(server.NewHandler(cfg, vec, rc), Version)

	utils.Logger.Info("server starting",
		zap.String("version", Version),
		zap.String("port", cfg.Server.Port))
	return r.Run(cfg.Server.Port)
}
