package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jimwalker53/Image-to-SVG/cache"
	"github.com/jimwalker53/Image-to-SVG/config"
	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
	"github.com/jimwalker53/Image-to-SVG/utils"
	"github.com/jimwalker53/Image-to-SVG/vectorizer"
	"go.uber.org/zap"
)

// ResultCache 转换结果缓存，未命中时 Get 返回 nil, nil
type ResultCache interface {
	Get(ctx context.Context, key string) (*i2stypes.Result, error)
	Set(ctx context.Context, key string, result *i2stypes.Result) error
}

type Response struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    *i2stypes.Result `json:"data,omitempty"`
	Error   string           `json:"error,omitempty"`
}

type Handler struct {
	cfg   *config.Config
	vec   *vectorizer.Vectorizer
	cache ResultCache
}

// NewHandler cache 可以为 nil，此时不走缓存
func NewHandler(cfg *config.Config, vec *vectorizer.Vectorizer, rc ResultCache) *Handler {
	return &Handler{cfg: cfg, vec: vec, cache: rc}
}

// NewRouter 注册路由
func NewRouter(h *Handler, version string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(Logger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": version,
		})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/convert", h.Convert)
	}
	return r
}

// Convert 处理上传图片并返回 SVG。
// 表单字段 image 为图片文件，options 为可选的 JSON 设置，覆盖配置文件中的默认值。
// 查询参数 format=svg 时直接返回 SVG 文档。
func (h *Handler) Convert(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Message: "image file is required", Error: err.Error()})
		return
	}
	if h.cfg.Server.MaxSize > 0 && file.Size > h.cfg.Server.MaxSize {
		c.JSON(http.StatusRequestEntityTooLarge, Response{
			Message: fmt.Sprintf("file exceeds limit (%d MB)", h.cfg.Server.MaxSize/(1024*1024)),
		})
		return
	}

	opts := h.cfg.Defaults
	if raw := c.PostForm("options"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &opts); err != nil {
			c.JSON(http.StatusBadRequest, Response{Message: "invalid options", Error: err.Error()})
			return
		}
	}
	settings, err := opts.Settings()
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Message: "invalid options", Error: err.Error()})
		return
	}

	data, err := readUpload(file)
	if err != nil {
		utils.Logger.Error("failed to read uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Message: "failed to read file", Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	key, err := cache.Key(data, opts)
	if err != nil {
		utils.Logger.Warn("failed to build cache key", zap.Error(err))
	}
	if h.cache != nil && key != "" {
		cached, err := h.cache.Get(ctx, key)
		if err != nil {
			utils.Logger.Warn("failed to get cache", zap.Error(err))
		}
		if cached != nil {
			utils.Logger.Info("cache hit", zap.String("cache_key", key))
			h.respond(c, cached, "converted (cached)")
			return
		}
	}

	result, err := h.vec.Convert(ctx, data, settings)
	if err != nil {
		c.JSON(statusFor(err), Response{Message: "conversion failed", Error: err.Error()})
		return
	}

	if h.cache != nil && key != "" {
		if err := h.cache.Set(ctx, key, result); err != nil {
			utils.Logger.Warn("failed to set cache", zap.Error(err))
		}
	}
	h.respond(c, result, "converted")
}

func (h *Handler) respond(c *gin.Context, result *i2stypes.Result, message string) {
	if c.Query("format") == "svg" {
		c.Data(http.StatusOK, "image/svg+xml; charset=utf-8", []byte(result.SVG))
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: result})
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, i2stypes.ErrInvalidSettings):
		return http.StatusBadRequest
	case errors.Is(err, i2stypes.ErrDecode):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
