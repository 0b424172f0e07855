package http

import (
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PMQ9/ai-attire/internal/domain/occasion"
	"github.com/PMQ9/ai-attire/internal/domain/stylist"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	stylistSvc     stylist.Service
	resolver       *occasion.Resolver
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(stylistSvc stylist.Service, resolver *occasion.Resolver, maxUploadBytes int64, logger *slog.Logger) *Handler {
	return &Handler{
		stylistSvc:     stylistSvc,
		resolver:       resolver,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With("component", "http.handler"),
	}
}

// Recommend handles the main recommendation endpoint. It accepts either
// a multipart form (photo + occasion + useWeather) or a JSON body with
// pre-encoded base64 image data.
func (h *Handler) Recommend(c *gin.Context) {
	req, err := h.bindRecommendRequest(c)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.stylistSvc.Recommend(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) bindRecommendRequest(c *gin.Context) (stylist.Request, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		var req stylist.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			return stylist.Request{}, err
		}
		return req, nil
	}

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		return stylist.Request{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes))
	if err != nil {
		return stylist.Request{}, err
	}

	return stylist.Request{
		ImageData:  base64.StdEncoding.EncodeToString(data),
		Occasion:   c.PostForm("occasion"),
		UseWeather: isTruthy(c.PostForm("useWeather")),
	}, nil
}

// legacyRequest is the pre-resolved input accepted for backward
// compatibility: callers supply the wardrobe analysis and occasion
// context themselves and skip the vision pipeline.
type legacyRequest struct {
	ClothingAnalysis stylist.ClothingAnalysis `json:"clothingAnalysis"`
	OccasionContext  occasion.Context         `json:"occasionContext"`
}

// RecommendLegacy handles recommendations from pre-resolved inputs.
func (h *Handler) RecommendLegacy(c *gin.Context) {
	var req legacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.stylistSvc.RecommendFromAnalysis(c.Request.Context(), req.ClothingAnalysis, req.OccasionContext)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ResolveOccasion exposes context resolution on its own. Resolution is
// total, so the only failure mode is a bad request body.
func (h *Handler) ResolveOccasion(c *gin.Context) {
	var req struct {
		Occasion string `json:"occasion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	if strings.TrimSpace(req.Occasion) == "" {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "occasion cannot be empty", nil))
		return
	}

	resolved := h.resolver.Resolve(c.Request.Context(), req.Occasion)
	c.JSON(http.StatusOK, resolved)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func isTruthy(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
