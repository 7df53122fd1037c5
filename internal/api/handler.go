package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/cryptorec/internal/domain/dto"
	"github.com/guttosm/cryptorec/internal/domain/models"
	"github.com/guttosm/cryptorec/internal/ingestion"
	"github.com/guttosm/cryptorec/internal/middleware"
	"github.com/guttosm/cryptorec/internal/service"
)

// Maintainer performs the operator actions behind /admin.
type Maintainer interface {
	Reload(ctx context.Context) (*ingestion.Report, error)
	Reset(ctx context.Context) error
}

// Handler provides HTTP handlers for the recommendation endpoints.
//
// Responsibilities:
//   - Validate incoming path and query parameters
//   - Call the RecommendationService with the request context
//   - Translate results into response DTOs
//   - Map typed domain errors to HTTP status codes
type Handler struct {
	svc   service.RecommendationService
	admin Maintainer
}

// NewHandler constructs a new Handler. admin may be nil, in which case the
// admin routes are not mounted.
func NewHandler(svc service.RecommendationService, admin Maintainer) *Handler {
	return &Handler{svc: svc, admin: admin}
}

// GetNormalizedRanges godoc
// @Summary      List normalized ranges
// @Description  Returns every crypto's all-time normalized range ((max-min)/min), highest first
// @Tags         cryptos
// @Produce      json
// @Success      200  {array}   dto.NormalizedRangeResponse  "Success"
// @Failure      500  {object}  dto.ErrorResponse            "Internal Error"
// @Router       /cryptos/normalized-range [get]
func (h *Handler) GetNormalizedRanges(c *gin.Context) {
	ranges, err := h.svc.NormalizedRanges(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewNormalizedRangeResponses(ranges))
}

// GetStats godoc
// @Summary      Get crypto stats
// @Description  Returns the oldest, newest, min and max price of one crypto
// @Tags         cryptos
// @Produce      json
// @Param        symbol  path      string  true  "Crypto symbol" example(BTC)
// @Success      200     {object}  dto.StatsResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse  "Unsupported crypto"
// @Failure      404     {object}  dto.ErrorResponse  "No data for crypto"
// @Failure      500     {object}  dto.ErrorResponse  "Internal Error"
// @Router       /cryptos/{symbol}/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStatsResponse(stats))
}

// GetHighestNormalizedRange godoc
// @Summary      Highest normalized range for a day
// @Description  Returns the crypto with the highest normalized range within a UTC day
// @Tags         cryptos
// @Produce      json
// @Param        date  query     string  true  "Day in YYYY-MM-DD" example(2022-01-01)
// @Success      200   {object}  dto.NormalizedRangeResponse  "Success"
// @Failure      400   {object}  dto.ErrorResponse            "Missing or invalid date"
// @Failure      404   {object}  dto.ErrorResponse            "No data for date"
// @Failure      422   {object}  dto.ErrorResponse            "No rankable data for date"
// @Failure      500   {object}  dto.ErrorResponse            "Internal Error"
// @Router       /cryptos/normalized-range/highest [get]
func (h *Handler) GetHighestNormalizedRange(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "date is required", nil)
		return
	}

	best, err := h.svc.HighestForDate(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NormalizedRangeResponse{Symbol: best.Symbol, NormalizedRange: best.NormalizedRange})
}

// Ingest godoc
// @Summary      Reload prices
// @Description  Clears the store and ingests the configured CSV directory again
// @Tags         admin
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  dto.IngestResponse  "Success"
// @Failure      401  {string}  string              "Unauthorized"
// @Failure      500  {object}  dto.ErrorResponse   "Internal Error"
// @Router       /admin/ingest [post]
func (h *Handler) Ingest(c *gin.Context) {
	rep, err := h.admin.Reload(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "ingestion failed", err)
		return
	}
	c.JSON(http.StatusOK, newIngestResponse(rep))
}

// ResetPrices godoc
// @Summary      Delete all prices
// @Description  Clears every stored observation
// @Tags         admin
// @Security     BasicAuth
// @Success      204  "No Content"
// @Failure      401  {string}  string             "Unauthorized"
// @Failure      500  {object}  dto.ErrorResponse  "Internal Error"
// @Router       /admin/prices [delete]
func (h *Handler) ResetPrices(c *gin.Context) {
	if err := h.admin.Reset(c.Request.Context()); err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "reset failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondError maps service errors to status codes. The typed error's
// text becomes the message; anything unknown is a 500.
func respondError(c *gin.Context, err error) {
	var (
		unsupported *models.UnsupportedCryptoError
		badDate     *models.InvalidDateFormatError
		noDate      *models.NoDataForDateError
		noSymbol    *models.NoDataForSymbolError
		noRankable  *models.NoRankableDataError
	)

	switch {
	case errors.As(err, &unsupported), errors.As(err, &badDate):
		middleware.AbortWithError(c, http.StatusBadRequest, err.Error(), nil)
	case errors.As(err, &noDate), errors.As(err, &noSymbol):
		middleware.AbortWithError(c, http.StatusNotFound, err.Error(), nil)
	case errors.As(err, &noRankable):
		middleware.AbortWithError(c, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, context.DeadlineExceeded):
		middleware.AbortWithError(c, http.StatusGatewayTimeout, "request timed out", err)
	default:
		middleware.AbortWithError(c, http.StatusInternalServerError, "internal server error", err)
	}
}

func newIngestResponse(rep *ingestion.Report) dto.IngestResponse {
	resp := dto.IngestResponse{Diagnostics: []string{}}
	if rep == nil {
		return resp
	}
	resp.Files, resp.Rows, resp.Loaded, resp.Skipped = rep.Files, rep.Rows, rep.Loaded, rep.Skipped
	for _, d := range rep.Diagnostics {
		resp.Diagnostics = append(resp.Diagnostics, d.String())
	}
	return resp
}
