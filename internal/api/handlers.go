package api

import (
	"net/http"
	"strconv"
	"sync"

	"langreport/internal/engine"
	"langreport/internal/models"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	mu   sync.RWMutex
	data *models.DashboardData
}

func NewHandler(data *models.DashboardData) *Handler {
	return &Handler{data: data}
}

// SetData publishes the aggregate once the background ETL finishes. Until
// then every data endpoint answers 503.
func (h *Handler) SetData(data *models.DashboardData) {
	h.mu.Lock()
	h.data = data
	h.mu.Unlock()
}

// Data returns the published aggregate, or nil while loading.
func (h *Handler) Data() *models.DashboardData {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.data
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/languages/top", h.GetTopLanguages)
	api.GET("/languages/trend", h.GetTrend)
	api.GET("/languages/ranked", h.GetRankedByYear)
	api.GET("/table", h.GetTable)
	api.GET("/years", h.GetYears)
}

// ready fetches the aggregate or writes the loading response.
func (h *Handler) ready(c echo.Context) (*models.DashboardData, bool) {
	data := h.Data()
	if data == nil {
		_ = c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "loading"})
		return nil, false
	}
	return data, true
}

func (h *Handler) GetTopLanguages(c echo.Context) error {
	data, ok := h.ready(c)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, data.TopLanguages)
}

func (h *Handler) GetTrend(c echo.Context) error {
	data, ok := h.ready(c)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, data.Trend)
}

// rankedEntry is a RankedCount with the human-readable rank label the bar
// chart shows.
type rankedEntry struct {
	models.RankedCount
	RankLabel string `json:"rank_label"`
}

// GetRankedByYear slices the ranked series down to ?year=. A year with no
// data is an empty list, not an error; a malformed year is a 400.
func (h *Handler) GetRankedByYear(c echo.Context) error {
	data, ok := h.ready(c)
	if !ok {
		return nil
	}

	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "year must be an integer"})
	}

	slice := engine.SliceByYear(data.Ranked, year)
	out := make([]rankedEntry, 0, len(slice))
	for _, rc := range slice {
		out = append(out, rankedEntry{RankedCount: rc, RankLabel: models.RankLabels[rc.Rank]})
	}
	return c.JSON(http.StatusOK, out)
}

// GetTable serves the cleaned wide table, subset by repeated ?country=
// params when present.
func (h *Handler) GetTable(c echo.Context) error {
	data, ok := h.ready(c)
	if !ok {
		return nil
	}
	countries := c.QueryParams()["country"]
	return c.JSON(http.StatusOK, engine.FilterTable(data.Table, countries))
}

func (h *Handler) GetYears(c echo.Context) error {
	data, ok := h.ready(c)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, map[string]int{
		"min": data.MinYear,
		"max": data.MaxYear,
	})
}
