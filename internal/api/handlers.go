package api

import (
	"bytes"
	"dashboard/internal/engine"
	"dashboard/internal/models"
	"dashboard/internal/present"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// Rebuild produces a fresh state for POST /api/refresh.
type Rebuild func() *engine.State

type Handler struct {
	store   *engine.Store
	rebuild Rebuild
}

func NewHandler(store *engine.Store, rebuild Rebuild) *Handler {
	return &Handler{store: store, rebuild: rebuild}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.GetDashboard, h.requireState)
	e.GET("/api/health", h.GetHealth)

	api := e.Group("/api", h.requireState)
	api.GET("/menu", h.GetMenu)
	api.GET("/charts", h.GetCharts)
	api.GET("/charts/:name", h.GetChart)
	api.GET("/charts/:name/png", h.GetChartPNG)
	api.GET("/customers", h.GetCustomers)
	api.GET("/customers/map", h.GetCustomerMap)
	api.GET("/customers/metrics", h.GetCustomerMetrics)
	api.POST("/refresh", h.PostRefresh)
}

// requireState answers 503 until the first generation has finished.
func (h *Handler) requireState(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.store.Load() == nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "data is still being generated")
		}
		return next(c)
	}
}

// --- PARAMS ---

func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// getFilterParams reads segments, min_value and min_purchases. A missing
// segments parameter means every segment; an empty one means none.
func getFilterParams(c echo.Context) (models.Filter, error) {
	f := models.Filter{Segments: models.AllSegments}

	if raw, ok := c.QueryParams()["segments"]; ok {
		f.Segments = []models.Segment{}
		seen := make(map[models.Segment]bool)
		for _, v := range raw {
			for _, part := range strings.Split(v, ",") {
				if strings.TrimSpace(part) == "" {
					continue
				}
				seg, err := models.ParseSegment(part)
				if err != nil {
					return f, err
				}
				if !seen[seg] {
					seen[seg] = true
					f.Segments = append(f.Segments, seg)
				}
			}
		}
	}

	if v := c.QueryParam("min_value"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
			return f, fmt.Errorf("min_value must be a non-negative number")
		}
		f.MinLifetimeValue = n
	}
	if v := c.QueryParam("min_purchases"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, fmt.Errorf("min_purchases must be a non-negative integer")
		}
		f.MinPurchases = n
	}
	return f, nil
}

func filtered(c echo.Context, st *engine.State) (models.Filter, models.CustomerTable, error) {
	f, err := getFilterParams(c)
	if err != nil {
		return f, nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return f, engine.Filter(st.Customers, f), nil
}

func (h *Handler) panel(c echo.Context) (models.Panel, present.ChartStyle, error) {
	name := c.Param("name")
	p, ok := h.store.Load().Panel(name)
	if !ok {
		return p, "", echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("unknown chart %q", name))
	}

	styleName := p.Style
	if v := c.QueryParam("style"); v != "" {
		styleName = v
	}
	style, err := present.ParseChartStyle(styleName)
	if err != nil {
		return p, "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return p, style, nil
}

// --- HANDLERS ---

func (h *Handler) GetHealth(c echo.Context) error {
	health := models.Health{Status: "ok"}
	if st := h.store.Load(); st != nil {
		health.Ready = true
		at := st.GeneratedAt
		health.GeneratedAt = &at
	}
	return c.JSON(http.StatusOK, health)
}

func (h *Handler) GetMenu(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Load().Menu)
}

func (h *Handler) GetCharts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Load().Panels)
}

func (h *Handler) GetChart(c echo.Context) error {
	p, style, err := h.panel(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, present.BuildChart(p.Data, p.Title, style))
}

func (h *Handler) GetChartPNG(c echo.Context) error {
	p, style, err := h.panel(c)
	if err != nil {
		return err
	}
	width, _ := strconv.Atoi(c.QueryParam("width"))
	height, _ := strconv.Atoi(c.QueryParam("height"))

	var buf bytes.Buffer
	if err := present.RenderChartPNG(&buf, p.Data, p.Title, style, width, height); err != nil {
		if errors.Is(err, present.ErrEmptyChart) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		return fmt.Errorf("render %s: %w", p.Name, err)
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// returns the filtered detail table (coordinates stripped) with metrics
func (h *Handler) GetCustomers(c echo.Context) error {
	f, table, err := filtered(c, h.store.Load())
	if err != nil {
		return err
	}

	rows := engine.Rows(table)
	total := len(rows)
	limit, offset := getPaginationParams(c, total)

	page := []models.CustomerRow{}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		page = rows[offset:end]
	}

	return c.JSON(http.StatusOK, models.CustomerReport{
		Filter:  f,
		Metrics: engine.Summarize(table),
		Rows:    page,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

func (h *Handler) GetCustomerMap(c echo.Context) error {
	_, table, err := filtered(c, h.store.Load())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, present.BuildMap(table))
}

// bounds always describe the full table so the filter inputs keep their range
func (h *Handler) GetCustomerMetrics(c echo.Context) error {
	st := h.store.Load()
	_, table, err := filtered(c, st)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.MetricsReport{
		Metrics:  engine.Summarize(table),
		Segments: engine.SegmentBreakdown(table),
		Bounds:   engine.TableBounds(st.Customers),
	})
}

func (h *Handler) PostRefresh(c echo.Context) error {
	if h.rebuild == nil {
		return echo.NewHTTPError(http.StatusNotImplemented, "refresh is not configured")
	}
	st := h.rebuild()
	h.store.Swap(st)
	log.Printf("[INFO] state refreshed at %s (%d customers)", st.GeneratedAt.Format("2006-01-02 15:04:05"), len(st.Customers))
	return c.JSON(http.StatusOK, models.Health{Status: "refreshed", Ready: true, GeneratedAt: &st.GeneratedAt})
}
