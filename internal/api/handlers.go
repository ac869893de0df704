package api

import (
	"errors"
	"net/http"

	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/labstack/echo/v4"

	"rentdash/internal/engine"
	"rentdash/internal/export"
	"rentdash/internal/locale"
	"rentdash/internal/models"
	"rentdash/internal/render"
)

const (
	mimePNG   = "image/png"
	mimeArrow = "application/vnd.apache.arrow.stream"
	mimeXLSX  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	store      *Store
	negotiator *locale.Negotiator
}

func NewHandler(store *Store, negotiator *locale.Negotiator) *Handler {
	return &Handler{store: store, negotiator: negotiator}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/health", h.GetHealth)
	api.GET("/dimensions", h.GetDimensions)
	api.GET("/coverage", h.GetCoverage)

	api.GET("/series", h.GetSeries)
	api.GET("/series.png", h.GetSeriesPNG)
	api.GET("/series.arrow", h.GetSeriesArrow)
	api.GET("/series.xlsx", h.GetSeriesXLSX)

	api.GET("/compare", h.GetCrossSection)
	api.GET("/compare.png", h.GetCrossSectionPNG)
	api.GET("/compare.arrow", h.GetCrossSectionArrow)
	api.GET("/compare.xlsx", h.GetCrossSectionXLSX)

	api.POST("/reload", h.PostReload)
}

// --- HELPERS ---

func (h *Handler) table() (*engine.Table, error) {
	t, _, err := h.store.Table()
	if errors.Is(err, ErrNotLoaded) {
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "data is still loading").SetInternal(err)
	}
	return t, err
}

func (h *Handler) localizer(c echo.Context) *locale.Localizer {
	return h.negotiator.Pick(c.QueryParam("lang"), c.Request().Header.Get("Accept-Language"))
}

func seriesParams(c echo.Context) (area, unitType string, err error) {
	area = c.QueryParam("area")
	unitType = c.QueryParam("type")
	if area == "" || unitType == "" {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "area and type are required")
	}
	return area, unitType, nil
}

func (h *Handler) series(c echo.Context) (models.Series, *locale.Localizer, error) {
	t, err := h.table()
	if err != nil {
		return models.Series{}, nil, err
	}
	area, unitType, err := seriesParams(c)
	if err != nil {
		return models.Series{}, nil, err
	}
	l := h.localizer(c)
	return t.Series(area, unitType, l.TranslateQuarter), l, nil
}

// quarter defaults to the latest one, province to all provinces.
func (h *Handler) crossSection(c echo.Context) (models.CrossSection, *locale.Localizer, error) {
	t, err := h.table()
	if err != nil {
		return models.CrossSection{}, nil, err
	}
	quarter := c.QueryParam("quarter")
	if quarter == "" {
		quarter = t.LatestQuarter()
	} else if !t.HasQuarter(quarter) {
		return models.CrossSection{}, nil, echo.NewHTTPError(http.StatusBadRequest, "unknown quarter: "+quarter)
	}
	province := c.QueryParam("province")
	if province == "" {
		province = engine.AllProvinces
	} else if province != engine.AllProvinces && !t.HasProvince(province) {
		return models.CrossSection{}, nil, echo.NewHTTPError(http.StatusBadRequest, "unknown province: "+province)
	}
	return t.CrossSection(quarter, province), h.localizer(c), nil
}

func options(values []string, label func(string) string) []models.Option {
	out := make([]models.Option, len(values))
	for i, v := range values {
		out[i] = models.Option{Value: v, Label: label(v)}
	}
	return out
}

// --- HANDLERS ---

func (h *Handler) GetHealth(c echo.Context) error {
	t, gen, err := h.store.Table()
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, models.HealthResponse{Status: "loading"})
	}
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:     "ok",
		Loaded:     true,
		Generation: gen,
		Records:    t.Len(),
		Source:     t.Source(),
	})
}

func (h *Handler) GetDimensions(c echo.Context) error {
	t, err := h.table()
	if err != nil {
		return err
	}
	l := h.localizer(c)
	idx := t.Index()

	provinces := append([]string{engine.AllProvinces}, idx.Provinces...)
	return c.JSON(http.StatusOK, models.DimensionsResponse{
		Language:  l.Code(),
		Areas:     options(idx.Areas, l.Geography),
		UnitTypes: options(idx.UnitTypes, l.UnitType),
		Provinces: options(provinces, l.Province),
		Quarters:  options(idx.Quarters, l.TranslateQuarter),
		Latest:    t.LatestQuarter(),
	})
}

func (h *Handler) GetCoverage(c echo.Context) error {
	t, err := h.table()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t.Coverage())
}

func (h *Handler) GetSeries(c echo.Context) error {
	s, l, err := h.series(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, l.SeriesResponse(s))
}

func (h *Handler) GetSeriesPNG(c echo.Context) error {
	s, l, err := h.series(c)
	if err != nil {
		return err
	}
	p, err := render.LineChart(s, l)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, mimePNG)
	c.Response().WriteHeader(http.StatusOK)
	return render.WritePNG(c.Response(), p, render.LineWidth, render.LineHeight)
}

func (h *Handler) GetSeriesArrow(c echo.Context) error {
	s, _, err := h.series(c)
	if err != nil {
		return err
	}
	mem := memory.NewGoAllocator()
	rec := export.SeriesRecord(mem, s)
	defer rec.Release()

	c.Response().Header().Set(echo.HeaderContentType, mimeArrow)
	c.Response().WriteHeader(http.StatusOK)
	return export.WriteArrow(c.Response(), mem, rec)
}

func (h *Handler) GetSeriesXLSX(c echo.Context) error {
	s, l, err := h.series(c)
	if err != nil {
		return err
	}
	f, err := export.SeriesWorkbook(s, l)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, mimeXLSX)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="series.xlsx"`)
	c.Response().WriteHeader(http.StatusOK)
	return export.WriteWorkbook(c.Response(), f)
}

func (h *Handler) GetCrossSection(c echo.Context) error {
	cs, l, err := h.crossSection(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, l.CrossSectionResponse(cs))
}

func (h *Handler) GetCrossSectionPNG(c echo.Context) error {
	cs, l, err := h.crossSection(c)
	if err != nil {
		return err
	}
	p, err := render.BarChart(cs, l)
	if err != nil {
		return err
	}
	w, hgt := render.BarSize(len(cs.Areas))
	c.Response().Header().Set(echo.HeaderContentType, mimePNG)
	c.Response().WriteHeader(http.StatusOK)
	return render.WritePNG(c.Response(), p, w, hgt)
}

func (h *Handler) GetCrossSectionArrow(c echo.Context) error {
	cs, _, err := h.crossSection(c)
	if err != nil {
		return err
	}
	mem := memory.NewGoAllocator()
	rec := export.CrossSectionRecord(mem, cs)
	defer rec.Release()

	c.Response().Header().Set(echo.HeaderContentType, mimeArrow)
	c.Response().WriteHeader(http.StatusOK)
	return export.WriteArrow(c.Response(), mem, rec)
}

func (h *Handler) GetCrossSectionXLSX(c echo.Context) error {
	cs, l, err := h.crossSection(c)
	if err != nil {
		return err
	}
	f, err := export.CrossSectionWorkbook(cs, l)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, mimeXLSX)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="comparison.xlsx"`)
	c.Response().WriteHeader(http.StatusOK)
	return export.WriteWorkbook(c.Response(), f)
}

func (h *Handler) PostReload(c echo.Context) error {
	gen, err := h.store.Reload(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
	}
	t, current, _ := h.store.Table()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"requested":  gen,
		"generation": current,
		"records":    t.Len(),
	})
}
