package main

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/aaparts/whatif-margin/internal/catalog"
	"github.com/aaparts/whatif-margin/internal/chart"
	"github.com/aaparts/whatif-margin/internal/config"
	"github.com/aaparts/whatif-margin/internal/dataset"
	"github.com/aaparts/whatif-margin/internal/logging"
	"github.com/aaparts/whatif-margin/internal/margin"
)

//go:embed web/templates/*.html
var webFS embed.FS

const regionWarning = "Please select a valid Location Region before calculation."

type catalogReader interface {
	Regions(ctx context.Context) ([]string, error)
	Options(ctx context.Context, region string) (catalog.Options, error)
	ProductIDs(ctx context.Context) ([]string, error)
	PartCategories(ctx context.Context) ([]string, error)
}

type server struct {
	catalog catalogReader
	log     *zap.Logger
}

type baseViewData struct {
	ErrorMessage   string
	WarningMessage string
}

type metricRow struct {
	Label string
	Value string
}

type homeViewData struct {
	baseViewData
	Regions        []string
	ProductIDs     []string
	PartCategories []string
	Options        catalog.Options
	Form           calcForm
	Metrics        []metricRow
	ChartURL       string
}

type calculateResponse struct {
	Result margin.Result  `json:"result"`
	Sweep  []margin.Point `json:"sweep"`
}

func main() {
	cfg := config.Load()

	if err := logging.Initialize(cfg.Logging); err != nil {
		panic(fmt.Sprintf("initialize logging: %v", err))
	}
	defer logging.Sync()

	rows, err := dataset.Load(cfg.DatasetPath, cfg.DatasetSheet)
	if err != nil {
		logging.Fatal("failed to load dataset", zap.String("path", cfg.DatasetPath), zap.Error(err))
	}

	cat, stats, err := catalog.Build(context.Background(), cfg.DBPath, rows)
	if err != nil {
		logging.Fatal("failed to build region catalog", zap.Error(err))
	}
	defer func() {
		if err := cat.Close(); err != nil {
			logging.Error("failed to close region catalog", zap.Error(err))
		}
	}()
	logging.Info("dataset loaded",
		zap.String("path", cfg.DatasetPath),
		zap.Int("rows", stats.Rows),
		zap.Int("catalog_entries", stats.Inserts),
	)
	if stats.Inserts == 0 {
		logging.Warn("dataset has no catalog values; dropdowns will be empty", zap.String("path", cfg.DatasetPath))
	}

	srv := &server{catalog: cat, log: logging.Logger}

	addr := ":" + cfg.Port
	logging.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		logging.Fatal("server stopped", zap.Error(err))
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Get("/", s.handleHome)
	r.Post("/calculate", s.handleCalculate)
	r.Get("/chart.png", s.handleChart)
	r.Get("/api/options", s.handleOptions)
	r.Get("/api/calculate", s.handleAPICalculate)
	r.Get("/healthz", s.handleHealth)
	return r
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	form := defaultCalcForm()
	form.Region = r.URL.Query().Get("region")

	data, err := s.pageData(r.Context(), form)
	if err != nil {
		s.log.Error("load page options", zap.Error(err))
		http.Error(w, "failed to load options", http.StatusInternalServerError)
		return
	}
	s.renderTemplate(w, http.StatusOK, "home.html", data)
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form, validationErr := parseCalcForm(r)

	data, err := s.pageData(r.Context(), form)
	if err != nil {
		s.log.Error("load page options", zap.Error(err))
		http.Error(w, "failed to load options", http.StatusInternalServerError)
		return
	}

	if validationErr != nil {
		data.ErrorMessage = validationErr.Error()
		s.renderTemplate(w, http.StatusBadRequest, "home.html", data)
		return
	}

	if form.Region == margin.Unselected {
		data.WarningMessage = regionWarning
		s.renderTemplate(w, http.StatusOK, "home.html", data)
		return
	}

	result := margin.Calculate(form.input()).Rounded()
	data.Metrics = metricRows(result)
	data.ChartURL = chartURL(form)
	s.renderTemplate(w, http.StatusOK, "home.html", data)
}

func (s *server) handleChart(w http.ResponseWriter, r *http.Request) {
	form, err := parseCalcForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if form.Region == margin.Unselected {
		http.Error(w, regionWarning, http.StatusUnprocessableEntity)
		return
	}

	points := margin.Sweep(form.BasePrice, form.SellingCost, form.Quantity, form.Region, margin.DefaultDiscounts())

	var buf bytes.Buffer
	if err := chart.WritePNG(&buf, form.Region, points); err != nil {
		s.log.Error("render chart", zap.Error(err))
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *server) handleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.catalog.Options(r.Context(), r.URL.Query().Get("region"))
	if err != nil {
		s.log.Error("load region options", zap.Error(err))
		errorResponse(w, http.StatusInternalServerError, "failed to load options")
		return
	}
	jsonResponse(w, http.StatusOK, opts)
}

func (s *server) handleAPICalculate(w http.ResponseWriter, r *http.Request) {
	form, err := parseCalcForm(r)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if form.Region == margin.Unselected {
		jsonResponse(w, http.StatusUnprocessableEntity, map[string]string{"warning": regionWarning})
		return
	}

	jsonResponse(w, http.StatusOK, calculateResponse{
		Result: margin.Calculate(form.input()).Rounded(),
		Sweep:  margin.Sweep(form.BasePrice, form.SellingCost, form.Quantity, form.Region, margin.DefaultDiscounts()),
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) pageData(ctx context.Context, form calcForm) (homeViewData, error) {
	regions, err := s.catalog.Regions(ctx)
	if err != nil {
		return homeViewData{}, fmt.Errorf("load regions: %w", err)
	}
	products, err := s.catalog.ProductIDs(ctx)
	if err != nil {
		return homeViewData{}, fmt.Errorf("load product ids: %w", err)
	}
	categories, err := s.catalog.PartCategories(ctx)
	if err != nil {
		return homeViewData{}, fmt.Errorf("load part categories: %w", err)
	}
	opts, err := s.catalog.Options(ctx, form.Region)
	if err != nil {
		return homeViewData{}, fmt.Errorf("load region options: %w", err)
	}

	return homeViewData{
		Regions:        regions,
		ProductIDs:     products,
		PartCategories: categories,
		Options:        opts,
		Form:           form,
	}, nil
}

func metricRows(r margin.Result) []metricRow {
	pct := func(v float64) string {
		if !r.PercentDefined {
			return "n/a"
		}
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	money := func(v float64) string {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}

	return []metricRow{
		{Label: "Selling Price", Value: money(r.SellingPrice)},
		{Label: "Adjusted Cost", Value: money(r.AdjustedCost)},
		{Label: "Gross Margin", Value: money(r.GrossMargin)},
		{Label: "Gross Margin % (raw)", Value: pct(r.GrossMarginPct)},
		{Label: "Gross Margin % (adj for data variation)", Value: pct(r.GrossMarginPctAdjusted)},
		{Label: "Total Profit", Value: money(r.TotalProfit)},
	}
}

func chartURL(form calcForm) string {
	q := url.Values{}
	q.Set("region", form.Region)
	q.Set("base_price", strconv.FormatFloat(form.BasePrice, 'f', -1, 64))
	q.Set("selling_cost", strconv.FormatFloat(form.SellingCost, 'f', -1, 64))
	q.Set("quantity", strconv.Itoa(form.Quantity))
	return "/chart.png?" + q.Encode()
}

func (s *server) renderTemplate(w http.ResponseWriter, status int, page string, data any) {
	templates, err := template.ParseFS(webFS,
		"web/templates/layout.html",
		"web/templates/"+page,
	)
	if err != nil {
		s.log.Error("parse template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.log.Error("render template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}
