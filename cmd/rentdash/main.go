package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"rentdash/internal/api"
	"rentdash/internal/config"
	"rentdash/internal/engine"
	"rentdash/internal/export"
	"rentdash/internal/locale"
	"rentdash/internal/models"
	"rentdash/internal/render"
)

var (
	configFile string
	cfg        config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rentdash",
		Short: "Quarterly rent price dashboard backend",
		Long: `rentdash serves and exports the average asking rent survey:
a quarterly time series per area and unit type, and a comparison of
areas for one quarter and province.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cmd.Flags(), configFile)
			if err != nil {
				return err
			}
			lvl, _ := config.ParseLevel(cfg.LogLevel)
			log.SetLevel(lvl)
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Config file (yaml, json or toml)")
	pf.String("data", "", "Path to the rent table (json, csv or xlsx)")
	pf.String("format", "", "Table format override: json, csv, xlsx")
	pf.String("sheet", "", "Workbook sheet to read (default: first sheet)")
	pf.String("lang", "fr", "Display language: en or fr")
	pf.String("log-level", "info", "Log level: debug, info, warn, error, off")
	pf.Bool("strict", false, "Fail on duplicate area/unit type records")
	pf.Bool("chronological", false, "Order quarters by year and quarter instead of column order")
	pf.StringSlice("unit-type", nil, "Unit types compared across areas (repeatable)")

	rootCmd.AddCommand(serveCmd(), dimsCmd(), seriesCmd(), compareCmd(), coverageCmd(), exportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadTable(ctx context.Context) (*engine.Table, error) {
	if err := cfg.RequireData(); err != nil {
		return nil, err
	}
	return engine.LoadTable(ctx, cfg.Data, cfg.LoadOptions(), cfg.TableOptions()...)
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// --- serve ---

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.RequireData(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// 1. Initialize Echo (Starts Instantly)
			e := echo.New()
			e.HideBanner = true
			e.JSONSerializer = api.JSONSerializer{}
			e.Use(middleware.CORS())
			e.Use(middleware.Recover())
			e.Use(middleware.Logger())

			// 2. Handler starts with no table: the API answers 503 until loaded
			store := api.NewStore(func(ctx context.Context) (*engine.Table, error) {
				return loadTable(ctx)
			})
			h := api.NewHandler(store, locale.NewNegotiator(cfg.Lang))
			h.RegisterRoutes(e)

			// 3. Launch the load in the background
			go func() {
				log.Info("BACKGROUND: loading rent table...")
				if _, err := store.Reload(ctx); err != nil {
					log.Errorf("BACKGROUND: initial load failed: %v", err)
				}
			}()

			// 4. Start Server
			go func() {
				log.Infof("Server ready on %s (data loading in background...)", cfg.Addr)
				if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Errorf("server: %v", err)
					stop()
				}
			}()

			<-ctx.Done()
			shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return e.Shutdown(shutdown)
		},
	}
	cmd.Flags().String("addr", ":8080", "Listen address")
	return cmd
}

// --- query commands ---

func dimsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dims",
		Short: "Print the dimension index (areas, unit types, provinces, quarters)",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(t.Index())
		},
	}
}

func seriesCmd() *cobra.Command {
	var area, unitType string
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Print the quarterly series for one area and unit type",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(cmd.Context())
			if err != nil {
				return err
			}
			l := locale.NewNegotiator(cfg.Lang).Default()
			s := t.Series(area, unitType, l.TranslateQuarter)
			return printJSON(l.SeriesResponse(s))
		},
	}
	cmd.Flags().StringVar(&area, "area", "", "Geography name (required)")
	cmd.Flags().StringVar(&unitType, "type", "", "Rental unit type (required)")
	cmd.MarkFlagRequired("area")
	cmd.MarkFlagRequired("type")
	return cmd
}

func compareCmd() *cobra.Command {
	var quarter, province string
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Print the cross-area comparison for one quarter",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(cmd.Context())
			if err != nil {
				return err
			}
			if quarter == "" {
				quarter = t.LatestQuarter()
			} else if !t.HasQuarter(quarter) {
				return fmt.Errorf("unknown quarter %q", quarter)
			}
			if province != engine.AllProvinces && !t.HasProvince(province) {
				return fmt.Errorf("unknown province %q", province)
			}
			l := locale.NewNegotiator(cfg.Lang).Default()
			return printJSON(l.CrossSectionResponse(t.CrossSection(quarter, province)))
		},
	}
	cmd.Flags().StringVar(&quarter, "quarter", "", "Quarter key, e.g. \"Q2 2024\" (default: latest)")
	cmd.Flags().StringVar(&province, "province", engine.AllProvinces, "Province name or \"all\"")
	return cmd
}

func coverageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coverage",
		Short: "Count present, missing and estimated cells per quarter",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(t.Coverage())
		},
	}
}

// --- export ---

func exportCmd() *cobra.Command {
	var (
		view, out                     string
		formats                       []string
		area, unitType, quarter, prov string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a series or comparison as arrow, xlsx and/or png files",
		Example: `  rentdash export --data rent.json --view series --area "Toronto, Census metropolitan area (CMA)" --type Room --as png,arrow --out toronto-room
  rentdash export --data rent.csv --view compare --province Ontario --as xlsx --out ontario`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(cmd.Context())
			if err != nil {
				return err
			}
			l := locale.NewNegotiator(cfg.Lang).Default()

			var writers map[string]func(*os.File) error
			switch view {
			case "series":
				if area == "" || unitType == "" {
					return fmt.Errorf("--area and --type are required for the series view")
				}
				writers = seriesWriters(t.Series(area, unitType, l.TranslateQuarter), l)
			case "compare":
				if quarter == "" {
					quarter = t.LatestQuarter()
				} else if !t.HasQuarter(quarter) {
					return fmt.Errorf("unknown quarter %q", quarter)
				}
				if prov != engine.AllProvinces && !t.HasProvince(prov) {
					return fmt.Errorf("unknown province %q", prov)
				}
				writers = crossSectionWriters(t.CrossSection(quarter, prov), l)
			default:
				return fmt.Errorf("unknown view %q (want series or compare)", view)
			}

			return runExports(cmd.Context(), writers, formats, out)
		},
	}
	cmd.Flags().StringVar(&view, "view", "series", "What to export: series or compare")
	cmd.Flags().StringSliceVar(&formats, "as", []string{"xlsx"}, "Output formats: arrow, xlsx, png")
	cmd.Flags().StringVarP(&out, "out", "o", "rentdash", "Output path without extension")
	cmd.Flags().StringVar(&area, "area", "", "Geography name (series view)")
	cmd.Flags().StringVar(&unitType, "type", "", "Rental unit type (series view)")
	cmd.Flags().StringVar(&quarter, "quarter", "", "Quarter key (compare view, default: latest)")
	cmd.Flags().StringVar(&prov, "province", engine.AllProvinces, "Province (compare view)")
	return cmd
}

func seriesWriters(s models.Series, l *locale.Localizer) map[string]func(*os.File) error {
	return map[string]func(*os.File) error{
		"arrow": func(f *os.File) error {
			mem := memory.NewGoAllocator()
			rec := export.SeriesRecord(mem, s)
			defer rec.Release()
			return export.WriteArrow(f, mem, rec)
		},
		"xlsx": func(f *os.File) error {
			wb, err := export.SeriesWorkbook(s, l)
			if err != nil {
				return err
			}
			return export.WriteWorkbook(f, wb)
		},
		"png": func(f *os.File) error {
			p, err := render.LineChart(s, l)
			if err != nil {
				return err
			}
			return render.WritePNG(f, p, render.LineWidth, render.LineHeight)
		},
	}
}

func crossSectionWriters(cs models.CrossSection, l *locale.Localizer) map[string]func(*os.File) error {
	return map[string]func(*os.File) error{
		"arrow": func(f *os.File) error {
			mem := memory.NewGoAllocator()
			rec := export.CrossSectionRecord(mem, cs)
			defer rec.Release()
			return export.WriteArrow(f, mem, rec)
		},
		"xlsx": func(f *os.File) error {
			wb, err := export.CrossSectionWorkbook(cs, l)
			if err != nil {
				return err
			}
			return export.WriteWorkbook(f, wb)
		},
		"png": func(f *os.File) error {
			p, err := render.BarChart(cs, l)
			if err != nil {
				return err
			}
			w, h := render.BarSize(len(cs.Areas))
			return render.WritePNG(f, p, w, h)
		},
	}
}

// runExports writes out.<format> for every requested format in parallel.
// All formats are checked before any file is created.
func runExports(ctx context.Context, writers map[string]func(*os.File) error, formats []string, out string) error {
	paths := make(map[string]func(*os.File) error, len(formats))
	for _, format := range formats {
		format = strings.ToLower(strings.TrimSpace(format))
		write, ok := writers[format]
		if !ok {
			return fmt.Errorf("unknown export format %q", format)
		}
		paths[out+"."+format] = write
	}

	g, _ := errgroup.WithContext(ctx)
	for path, write := range paths {
		path, write := path, write
		g.Go(func() error { return writeFile(path, write) })
	}
	return g.Wait()
}

func writeFile(path string, write func(*os.File) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	log.Infof("wrote %s", path)
	return f.Close()
}
