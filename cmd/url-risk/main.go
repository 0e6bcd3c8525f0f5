package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stoik/url-risk/internal/adapters/httpapi"
	"github.com/stoik/url-risk/internal/adapters/inputs"
	"github.com/stoik/url-risk/internal/adapters/presentation"
	"github.com/stoik/url-risk/internal/adapters/report"
	"github.com/stoik/url-risk/internal/application"
	"github.com/stoik/url-risk/internal/config"
	"github.com/stoik/url-risk/internal/domain/detection"
	"github.com/stoik/url-risk/internal/ports"
)

const version = "0.3.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "analyze":
		err = analyzeCmd(os.Args[2:])
	case "serve":
		err = serveCmd(os.Args[2:])
	case "rules":
		err = rulesCmd(os.Args[2:])
	case "version":
		fmt.Println("url-risk", version)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `url-risk - heuristic phishing-risk scoring for URLs

Usage:
  url-risk analyze [--file urls.txt] [--json] [--pdf] [--out ./reports] [--config cfg.yaml] [url...]
  url-risk serve   [--addr :8080] [--config cfg.yaml]
  url-risk rules
  url-risk version

With no URLs and no --file, analyze reads piped stdin, or scores built-in examples.
`)
}

// setup loads configuration and wires the service (dependency injection in main)
func setup(configPath string, logOut io.Writer) (config.Config, *application.URLAnalysisService, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, nil, err
	}
	logger := config.InitLogger(logOut, cfg.Logging.Format, cfg.Logging.Level)

	evaluator := detection.NewEvaluator(detection.DefaultRegistry())
	service := application.NewURLAnalysisService(evaluator, logger, application.Options{
		Concurrency: cfg.Batch.Concurrency,
		MaxBatch:    cfg.Batch.MaxURLs,
	})
	return cfg, service, logger, nil
}

func analyzeCmd(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	file := fs.String("file", "", "File with one URL per line ('-' for stdin)")
	asJSON := fs.Bool("json", false, "Print JSON reports instead of tables")
	asPDF := fs.Bool("pdf", false, "Also write a PDF report per URL")
	outDir := fs.String("out", "", "Output directory for PDF reports")
	_ = fs.Parse(args)

	// Logs go to stderr so stdout stays clean for tables and JSON
	cfg, service, logger, err := setup(*configPath, os.Stderr)
	if err != nil {
		return err
	}
	// precedence: flags > config > defaults
	if *outDir == "" {
		*outDir = cfg.Reports.OutDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source := pickSource(*file, fs.Args())
	urls, err := source.URLs(ctx)
	if errors.Is(err, inputs.ErrNoInput) {
		source = inputs.NewExampleSource()
		urls, err = source.URLs(ctx)
	}
	if err != nil {
		return err
	}
	logger.Debug("urls loaded", "source", source.Name(), "count", len(urls))

	reports, err := service.AnalyzeBatch(ctx, urls)
	if err != nil {
		return err
	}

	var writers []ports.ReportWriter
	if *asJSON {
		writers = append(writers, report.NewJSONStreamWriter(os.Stdout))
	}
	if *asPDF {
		writers = append(writers, report.NewPDFWriter(*outDir))
	}

	canvas := presentation.NewChartCanvas(presentation.NewTextChartBackend(os.Stdout, 20))
	defer canvas.Close()

	for _, r := range reports {
		if !*asJSON {
			if err := canvas.Clear(); err != nil {
				return err
			}
			if err := presentation.RenderTable(os.Stdout, r.URL, r.Result); err != nil {
				return err
			}
			if len(r.Result.FeatureResults) > 0 {
				if err := canvas.Render(presentation.RadarSeries(r.Result.FeatureResults)); err != nil {
					return err
				}
			} else {
				fmt.Println()
			}
		}

		for _, w := range writers {
			path, err := w.Write(ctx, r)
			if err != nil {
				return err
			}
			if path != "" {
				logger.Info("report written", "url", r.URL, "path", path)
			}
		}
	}

	if !*asJSON && len(reports) > 1 {
		fmt.Println("Summary:")
		for _, r := range reports {
			fmt.Println("  " + presentation.Summary(r.URL, r.Result))
		}
	}
	return nil
}

func pickSource(file string, args []string) ports.URLSource {
	switch {
	case file == "-":
		return inputs.NewStdinSource()
	case file != "":
		return inputs.NewFileSource(file)
	case len(args) > 0:
		return inputs.NewArgsSource(args)
	default:
		return inputs.NewStdinSource()
	}
}

func serveCmd(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	addr := fs.String("addr", "", "Listen address (default from config)")
	_ = fs.Parse(args)

	cfg, service, logger, err := setup(*configPath, os.Stdout)
	if err != nil {
		return err
	}
	if *addr == "" {
		*addr = cfg.Server.Addr
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           httpapi.NewServer(service, logger).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("url-risk service listening", "addr", *addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func rulesCmd(args []string) error {
	fs := flag.NewFlagSet("rules", flag.ExitOnError)
	_ = fs.Parse(args)

	registry := detection.DefaultRegistry()
	for _, r := range registry.Rules() {
		fmt.Printf("%-20s %3d  %s\n    %s\n", r.ID, r.Weight, r.Name, r.Description)
	}
	fmt.Printf("\nMaximum score: %d\n", registry.MaxScore())
	return nil
}
