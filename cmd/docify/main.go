package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joseph-ayodele/legal-docify/internal/common"
	"github.com/joseph-ayodele/legal-docify/internal/core/llm/providers"
	"github.com/joseph-ayodele/legal-docify/internal/core/pipeline"
	"github.com/joseph-ayodele/legal-docify/internal/entity"
	"github.com/joseph-ayodele/legal-docify/internal/export"
	"github.com/joseph-ayodele/legal-docify/internal/repository"
	"github.com/joseph-ayodele/legal-docify/internal/server"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		in   = flag.String("in", "", "JSON payload file (array of documents); stdin when empty")
		xlsx = flag.String("xlsx", "", "also write the result as an XLSX workbook to this path")
	)
	flag.Parse()

	cfg, err := common.LoadConfig()
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(2)
	}

	// Logs go to stderr so stdout carries only the result.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	docs, err := readPayload(*in)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	completer, closeLLM, err := providers.New(ctx, cfg.LLM, logger)
	if err != nil {
		logger.Error("init llm", "error", err)
		os.Exit(1)
	}
	defer func() { _ = closeLLM() }()

	runs, db, err := repository.OpenRuns(ctx, cfg.Audit, logger)
	if err != nil {
		logger.Error("open audit db", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close(logger)
	}

	proc := pipeline.NewProcessor(logger, completer, pipeline.Config{CallTimeout: cfg.LLM.CallTimeout})
	svc := server.NewService(proc, runs, logger)

	res, err := svc.ProcessDocuments(ctx, docs)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		printError("Error: write result: %v\n", err)
		os.Exit(1)
	}

	if *xlsx != "" {
		b, err := export.NewService(logger).ResultXLSX(res)
		if err != nil {
			printError("Error: export: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsx, b, 0o644); err != nil {
			printError("Error: write %s: %v\n", *xlsx, err)
			os.Exit(1)
		}
		logger.Info("xlsx written", "path", *xlsx)
	}
}

func readPayload(path string) ([]entity.RawDocument, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return server.DecodeDocuments(r)
}
