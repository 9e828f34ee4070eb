package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/joseph-ayodele/legal-docify/internal/common"
	"github.com/joseph-ayodele/legal-docify/internal/core/llm"
	"github.com/joseph-ayodele/legal-docify/internal/core/llm/providers"
	"github.com/joseph-ayodele/legal-docify/internal/core/pipeline"
	"github.com/joseph-ayodele/legal-docify/internal/repository"
	"github.com/joseph-ayodele/legal-docify/internal/server"
)

func main() {
	cfg, err := common.LoadConfig()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if err := cfg.ValidateServer(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(2)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	completer, closeLLM, err := providers.New(ctx, cfg.LLM, logger)
	if err != nil {
		logger.Error("init llm", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeLLM(); err != nil {
			logger.Warn("close llm", "error", err)
		}
	}()
	provider, model := llm.Describe(completer)
	logger.Info("llm client initialized", "provider", provider, "model", model, "call_timeout", cfg.LLM.CallTimeout.String())

	runs, db, err := repository.OpenRuns(ctx, cfg.Audit, logger)
	if err != nil {
		logger.Error("open audit db", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close(logger)
	} else {
		logger.Info("run audit disabled")
	}

	proc := pipeline.NewProcessor(logger, completer, pipeline.Config{CallTimeout: cfg.LLM.CallTimeout})
	svc := server.NewService(proc, runs, logger)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Server.GRPCAddr != "" {
		grpcServer := server.NewGRPCServer(svc, logger)
		g.Go(func() error { return serveGRPC(gctx, grpcServer, cfg.Server.GRPCAddr, logger) })
	}
	if cfg.Server.HTTPAddr != "" {
		httpServer := &http.Server{
			Addr:              cfg.Server.HTTPAddr,
			Handler:           server.NewRouter(svc, cfg.Server.MaxPayloadBytes, logger),
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error { return serveHTTP(gctx, httpServer, logger) })
	}

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("stopped")
}

func serveGRPC(ctx context.Context, s *grpc.Server, addr string, logger *slog.Logger) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	logger.Info("grpc serving", "addr", addr)

	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(lis) }()

	select {
	case <-ctx.Done():
		logger.Info("grpc shutting down")
		s.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}

func serveHTTP(ctx context.Context, s *http.Server, logger *slog.Logger) error {
	logger.Info("http serving", "addr", s.Addr)

	errCh := make(chan error, 1)
	go func() { errCh <- s.ListenAndServe() }()

	select {
	case <-ctx.Done():
		logger.Info("http shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
