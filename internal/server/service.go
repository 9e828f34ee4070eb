// Package server exposes ProcessDocuments over gRPC and HTTP. Both shells
// share Service, which assigns the request ID and records the audit row.
package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/legal-docify/constants"
	"github.com/joseph-ayodele/legal-docify/internal/common"
	"github.com/joseph-ayodele/legal-docify/internal/core/pipeline"
	"github.com/joseph-ayodele/legal-docify/internal/entity"
	"github.com/joseph-ayodele/legal-docify/internal/repository"
)

// Processor is the pipeline as seen by the shells.
type Processor interface {
	Process(ctx context.Context, docs []entity.RawDocument) (*entity.SummaryResult, pipeline.Report, error)
}

type Service struct {
	proc   Processor
	runs   repository.RunRepository
	logger *slog.Logger
}

// NewService wires the pipeline to the shells. runs may be nil to disable auditing.
func NewService(proc Processor, runs repository.RunRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{proc: proc, runs: runs, logger: logger}
}

const auditTimeout = 5 * time.Second

func (s *Service) ProcessDocuments(ctx context.Context, docs []entity.RawDocument) (*entity.SummaryResult, error) {
	ctx, rid := common.EnsureRequestID(ctx)
	start := time.Now()
	s.logger.Info("service.process.start", "req_id", rid, "documents", len(docs))

	res, rep, err := s.proc.Process(ctx, docs)
	s.record(ctx, rid, start, rep, err)
	if err != nil {
		s.logger.Warn("service.process.failed", "req_id", rid, "error", err, "client_error", common.IsClientError(err))
		return nil, err
	}
	s.logger.Info("service.process.ok", "req_id", rid, "elapsed_ms", time.Since(start).Milliseconds())
	return res, nil
}

// record never fails the request; audit errors are logged only.
func (s *Service) record(ctx context.Context, rid string, start time.Time, rep pipeline.Report, procErr error) {
	if s.runs == nil {
		return
	}
	run := repository.Run{
		RequestID:     rid,
		StartedAt:     start,
		Documents:     rep.Documents,
		Pages:         rep.Pages,
		CombinedChars: rep.CombinedChars,
		SummaryChars:  rep.SummaryChars,
		Status:        constants.StateDone,
		ElapsedMS:     time.Since(start).Milliseconds(),
	}
	if procErr != nil {
		run.Status = constants.StateFailed
		run.FailedState = rep.State
		var se *pipeline.StageError
		if errors.As(procErr, &se) {
			run.FailedState = se.State
		}
		run.Error = procErr.Error()
	}

	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
	defer cancel()
	if err := s.runs.Record(auditCtx, run); err != nil {
		s.logger.Warn("service.audit.failed", "req_id", rid, "error", err)
	}
}
