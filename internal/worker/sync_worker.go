// Package worker moves saved statements to the export target. It is
// driven by AMQP sync messages and by a periodic sweep over statements
// still marked pending, so a lost message never strands a statement.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"bankstmt/internal/amqp"
	"bankstmt/internal/core"
	"bankstmt/internal/export"
)

// StatementStore is the slice of storage the worker needs.
type StatementStore interface {
	GetStatement(ctx context.Context, id string) (core.Statement, error)
	PendingExport(ctx context.Context, limit int) ([]string, error)
	MarkExported(ctx context.Context, id, ref string) error
	MarkExportError(ctx context.Context, id string, cause error) error
}

type SyncWorker struct {
	store     StatementStore
	writer    export.StatementWriter
	batchSize int
}

func NewSyncWorker(store StatementStore, writer export.StatementWriter, batchSize int) *SyncWorker {
	if batchSize < 1 {
		batchSize = 1
	}
	return &SyncWorker{
		store:     store,
		writer:    writer,
		batchSize: batchSize,
	}
}

// HandleSyncMessage exports one statement. Returning an error makes the
// AMQP consumer requeue the message.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg amqp.StatementSyncMessage) error {
	return w.exportStatement(ctx, msg.StatementID)
}

// ProcessPending sweeps statements still pending export, up to the
// configured batch size. Failures are recorded per statement and do not
// stop the sweep.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	ids, err := w.store.PendingExport(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list pending: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending exports", "count", len(ids))

	for _, id := range ids {
		if err := w.exportStatement(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Pending export failed",
				"statement_id", id, "error", err)
		}
	}
	return nil
}

func (w *SyncWorker) exportStatement(ctx context.Context, id string) error {
	stmt, err := w.store.GetStatement(ctx, id)
	if err != nil {
		return fmt.Errorf("load statement %s: %w", id, err)
	}

	ref, err := w.writer.AppendStatement(ctx, stmt)
	if err != nil {
		if markErr := w.store.MarkExportError(ctx, id, err); markErr != nil {
			slog.ErrorContext(ctx, "Failed to record export error",
				"statement_id", id, "error", markErr)
		}
		return fmt.Errorf("export statement %s: %w", id, err)
	}

	if err := w.store.MarkExported(ctx, id, ref); err != nil {
		return fmt.Errorf("mark exported %s: %w", id, err)
	}

	slog.InfoContext(ctx, "Statement exported",
		"statement_id", id,
		"export_ref", ref,
		"transactions", len(stmt.Transactions))
	return nil
}
