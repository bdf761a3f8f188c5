package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"bankstmt/internal/aggregate"
	"bankstmt/internal/amqp"
	"bankstmt/internal/core"
	"bankstmt/internal/profile"
	"bankstmt/internal/statement"
	"bankstmt/internal/storage"
	"bankstmt/internal/synth"
)

// StatementService orchestrates statement generation across the
// synthesizer, SQLite and AMQP. Storage and AMQP are both optional:
// without storage the service only generates, without AMQP nothing is
// published for export.
type StatementService struct {
	storage    *storage.Repository
	amqpClient *amqp.Client
}

func NewStatementService(storage *storage.Repository, amqpClient *amqp.Client) *StatementService {
	return &StatementService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// Generate synthesizes a statement from the profile, persists it and
// publishes an export sync message. Persist and publish failures after
// a successful save are non-fatal.
func (s *StatementService) Generate(ctx context.Context, prof profile.Profile, seed int64) (core.Statement, error) {
	params, err := prof.Params(seed)
	if err != nil {
		return core.Statement{}, fmt.Errorf("profile params: %w", err)
	}

	txns, err := synth.Generate(params)
	if err != nil {
		return core.Statement{}, fmt.Errorf("generate transactions: %w", err)
	}

	period, err := prof.Period()
	if err != nil {
		return core.Statement{}, fmt.Errorf("profile period: %w", err)
	}

	// The holder draw gets its own stream so it cannot perturb the
	// transaction sequence for a given seed.
	holderRng := rand.New(rand.NewSource(seed))
	holder := statement.RandomHolder(holderRng, prof.HolderName, prof.BankName, prof.Currency)

	stmt, err := statement.Assemble(holder, period, txns)
	if err != nil {
		return core.Statement{}, fmt.Errorf("assemble statement: %w", err)
	}

	slog.InfoContext(ctx, "Statement generated",
		"statement_id", stmt.ID,
		"bank_name", holder.BankName,
		"seed", seed,
		"transactions", len(txns))

	if s.storage == nil {
		return stmt, nil
	}

	if err := s.storage.SaveStatement(ctx, stmt); err != nil {
		return core.Statement{}, fmt.Errorf("save statement: %w", err)
	}

	if err := s.publishSyncMessage(ctx, stmt.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"statement_id", stmt.ID, "error", err)
		// Don't fail the request - the statement is saved locally and
		// the worker's pending sweep will pick it up
	}

	return stmt, nil
}

// Get loads a stored statement by ID.
func (s *StatementService) Get(ctx context.Context, id string) (core.Statement, error) {
	if s.storage == nil {
		return core.Statement{}, storage.ErrNotFound
	}
	return s.storage.GetStatement(ctx, id)
}

// List returns summaries of all stored statements.
func (s *StatementService) List(ctx context.Context) ([]storage.StatementInfo, error) {
	if s.storage == nil {
		return nil, nil
	}
	return s.storage.ListStatements(ctx)
}

// Report recomputes the aggregate report for a stored statement.
func (s *StatementService) Report(ctx context.Context, id string) (aggregate.Report, error) {
	stmt, err := s.Get(ctx, id)
	if err != nil {
		return aggregate.Report{}, fmt.Errorf("load statement: %w", err)
	}
	return aggregate.Aggregate(stmt.Transactions), nil
}

func (s *StatementService) publishSyncMessage(ctx context.Context, id string) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}
	return s.amqpClient.PublishStatementSync(ctx, id)
}

// Close closes both storage and AMQP connections
func (s *StatementService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close statement service: %v", errs)
	}

	return nil
}
