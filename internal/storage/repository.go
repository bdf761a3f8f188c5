package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"bankstmt/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a statement ID has no row.
var ErrNotFound = errors.New("statement not found")

// Export status values tracked per statement.
const (
	ExportPending = "pending"
	ExportSynced  = "synced"
	ExportError   = "error"
)

// StatementInfo is a listing row without the transaction detail.
type StatementInfo struct {
	ID           string
	HolderName   string
	BankName     string
	Period       core.StatementPeriod
	TxCount      int
	ExportStatus string
}

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveStatement persists a statement and its transaction sequence in
// one database transaction. The statement starts in export status
// "pending" so the sync worker can pick it up.
func (r *Repository) SaveStatement(ctx context.Context, s core.Statement) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO statements (id, holder_name, account_number, bank_name, currency, start_date, end_date, export_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Holder.Name, s.Holder.AccountNumber, s.Holder.BankName, s.Holder.Currency,
		s.Period.Start.String(), s.Period.End.String(), ExportPending)
	if err != nil {
		return fmt.Errorf("insert statement: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (statement_id, seq, tx_date, description, tx_type, amount_cents, balance_cents)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare transactions: %w", err)
	}
	defer stmt.Close()

	for i, t := range s.Transactions {
		if _, err := stmt.ExecContext(ctx, s.ID, i, t.Date.String(), t.Description, string(t.Type), t.Amount.Cents, t.Balance.Cents); err != nil {
			return fmt.Errorf("insert transaction %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(ctx, "Statement saved",
		"statement_id", s.ID,
		"bank_name", s.Holder.BankName,
		"transactions", len(s.Transactions))
	return nil
}

// GetStatement loads a statement with its full transaction sequence.
func (r *Repository) GetStatement(ctx context.Context, id string) (core.Statement, error) {
	var (
		s          core.Statement
		start, end string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, holder_name, account_number, bank_name, currency, start_date, end_date
		FROM statements WHERE id = ?`, id).
		Scan(&s.ID, &s.Holder.Name, &s.Holder.AccountNumber, &s.Holder.BankName, &s.Holder.Currency, &start, &end)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Statement{}, ErrNotFound
	}
	if err != nil {
		return core.Statement{}, fmt.Errorf("select statement: %w", err)
	}

	if s.Period.Start, err = core.ParseDate(start); err != nil {
		return core.Statement{}, fmt.Errorf("parse start date: %w", err)
	}
	if s.Period.End, err = core.ParseDate(end); err != nil {
		return core.Statement{}, fmt.Errorf("parse end date: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT tx_date, description, tx_type, amount_cents, balance_cents
		FROM transactions WHERE statement_id = ? ORDER BY seq`, id)
	if err != nil {
		return core.Statement{}, fmt.Errorf("select transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			t       core.Transaction
			date    string
			txType  string
			amount  int64
			balance int64
		)
		if err := rows.Scan(&date, &t.Description, &txType, &amount, &balance); err != nil {
			return core.Statement{}, fmt.Errorf("scan transaction: %w", err)
		}
		if t.Date, err = core.ParseDate(date); err != nil {
			return core.Statement{}, fmt.Errorf("parse transaction date: %w", err)
		}
		if t.Type, err = core.ParseTransactionType(txType); err != nil {
			return core.Statement{}, fmt.Errorf("parse transaction type: %w", err)
		}
		t.Amount = core.Money{Cents: amount}
		t.Balance = core.Money{Cents: balance}
		s.Transactions = append(s.Transactions, t)
	}
	if err := rows.Err(); err != nil {
		return core.Statement{}, fmt.Errorf("iterate transactions: %w", err)
	}

	return s, nil
}

// ListStatements returns summaries of all stored statements, newest first.
func (r *Repository) ListStatements(ctx context.Context) ([]StatementInfo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.holder_name, s.bank_name, s.start_date, s.end_date, s.export_status,
		       (SELECT COUNT(*) FROM transactions t WHERE t.statement_id = s.id)
		FROM statements s ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select statements: %w", err)
	}
	defer rows.Close()

	var out []StatementInfo
	for rows.Next() {
		var (
			info       StatementInfo
			start, end string
		)
		if err := rows.Scan(&info.ID, &info.HolderName, &info.BankName, &start, &end, &info.ExportStatus, &info.TxCount); err != nil {
			return nil, fmt.Errorf("scan statement: %w", err)
		}
		if info.Period.Start, err = core.ParseDate(start); err != nil {
			return nil, fmt.Errorf("parse start date: %w", err)
		}
		if info.Period.End, err = core.ParseDate(end); err != nil {
			return nil, fmt.Errorf("parse end date: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// PendingExport returns IDs of statements not yet synced to the export
// target, oldest first, up to limit. This backs the worker's sweep in
// case AMQP messages are lost.
func (r *Repository) PendingExport(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id FROM statements
		WHERE export_status = ?
		ORDER BY created_at ASC LIMIT ?`, ExportPending, limit)
	if err != nil {
		return nil, fmt.Errorf("select pending: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan pending id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkExported records a successful export with the target's row reference.
func (r *Repository) MarkExported(ctx context.Context, id, ref string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE statements SET export_status = ?, export_ref = ?, export_error = NULL
		WHERE id = ?`, ExportSynced, ref, id)
	if err != nil {
		return fmt.Errorf("mark exported: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkExportError records a failed export attempt.
func (r *Repository) MarkExportError(ctx context.Context, id string, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE statements SET export_status = ?, export_error = ?
		WHERE id = ?`, ExportError, msg, id)
	if err != nil {
		return fmt.Errorf("mark export error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
