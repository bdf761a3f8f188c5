// Command bankstmt-gen generates synthetic statements from the command
// line, without the server or worker. It writes JSON, XLSX or a
// terminal table, and can batch-generate several statements at once.
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/sync/errgroup"

	"bankstmt/internal/aggregate"
	"bankstmt/internal/core"
	"bankstmt/internal/export/xlsx"
	"bankstmt/internal/profile"
	"bankstmt/internal/statement"
	"bankstmt/internal/synth"
)

func main() {
	var (
		profilePath = flag.String("profile", "", "YAML profile path (defaults to the built-in profile)")
		seed        = flag.Int64("seed", 0, "generation seed (0 picks a time-based seed)")
		count       = flag.Int("count", 0, "transaction count override")
		statements  = flag.Int("statements", 1, "number of statements to generate")
		format      = flag.String("format", "table", "output format: table, json or xlsx")
		out         = flag.String("out", "", "output file, or directory when generating several statements")
	)
	flag.Parse()

	if err := run(*profilePath, *seed, *count, *statements, *format, *out); err != nil {
		fmt.Fprintln(os.Stderr, "bankstmt-gen:", err)
		os.Exit(1)
	}
}

func run(profilePath string, seed int64, count, statements int, format, out string) error {
	prof := profile.Default()
	if profilePath != "" {
		var err error
		if prof, err = profile.Load(profilePath); err != nil {
			return err
		}
	}
	if count > 0 {
		prof.Transactions = count
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	switch format {
	case "table", "json", "xlsx":
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if statements < 1 {
		return fmt.Errorf("need at least one statement, got %d", statements)
	}
	if statements > 1 {
		if out == "" {
			return fmt.Errorf("generating %d statements requires -out directory", statements)
		}
		if err := os.MkdirAll(out, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	if statements == 1 {
		stmt, err := generateOne(prof, seed)
		if err != nil {
			return err
		}
		return writeOne(stmt, format, out)
	}

	// Each statement gets its own derived seed so a batch is
	// reproducible from the base seed alone.
	var g errgroup.Group
	g.SetLimit(4)
	for i := 0; i < statements; i++ {
		stmtSeed := seed + int64(i)
		g.Go(func() error {
			stmt, err := generateOne(prof, stmtSeed)
			if err != nil {
				return fmt.Errorf("statement for seed %d: %w", stmtSeed, err)
			}
			path := filepath.Join(out, fmt.Sprintf("statement-%d.%s", stmtSeed, extension(format)))
			return writeFile(stmt, format, path)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("wrote %d statements to %s\n", statements, out)
	return nil
}

func generateOne(prof profile.Profile, seed int64) (core.Statement, error) {
	params, err := prof.Params(seed)
	if err != nil {
		return core.Statement{}, err
	}
	txns, err := synth.Generate(params)
	if err != nil {
		return core.Statement{}, err
	}
	period, err := prof.Period()
	if err != nil {
		return core.Statement{}, err
	}

	rng := rand.New(rand.NewSource(seed))
	holder := statement.RandomHolder(rng, prof.HolderName, prof.BankName, prof.Currency)
	return statement.Assemble(holder, period, txns)
}

func writeOne(stmt core.Statement, format, out string) error {
	if out != "" {
		return writeFile(stmt, format, out)
	}
	switch format {
	case "json":
		data, err := statement.EncodeJSON(stmt)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	case "xlsx":
		return fmt.Errorf("xlsx output requires -out")
	default:
		printTables(stmt)
		return nil
	}
}

func writeFile(stmt core.Statement, format, path string) error {
	switch format {
	case "json":
		data, err := statement.EncodeJSON(stmt)
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0644)
	case "xlsx":
		return xlsx.Save(stmt, path)
	default:
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return renderTables(stmt, f)
	}
}

func printTables(stmt core.Statement) {
	_ = renderTables(stmt, os.Stdout)
}

func renderTables(stmt core.Statement, w io.Writer) error {
	account := table.NewWriter()
	account.SetOutputMirror(w)
	account.SetStyle(table.StyleLight)
	account.AppendRows([]table.Row{
		{"Name", stmt.Holder.Name},
		{"Account Number", stmt.Holder.AccountNumber},
		{"Bank", stmt.Holder.BankName},
		{"Currency", stmt.Holder.Currency},
		{"Period", fmt.Sprintf("%s .. %s", stmt.Period.Start, stmt.Period.End)},
	})
	account.Render()

	txns := table.NewWriter()
	txns.SetOutputMirror(w)
	txns.SetStyle(table.StyleLight)
	txns.AppendHeader(table.Row{"Date", "Description", "Type", "Amount", "Balance"})
	for _, t := range stmt.Transactions {
		txns.AppendRow(table.Row{t.Date, t.Description, t.Type, t.Amount, t.Balance})
	}
	txns.Render()

	report := aggregate.Aggregate(stmt.Transactions)
	summary := table.NewWriter()
	summary.SetOutputMirror(w)
	summary.SetStyle(table.StyleLight)
	summary.AppendRows([]table.Row{
		{"Total Income", report.TotalIncome},
		{"Total Expense", report.TotalExpense},
		{"Net Savings", report.NetSavings},
		{"Transactions", report.TotalCount},
		{"Credits / Debits", fmt.Sprintf("%d / %d", report.CreditCount, report.DebitCount)},
		{"Min / Max / Mean", fmt.Sprintf("%s / %s / %s", report.MinAmount, report.MaxAmount, report.MeanAmount)},
	})
	if report.HasMonthly {
		summary.AppendSeparator()
		summary.AppendRows([]table.Row{
			{"Avg Monthly Income", report.AvgMonthlyIncome},
			{"Avg Monthly Expense", report.AvgMonthlyExpense},
			{"Avg Monthly Savings", report.AvgMonthlySavings},
		})
	}
	summary.Render()
	return nil
}

func extension(format string) string {
	switch format {
	case "json":
		return "json"
	case "xlsx":
		return "xlsx"
	default:
		return "txt"
	}
}
