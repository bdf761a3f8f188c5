// Package aggregate derives income/expense/savings metrics and monthly
// summaries from a transaction table. The engine is a pure function of
// its input: it never mutates the table and holds no state between
// calls.
package aggregate

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"bankstmt/internal/core"
)

var (
	// ErrSchema signals that the input table as a whole cannot be
	// aggregated: it is empty, or no row carries the required fields.
	ErrSchema = errors.New("input does not match the transaction schema")
)

// MonthlyBucket groups credit and debit totals for one calendar month.
// A month with only one side populated reports zero for the other, not
// absence.
type MonthlyBucket struct {
	Year   int        `json:"year"`
	Month  int        `json:"month"`
	Credit core.Money `json:"credit"`
	Debit  core.Money `json:"debit"`
}

// Key returns the bucket's year-month key, e.g. "2024-01".
func (b MonthlyBucket) Key() string {
	return fmt.Sprintf("%04d-%02d", b.Year, b.Month)
}

// Net returns credit minus debit for the bucket.
func (b MonthlyBucket) Net() core.Money {
	return core.Money{Cents: b.Credit.Cents - b.Debit.Cents}
}

// Report is the aggregation output. It is recomputed on demand and
// never cached or mutated in place.
type Report struct {
	TotalIncome  core.Money `json:"totalIncome"`
	TotalExpense core.Money `json:"totalExpense"`
	NetSavings   core.Money `json:"netSavings"`

	Monthly []MonthlyBucket `json:"monthly"`

	CreditCount int `json:"creditCount"`
	DebitCount  int `json:"debitCount"`
	TotalCount  int `json:"totalCount"`

	MinAmount  core.Money `json:"minAmount"`
	MaxAmount  core.Money `json:"maxAmount"`
	MeanAmount core.Money `json:"meanAmount"`

	// Per-month averages are the arithmetic mean of the monthly bucket
	// totals. HasMonthly distinguishes "all zero" from "no months at
	// all"; the averages are meaningless when it is false.
	AvgMonthlyIncome  core.Money `json:"avgMonthlyIncome"`
	AvgMonthlyExpense core.Money `json:"avgMonthlyExpense"`
	AvgMonthlySavings core.Money `json:"avgMonthlySavings"`
	HasMonthly        bool       `json:"hasMonthly"`

	// SkippedRows counts malformed rows excluded from the computation.
	SkippedRows int `json:"skippedRows"`
}

// Aggregate computes a report over a typed transaction sequence. An
// empty input yields an all-zero report with HasMonthly false.
func Aggregate(txns []core.Transaction) Report {
	var r Report
	index := make(map[string]int)

	var amountSum int64
	for _, tx := range txns {
		r.TotalCount++
		amountSum += tx.Amount.Cents

		if r.TotalCount == 1 || tx.Amount.Cents < r.MinAmount.Cents {
			r.MinAmount = tx.Amount
		}
		if tx.Amount.Cents > r.MaxAmount.Cents {
			r.MaxAmount = tx.Amount
		}

		year, month := tx.Date.YearMonth()
		key := fmt.Sprintf("%04d-%02d", year, month)
		i, ok := index[key]
		if !ok {
			i = len(r.Monthly)
			index[key] = i
			r.Monthly = append(r.Monthly, MonthlyBucket{Year: year, Month: month})
		}

		switch tx.Type {
		case core.Credit:
			r.CreditCount++
			r.TotalIncome.Cents += tx.Amount.Cents
			r.Monthly[i].Credit.Cents += tx.Amount.Cents
		case core.Debit:
			r.DebitCount++
			r.TotalExpense.Cents += tx.Amount.Cents
			r.Monthly[i].Debit.Cents += tx.Amount.Cents
		}
	}

	r.NetSavings.Cents = r.TotalIncome.Cents - r.TotalExpense.Cents

	if r.TotalCount > 0 {
		r.MeanAmount.Cents = roundedMean(amountSum, r.TotalCount)
	}

	if len(r.Monthly) > 0 {
		r.HasMonthly = true
		var credit, debit int64
		for _, b := range r.Monthly {
			credit += b.Credit.Cents
			debit += b.Debit.Cents
		}
		months := len(r.Monthly)
		r.AvgMonthlyIncome.Cents = roundedMean(credit, months)
		r.AvgMonthlyExpense.Cents = roundedMean(debit, months)
		r.AvgMonthlySavings.Cents = roundedMean(credit-debit, months)
	}

	return r
}

// Row is one record of an externally supplied transaction table, still
// in string form. Balance is optional; description may be empty.
type Row struct {
	Date        string
	Description string
	Type        string
	Amount      string
	Balance     string
}

// AggregateRows validates and aggregates an ingested table. Rows that
// fail schema validation are excluded and counted in the report rather
// than aborting the computation. A table where no row at all parses is
// a configuration error, not a silent zero-result.
func AggregateRows(rows []Row) (Report, error) {
	if len(rows) == 0 {
		return Report{}, fmt.Errorf("%w: no rows", ErrSchema)
	}

	txns := make([]core.Transaction, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		tx, err := parseRow(row)
		if err != nil {
			skipped++
			continue
		}
		txns = append(txns, tx)
	}

	if len(txns) == 0 {
		return Report{}, fmt.Errorf("%w: none of %d rows parsed", ErrSchema, len(rows))
	}

	r := Aggregate(txns)
	r.SkippedRows = skipped
	return r, nil
}

func parseRow(row Row) (core.Transaction, error) {
	date, err := core.ParseDate(row.Date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse date %q: %w", row.Date, err)
	}
	typ, err := core.ParseTransactionType(row.Type)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse type %q: %w", row.Type, err)
	}
	amount, err := core.ParseMoney(row.Amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse amount %q: %w", row.Amount, err)
	}

	tx := core.Transaction{
		Date:        date,
		Description: strings.TrimSpace(row.Description),
		Type:        typ,
		Amount:      amount,
	}
	if b := strings.TrimSpace(row.Balance); b != "" {
		balance, err := core.ParseMoney(b)
		if err != nil {
			return core.Transaction{}, fmt.Errorf("parse balance %q: %w", row.Balance, err)
		}
		tx.Balance = balance
	}
	return tx, nil
}

func roundedMean(sum int64, n int) int64 {
	return int64(math.Round(float64(sum) / float64(n)))
}
