package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Credit TransactionType = "credit"
	Debit  TransactionType = "debit"
)

const dateLayout = "2006-01-02"

type (
	TransactionType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Transaction struct {
		Date        Date            `json:"date"`
		Description string          `json:"description"`
		Type        TransactionType `json:"type"`
		Amount      Money           `json:"amount"`
		Balance     Money           `json:"balance"`
	}

	AccountHolder struct {
		Name          string `json:"name"`
		AccountNumber string `json:"accountNumber"`
		BankName      string `json:"bankName"`
		Currency      string `json:"currency"`
	}

	StatementPeriod struct {
		Start Date `json:"startDate"`
		End   Date `json:"endDate"`
	}

	Statement struct {
		ID           string          `json:"-"`
		Holder       AccountHolder   `json:"accountHolder"`
		Period       StatementPeriod `json:"statementPeriod"`
		Transactions []Transaction   `json:"transactions"`
	}
)

var (
	ErrZeroDate         = errors.New("date cannot be zero")
	ErrInvalidPeriod    = errors.New("period start after end")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrUnknownType      = errors.New("unknown transaction type")
	ErrNegativeBalance  = errors.New("negative balance")
	ErrEmptyDescription = errors.New("empty description")
)

// NewDate creates a date-only Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// AddDays returns the date n calendar days later.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// YearMonth returns the calendar year and month of the date.
func (d Date) YearMonth() (int, int) {
	return d.Time.Year(), int(d.Time.Month())
}

func (d Date) String() string {
	return d.Time.Format(dateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// MarshalJSON encodes the date as an ISO-8601 YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseTransactionType parses a type string, case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Credit):
		return Credit, nil
	case string(Debit):
		return Debit, nil
	default:
		return "", ErrUnknownType
	}
}

func (t TransactionType) Validate() error {
	switch t {
	case Credit, Debit:
		return nil
	default:
		return ErrUnknownType
	}
}

// NewPeriod builds a statement period, enforcing start <= end.
func NewPeriod(start, end Date) (StatementPeriod, error) {
	p := StatementPeriod{Start: start, End: end}
	if err := p.Validate(); err != nil {
		return StatementPeriod{}, err
	}
	return p, nil
}

func (p StatementPeriod) Validate() error {
	if err := p.Start.Validate(); err != nil {
		return err
	}
	if err := p.End.Validate(); err != nil {
		return err
	}
	if p.Start.After(p.End) {
		return ErrInvalidPeriod
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if t.Balance.Cents < 0 {
		return ErrNegativeBalance
	}
	return nil
}
