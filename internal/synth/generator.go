// Package synth generates plausible transaction histories under a
// running-balance constraint. Generation is deterministic for a given
// seed; no global random state is touched.
package synth

import (
	"errors"
	"math/rand"

	"bankstmt/internal/catalog"
	"bankstmt/internal/core"
)

const (
	defaultMinAmountCents = 5_000   // 50.00
	defaultMaxAmountCents = 500_000 // 5000.00
	defaultCreditWeight   = 0.4
	maxStepDays           = 4
)

var (
	ErrNegativeStart  = errors.New("start balance cannot be negative")
	ErrNegativeCount  = errors.New("count cannot be negative")
	ErrBadAmountRange = errors.New("amount range is inverted or not positive")
	ErrBadTypeWeight  = errors.New("credit weight must be in (0,1)")
)

// Params configures a generation run. Zero values for AmountMin,
// AmountMax and CreditWeight select the defaults (50.00-5000.00, 40%
// credit / 60% debit).
type Params struct {
	StartBalance core.Money
	Count        int
	Start        core.Date
	End          core.Date
	Seed         int64

	AmountMin    core.Money
	AmountMax    core.Money
	CreditWeight float64
}

// Validate fails fast on construction errors before any draw happens.
func (p Params) Validate() error {
	if p.StartBalance.Cents < 0 {
		return ErrNegativeStart
	}
	if p.Count < 0 {
		return ErrNegativeCount
	}
	if _, err := core.NewPeriod(p.Start, p.End); err != nil {
		return err
	}
	min, max := p.amountRange()
	if min <= 0 || max < min {
		return ErrBadAmountRange
	}
	if w := p.creditWeight(); w <= 0 || w >= 1 {
		return ErrBadTypeWeight
	}
	return nil
}

func (p Params) amountRange() (int64, int64) {
	min, max := p.AmountMin.Cents, p.AmountMax.Cents
	if min == 0 && max == 0 {
		return defaultMinAmountCents, defaultMaxAmountCents
	}
	return min, max
}

func (p Params) creditWeight() float64 {
	if p.CreditWeight == 0 {
		return defaultCreditWeight
	}
	return p.CreditWeight
}

// Generate produces an ordered transaction sequence of at most p.Count
// records. A debit that would push the balance below zero is discarded
// without advancing the date cursor; generation stops early once the
// cursor passes the end of the period.
func Generate(p Params) ([]core.Transaction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(p.Seed))

	creditWeight := p.creditWeight()
	types, err := NewWeightedSampler(
		[]core.TransactionType{core.Credit, core.Debit},
		[]float64{creditWeight, 1 - creditWeight},
	)
	if err != nil {
		return nil, err
	}
	labels, err := NewUniformSampler(catalog.All())
	if err != nil {
		return nil, err
	}

	minAmount, maxAmount := p.amountRange()
	balance := p.StartBalance.Cents
	cursor := p.Start
	txns := make([]core.Transaction, 0, p.Count)

	for i := 0; i < p.Count; i++ {
		amount := minAmount + rng.Int63n(maxAmount-minAmount+1)
		typ := types.Draw(rng)

		if typ == core.Debit && balance-amount < 0 {
			// Insufficient funds: drop the draw, keep balance and
			// cursor untouched.
			continue
		}

		if typ == core.Credit {
			balance += amount
		} else {
			balance -= amount
		}

		label := labels.Draw(rng)
		cursor = cursor.AddDays(1 + rng.Intn(maxStepDays))
		if cursor.After(p.End) {
			break
		}

		txns = append(txns, core.Transaction{
			Date:        cursor,
			Description: label,
			Type:        typ,
			Amount:      core.Money{Cents: amount},
			Balance:     core.Money{Cents: balance},
		})
	}

	return txns, nil
}
