package synth

import (
	"errors"
	"math/rand"
)

var (
	ErrNoItems    = errors.New("sampler needs at least one item")
	ErrBadWeights = errors.New("weights must match items and be positive")
)

// WeightedSampler draws items with explicit, possibly non-uniform
// probabilities. It only requires a uniform-[0,1) source.
type WeightedSampler[T any] struct {
	items []T
	cum   []float64
	total float64
}

// NewWeightedSampler builds a sampler over items with the given weights.
// Weights need not sum to one; they are used proportionally.
func NewWeightedSampler[T any](items []T, weights []float64) (*WeightedSampler[T], error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if len(weights) != len(items) {
		return nil, ErrBadWeights
	}
	s := &WeightedSampler[T]{
		items: append([]T(nil), items...),
		cum:   make([]float64, len(weights)),
	}
	for i, w := range weights {
		if w <= 0 {
			return nil, ErrBadWeights
		}
		s.total += w
		s.cum[i] = s.total
	}
	return s, nil
}

// NewUniformSampler builds an equal-weight sampler over items.
func NewUniformSampler[T any](items []T) (*WeightedSampler[T], error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	weights := make([]float64, len(items))
	for i := range weights {
		weights[i] = 1
	}
	return NewWeightedSampler(items, weights)
}

// Draw returns one item according to the configured weights.
func (s *WeightedSampler[T]) Draw(rng *rand.Rand) T {
	target := rng.Float64() * s.total
	for i, c := range s.cum {
		if target < c {
			return s.items[i]
		}
	}
	// Float64 is in [0,1) so target < total; the last bucket catches
	// any rounding at the boundary.
	return s.items[len(s.items)-1]
}
