package synth

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewWeightedSamplerRejectsBadInput(t *testing.T) {
	if _, err := NewWeightedSampler([]string{}, []float64{}); !errors.Is(err, ErrNoItems) {
		t.Fatalf("expected ErrNoItems, got %v", err)
	}
	if _, err := NewWeightedSampler([]string{"a", "b"}, []float64{1}); !errors.Is(err, ErrBadWeights) {
		t.Fatalf("expected ErrBadWeights for length mismatch, got %v", err)
	}
	if _, err := NewWeightedSampler([]string{"a", "b"}, []float64{1, -1}); !errors.Is(err, ErrBadWeights) {
		t.Fatalf("expected ErrBadWeights for negative weight, got %v", err)
	}
}

func TestWeightedSamplerRespectsWeights(t *testing.T) {
	s, err := NewWeightedSampler([]string{"credit", "debit"}, []float64{0.4, 0.6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	const n = 100_000
	counts := map[string]int{}
	for i := 0; i < n; i++ {
		counts[s.Draw(rng)]++
	}

	creditShare := float64(counts["credit"]) / n
	if creditShare < 0.38 || creditShare > 0.42 {
		t.Fatalf("credit share %.3f outside expected band around 0.40", creditShare)
	}
}

func TestUniformSamplerCoversAllItems(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	s, err := NewUniformSampler(items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rng := rand.New(rand.NewSource(7))
	seen := map[string]bool{}
	for i := 0; i < 1_000; i++ {
		seen[s.Draw(rng)] = true
	}
	for _, it := range items {
		if !seen[it] {
			t.Errorf("item %q never drawn", it)
		}
	}
}

func TestDrawIsDeterministicPerSeed(t *testing.T) {
	s, _ := NewWeightedSampler([]int{1, 2, 3}, []float64{1, 2, 3})

	draw := func(seed int64) []int {
		rng := rand.New(rand.NewSource(seed))
		out := make([]int, 20)
		for i := range out {
			out[i] = s.Draw(rng)
		}
		return out
	}

	a, b := draw(42), draw(42)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sequence diverged at %d: %d vs %d", i, a[i], b[i])
		}
	}
}
