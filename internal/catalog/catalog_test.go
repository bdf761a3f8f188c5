package catalog

import "testing"

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	if len(a) != Size() {
		t.Fatalf("expected %d labels, got %d", Size(), len(a))
	}
	a[0] = "tampered"
	if All()[0] == "tampered" {
		t.Fatal("All must return a copy, not the backing slice")
	}
}

func TestContains(t *testing.T) {
	cases := []struct {
		label string
		want  bool
	}{
		{"Paycheck", true},
		{"Cash Deposit", true},
		{"UPI Payment", true},
		{"paycheck", false}, // membership is exact
		{"", false},
		{"Lottery Win", false},
	}
	for _, tc := range cases {
		if got := Contains(tc.label); got != tc.want {
			t.Errorf("Contains(%q) = %v, want %v", tc.label, got, tc.want)
		}
	}
}
