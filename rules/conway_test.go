package rules

import "testing"

func TestApplyConwayRules(t *testing.T) {
	for n := 0; n <= 8; n++ {
		if got, want := ApplyConwayRules(n, true), n == 2 || n == 3; got != want {
			t.Errorf("alive with %d neighbors: got %v, want %v", n, got, want)
		}
		if got, want := ApplyConwayRules(n, false), n == 3; got != want {
			t.Errorf("dead with %d neighbors: got %v, want %v", n, got, want)
		}
	}
}

func TestIsConway(t *testing.T) {
	cases := map[string]bool{
		"B3/S23":   true,
		"b3/s23":   true,
		" B3/S23 ": true,
		"23/3":     true,
		"B36/S23":  false,
		"":         false,
	}
	for rule, want := range cases {
		if got := IsConway(rule); got != want {
			t.Errorf("IsConway(%q) = %v, want %v", rule, got, want)
		}
	}
}
