package service

import (
	"math/rand/v2"
	"testing"
	"time"
)

func TestSyntheticForecaster(t *testing.T) {
	f := NewSyntheticForecaster(rand.NewPCG(7, 7))
	tests := []struct {
		month  time.Month
		desc   string
		lo, hi int
		rainy  bool
	}{
		{time.June, "비/흐림", 22, 28, true},
		{time.July, "비/흐림", 22, 28, true},
		{time.January, "눈/추움", -10, 0, false},
		{time.December, "눈/추움", -10, 0, false},
		{time.October, "쾌적", 12, 22, false},
	}
	for _, tc := range tests {
		for i := 0; i < 50; i++ {
			w := f.Forecast(time.Date(2026, tc.month, 10, 12, 0, 0, 0, KST))
			if w.Description != tc.desc || !w.Synthetic {
				t.Fatalf("%s: unexpected weather %+v", tc.month, w)
			}
			if w.TempC < tc.lo || w.TempC > tc.hi {
				t.Fatalf("%s: temperature %d outside [%d, %d]", tc.month, w.TempC, tc.lo, tc.hi)
			}
			if w.IsRainy() != tc.rainy {
				t.Fatalf("%s: expected rainy=%v", tc.month, tc.rainy)
			}
		}
	}
}
