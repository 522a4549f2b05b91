package scoring

import (
	"errors"
	"testing"
)

func TestReverse(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{1, 5},
		{2, 4},
		{3, 3},
		{4, 2},
		{5, 1},
	}
	for _, tt := range tests {
		got, err := Reverse(tt.in)
		if err != nil {
			t.Errorf("Reverse(%d) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Reverse(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestReverseIsSelfInverse(t *testing.T) {
	for v := 1; v <= 5; v++ {
		r, err := Reverse(v)
		if err != nil {
			t.Fatalf("Reverse(%d) failed: %v", v, err)
		}
		rr, err := Reverse(r)
		if err != nil {
			t.Fatalf("Reverse(%d) failed: %v", r, err)
		}
		if rr != v {
			t.Errorf("Reverse(Reverse(%d)) = %d, want %d", v, rr, v)
		}
	}
}

func TestReverseRejectsOutOfRange(t *testing.T) {
	for _, v := range []int{-1, 0, 6, 42} {
		if _, err := Reverse(v); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Reverse(%d) = %v, want ErrOutOfRange", v, err)
		}
	}
}

func TestClassifyScore(t *testing.T) {
	tests := []struct {
		score float64
		want  Level
	}{
		{0, LevelLow},
		{39.9, LevelLow},
		{40, LevelMid},
		{74.9, LevelMid},
		{75, LevelHigh},
		{100, LevelHigh},
	}
	for _, tt := range tests {
		if got := ClassifyScore(tt.score); got != tt.want {
			t.Errorf("ClassifyScore(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestRescaleToScore(t *testing.T) {
	tests := []struct {
		mean float64
		want float64
	}{
		{1, 0},
		{3, 50},
		{5, 100},
		{2, 25},
	}
	for _, tt := range tests {
		if got := RescaleToScore(tt.mean); got != tt.want {
			t.Errorf("RescaleToScore(%v) = %v, want %v", tt.mean, got, tt.want)
		}
	}
}
