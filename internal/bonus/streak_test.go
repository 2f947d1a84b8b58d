package bonus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBonusForStreak(t *testing.T) {
	tests := []struct {
		streak int
		want   int64
	}{
		{1, 10},
		{2, 15},
		{3, 20},
		{4, 25},
		{5, 30},
		{6, 40},
		{7, 60},
		{8, 75},
		{30, 75},
		{0, 0},
		{-1, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BonusForStreak(tt.streak), "streak=%d", tt.streak)
	}
}

func TestNextStreak(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 12, 30, 0, 0, time.UTC)
	}

	t.Run("first login ever", func(t *testing.T) {
		assert.Equal(t, 1, NextStreak(0, nil, day(10)))
	})

	t.Run("same day keeps the streak", func(t *testing.T) {
		last := day(10)
		assert.Equal(t, 4, NextStreak(4, &last, day(10)))
	})

	t.Run("consecutive day extends", func(t *testing.T) {
		last := day(10)
		assert.Equal(t, 5, NextStreak(4, &last, day(11)))
	})

	t.Run("missed day resets", func(t *testing.T) {
		last := day(10)
		assert.Equal(t, 1, NextStreak(4, &last, day(12)))
	})

	t.Run("clock time within the day is ignored", func(t *testing.T) {
		last := time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC)
		early := time.Date(2026, time.March, 11, 0, 1, 0, 0, time.UTC)
		assert.Equal(t, 3, NextStreak(2, &last, early))
	})
}
