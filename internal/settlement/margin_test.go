package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
)

func TestAdjustedMargin(t *testing.T) {
	tests := []struct {
		name         string
		home, away   int
		backed       domain.Side
		spreadTenths int
		want         int
	}{
		{"underdog +6.5 covers on a 10-point win", 31, 21, domain.SideHome, 65, 165},
		{"underdog +6.5 covers losing by 6", 21, 27, domain.SideHome, 65, 5},
		{"underdog +6.5 fails losing by 8", 20, 28, domain.SideHome, 65, -15},
		{"favorite -6.5 covers winning by 7", 28, 21, domain.SideHome, -65, 5},
		{"favorite -6.5 fails winning by 6", 27, 21, domain.SideHome, -65, -5},
		{"away side mirrors the diff", 20, 28, domain.SideAway, 65, 145},
		{"whole spread lands on zero", 24, 21, domain.SideAway, 30, 0},
		{"pick em decided by raw score", 17, 14, domain.SideHome, 0, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdjustedMargin(tt.home, tt.away, tt.backed, tt.spreadTenths)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve(t *testing.T) {
	t.Run("positive margin wins", func(t *testing.T) {
		assert.Equal(t, OutcomeWon, Resolve(5, PushAsLoss))
		assert.Equal(t, OutcomeWon, Resolve(165, PushAsRefund))
	})

	t.Run("negative margin loses", func(t *testing.T) {
		assert.Equal(t, OutcomeLost, Resolve(-15, PushAsLoss))
		assert.Equal(t, OutcomeLost, Resolve(-5, PushAsRefund))
	})

	t.Run("push follows policy", func(t *testing.T) {
		assert.Equal(t, OutcomeLost, Resolve(0, PushAsLoss))
		assert.Equal(t, OutcomePush, Resolve(0, PushAsRefund))
	})

	t.Run("half-point spreads never push", func(t *testing.T) {
		// Every score diff is a whole number of points, so an odd
		// spreadTenths value keeps the margin away from zero.
		for diff := -30; diff <= 30; diff++ {
			margin := diff*10 + 65
			assert.NotEqual(t, OutcomePush, Resolve(margin, PushAsRefund))
		}
	})
}
