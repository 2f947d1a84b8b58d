package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePayoutTiers(t *testing.T) {
	tests := []struct {
		name    string
		tiers   []PayoutTier
		wantErr bool
	}{
		{"empty list", nil, false},
		{"podium only", []PayoutTier{{1, 2500}, {2, 1500}, {3, 500}}, false},
		{"full share", []PayoutTier{{1, 2500}, {2, 1500}, {3, 500}, {4, 5500}}, false},
		{"zero rank", []PayoutTier{{0, 1000}}, true},
		{"negative rank", []PayoutTier{{-1, 1000}}, true},
		{"duplicate rank", []PayoutTier{{1, 2500}, {1, 1500}}, true},
		{"negative share", []PayoutTier{{1, -100}}, true},
		{"over one hundred percent", []PayoutTier{{1, 6000}, {2, 5000}}, true},
		{"zero share is allowed", []PayoutTier{{1, 0}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayoutTiers(tt.tiers)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateWagerDraft(t *testing.T) {
	t.Run("valid draft", func(t *testing.T) {
		assert.NoError(t, ValidateWagerDraft(WagerDraft{Amount: 100, BackedSide: SideHome}))
	})

	t.Run("zero amount", func(t *testing.T) {
		assert.Error(t, ValidateWagerDraft(WagerDraft{Amount: 0, BackedSide: SideHome}))
	})

	t.Run("unknown side", func(t *testing.T) {
		assert.Error(t, ValidateWagerDraft(WagerDraft{Amount: 100, BackedSide: Side("draw")}))
	})
}
