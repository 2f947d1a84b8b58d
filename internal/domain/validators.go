package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ValidateEmail performs a shallow shape check; deliverability is the
// mail system's problem.
func ValidateEmail(email string) error {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return ErrValidation(fmt.Sprintf("invalid email %q", email))
	}
	return nil
}

// ValidatePositiveAmount rejects zero or negative coin amounts.
func ValidatePositiveAmount(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount()
	}
	return nil
}

// ValidateSide rejects anything but home/away.
func ValidateSide(s Side) error {
	if s != SideHome && s != SideAway {
		return ErrValidation(fmt.Sprintf("backed side must be home or away, got %q", s))
	}
	return nil
}

// ValidateWagerDraft checks the caller-supplied wager fields.
func ValidateWagerDraft(d WagerDraft) error {
	if err := ValidatePositiveAmount(d.Amount); err != nil {
		return err
	}
	return ValidateSide(d.BackedSide)
}

// ValidatePayoutTiers enforces the tier invariants: positive ranks,
// no duplicate ranks, and a total share of at most 100%.
func ValidatePayoutTiers(tiers []PayoutTier) error {
	seen := make(map[int]bool, len(tiers))
	total := 0
	for _, t := range tiers {
		if t.Rank < 1 {
			return ErrValidation(fmt.Sprintf("tier rank must be >= 1, got %d", t.Rank))
		}
		if seen[t.Rank] {
			return ErrValidation(fmt.Sprintf("duplicate tier for rank %d", t.Rank))
		}
		seen[t.Rank] = true
		if t.PercentBps < 0 {
			return ErrValidation(fmt.Sprintf("tier %d has negative share", t.Rank))
		}
		total += t.PercentBps
	}
	if total > 10000 {
		return ErrValidation(fmt.Sprintf("tier shares sum to %d bps, exceeding 10000", total))
	}
	return nil
}

// ValidateStandingsRow checks a wallet row loaded for ranking. Rows that
// fail are skipped by the distributor instead of silently defaulting
// missing fields to zero.
func ValidateStandingsRow(w *Wallet) error {
	if w.ID == uuid.Nil {
		return ErrInvalidStandingsData("unknown", "missing wallet id")
	}
	if w.UserID == uuid.Nil {
		return ErrInvalidStandingsData(w.ID.String(), "missing user id")
	}
	if w.CoinsRemaining < 0 {
		return ErrInvalidStandingsData(w.ID.String(), fmt.Sprintf("negative coins_remaining %d", w.CoinsRemaining))
	}
	if w.CoinsWon < 0 {
		return ErrInvalidStandingsData(w.ID.String(), fmt.Sprintf("negative coins_won %d", w.CoinsWon))
	}
	if w.WagersWon > w.WagersPlaced {
		return ErrInvalidStandingsData(w.ID.String(), "wagers_won exceeds wagers_placed")
	}
	return nil
}
