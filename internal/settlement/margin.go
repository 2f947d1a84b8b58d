package settlement

import "github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"

// Outcome is the result of a wager from the backed side's perspective.
type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
	OutcomePush Outcome = "push"
)

// PushPolicy decides what happens when the adjusted margin lands exactly
// on zero. Only whole-point spreads can produce a push.
type PushPolicy string

const (
	PushAsLoss   PushPolicy = "loss"
	PushAsRefund PushPolicy = "refund"
)

// AdjustedMargin computes the spread-adjusted margin in tenths of a
// point from the backed side's perspective. The spread is the handicap
// granted to the backed side, so +65 means the backed team covers as
// long as it loses by 6 or less.
//
// Scores arrive as whole points while the spread is stored in tenths,
// which keeps half-point spreads exact integer arithmetic.
func AdjustedMargin(homeScore, awayScore int, backed domain.Side, spreadTenths int) int {
	diff := homeScore - awayScore
	if backed == domain.SideAway {
		diff = -diff
	}
	return diff*10 + spreadTenths
}

// Resolve maps an adjusted margin to an outcome. A zero margin is a
// push and defers to the configured policy.
func Resolve(marginTenths int, policy PushPolicy) Outcome {
	switch {
	case marginTenths > 0:
		return OutcomeWon
	case marginTenths < 0:
		return OutcomeLost
	case policy == PushAsRefund:
		return OutcomePush
	default:
		return OutcomeLost
	}
}
