package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Step is a stepped raise adjustment. StepReset snaps back to the floor.
type Step int64

const StepReset Step = 0

// Steps are the adjustments offered next to the raise input, in display order.
var Steps = []Step{-500, -100, -10, -1, StepReset, 1, 10, 100, 500}

func (s Step) Label() string {
	switch {
	case s == StepReset:
		return "0"
	case s > 0:
		return "+" + strconv.FormatInt(int64(s), 10)
	default:
		return strconv.FormatInt(int64(s), 10)
	}
}

func ParseStep(v string) (Step, error) {
	v = strings.TrimSpace(v)
	if v == "reset" || v == "" {
		return StepReset, nil
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(v, "+"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStep, v)
	}
	for _, s := range Steps {
		if int64(s) == n {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStep, v)
}

func HighestBet(s *Snapshot) int64 {
	var highest int64
	for _, ns := range s.Others() {
		if ns.Seat.CurrentBet > highest {
			highest = ns.Seat.CurrentBet
		}
	}
	return highest
}

func playerBet(s *Snapshot) int64 {
	if s == nil || s.Player == nil {
		return 0
	}
	return s.Player.CurrentBet
}

// MinRaise is the legal raise floor: the gap between the highest bet at the
// table and the player's own bet, never negative.
func MinRaise(s *Snapshot) int64 {
	return max(0, HighestBet(s)-playerBet(s))
}

func NeedsToCall(s *Snapshot) bool {
	return HighestBet(s) > playerBet(s)
}

func CallAmount(s *Snapshot) int64 {
	return MinRaise(s)
}

func Adjust(s *Snapshot, current int64, step Step) int64 {
	floor := MinRaise(s)
	if step == StepReset {
		return floor
	}
	return max(floor, addSaturating(current, int64(step)))
}

func addSaturating(a, b int64) int64 {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return math.MaxInt64
	case b < 0 && a < math.MinInt64-b:
		return math.MinInt64
	}
	return a + b
}

// ConfirmAmount re-applies the floor to a raise about to be sent.
func ConfirmAmount(s *Snapshot, amount int64) int64 {
	return max(MinRaise(s), amount)
}

// ParseRaiseInput coerces free-form raise input to a non-negative amount.
// Anything that is not a finite non-negative number becomes 0; fractions are
// truncated and values past the int64 range saturate.
func ParseRaiseInput(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return max(0, n)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(f)
}
