package view

import (
	"errors"
	"fmt"

	"kambling/internal/store"
	"kambling/internal/table"
)

var (
	ErrUnknownGesture  = errors.New("unknown_gesture")
	ErrGestureDisabled = errors.New("gesture_disabled")
)

type Gesture string

const (
	GestureRaiseOpen    Gesture = "raise-open"
	GestureRaiseAdjust  Gesture = "raise-adjust"
	GestureRaiseInput   Gesture = "raise-input"
	GestureRaiseCancel  Gesture = "raise-cancel"
	GestureRaiseConfirm Gesture = "raise-confirm"
	GestureCall         Gesture = "call"
	GestureHold         Gesture = "hold"
	GestureFold         Gesture = "fold"
	GestureNewHand      Gesture = "new-hand"
	GestureNewGame      Gesture = "new-game"
	GestureRetry        Gesture = "retry"
)

var gestures = []Gesture{
	GestureRaiseOpen, GestureRaiseAdjust, GestureRaiseInput, GestureRaiseCancel, GestureRaiseConfirm,
	GestureCall, GestureHold, GestureFold, GestureNewHand, GestureNewGame, GestureRetry,
}

func ParseGesture(v string) (Gesture, error) {
	for _, g := range gestures {
		if string(g) == v {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGesture, v)
}

// Remote reports whether g results in a game server request.
func (g Gesture) Remote() bool {
	switch g {
	case GestureRaiseConfirm, GestureCall, GestureHold, GestureFold, GestureNewHand, GestureNewGame, GestureRetry:
		return true
	default:
		return false
	}
}

// Input is one user gesture. Step is read by raise-adjust, Raw by raise-input.
type Input struct {
	Gesture Gesture
	Step    table.Step
	Raw     string
}

// Enabled derives whether g is currently allowed from the table phase, the
// snapshot and the raise overlay. It is the only source of button state.
func Enabled(st store.State, g Gesture) bool {
	active := st.Phase == store.PhaseActive
	needsCall := table.NeedsToCall(st.Snapshot)
	switch g {
	case GestureRaiseOpen, GestureFold:
		return active
	case GestureRaiseAdjust, GestureRaiseInput, GestureRaiseCancel, GestureRaiseConfirm:
		return active && st.UI.OverlayVisible
	case GestureCall:
		return active && needsCall
	case GestureHold:
		return active && !needsCall
	case GestureNewHand:
		return st.Phase == store.PhaseFinished
	case GestureNewGame:
		return true
	case GestureRetry:
		return st.Err != nil
	default:
		return false
	}
}
