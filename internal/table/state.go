package table

import "fmt"

type Status string

const (
	StatusLoading  Status = "loading"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// Finished reports whether the hand is over. Any label other than finished
// (the server also sends "playing") counts as an active hand.
func (s Status) Finished() bool {
	return s == StatusFinished
}

type Result string

const (
	ResultPlayer   Result = "player"
	ResultOpponent Result = "opponent"
	ResultTie      Result = "tie"
)

type ActionType string

const (
	ActionCall  ActionType = "call"
	ActionHold  ActionType = "hold"
	ActionFold  ActionType = "fold"
	ActionRaise ActionType = "raise"
)

func ParseAction(v string) (ActionType, error) {
	switch a := ActionType(v); a {
	case ActionCall, ActionHold, ActionFold, ActionRaise:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, v)
	}
}

const (
	SeatPlayer    = "player"
	SeatOpponent  = "opponent"
	SeatGeminiBot = "gemini_bot"
)

type BestHand struct {
	Hand string `json:"hand"`
	Rank int    `json:"rank,omitempty"`
}

type Seat struct {
	Money      int64     `json:"money"`
	CurrentBet int64     `json:"current_bet"`
	Hole       []Card    `json:"hole"`
	Held       bool      `json:"held"`
	Best       *BestHand `json:"best,omitempty"`
}

// Snapshot is the complete table state as last reported by the game server.
// It is replaced wholesale on every response and never modified in place.
type Snapshot struct {
	Status    Status `json:"status"`
	Pot       int64  `json:"pot"`
	Result    Result `json:"result,omitempty"`
	Board     []Card `json:"board"`
	Player    *Seat  `json:"player"`
	Opponent  *Seat  `json:"opponent"`
	GeminiBot *Seat  `json:"gemini_bot,omitempty"`
}

type NamedSeat struct {
	Name string
	Seat *Seat
}

// Others lists the non-player seats present in the snapshot, opponent first.
func (s *Snapshot) Others() []NamedSeat {
	if s == nil {
		return nil
	}
	out := make([]NamedSeat, 0, 2)
	if s.Opponent != nil {
		out = append(out, NamedSeat{Name: SeatOpponent, Seat: s.Opponent})
	}
	if s.GeminiBot != nil {
		out = append(out, NamedSeat{Name: SeatGeminiBot, Seat: s.GeminiBot})
	}
	return out
}

func (s *Snapshot) Validate() error {
	if s.Player == nil {
		return fmt.Errorf("%w: %s", ErrMissingSeat, SeatPlayer)
	}
	if s.Opponent == nil {
		return fmt.Errorf("%w: %s", ErrMissingSeat, SeatOpponent)
	}
	if s.Pot < 0 {
		return fmt.Errorf("%w: pot %d", ErrNegativeAmount, s.Pot)
	}
	for _, ns := range append(s.Others(), NamedSeat{Name: SeatPlayer, Seat: s.Player}) {
		if ns.Seat.Money < 0 || ns.Seat.CurrentBet < 0 {
			return fmt.Errorf("%w: seat %s", ErrNegativeAmount, ns.Name)
		}
	}
	return nil
}
