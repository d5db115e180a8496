package view

import (
	"fmt"

	"kambling/internal/cards"
	"kambling/internal/store"
	"kambling/internal/table"
)

type SeatView struct {
	Name       string               `json:"name"`
	Label      string               `json:"label"`
	Money      int64                `json:"money"`
	CurrentBet int64                `json:"current_bet"`
	Held       bool                 `json:"held"`
	Best       string               `json:"best"`
	Cards      []cards.Presentation `json:"cards"`
}

type ButtonView struct {
	Gesture Gesture `json:"gesture"`
	Label   string  `json:"label"`
	Enabled bool    `json:"enabled"`
}

type StepView struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

type OverlayView struct {
	Visible bool       `json:"visible"`
	Amount  int64      `json:"amount"`
	Min     int64      `json:"min"`
	Steps   []StepView `json:"steps"`
}

type LogView struct {
	Entries []string `json:"entries"`
	Offset  int      `json:"offset"`
	Total   int      `json:"total"`
}

type ErrorView struct {
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

// TableView is the rendered table as a plain value, shared by the terminal
// and web front ends.
type TableView struct {
	Version uint64               `json:"version"`
	Phase   store.Phase          `json:"phase"`
	Status  string               `json:"status"`
	Result  table.Result         `json:"result,omitempty"`
	Pot     int64                `json:"pot"`
	Board   []cards.Presentation `json:"board"`
	Player  *SeatView            `json:"player,omitempty"`
	Others  []SeatView           `json:"others"`
	Buttons []ButtonView         `json:"buttons"`
	Overlay OverlayView          `json:"overlay"`
	Log     LogView              `json:"log"`
	Pending store.Intent         `json:"pending,omitempty"`
	Error   *ErrorView           `json:"error,omitempty"`
}

var seatLabels = map[string]string{
	table.SeatPlayer:    "You",
	table.SeatOpponent:  "Opponent",
	table.SeatGeminiBot: "Gemini",
}

type Composer struct {
	cards *cards.Presenter
}

func NewComposer(p *cards.Presenter) *Composer {
	return &Composer{cards: p}
}

func (c *Composer) Compose(st store.State) TableView {
	snap := st.Snapshot
	v := TableView{
		Version: st.Version,
		Phase:   st.Phase,
		Status:  StatusText(st),
		Board:   []cards.Presentation{},
		Others:  []SeatView{},
		Buttons: c.buttons(st),
		Overlay: OverlayView{
			Visible: st.UI.OverlayVisible,
			Amount:  st.UI.RaiseAmount,
			Min:     table.MinRaise(snap),
			Steps:   steps(),
		},
		Pending: st.Pending,
	}
	if log := st.UI.Log; log != nil {
		v.Log = LogView{Entries: log.Window(), Offset: log.Offset(), Total: log.Len()}
	}
	if st.Err != nil {
		v.Error = &ErrorView{Message: st.Err.Error(), Retry: Enabled(st, GestureRetry)}
	}
	if snap == nil {
		return v
	}
	v.Result = snap.Result
	v.Pot = snap.Pot
	v.Board = c.cards.PresentAll(snap.Board, cards.SizeMedium)
	if snap.Player != nil {
		p := c.seat(table.SeatPlayer, snap.Player, cards.SizeMedium)
		v.Player = &p
	}
	for _, ns := range snap.Others() {
		v.Others = append(v.Others, c.seat(ns.Name, ns.Seat, cards.SizeSmall))
	}
	return v
}

func (c *Composer) seat(name string, s *table.Seat, size cards.Size) SeatView {
	out := SeatView{
		Name:       name,
		Label:      seatLabels[name],
		Money:      s.Money,
		CurrentBet: s.CurrentBet,
		Held:       s.Held,
		Best:       "—",
		Cards:      c.cards.PresentAll(s.Hole, size),
	}
	if s.Best != nil && s.Best.Hand != "" {
		out.Best = s.Best.Hand
	}
	return out
}

func (c *Composer) buttons(st store.State) []ButtonView {
	out := []ButtonView{{Gesture: GestureRaiseOpen, Label: "Raise", Enabled: Enabled(st, GestureRaiseOpen)}}
	if Enabled(st, GestureCall) {
		out = append(out, ButtonView{
			Gesture: GestureCall,
			Label:   fmt.Sprintf("Call $%d", table.CallAmount(st.Snapshot)),
			Enabled: true,
		})
	}
	out = append(out,
		ButtonView{Gesture: GestureHold, Label: "Hold", Enabled: Enabled(st, GestureHold)},
		ButtonView{Gesture: GestureFold, Label: "Fold", Enabled: Enabled(st, GestureFold)},
	)
	if Enabled(st, GestureNewHand) {
		out = append(out, ButtonView{Gesture: GestureNewHand, Label: "New Hand", Enabled: true})
	}
	out = append(out, ButtonView{Gesture: GestureNewGame, Label: "New Game", Enabled: true})
	if Enabled(st, GestureRetry) {
		out = append(out, ButtonView{Gesture: GestureRetry, Label: "Retry", Enabled: true})
	}
	return out
}

func steps() []StepView {
	out := make([]StepView, 0, len(table.Steps))
	for _, s := range table.Steps {
		out = append(out, StepView{Label: s.Label(), Value: int64(s)})
	}
	return out
}

// StatusText is the status line under the player's stats.
func StatusText(st store.State) string {
	snap := st.Snapshot
	if snap == nil || st.Phase == store.PhaseLoading {
		return string(store.PhaseLoading)
	}
	if !snap.Status.Finished() {
		return string(snap.Status)
	}
	switch snap.Result {
	case table.ResultPlayer:
		return "You win!"
	case table.ResultOpponent:
		return "Opponent wins"
	case table.ResultTie:
		return "Tie"
	default:
		return "Hand over"
	}
}

func (v TableView) Button(g Gesture) (ButtonView, bool) {
	for _, b := range v.Buttons {
		if b.Gesture == g {
			return b, true
		}
	}
	return ButtonView{}, false
}
