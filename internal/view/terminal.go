package view

import (
	"fmt"
	"strings"

	"kambling/internal/cards"
	"kambling/internal/table"

	"github.com/pterm/pterm"
)

// MenuOption is one entry of the terminal action menu.
type MenuOption struct {
	Label string
	Input Input
}

// Menu lists the gestures the terminal offers for v. While the raise overlay
// is open only raise controls are offered.
func Menu(v TableView) []MenuOption {
	if v.Overlay.Visible {
		out := make([]MenuOption, 0, len(v.Overlay.Steps)+3)
		for _, s := range v.Overlay.Steps {
			label := s.Label
			if table.Step(s.Value) == table.StepReset {
				label = fmt.Sprintf("Reset to $%d", v.Overlay.Min)
			}
			out = append(out, MenuOption{Label: label, Input: Input{Gesture: GestureRaiseAdjust, Step: table.Step(s.Value)}})
		}
		out = append(out,
			MenuOption{Label: "Type amount", Input: Input{Gesture: GestureRaiseInput}},
			MenuOption{Label: fmt.Sprintf("Confirm raise $%d", v.Overlay.Amount), Input: Input{Gesture: GestureRaiseConfirm}},
			MenuOption{Label: "Cancel", Input: Input{Gesture: GestureRaiseCancel}},
		)
		return out
	}
	out := make([]MenuOption, 0, len(v.Buttons))
	for _, b := range v.Buttons {
		if b.Enabled {
			out = append(out, MenuOption{Label: b.Label, Input: Input{Gesture: b.Gesture}})
		}
	}
	return out
}

// RenderTerminal draws the table with pterm panels: other seats on top, the
// board and pot in the middle, the player and the log at the bottom.
func RenderTerminal(v TableView) (string, error) {
	others := make([]pterm.Panel, 0, len(v.Others))
	for _, s := range v.Others {
		others = append(others, pterm.Panel{Data: seatBox(s, false)})
	}
	if len(others) == 0 {
		others = append(others, pterm.Panel{Data: pterm.DefaultBox.WithTitle("Table").Sprint(v.Status)})
	}

	board := pterm.DefaultBox.
		WithTitle(pterm.LightYellow("|BOARD|")).
		WithTitleTopCenter().
		WithHorizontalPadding(4).
		Sprint(boardLine(v))

	bottom := []pterm.Panel{}
	if v.Player != nil {
		bottom = append(bottom, pterm.Panel{Data: seatBox(*v.Player, true)})
	}
	bottom = append(bottom, pterm.Panel{Data: logBox(v.Log)})

	out, err := pterm.DefaultPanel.WithPanels(pterm.Panels{
		others,
		{{Data: board}},
		bottom,
	}).Srender()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(out)
	b.WriteString("\n")
	b.WriteString(statusLine(v))
	if v.Overlay.Visible {
		b.WriteString("\n")
		b.WriteString(pterm.LightCyan(fmt.Sprintf("Raise amount: $%d (min $%d)", v.Overlay.Amount, v.Overlay.Min)))
	}
	if v.Error != nil {
		b.WriteString("\n")
		b.WriteString(pterm.LightRed("Request failed: " + v.Error.Message))
	}
	return b.String(), nil
}

func seatBox(s SeatView, main bool) string {
	pad := 4
	if main {
		pad = 10
	}
	held := ""
	if s.Held {
		held = pterm.LightGreen(" (HELD)")
	}
	return pterm.DefaultBox.
		WithTitle(s.Label+held).
		WithTitleTopLeft().
		WithHorizontalPadding(pad).
		Sprintf("%s\nBet: $%d\nTotal: $%d\nBest: %s", cardRow(s.Cards), s.CurrentBet, s.Money, s.Best)
}

func boardLine(v TableView) string {
	row := cardRow(v.Board)
	if row == "" {
		row = pterm.Gray("no community cards")
	}
	return fmt.Sprintf("%s\nPot: $%d", row, v.Pot)
}

func cardRow(ps []cards.Presentation) string {
	parts := make([]string, 0, len(ps))
	for _, p := range ps {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, " ")
}

func logBox(l LogView) string {
	body := strings.Join(l.Entries, "\n")
	if body == "" {
		body = " "
	}
	return pterm.DefaultBox.WithTitle("Hand log").WithTitleTopLeft().Sprint(body)
}

func statusLine(v TableView) string {
	s := "Status: " + v.Status
	if v.Result != "" {
		s += fmt.Sprintf(" (%s)", v.Result)
	}
	if v.Pending != "" {
		s += pterm.Gray(fmt.Sprintf(" [waiting on %s]", v.Pending))
	}
	return s
}
