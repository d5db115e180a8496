// Package actionlog keeps the human-readable transcript shown next to the
// table and the viewport that follows its newest entry.
package actionlog

import (
	"fmt"
	"strings"

	"kambling/internal/table"
)

const (
	NewGameBanner = "--- New game ---"
	NewHandBanner = "--- New hand ---"
)

// Log is append-only; Reset is the only way entries disappear. The zero value
// is an empty log with an unbounded viewport.
type Log struct {
	entries []string
	height  int
	offset  int
}

func New(height int) *Log {
	return &Log{height: max(0, height)}
}

func (l *Log) Reset(banner string) {
	l.entries = []string{banner}
	l.follow()
}

func (l *Log) Append(lines ...string) {
	if len(lines) == 0 {
		return
	}
	l.entries = append(l.entries, lines...)
	l.follow()
}

func (l *Log) Len() int {
	return len(l.entries)
}

func (l *Log) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Offset is the index of the first visible entry.
func (l *Log) Offset() int {
	return l.offset
}

func (l *Log) Height() int {
	return l.height
}

// Window returns the visible entries. After any append the newest entry is
// always the last element.
func (l *Log) Window() []string {
	end := len(l.entries)
	if l.height > 0 {
		end = min(end, l.offset+l.height)
	}
	out := make([]string, end-l.offset)
	copy(out, l.entries[l.offset:end])
	return out
}

func (l *Log) Clone() *Log {
	return &Log{entries: l.Entries(), height: l.height, offset: l.offset}
}

func (l *Log) follow() {
	l.offset = 0
	if l.height > 0 && len(l.entries) > l.height {
		l.offset = len(l.entries) - l.height
	}
}

// ActionLines summarizes a player action and the balances it produced.
func ActionLines(action table.ActionType, amount int64, s *table.Snapshot) []string {
	first := "You " + string(action)
	if amount != 0 {
		first += fmt.Sprintf(" %d", amount)
	}
	return []string{first, BalanceLine(s)}
}

func BalanceLine(s *table.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your Balance: $%d | Opponent: $%d", money(s.Player), money(s.Opponent))
	if s.GeminiBot != nil {
		fmt.Fprintf(&b, " | Gemini: $%d", s.GeminiBot.Money)
	}
	if s.Result != "" {
		b.WriteString(" - " + string(s.Result))
	}
	return b.String()
}

func money(seat *table.Seat) int64 {
	if seat == nil {
		return 0
	}
	return seat.Money
}
