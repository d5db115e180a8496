package actionlog

import (
	"testing"

	"kambling/internal/table"
)

func TestResetLeavesSingleBanner(t *testing.T) {
	l := New(3)
	l.Append("a", "b", "c", "d")
	l.Reset(NewGameBanner)
	got := l.Entries()
	if len(got) != 1 || got[0] != NewGameBanner {
		t.Fatalf("entries = %v", got)
	}
	if l.Offset() != 0 {
		t.Fatalf("offset = %d, want 0", l.Offset())
	}
}

func TestWindowFollowsNewestEntry(t *testing.T) {
	l := New(2)
	l.Reset(NewGameBanner)
	for i, line := range []string{"one", "two", "three", "four", "five"} {
		l.Append(line)
		win := l.Window()
		if len(win) == 0 || win[len(win)-1] != line {
			t.Fatalf("append %d: window %v does not end with %q", i, win, line)
		}
		if len(win) > 2 {
			t.Fatalf("window larger than viewport: %v", win)
		}
	}
	if l.Offset() != 4 {
		t.Fatalf("offset = %d, want 4", l.Offset())
	}
}

func TestAppendNothingIsNoop(t *testing.T) {
	l := New(0)
	l.Reset(NewGameBanner)
	l.Append()
	if l.Len() != 1 {
		t.Fatalf("len = %d, want 1", l.Len())
	}
	if len(l.Window()) != 1 {
		t.Fatalf("unbounded window should show everything: %v", l.Window())
	}
}

func TestEntriesAndCloneAreCopies(t *testing.T) {
	l := New(5)
	l.Reset(NewGameBanner)
	entries := l.Entries()
	entries[0] = "mutated"
	c := l.Clone()
	c.Append("only in clone")
	if l.Entries()[0] != NewGameBanner || l.Len() != 1 {
		t.Fatalf("original log changed: %v", l.Entries())
	}
}

func TestActionLines(t *testing.T) {
	s := &table.Snapshot{
		Status:   table.StatusFinished,
		Result:   table.ResultOpponent,
		Player:   &table.Seat{Money: 990},
		Opponent: &table.Seat{Money: 1010},
	}
	got := ActionLines(table.ActionFold, 0, s)
	want := []string{"You fold", "Your Balance: $990 | Opponent: $1010 - opponent"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("lines = %q, want %q", got, want)
	}

	s = &table.Snapshot{
		Status:    table.StatusActive,
		Player:    &table.Seat{Money: 900},
		Opponent:  &table.Seat{Money: 950},
		GeminiBot: &table.Seat{Money: 1000},
	}
	got = ActionLines(table.ActionRaise, 100, s)
	if got[0] != "You raise 100" || got[1] != "Your Balance: $900 | Opponent: $950 | Gemini: $1000" {
		t.Fatalf("unexpected lines %q", got)
	}
}
