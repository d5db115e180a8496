package view

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"kambling/internal/actionlog"
	"kambling/internal/cards"
	"kambling/internal/config"
	"kambling/internal/gateway"
	"kambling/internal/store"
	"kambling/internal/table"
	"kambling/internal/testutil"
)

type harness struct {
	st   *store.Store
	ctrl *Controller
	comp *Composer
	gs   *testutil.GameServer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gs := testutil.NewGameServer(t)
	st := store.New(8)
	gw := gateway.New(config.ClientConfig{ServerURL: gs.URL, RequestTimeout: time.Second}, st)
	return &harness{
		st:   st,
		ctrl: NewController(gw, st),
		comp: NewComposer(cards.NewPresenter(config.CardsConfig{BackURL: "back.png", Artwork: true})),
		gs:   gs,
	}
}

func (h *harness) view() TableView {
	return h.comp.Compose(h.st.State())
}

func enabled(v TableView, g Gesture) bool {
	b, ok := v.Button(g)
	return ok && b.Enabled
}

func TestComposeBeforeFirstSnapshot(t *testing.T) {
	h := newHarness(t)
	v := h.view()
	if v.Status != "loading" || v.Player != nil {
		t.Fatalf("unexpected initial view: %+v", v)
	}
	for _, g := range []Gesture{GestureRaiseOpen, GestureHold, GestureFold} {
		if enabled(v, g) {
			t.Fatalf("%s enabled before first snapshot", g)
		}
	}
	if !enabled(v, GestureNewGame) {
		t.Fatal("new game should always be available")
	}
}

func TestMountStartsExactlyOneGame(t *testing.T) {
	h := newHarness(t)
	h.gs.EnqueueSnapshot("/api/new-game", testutil.Snapshot(table.StatusActive, 0, 0))
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := h.ctrl.Mount(ctx); err != nil {
			t.Fatalf("Mount() error = %v", err)
		}
	}
	if n := len(h.gs.Requests()); n != 1 {
		t.Fatalf("expected one new-game request, got %d", n)
	}
	v := h.view()
	if v.Phase != store.PhaseActive || v.Overlay.Visible || v.Overlay.Amount != 0 {
		t.Fatalf("unexpected view after mount: %+v", v)
	}
	if len(v.Log.Entries) != 1 || v.Log.Entries[0] != actionlog.NewGameBanner {
		t.Fatalf("log = %v", v.Log.Entries)
	}
	if len(v.Board) != 0 || len(v.Player.Cards) != 2 || len(v.Others) != 1 {
		t.Fatalf("unexpected table geometry: %+v", v)
	}
	for _, c := range v.Others[0].Cards {
		if c.Kind != cards.KindBack || c.Size != cards.SizeSmall {
			t.Fatalf("opponent card not a small back: %+v", c)
		}
	}
	if v.Player.Cards[0].Kind != cards.KindArtwork || v.Player.Cards[1].Kind != cards.KindImage {
		t.Fatalf("unexpected player cards: %+v", v.Player.Cards)
	}
}

func TestCallReplacesHoldWhenBehind(t *testing.T) {
	h := newHarness(t)
	h.gs.EnqueueSnapshot("/api/new-game", testutil.Snapshot(table.StatusActive, 10, 40))
	if err := h.ctrl.Mount(context.Background()); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	v := h.view()
	call, ok := v.Button(GestureCall)
	if !ok || !call.Enabled || call.Label != "Call $30" {
		t.Fatalf("unexpected call button: %+v ok=%v", call, ok)
	}
	if enabled(v, GestureHold) {
		t.Fatal("hold should be disabled while a call is owed")
	}
	err := h.ctrl.Dispatch(context.Background(), Input{Gesture: GestureHold})
	if !errors.Is(err, ErrGestureDisabled) {
		t.Fatalf("expected ErrGestureDisabled, got %v", err)
	}
}

func TestRaiseOverlayFlow(t *testing.T) {
	h := newHarness(t)
	h.gs.EnqueueSnapshot("/api/new-game", testutil.Snapshot(table.StatusActive, 10, 40))
	h.gs.EnqueueSnapshot("/api/action", testutil.Snapshot(table.StatusActive, 80, 80))
	ctx := context.Background()
	if err := h.ctrl.Mount(ctx); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	if err := h.ctrl.Dispatch(ctx, Input{Gesture: GestureRaiseAdjust, Step: 10}); !errors.Is(err, ErrGestureDisabled) {
		t.Fatalf("adjust with overlay closed = %v, want ErrGestureDisabled", err)
	}

	steps := []struct {
		in   Input
		want int64
	}{
		{Input{Gesture: GestureRaiseOpen}, 30},
		{Input{Gesture: GestureRaiseAdjust, Step: -10}, 30},
		{Input{Gesture: GestureRaiseAdjust, Step: 10}, 40},
		{Input{Gesture: GestureRaiseAdjust, Step: 500}, 540},
		{Input{Gesture: GestureRaiseAdjust, Step: table.StepReset}, 30},
		{Input{Gesture: GestureRaiseInput, Raw: "-20"}, 30},
		{Input{Gesture: GestureRaiseInput, Raw: "abc"}, 30},
		{Input{Gesture: GestureRaiseInput, Raw: "70"}, 70},
	}
	for i, s := range steps {
		if err := h.ctrl.Dispatch(ctx, s.in); err != nil {
			t.Fatalf("step %d: Dispatch(%+v) error = %v", i, s.in, err)
		}
		v := h.view()
		if !v.Overlay.Visible || v.Overlay.Amount != s.want {
			t.Fatalf("step %d: overlay = %+v, want amount %d", i, v.Overlay, s.want)
		}
	}

	if err := h.ctrl.Dispatch(ctx, Input{Gesture: GestureRaiseConfirm}); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	v := h.view()
	if v.Overlay.Visible || v.Overlay.Amount != 0 {
		t.Fatalf("overlay not reset after confirm: %+v", v.Overlay)
	}
	last := v.Log.Entries[len(v.Log.Entries)-2]
	if last != "You raise 70" {
		t.Fatalf("log = %v", v.Log.Entries)
	}
}

func TestFoldToFinishedScenario(t *testing.T) {
	h := newHarness(t)
	h.gs.EnqueueSnapshot("/api/new-game", testutil.Snapshot(table.StatusActive, 0, 0))
	done := testutil.Snapshot(table.StatusFinished, 0, 0)
	done.Result = table.ResultOpponent
	h.gs.EnqueueSnapshot("/api/action", done)
	ctx := context.Background()
	if err := h.ctrl.Mount(ctx); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if err := h.ctrl.Dispatch(ctx, Input{Gesture: GestureFold}); err != nil {
		t.Fatalf("fold: %v", err)
	}

	v := h.view()
	for _, g := range []Gesture{GestureRaiseOpen, GestureHold, GestureFold, GestureCall} {
		if enabled(v, g) {
			t.Fatalf("%s still enabled after the hand finished", g)
		}
		if err := h.ctrl.Dispatch(ctx, Input{Gesture: g}); !errors.Is(err, ErrGestureDisabled) {
			t.Fatalf("%s after finish = %v, want ErrGestureDisabled", g, err)
		}
	}
	if !enabled(v, GestureNewHand) || !enabled(v, GestureNewGame) {
		t.Fatal("new hand and new game should be offered")
	}
	if v.Status != "Opponent wins" || v.Result != table.ResultOpponent {
		t.Fatalf("status = %q result = %q", v.Status, v.Result)
	}
	if len(v.Log.Entries) != 3 || v.Log.Entries[1] != "You fold" || !strings.HasSuffix(v.Log.Entries[2], "- opponent") {
		t.Fatalf("log = %q", v.Log.Entries)
	}
}

func TestRetryAfterTransportFailure(t *testing.T) {
	h := newHarness(t)
	h.gs.Enqueue("/api/new-game", testutil.Response{Status: 502, Body: "bad gateway"})
	h.gs.EnqueueSnapshot("/api/new-game", testutil.Snapshot(table.StatusActive, 0, 0))
	ctx := context.Background()

	if err := h.ctrl.Mount(ctx); !errors.Is(err, gateway.ErrRejected) {
		t.Fatalf("Mount() error = %v, want ErrRejected", err)
	}
	v := h.view()
	if v.Error == nil || !v.Error.Retry || !enabled(v, GestureRetry) {
		t.Fatalf("expected retry affordance, got %+v", v.Error)
	}
	if !enabled(v, GestureNewGame) {
		t.Fatal("controls should stay usable after a failure")
	}
	if err := h.ctrl.Dispatch(ctx, Input{Gesture: GestureRetry}); err != nil {
		t.Fatalf("retry: %v", err)
	}
	v = h.view()
	if v.Error != nil || v.Phase != store.PhaseActive || enabled(v, GestureRetry) {
		t.Fatalf("unexpected view after retry: %+v", v)
	}
}

func TestUnknownGesture(t *testing.T) {
	h := newHarness(t)
	if err := h.ctrl.Dispatch(context.Background(), Input{Gesture: "shuffle"}); !errors.Is(err, ErrUnknownGesture) {
		t.Fatalf("expected ErrUnknownGesture, got %v", err)
	}
}

type countingIntents struct {
	newGames atomic.Int32
}

func (c *countingIntents) NewGame(context.Context) (*table.Snapshot, error) {
	c.newGames.Add(1)
	return nil, nil
}

func (c *countingIntents) NewHand(context.Context) (*table.Snapshot, error) {
	return nil, nil
}

func (c *countingIntents) SendAction(context.Context, table.ActionType, int64) (*table.Snapshot, error) {
	return nil, nil
}

func TestNewGameAllowedFromAnyPhase(t *testing.T) {
	in := &countingIntents{}
	st := store.New(4)
	ctrl := NewController(in, st)
	ctx := context.Background()
	if err := ctrl.Dispatch(ctx, Input{Gesture: GestureNewGame}); err != nil {
		t.Fatalf("new game from uninitialized: %v", err)
	}
	st.Install(testutil.Snapshot(table.StatusFinished, 0, 0), nil)
	if err := ctrl.Dispatch(ctx, Input{Gesture: GestureNewGame}); err != nil {
		t.Fatalf("new game from finished: %v", err)
	}
	if in.newGames.Load() != 2 {
		t.Fatalf("new games = %d, want 2", in.newGames.Load())
	}
}

func TestMenuAndTerminalRender(t *testing.T) {
	h := newHarness(t)
	h.gs.EnqueueSnapshot("/api/new-game", testutil.Snapshot(table.StatusActive, 10, 40))
	ctx := context.Background()
	if err := h.ctrl.Mount(ctx); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	labels := []string{}
	for _, o := range Menu(h.view()) {
		labels = append(labels, o.Label)
	}
	if strings.Join(labels, ",") != "Raise,Call $30,Fold,New Game" {
		t.Fatalf("menu = %v", labels)
	}

	if err := h.ctrl.Dispatch(ctx, Input{Gesture: GestureRaiseOpen}); err != nil {
		t.Fatalf("open raise: %v", err)
	}
	menu := Menu(h.view())
	if len(menu) != len(table.Steps)+3 || menu[len(menu)-2].Input.Gesture != GestureRaiseConfirm {
		t.Fatalf("unexpected overlay menu: %+v", menu)
	}

	out, err := RenderTerminal(h.view())
	if err != nil {
		t.Fatalf("RenderTerminal() error = %v", err)
	}
	for _, want := range []string{"Opponent", "Pot: $50", "Hand log", actionlog.NewGameBanner, "Raise amount: $30"} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q:\n%s", want, out)
		}
	}
}
