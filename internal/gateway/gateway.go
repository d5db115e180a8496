// Package gateway sends player intents to the game server and installs the
// snapshot each one returns into the table store.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"kambling/internal/actionlog"
	"kambling/internal/config"
	"kambling/internal/store"
	"kambling/internal/table"

	"github.com/rs/zerolog/log"
)

const (
	pathNewGame = "/api/new-game"
	pathNewHand = "/api/new-hand"
	pathAction  = "/api/action"
)

type ActionRequest struct {
	Action table.ActionType `json:"action"`
	Amount int64            `json:"amount"`
}

// Gateway owns every mutating request for one table. Requests are serialized:
// a second intent waits for the first response to be installed and is then
// checked against the snapshot that response produced.
type Gateway struct {
	mu      sync.Mutex
	client  *HTTPClient
	baseURL string
	timeout time.Duration
	store   *store.Store
}

func New(cfg config.ClientConfig, st *store.Store) *Gateway {
	return &Gateway{
		client:  NewHTTPClient(cfg.RequestTimeout),
		baseURL: strings.TrimRight(cfg.ServerURL, "/"),
		timeout: cfg.RequestTimeout,
		store:   st,
	}
}

func (g *Gateway) NewGame(ctx context.Context) (*table.Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.store.Begin(store.IntentNewGame)
	snap, err := g.exchange(ctx, string(store.IntentNewGame), pathNewGame, nil)
	if err != nil {
		g.store.Fail(err)
		return nil, err
	}
	g.store.Install(snap, func(ui *store.UIState) {
		ui.Log.Reset(actionlog.NewGameBanner)
		resetRaise(ui)
	})
	return snap, nil
}

func (g *Gateway) NewHand(ctx context.Context) (*table.Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.CheckNewHand(); err != nil {
		metricIntentsRefused.Add(1)
		return nil, err
	}
	g.store.Begin(store.IntentNewHand)
	snap, err := g.exchange(ctx, string(store.IntentNewHand), pathNewHand, nil)
	if err != nil {
		g.store.Fail(err)
		return nil, err
	}
	g.store.Install(snap, func(ui *store.UIState) {
		ui.Log.Append(actionlog.NewHandBanner)
		resetRaise(ui)
	})
	return snap, nil
}

// SendAction posts a player action. Legality and the raise floor are checked
// against the snapshot current at send time; only raises carry an amount.
func (g *Gateway) SendAction(ctx context.Context, action table.ActionType, amount int64) (*table.Snapshot, error) {
	if _, err := table.ParseAction(string(action)); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.CheckActionFor(action); err != nil {
		metricIntentsRefused.Add(1)
		return nil, err
	}
	if action == table.ActionRaise {
		amount = table.ConfirmAmount(g.store.Snapshot(), amount)
	} else {
		amount = 0
	}

	g.store.Begin(store.IntentAction)
	op := string(store.IntentAction) + ":" + string(action)
	snap, err := g.exchange(ctx, op, pathAction, ActionRequest{Action: action, Amount: amount})
	if err != nil {
		g.store.Fail(err)
		return nil, err
	}
	g.store.Install(snap, func(ui *store.UIState) {
		ui.Log.Append(actionlog.ActionLines(action, amount, snap)...)
	})
	return snap, nil
}

func (g *Gateway) exchange(ctx context.Context, op, path string, body any) (*table.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	requestID := NewRequestID()
	started := time.Now()
	metricRequestsTotal.Add(1)

	status, raw, err := g.client.PostJSON(ctx, g.baseURL+path, map[string]string{"X-Request-Id": requestID}, body)
	if err != nil {
		return nil, g.failure(&Error{Op: op, RequestID: requestID, Kind: ErrTransport, Err: err}, started)
	}
	if status < 200 || status >= 300 {
		return nil, g.failure(&Error{Op: op, RequestID: requestID, Status: status, Kind: ErrRejected, Err: errors.New(snippet(raw))}, started)
	}
	var snap table.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, g.failure(&Error{Op: op, RequestID: requestID, Status: status, Kind: ErrMalformed, Err: err}, started)
	}
	if err := snap.Validate(); err != nil {
		return nil, g.failure(&Error{Op: op, RequestID: requestID, Status: status, Kind: ErrMalformed, Err: err}, started)
	}

	log.Info().
		Str("op", op).
		Str("request_id", requestID).
		Str("status", string(snap.Status)).
		Int64("pot", snap.Pot).
		Dur("took", time.Since(started)).
		Msg("snapshot installed")
	return &snap, nil
}

func (g *Gateway) failure(e *Error, started time.Time) error {
	metricRequestErrors.Add(1)
	if e.Timeout() {
		metricRequestTimeouts.Add(1)
	}
	log.Warn().
		Err(e.Err).
		Str("op", e.Op).
		Str("request_id", e.RequestID).
		Str("kind", fmt.Sprint(e.Kind)).
		Int("status", e.Status).
		Dur("took", time.Since(started)).
		Msg("game server request failed")
	return e
}

func resetRaise(ui *store.UIState) {
	ui.OverlayVisible = false
	ui.RaiseAmount = 0
}

func snippet(raw []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return "empty body"
	}
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
