// Package testutil provides a scripted stand-in for the remote game server.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"kambling/internal/table"

	"github.com/go-chi/chi/v5"
)

type Request struct {
	Path        string
	RequestID   string
	ContentType string
	Body        []byte
}

// Response is one scripted reply. Block holds the request open until the
// client gives up.
type Response struct {
	Status int
	Body   string
	Delay  time.Duration
	Block  bool
}

type GameServer struct {
	URL string

	mu       sync.Mutex
	srv      *httptest.Server
	requests []Request
	queued   map[string][]Response
	inFlight int
	peak     int
}

func NewGameServer(t *testing.T) *GameServer {
	t.Helper()
	gs := &GameServer{queued: map[string][]Response{}}
	r := chi.NewRouter()
	r.Post("/api/{op}", gs.handle)
	gs.srv = httptest.NewServer(r)
	gs.URL = gs.srv.URL
	t.Cleanup(gs.srv.Close)
	return gs
}

// Enqueue scripts the next reply for path. Replies are consumed in order;
// the last one for a path is repeated once the queue is down to it.
func (gs *GameServer) Enqueue(path string, resp Response) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.queued[path] = append(gs.queued[path], resp)
}

func (gs *GameServer) EnqueueSnapshot(path string, s *table.Snapshot) {
	gs.Enqueue(path, Response{Status: http.StatusOK, Body: SnapshotJSON(s)})
}

func (gs *GameServer) Requests() []Request {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	out := make([]Request, len(gs.requests))
	copy(out, gs.requests)
	return out
}

// PeakInFlight is the largest number of requests the server saw at once.
func (gs *GameServer) PeakInFlight() int {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.peak
}

func (gs *GameServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	gs.mu.Lock()
	gs.requests = append(gs.requests, Request{
		Path:        r.URL.Path,
		RequestID:   r.Header.Get("X-Request-Id"),
		ContentType: r.Header.Get("Content-Type"),
		Body:        body,
	})
	gs.inFlight++
	gs.peak = max(gs.peak, gs.inFlight)
	resp, ok := gs.next(r.URL.Path)
	gs.mu.Unlock()
	defer func() {
		gs.mu.Lock()
		gs.inFlight--
		gs.mu.Unlock()
	}()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if resp.Block {
		<-r.Context().Done()
		return
	}
	if resp.Delay > 0 {
		time.Sleep(resp.Delay)
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, resp.Body)
}

// next must be called with mu held.
func (gs *GameServer) next(path string) (Response, bool) {
	q := gs.queued[path]
	if len(q) == 0 {
		return Response{}, false
	}
	resp := q[0]
	if len(q) > 1 {
		gs.queued[path] = q[1:]
	}
	return resp, true
}

func SnapshotJSON(s *table.Snapshot) string {
	raw, err := json.Marshal(s)
	if err != nil {
		panic(err)
	}
	return string(raw)
}

// Snapshot builds a two-seat snapshot with face-up player cards and a hidden
// opponent hand.
func Snapshot(status table.Status, playerBet, opponentBet int64) *table.Snapshot {
	return &table.Snapshot{
		Status: status,
		Pot:    playerBet + opponentBet,
		Board:  []table.Card{},
		Player: &table.Seat{
			Money:      1000 - playerBet,
			CurrentBet: playerBet,
			Hole: []table.Card{
				table.FaceUp(table.Ace, table.Spades, "https://deckofcardsapi.com/static/img/AS.png"),
				table.FaceUp(7, table.Hearts, "https://deckofcardsapi.com/static/img/7H.png"),
			},
			Best: &table.BestHand{Hand: "High Card"},
		},
		Opponent: &table.Seat{
			Money:      1000 - opponentBet,
			CurrentBet: opponentBet,
			Hole:       []table.Card{table.HiddenCard(), table.HiddenCard()},
		},
	}
}
