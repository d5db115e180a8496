package httptransport

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"kambling/internal/view"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const wsWriteWait = 10 * time.Second

// GestureMessage is the only message a websocket client sends.
type GestureMessage struct {
	Type    string `json:"type"`
	Gesture string `json:"gesture"`
	Step    string `json:"step,omitempty"`
	Input   string `json:"input,omitempty"`
}

type ViewMessage struct {
	Type string         `json:"type"`
	View view.TableView `json:"view"`
}

type GestureResult struct {
	Type    string `json:"type"`
	Gesture string `json:"gesture"`
	Ok      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

func (c *wsClient) enqueue(v any) {
	msg, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("encode websocket message failed")
		return
	}
	select {
	case c.send <- msg:
	case <-c.done:
	}
}

// WSHandler pushes the composed view on every store change and applies
// gesture messages in the order they arrive.
func (t *Table) WSHandler() http.HandlerFunc {
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		metricWSConnectionsTotal.Add(1)
		metricWSConnectionsActive.Add(1)
		defer metricWSConnectionsActive.Add(-1)

		c := &wsClient{conn: conn, send: make(chan []byte, 8), done: make(chan struct{})}
		sub := t.store.Subscribe()
		go c.writeLoop()
		go t.pushViews(c, sub)

		t.readLoop(r.Context(), c)
		close(c.done)
		t.store.Unsubscribe(sub)
		_ = conn.Close()
	}
}

func (t *Table) pushViews(c *wsClient, sub chan uint64) {
	c.enqueue(ViewMessage{Type: "view", View: t.View()})
	for range sub {
		c.enqueue(ViewMessage{Type: "view", View: t.View()})
	}
}

func (t *Table) readLoop(ctx context.Context, c *wsClient) {
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var m GestureMessage
		if err := json.Unmarshal(msg, &m); err != nil || m.Type != "gesture" {
			continue
		}
		c.enqueue(t.applyGesture(ctx, m))
	}
}

func (t *Table) applyGesture(ctx context.Context, m GestureMessage) GestureResult {
	res := GestureResult{Type: "gesture_result", Gesture: m.Gesture}
	metricGestureTotal.Add(1)
	g, err := view.ParseGesture(m.Gesture)
	if err != nil {
		metricGestureErrors.Add(1)
		res.Error = "unknown_gesture"
		return res
	}
	in, err := buildInput(g, gestureRequest{Step: m.Step, Input: m.Input})
	if err != nil {
		metricGestureErrors.Add(1)
		res.Error = "invalid_step"
		return res
	}
	if err := t.controller.Dispatch(ctx, in); err != nil {
		metricGestureErrors.Add(1)
		_, res.Error = mapDispatchError(err)
		return res
	}
	res.Ok = true
	return res
}

func (c *wsClient) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				_ = c.conn.Close()
				return
			}
		}
	}
}
