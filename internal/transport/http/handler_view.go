package httptransport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"kambling/internal/config"
	"kambling/internal/gateway"
	"kambling/internal/store"
	"kambling/internal/table"
	"kambling/internal/view"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Table binds one table's store, composer and controller to the web surface.
type Table struct {
	store        *store.Store
	composer     *view.Composer
	controller   *view.Controller
	pingInterval time.Duration
}

func NewTable(st *store.Store, composer *view.Composer, controller *view.Controller, cfg config.WebConfig) *Table {
	ping := cfg.PingInterval
	if ping <= 0 {
		ping = 15 * time.Second
	}
	return &Table{store: st, composer: composer, controller: controller, pingInterval: ping}
}

func (t *Table) View() view.TableView {
	return t.composer.Compose(t.store.State())
}

type gestureRequest struct {
	Step  string `json:"step"`
	Input string `json:"input"`
}

func (t *Table) ViewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		metricViewRequestsTotal.Add(1)
		writeJSON(w, http.StatusOK, t.View())
	}
}

func (t *Table) GestureHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricGestureTotal.Add(1)
		g, err := view.ParseGesture(chi.URLParam(r, "gesture"))
		if err != nil {
			metricGestureErrors.Add(1)
			WriteHTTPError(w, http.StatusNotFound, "unknown_gesture")
			return
		}
		var req gestureRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			metricGestureErrors.Add(1)
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		in, err := buildInput(g, req)
		if err != nil {
			metricGestureErrors.Add(1)
			WriteHTTPError(w, http.StatusBadRequest, "invalid_step")
			return
		}
		if err := t.controller.Dispatch(r.Context(), in); err != nil {
			metricGestureErrors.Add(1)
			status, code := mapDispatchError(err)
			log.Debug().Err(err).Str("gesture", string(g)).Int("status", status).Msg("gesture refused")
			writeJSON(w, status, map[string]any{"error": code, "view": t.View()})
			return
		}
		writeJSON(w, http.StatusOK, t.View())
	}
}

func buildInput(g view.Gesture, req gestureRequest) (view.Input, error) {
	in := view.Input{Gesture: g, Raw: req.Input}
	if g == view.GestureRaiseAdjust {
		step, err := table.ParseStep(req.Step)
		if err != nil {
			return view.Input{}, err
		}
		in.Step = step
	}
	return in, nil
}

// mapDispatchError turns a controller failure into a status and error code.
// Upstream failures are reported as 502/504; the view still carries the
// retry affordance.
func mapDispatchError(err error) (int, string) {
	var gwErr *gateway.Error
	switch {
	case errors.Is(err, view.ErrUnknownGesture):
		return http.StatusNotFound, "unknown_gesture"
	case errors.Is(err, view.ErrGestureDisabled):
		return http.StatusConflict, "gesture_disabled"
	case errors.Is(err, store.ErrHandFinished):
		return http.StatusConflict, "hand_finished"
	case errors.Is(err, store.ErrHandInProgress):
		return http.StatusConflict, "hand_in_progress"
	case errors.Is(err, store.ErrMustCall):
		return http.StatusConflict, "must_call"
	case errors.Is(err, store.ErrNothingToCall):
		return http.StatusConflict, "nothing_to_call"
	case errors.Is(err, store.ErrTableLoading):
		return http.StatusConflict, "table_loading"
	case errors.As(err, &gwErr) && gwErr.Timeout():
		return http.StatusGatewayTimeout, "upstream_timeout"
	case errors.Is(err, gateway.ErrMalformed):
		return http.StatusBadGateway, "malformed_response"
	case errors.Is(err, gateway.ErrRejected):
		return http.StatusBadGateway, "server_rejected"
	case errors.Is(err, gateway.ErrTransport):
		return http.StatusBadGateway, "transport_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// EventsHandler streams the composed view on every store change, starting
// with the current one.
func (t *Table) EventsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		SetSSEHeaders(w)
		metricSSEConnectionsTotal.Add(1)
		metricSSEConnectionsActive.Add(1)
		defer metricSSEConnectionsActive.Add(-1)

		ch := t.store.Subscribe()
		defer t.store.Unsubscribe(ch)

		v := t.View()
		if err := WriteSSE(w, strconv.FormatUint(v.Version, 10), "view", v); err != nil {
			return
		}
		flusher.Flush()

		ticker := time.NewTicker(t.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-r.Context().Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				v := t.View()
				if err := WriteSSE(w, strconv.FormatUint(v.Version, 10), "view", v); err != nil {
					return
				}
				flusher.Flush()
			case <-ticker.C:
				if err := WriteSSE(w, "", "ping", map[string]any{"ts": time.Now().UnixMilli()}); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}
