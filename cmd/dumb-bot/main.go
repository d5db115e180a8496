package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"kambling/internal/config"
	"kambling/internal/logging"
	httptransport "kambling/internal/transport/http"
	"kambling/internal/view"

	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()
	logCfg, cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config failed")
	}
	if err := logging.Init(logCfg); err != nil {
		log.Warn().Err(err).Msg("log file unavailable; logging to stdout")
	}
	defer func() { _ = logging.Close() }()
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	conn, _, err := websocket.DefaultDialer.Dial(cfg.WSURL, nil)
	if err != nil {
		log.Fatal().Err(err).Str("url", cfg.WSURL).Msg("dial table failed")
	}
	defer conn.Close()

	b := &bot{rnd: rand.New(rand.NewSource(seed)), maxHands: cfg.Hands}
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		msg, done := b.handle(data)
		if done {
			log.Info().Int("hands", b.hands).Msg("bot finished")
			return
		}
		if msg == nil {
			continue
		}
		log.Debug().Str("gesture", msg.Gesture).Str("step", msg.Step).Msg("bot gesture")
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func loadConfig() (config.LogConfig, config.BotConfig, error) {
	logCfg, err := config.LoadLog()
	if err != nil {
		return config.LogConfig{}, config.BotConfig{}, fmt.Errorf("log config: %w", err)
	}
	cfg, err := config.LoadBot()
	if err != nil {
		return config.LogConfig{}, config.BotConfig{}, fmt.Errorf("bot config: %w", err)
	}
	return logCfg, cfg, nil
}

// bot sends one gesture at a time and waits for its result before deciding
// again.
type bot struct {
	rnd      *rand.Rand
	maxHands int
	hands    int
	last     *view.TableView
	inFlight bool
}

func (b *bot) handle(data []byte) (*httptransport.GestureMessage, bool) {
	var base struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, false
	}
	switch base.Type {
	case "view":
		var m httptransport.ViewMessage
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, false
		}
		b.last = &m.View
	case "gesture_result":
		var res httptransport.GestureResult
		if err := json.Unmarshal(data, &res); err != nil {
			return nil, false
		}
		b.inFlight = false
		if !res.Ok {
			log.Warn().Str("gesture", res.Gesture).Str("error", res.Error).Msg("gesture refused")
		}
	default:
		return nil, false
	}
	if b.inFlight || b.last == nil {
		return nil, false
	}
	msg, done := b.decide(*b.last)
	if msg != nil {
		b.inFlight = true
	}
	return msg, done
}

func (b *bot) decide(v view.TableView) (*httptransport.GestureMessage, bool) {
	if v.Pending != "" {
		return nil, false
	}
	if v.Error != nil && v.Error.Retry {
		return gesture(view.GestureRetry, ""), false
	}
	if v.Overlay.Visible {
		if v.Overlay.Amount == v.Overlay.Min {
			return gesture(view.GestureRaiseAdjust, "+10"), false
		}
		return gesture(view.GestureRaiseConfirm, ""), false
	}
	choices := []view.Gesture{}
	for _, btn := range v.Buttons {
		if !btn.Enabled {
			continue
		}
		switch btn.Gesture {
		case view.GestureCall, view.GestureHold, view.GestureFold, view.GestureRaiseOpen:
			choices = append(choices, btn.Gesture)
		}
	}
	if len(choices) == 0 {
		return b.nextHand(v)
	}
	return gesture(choices[b.rnd.Intn(len(choices))], ""), false
}

func (b *bot) nextHand(v view.TableView) (*httptransport.GestureMessage, bool) {
	btn, ok := v.Button(view.GestureNewHand)
	if !ok || !btn.Enabled {
		return nil, false
	}
	b.hands++
	if b.hands >= b.maxHands {
		return nil, true
	}
	return gesture(view.GestureNewHand, ""), false
}

func gesture(g view.Gesture, step string) *httptransport.GestureMessage {
	return &httptransport.GestureMessage{Type: "gesture", Gesture: string(g), Step: step}
}
