package view

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"kambling/internal/gateway"
	"kambling/internal/store"
	"kambling/internal/table"

	"github.com/rs/zerolog/log"
)

// Intents is the part of the server gateway the controller drives.
type Intents interface {
	NewGame(ctx context.Context) (*table.Snapshot, error)
	NewHand(ctx context.Context) (*table.Snapshot, error)
	SendAction(ctx context.Context, action table.ActionType, amount int64) (*table.Snapshot, error)
}

// Controller turns gestures into store updates and server intents. Gestures
// that the current view shows as disabled are refused.
type Controller struct {
	intents Intents
	store   *store.Store
	mount   sync.Once

	mu    sync.Mutex
	retry func(context.Context) error
}

func NewController(intents Intents, st *store.Store) *Controller {
	return &Controller{intents: intents, store: st}
}

// Mount starts the first game. Only the first call does anything.
func (c *Controller) Mount(ctx context.Context) error {
	var err error
	c.mount.Do(func() {
		err = c.run(ctx, c.newGame)
	})
	return err
}

func (c *Controller) Dispatch(ctx context.Context, in Input) error {
	st := c.store.State()
	if !Enabled(st, in.Gesture) {
		if _, err := ParseGesture(string(in.Gesture)); err != nil {
			return err
		}
		return fmt.Errorf("%w: %s", ErrGestureDisabled, in.Gesture)
	}

	switch in.Gesture {
	case GestureRaiseOpen:
		c.store.Update(func(snap *table.Snapshot, ui *store.UIState) {
			ui.RaiseAmount = table.MinRaise(snap)
			ui.OverlayVisible = true
		})
	case GestureRaiseAdjust:
		c.store.Update(func(snap *table.Snapshot, ui *store.UIState) {
			ui.RaiseAmount = table.Adjust(snap, ui.RaiseAmount, in.Step)
		})
	case GestureRaiseInput:
		c.store.Update(func(snap *table.Snapshot, ui *store.UIState) {
			ui.RaiseAmount = table.ConfirmAmount(snap, table.ParseRaiseInput(in.Raw))
		})
	case GestureRaiseCancel:
		c.store.Update(func(_ *table.Snapshot, ui *store.UIState) {
			ui.OverlayVisible = false
		})
	case GestureRaiseConfirm:
		amount := st.UI.RaiseAmount
		c.store.Update(func(_ *table.Snapshot, ui *store.UIState) {
			ui.OverlayVisible = false
			ui.RaiseAmount = 0
		})
		return c.run(ctx, c.action(table.ActionRaise, amount))
	case GestureCall:
		return c.run(ctx, c.action(table.ActionCall, 0))
	case GestureHold:
		return c.run(ctx, c.action(table.ActionHold, 0))
	case GestureFold:
		return c.run(ctx, c.action(table.ActionFold, 0))
	case GestureNewHand:
		return c.run(ctx, c.newHand)
	case GestureNewGame:
		return c.run(ctx, c.newGame)
	case GestureRetry:
		return c.Retry(ctx)
	}
	return nil
}

// Retry re-sends the last intent that failed at the transport or response
// level.
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	fn := c.retry
	c.mu.Unlock()
	if fn == nil {
		c.store.ClearError()
		return nil
	}
	return c.run(ctx, fn)
}

func (c *Controller) run(ctx context.Context, fn func(context.Context) error) error {
	err := fn(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	var gwErr *gateway.Error
	switch {
	case err == nil:
		c.retry = nil
	case errors.As(err, &gwErr):
		c.retry = fn
		log.Warn().Err(err).Str("request_id", gwErr.RequestID).Msg("intent failed; retry available")
	}
	return err
}

func (c *Controller) newGame(ctx context.Context) error {
	_, err := c.intents.NewGame(ctx)
	return err
}

func (c *Controller) newHand(ctx context.Context) error {
	_, err := c.intents.NewHand(ctx)
	return err
}

func (c *Controller) action(a table.ActionType, amount int64) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := c.intents.SendAction(ctx, a, amount)
		return err
	}
}
