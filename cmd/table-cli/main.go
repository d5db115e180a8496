package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"kambling/internal/cards"
	"kambling/internal/config"
	"kambling/internal/gateway"
	"kambling/internal/logging"
	"kambling/internal/store"
	"kambling/internal/view"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/rs/zerolog/log"
)

const (
	defaultLogFile = "table-cli.log"
	quitLabel      = "Quit"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.LoadApp()
	if err != nil {
		pterm.Fatal.Printfln("load config failed: %v", err)
	}
	// The table owns the terminal; logs go to a file.
	if cfg.Log.File == "" {
		cfg.Log.File = defaultLogFile
	}
	if err := logging.Init(cfg.Log); err != nil {
		pterm.Warning.Printfln("log file unavailable, logging to stdout: %v", err)
	}
	defer func() { _ = logging.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st := store.New(cfg.Web.LogWindow)
	defer st.Close()
	gw := gateway.New(cfg.Client, st)
	composer := view.NewComposer(cards.NewPresenter(cfg.Cards))
	ctrl := view.NewController(gw, st)

	_ = pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("K", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("ambling", pterm.FgDarkGray.ToStyle()),
	).Render()
	pterm.Info.Printfln("Game server: %s", cfg.Client.ServerURL)
	log.Info().Str("server", cfg.Client.ServerURL).Msg("table client starting")

	withSpinner("Dealing a new game ...", func() error { return ctrl.Mount(ctx) })
	for ctx.Err() == nil {
		v := composer.Compose(st.State())
		if err := draw(v); err != nil {
			pterm.Error.Printfln("render failed: %v", err)
			return
		}
		in, ok := choose(v)
		if !ok {
			return
		}
		if in.Gesture.Remote() {
			withSpinner(fmt.Sprintf("Waiting for the table (%s) ...", in.Gesture), func() error {
				return ctrl.Dispatch(ctx, in)
			})
			continue
		}
		if err := ctrl.Dispatch(ctx, in); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
}

func draw(v view.TableView) error {
	out, err := view.RenderTerminal(v)
	if err != nil {
		return err
	}
	pterm.Print("\033[H\033[2J")
	pterm.Println(out)
	return nil
}

// choose shows the menu for v and returns the chosen gesture. ok is false
// when the player quits.
func choose(v view.TableView) (view.Input, bool) {
	options := view.Menu(v)
	labels := make([]string, 0, len(options)+1)
	byLabel := make(map[string]view.Input, len(options))
	for _, o := range options {
		labels = append(labels, o.Label)
		byLabel[o.Label] = o.Input
	}
	labels = append(labels, quitLabel)

	selected, err := pterm.DefaultInteractiveSelect.
		WithDefaultText("Select your next action").
		WithOptions(labels).
		WithMaxHeight(len(labels)).
		Show()
	if err != nil || selected == quitLabel {
		return view.Input{}, false
	}
	in := byLabel[selected]
	switch in.Gesture {
	case view.GestureRaiseInput:
		raw, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter the amount to raise").Show()
		in.Raw = raw
	case view.GestureRaiseConfirm:
		confirm, _ := pterm.DefaultInteractiveConfirm.
			WithDefaultText(fmt.Sprintf("Confirm raise of $%d?", v.Overlay.Amount)).
			WithDefaultValue(true).
			Show()
		if !confirm {
			return view.Input{Gesture: view.GestureRaiseCancel}, true
		}
	}
	return in, true
}

func withSpinner(text string, fn func() error) {
	spinner, _ := pterm.DefaultSpinner.Start(text)
	err := fn()
	if spinner == nil {
		return
	}
	if err != nil {
		spinner.Fail(err.Error())
		return
	}
	_ = spinner.Stop()
}
