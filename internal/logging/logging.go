package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"kambling/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	sinkMu sync.RWMutex
	sink   io.Writer = os.Stdout
	closer io.Closer
)

// Init installs the global zerolog logger described by cfg. A file sink that
// cannot be opened falls back to stdout and the error is returned.
func Init(cfg config.LogConfig) error {
	level := zerolog.InfoLevel
	if v := strings.TrimSpace(cfg.Level); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}

	var (
		out     io.Writer = os.Stdout
		openErr error
	)
	if cfg.File != "" {
		w, err := newSizeLimitedWriter(cfg.File, cfg.MaxMB)
		if err != nil {
			openErr = err
		} else {
			out = w
			setCloser(w)
		}
	}
	setSink(out)

	var output io.Writer = out
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: out, NoColor: cfg.File != ""}
	}

	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).With().Timestamp().Logger()
	if cfg.SampleEvery > 1 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(cfg.SampleEvery)})
	}
	log.Logger = logger
	return openErr
}

// Writer is the raw sink behind the global logger, shared with the slog
// handler used for request logs.
func Writer() io.Writer {
	sinkMu.RLock()
	defer sinkMu.RUnlock()
	return sink
}

func Close() error {
	sinkMu.Lock()
	defer sinkMu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

func setSink(w io.Writer) {
	sinkMu.Lock()
	defer sinkMu.Unlock()
	sink = w
}

func setCloser(c io.Closer) {
	sinkMu.Lock()
	defer sinkMu.Unlock()
	if closer != nil {
		_ = closer.Close()
	}
	closer = c
}
