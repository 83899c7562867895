package logger

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu          sync.Mutex
	log         zerolog.Logger
	initialized bool
)

// Init configures the global console logger. Unknown levels fall back
// to info.
func Init(level string) {
	mu.Lock()
	defer mu.Unlock()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(lvl)
	log = zerolog.New(output).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
	initialized = true
}

// Get returns the logger instance, initializing it at info level if
// Init was never called.
func Get() zerolog.Logger {
	mu.Lock()
	ok := initialized
	mu.Unlock()
	if !ok {
		Init("info")
	}

	mu.Lock()
	defer mu.Unlock()
	return log
}

// WithComponent returns a logger tagged with the component name.
func WithComponent(component string) zerolog.Logger {
	return Get().With().Str("component", component).Logger()
}
