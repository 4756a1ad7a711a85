package logx

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Debug        bool `split_words:"true" default:"false"`
	PrettyFormat bool `split_words:"true" default:"false"`
}

var DefaultConfig = &Config{}

// Init configures the global zerolog logger. PrettyFormat switches to the
// console writer for local development; Debug lowers the level threshold.
func Init(opts ...Config) {
	conf := DefaultConfig
	if len(opts) > 0 {
		conf = &opts[0]
	}

	var w zerolog.LevelWriter
	if conf.PrettyFormat {
		w = zerolog.MultiLevelWriter(zerolog.NewConsoleWriter())
	} else {
		w = zerolog.MultiLevelWriter(os.Stdout)
	}

	level := zerolog.InfoLevel
	if conf.Debug {
		level = zerolog.DebugLevel
	}

	log.Logger = zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Caller().
		Stack().
		Logger()
}
