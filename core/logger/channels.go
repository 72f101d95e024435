package logger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Channel names an independent log sink.
type Channel string

const (
	// ChannelApp receives lifecycle and bootstrap messages.
	ChannelApp Channel = "app"
	// ChannelRequest receives one access line per HTTP request.
	ChannelRequest Channel = "request"
	// ChannelError receives translated handler failures.
	ChannelError Channel = "error"
	// ChannelData receives stored procedure execution logs.
	ChannelData Channel = "data"
)

// Channels is the fixed set of channels bound at startup.
var Channels = []Channel{ChannelApp, ChannelRequest, ChannelError, ChannelData}

// ErrUnknownChannel is returned when a channel was never bound.
var ErrUnknownChannel = errors.New("log channel not configured")

// Registry holds one logger per channel. It is built once and read-only afterwards.
type Registry struct {
	loggers   map[Channel]*zap.Logger
	fallbacks []Channel
}

// NewRegistry builds a logger for every entry of Channels.
//
// Each channel reads <ChannelDir>/<channel>.yaml, a zap configuration applied on
// top of the base configuration. A missing file is not an error: the channel
// uses the base configuration and is reported by Fallbacks. A file that cannot
// be read, parsed, or built is an error.
func NewRegistry(cfg *Config) (*Registry, error) {
	dir := cfg.ChannelDir
	if dir != "" && !filepath.IsAbs(dir) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		dir = filepath.Join(wd, dir)
	}

	r := &Registry{loggers: make(map[Channel]*zap.Logger, len(Channels))}
	for _, ch := range Channels {
		zc := baseConfig(cfg)

		path := filepath.Join(dir, string(ch)+".yaml")
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist) || dir == "":
			r.fallbacks = append(r.fallbacks, ch)
		case err != nil:
			return nil, fmt.Errorf("failed to read log channel %q config: %w", ch, err)
		default:
			if err := yaml.Unmarshal(data, &zc); err != nil {
				return nil, fmt.Errorf("failed to parse log channel %q config %s: %w", ch, path, err)
			}
		}

		l, err := zc.Build()
		if err != nil {
			return nil, fmt.Errorf("failed to build log channel %q: %w", ch, err)
		}
		r.loggers[ch] = l.With(zap.String("channel", string(ch)))
	}

	return r, nil
}

// NewNopRegistry returns a registry whose channels discard everything.
func NewNopRegistry() *Registry {
	r := &Registry{loggers: make(map[Channel]*zap.Logger, len(Channels))}
	for _, ch := range Channels {
		r.loggers[ch] = zap.NewNop()
	}
	return r
}

// Channel returns the logger bound to ch.
func (r *Registry) Channel(ch Channel) (*zap.Logger, error) {
	l, ok := r.loggers[ch]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChannel, ch)
	}
	return l, nil
}

// MustChannel returns the logger bound to ch and panics if there is none.
func (r *Registry) MustChannel(ch Channel) *zap.Logger {
	l, err := r.Channel(ch)
	if err != nil {
		panic(err)
	}
	return l
}

// Fallbacks lists the channels that had no config file and use the base configuration.
func (r *Registry) Fallbacks() []Channel {
	return append([]Channel(nil), r.fallbacks...)
}

// Sync flushes every channel.
func (r *Registry) Sync() error {
	var err error
	for _, ch := range Channels {
		if l, ok := r.loggers[ch]; ok {
			err = multierr.Append(err, l.Sync())
		}
	}
	return err
}
