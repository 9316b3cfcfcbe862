// Package notify manages transient user-facing banners: dismissible,
// auto-expiring notices delivered to a pluggable sink, plus a per-surface
// loading marker.
package notify

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Kind classifies a banner.
type Kind string

const (
	KindError   Kind = "error"
	KindSuccess Kind = "success"
)

// Banner is one transient notice.
type Banner struct {
	ID        int64
	Kind      Kind
	Message   string
	CreatedAt time.Time
}

// Sink receives banner lifecycle events. Implementations render them on
// whatever surface the host provides.
type Sink interface {
	Publish(banner Banner)
	Discard(banner Banner)
}

// Options tune banner lifetimes.
type Options struct {
	ErrorTTL   time.Duration
	SuccessTTL time.Duration
}

// Center owns the active banner set. Banners expire on independent timers
// (error 5s, success 3s by default) unless dismissed first; dismissing a
// banner that is already gone is a no-op.
type Center struct {
	mu      sync.Mutex
	seq     int64
	banners []Banner
	timers  map[int64]*time.Timer
	loading map[string]bool

	opts   Options
	sink   Sink
	logger zerolog.Logger
}

// NewCenter constructs a banner center.
func NewCenter(opts Options, sink Sink, logger zerolog.Logger) *Center {
	if opts.ErrorTTL <= 0 {
		opts.ErrorTTL = 5 * time.Second
	}
	if opts.SuccessTTL <= 0 {
		opts.SuccessTTL = 3 * time.Second
	}
	return &Center{
		timers:  make(map[int64]*time.Timer),
		loading: make(map[string]bool),
		opts:    opts,
		sink:    sink,
		logger:  logger.With().Str("component", "notify").Logger(),
	}
}

// Error publishes an error banner and returns its id.
func (c *Center) Error(message string) int64 {
	return c.publish(KindError, message, c.opts.ErrorTTL)
}

// Success publishes a success banner and returns its id.
func (c *Center) Success(message string) int64 {
	return c.publish(KindSuccess, message, c.opts.SuccessTTL)
}

func (c *Center) publish(kind Kind, message string, ttl time.Duration) int64 {
	c.mu.Lock()
	c.seq++
	banner := Banner{
		ID:        c.seq,
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
	}
	c.banners = append(c.banners, banner)
	c.timers[banner.ID] = time.AfterFunc(ttl, func() {
		c.Dismiss(banner.ID)
	})
	c.mu.Unlock()

	if c.sink != nil {
		c.sink.Publish(banner)
	}
	return banner.ID
}

// Dismiss removes a banner. Returns false if it was already removed.
func (c *Center) Dismiss(id int64) bool {
	c.mu.Lock()
	index := -1
	for i, banner := range c.banners {
		if banner.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		c.mu.Unlock()
		return false
	}

	banner := c.banners[index]
	c.banners = append(c.banners[:index], c.banners[index+1:]...)
	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}
	c.mu.Unlock()

	if c.sink != nil {
		c.sink.Discard(banner)
	}
	return true
}

// Active returns the live banners, most recent first.
func (c *Center) Active() []Banner {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Banner, len(c.banners))
	for i, banner := range c.banners {
		out[len(c.banners)-1-i] = banner
	}
	return out
}

// SetLoading toggles the loading marker for a surface key. Idempotent:
// repeated calls with the same flag change nothing.
func (c *Center) SetLoading(key string, on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading[key] == on {
		return
	}
	if on {
		c.loading[key] = true
	} else {
		delete(c.loading, key)
	}
	c.logger.Debug().Str("surface", key).Bool("loading", on).Msg("loading state changed")
}

// Loading reports whether a surface key is marked loading.
func (c *Center) Loading(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading[key]
}

// Close stops all pending expiry timers. Active banners stay active; callers
// shutting down do not need their sinks poked again.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
}

// LogSink renders banners through the application logger.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink constructs a logging banner sink.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger.With().Str("component", "banner").Logger()}
}

// Publish logs the banner at a level matching its kind.
func (s *LogSink) Publish(banner Banner) {
	event := s.logger.Info()
	if banner.Kind == KindError {
		event = s.logger.Error()
	}
	event.Int64("banner_id", banner.ID).Msg(banner.Message)
}

// Discard logs banner removal at debug level.
func (s *LogSink) Discard(banner Banner) {
	s.logger.Debug().Int64("banner_id", banner.ID).Msg("banner dismissed")
}

var _ Sink = (*LogSink)(nil)
