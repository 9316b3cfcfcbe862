package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordingSink struct {
	mu        sync.Mutex
	published []Banner
	discarded []Banner
}

func (s *recordingSink) Publish(b Banner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published = append(s.published, b)
}

func (s *recordingSink) Discard(b Banner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discarded = append(s.discarded, b)
}

func (s *recordingSink) counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.published), len(s.discarded)
}

var _ Sink = (*recordingSink)(nil)

func newTestCenter(sink Sink) *Center {
	return NewCenter(Options{ErrorTTL: time.Hour, SuccessTTL: time.Hour}, sink, zerolog.Nop())
}

func TestPublishAndDismiss(t *testing.T) {
	sink := &recordingSink{}
	center := newTestCenter(sink)
	defer center.Close()

	id := center.Error("Failed to load data. Please try again.")
	if published, _ := sink.counts(); published != 1 {
		t.Fatalf("expected 1 published banner, got %d", published)
	}

	if !center.Dismiss(id) {
		t.Fatal("first dismissal should succeed")
	}
	if center.Dismiss(id) {
		t.Fatal("second dismissal should be a no-op")
	}
	if _, discarded := sink.counts(); discarded != 1 {
		t.Fatalf("double dismissal must not reach the sink twice")
	}
}

func TestActiveOrdering(t *testing.T) {
	center := newTestCenter(nil)
	defer center.Close()

	center.Error("first")
	center.Success("second")
	center.Error("third")

	active := center.Active()
	if len(active) != 3 {
		t.Fatalf("expected 3 active banners, got %d", len(active))
	}
	if active[0].Message != "third" || active[2].Message != "first" {
		t.Fatalf("banners should be most recent first: %+v", active)
	}
}

func TestAutoExpiry(t *testing.T) {
	sink := &recordingSink{}
	center := NewCenter(Options{ErrorTTL: 20 * time.Millisecond, SuccessTTL: 10 * time.Millisecond}, sink, zerolog.Nop())
	defer center.Close()

	center.Error("transient")
	center.Success("also transient")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(center.Active()) == 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if remaining := len(center.Active()); remaining != 0 {
		t.Fatalf("banners should auto-expire, %d still active", remaining)
	}
	if _, discarded := sink.counts(); discarded != 2 {
		t.Fatalf("expected 2 discard events, got %d", discarded)
	}
}

func TestSetLoadingIdempotent(t *testing.T) {
	center := newTestCenter(nil)
	defer center.Close()

	center.SetLoading("waterfall", true)
	center.SetLoading("waterfall", true)
	if !center.Loading("waterfall") {
		t.Fatal("surface should be loading")
	}

	center.SetLoading("waterfall", false)
	center.SetLoading("waterfall", false)
	if center.Loading("waterfall") {
		t.Fatal("surface should no longer be loading")
	}
}

func TestDefaultTTLs(t *testing.T) {
	center := NewCenter(Options{}, nil, zerolog.Nop())
	defer center.Close()

	if center.opts.ErrorTTL != 5*time.Second {
		t.Fatalf("default error TTL should be 5s, got %s", center.opts.ErrorTTL)
	}
	if center.opts.SuccessTTL != 3*time.Second {
		t.Fatalf("default success TTL should be 3s, got %s", center.opts.SuccessTTL)
	}
}
