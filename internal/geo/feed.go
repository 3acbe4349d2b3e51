package geo

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// ViewportListener receives each published viewport. Listeners must not
// block for long; publishing runs them in order on the caller's
// goroutine.
type ViewportListener func(Viewport)

// ViewportFeed fans immutable Viewport values out to any number of
// independent consumers. The map view publishes on every pan-end or
// zoom-end; the filter pipeline and list view subscribe.
type ViewportFeed struct {
	mu        sync.RWMutex
	listeners []ViewportListener
	current   Viewport
	hasValue  bool
	logger    *logrus.Logger
}

func NewViewportFeed(logger *logrus.Logger) *ViewportFeed {
	return &ViewportFeed{logger: logger}
}

// Subscribe registers a listener. If a viewport has already been
// published the listener is immediately caught up with the latest one.
func (f *ViewportFeed) Subscribe(fn ViewportListener) {
	f.mu.Lock()
	f.listeners = append(f.listeners, fn)
	current, hasValue := f.current, f.hasValue
	f.mu.Unlock()

	if hasValue {
		fn(current)
	}
}

// Publish replaces the current viewport and notifies all listeners.
// Last write wins: a superseding publish simply delivers a newer value.
func (f *ViewportFeed) Publish(v Viewport) {
	f.mu.Lock()
	f.current = v
	f.hasValue = true
	listeners := make([]ViewportListener, len(f.listeners))
	copy(listeners, f.listeners)
	f.mu.Unlock()

	if f.logger != nil {
		f.logger.WithFields(logrus.Fields{
			"sw_lat": v.SouthWestLat,
			"sw_lng": v.SouthWestLng,
			"ne_lat": v.NorthEastLat,
			"ne_lng": v.NorthEastLng,
		}).Debug("Publishing viewport change")
	}

	for _, fn := range listeners {
		fn(v)
	}
}

// Current returns the most recently published viewport.
func (f *ViewportFeed) Current() (Viewport, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current, f.hasValue
}
