package weft

import (
	"time"

	"github.com/grindlemire/weft/internal/debug"
)

// Watcher is an event source started by Run. Its handlers run on the
// session's goroutine, so they may touch the tree as well as variables.
type Watcher interface {
	// Start begins the watcher goroutine. It must stop once stop is closed.
	Start(queue chan<- func(), stop <-chan struct{})
}

// ChannelWatcher watches a channel and calls a handler for each value.
type ChannelWatcher[T any] struct {
	ch      <-chan T
	handler func(T)
}

// Watch creates a watcher that calls fn on the session's goroutine for each
// value received on ch. It stops when ch is closed.
//
//	prices := make(chan float64)
//	price := weft.NewVar(scope, 0.0)
//	s, err := weft.NewSession(view, weft.WithWatchers(
//		weft.Watch(prices, func(p float64) { _ = price.Set(p) }),
//	))
func Watch[T any](ch <-chan T, fn func(T)) *ChannelWatcher[T] {
	return &ChannelWatcher[T]{ch: ch, handler: fn}
}

// Start implements Watcher.
func (w *ChannelWatcher[T]) Start(queue chan<- func(), stop <-chan struct{}) {
	go func() {
		for {
			var v T
			var ok bool
			select {
			case <-stop:
				return
			case v, ok = <-w.ch:
			}
			if !ok {
				debug.Log("channel watcher: source closed")
				return
			}
			if !deliver(queue, stop, func() { w.handler(v) }) {
				return
			}
		}
	}()
}

// deliver blocks until fn is queued or stop is closed. It reports whether fn
// was queued.
func deliver(queue chan<- func(), stop <-chan struct{}, fn func()) bool {
	select {
	case queue <- fn:
		return true
	case <-stop:
		return false
	}
}

type timerWatcher struct {
	every time.Duration
	fn    func()
}

// OnTimer creates a watcher that calls fn on the session's goroutine every
// interval. Ticks are dropped while the queue is full rather than piling up
// behind each other.
func OnTimer(interval time.Duration, fn func()) Watcher {
	return &timerWatcher{every: interval, fn: fn}
}

func (w *timerWatcher) Start(queue chan<- func(), stop <-chan struct{}) {
	ticker := time.NewTicker(w.every)
	go func() {
		defer ticker.Stop()
		dropped := 0
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
			}
			select {
			case queue <- w.fn:
			case <-stop:
				return
			default:
				dropped++
				debug.Log("timer watcher: queue full, %d ticks dropped", dropped)
			}
		}
	}()
}
