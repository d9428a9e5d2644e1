package events

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// RequestListener may stop a request by returning an interruption
type RequestListener interface {
	OnRequest(ctx context.Context, event RequestEvent) (*Interruption, error)
}

// UpdateListener receives update start and finish notifications
type UpdateListener interface {
	OnUpdate(ctx context.Context, event UpdateEvent) error
}

// DefaultMaintenanceFilter decides if the host platform shows its own maintenance screen
type DefaultMaintenanceFilter interface {
	FilterDefaultMaintenance(enable bool, context string) bool
}

// Dispatcher fans events out to the listeners registered at startup
type Dispatcher struct {
	lock     sync.RWMutex
	requests []RequestListener
	updates  []UpdateListener
	filters  []DefaultMaintenanceFilter
}

// NewDispatcher constructor
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) OnRequest(listener RequestListener) {
	d.lock.Lock()
	d.requests = append(d.requests, listener)
	d.lock.Unlock()
}

func (d *Dispatcher) OnUpdate(listener UpdateListener) {
	d.lock.Lock()
	d.updates = append(d.updates, listener)
	d.lock.Unlock()
}

func (d *Dispatcher) OnDefaultMaintenance(filter DefaultMaintenanceFilter) {
	d.lock.Lock()
	d.filters = append(d.filters, filter)
	d.lock.Unlock()
}

// DispatchRequest returns the first interruption raised by a listener.
// A failing listener is logged and skipped so the request is served.
func (d *Dispatcher) DispatchRequest(ctx context.Context, event RequestEvent) *Interruption {
	d.lock.RLock()
	listeners := d.requests
	d.lock.RUnlock()

	for _, listener := range listeners {
		interruption, err := listener.OnRequest(ctx, event)
		if err != nil {
			log.Error().Err(err).Str("section", "events").Str("event", "request").Str("path", event.Path).Msg("Request listener failed")
			continue
		}
		if interruption != nil {
			return interruption
		}
	}
	return nil
}

// DispatchUpdate notifies every update listener and returns the first error
func (d *Dispatcher) DispatchUpdate(ctx context.Context, event UpdateEvent) error {
	d.lock.RLock()
	listeners := d.updates
	d.lock.RUnlock()

	var first error
	for _, listener := range listeners {
		if err := listener.OnUpdate(ctx, event); err != nil {
			log.Error().Err(err).
				Str("section", "events").
				Str("event", "update").
				Str("type", event.Type.String()).
				Str("phase", string(event.Phase)).
				Msg("Update listener failed")
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// FilterDefaultMaintenance passes the flag through every registered filter
func (d *Dispatcher) FilterDefaultMaintenance(enable bool, context string) bool {
	d.lock.RLock()
	filters := d.filters
	d.lock.RUnlock()

	for _, filter := range filters {
		enable = filter.FilterDefaultMaintenance(enable, context)
	}
	return enable
}
