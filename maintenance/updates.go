package maintenance

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"gitlab.com/paramountdax-exchange/site_maintenance/events"
	"gitlab.com/paramountdax-exchange/site_maintenance/model"
	"gitlab.com/paramountdax-exchange/site_maintenance/monitor"
)

type updateKey struct{}

// WithUpdate attaches the state of a running update transaction to ctx
func WithUpdate(ctx context.Context, state model.UpdateState) context.Context {
	return context.WithValue(ctx, updateKey{}, state)
}

// UpdateFromContext returns the update state attached by WithUpdate
func UpdateFromContext(ctx context.Context) (model.UpdateState, bool) {
	state, ok := ctx.Value(updateKey{}).(model.UpdateState)
	return state, ok
}

// UpdateTracker follows the update transactions announced by the host platform.
// A fresh state is created on every start notification and dropped on finish.
type UpdateTracker struct {
	lock    sync.RWMutex
	current *model.UpdateState
	now     func() time.Time
}

// NewUpdateTracker constructor
func NewUpdateTracker() *UpdateTracker {
	return &UpdateTracker{now: time.Now}
}

// Accepts reports if the notification channel handles the given update type.
// Plugin and theme updates go through the installer, core updates through auto update.
func Accepts(channel model.UpdateChannel, updateType model.UpdateType) bool {
	switch channel {
	case model.UpdateChannelInstaller:
		return updateType == model.UpdateTypePlugin || updateType == model.UpdateTypeTheme
	case model.UpdateChannelAutoUpdate:
		return updateType == model.UpdateTypeCore
	}
	return false
}

// Start opens a new update transaction
func (t *UpdateTracker) Start(updateType model.UpdateType) model.UpdateState {
	state := model.UpdateState{Updating: true, Type: updateType, StartedAt: t.now()}
	t.lock.Lock()
	previous := t.current
	t.current = &state
	t.lock.Unlock()

	if previous != nil {
		monitor.UpdatesInProgress.WithLabelValues(previous.Type.String()).Set(0)
	}
	monitor.UpdatesInProgress.WithLabelValues(updateType.String()).Set(1)
	log.Info().Str("section", "maintenance").Str("update_type", updateType.String()).Msg("Update started")
	return state
}

// Finish closes the running update transaction. A finish for another update
// type leaves the running transaction open.
func (t *UpdateTracker) Finish(updateType model.UpdateType) {
	t.lock.Lock()
	previous := t.current
	if previous != nil && previous.Type != updateType {
		t.lock.Unlock()
		log.Warn().
			Str("section", "maintenance").
			Str("update_type", updateType.String()).
			Str("running_type", previous.Type.String()).
			Msg("Ignoring finish notification for an update that is not running")
		return
	}
	t.current = nil
	t.lock.Unlock()

	if previous == nil {
		log.Debug().Str("section", "maintenance").Str("update_type", updateType.String()).Msg("Update finished without a running transaction")
		return
	}
	monitor.UpdatesInProgress.WithLabelValues(previous.Type.String()).Set(0)
	log.Info().
		Str("section", "maintenance").
		Str("update_type", updateType.String()).
		Dur("duration", t.now().Sub(previous.StartedAt)).
		Msg("Update finished")
}

// Current state, the zero value when nothing is running
func (t *UpdateTracker) Current() model.UpdateState {
	t.lock.RLock()
	defer t.lock.RUnlock()
	if t.current == nil {
		return model.UpdateState{}
	}
	return *t.current
}

// Run executes fn as one update transaction. The state is attached to the
// context passed to fn and the tracker is cleared when fn returns.
func (t *UpdateTracker) Run(ctx context.Context, updateType model.UpdateType, fn func(ctx context.Context) error) error {
	state := t.Start(updateType)
	defer t.Finish(updateType)
	return fn(WithUpdate(ctx, state))
}

// OnUpdate handles the paired notifications dispatched by the host platform
func (t *UpdateTracker) OnUpdate(_ context.Context, event events.UpdateEvent) error {
	if !Accepts(event.Channel, event.Type) {
		log.Debug().
			Str("section", "maintenance").
			Str("channel", string(event.Channel)).
			Str("update_type", event.Type.String()).
			Msg("Ignoring update notification")
		return nil
	}
	switch event.Phase {
	case model.UpdatePhaseStart:
		t.Start(event.Type)
	case model.UpdatePhaseFinish:
		t.Finish(event.Type)
	}
	return nil
}

// FilterDefaultMaintenance hides the host platform maintenance screen during install and update
func (t *UpdateTracker) FilterDefaultMaintenance(enable bool, context string) bool {
	if context == events.ContextInstall || context == events.ContextUpdate {
		return false
	}
	return enable
}
