package maintenance

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"gitlab.com/paramountdax-exchange/site_maintenance/events"
	"gitlab.com/paramountdax-exchange/site_maintenance/model"
	"gitlab.com/paramountdax-exchange/site_maintenance/monitor"
	"gitlab.com/paramountdax-exchange/site_maintenance/settings"
)

// DefaultRetryAfter in seconds sent with the maintenance page
const DefaultRetryAfter = 3600

// Config of the maintenance service
type Config struct {
	RetryAfter int `mapstructure:"retry_after"`
}

// Evaluation is the outcome of one resolver run together with the state it was computed from
type Evaluation struct {
	Config    model.MaintenanceConfig
	Site      model.SiteSettings
	Location  *time.Location
	Update    model.UpdateState
	Decision  model.MaintenanceDecision
	Mutations []model.ConfigMutation
	Now       time.Time
}

// ValidationError is returned for a rejected settings form
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Service ties the resolver to the option storage and the update tracker
type Service struct {
	repo    *settings.Repository
	tracker *UpdateTracker
	page    *Page
	cfg     Config
	now     func() time.Time
	// serializes evaluations that may write options
	lock sync.Mutex
}

// NewService constructor
func NewService(repo *settings.Repository, tracker *UpdateTracker, cfg Config) *Service {
	if cfg.RetryAfter <= 0 {
		cfg.RetryAfter = DefaultRetryAfter
	}
	if tracker == nil {
		tracker = NewUpdateTracker()
	}
	return &Service{
		repo:    repo,
		tracker: tracker,
		page:    NewPage(),
		cfg:     cfg,
		now:     time.Now,
	}
}

// SetClock replaces the time source
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Tracker returns the update tracker fed by update notifications
func (s *Service) Tracker() *UpdateTracker {
	return s.tracker
}

// Repository returns the option repository
func (s *Service) Repository() *settings.Repository {
	return s.repo
}

func (s *Service) updateState(ctx context.Context) model.UpdateState {
	if state, ok := UpdateFromContext(ctx); ok {
		return state
	}
	return s.tracker.Current()
}

func (s *Service) load(ctx context.Context, at time.Time) (*Evaluation, error) {
	cfg, err := s.repo.LoadMaintenanceConfig(ctx)
	if err != nil {
		monitor.StoreErrors.WithLabelValues("read").Inc()
		return nil, errors.Wrap(err, "load maintenance config")
	}
	site, err := s.repo.LoadSiteSettings(ctx)
	if err != nil {
		monitor.StoreErrors.WithLabelValues("read").Inc()
		return nil, errors.Wrap(err, "load site settings")
	}
	ev := &Evaluation{
		Config:   cfg,
		Site:     site,
		Location: SiteLocation(site),
		Update:   s.updateState(ctx),
		Now:      at,
	}
	ev.Decision, ev.Mutations = Evaluate(Input{
		Config:   ev.Config,
		Update:   ev.Update,
		Location: ev.Location,
		Now:      at,
	})
	return ev, nil
}

// Check evaluates the current state and writes the resulting option changes
// before returning, so the returned config already holds the new values.
// A failed write is logged and retried by the next evaluation.
func (s *Service) Check(ctx context.Context) (*Evaluation, error) {
	return s.checkAt(ctx, s.now())
}

func (s *Service) checkAt(ctx context.Context, at time.Time) (*Evaluation, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	ev, err := s.load(ctx, at)
	if err != nil {
		return nil, err
	}
	if len(ev.Mutations) > 0 {
		ev.Config = ApplyMutations(ev.Config, ev.Mutations)
		if err := s.repo.Apply(ctx, ev.Mutations); err != nil {
			monitor.StoreErrors.WithLabelValues("write").Inc()
			log.Error().Err(err).Str("section", "maintenance").Msg("Unable to apply schedule transition")
		} else {
			for _, m := range ev.Mutations {
				monitor.ConfigMutations.WithLabelValues(m.Option).Inc()
			}
			log.Info().
				Str("section", "maintenance").
				Int("mutations", len(ev.Mutations)).
				Bool("enabled", ev.Config.Enabled).
				Bool("completed", ev.Decision.Completed).
				Msg("Applied schedule transition")
		}
	}

	monitor.MaintenanceEvaluations.WithLabelValues(ev.Decision.Reason.String()).Inc()
	if ev.Decision.Active {
		monitor.MaintenanceActive.Set(1)
	} else {
		monitor.MaintenanceActive.Set(0)
	}
	return ev, nil
}

// Preview evaluates the state at the given time without writing anything
func (s *Service) Preview(ctx context.Context, at time.Time) (*Evaluation, error) {
	return s.load(ctx, at)
}

// Status returns the config and decision after applying pending transitions
func (s *Service) Status(ctx context.Context) (model.MaintenanceStatus, error) {
	ev, err := s.Check(ctx)
	if err != nil {
		return model.MaintenanceStatus{}, err
	}
	return model.MaintenanceStatus{
		Config:   ev.Config,
		Decision: ev.Decision,
		Updating: ev.Update.Updating,
	}, nil
}

// OnRequest blocks the request with the maintenance page unless the requester may pass.
// The state is evaluated at the time the request arrived, the service clock when unset.
func (s *Service) OnRequest(ctx context.Context, event events.RequestEvent) (*events.Interruption, error) {
	at := event.At
	if at.IsZero() {
		at = s.now()
	}
	ev, err := s.checkAt(ctx, at)
	if err != nil {
		return nil, err
	}
	if !ev.Decision.Active || IsBypassed(event.Roles, ev.Config.AllowedRoles) {
		return nil, nil
	}

	body, err := s.page.Body(ev.Config.CustomHTML, ev.Site.Name, event.AcceptLanguage)
	if err != nil {
		return nil, errors.Wrap(err, "render maintenance page")
	}
	monitor.BlockedRequests.WithLabelValues(ev.Decision.Reason.String()).Inc()
	return &events.Interruption{
		Status: http.StatusServiceUnavailable,
		Headers: map[string]string{
			"Retry-After":  strconv.Itoa(s.cfg.RetryAfter),
			"Content-Type": "text/html; charset=utf-8",
		},
		Body:   body,
		Reason: ev.Decision.Reason,
	}, nil
}

// ReasonMessage is the operator facing text of a reason
func ReasonMessage(reason model.MaintenanceReason) string {
	switch reason {
	case model.MaintenanceReasonUpdating:
		return "The site is currently being updated."
	case model.MaintenanceReasonScheduled:
		return "The site is in scheduled maintenance mode."
	case model.MaintenanceReasonManual:
		return "The site is in manual maintenance mode."
	}
	return ""
}

// Notices builds the dashboard banners. The completed notice is shown once and then cleared.
func (s *Service) Notices(ctx context.Context) ([]model.Notice, error) {
	ev, err := s.Check(ctx)
	if err != nil {
		return nil, err
	}
	notices := []model.Notice{}
	loc := ev.Location
	start := ResolveTimestamp(ev.Config.StartTime, loc)
	end := ResolveTimestamp(ev.Config.EndTime, loc)

	if start != nil && ev.Now.Before(*start) {
		msg := fmt.Sprintf("The site will be in scheduled maintenance mode. Scheduled to start at %s", start.In(loc).Format(model.NoticeTimeLayout))
		if end != nil {
			msg += fmt.Sprintf(" until %s", end.In(loc).Format(model.NoticeTimeLayout))
		}
		notices = append(notices, model.Notice{Level: model.NoticeLevelInfo, Title: "Maintenance Mode", Message: msg + "."})
	}

	if ev.Decision.Active {
		msg := ReasonMessage(ev.Decision.Reason)
		if ev.Decision.Scheduled && end != nil {
			msg = fmt.Sprintf("The site is in scheduled maintenance mode. Scheduled to end at %s.", end.In(loc).Format(model.NoticeTimeLayout))
		}
		notices = append(notices, model.Notice{Level: model.NoticeLevelError, Title: "Maintenance Mode Active", Message: msg})
	}

	if ev.Config.CompletedNotice != "" {
		notices = append(notices, model.Notice{Level: model.NoticeLevelSuccess, Title: "Maintenance Mode", Message: ev.Config.CompletedNotice})
		if err := s.repo.SetString(ctx, model.OptionMaintenanceCompletedNotice, ""); err != nil {
			monitor.StoreErrors.WithLabelValues("write").Inc()
			return notices, errors.Wrap(err, "clear completed notice")
		}
	}
	return notices, nil
}

// ValidateSettings normalizes the form and rejects malformed values
func ValidateSettings(form model.MaintenanceSettingsForm) (model.MaintenanceConfig, error) {
	cfg := model.MaintenanceConfig{
		Enabled:    form.Enabled,
		CustomHTML: form.CustomHTML,
		StartTime:  strings.TrimSpace(form.StartTime),
		EndTime:    strings.TrimSpace(form.EndTime),
	}

	var start, end time.Time
	var err error
	if cfg.StartTime != "" {
		if start, err = time.Parse(model.ScheduleLayout, cfg.StartTime); err != nil {
			return cfg, ValidationError{Field: "start_time", Message: "expected format YYYY-MM-DDTHH:MM"}
		}
	}
	if cfg.EndTime != "" {
		if end, err = time.Parse(model.ScheduleLayout, cfg.EndTime); err != nil {
			return cfg, ValidationError{Field: "end_time", Message: "expected format YYYY-MM-DDTHH:MM"}
		}
	}
	if cfg.StartTime != "" && cfg.EndTime != "" && end.Before(start) {
		return cfg, ValidationError{Field: "end_time", Message: "end time is before start time"}
	}

	seen := map[string]bool{}
	cfg.AllowedRoles = []string{}
	for _, role := range form.AllowedRoles {
		role = strings.TrimSpace(role)
		if role == "" || seen[role] {
			continue
		}
		if !model.RoleAlias(role).IsValid() {
			return cfg, ValidationError{Field: "allowed_roles", Message: fmt.Sprintf("unknown role %q", role)}
		}
		seen[role] = true
		cfg.AllowedRoles = append(cfg.AllowedRoles, role)
	}
	return cfg, nil
}

// SaveSettings validates and stores the settings form
func (s *Service) SaveSettings(ctx context.Context, form model.MaintenanceSettingsForm) (model.MaintenanceConfig, error) {
	cfg, err := ValidateSettings(form)
	if err != nil {
		return cfg, err
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	if err := s.repo.SaveMaintenanceConfig(ctx, cfg); err != nil {
		monitor.StoreErrors.WithLabelValues("write").Inc()
		return cfg, errors.Wrap(err, "save maintenance settings")
	}
	log.Info().
		Str("section", "maintenance").
		Bool("enabled", cfg.Enabled).
		Str("start_time", cfg.StartTime).
		Str("end_time", cfg.EndTime).
		Strs("allowed_roles", cfg.AllowedRoles).
		Msg("Maintenance settings saved")
	return cfg, nil
}
