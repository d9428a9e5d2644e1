package maintenance

import (
	"fmt"
	"time"

	"gitlab.com/paramountdax-exchange/site_maintenance/model"
)

// CompletedNoticeFormat is stored once a schedule runs past its end
const CompletedNoticeFormat = "Scheduled maintenance completed at %s."

// Input of a single evaluation
type Input struct {
	Config   model.MaintenanceConfig
	Update   model.UpdateState
	Location *time.Location
	Now      time.Time
}

// Evaluate resolves the maintenance decision for the given state and returns
// the option writes needed to keep the manual flag in line with the schedule.
// It does not touch any storage.
//
// Running past the end of a schedule is a single transition: the manual flag
// is switched off, both bounds are cleared and the completed notice is set.
// The transition is skipped while an update is in progress.
func Evaluate(in Input) (model.MaintenanceDecision, []model.ConfigMutation) {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	start := ResolveTimestamp(in.Config.StartTime, loc)
	end := ResolveTimestamp(in.Config.EndTime, loc)
	now := in.Now
	enabled := in.Config.Enabled
	updating := in.Update.Updating

	decision := model.MaintenanceDecision{Start: start, End: end}
	mutations := []model.ConfigMutation{}

	enable := func() {
		if !enabled {
			enabled = true
			mutations = append(mutations, model.SetEnabledMutation(true))
		}
	}
	complete := func() {
		if updating {
			return
		}
		if enabled {
			enabled = false
			mutations = append(mutations, model.SetEnabledMutation(false))
		}
		mutations = append(mutations,
			model.SetStringMutation(model.OptionMaintenanceStartTime, ""),
			model.SetStringMutation(model.OptionMaintenanceEndTime, ""),
			model.SetStringMutation(model.OptionMaintenanceCompletedNotice, CompletedMessage(*end, loc)),
		)
		decision.Completed = true
	}

	switch {
	case start != nil && end == nil:
		// open ended, the flag latches on and stays on
		if !now.Before(*start) {
			decision.Scheduled = true
			enable()
		}
	case start == nil && end != nil:
		if now.After(*end) {
			complete()
		}
	case start != nil && end != nil:
		if !now.Before(*start) && !now.After(*end) {
			decision.Scheduled = true
			enable()
		} else if now.After(*end) {
			complete()
		}
	}

	decision.Active = enabled || updating || decision.Scheduled
	decision.Reason = reasonFor(updating, decision.Scheduled, enabled)
	return decision, mutations
}

func reasonFor(updating, scheduled, enabled bool) model.MaintenanceReason {
	switch {
	case updating:
		return model.MaintenanceReasonUpdating
	case scheduled:
		return model.MaintenanceReasonScheduled
	case enabled:
		return model.MaintenanceReasonManual
	default:
		return model.MaintenanceReasonNone
	}
}

// CompletedMessage formats the notice stored when a schedule ends
func CompletedMessage(end time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return fmt.Sprintf(CompletedNoticeFormat, end.In(loc).Format(model.NoticeTimeLayout))
}

// ApplyMutations returns a copy of cfg with the mutations written to it
func ApplyMutations(cfg model.MaintenanceConfig, mutations []model.ConfigMutation) model.MaintenanceConfig {
	for _, m := range mutations {
		switch m.Option {
		case model.OptionMaintenanceEnabled:
			if v, ok := m.Value.(bool); ok {
				cfg.Enabled = v
			}
		case model.OptionMaintenanceStartTime:
			if v, ok := m.Value.(string); ok {
				cfg.StartTime = v
			}
		case model.OptionMaintenanceEndTime:
			if v, ok := m.Value.(string); ok {
				cfg.EndTime = v
			}
		case model.OptionMaintenanceCompletedNotice:
			if v, ok := m.Value.(string); ok {
				cfg.CompletedNotice = v
			}
		case model.OptionMaintenanceCustomHTML:
			if v, ok := m.Value.(string); ok {
				cfg.CustomHTML = v
			}
		case model.OptionMaintenanceAllowedRoles:
			if v, ok := m.Value.([]string); ok {
				cfg.AllowedRoles = v
			}
		}
	}
	return cfg
}
