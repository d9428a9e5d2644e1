package model

import "time"

// ScheduleLayout is the naive local datetime format used for schedule bounds
// (the value of an HTML datetime-local input).
const ScheduleLayout = "2006-01-02T15:04"

// NoticeTimeLayout is used when a schedule bound is shown to an operator.
const NoticeTimeLayout = "2006-01-02 15:04"

// MaintenanceReason explains why maintenance is active.
type MaintenanceReason string

const (
	MaintenanceReasonUpdating  MaintenanceReason = "updating"
	MaintenanceReasonScheduled MaintenanceReason = "scheduled"
	MaintenanceReasonManual    MaintenanceReason = "manual"
	MaintenanceReasonNone      MaintenanceReason = "none"
)

func (r MaintenanceReason) IsValid() bool {
	switch r {
	case MaintenanceReasonUpdating,
		MaintenanceReasonScheduled,
		MaintenanceReasonManual,
		MaintenanceReasonNone:
		return true
	default:
		return false
	}
}

func (r MaintenanceReason) String() string {
	return string(r)
}

// MaintenanceConfig is the persisted maintenance state of the site
type MaintenanceConfig struct {
	Enabled         bool     `json:"enabled"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	AllowedRoles    []string `json:"allowed_roles"`
	CustomHTML      string   `json:"custom_html"`
	CompletedNotice string   `json:"completed_notice"`
}

// HasSchedule returns true if at least one schedule bound is stored
func (c MaintenanceConfig) HasSchedule() bool {
	return c.StartTime != "" || c.EndTime != ""
}

// NewDefaultMaintenanceConfig returns the state written when the gate is activated
func NewDefaultMaintenanceConfig() MaintenanceConfig {
	return MaintenanceConfig{
		Enabled:      false,
		AllowedRoles: []string{Administrator.String()},
	}
}

// SiteSettings holds the site-wide values the resolver depends on
type SiteSettings struct {
	Name         string  `json:"name"`
	Timezone     string  `json:"timezone"`
	GMTOffset    float64 `json:"gmt_offset"`
	HasGMTOffset bool    `json:"-"`
}

// MaintenanceDecision is derived on every evaluation and never stored
type MaintenanceDecision struct {
	Active    bool              `json:"active"`
	Reason    MaintenanceReason `json:"reason"`
	Scheduled bool              `json:"scheduled"`
	Start     *time.Time        `json:"start_time,omitempty"`
	End       *time.Time        `json:"end_time,omitempty"`
	// Completed is set when this evaluation closed the schedule
	Completed bool `json:"completed"`
}

// MaintenanceStatus is returned by the admin API
type MaintenanceStatus struct {
	Config   MaintenanceConfig   `json:"config"`
	Decision MaintenanceDecision `json:"decision"`
	Updating bool                `json:"updating"`
}

// ConfigMutation is a single option write produced by the resolver
type ConfigMutation struct {
	Option string      `json:"option"`
	Value  interface{} `json:"value"`
}

func SetEnabledMutation(enabled bool) ConfigMutation {
	return ConfigMutation{Option: OptionMaintenanceEnabled, Value: enabled}
}

func SetStringMutation(option, value string) ConfigMutation {
	return ConfigMutation{Option: option, Value: value}
}

// MaintenanceSettingsForm is the payload of the settings form
type MaintenanceSettingsForm struct {
	Enabled      bool     `form:"enabled" json:"enabled"`
	CustomHTML   string   `form:"custom_html" json:"custom_html"`
	StartTime    string   `form:"start_time" json:"start_time"`
	EndTime      string   `form:"end_time" json:"end_time"`
	AllowedRoles []string `form:"allowed_roles" json:"allowed_roles"`
}
