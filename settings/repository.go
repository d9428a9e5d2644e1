package settings

import (
	"context"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"gitlab.com/paramountdax-exchange/site_maintenance/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Repository gives typed access to the options kept in a Store
type Repository struct {
	store Store
	// values used for site options missing from the store
	siteDefaults model.SiteSettings
}

// NewRepository constructor
func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// SetSiteDefaults configures the fallbacks used by LoadSiteSettings
func (r *Repository) SetSiteDefaults(site model.SiteSettings) {
	r.siteDefaults = site
}

// Store returns the underlying option storage
func (r *Repository) Store() Store {
	return r.store
}

// GetString returns the stored value or def when the option is missing
func (r *Repository) GetString(ctx context.Context, name, def string) (string, error) {
	value, err := r.store.Get(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return value, nil
}

// GetBool returns the stored flag or def when the option is missing
func (r *Repository) GetBool(ctx context.Context, name string, def bool) (bool, error) {
	value, err := r.store.Get(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return parseBool(value), nil
}

// GetFloat returns the stored number. ok is false when the option is missing or empty.
func (r *Repository) GetFloat(ctx context.Context, name string) (value float64, ok bool, err error) {
	raw, err := r.store.Get(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	value, err = strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Warn().Err(err).Str("section", "settings").Str("option", name).Str("value", raw).Msg("Unable to parse numeric option")
		return 0, false, nil
	}
	return value, true, nil
}

// GetStrings decodes a JSON list. A plain scalar value is read as a one element list.
func (r *Repository) GetStrings(ctx context.Context, name string, def []string) ([]string, error) {
	raw, err := r.store.Get(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}
	list := []string{}
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return def, errors.Wrapf(err, "decode option %s", name)
		}
		return list, nil
	}
	return append(list, raw), nil
}

// SetString stores a plain value
func (r *Repository) SetString(ctx context.Context, name, value string) error {
	return r.store.Set(ctx, name, value)
}

// SetBool stores a flag as "1" or "0"
func (r *Repository) SetBool(ctx context.Context, name string, value bool) error {
	return r.store.Set(ctx, name, formatBool(value))
}

// SetStrings stores a JSON encoded list
func (r *Repository) SetStrings(ctx context.Context, name string, values []string) error {
	if values == nil {
		values = []string{}
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return errors.Wrapf(err, "encode option %s", name)
	}
	return r.store.Set(ctx, name, string(encoded))
}

// Add stores the value only if the option does not exist yet
func (r *Repository) Add(ctx context.Context, name, value string) error {
	_, err := r.store.Get(ctx, name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	return r.store.Set(ctx, name, value)
}

// Delete an option
func (r *Repository) Delete(ctx context.Context, name string) error {
	return r.store.Delete(ctx, name)
}

// LoadMaintenanceConfig reads every maintenance option
func (r *Repository) LoadMaintenanceConfig(ctx context.Context) (model.MaintenanceConfig, error) {
	cfg := model.MaintenanceConfig{}
	var err error
	if cfg.Enabled, err = r.GetBool(ctx, model.OptionMaintenanceEnabled, false); err != nil {
		return cfg, err
	}
	if cfg.StartTime, err = r.GetString(ctx, model.OptionMaintenanceStartTime, ""); err != nil {
		return cfg, err
	}
	if cfg.EndTime, err = r.GetString(ctx, model.OptionMaintenanceEndTime, ""); err != nil {
		return cfg, err
	}
	// a missing option falls back to the activation default, a stored empty list is kept
	if cfg.AllowedRoles, err = r.GetStrings(ctx, model.OptionMaintenanceAllowedRoles, model.NewDefaultMaintenanceConfig().AllowedRoles); err != nil {
		return cfg, err
	}
	if cfg.CustomHTML, err = r.GetString(ctx, model.OptionMaintenanceCustomHTML, ""); err != nil {
		return cfg, err
	}
	if cfg.CompletedNotice, err = r.GetString(ctx, model.OptionMaintenanceCompletedNotice, ""); err != nil {
		return cfg, err
	}
	cfg.StartTime = strings.TrimSpace(cfg.StartTime)
	cfg.EndTime = strings.TrimSpace(cfg.EndTime)
	return cfg, nil
}

// SaveMaintenanceConfig writes the settings form. The completed notice is left untouched.
func (r *Repository) SaveMaintenanceConfig(ctx context.Context, cfg model.MaintenanceConfig) error {
	if err := r.SetBool(ctx, model.OptionMaintenanceEnabled, cfg.Enabled); err != nil {
		return err
	}
	if err := r.SetString(ctx, model.OptionMaintenanceStartTime, cfg.StartTime); err != nil {
		return err
	}
	if err := r.SetString(ctx, model.OptionMaintenanceEndTime, cfg.EndTime); err != nil {
		return err
	}
	if err := r.SetStrings(ctx, model.OptionMaintenanceAllowedRoles, cfg.AllowedRoles); err != nil {
		return err
	}
	return r.SetString(ctx, model.OptionMaintenanceCustomHTML, cfg.CustomHTML)
}

// LoadSiteSettings reads the site name and timezone options
func (r *Repository) LoadSiteSettings(ctx context.Context) (model.SiteSettings, error) {
	site := model.SiteSettings{}
	var err error
	if site.Name, err = r.GetString(ctx, model.OptionSiteName, r.siteDefaults.Name); err != nil {
		return site, err
	}
	if site.Timezone, err = r.GetString(ctx, model.OptionSiteTimezone, r.siteDefaults.Timezone); err != nil {
		return site, err
	}
	if site.GMTOffset, site.HasGMTOffset, err = r.GetFloat(ctx, model.OptionSiteGMTOffset); err != nil {
		return site, err
	}
	if !site.HasGMTOffset {
		site.GMTOffset, site.HasGMTOffset = r.siteDefaults.GMTOffset, r.siteDefaults.HasGMTOffset
	}
	site.Timezone = strings.TrimSpace(site.Timezone)
	return site, nil
}

// Apply writes the mutations in order and stops at the first failure
func (r *Repository) Apply(ctx context.Context, mutations []model.ConfigMutation) error {
	for _, m := range mutations {
		var err error
		switch v := m.Value.(type) {
		case bool:
			err = r.SetBool(ctx, m.Option, v)
		case string:
			err = r.SetString(ctx, m.Option, v)
		case []string:
			err = r.SetStrings(ctx, m.Option, v)
		default:
			err = errors.Errorf("unsupported value type %T for option %s", m.Value, m.Option)
		}
		if err != nil {
			return errors.Wrapf(err, "apply mutation %s", m.Option)
		}
	}
	return nil
}

// Activate writes the default maintenance options without overwriting existing ones
func (r *Repository) Activate(ctx context.Context) error {
	defaults := model.NewDefaultMaintenanceConfig()
	roles, err := json.Marshal(defaults.AllowedRoles)
	if err != nil {
		return err
	}
	values := []struct {
		name  string
		value string
	}{
		{model.OptionMaintenanceEnabled, formatBool(defaults.Enabled)},
		{model.OptionMaintenanceCustomHTML, ""},
		{model.OptionMaintenanceStartTime, ""},
		{model.OptionMaintenanceEndTime, ""},
		{model.OptionMaintenanceAllowedRoles, string(roles)},
		{model.OptionMaintenanceCompletedNotice, ""},
	}
	for _, v := range values {
		if err := r.Add(ctx, v.name, v.value); err != nil {
			return errors.Wrapf(err, "add option %s", v.name)
		}
	}
	return nil
}

// Deactivate removes every maintenance option
func (r *Repository) Deactivate(ctx context.Context) error {
	for _, name := range model.MaintenanceOptions {
		if err := r.Delete(ctx, name); err != nil {
			return errors.Wrapf(err, "delete option %s", name)
		}
	}
	return nil
}

func parseBool(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		switch strings.ToLower(value) {
		case "on", "yes", "y":
			return true
		}
		return false
	}
	return b
}

func formatBool(value bool) string {
	if value {
		return "1"
	}
	return "0"
}
