package maintenance

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"gitlab.com/paramountdax-exchange/site_maintenance/model"
)

// SiteLocation returns the zone schedule bounds are interpreted in.
// A named zone wins over the numeric offset. Without either the site runs on UTC.
func SiteLocation(site model.SiteSettings) *time.Location {
	if name := strings.TrimSpace(site.Timezone); name != "" {
		loc, err := time.LoadLocation(name)
		if err == nil {
			return loc
		}
		log.Warn().Err(err).Str("section", "maintenance").Str("timezone", name).Msg("Unable to load site timezone, falling back to gmt offset")
	}
	if !site.HasGMTOffset {
		return time.UTC
	}
	return time.FixedZone(FormatOffset(site.GMTOffset), int(math.Round(site.GMTOffset*3600)))
}

// FormatOffset renders an offset in hours as ±HH:MM. Fractional hours become minutes.
func FormatOffset(hours float64) string {
	sign := "+"
	if hours < 0 {
		sign = "-"
		hours = -hours
	}
	total := int(math.Round(hours * 60))
	return fmt.Sprintf("%s%02d:%02d", sign, total/60, total%60)
}

// ResolveTimestamp parses a naive schedule bound as wall clock time in loc.
// Empty or malformed input returns nil so the bound is treated as unset.
func ResolveTimestamp(value string, loc *time.Location) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(model.ScheduleLayout, value, loc)
	if err != nil {
		log.Error().Err(err).
			Str("section", "maintenance").
			Str("value", value).
			Str("timezone", loc.String()).
			Msg("Unable to parse schedule time")
		return nil
	}
	return &t
}
