package maintenance

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/assert/v2"

	"gitlab.com/paramountdax-exchange/site_maintenance/model"
)

func TestFormatOffset(t *testing.T) {
	tests := []struct {
		name string
		arg  float64
		want string
	}{
		{name: "UTC", arg: 0, want: "+00:00"},
		{name: "Whole positive hours", arg: 3, want: "+03:00"},
		{name: "Whole negative hours", arg: -5, want: "-05:00"},
		{name: "Half hour", arg: 5.5, want: "+05:30"},
		{name: "Quarter hours", arg: 5.75, want: "+05:45"},
		{name: "Negative half hour", arg: -9.5, want: "-09:30"},
		{name: "Negative offset under one hour", arg: -0.5, want: "-00:30"},
		{name: "Two digit hours", arg: 12.75, want: "+12:45"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, FormatOffset(tt.arg), tt.want)
		})
	}
}

func TestSiteLocation(t *testing.T) {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		site       model.SiteSettings
		wantName   string
		wantOffset int
	}{
		{
			name:       "Named zone",
			site:       model.SiteSettings{Timezone: "Europe/Warsaw", GMTOffset: 5, HasGMTOffset: true},
			wantName:   "Europe/Warsaw",
			wantOffset: 3600,
		},
		{
			name:       "Offset when no zone is set",
			site:       model.SiteSettings{GMTOffset: 5.5, HasGMTOffset: true},
			wantName:   "+05:30",
			wantOffset: 19800,
		},
		{
			name:       "Offset when the zone is unknown",
			site:       model.SiteSettings{Timezone: "Mars/Olympus", GMTOffset: -3, HasGMTOffset: true},
			wantName:   "-03:00",
			wantOffset: -10800,
		},
		{
			name:       "UTC without any setting",
			site:       model.SiteSettings{},
			wantName:   "UTC",
			wantOffset: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := SiteLocation(tt.site)
			assert.Equal(t, loc.String(), tt.wantName)
			_, offset := at.In(loc).Zone()
			assert.Equal(t, offset, tt.wantOffset)
		})
	}
}

func TestResolveTimestamp(t *testing.T) {
	plus3 := time.FixedZone("+03:00", 3*3600)
	tests := []struct {
		name  string
		value string
		loc   *time.Location
		want  *time.Time
	}{
		{name: "Empty", value: "", loc: time.UTC, want: nil},
		{name: "Blank", value: "   ", loc: time.UTC, want: nil},
		{name: "Malformed", value: "tomorrow", loc: time.UTC, want: nil},
		{name: "Wrong separator", value: "2024-01-01 00:00", loc: time.UTC, want: nil},
		{name: "Out of range", value: "2024-13-01T00:00", loc: time.UTC, want: nil},
		{name: "UTC", value: "2024-01-01T00:00", loc: time.UTC, want: timePtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))},
		{name: "Site zone", value: "2024-01-01T00:00", loc: plus3, want: timePtr(time.Date(2023, 12, 31, 21, 0, 0, 0, time.UTC))},
		{name: "Nil location", value: "2024-06-30T23:59", loc: nil, want: timePtr(time.Date(2024, 6, 30, 23, 59, 0, 0, time.UTC))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTimestamp(tt.value, tt.loc)
			if tt.want == nil {
				assert.Equal(t, got == nil, true)
				return
			}
			assert.Equal(t, got != nil, true)
			assert.Equal(t, got.Unix(), tt.want.Unix())
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
