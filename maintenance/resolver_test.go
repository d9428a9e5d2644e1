package maintenance

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"gitlab.com/paramountdax-exchange/site_maintenance/model"
)

func utc(value string) time.Time {
	t, err := time.ParseInLocation(model.ScheduleLayout, value, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func evaluate(cfg model.MaintenanceConfig, updating bool, now time.Time) (model.MaintenanceDecision, []model.ConfigMutation) {
	return Evaluate(Input{
		Config:   cfg,
		Update:   model.UpdateState{Updating: updating},
		Location: time.UTC,
		Now:      now,
	})
}

func TestEvaluateWindow(t *testing.T) {
	Convey("Given a schedule with both bounds in UTC", t, func() {
		cfg := model.MaintenanceConfig{StartTime: "2024-01-01T00:00", EndTime: "2024-01-02T00:00"}

		Convey("Inside the window the site is in scheduled maintenance and the flag is latched on", func() {
			decision, mutations := evaluate(cfg, false, utc("2024-01-01T12:00"))
			So(decision.Active, ShouldBeTrue)
			So(decision.Scheduled, ShouldBeTrue)
			So(decision.Reason, ShouldEqual, model.MaintenanceReasonScheduled)
			So(mutations, ShouldResemble, []model.ConfigMutation{model.SetEnabledMutation(true)})
			So(decision.Start.Equal(utc("2024-01-01T00:00")), ShouldBeTrue)
			So(decision.End.Equal(utc("2024-01-02T00:00")), ShouldBeTrue)
		})

		Convey("Both bounds are inclusive", func() {
			decision, _ := evaluate(cfg, false, utc("2024-01-01T00:00"))
			So(decision.Scheduled, ShouldBeTrue)
			decision, _ = evaluate(cfg, false, utc("2024-01-02T00:00"))
			So(decision.Scheduled, ShouldBeTrue)
		})

		Convey("Before the window nothing happens", func() {
			decision, mutations := evaluate(cfg, false, utc("2023-12-31T23:59"))
			So(decision.Active, ShouldBeFalse)
			So(decision.Scheduled, ShouldBeFalse)
			So(decision.Reason, ShouldEqual, model.MaintenanceReasonNone)
			So(mutations, ShouldBeEmpty)
		})

		Convey("After the window the schedule is closed in one transition", func() {
			cfg.Enabled = true
			decision, mutations := evaluate(cfg, false, utc("2024-01-03T00:00"))
			So(decision.Active, ShouldBeFalse)
			So(decision.Scheduled, ShouldBeFalse)
			So(decision.Completed, ShouldBeTrue)
			So(decision.Reason, ShouldEqual, model.MaintenanceReasonNone)
			So(mutations, ShouldResemble, []model.ConfigMutation{
				model.SetEnabledMutation(false),
				model.SetStringMutation(model.OptionMaintenanceStartTime, ""),
				model.SetStringMutation(model.OptionMaintenanceEndTime, ""),
				model.SetStringMutation(model.OptionMaintenanceCompletedNotice, "Scheduled maintenance completed at 2024-01-02 00:00."),
			})

			Convey("And the next evaluation finds nothing left to do", func() {
				next := ApplyMutations(cfg, mutations)
				So(next.Enabled, ShouldBeFalse)
				So(next.HasSchedule(), ShouldBeFalse)
				decision, mutations = evaluate(next, false, utc("2024-01-03T00:00"))
				So(decision.Active, ShouldBeFalse)
				So(decision.Completed, ShouldBeFalse)
				So(mutations, ShouldBeEmpty)
			})
		})

		Convey("After the window with the flag already off the schedule is still cleared", func() {
			_, mutations := evaluate(cfg, false, utc("2024-01-02T00:01"))
			So(len(mutations), ShouldEqual, 3)
			So(mutations[0].Option, ShouldEqual, model.OptionMaintenanceStartTime)
		})
	})
}

func TestEvaluateOpenEndedStart(t *testing.T) {
	Convey("Given only a start time", t, func() {
		cfg := model.MaintenanceConfig{StartTime: "2024-05-01T08:30"}

		Convey("Before the start nothing happens", func() {
			decision, mutations := evaluate(cfg, false, utc("2024-05-01T08:29"))
			So(decision.Active, ShouldBeFalse)
			So(mutations, ShouldBeEmpty)
		})

		Convey("Crossing the start latches the flag and it stays on", func() {
			decision, mutations := evaluate(cfg, false, utc("2024-05-01T08:30"))
			So(decision.Active, ShouldBeTrue)
			So(decision.Reason, ShouldEqual, model.MaintenanceReasonScheduled)
			So(mutations, ShouldResemble, []model.ConfigMutation{model.SetEnabledMutation(true)})

			cfg = ApplyMutations(cfg, mutations)
			for _, later := range []string{"2024-05-02T00:00", "2025-01-01T00:00", "2030-12-31T23:59"} {
				decision, mutations = evaluate(cfg, false, utc(later))
				So(cfg.Enabled, ShouldBeTrue)
				So(decision.Active, ShouldBeTrue)
				So(decision.Scheduled, ShouldBeTrue)
				So(mutations, ShouldBeEmpty)
			}
		})
	})
}

func TestEvaluateDeadline(t *testing.T) {
	Convey("Given only an end time and manual maintenance", t, func() {
		cfg := model.MaintenanceConfig{Enabled: true, EndTime: "2024-02-10T18:00"}

		Convey("Until the end the site stays in manual maintenance", func() {
			decision, mutations := evaluate(cfg, false, utc("2024-02-10T18:00"))
			So(decision.Active, ShouldBeTrue)
			So(decision.Scheduled, ShouldBeFalse)
			So(decision.Reason, ShouldEqual, model.MaintenanceReasonManual)
			So(mutations, ShouldBeEmpty)
		})

		Convey("Past the end the flag goes off and stays off", func() {
			decision, mutations := evaluate(cfg, false, utc("2024-02-10T18:01"))
			So(decision.Active, ShouldBeFalse)
			So(mutations[0], ShouldResemble, model.SetEnabledMutation(false))
			So(mutations[3].Value, ShouldEqual, "Scheduled maintenance completed at 2024-02-10 18:00.")

			cfg = ApplyMutations(cfg, mutations)
			decision, mutations = evaluate(cfg, false, utc("2024-03-01T00:00"))
			So(cfg.Enabled, ShouldBeFalse)
			So(decision.Active, ShouldBeFalse)
			So(mutations, ShouldBeEmpty)
		})
	})
}

func TestEvaluateUpdating(t *testing.T) {
	Convey("An update in progress overrides every other state", t, func() {
		decision, mutations := evaluate(model.MaintenanceConfig{}, true, utc("2024-01-01T00:00"))
		So(decision.Active, ShouldBeTrue)
		So(decision.Reason, ShouldEqual, model.MaintenanceReasonUpdating)
		So(mutations, ShouldBeEmpty)

		Convey("Even inside a schedule the reason is the update", func() {
			cfg := model.MaintenanceConfig{Enabled: true, StartTime: "2024-01-01T00:00", EndTime: "2024-01-02T00:00"}
			decision, _ := evaluate(cfg, true, utc("2024-01-01T06:00"))
			So(decision.Scheduled, ShouldBeTrue)
			So(decision.Reason, ShouldEqual, model.MaintenanceReasonUpdating)
		})

		Convey("An expired schedule is not closed while updating", func() {
			cfg := model.MaintenanceConfig{Enabled: true, StartTime: "2024-01-01T00:00", EndTime: "2024-01-02T00:00"}
			decision, mutations := evaluate(cfg, true, utc("2024-01-05T00:00"))
			So(decision.Active, ShouldBeTrue)
			So(decision.Completed, ShouldBeFalse)
			So(mutations, ShouldBeEmpty)

			Convey("And it is closed by the first evaluation after the update", func() {
				decision, mutations = evaluate(cfg, false, utc("2024-01-05T00:00"))
				So(decision.Active, ShouldBeFalse)
				So(decision.Completed, ShouldBeTrue)
				So(len(mutations), ShouldEqual, 4)
			})
		})

		Convey("An expired end-only schedule keeps the flag on while updating", func() {
			cfg := model.MaintenanceConfig{Enabled: true, EndTime: "2024-01-02T00:00"}
			decision, mutations := evaluate(cfg, true, utc("2024-01-05T00:00"))
			So(decision.Active, ShouldBeTrue)
			So(decision.Reason, ShouldEqual, model.MaintenanceReasonUpdating)
			So(decision.Completed, ShouldBeFalse)
			So(mutations, ShouldBeEmpty)
		})
	})
}

func TestEvaluateManual(t *testing.T) {
	Convey("Manual maintenance without a schedule never changes on its own", t, func() {
		cfg := model.MaintenanceConfig{Enabled: true}
		for _, now := range []string{"2000-01-01T00:00", "2024-01-01T00:00", "2099-12-31T23:59"} {
			decision, mutations := evaluate(cfg, false, utc(now))
			So(decision.Active, ShouldBeTrue)
			So(decision.Reason, ShouldEqual, model.MaintenanceReasonManual)
			So(decision.Scheduled, ShouldBeFalse)
			So(mutations, ShouldBeEmpty)
		}
	})

	Convey("Malformed bounds are ignored", t, func() {
		cfg := model.MaintenanceConfig{StartTime: "not a date", EndTime: "2024-01-01 10:00"}
		decision, mutations := evaluate(cfg, false, utc("2024-01-01T12:00"))
		So(decision.Active, ShouldBeFalse)
		So(decision.Start, ShouldBeNil)
		So(decision.End, ShouldBeNil)
		So(mutations, ShouldBeEmpty)
	})
}

func TestEvaluateIdempotence(t *testing.T) {
	Convey("Repeating an evaluation after its writes produces no further writes", t, func() {
		configs := []model.MaintenanceConfig{
			{StartTime: "2024-01-01T00:00", EndTime: "2024-01-02T00:00"},
			{StartTime: "2024-01-01T00:00"},
			{Enabled: true, EndTime: "2024-01-01T06:00"},
			{Enabled: true},
			{},
		}
		now := utc("2024-01-01T12:00")
		for _, cfg := range configs {
			first, mutations := evaluate(cfg, false, now)
			cfg = ApplyMutations(cfg, mutations)
			second, again := evaluate(cfg, false, now)
			So(again, ShouldBeEmpty)
			So(second.Active, ShouldEqual, first.Active)
			So(second.Scheduled, ShouldEqual, first.Scheduled)
			if !first.Completed {
				So(second.Reason, ShouldEqual, first.Reason)
			}
		}
	})
}

func TestEvaluateSiteTimezone(t *testing.T) {
	Convey("Bounds are read in the site timezone", t, func() {
		loc := SiteLocation(model.SiteSettings{GMTOffset: 3, HasGMTOffset: true})
		cfg := model.MaintenanceConfig{StartTime: "2024-01-01T00:00", EndTime: "2024-01-01T02:00"}

		decision, _ := Evaluate(Input{Config: cfg, Location: loc, Now: time.Date(2023, 12, 31, 21, 30, 0, 0, time.UTC)})
		So(decision.Scheduled, ShouldBeTrue)

		decision, _ = Evaluate(Input{Config: cfg, Location: loc, Now: time.Date(2023, 12, 31, 20, 59, 0, 0, time.UTC)})
		So(decision.Scheduled, ShouldBeFalse)

		Convey("And the completed notice shows the end in site time", func() {
			_, mutations := Evaluate(Input{Config: cfg, Location: loc, Now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
			So(mutations[len(mutations)-1].Value, ShouldEqual, "Scheduled maintenance completed at 2024-01-01 02:00.")
		})
	})
}
