package settings

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"gitlab.com/paramountdax-exchange/site_maintenance/model"
)

func TestRepositoryTypedAccess(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty memory store", t, func() {
		store := NewMemoryStore()
		repo := NewRepository(store)

		Convey("Missing options return the defaults", func() {
			value, err := repo.GetString(ctx, "missing", "fallback")
			So(err, ShouldBeNil)
			So(value, ShouldEqual, "fallback")

			flag, err := repo.GetBool(ctx, "missing", true)
			So(err, ShouldBeNil)
			So(flag, ShouldBeTrue)

			_, ok, err := repo.GetFloat(ctx, "missing")
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("Allowed roles default to administrators until the option is stored", func() {
			cfg, err := repo.LoadMaintenanceConfig(ctx)
			So(err, ShouldBeNil)
			So(cfg.AllowedRoles, ShouldResemble, []string{"administrator"})

			So(repo.SetStrings(ctx, model.OptionMaintenanceAllowedRoles, []string{}), ShouldBeNil)
			cfg, err = repo.LoadMaintenanceConfig(ctx)
			So(err, ShouldBeNil)
			So(cfg.AllowedRoles, ShouldResemble, []string{})
		})

		Convey("Flags are written as 1 and 0", func() {
			So(repo.SetBool(ctx, "flag", true), ShouldBeNil)
			raw, _ := store.Get(ctx, "flag")
			So(raw, ShouldEqual, "1")
			So(repo.SetBool(ctx, "flag", false), ShouldBeNil)
			raw, _ = store.Get(ctx, "flag")
			So(raw, ShouldEqual, "0")
		})

		Convey("Flags accept the usual spellings", func() {
			for raw, want := range map[string]bool{"1": true, "true": true, "on": true, "yes": true, "0": false, "": false, "false": false, "off": false, "no": false, "maybe": false} {
				_ = store.Set(ctx, "flag", raw)
				flag, err := repo.GetBool(ctx, "flag", !want)
				So(err, ShouldBeNil)
				So(flag, ShouldEqual, want)
			}
		})

		Convey("Lists are stored as JSON and scalars read as a single item", func() {
			So(repo.SetStrings(ctx, "roles", []string{"administrator", "editor"}), ShouldBeNil)
			roles, err := repo.GetStrings(ctx, "roles", nil)
			So(err, ShouldBeNil)
			So(roles, ShouldResemble, []string{"administrator", "editor"})

			_ = store.Set(ctx, "roles", "administrator")
			roles, err = repo.GetStrings(ctx, "roles", nil)
			So(err, ShouldBeNil)
			So(roles, ShouldResemble, []string{"administrator"})

			_ = store.Set(ctx, "roles", "[broken")
			_, err = repo.GetStrings(ctx, "roles", nil)
			So(err, ShouldNotBeNil)
		})

		Convey("Numbers that do not parse are treated as missing", func() {
			_ = store.Set(ctx, model.OptionSiteGMTOffset, "abc")
			_, ok, err := repo.GetFloat(ctx, model.OptionSiteGMTOffset)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)

			_ = store.Set(ctx, model.OptionSiteGMTOffset, "-3.5")
			value, ok, err := repo.GetFloat(ctx, model.OptionSiteGMTOffset)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(value, ShouldEqual, -3.5)
		})

		Convey("Apply writes every mutation", func() {
			err := repo.Apply(ctx, []model.ConfigMutation{
				model.SetEnabledMutation(true),
				model.SetStringMutation(model.OptionMaintenanceEndTime, ""),
				{Option: model.OptionMaintenanceAllowedRoles, Value: []string{"editor"}},
			})
			So(err, ShouldBeNil)
			cfg, err := repo.LoadMaintenanceConfig(ctx)
			So(err, ShouldBeNil)
			So(cfg.Enabled, ShouldBeTrue)
			So(cfg.AllowedRoles, ShouldResemble, []string{"editor"})

			err = repo.Apply(ctx, []model.ConfigMutation{{Option: "x", Value: 42}})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Activation writes the defaults", t, func() {
		store := NewMemoryStore()
		repo := NewRepository(store)
		So(repo.Activate(ctx), ShouldBeNil)

		cfg, err := repo.LoadMaintenanceConfig(ctx)
		So(err, ShouldBeNil)
		So(cfg, ShouldResemble, model.MaintenanceConfig{
			AllowedRoles: []string{"administrator"},
		})

		Convey("Without overwriting existing options", func() {
			_ = store.Set(ctx, model.OptionMaintenanceEnabled, "1")
			So(repo.Activate(ctx), ShouldBeNil)
			enabled, _ := repo.GetBool(ctx, model.OptionMaintenanceEnabled, false)
			So(enabled, ShouldBeTrue)
		})

		Convey("Deactivation removes every maintenance option", func() {
			_ = store.Set(ctx, model.OptionSiteName, "Blog")
			So(repo.Deactivate(ctx), ShouldBeNil)
			for _, name := range model.MaintenanceOptions {
				_, err := store.Get(ctx, name)
				So(err, ShouldEqual, ErrNotFound)
			}
			name, _ := store.Get(ctx, model.OptionSiteName)
			So(name, ShouldEqual, "Blog")
		})
	})

	Convey("Site settings fall back to the configured defaults", t, func() {
		store := NewMemoryStore()
		repo := NewRepository(store)
		repo.SetSiteDefaults(model.SiteSettings{Name: "Seed", GMTOffset: 2, HasGMTOffset: true})

		site, err := repo.LoadSiteSettings(ctx)
		So(err, ShouldBeNil)
		So(site, ShouldResemble, model.SiteSettings{Name: "Seed", GMTOffset: 2, HasGMTOffset: true})

		_ = store.Set(ctx, model.OptionSiteTimezone, " Europe/Kyiv ")
		_ = store.Set(ctx, model.OptionSiteGMTOffset, "5.5")
		site, err = repo.LoadSiteSettings(ctx)
		So(err, ShouldBeNil)
		So(site.Timezone, ShouldEqual, "Europe/Kyiv")
		So(site.GMTOffset, ShouldEqual, 5.5)
	})
}
