package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"gitlab.com/paramountdax-exchange/site_maintenance/maintenance"
)

var statusAt string

func init() {
	statusCmd.Flags().StringVar(&statusAt, "at", "", "evaluate at the given site time (YYYY-MM-DDTHH:MM) without changing any option")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the maintenance settings and the current decision",
	Long: `Without --at pending schedule transitions are applied, the same way the next visitor request would.
	With --at the state is only previewed.`,
	Run: func(cmd *cobra.Command, args []string) {
		withMaintenance(func(ctx context.Context, svc *maintenance.Service) error {
			var out interface{}
			if statusAt == "" {
				status, err := svc.Status(ctx)
				if err != nil {
					return err
				}
				out = status
			} else {
				site, err := svc.Repository().LoadSiteSettings(ctx)
				if err != nil {
					return err
				}
				at := maintenance.ResolveTimestamp(statusAt, maintenance.SiteLocation(site))
				if at == nil {
					return errors.Errorf("invalid time %q, expected YYYY-MM-DDTHH:MM", statusAt)
				}
				ev, err := svc.Preview(ctx, *at)
				if err != nil {
					return err
				}
				out = map[string]interface{}{
					"at":        ev.Now.Format(time.RFC3339),
					"decision":  ev.Decision,
					"mutations": ev.Mutations,
				}
			}
			data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, string(data))
			return nil
		})
	},
}
