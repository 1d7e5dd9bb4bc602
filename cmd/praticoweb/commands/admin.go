package commands

import (
	"github.com/spf13/cobra"

	"pratico-web/internal/admin"
)

func adminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "admin",
		Short: "Serve the emoluments admin console",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, api, err := setup()
			if err != nil {
				return err
			}
			srv, err := admin.New(cfg, api, log)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), log, cfg.AdminAddr, srv.Handler())
		},
	}
}
