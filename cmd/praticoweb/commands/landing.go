package commands

import (
	"github.com/spf13/cobra"

	"pratico-web/internal/landing"
)

func landingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "landing",
		Short: "Serve the public marketing page",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, api, err := setup()
			if err != nil {
				return err
			}
			srv, err := landing.New(cfg, api, log)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), log, cfg.LandingAddr, srv.Handler())
		},
	}
}
