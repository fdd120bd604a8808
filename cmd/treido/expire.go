package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var expireBoostsCmd = &cobra.Command{
	Use:   "expire-boosts",
	Short: "Clear boosts that have run out and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		n, err := a.boosts.ExpireBoosts(cmd.Context())
		if err != nil {
			return err
		}
		log.Info().Int64("expired", n).Msg("boost expiry finished")
		return nil
	},
}
