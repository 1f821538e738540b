package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"splitboard/app/server/inits"
	"splitboard/app/server/store"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create the database schema, the signing secret and the admin user, then exit",
	Run: func(cmd *cobra.Command, _ []string) {
		cfg, l, db := prepare()
		defer func() { _ = l.Sync() }()

		ctx := cmd.Context()

		if _, err := inits.Secret(ctx, db, cfg.Security.SignatureSecretKey); err != nil {
			l.Fatal("error provisioning secret", zap.Error(err))
		}

		users := store.NewUsers(db, nil, l)
		if err := users.EnsureAdmin(ctx, cfg.System.DefaultPassword); err != nil {
			l.Fatal("error creating admin user", zap.Error(err))
		}

		l.Info("bootstrap finished")
	},
}
