package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sehatsetu/sehatsetu-api/internal/config"
	dbpkg "github.com/sehatsetu/sehatsetu-api/internal/db"
	"github.com/sehatsetu/sehatsetu-api/internal/identity"
	"github.com/sehatsetu/sehatsetu-api/internal/logger"
	"github.com/sehatsetu/sehatsetu-api/internal/seed"
)

func main() {
	var (
		opts     seed.Options
		tokenTTL time.Duration
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with fake doctors, patients, pharmacies and appointments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.Env, cfg.LogLevel)

			if opts.Seed == 0 {
				opts.Seed = uint64(time.Now().UnixNano())
			}
			log.Info().Uint64("seed", opts.Seed).Msg("seed starting")

			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}
			defer dbpkg.Close(db)

			if err := dbpkg.Migrate(db); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			fx := seed.Generate(opts, time.Now())
			if err := seed.Insert(ctx, db, fx, log); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			log.Info().Msg("seed complete")

			if tokenTTL <= 0 {
				return nil
			}
			if cfg.IdentitySecret == "" {
				return fmt.Errorf("--tokens needs IDENTITY_SECRET; tokens for the identity provider come from its own sign-in")
			}

			signer := identity.NewVerifier(cfg.IdentitySecret, cfg.IdentityIssuer, cfg.IdentityAudience)
			for _, u := range firstOfEach(fx) {
				tok, err := signer.Sign(u.uid, u.email, u.name, tokenTTL)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", u.label, u.name, tok)
			}
			return nil
		},
	}

	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "faker seed (0 picks one from the clock)")
	cmd.Flags().IntVar(&opts.Doctors, "doctors", 5, "number of doctors")
	cmd.Flags().IntVar(&opts.Patients, "patients", 40, "number of patients")
	cmd.Flags().IntVar(&opts.Pharmacies, "pharmacies", 3, "number of pharmacies")
	cmd.Flags().IntVar(&opts.Appointments, "appointments", 80, "number of appointments")
	cmd.Flags().DurationVar(&tokenTTL, "tokens", 0, "print dev tokens with this lifetime for the first user of each role")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type seedUser struct {
	label, uid, email, name string
}

func firstOfEach(fx *seed.Fixtures) []seedUser {
	var out []seedUser
	if len(fx.Doctors) > 0 {
		u := fx.Doctors[0]
		out = append(out, seedUser{"doctor", u.IdentityUID, u.Email, u.Name})
	}
	if len(fx.Owners) > 0 {
		u := fx.Owners[0]
		out = append(out, seedUser{"pharmacy", u.IdentityUID, u.Email, u.Name})
	}
	if len(fx.Patients) > 0 {
		u := fx.Patients[0]
		out = append(out, seedUser{"patient", u.IdentityUID, u.Email, u.Name})
	}
	return out
}
