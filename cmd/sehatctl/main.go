package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sehatsetu/sehatsetu-api/internal/client"
)

type globals struct {
	apiURL  string
	token   string
	asJSON  bool
	timeout time.Duration
}

func main() {
	_ = godotenv.Load()

	g := &globals{}
	rootCmd := &cobra.Command{
		Use:           "sehatctl",
		Short:         "Command line client for the SehatSetu API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&g.apiURL, "api", envOr("SEHAT_API_URL", "http://localhost:8080"), "API base URL")
	rootCmd.PersistentFlags().StringVar(&g.token, "token", os.Getenv("SEHAT_TOKEN"), "identity token")
	rootCmd.PersistentFlags().BoolVar(&g.asJSON, "json", false, "print raw JSON")
	rootCmd.PersistentFlags().DurationVar(&g.timeout, "timeout", 90*time.Second, "request timeout")

	rootCmd.AddCommand(syncCmd(g))
	rootCmd.AddCommand(doctorCmd(g))
	rootCmd.AddCommand(pharmacyCmd(g))
	rootCmd.AddCommand(digitizeCmd(g))
	rootCmd.AddCommand(askCmd(g))
	rootCmd.AddCommand(avatarCmd(g))

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(os.Stderr, "session expired, sign in again and refresh SEHAT_TOKEN")
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func (g *globals) client() *client.Client {
	return client.New(g.apiURL, client.StaticToken(g.token))
}

// print writes v as JSON when --json is set, otherwise calls table.
func (g *globals) print(w io.Writer, v any, table func(tw *tabwriter.Writer)) error {
	if g.asJSON || table == nil {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	table(tw)
	return tw.Flush()
}

func readFilePart(path string) (client.FilePart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return client.FilePart{}, err
	}
	return client.FilePart{Name: filepath.Base(path), Data: data}, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func syncCmd(g *globals) *cobra.Command {
	var name, role, specialization string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Create or fetch the account behind the current token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := withTimeout(cmd, g)
			defer cancel()

			u, err := g.client().Sync(ctx, name, role, specialization)
			if err != nil {
				return err
			}
			return g.print(cmd.OutOrStdout(), u, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "ID\tNAME\tEMAIL\tROLE\n%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&role, "role", "", "doctor, pharmacy or patient (first sync only)")
	cmd.Flags().StringVar(&specialization, "specialization", "", "doctor specialization")
	return cmd
}
