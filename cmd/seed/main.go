// Command seed clears the books and wines collections and reloads the seed
// data, the same work POST /reset does, without starting the server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aoideee/crud-api/internal/data"
	"github.com/aoideee/crud-api/internal/store"
)

// options holds the command's flags.
type options struct {
	DB      string
	Format  string // "text" | "json"
	Timeout time.Duration
}

func main() {
	_ = godotenv.Load()

	if err := newRootCommand(os.Getenv).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(getenv func(string) string) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Reset the books and wines collections to the seed data",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Format != "text" && opts.Format != "json" {
				return fmt.Errorf("invalid format %q: must be one of [text json]", opts.Format)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", store.URLFromEnv(getenv), "document store URL")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "time limit for the whole reset")

	return cmd
}

func runSeed(cmd *cobra.Command, opts *options) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
	defer cancel()

	s, err := store.Open(ctx, opts.DB)
	if err != nil {
		return fmt.Errorf("open %s: %w", store.Redact(opts.DB), err)
	}
	defer s.Close(context.Background())

	result, err := data.NewModels(s).Reset(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "\t")
		return enc.Encode(result.Records())
	}
	fmt.Fprintf(out, "seeded %d books and %d wines into %s\n",
		len(result.Books), len(result.Wines), store.Redact(opts.DB))
	return nil
}
