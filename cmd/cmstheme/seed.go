package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cmstheme/internal/seed"
)

func seedCmd(configPath func() string) *cobra.Command {
	var (
		file  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load categories and posts from a YAML fixture",
		Long: `Load categories and posts into the configured database. Without --file the
bundled sample content is used. Unless --force is given, nothing is written
when the database already holds posts or categories.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath())
			if err != nil {
				return err
			}
			fixture, err := seed.Sample()
			if file != "" {
				data, readErr := os.ReadFile(file)
				if readErr != nil {
					return fmt.Errorf("read fixture: %w", readErr)
				}
				fixture, err = seed.Parse(data)
			}
			if err != nil {
				return err
			}

			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			var (
				res     seed.Result
				applied = true
			)
			if force {
				res, err = seed.Apply(cmd.Context(), store, fixture)
			} else {
				res, applied, err = seed.ApplyIfEmpty(cmd.Context(), store, fixture)
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !applied {
				fmt.Fprintln(out, "database not empty, nothing seeded (use --force)")
				return nil
			}
			fmt.Fprintf(out, "seeded %d categories and %d posts\n", res.Categories, res.Posts)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML fixture (defaults to the bundled sample)")
	cmd.Flags().BoolVar(&force, "force", false, "seed even when the database has content")
	return cmd
}
