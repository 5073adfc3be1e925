package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cmstheme/internal/server"
	"github.com/goliatone/go-cmstheme/pkg/schema"
)

func openapiCmd(configPath func() string) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document of the component editor API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath())
			if err != nil {
				return err
			}
			registry, err := newRegistry(cfg)
			if err != nil {
				return err
			}
			doc, err := schema.Document(registry, schema.DocumentOptions{
				Title:    title,
				Version:  version,
				BasePath: server.APIBasePath,
			})
			if err != nil {
				return err
			}
			if err := doc.Validate(cmd.Context()); err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "document title")
	return cmd
}
