package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cmstheme/internal/prompt"
	"github.com/goliatone/go-cmstheme/pkg/i18n"
)

func componentsCmd(configPath func() string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "components",
		Aliases: []string{"component"},
		Short:   "Inspect and configure page-builder components",
	}
	cmd.AddCommand(
		componentsListCmd(configPath),
		componentsShowCmd(configPath),
		componentsConfigureCmd(configPath),
	)
	return cmd
}

func componentsListCmd(configPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered components",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath())
			if err != nil {
				return err
			}
			registry, err := newRegistry(cfg)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tLABEL\tCHILDREN\tMIXINS")
			for _, def := range registry.Definitions() {
				children := "-"
				if def.AllowChildren {
					children = "yes"
					if len(def.ChildClasses) > 0 {
						children = strings.Join(def.ChildClasses, ",")
					}
				}
				mixins := strings.Join(def.Mixins, ",")
				if mixins == "" {
					mixins = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", def.Name, def.Label, children, mixins)
			}
			return tw.Flush()
		},
	}
}

func componentsShowCmd(configPath func() string) *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Print a component's editor form as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath())
			if err != nil {
				return err
			}
			registry, err := newRegistry(cfg)
			if err != nil {
				return err
			}
			form, err := registry.Form(args[0])
			if err != nil {
				return err
			}
			if locale != "" {
				catalog, err := i18n.DefaultCatalog()
				if err != nil {
					return err
				}
				i18n.LocalizeForm(&form, locale, catalog)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(form)
		},
	}

	cmd.Flags().StringVarP(&locale, "locale", "l", "", "translate labels into this locale")
	return cmd
}

func componentsConfigureCmd(configPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "configure NAME",
		Short: "Fill in a component's settings interactively and print them as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath())
			if err != nil {
				return err
			}
			registry, err := newRegistry(cfg)
			if err != nil {
				return err
			}
			form, err := registry.Form(args[0])
			if err != nil {
				return err
			}
			settings, err := prompt.Configure(cmd.Context(), prompt.NewSurveyDriver(cmd.ErrOrStderr()), form)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"component": form.Component, "settings": settings})
		},
	}
}
