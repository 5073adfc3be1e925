package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "cmstheme",
		Short: "CMS theme server and component tooling",
		Long: `cmstheme serves the theme's searchable blog and the component editor API,
and inspects the page-builder component catalog from the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("CMSTHEME_CONFIG"), "YAML configuration file")

	cfg := func() string { return configPath }
	rootCmd.AddCommand(
		serveCmd(cfg),
		componentsCmd(cfg),
		openapiCmd(cfg),
		paginateCmd(),
		seedCmd(cfg),
		versionCmd(),
	)
	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cmstheme %s (%s)\n", version, commit)
		},
	}
}
