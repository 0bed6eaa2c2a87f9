package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"yashubustudio/wastesorter/waste"
)

var rootCmd = &cobra.Command{
	Use:          "wastesort-cli",
	Short:        "Sort photos of waste into disposal categories",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config.json (default: ./config.json)")
	rootCmd.PersistentFlags().String("rules", "", "Rules file overriding the built-in label tables")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log progress to stderr")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(rulesCmd)
}

func loadConfig(cmd *cobra.Command) (waste.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := waste.LoadConfig(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if rules, _ := cmd.Flags().GetString("rules"); rules != "" {
		cfg.RulesPath = rules
	}
	return cfg, nil
}

func loadResolver(cmd *cobra.Command, cfg waste.Config, logger *log.Logger) *waste.Resolver {
	resolver, fromFile, err := waste.LoadResolver(cfg.RulesPath)
	if err != nil {
		cmd.PrintErrf("warning: using built-in tables: %v\n", err)
	} else if fromFile {
		logger.Printf("rules loaded from %s", cfg.RulesPath)
	}
	return resolver
}

func newLogger(cmd *cobra.Command) *log.Logger {
	var w io.Writer = io.Discard
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		w = os.Stderr
	}
	return log.New(w, "", log.LstdFlags)
}
