package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"yashubustudio/wastesorter/waste"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve LABEL...",
	Short: "Show which category a classifier label maps to",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		resolver := loadResolver(cmd, cfg, newLogger(cmd))
		out := make([]waste.Resolution, len(args))
		for i, label := range args {
			out[i] = resolver.Explain(label)
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "LABEL\tCATEGORY\tPASS\tKEY")
		for _, r := range out {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Label, r.Category, r.Pass, r.Key)
		}
		return tw.Flush()
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List every category with its disposal instructions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, c := range waste.Categories() {
			d := waste.Disposal(c)
			fmt.Fprintf(out, "%s  (%s, %s)\n", c, d.Icon, d.Color)
			for i, step := range d.Instructions {
				fmt.Fprintf(out, "  %d. %s\n", i+1, step)
			}
		}
		return nil
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules PATH",
	Short: "Write the built-in label tables to an editable rules file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := waste.WriteDefaultRules(args[0])
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote default rules to %s\n", args[0])
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s already exists, left untouched\n", args[0])
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().Bool("json", false, "Print resolutions as JSON")
}
