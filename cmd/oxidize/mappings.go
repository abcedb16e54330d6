package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"oxidize/internal/mapping"
)

var mappingsCmd = &cobra.Command{
	Use:   "mappings",
	Short: "Inspect API mapping tables",
}

var mappingsListCmd = &cobra.Command{
	Use:   "list [pack-dir]",
	Short: "List mapping rules, built-in plus any packs",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tables := []*mapping.Table{mapping.Builtin()}
		if len(args) == 1 {
			packs, err := mapping.LoadPacks(args[0])
			if err != nil {
				return err
			}
			tables = append(tables, packs...)
		}

		bold := color.New(color.Bold)
		for _, t := range tables {
			bold.Fprintf(cmd.OutOrStdout(), "%s (%d rules)\n", t.Name(), t.Len())
			keys := t.Keys()
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", k)
			}
		}
		return nil
	},
}

var mappingsCheckCmd = &cobra.Command{
	Use:   "check <pack-dir>",
	Short: "Validate mapping packs in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		packs, err := mapping.LoadPacks(args[0])
		if err != nil {
			return err
		}
		for _, p := range packs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d rules)\n", p.Name(), p.Len())
		}
		if len(packs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no packs found")
		}
		return nil
	},
}

func init() {
	mappingsCmd.AddCommand(mappingsListCmd)
	mappingsCmd.AddCommand(mappingsCheckCmd)
}
