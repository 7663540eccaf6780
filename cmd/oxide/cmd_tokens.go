package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxidekit/core/internal/brandpack"
	"github.com/oxidekit/core/internal/inheritance"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <brandpack.yaml>",
	Short: "Resolve design tokens through the brand/app/component inheritance chain (C3)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pack, err := brandpack.Load(args[0])
		if err != nil {
			return fmt.Errorf("load brand pack: %w", err)
		}

		mgr := inheritance.FromBrandPack(pack)

		if path, _ := cmd.Flags().GetString("path"); path != "" {
			resolved, err := mgr.Resolve(path)
			if err != nil {
				return err
			}
			printResolved(resolved)
			return nil
		}

		all, err := mgr.ResolveAll()
		if err != nil {
			return err
		}
		for _, resolved := range all {
			printResolved(resolved)
		}
		return nil
	},
}

func printResolved(r inheritance.ResolvedToken) {
	lock := ""
	if r.Locked {
		lock = " (locked)"
	}
	fmt.Printf("%-32s = %v  [%s via %s%s]\n", r.Path, r.Value, r.Level, r.Source, lock)
}

func init() {
	tokensCmd.Flags().String("path", "", "resolve a single token path instead of every token")
}
