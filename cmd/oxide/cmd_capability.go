package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxidekit/core/internal/capability"
)

var capabilityCmd = &cobra.Command{
	Use:   "capability",
	Short: "Capability registry and compatibility policy (C2)",
}

var capabilityListCategory string

var capabilityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered capabilities and their risk level",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := capability.Global()
		entries := reg.All()
		if capabilityListCategory != "" {
			entries = reg.ByCategory(capability.Category(capabilityListCategory))
		}
		for _, c := range entries {
			fmt.Printf("%-24s %-12s %s\n", c.Name, c.Risk, capability.CategoryOf(c.Name))
		}
		return nil
	},
}

var capabilityCheckCmd = &cobra.Command{
	Use:   "check <policy.yaml>",
	Short: "Validate a compatibility policy file, exiting non-zero on any violation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		policy, err := capability.FromConfig(args[0])
		if err != nil {
			return err
		}
		violations := policy.Validate()
		for _, v := range violations {
			fmt.Fprintln(os.Stderr, v.String())
		}
		if len(violations) > 0 {
			return fmt.Errorf("%d policy violation(s)", len(violations))
		}
		fmt.Println("policy OK")
		return nil
	},
}

func init() {
	capabilityListCmd.Flags().StringVar(&capabilityListCategory, "category", "", "filter by category")
	capabilityCmd.AddCommand(capabilityListCmd, capabilityCheckCmd)
}
