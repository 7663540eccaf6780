package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oxidekit/core/internal/logging"
	"github.com/oxidekit/core/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Version parsing and constraint solving (C1)",
}

var versionAvailable []string

var versionParseCmd = &cobra.Command{
	Use:   "parse <version>",
	Short: "Parse and normalize a semantic version string",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := version.Parse(args[0])
		if err != nil {
			return fmt.Errorf("parse %q: %w", args[0], err)
		}
		fmt.Println(v.String())
		return nil
	},
}

var versionSolveCmd = &cobra.Command{
	Use:   "solve <requirement> [requirement...]",
	Short: "Solve one or more version requirements against --available",
	Long: `Solves the given requirements against the version pool passed via
--available, printing the highest matching version. Multiple requirements
must all be satisfiable by the same version.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(versionAvailable) == 0 {
			return fmt.Errorf("--available is required (comma-separated versions)")
		}

		pool := make([]version.Version, 0, len(versionAvailable))
		for _, raw := range versionAvailable {
			for _, s := range strings.Split(raw, ",") {
				s = strings.TrimSpace(s)
				if s == "" {
					continue
				}
				v, err := version.Parse(s)
				if err != nil {
					return fmt.Errorf("parse available version %q: %w", s, err)
				}
				pool = append(pool, v)
			}
		}

		reqs := make([]version.VersionReq, 0, len(args))
		for _, s := range args {
			req, err := version.ParseReq(s)
			if err != nil {
				return fmt.Errorf("parse requirement %q: %w", s, err)
			}
			reqs = append(reqs, req)
		}

		solver := version.NewSolver(pool)
		logging.Get(logging.CategoryCLI).Debugw("solving version requirements", "requirements", args, "pool_size", len(pool))

		var resolved version.Version
		var ok bool
		if len(reqs) == 1 {
			resolved, ok = solver.Solve(reqs[0])
		} else {
			resolved, ok = solver.SolveMulti(reqs)
		}
		if !ok {
			return fmt.Errorf("no version in the pool satisfies all requirements")
		}
		fmt.Println(resolved.String())
		return nil
	},
}

func init() {
	versionSolveCmd.Flags().StringSliceVar(&versionAvailable, "available", nil, "comma-separated pool of available versions")
	versionCmd.AddCommand(versionParseCmd, versionSolveCmd)
}
