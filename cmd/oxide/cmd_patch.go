package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxidekit/core/internal/devtools"
	"github.com/oxidekit/core/internal/store"
)

var patchCmd = &cobra.Command{
	Use:   "patch",
	Short: "Inspect dev editor patches (C5)",
}

var patchShowCmd = &cobra.Command{
	Use:   "show <patch.json>",
	Short: "Pretty-print an EditPatch file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("%w: %v", devtools.ErrFileError, err)
		}
		var patch devtools.EditPatch
		if err := json.Unmarshal(data, &patch); err != nil {
			return fmt.Errorf("%w: %v", devtools.ErrParseError, err)
		}

		fmt.Printf("patch %s: %s\n", patch.ID, patch.Description)
		fmt.Printf("session=%s applied=%s persisted=%t\n", patch.SessionID, patch.Timestamp.Format("2006-01-02T15:04:05Z07:00"), patch.Persisted)
		for _, op := range patch.Operations {
			fmt.Printf("  %s.%s\n", op.ComponentID, op.Property)
		}
		return nil
	},
}

var patchHistoryDB string

var patchHistoryCmd = &cobra.Command{
	Use:   "history <session-id>",
	Short: "Show the applied/undone patch log for a dev session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(patchHistoryDB)
		if err != nil {
			return fmt.Errorf("open patch store: %w", err)
		}
		defer db.Close()

		entries, err := db.PatchHistoryForSession(args[0])
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("no patch history for this session")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("#%-4d %-8s %-36s %s  %s\n", e.Seq, e.Direction, e.PatchID, e.AppliedAt.Format("2006-01-02T15:04:05Z07:00"), e.Description)
		}
		return nil
	},
}

func init() {
	patchHistoryCmd.Flags().StringVar(&patchHistoryDB, "db", ".oxide/patches.db", "path to the patch log database")
	patchCmd.AddCommand(patchShowCmd, patchHistoryCmd)
}
