package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxidekit/core/internal/attestation"
	"github.com/oxidekit/core/internal/store"
)

var (
	attestManifestPath string
	attestJSON         bool
	attestCacheDB      string
)

var attestCmd = &cobra.Command{
	Use:   "attest <binary>",
	Short: "Run the attestation pipeline over a built binary (C7)",
	Long: `Scans a binary, optionally cross-referencing a permission manifest,
and prints a trust report. Exits non-zero if the report status is Failed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scanCfg := attestation.DefaultScannerConfig()
		scanCfg.MaxFileSize = cfg.Attestation.MaxFileSizeBytes
		scanner := attestation.NewBinaryScannerWithConfig(scanCfg)

		var manifest *attestation.Manifest
		if attestManifestPath != "" {
			data, err := os.ReadFile(attestManifestPath)
			if err != nil {
				return fmt.Errorf("read manifest: %w", err)
			}
			manifest = attestation.NewManifest()
			if err := json.Unmarshal(data, manifest); err != nil {
				return fmt.Errorf("parse manifest: %w", err)
			}
		}

		var (
			report *attestation.Report
			err    error
		)
		if attestCacheDB != "" {
			db, openErr := store.Open(attestCacheDB)
			if openErr != nil {
				return fmt.Errorf("open attestation cache: %w", openErr)
			}
			defer db.Close()
			report, err = scanner.ScanCached(args[0], db, manifest)
		} else if manifest != nil {
			report, err = scanner.ScanWithManifest(args[0], manifest)
		} else {
			report, err = scanner.Scan(args[0])
		}
		if err != nil {
			return err
		}

		if attestJSON {
			data, err := report.ToJSON()
			if err != nil {
				return err
			}
			fmt.Println(string(data))
		} else {
			fmt.Println(report.Summary())
		}

		if report.Status == attestation.StatusFailed {
			return fmt.Errorf("attestation failed")
		}
		return nil
	},
}

func init() {
	attestCmd.Flags().StringVar(&attestManifestPath, "manifest", "", "path to a permission manifest JSON file")
	attestCmd.Flags().BoolVar(&attestJSON, "json", false, "print the full JSON report instead of a human summary")
	attestCmd.Flags().StringVar(&attestCacheDB, "cache", "", "path to a content-addressed attestation cache database")
}
