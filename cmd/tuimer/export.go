package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/tuimer/internal/config"
	"github.com/verte-zerg/tuimer/internal/model"
	"github.com/verte-zerg/tuimer/internal/store"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// exportRun is the stable on-disk shape of a run.
type exportRun struct {
	ID             string    `json:"id" yaml:"id"`
	StartedAt      time.Time `json:"started_at" yaml:"started_at"`
	EndedAt        time.Time `json:"ended_at" yaml:"ended_at"`
	PlannedSeconds float64   `json:"planned_seconds" yaml:"planned_seconds"`
	ElapsedSeconds float64   `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	Completed      bool      `json:"completed" yaml:"completed"`
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export run history",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	addHistoryFilterFlags(cmd)
	cmd.Flags().StringVar(&exportFormat, "format", formatJSON, "output format (json, yaml)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := historyConfigFromFlags()
	if err != nil {
		return err
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	runs, err := st.ListRuns(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to load runs: %w", err)
	}
	return writeExport(cmd.OutOrStdout(), exportFormat, runs)
}

func writeExport(w io.Writer, format string, runs []model.Run) error {
	out := make([]exportRun, len(runs))
	for i, r := range runs {
		out[i] = exportRun{
			ID:             r.ID,
			StartedAt:      r.StartedAt,
			EndedAt:        r.EndedAt,
			PlannedSeconds: r.Planned.Seconds(),
			ElapsedSeconds: r.Elapsed.Seconds(),
			Completed:      r.Completed,
		}
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to flush yaml: %w", err)
		}
	default:
		return fmt.Errorf("--format must be %s or %s", formatJSON, formatYAML)
	}
	return nil
}
