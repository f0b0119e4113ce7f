package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/CTAG07/movement-generator/pkg/history"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
)

// openHistory opens the history database and makes sure its schema exists.
// The returned func closes the database.
func openHistory(dataSource string, logger *slog.Logger) (*history.Store, func(), error) {
	db, err := initDB(dataSource)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err = history.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to set up history schema: %w", err)
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close history database", "error", err)
		}
	}
	return history.NewStore(db, logger), closeDB, nil
}

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded renders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			if a.config.HistoryDB == "" {
				return errors.New("no history database configured, set history_db or pass --history-db")
			}
			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return err
			}

			store, closeDB, err := openHistory(a.config.HistoryDB, a.logger)
			if err != nil {
				return err
			}
			defer closeDB()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				Warning.Fprintln(a.out, "No renders recorded yet")
				return nil
			}

			tbl := table.New("ID", "Rendered", "Template", "Output", "Bytes", "Unresolved", "Checksum")
			tbl.WithHeaderFormatter(HeaderFmt).WithFirstColumnFormatter(ColumnFmt).WithWriter(a.out)
			for _, run := range runs {
				tbl.AddRow(run.ID, run.RenderedAt.Local().Format("2006-01-02 15:04:05"), run.TemplatePath, run.OutputPath, run.Bytes, run.Unresolved, shortChecksum(run.Checksum))
			}
			tbl.Print()
			return nil
		},
	}
	cmd.Flags().IntP("limit", "n", history.DefaultLimit, "Maximum number of renders to list")
	return cmd
}

func shortChecksum(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}
