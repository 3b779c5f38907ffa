package main

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/leadbridge/internal/export"
	"github.com/sells-group/leadbridge/internal/fetcher"
	"github.com/sells-group/leadbridge/internal/model"
	"github.com/sells-group/leadbridge/internal/phone"
	"github.com/sells-group/leadbridge/internal/pipeline"
	"github.com/sells-group/leadbridge/internal/region"
	"github.com/sells-group/leadbridge/internal/store"
)

var (
	convertInput     string
	convertUsersOut  string
	convertOrgsOut   string
	convertChunkSize int
	convertDryRun    bool
	convertNoStore   bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a lead export into users and organizations import CSVs",
	Long: `Streams a lead export through the normalization pipeline and writes the
two import tables.

Examples:
  # Full conversion
  leadbridge convert --input leads.csv

  # Schema check and row accounting only, no files written
  leadbridge convert --input leads.csv --dry-run

  # XLSX input, custom output paths
  leadbridge convert --input leads.xlsx --users-out users.csv --orgs-out orgs.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		chunkSize := convertChunkSize
		if chunkSize <= 0 {
			chunkSize = cfg.Convert.ChunkSize
		}

		src, err := fetcher.Open(convertInput, chunkSize)
		if err != nil {
			return eris.Wrap(err, "convert: open input")
		}
		defer src.Close() //nolint:errcheck

		p := pipeline.New(
			phone.NewNormalizer(cfg.Convert.PhoneRegions...),
			region.NewClassifier(),
			cfg.Convert.PhoneColumns,
		)

		result, runErr := p.Run(ctx, src)
		recordRun(ctx, result, runErr)
		if runErr != nil {
			return runErr
		}

		zap.L().Info("convert: pipeline complete",
			zap.Int("rows_read", result.RowsRead),
			zap.Int("rows_skipped", result.RowsSkipped),
			zap.Int("people", len(result.Tables.People)),
			zap.Int("organizations", len(result.Tables.Organizations)),
		)

		if convertDryRun {
			return nil
		}

		// The two tables are independent; write them concurrently.
		g, _ := errgroup.WithContext(ctx)
		g.Go(func() error {
			return export.WritePeopleFile(convertUsersOut, result.Tables.People, result.Tables.Schema)
		})
		g.Go(func() error {
			return export.WriteOrganizationsFile(convertOrgsOut, result.Tables.Organizations)
		})
		if err := g.Wait(); err != nil {
			return err
		}

		zap.L().Info("convert: output written",
			zap.String("users", convertUsersOut),
			zap.String("organizations", convertOrgsOut),
		)
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertInput, "input", "", "path to lead export (.csv or .xlsx, required)")
	convertCmd.Flags().StringVar(&convertUsersOut, "users-out", "users.csv", "users import CSV output path")
	convertCmd.Flags().StringVar(&convertOrgsOut, "orgs-out", "organizations.csv", "organizations import CSV output path")
	convertCmd.Flags().IntVar(&convertChunkSize, "chunk-size", 0, "rows per chunk (0 = config default)")
	convertCmd.Flags().BoolVar(&convertDryRun, "dry-run", false, "validate and count only, write no files")
	convertCmd.Flags().BoolVar(&convertNoStore, "no-store", false, "skip recording the run in the history store")
	_ = convertCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(convertCmd)
}

// recordRun writes the run outcome to the history store. Store failures
// are logged, never fatal: the conversion result matters more than the log.
func recordRun(ctx context.Context, result *pipeline.Result, runErr error) {
	if convertNoStore {
		return
	}

	run := model.Run{
		ID:        uuid.NewString(),
		Source:    convertInput,
		Status:    runStatus(runErr),
		CreatedAt: time.Now().UTC(),
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if result != nil {
		run.People = len(result.Tables.People)
		run.Organizations = len(result.Tables.Organizations)
		run.RowsRead = result.RowsRead
		run.RowsSkipped = result.RowsSkipped
	}

	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		zap.L().Warn("convert: open run store", zap.Error(err))
		return
	}
	defer st.Close() //nolint:errcheck

	if err := st.Migrate(ctx); err != nil {
		zap.L().Warn("convert: migrate run store", zap.Error(err))
		return
	}
	if err := st.RecordRun(ctx, run); err != nil {
		zap.L().Warn("convert: record run", zap.Error(err))
	}
}

func runStatus(runErr error) model.RunStatus {
	if runErr == nil {
		return model.RunStatusComplete
	}
	var noRows *pipeline.NoValidRowsError
	if errors.As(runErr, &noRows) {
		return model.RunStatusNoValidRows
	}
	return model.RunStatusFailed
}
