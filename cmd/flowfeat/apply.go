package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-flowfeat/batch"
	"github.com/cwbudde/algo-flowfeat/features"
)

type applyFlags struct {
	columns  []string
	workers  int
	policy   string
	sentinel float64
}

func newApplyCmd(a *app) *cobra.Command {
	var f applyFlags

	cmd := &cobra.Command{
		Use:   "apply [file.csv]",
		Short: "add feature columns to a CSV table",
		Long: `Read a CSV table with a header row, compute stft_<col> and dwt_<col> for
every requested column present in the header and write the augmented table
to stdout. Sequence cells hold space-separated numbers; feature cells are
written the same way. Without a file, or with "-", the table is read from
stdin. Requested columns missing from the header are skipped.`,
		Example: `  $ flowfeat apply --columns sizes,times flows.csv > out.csv
  $ flowfeat apply --columns sizes --policy fill --sentinel -1 flows.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("workers") {
				a.cfg.Batch.Workers = f.workers
			}
			if flags.Changed("policy") {
				a.cfg.Batch.Policy = f.policy
			}
			if flags.Changed("sentinel") {
				a.cfg.Batch.Sentinel = f.sentinel
			}

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer file.Close()

				in = file
			}

			return a.runApply(cmd.Context(), in, cmd.OutOrStdout(), f.columns)
		},
	}

	cmd.Flags().StringSliceVar(&f.columns, "columns", nil, "comma-separated sequence columns")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "concurrent rows (default GOMAXPROCS)")
	cmd.Flags().StringVar(&f.policy, "policy", "fail", "row failure policy: fail, skip or fill")
	cmd.Flags().Float64Var(&f.sentinel, "sentinel", 0, "fill value for --policy fill")
	_ = cmd.MarkFlagRequired("columns")

	return cmd
}

func (a *app) runApply(ctx context.Context, r io.Reader, w io.Writer, columns []string) error {
	applier, err := a.applier()
	if err != nil {
		return err
	}

	tbl, err := readCSV(r)
	if err != nil {
		return err
	}

	seqs, err := tbl.sequences(columns)
	if err != nil {
		return err
	}

	ds, err := applier.Apply(ctx, seqs, columns)

	var rowErrs *batch.RowErrors
	switch {
	case errors.As(err, &rowErrs):
		a.logger.Warn("rows failed", zap.Int("count", len(rowErrs.Errors())), zap.String("policy", a.cfg.Batch.Policy))
	case err != nil:
		return err
	}

	return tbl.write(w, ds)
}

func (a *app) applier() (*batch.Applier, error) {
	policy, err := batch.ParsePolicy(a.cfg.Batch.Policy)
	if err != nil {
		return nil, err
	}

	stft, err := a.cfg.spectrogramExtractor()
	if err != nil {
		return nil, err
	}

	dwt, err := a.cfg.waveletExtractor()
	if err != nil {
		return nil, err
	}

	return batch.NewApplier(
		batch.WithExtractors(stft, dwt),
		batch.WithSpec(stft.Name(), features.ParseSpec(a.cfg.STFT.Features...)),
		batch.WithSpec(dwt.Name(), features.ParseSpec(a.cfg.DWT.Features...)),
		batch.WithWorkers(a.cfg.Batch.Workers),
		batch.WithPolicy(policy),
		batch.WithSentinel(a.cfg.Batch.Sentinel),
		batch.WithLogger(a.logger),
	)
}

// csvTable keeps the raw cells of a CSV file so untouched columns are
// written back verbatim.
type csvTable struct {
	header  []string
	records [][]string
}

func readCSV(r io.Reader) (*csvTable, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV rows: %w", err)
	}

	return &csvTable{header: header, records: records}, nil
}

// sequences parses the requested columns present in the header into a
// batch.Table. Absent columns are left out for the applier to skip.
func (t *csvTable) sequences(columns []string) (*batch.Table, error) {
	tbl := batch.NewTable()

	for _, col := range columns {
		idx := slices.Index(t.header, col)
		if idx < 0 || tbl.HasColumn(col) {
			continue
		}

		cells := make([][]float64, len(t.records))
		for i, rec := range t.records {
			seq, err := parseSequence(rec[idx])
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", i+1, col, err)
			}
			cells[i] = seq
		}

		if err := tbl.SetColumn(col, cells); err != nil {
			return nil, err
		}
	}

	return tbl, nil
}

// write emits the original columns followed by the columns ds added.
func (t *csvTable) write(w io.Writer, ds batch.Dataset) error {
	var added []string
	for _, col := range ds.Columns() {
		if !slices.Contains(t.header, col) {
			added = append(added, col)
		}
	}

	cells := make([][][]float64, len(added))
	for k, col := range added {
		c, err := ds.Column(col)
		if err != nil {
			return err
		}
		cells[k] = c
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(append(slices.Clone(t.header), added...)); err != nil {
		return err
	}

	for i, rec := range t.records {
		row := slices.Clone(rec)
		for k := range added {
			row = append(row, formatVector(cells[k][i]))
		}

		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}
