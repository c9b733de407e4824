package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nt-noc/comparedash/internal/engine"
	"github.com/nt-noc/comparedash/internal/export"
	"github.com/nt-noc/comparedash/internal/model"
)

var (
	recQuery     string
	recField     string
	recStatus    string
	recType      string
	recCustomers []string
	recProvinces []string
	recTypes     []string
	recLimit     int
	recXLSX      bool
)

var recordsCmd = &cobra.Command{
	Use:   "records <job-id>",
	Short: "Show filtered compared records for a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		jobID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return eris.Wrap(err, "records: parse job id")
		}

		records, err := apiClient().RecordsAll(ctx, jobID)
		if err != nil {
			return eris.Wrap(err, "records: load")
		}
		zap.L().Debug("records loaded", zap.Int64("job_id", jobID), zap.Int("count", len(records)))

		criteria := engine.Criteria{
			Query:      recQuery,
			QueryField: recField,
			Status:     recStatus,
			TypeSelect: recType,
			Customers:  engine.NewStringSet(recCustomers...),
			Provinces:  engine.NewStringSet(recProvinces...),
			Types:      engine.NewStringSet(recTypes...),
		}
		rows := engine.Filter(records, criteria)

		if recXLSX {
			name := export.Filename(export.PrefixRecords, export.JobTag(jobID, true), time.Now(), ".xlsx")
			path := filepath.Join(cfg.Export.Dir, name)
			f, err := os.Create(path)
			if err != nil {
				return eris.Wrap(err, "records: create export file")
			}
			defer f.Close()
			if err := export.WriteRecordsXLSX(f, rows); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Exported %d records to %s\n", len(rows), path)
			return nil
		}

		pager := engine.NewPager(recLimit)
		page := engine.Next(pager, rows)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tCIRCUIT\tBRANCH\tSLA\tCUSTOMER\tPROVINCE\tTYPE\tSTATUS")
		for i, r := range page {
			status := "Unmatched"
			if r.Status == model.StatusFound {
				status = "Matched"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				i+1, r.Circuit(), model.Display(r.BranchName()), model.Display(r.SLA),
				model.Display(r.Customer), model.Display(r.Province),
				model.Display(r.ServiceLabel()), status)
		}
		w.Flush()

		k := engine.Counts(rows)
		fmt.Fprintf(os.Stdout, "%d/%d shown • All %d • Matched %d • Unmatched %d\n",
			pager.Shown, len(rows), k.All, k.Found, k.Unmatched)
		return nil
	},
}

func init() {
	recordsCmd.Flags().StringVarP(&recQuery, "query", "q", "", "free-text search")
	recordsCmd.Flags().StringVar(&recField, "field", "all", "restrict search to one field (customer, project, province, type, circuit_number, branch, sla)")
	recordsCmd.Flags().StringVar(&recStatus, "status", "", "status filter (Found or Unmatched)")
	recordsCmd.Flags().StringVar(&recType, "type", "", "single service label filter")
	recordsCmd.Flags().StringSliceVar(&recCustomers, "customer", nil, "customer filter, repeatable (OR'd)")
	recordsCmd.Flags().StringSliceVar(&recProvinces, "province", nil, "province filter, repeatable (OR'd)")
	recordsCmd.Flags().StringSliceVar(&recTypes, "types", nil, "service label filter set, repeatable (OR'd)")
	recordsCmd.Flags().IntVar(&recLimit, "limit", 100, "rows to show")
	recordsCmd.Flags().BoolVar(&recXLSX, "xlsx", false, "export to spreadsheet instead of printing")
	rootCmd.AddCommand(recordsCmd)
}
