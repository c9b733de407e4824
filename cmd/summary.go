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

	"github.com/nt-noc/comparedash/internal/engine"
	"github.com/nt-noc/comparedash/internal/export"
)

var (
	sumQuery     string
	sumCustomers []string
	sumProvinces []string
	sumTypes     []string
	sumLimit     int
	sumXLSX      bool
	sumServerURL bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary <job-id>",
	Short: "Show per customer/province/type circuit rollups for a job",
	Long:  "Groups matched records by customer, province, and service type, counting distinct circuit identifiers per group. Unmatched records are always excluded.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		jobID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return eris.Wrap(err, "summary: parse job id")
		}

		if sumServerURL {
			// The backend renders its own summary spreadsheet; print the
			// address instead of deriving locally.
			fmt.Fprintln(os.Stdout, apiClient().SummaryExportURL(jobID))
			return nil
		}

		records, err := apiClient().RecordsAll(ctx, jobID)
		if err != nil {
			return eris.Wrap(err, "summary: load")
		}

		criteria := engine.SummaryCriteria{
			Query:     sumQuery,
			Customers: engine.NewStringSet(sumCustomers...),
			Provinces: engine.NewStringSet(sumProvinces...),
			Types:     engine.NewStringSet(sumTypes...),
		}
		rows := engine.Summarize(records, criteria)

		if sumXLSX {
			name := export.Filename(export.PrefixSummaryWeb, export.JobTag(jobID, true), time.Now(), ".xlsx")
			path := filepath.Join(cfg.Export.Dir, name)
			f, err := os.Create(path)
			if err != nil {
				return eris.Wrap(err, "summary: create export file")
			}
			defer f.Close()
			if err := export.WriteSummaryXLSX(f, rows); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Exported %d summary rows to %s\n", len(rows), path)
			return nil
		}

		pager := engine.NewPager(sumLimit)
		page := engine.Next(pager, rows)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tCUSTOMER\tPROVINCE\tTYPE\tCIRCUITS\tCIRCUIT NUMBERS")
		for i, r := range page {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
				i+1, r.Customer, r.Province, r.ServiceType, r.CircuitCount, r.CircuitListText)
		}
		w.Flush()
		fmt.Fprintf(os.Stdout, "%d/%d\n", pager.Shown, len(rows))
		return nil
	},
}

func init() {
	summaryCmd.Flags().StringVarP(&sumQuery, "query", "q", "", "free-text search")
	summaryCmd.Flags().StringSliceVar(&sumCustomers, "customer", nil, "customer filter, repeatable (OR'd)")
	summaryCmd.Flags().StringSliceVar(&sumProvinces, "province", nil, "province filter, repeatable (OR'd)")
	summaryCmd.Flags().StringSliceVar(&sumTypes, "type", nil, "service type filter (Data, Broadband, Voice, Other), repeatable")
	summaryCmd.Flags().IntVar(&sumLimit, "limit", 100, "rows to show")
	summaryCmd.Flags().BoolVar(&sumXLSX, "xlsx", false, "export to spreadsheet instead of printing")
	summaryCmd.Flags().BoolVar(&sumServerURL, "server-url", false, "print the backend's summary export URL and exit")
	rootCmd.AddCommand(summaryCmd)
}
