package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nt-noc/comparedash/internal/engine"
	"github.com/nt-noc/comparedash/internal/export"
)

var (
	repProvinces []string
	repXLSX      bool
	repPNG       bool
	repPDF       bool
)

var reportCmd = &cobra.Command{
	Use:   "report <job-id>",
	Short: "Show the impact report for a job",
	Long:  "Builds the report model from matched records: affected-customer/circuit/province KPIs, per-service and per-province totals, and the top-5 hotspot ranking. Optionally exports spreadsheet, PNG, and PDF renditions.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		jobID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return eris.Wrap(err, "report: parse job id")
		}

		records, err := apiClient().RecordsAll(ctx, jobID)
		if err != nil {
			return eris.Wrap(err, "report: load")
		}

		rep := engine.BuildReport(records, engine.NewStringSet(repProvinces...))
		printReport(rep)

		if !repXLSX && !repPNG && !repPDF {
			return nil
		}

		now := time.Now()
		jobTag := export.JobTag(jobID, true)

		// PNG and PDF share one raster; render it once up front.
		var raster []byte
		if repPNG || repPDF {
			var buf bytes.Buffer
			if err := export.RenderReportPNG(&buf, rep, export.GoChartRenderer{}); err != nil {
				return err
			}
			raster = buf.Bytes()
		}

		g := new(errgroup.Group)
		if repXLSX {
			g.Go(func() error {
				name := export.Filename(export.PrefixReportSummary, jobTag, now, ".xlsx")
				path := filepath.Join(cfg.Export.Dir, name)
				f, err := os.Create(path)
				if err != nil {
					return eris.Wrap(err, "report: create xlsx")
				}
				defer f.Close()
				if err := export.WriteReportXLSX(f, rep); err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, "Wrote "+path)
				return nil
			})
		}
		if repPNG {
			g.Go(func() error {
				path := filepath.Join(cfg.Export.Dir, export.Filename("report", jobTag, now, ".png"))
				if err := os.WriteFile(path, raster, 0o644); err != nil {
					return eris.Wrap(err, "report: write png")
				}
				fmt.Fprintln(os.Stdout, "Wrote "+path)
				return nil
			})
		}
		if repPDF {
			g.Go(func() error {
				path := filepath.Join(cfg.Export.Dir, export.Filename("report", jobTag, now, ".pdf"))
				f, err := os.Create(path)
				if err != nil {
					return eris.Wrap(err, "report: create pdf")
				}
				defer f.Close()
				if err := export.WriteReportPDF(f, raster); err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, "Wrote "+path)
				return nil
			})
		}
		return g.Wait()
	},
}

func printReport(rep engine.ReportModel) {
	fmt.Fprintf(os.Stdout, "Customers: %d   Circuits: %d   Provinces: %d\n",
		rep.Customers, rep.Circuits, rep.Provinces)
	fmt.Fprintf(os.Stdout, "Data: %d   Broadband: %d   Voice: %d\n",
		rep.Services.Data, rep.Services.Broadband, rep.Services.Voice)
	fmt.Fprintln(os.Stdout, rep.Narrative())

	if len(rep.ProvinceCounts) > 0 {
		fmt.Fprint(os.Stdout, "Provinces:")
		for _, pc := range rep.ProvinceCounts {
			fmt.Fprintf(os.Stdout, " %s(%d)", pc.Province, pc.Count)
		}
		fmt.Fprintln(os.Stdout)
	}

	if len(rep.Hotspots) > 0 {
		fmt.Fprintln(os.Stdout, "Hotspots:")
		for _, h := range rep.Hotspots {
			fmt.Fprintf(os.Stdout, "  %s (%d) • Data (%d) | Broadband (%d) | Voice (%d)\n",
				h.Province, h.Total, h.Data, h.Broadband, h.Voice)
		}
	}
}

func init() {
	reportCmd.Flags().StringSliceVar(&repProvinces, "province", nil, "restrict report to these provinces, repeatable")
	reportCmd.Flags().BoolVar(&repXLSX, "xlsx", false, "export report summary spreadsheet")
	reportCmd.Flags().BoolVar(&repPNG, "png", false, "export report raster PNG")
	reportCmd.Flags().BoolVar(&repPDF, "pdf", false, "export report PDF (A4 landscape)")
	rootCmd.AddCommand(reportCmd)
}
