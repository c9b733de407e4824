package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/nt-noc/comparedash/internal/engine"
	"github.com/nt-noc/comparedash/internal/model"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse and manage comparison jobs",
}

// -- jobs list --

var (
	jobsFrom  string
	jobsTo    string
	jobsLimit int
)

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List comparison jobs, pinned first, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		jobs, err := apiClient().ListJobs(ctx)
		if err != nil {
			return eris.Wrap(err, "jobs list")
		}

		from, to, err := parseJobRange(jobsFrom, jobsTo)
		if err != nil {
			return err
		}
		jobs = model.FilterJobsByRange(jobs, from, to)
		model.SortJobs(jobs)

		if len(jobs) == 0 {
			fmt.Fprintln(os.Stderr, "No jobs found.")
			return nil
		}

		pager := engine.NewPager(jobsLimit)
		page := engine.Next(pager, jobs)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "JOB\tCREATED (ICT)\tPIN\tRECORDS\tMATCHED\tUNMATCHED")
		for _, j := range page {
			pin := ""
			if j.Pinned {
				pin = "*"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\n",
				j.JobID, j.CreatedDisplay(), pin, j.TotalRecords, j.MatchedTotal, j.UnmatchedTotal)
		}
		w.Flush()
		fmt.Fprintf(os.Stdout, "%d/%d\n", pager.Shown, len(jobs))
		return nil
	},
}

// parseJobRange converts --from/--to dates into inclusive day bounds.
func parseJobRange(fromStr, toStr string) (from, to time.Time, err error) {
	if fromStr != "" {
		from, err = time.ParseInLocation("2006-01-02", fromStr, model.Bangkok)
		if err != nil {
			return from, to, eris.Wrap(err, "jobs: parse --from")
		}
	}
	if toStr != "" {
		to, err = time.ParseInLocation("2006-01-02", toStr, model.Bangkok)
		if err != nil {
			return from, to, eris.Wrap(err, "jobs: parse --to")
		}
		to = to.Add(24*time.Hour - time.Millisecond)
	}
	return from, to, nil
}

// -- jobs pin --

var pinState bool

var jobsPinCmd = &cobra.Command{
	Use:   "pin <job-id>",
	Short: "Pin or unpin a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return eris.Wrap(err, "jobs pin: parse job id")
		}
		if err := apiClient().TogglePin(cmd.Context(), jobID, pinState); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Job %d pinned=%v\n", jobID, pinState)
		return nil
	},
}

func init() {
	jobsListCmd.Flags().StringVar(&jobsFrom, "from", "", "only jobs created on/after this date (YYYY-MM-DD)")
	jobsListCmd.Flags().StringVar(&jobsTo, "to", "", "only jobs created on/before this date (YYYY-MM-DD)")
	jobsListCmd.Flags().IntVar(&jobsLimit, "limit", 50, "rows to show")

	jobsPinCmd.Flags().BoolVar(&pinState, "pinned", true, "target pin state")

	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsPinCmd)
	rootCmd.AddCommand(jobsCmd)
}
