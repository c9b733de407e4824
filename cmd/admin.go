package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative operations (token-gated)",
}

// adminTokenValue resolves the token from the flag or config.
var adminTokenFlag string

func adminTokenValue() string {
	if adminTokenFlag != "" {
		return adminTokenFlag
	}
	return cfg.API.AdminToken
}

var adminCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the admin token",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ok, err := apiClient().AdminCheck(cmd.Context(), adminTokenValue())
		if err != nil {
			return err
		}
		if !ok {
			// Invalid tokens leave admin mode off; no retry loop.
			fmt.Fprintln(os.Stdout, "Admin mode: OFF (token rejected)")
			return nil
		}
		fmt.Fprintln(os.Stdout, "Admin mode: ON")
		return nil
	},
}

var adminDeleteCmd = &cobra.Command{
	Use:   "delete <job-id>...",
	Short: "Bulk-delete jobs (pinned jobs are skipped server-side)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]int64, 0, len(args))
		for _, a := range args {
			id, err := strconv.ParseInt(a, 10, 64)
			if err != nil {
				return eris.Wrap(err, "admin delete: parse job id")
			}
			ids = append(ids, id)
		}

		result, err := apiClient().BulkDelete(cmd.Context(), adminTokenValue(), ids)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Deleted %d jobs, skipped %d\n", len(result.Deleted), len(result.Skipped))
		return nil
	},
}

func init() {
	adminCmd.PersistentFlags().StringVar(&adminTokenFlag, "token", "", "admin token (default from config)")
	adminCmd.AddCommand(adminCheckCmd)
	adminCmd.AddCommand(adminDeleteCmd)
	rootCmd.AddCommand(adminCmd)
}
