package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	uploadMaster  string
	uploadCompare string
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload datasets and trigger a server-side comparison",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client := apiClient()
		if err := client.UploadCompare(ctx, uploadMaster, uploadCompare); err != nil {
			return err
		}

		zap.L().Info("comparison triggered",
			zap.String("master", uploadMaster),
			zap.String("compare", uploadCompare),
		)
		fmt.Fprintln(os.Stdout, "Upload accepted; comparison running server-side. Run `comparedash jobs list` to find the new job.")
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringVar(&uploadMaster, "master", "", "master dataset file (optional)")
	uploadCmd.Flags().StringVar(&uploadCompare, "compare", "", "compare dataset file (required)")
	_ = uploadCmd.MarkFlagRequired("compare")
	rootCmd.AddCommand(uploadCmd)
}
