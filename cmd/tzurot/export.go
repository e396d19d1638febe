package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lbds137/tzurot/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the resolved roster as JSONL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("output")
		toS3, _ := cmd.Flags().GetBool("s3")

		ctx := context.Background()

		if toS3 {
			if cfg.ExportS3Bucket == "" {
				return fmt.Errorf("TZUROT_EXPORT_S3_BUCKET is not configured")
			}
			dest, err := export.NewS3Destination(ctx,
				cfg.ExportS3Bucket, cfg.ExportS3Key, cfg.ExportS3Region, cfg.ExportS3Endpoint)
			if err != nil {
				return err
			}
			data, err := exportBytes(ctx)
			if err != nil {
				return err
			}
			if err := dest.Write(ctx, data); err != nil {
				return err
			}
			fmt.Printf("exported %d bytes to s3://%s/%s\n", len(data), cfg.ExportS3Bucket, cfg.ExportS3Key)
			return nil
		}

		w := os.Stdout
		if outPath != "" && outPath != "-" {
			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		return export.WriteJSONL(ctx, svc, w)
	},
}

func exportBytes(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := export.WriteJSONL(ctx, svc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	exportCmd.Flags().Bool("s3", false, "upload to the configured S3 bucket")
}
