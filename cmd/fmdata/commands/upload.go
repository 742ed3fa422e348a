package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fivetwenty-io/fmdata/internal/constants"
	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewUploadCommand creates the upload command.
func NewUploadCommand() *cobra.Command {
	var repetition int

	cmd := &cobra.Command{
		Use:   "upload <record-id> <container-field> <file>",
		Short: "Upload a file into a container field",
		Args:  cobra.ExactArgs(3), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			if repetition < 1 {
				return ErrInvalidRepetition
			}

			// User-supplied path for upload is intended here
			// #nosec G304
			file, err := os.Open(args[2])
			if err != nil {
				return fmt.Errorf("failed to open file: %w", err)
			}

			defer func() { _ = file.Close() }()

			if !viper.IsSet("timeout") {
				viper.Set("timeout", constants.ExtendedHTTPTimeout)
			}

			return withSession(cmd, true, func(ctx context.Context, client fmdata.Client) error {
				_, err := client.UploadFile(ctx, &fmdata.UploadRequest{
					File:                     file,
					FileName:                 filepath.Base(args[2]),
					RecordID:                 args[0],
					ContainerFieldName:       args[1],
					ContainerFieldRepetition: repetition,
				})
				if err != nil {
					return fmt.Errorf("failed to upload file: %w", err)
				}

				_, _ = fmt.Fprintf(stdout, "Uploaded %s to %s of record %s\n", filepath.Base(args[2]), args[1], args[0])

				return nil
			})
		},
	}

	cmd.Flags().IntVar(&repetition, "repetition", constants.DefaultContainerRepetition, "container field repetition")

	return cmd
}
