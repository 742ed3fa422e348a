package commands

import (
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewInfoCommand creates the info command. productInfo needs no session.
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display server information",
		Long:  "Display the product name and version reported by the FileMaker Data API",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := createClient(false)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			info, err := client.ProductInfo(ctx)
			if err != nil {
				return fmt.Errorf("failed to get product info: %w", err)
			}

			return render(stdout, info, func(table *tablewriter.Table) {
				table.Header("Property", "Value")

				_ = table.Append("Name", info.ProductInfo.Name)
				_ = table.Append("Version", info.ProductInfo.Version)
				_ = table.Append("Build Date", info.ProductInfo.BuildDate)
				_ = table.Append("Date Format", info.ProductInfo.DateFormat)
				_ = table.Append("Time Format", info.ProductInfo.TimeFormat)
				_ = table.Append("Timestamp Format", info.ProductInfo.TimeStampFormat)
			})
		},
	}
}
