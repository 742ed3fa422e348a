package commands

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewRecordsCommand creates the records command group.
func NewRecordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "records",
		Aliases: []string{"record", "rec"},
		Short:   "Manage records",
		Long:    "Create, read, edit, duplicate and delete records on the current layout",
	}

	cmd.AddCommand(newRecordsGetCommand())
	cmd.AddCommand(newRecordsListCommand())
	cmd.AddCommand(newRecordsCreateCommand())
	cmd.AddCommand(newRecordsEditCommand())
	cmd.AddCommand(newRecordsDeleteCommand())
	cmd.AddCommand(newRecordsDuplicateCommand())

	return cmd
}

func newRecordsGetCommand() *cobra.Command {
	var portalSpecs []string

	cmd := &cobra.Command{
		Use:   "get <record-id>",
		Short: "Get a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			portals, err := parsePortalSpecs(portalSpecs)
			if err != nil {
				return err
			}

			return withSession(cmd, true, func(ctx context.Context, client fmdata.Client) error {
				record, err := client.GetRecord(ctx, args[0], portals...)
				if err != nil {
					return fmt.Errorf("failed to get record: %w", err)
				}

				return renderRecords(stdout, record, []fmdata.Record{*record})
			})
		},
	}

	cmd.Flags().StringSliceVar(&portalSpecs, "portal", nil, "portal to include, as name or name:offset:limit")

	return cmd
}

func newRecordsListCommand() *cobra.Command {
	var (
		offset      int
		limit       int
		sortSpecs   []string
		portalSpecs []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sorts, err := parseSortSpecs(sortSpecs)
			if err != nil {
				return err
			}

			portals, err := parsePortalSpecs(portalSpecs)
			if err != nil {
				return err
			}

			return withSession(cmd, true, func(ctx context.Context, client fmdata.Client) error {
				set, err := client.GetAllRecords(ctx, &fmdata.ListOptions{
					Offset:  offset,
					Limit:   limit,
					Sorts:   sorts,
					Portals: portals,
				})
				if err != nil {
					return fmt.Errorf("failed to list records: %w", err)
				}

				return renderRecords(stdout, set, set.Data)
			})
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "first record to return, starting at 1")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of records")
	cmd.Flags().StringSliceVar(&sortSpecs, "sort", nil, "sort as field or field:order (ascend, descend or a value list)")
	cmd.Flags().StringSliceVar(&portalSpecs, "portal", nil, "portal to include, as name or name:offset:limit")

	return cmd
}

func newRecordsCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create [field=value...]",
		Short: "Create a record",
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseFieldAssignments(args)
			if err != nil {
				return err
			}

			return withSession(cmd, true, func(ctx context.Context, client fmdata.Client) error {
				recordID, err := client.CreateRecord(ctx, fields)
				if err != nil {
					return fmt.Errorf("failed to create record: %w", err)
				}

				return renderWrite(fmdata.WriteResponse{RecordID: recordID})
			})
		},
	}
}

func newRecordsEditCommand() *cobra.Command {
	var modID string

	cmd := &cobra.Command{
		Use:   "edit <record-id> field=value...",
		Short: "Edit a record",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 { //nolint:mnd
				return ErrNoFieldsGiven
			}

			fields, err := parseFieldAssignments(args[1:])
			if err != nil {
				return err
			}

			return withSession(cmd, true, func(ctx context.Context, client fmdata.Client) error {
				newModID, err := client.EditRecord(ctx, args[0], fields, modID)
				if err != nil {
					return fmt.Errorf("failed to edit record: %w", err)
				}

				return renderWrite(fmdata.WriteResponse{RecordID: args[0], ModID: newModID})
			})
		},
	}

	cmd.Flags().StringVar(&modID, "mod-id", "", "reject the edit if the record changed since this modId")

	return cmd
}

func newRecordsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <record-id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, true, func(ctx context.Context, client fmdata.Client) error {
				_, err := client.DeleteRecord(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to delete record: %w", err)
				}

				_, _ = fmt.Fprintf(stdout, "Deleted record %s\n", args[0])

				return nil
			})
		},
	}
}

func newRecordsDuplicateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <record-id>",
		Short: "Duplicate a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, true, func(ctx context.Context, client fmdata.Client) error {
				recordID, err := client.DuplicateRecord(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to duplicate record: %w", err)
				}

				return renderWrite(fmdata.WriteResponse{RecordID: recordID})
			})
		},
	}
}

func renderWrite(result fmdata.WriteResponse) error {
	return render(stdout, result, func(table *tablewriter.Table) {
		table.Header("Record ID", "Mod ID")
		_ = table.Append(valueOrNA(result.RecordID), valueOrNA(result.ModID))
	})
}

func valueOrNA(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}
