package commands

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
	"github.com/spf13/cobra"
)

// NewFindCommand creates the find command.
func NewFindCommand() *cobra.Command {
	var (
		requestSpecs []string
		offset       int
		limit        int
		sortSpecs    []string
		portalSpecs  []string
	)

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find records",
		Long: `Find records on the current layout.

Each --request is one find request of "field=criteria" pairs joined by ";".
Prefix a request with "!" to omit its matches. Requests are sent in order.`,
		Example: `  fmdata find -r "name==bill"
  fmdata find -r "state=CA;city=Fresno" -r "!age=<21" --sort name:descend`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			requests, err := parseFindRequests(requestSpecs)
			if err != nil {
				return err
			}

			sorts, err := parseSortSpecs(sortSpecs)
			if err != nil {
				return err
			}

			portals, err := parsePortalSpecs(portalSpecs)
			if err != nil {
				return err
			}

			return withSession(cmd, true, func(ctx context.Context, client fmdata.Client) error {
				set, err := client.Find(ctx, &fmdata.FindQuery{
					Requests: requests,
					Sorts:    sorts,
					Offset:   offset,
					Limit:    limit,
					Portals:  portals,
				})
				if err != nil {
					if fmdata.IsNoRecordsMatch(err) {
						return renderRecords(stdout, &fmdata.RecordSet{Data: []fmdata.Record{}}, nil)
					}

					return fmt.Errorf("failed to find records: %w", err)
				}

				return renderRecords(stdout, set, set.Data)
			})
		},
	}

	cmd.Flags().StringArrayVarP(&requestSpecs, "request", "r", nil, `find request, e.g. "name==bill;city=Fresno" or "!state=CA"`)
	cmd.Flags().IntVar(&offset, "offset", 0, "first record to return, starting at 1")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of records")
	cmd.Flags().StringSliceVar(&sortSpecs, "sort", nil, "sort as field or field:order")
	cmd.Flags().StringSliceVar(&portalSpecs, "portal", nil, "portal to include, as name or name:offset:limit")

	return cmd
}
