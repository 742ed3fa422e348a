package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/fmdata/internal/constants"
	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"
	Masked       = "***"

	// JSON formatting.
	defaultJSONIndent = 2

	// Find request syntax.
	criteriaSeparator = ";"
	omitPrefix        = "!"
)

// Common static errors used throughout the commands package.
var (
	ErrEmptyFindRequest  = errors.New("find request has no criteria")
	ErrNoFindRequests    = errors.New("at least one --request is required")
	ErrNoFieldsGiven     = errors.New("at least one field=value is required")
	ErrInvalidRepetition = errors.New("repetition must be a positive number")
)

// outputFormat returns the configured output format.
func outputFormat() (string, error) {
	format := strings.ToLower(viper.GetString("output"))
	if format == "" {
		return constants.FormatTable, nil
	}

	switch format {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrUnknownOutputFormat, format)
	}
}

// render writes value as JSON or YAML, or calls renderTable for table output.
func render(out io.Writer, value interface{}, renderTable func(table *tablewriter.Table)) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

		return encoder.Encode(value)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(value)
	default:
		table := tablewriter.NewWriter(out)
		renderTable(table)

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// renderRecords prints records with one column per field.
func renderRecords(out io.Writer, value interface{}, records []fmdata.Record) error {
	return render(out, value, func(table *tablewriter.Table) {
		fields := fieldNames(records)

		header := append([]string{"Record ID", "Mod ID"}, fields...)
		table.Header(toAny(header)...)

		for _, record := range records {
			row := []string{record.RecordID, record.ModID}
			for _, field := range fields {
				row = append(row, formatValue(record.FieldData[field]))
			}

			_ = table.Append(toAny(row)...)
		}
	})
}

// fieldNames returns the union of field names across records, sorted.
func fieldNames(records []fmdata.Record) []string {
	seen := make(map[string]struct{})

	for _, record := range records {
		for name := range record.FieldData {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func formatValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", typed)
	}
}

func toAny(values []string) []any {
	converted := make([]any, len(values))
	for i, value := range values {
		converted[i] = value
	}

	return converted
}

// parseFieldAssignments turns name=value arguments into field data. Values
// are sent as strings; the server converts them to the field type.
func parseFieldAssignments(args []string) (map[string]any, error) {
	fields := make(map[string]any, len(args))

	for _, arg := range args {
		name, value, found := strings.Cut(arg, "=")
		if !found || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidFieldAssignment, arg)
		}

		fields[strings.TrimSpace(name)] = value
	}

	return fields, nil
}

// parseSortSpecs turns field or field:order specs into sorts, keeping order.
func parseSortSpecs(specs []string) ([]fmdata.Sort, error) {
	sorts := make([]fmdata.Sort, 0, len(specs))

	for _, spec := range specs {
		field, order, _ := strings.Cut(spec, ":")
		if strings.TrimSpace(field) == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidSortSpec, spec)
		}

		sorts = append(sorts, fmdata.NewSort(strings.TrimSpace(field), fmdata.SortOrder(strings.TrimSpace(order))))
	}

	return sorts, nil
}

// parsePortalSpecs turns name or name:offset:limit specs into portals.
func parsePortalSpecs(specs []string) ([]fmdata.Portal, error) {
	portals := make([]fmdata.Portal, 0, len(specs))

	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if parts[0] == "" || (len(parts) != 1 && len(parts) != 3) {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidPortalSpec, spec)
		}

		if len(parts) == 1 {
			portals = append(portals, fmdata.NewPortal(parts[0], 0, 0))

			continue
		}

		offset, err := parseOptionalInt(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidPortalSpec, spec)
		}

		limit, err := parseOptionalInt(parts[2])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidPortalSpec, spec)
		}

		portals = append(portals, fmdata.NewPortal(parts[0], offset, limit))
	}

	return portals, nil
}

func parseOptionalInt(value string) (int, error) {
	if value == "" {
		return 0, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid number %q: %w", value, strconv.ErrSyntax)
	}

	return parsed, nil
}

// parseFindRequests turns "field=criteria;field=criteria" specs into find
// requests. A leading "!" marks an omit request. The criteria keeps any "="
// after the first, so "name==bill" matches the exact value "bill".
func parseFindRequests(specs []string) ([]fmdata.FindRequest, error) {
	if len(specs) == 0 {
		return nil, ErrNoFindRequests
	}

	requests := make([]fmdata.FindRequest, 0, len(specs))

	for _, spec := range specs {
		omit := strings.HasPrefix(spec, omitPrefix)
		spec = strings.TrimPrefix(spec, omitPrefix)

		request := fmdata.NewFindRequest()
		count := 0

		for _, pair := range strings.Split(spec, criteriaSeparator) {
			if strings.TrimSpace(pair) == "" {
				continue
			}

			field, criteria, found := strings.Cut(pair, "=")
			if !found || strings.TrimSpace(field) == "" {
				return nil, fmt.Errorf("%w: %q", constants.ErrInvalidFieldAssignment, pair)
			}

			request = request.Where(strings.TrimSpace(field)).Is(criteria)
			count++
		}

		if count == 0 {
			return nil, ErrEmptyFindRequest
		}

		if omit {
			request = request.Omit()
		}

		requests = append(requests, request)
	}

	return requests, nil
}

// parseGlobals turns name=value arguments into globals, keeping order.
func parseGlobals(args []string) ([]fmdata.Global, error) {
	if len(args) == 0 {
		return nil, ErrNoFieldsGiven
	}

	globals := make([]fmdata.Global, 0, len(args))

	for _, arg := range args {
		name, value, found := strings.Cut(arg, "=")
		if !found || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidFieldAssignment, arg)
		}

		globals = append(globals, fmdata.NewGlobal(strings.TrimSpace(name), value))
	}

	return globals, nil
}

// stdout is swapped in tests.
var stdout io.Writer = os.Stdout
