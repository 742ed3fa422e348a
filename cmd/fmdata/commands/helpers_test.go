package commands

import (
	"encoding/json"
	"testing"

	"github.com/fivetwenty-io/fmdata/internal/constants"
	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldAssignments(t *testing.T) {
	t.Parallel()

	fields, err := parseFieldAssignments([]string{"name=bill", "note=a=b", "empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "bill", "note": "a=b", "empty": ""}, fields)

	_, err = parseFieldAssignments([]string{"novalue"})
	require.ErrorIs(t, err, constants.ErrInvalidFieldAssignment)

	_, err = parseFieldAssignments([]string{"=x"})
	require.ErrorIs(t, err, constants.ErrInvalidFieldAssignment)
}

func TestParseSortSpecs(t *testing.T) {
	t.Parallel()

	sorts, err := parseSortSpecs([]string{"last", "first:descend", "state:States"})
	require.NoError(t, err)
	assert.Equal(t, []fmdata.Sort{
		{Field: "last", Order: fmdata.SortAscend},
		{Field: "first", Order: fmdata.SortDescend},
		{Field: "state", Order: "States"},
	}, sorts)

	_, err = parseSortSpecs([]string{":descend"})
	require.ErrorIs(t, err, constants.ErrInvalidSortSpec)
}

func TestParsePortalSpecs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		specs    []string
		expected []fmdata.Portal
		wantErr  bool
	}{
		{
			name:     "name only",
			specs:    []string{"Phones"},
			expected: []fmdata.Portal{{Name: "Phones"}},
		},
		{
			name:     "offset and limit",
			specs:    []string{"Phones:2:10", "Emails::5"},
			expected: []fmdata.Portal{{Name: "Phones", Offset: 2, Limit: 10}, {Name: "Emails", Limit: 5}},
		},
		{
			name:    "two parts",
			specs:   []string{"Phones:2"},
			wantErr: true,
		},
		{
			name:    "not a number",
			specs:   []string{"Phones:x:1"},
			wantErr: true,
		},
		{
			name:    "negative",
			specs:   []string{"Phones:-1:1"},
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			portals, err := parsePortalSpecs(testCase.specs)
			if testCase.wantErr {
				require.ErrorIs(t, err, constants.ErrInvalidPortalSpec)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.expected, portals)
		})
	}
}

func TestParseFindRequests(t *testing.T) {
	t.Parallel()

	requests, err := parseFindRequests([]string{"name==bill;city=Fresno", "!state=CA"})
	require.NoError(t, err)

	data, err := json.Marshal(requests)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"=bill","city":"Fresno"},{"state":"CA","omit":"true"}]`, string(data))

	_, err = parseFindRequests(nil)
	require.ErrorIs(t, err, ErrNoFindRequests)

	_, err = parseFindRequests([]string{"!"})
	require.ErrorIs(t, err, ErrEmptyFindRequest)

	_, err = parseFindRequests([]string{"name"})
	require.ErrorIs(t, err, constants.ErrInvalidFieldAssignment)
}

func TestParseGlobals(t *testing.T) {
	t.Parallel()

	globals, err := parseGlobals([]string{"T::a=1", "T::a=2"})
	require.NoError(t, err)
	assert.Equal(t, []fmdata.Global{{Field: "T::a", Value: "1"}, {Field: "T::a", Value: "2"}}, globals)

	_, err = parseGlobals(nil)
	require.ErrorIs(t, err, ErrNoFieldsGiven)
}

func TestFieldNames(t *testing.T) {
	t.Parallel()

	names := fieldNames([]fmdata.Record{
		{FieldData: map[string]any{"b": 1, "a": 2}},
		{FieldData: map[string]any{"c": 3, "a": 4}},
	})
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	assert.Empty(t, formatValue(nil))
	assert.Equal(t, "bill", formatValue("bill"))
	assert.Equal(t, "42", formatValue(float64(42)))
	assert.Equal(t, "1.5", formatValue(1.5))
	assert.Equal(t, "true", formatValue(true))
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]interface{}{"a", 1, "b", "x"},
		flatten(map[string]interface{}{"b": "x", "a": 1}))
	assert.Empty(t, flatten(nil))
}
