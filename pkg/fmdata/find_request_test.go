package fmdata_test

import (
	"encoding/json"
	"testing"

	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRequest_MarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		request  fmdata.FindRequest
		expected string
	}{
		{
			name:     "empty",
			request:  fmdata.NewFindRequest(),
			expected: `{}`,
		},
		{
			name:     "single criterion",
			request:  fmdata.NewFindRequest().Where("name").Is("=bill"),
			expected: `{"name":"=bill"}`,
		},
		{
			name:     "keeps call order",
			request:  fmdata.NewFindRequest().Where("zip").Is("93*").Where("city").Is("Fresno").Where("age").Is("30...40"),
			expected: `{"zip":"93*","city":"Fresno","age":"30...40"}`,
		},
		{
			name:     "omit last",
			request:  fmdata.NewFindRequest().Where("city").Is("Fresno").Omit(),
			expected: `{"city":"Fresno","omit":"true"}`,
		},
		{
			name:     "omit before criteria",
			request:  fmdata.NewFindRequest().Omit().Where("city").Is("Fresno"),
			expected: `{"city":"Fresno","omit":"true"}`,
		},
		{
			name:     "repeated field keeps first position",
			request:  fmdata.NewFindRequest().Where("a").Is("1").Where("b").Is("2").Where("a").Is("3"),
			expected: `{"a":"3","b":"2"}`,
		},
		{
			name:     "quotes in field names",
			request:  fmdata.NewFindRequest().Where(`Contacts::"nick"`).Is("==x"),
			expected: `{"Contacts::\"nick\"":"==x"}`,
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(testCase.request)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, string(data))
		})
	}
}

func TestFindRequest_Immutable(t *testing.T) {
	t.Parallel()

	base := fmdata.NewFindRequest().Where("state").Is("CA")
	first := base.Where("city").Is("Fresno")
	second := base.Where("city").Is("Sacramento")
	omitted := base.Omit()

	assert.Equal(t, []fmdata.Criterion{{Field: "state", Criteria: "CA"}}, base.Criteria())
	assert.False(t, base.Omitted())
	assert.True(t, omitted.Omitted())
	assert.Equal(t, "Fresno", first.Criteria()[1].Criteria)
	assert.Equal(t, "Sacramento", second.Criteria()[1].Criteria)

	criteria := base.Criteria()
	criteria[0].Criteria = "NV"

	assert.Equal(t, "CA", base.Criteria()[0].Criteria)
}

func TestFindRequest_MarshalIsRepeatable(t *testing.T) {
	t.Parallel()

	request := fmdata.NewFindRequest().Where("name").Is("bill").Omit()

	first, err := json.Marshal(request)
	require.NoError(t, err)

	second, err := json.Marshal(request)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFindRequest_InsideQuery(t *testing.T) {
	t.Parallel()

	query := []fmdata.FindRequest{
		fmdata.NewFindRequest().Where("name").Is("=bill"),
		fmdata.NewFindRequest().Where("name").Is("=bob").Omit(),
	}

	data, err := json.Marshal(map[string]any{"query": query})
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":[{"name":"=bill"},{"name":"=bob","omit":"true"}]}`, string(data))
}
