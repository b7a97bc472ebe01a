package proptext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortParams_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		params     SortParams
		sortableBy []string
		valid      bool
	}{
		{
			"negative limit is invalid",
			SortParams{
				Limit: -1,
			},
			nil,
			false,
		},
		{
			"cannot sort by non-sortable field",
			SortParams{
				By: `p."bogus"`,
			},
			[]string{"foo", "bar"},
			false,
		},
		{
			"unknown order is invalid",
			SortParams{
				By:    "foo",
				Order: "sideways",
			},
			[]string{"foo", "bar"},
			false,
		},
		{
			"limit without sorting",
			SortParams{
				Limit: 5,
			},
			nil,
			true,
		},
		{
			"valid sort params",
			SortParams{
				By:    `p."id"`,
				Order: SortOrderDesc,
			},
			[]string{`p."id"`, `p."updated"`},
			true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			valid := tc.params.Valid(tc.sortableBy)
			assert.Equal(t, tc.valid, valid)
		})
	}
}

func TestSortParams_SQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		params   SortParams
		expected string
	}{
		{
			"empty",
			SortParams{},
			"",
		},
		{
			"only limit",
			SortParams{
				Limit: 10,
			},
			" limit 10",
		},
		{
			"sort by without order",
			SortParams{
				By: "foo",
			},
			" order by foo",
		},
		{
			"sort by with asc order",
			SortParams{
				By:    "foo",
				Order: SortOrderAsc,
			},
			" order by foo asc",
		},
		{
			"sort by with desc order",
			SortParams{
				By:    "foo",
				Order: SortOrderDesc,
			},
			" order by foo desc",
		},
		{
			"sort by with limit",
			SortParams{
				By:    `p."submitted_at"`,
				Order: SortOrderDesc,
				Limit: 10,
			},
			` order by p."submitted_at" desc limit 10`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			actual := tc.params.SQL()
			assert.Equal(t, tc.expected, actual)
		})
	}
}
