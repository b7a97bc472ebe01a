package proptext

import (
	"fmt"
	"slices"
	"strings"
)

type SortOrder string

const (
	SortOrderAsc  SortOrder = "ASC"
	SortOrderDesc SortOrder = "DESC"
)

// SortParams orders and limits list queries. The zero value applies
// neither.
type SortParams struct {
	Limit int
	By    string
	Order SortOrder
}

func (p SortParams) Empty() bool {
	return p.Limit == 0 && p.By == "" && p.Order == ""
}

// Valid reports whether the params can be turned into SQL safely: By must
// be one of sortableBy since it is written into the query verbatim.
func (p SortParams) Valid(sortableBy []string) bool {
	if p.Limit < 0 {
		return false
	}

	switch p.Order {
	case "", SortOrderAsc, SortOrderDesc:
	default:
		return false
	}

	return p.By == "" || slices.Contains(sortableBy, p.By)
}

func (p SortParams) SQL() string {
	var s string

	if p.By != "" {
		s += fmt.Sprintf(" order by %s", p.By)
		if p.Order != "" {
			s += fmt.Sprintf(" %s", strings.ToLower(string(p.Order)))
		}
	}

	if p.Limit > 0 {
		s += fmt.Sprintf(" limit %d", p.Limit)
	}

	return s
}
