package fmdata

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// SortOrder is "ascend", "descend" or the name of a value list.
type SortOrder string

const (
	SortAscend  SortOrder = "ascend"
	SortDescend SortOrder = "descend"
)

// Sort orders records by one field. Value-list names are passed through as-is.
type Sort struct {
	Field string    `json:"fieldName" yaml:"fieldName"`
	Order SortOrder `json:"sortOrder" yaml:"sortOrder"`
}

// NewSort returns a Sort, defaulting the order to ascend.
func NewSort(field string, order SortOrder) Sort {
	if order == "" {
		order = SortAscend
	}

	return Sort{Field: field, Order: order}
}

// EncodeSorts renders sorts as the JSON list used by the _sort query parameter.
// Slice order is kept, so earlier entries take precedence.
func EncodeSorts(sorts []Sort) (string, error) {
	data, err := json.Marshal(sorts)
	if err != nil {
		return "", fmt.Errorf("encoding sorts: %w", err)
	}

	return string(data), nil
}

// Global sets a global field, named as "table::field".
type Global struct {
	Field string `json:"field" yaml:"field"`
	Value any    `json:"value" yaml:"value"`
}

// NewGlobal returns a Global.
func NewGlobal(field string, value any) Global {
	return Global{Field: field, Value: value}
}

// MergeGlobals folds globals into the globalFields object. A repeated field
// keeps the last value.
func MergeGlobals(globals []Global) map[string]any {
	merged := make(map[string]any, len(globals))
	for _, global := range globals {
		merged[global.Field] = global.Value
	}

	return merged
}

// Portal names a related set to return with a record. Offset and Limit are
// omitted from requests when zero.
type Portal struct {
	Name   string `json:"name"             yaml:"name"`
	Offset int    `json:"offset,omitempty" yaml:"offset,omitempty"`
	Limit  int    `json:"limit,omitempty"  yaml:"limit,omitempty"`
}

// NewPortal returns a Portal. Pass zero for offset or limit to leave them unset.
func NewPortal(name string, offset, limit int) Portal {
	return Portal{Name: name, Offset: offset, Limit: limit}
}

// QueryValues returns the per-portal paging parameters used on GET requests.
func (p Portal) QueryValues() url.Values {
	values := url.Values{}

	if p.Offset > 0 {
		values.Set("_offset."+p.Name, strconv.Itoa(p.Offset))
	}

	if p.Limit > 0 {
		values.Set("_limit."+p.Name, strconv.Itoa(p.Limit))
	}

	return values
}

// FindParams returns the per-portal paging keys used in a _find body.
func (p Portal) FindParams() map[string]string {
	params := make(map[string]string, 2)

	if p.Offset > 0 {
		params["offset."+p.Name] = strconv.Itoa(p.Offset)
	}

	if p.Limit > 0 {
		params["limit."+p.Name] = strconv.Itoa(p.Limit)
	}

	return params
}

// PortalNames returns the portal names in order.
func PortalNames(portals []Portal) []string {
	names := make([]string, 0, len(portals))
	for _, portal := range portals {
		names = append(names, portal.Name)
	}

	return names
}

// PortalQuery renders portals as GET query parameters: a JSON "portal" list
// plus any per-portal offset and limit.
func PortalQuery(portals []Portal) (url.Values, error) {
	values := url.Values{}
	if len(portals) == 0 {
		return values, nil
	}

	names, err := json.Marshal(PortalNames(portals))
	if err != nil {
		return nil, fmt.Errorf("encoding portal names: %w", err)
	}

	values.Set("portal", string(names))

	for _, portal := range portals {
		for key, vals := range portal.QueryValues() {
			values[key] = vals
		}
	}

	return values, nil
}
