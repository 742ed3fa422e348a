package fmdata

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Criterion is one field/criteria pair of a find request.
type Criterion struct {
	Field    string
	Criteria string
}

// FindRequest is one entry of a _find query. Values are immutable: every
// builder method returns a new FindRequest and leaves the receiver untouched.
//
//	req := fmdata.NewFindRequest().Where("name").Is("=bill").Omit()
//
// Field names and wildcard syntax are not checked here.
type FindRequest struct {
	criteria []Criterion
	omit     bool
}

// PendingCriterion is a field waiting for its criteria.
type PendingCriterion struct {
	request FindRequest
	field   string
}

// NewFindRequest returns an empty request.
func NewFindRequest() FindRequest {
	return FindRequest{}
}

// Where starts a criterion on field.
func (r FindRequest) Where(field string) PendingCriterion {
	return PendingCriterion{request: r, field: field}
}

// Is completes the criterion. A field that is already present keeps its
// position and takes the new criteria.
func (p PendingCriterion) Is(criteria string) FindRequest {
	criteriaList := make([]Criterion, len(p.request.criteria), len(p.request.criteria)+1)
	copy(criteriaList, p.request.criteria)

	for i := range criteriaList {
		if criteriaList[i].Field == p.field {
			criteriaList[i].Criteria = criteria

			return FindRequest{criteria: criteriaList, omit: p.request.omit}
		}
	}

	criteriaList = append(criteriaList, Criterion{Field: p.field, Criteria: criteria})

	return FindRequest{criteria: criteriaList, omit: p.request.omit}
}

// Omit marks the request as excluding its matches.
func (r FindRequest) Omit() FindRequest {
	criteriaList := make([]Criterion, len(r.criteria))
	copy(criteriaList, r.criteria)

	return FindRequest{criteria: criteriaList, omit: true}
}

// Criteria returns a copy of the pairs in call order.
func (r FindRequest) Criteria() []Criterion {
	criteriaList := make([]Criterion, len(r.criteria))
	copy(criteriaList, r.criteria)

	return criteriaList
}

// Omitted reports whether Omit was called.
func (r FindRequest) Omitted() bool {
	return r.omit
}

// MarshalJSON writes the fields in call order, followed by "omit":"true" when set.
func (r FindRequest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, criterion := range r.criteria {
		if i > 0 {
			buf.WriteByte(',')
		}

		err := writeMember(&buf, criterion.Field, criterion.Criteria)
		if err != nil {
			return nil, err
		}
	}

	if r.omit {
		if len(r.criteria) > 0 {
			buf.WriteByte(',')
		}

		err := writeMember(&buf, "omit", "true")
		if err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key, value string) error {
	encodedKey, err := json.Marshal(key)
	if err != nil {
		return fmt.Errorf("encoding find field %q: %w", key, err)
	}

	encodedValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding criteria for %q: %w", key, err)
	}

	buf.Write(encodedKey)
	buf.WriteByte(':')
	buf.Write(encodedValue)

	return nil
}
