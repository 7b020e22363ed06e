package domain

import (
	"encoding/base64"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest asks for the records strictly after the one named by After.
type PageRequest struct {
	First int
	After string
}

// Limit clamps First into [1, max]; zero means def.
func (p PageRequest) Limit(def, max int) int {
	if def <= 0 {
		def = DefaultPageSize
	}
	if max <= 0 {
		max = MaxPageSize
	}
	n := p.First
	if n <= 0 {
		n = def
	}
	if n > max {
		n = max
	}
	return n
}

// AfterID decodes the cursor. An empty cursor yields nil.
func (p PageRequest) AfterID() (*uuid.UUID, error) {
	if p.After == "" {
		return nil, nil
	}
	id, err := DecodeCursor(p.After)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

type PageInfo struct {
	EndCursor   string `json:"endCursor,omitempty"`
	HasNextPage bool   `json:"hasNextPage"`
}

type Page[T any] struct {
	Items      []T      `json:"items"`
	PageInfo   PageInfo `json:"pageInfo"`
	TotalCount int      `json:"totalCount"`
}

// NewPage trims a lookahead fetch of limit+1 rows down to limit and derives
// the page info from it.
func NewPage[T any](rows []T, limit, total int, idOf func(T) uuid.UUID) Page[T] {
	page := Page[T]{Items: rows, TotalCount: total}
	if len(rows) > limit {
		page.Items = rows[:limit]
		page.PageInfo.HasNextPage = true
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	if n := len(page.Items); n > 0 {
		page.PageInfo.EndCursor = EncodeCursor(idOf(page.Items[n-1]))
	}
	return page
}

func EncodeCursor(id uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id.String()))
}

func DecodeCursor(cursor string) (uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return uuid.Nil, NewValidation("invalid cursor", FieldError{Field: "after", Message: "malformed"})
	}
	id, err := uuid.Parse(string(raw))
	if err != nil {
		return uuid.Nil, NewValidation("invalid cursor", FieldError{Field: "after", Message: "malformed"})
	}
	return id, nil
}
