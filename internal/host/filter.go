package host

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ytget/magnetdrop/internal/model"
)

// SearchType selects which record field a keyword is matched against
type SearchType string

const (
	SearchByName SearchType = "name"
	SearchByLink SearchType = "link"
	SearchByPath SearchType = "path"
	SearchByAny  SearchType = "any"

	DefaultSearchType = SearchByName
)

var (
	// ErrUnknownSearchType is returned for a search type outside SearchTypes
	ErrUnknownSearchType = errors.New("unknown search type")

	// ErrMalformedRecord is returned when a filter payload contains a record without an ID
	ErrMalformedRecord = errors.New("malformed record")
)

// SearchTypes returns the supported search types
func SearchTypes() []SearchType {
	return []SearchType{SearchByName, SearchByLink, SearchByPath, SearchByAny}
}

// ParseSearchType validates s; the empty string maps to DefaultSearchType.
func ParseSearchType(s string) (SearchType, error) {
	st := SearchType(strings.ToLower(strings.TrimSpace(s)))
	if st == "" {
		return DefaultSearchType, nil
	}
	for _, known := range SearchTypes() {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSearchType, s)
}

// FilterRecords returns, in order, the records whose selected field contains
// keyword case-insensitively. An empty keyword returns every record.
func FilterRecords(ctx context.Context, req FilterRequest) ([]model.Record, error) {
	searchType, err := ParseSearchType(string(req.SearchType))
	if err != nil {
		return nil, err
	}

	for i, r := range req.Records {
		if !r.HasID() {
			return nil, fmt.Errorf("%w: record %d has no id", ErrMalformedRecord, i)
		}
	}

	keyword := strings.ToLower(strings.TrimSpace(req.Keyword))
	if keyword == "" {
		out := make([]model.Record, len(req.Records))
		copy(out, req.Records)
		return out, nil
	}

	out := make([]model.Record, 0)
	for _, r := range req.Records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if matches(r, searchType, keyword) {
			out = append(out, r)
		}
	}
	return out, nil
}

func matches(r model.Record, searchType SearchType, keyword string) bool {
	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), keyword)
	}
	switch searchType {
	case SearchByLink:
		return contains(r.Link)
	case SearchByPath:
		return contains(r.Path)
	case SearchByAny:
		return contains(r.Name) || contains(r.Path) || contains(r.Link)
	default:
		return contains(r.Name)
	}
}
