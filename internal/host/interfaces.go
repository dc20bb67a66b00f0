package host

import (
	"context"

	"github.com/ytget/magnetdrop/internal/model"
)

// Converter accepts bulk conversion jobs. Results are published as events;
// SubmitConversion only reports whether the job was accepted.
type Converter interface {
	SubmitConversion(req ConvertRequest) error
}

// Filterer narrows a record list by keyword.
type Filterer interface {
	Filter(ctx context.Context, req FilterRequest) ([]model.Record, error)
}

// ConvertRequest is a bulk conversion job
type ConvertRequest struct {
	Batch    string
	Paths    []string
	FullLink bool
}

// FilterRequest carries the record snapshot and keyword to filter by
type FilterRequest struct {
	Records    []model.Record
	Keyword    string
	SearchType SearchType
}
