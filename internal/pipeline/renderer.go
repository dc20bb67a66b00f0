package pipeline

import (
	"fmt"
	"net/url"

	"github.com/ytget/magnetdrop/internal/model"
)

// Renderer projects records into a presentable view. It keeps no state.
type Renderer struct{}

// Render builds the view for records filtered by keyword. An empty result is
// NoMatches when a keyword is active and NoData otherwise.
func (Renderer) Render(keyword string, records []model.Record) (model.View, error) {
	if len(records) == 0 {
		state := model.ViewStateNoData
		if keyword != "" {
			state = model.ViewStateNoMatches
		}
		return model.View{State: state, Keyword: keyword}, nil
	}

	rows := make([]model.Row, 0, len(records))
	for i, r := range records {
		if !r.HasID() {
			return model.View{}, fmt.Errorf("%w: record %d has no id", ErrRender, i)
		}
		rows = append(rows, model.Row{
			ID:      r.ID,
			Name:    r.Name,
			Path:    r.Path,
			Link:    r.Link,
			LinkURL: parseLink(r.Link),
		})
	}

	return model.View{State: model.ViewStateRows, Keyword: keyword, Rows: rows}, nil
}

// Failure builds the error view shown when a view could not be produced
func (Renderer) Failure(keyword string, err error) model.View {
	return model.View{State: model.ViewStateError, Keyword: keyword, Err: err}
}

// parseLink returns nil for links that cannot be activated
func parseLink(link string) *url.URL {
	if link == "" {
		return nil
	}
	u, err := url.Parse(link)
	if err != nil || u.Scheme == "" {
		return nil
	}
	return u
}
