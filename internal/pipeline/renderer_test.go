package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/magnetdrop/internal/model"
)

func TestRenderer_EmptyStates(t *testing.T) {
	var r Renderer

	view, err := r.Render("", nil)
	require.NoError(t, err)
	assert.Equal(t, model.ViewStateNoData, view.State)
	assert.Zero(t, view.Len())

	view, err = r.Render("ubuntu", []model.Record{})
	require.NoError(t, err)
	assert.Equal(t, model.ViewStateNoMatches, view.State)
	assert.Equal(t, "ubuntu", view.Keyword)
}

func TestRenderer_RowsKeepOrder(t *testing.T) {
	var r Renderer
	records := []model.Record{
		{ID: "1", Name: "b", Path: "/b.torrent", Link: "magnet:?xt=urn:btih:bbb"},
		{ID: "2", Name: "a", Path: "/a.torrent", Link: "magnet:?xt=urn:btih:aaa"},
	}

	view, err := r.Render("", records)
	require.NoError(t, err)
	require.Equal(t, model.ViewStateRows, view.State)
	require.Len(t, view.Rows, 2)

	assert.Equal(t, "1", view.Rows[0].ID)
	assert.Equal(t, "2", view.Rows[1].ID)
	assert.Equal(t, []string{records[0].Link, records[1].Link}, view.Links())
	require.True(t, view.Rows[0].IsLinkActive())
	assert.Equal(t, "magnet", view.Rows[0].LinkURL.Scheme)
}

func TestRenderer_EmptyFieldsStillRender(t *testing.T) {
	var r Renderer

	view, err := r.Render("", []model.Record{{ID: "1"}, {ID: "2", Link: "not a link"}})
	require.NoError(t, err)
	require.Len(t, view.Rows, 2)
	assert.False(t, view.Rows[0].IsLinkActive())
	assert.False(t, view.Rows[1].IsLinkActive())
	assert.Equal(t, "not a link", view.Rows[1].Link)
}

func TestRenderer_MissingIDFails(t *testing.T) {
	var r Renderer

	_, err := r.Render("", []model.Record{{ID: "1"}, {Name: "orphan"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRender)
}

func TestRenderer_Failure(t *testing.T) {
	var r Renderer

	view := r.Failure("kw", ErrFilterRequest)
	assert.Equal(t, model.ViewStateError, view.State)
	assert.Equal(t, "kw", view.Keyword)
	assert.ErrorIs(t, view.Err, ErrFilterRequest)
	assert.Empty(t, view.Links())
}
