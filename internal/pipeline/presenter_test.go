package pipeline

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/magnetdrop/internal/eventbus"
	"github.com/ytget/magnetdrop/internal/host"
	"github.com/ytget/magnetdrop/internal/model"
)

func TestPresenter_InitialView(t *testing.T) {
	h := newHarness(t)

	view := h.presenter.View()
	assert.Equal(t, model.ViewStateNoData, view.State)
	assert.Empty(t, h.presenter.Keyword())
	assert.True(t, h.presenter.Ingesting())
}

func TestPresenter_IngestsUnfiltered(t *testing.T) {
	h := newHarness(t)

	h.publish(t, converted("", "ubuntu"), converted("", "debian"), converted("", "arch"))

	view := h.presenter.View()
	require.Equal(t, model.ViewStateRows, view.State)
	assert.Equal(t, []string{"ubuntu", "debian", "arch"}, rowNames(view))
	assert.Empty(t, h.filterer.Calls(), "empty keyword must not reach the host")

	seen := map[string]bool{}
	for _, row := range view.Rows {
		require.NotEmpty(t, row.ID)
		assert.False(t, seen[row.ID])
		seen[row.ID] = true
	}
}

func TestPresenter_IngestsIdenticalPayloadsAsDistinctRows(t *testing.T) {
	h := newHarness(t)

	h.publish(t, converted("", "same"), converted("", "same"))

	view := h.presenter.View()
	require.Len(t, view.Rows, 2)
	assert.NotEqual(t, view.Rows[0].ID, view.Rows[1].ID)
}

func TestPresenter_FilteredIngestion(t *testing.T) {
	h := newHarness(t)

	h.presenter.Filter("  Ubuntu ")
	h.presenter.Wait()
	assert.Equal(t, "Ubuntu", h.presenter.Keyword())
	assert.Equal(t, model.ViewStateNoMatches, h.presenter.View().State)

	h.publish(t, converted("", "ubuntu-24.04"), converted("", "debian-12"))

	view := h.presenter.View()
	assert.Equal(t, []string{"ubuntu-24.04"}, rowNames(view))
	assert.Equal(t, "Ubuntu", view.Keyword)
	assert.Len(t, h.presenter.Records(), 2, "filtering must not touch the store")
}

func TestPresenter_StaleResponseIsDiscarded(t *testing.T) {
	h := newHarness(t)
	h.publish(t, converted("", "alpha"), converted("", "abacus"), converted("", "beta"))

	releaseA := h.filterer.gate("a")
	releaseAB := h.filterer.gate("ab")

	h.presenter.Filter("a")
	h.presenter.Filter("ab")

	close(releaseAB)
	require.Eventually(t, func() bool {
		v := h.presenter.View()
		return v.Keyword == "ab" && v.State == model.ViewStateRows
	}, 5*time.Second, 10*time.Millisecond)

	close(releaseA)
	h.presenter.Wait()

	view := h.presenter.View()
	assert.Equal(t, "ab", view.Keyword)
	assert.Equal(t, []string{"abacus"}, rowNames(view))
}

func TestPresenter_ClearInvalidatesPendingFilter(t *testing.T) {
	h := newHarness(t)
	h.publish(t, converted("", "xenial"), converted("", "bionic"))

	release := h.filterer.gate("x")
	h.presenter.Filter("x")

	batch, err := h.presenter.HandleDrop([]string{"/downloads/new.torrent"}, false)
	require.NoError(t, err)
	require.NotEmpty(t, batch)

	view := h.presenter.View()
	assert.Equal(t, model.ViewStateNoData, view.State, "drop must show the empty state immediately")
	assert.Empty(t, h.presenter.Keyword())
	assert.Empty(t, h.presenter.Records())

	close(release)
	h.presenter.Wait()

	assert.Equal(t, model.ViewStateNoData, h.presenter.View().State)
	assert.Empty(t, h.presenter.View().Rows)
}

func TestPresenter_DropSubmitsBatch(t *testing.T) {
	h := newHarness(t)

	paths := []string{"/a.torrent", "/dir"}
	batch, err := h.presenter.HandleDrop(paths, true)
	require.NoError(t, err)
	paths[0] = "/mutated"

	reqs := h.converter.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, batch, reqs[0].Batch)
	assert.Equal(t, batch, h.presenter.Batch())
	assert.Equal(t, []string{"/a.torrent", "/dir"}, reqs[0].Paths)
	assert.True(t, reqs[0].FullLink)
}

func TestPresenter_EmptyDropIsRejected(t *testing.T) {
	h := newHarness(t)
	h.publish(t, converted("", "keep"))
	h.presenter.Filter("ke")
	h.presenter.Wait()

	_, err := h.presenter.HandleDrop(nil, false)
	assert.ErrorIs(t, err, ErrNoPaths)

	_, err = h.presenter.HandleDrop([]string{"/a.torrent", "  "}, false)
	assert.ErrorIs(t, err, ErrInvalidPath)

	assert.Empty(t, h.converter.Requests())
	assert.Len(t, h.presenter.Records(), 1)
	assert.Equal(t, "ke", h.presenter.Keyword())
	assert.Equal(t, []string{"keep"}, rowNames(h.presenter.View()))
}

func TestPresenter_DropSubmitFailure(t *testing.T) {
	h := newHarness(t)
	h.publish(t, converted("", "old"))
	h.converter.err = host.ErrServiceClosed

	_, err := h.presenter.HandleDrop([]string{"/a.torrent"}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, host.ErrServiceClosed)
	assert.Empty(t, h.presenter.Records(), "the clear happens before submission")
}

func TestPresenter_FencesSupersededBatches(t *testing.T) {
	h := newHarness(t)

	first, err := h.presenter.HandleDrop([]string{"/first.torrent"}, false)
	require.NoError(t, err)
	second, err := h.presenter.HandleDrop([]string{"/second.torrent"}, false)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	h.publish(t, converted(first, "late"), converted(second, "current"), converted("", "unbatched"))

	assert.Equal(t, []string{"current", "unbatched"}, rowNames(h.presenter.View()))
}

func TestPresenter_FenceDisabled(t *testing.T) {
	h := newHarness(t, func(o *Options) { o.FenceStaleBatches = false })

	first, err := h.presenter.HandleDrop([]string{"/first.torrent"}, false)
	require.NoError(t, err)
	_, err = h.presenter.HandleDrop([]string{"/second.torrent"}, false)
	require.NoError(t, err)

	h.publish(t, converted(first, "late"))
	assert.Equal(t, []string{"late"}, rowNames(h.presenter.View()))

	h.presenter.SetFenceStaleBatches(true)
	h.publish(t, converted(first, "later"))
	assert.Equal(t, []string{"late"}, rowNames(h.presenter.View()))
}

func TestPresenter_FilterFailureShowsError(t *testing.T) {
	h := newHarness(t)
	h.publish(t, converted("", "ubuntu"))
	h.filterer.err = errors.New("host unavailable")

	h.presenter.Filter("ubu")
	h.presenter.Wait()

	view := h.presenter.View()
	assert.Equal(t, model.ViewStateError, view.State)
	assert.ErrorIs(t, view.Err, ErrFilterRequest)
	assert.Len(t, h.presenter.Records(), 1)

	_, err := h.presenter.Export()
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestPresenter_WhitespaceKeywordShortCircuits(t *testing.T) {
	h := newHarness(t)
	h.publish(t, converted("", "one"), converted("", "two"))

	h.presenter.Filter("   ")
	h.presenter.Wait()

	assert.Empty(t, h.filterer.Calls())
	assert.Equal(t, []string{"one", "two"}, rowNames(h.presenter.View()))
}

func TestPresenter_SearchTypeChangeRefreshes(t *testing.T) {
	h := newHarness(t)
	h.publish(t, converted("", "one"))

	h.presenter.Filter("downloads")
	h.presenter.Wait()
	assert.Equal(t, model.ViewStateNoMatches, h.presenter.View().State)

	h.presenter.SetSearchType(host.SearchByPath)
	h.presenter.Wait()
	assert.Equal(t, []string{"one"}, rowNames(h.presenter.View()))
}

func TestPresenter_ExportVisibleLinks(t *testing.T) {
	h := newHarness(t)
	h.publish(t, converted("", "alpha"), converted("", "beta"), converted("", "alphabet"))

	h.presenter.Filter("alpha")
	h.presenter.Wait()

	n, err := h.presenter.Export()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	text, writes := h.clipboard.Text()
	assert.Equal(t, 1, writes)
	assert.Equal(t, strings.Join([]string{
		"magnet:?xt=urn:btih:alpha",
		"magnet:?xt=urn:btih:alphabet",
	}, "\n"), text)
}

func TestPresenter_ExportNothingVisible(t *testing.T) {
	h := newHarness(t)

	n, err := h.presenter.Export()
	assert.ErrorIs(t, err, ErrNothingToExport)
	assert.Zero(t, n)

	_, writes := h.clipboard.Text()
	assert.Zero(t, writes)
}

func TestPresenter_ExportClipboardFailure(t *testing.T) {
	h := newHarness(t)
	h.publish(t, converted("", "one"))
	h.clipboard.err = errors.New("no display")

	before := h.presenter.View()
	_, err := h.presenter.Export()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrClipboard)
	assert.Contains(t, err.Error(), "no display")
	assert.Equal(t, before, h.presenter.View())
}

func TestPresenter_StartWithoutSubscription(t *testing.T) {
	bus := eventbus.New(nil)
	bus.Close()

	p := New(Options{Bus: bus, Clipboard: &memClipboard{}})
	defer p.Close()

	err := p.Start()
	assert.ErrorIs(t, err, ErrSubscription)
	assert.False(t, p.Ingesting())
	assert.Equal(t, model.ViewStateNoData, p.View().State)
}

func TestPresenter_CloseTwice(t *testing.T) {
	h := newHarness(t)

	h.presenter.Close()
	h.presenter.Close()

	_, err := h.presenter.HandleDrop([]string{"/a.torrent"}, false)
	assert.ErrorIs(t, err, ErrClosed)
	assert.False(t, h.presenter.Ingesting())
}

func TestPresenter_ViewCallback(t *testing.T) {
	h := newHarness(t)

	// initial view from Start
	select {
	case v := <-h.views:
		assert.Equal(t, model.ViewStateNoData, v.State)
	case <-time.After(time.Second):
		t.Fatal("no initial view")
	}

	h.publish(t, converted("", "one"))

	select {
	case v := <-h.views:
		assert.Equal(t, []string{"one"}, rowNames(v))
	case <-time.After(time.Second):
		t.Fatal("no view after ingestion")
	}
}
