package ui

import (
	"net/url"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/magnetdrop/internal/model"
)

func TestResultRow_ActiveLink(t *testing.T) {
	test.NewApp()

	link := "magnet:?xt=urn:btih:abc&dn=ubuntu"
	u, err := url.Parse(link)
	require.NoError(t, err)

	rr := NewResultRow(NewLocalization())
	rr.UpdateRow(model.Row{ID: "1", Name: "ubuntu.torrent", Path: "/tmp/ubuntu.torrent", Link: link, LinkURL: u})

	assert.Equal(t, "ubuntu.torrent", rr.nameLabel.Text)
	assert.Equal(t, "/tmp/ubuntu.torrent", rr.pathLabel.Text)
	assert.True(t, rr.link.Visible())
	assert.False(t, rr.linkText.Visible())
	assert.Equal(t, link, rr.link.Text)
	assert.False(t, rr.revealBtn.Disabled())
	assert.False(t, rr.copyBtn.Disabled())
}

func TestResultRow_InactiveLink(t *testing.T) {
	test.NewApp()

	rr := NewResultRow(NewLocalization())
	rr.UpdateRow(model.Row{ID: "1", Name: "line\nbreak"})

	assert.Equal(t, "line break", rr.nameLabel.Text)
	assert.Equal(t, DashPlaceholder, rr.pathLabel.Text)
	assert.False(t, rr.link.Visible())
	assert.True(t, rr.linkText.Visible())
	assert.Equal(t, DashPlaceholder, rr.linkText.Text)
	assert.True(t, rr.revealBtn.Disabled())
	assert.True(t, rr.copyBtn.Disabled())
}

func TestResultRow_Callbacks(t *testing.T) {
	test.NewApp()

	var revealed, copied string
	rr := NewResultRow(NewLocalization())
	rr.SetCallbacks(
		func(path string) { revealed = path },
		func(link string) { copied = link },
	)
	rr.UpdateRow(model.Row{ID: "1", Path: "/tmp/a.torrent", Link: "magnet:?xt=urn:btih:a"})

	test.Tap(rr.revealBtn)
	test.Tap(rr.copyBtn)

	assert.Equal(t, "/tmp/a.torrent", revealed)
	assert.Equal(t, "magnet:?xt=urn:btih:a", copied)
	assert.Equal(t, "1", rr.Row().ID)
}
