package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/anacrolix/torrent/bencode"
	"github.com/anacrolix/torrent/metainfo"
	"github.com/stretchr/testify/require"

	"github.com/ytget/magnetdrop/internal/clipboard"
	"github.com/ytget/magnetdrop/internal/host"
)

// writeTorrent writes a minimal single-file torrent and returns its path and info hash.
func writeTorrent(t *testing.T, dir, file, name string) (string, metainfo.Hash) {
	t.Helper()

	infoBytes, err := bencode.Marshal(metainfo.Info{
		Name:        name,
		PieceLength: 16384,
		Length:      2048,
		Pieces:      make([]byte, 20),
	})
	require.NoError(t, err)

	mi := metainfo.MetaInfo{
		InfoBytes:    infoBytes,
		Announce:     "udp://tracker.example:1337/announce",
		AnnounceList: metainfo.AnnounceList{{"udp://tracker.example:1337/announce"}},
	}

	path := filepath.Join(dir, file)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, mi.Write(f))

	return path, metainfo.HashBytes(infoBytes)
}

func resetConvertFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		verbose = false
		convertFullLink = false
		convertFilter = ""
		convertSearchType = string(host.DefaultSearchType)
		convertCopy = false
		convertFormat = FormatText
		convertParallel = host.DefaultMaxParallel
		convertTimeout = DefaultTimeout
	}
	reset()
	t.Cleanup(reset)
}

// stubClipboard replaces the system clipboard for the test
func stubClipboard(t *testing.T, write func(string) error) {
	t.Helper()
	old := newClipboard
	newClipboard = func() clipboard.Writer { return clipboard.WriterFunc(write) }
	t.Cleanup(func() { newClipboard = old })
}

// execute runs the root command with args and returns stdout and stderr
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
