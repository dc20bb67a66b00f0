package host

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/anacrolix/torrent/bencode"
	"github.com/anacrolix/torrent/metainfo"
	"github.com/stretchr/testify/require"
)

// writeTorrent writes a minimal single-file torrent and returns its path and info hash.
func writeTorrent(t *testing.T, dir, file, name string, announce ...string) (string, metainfo.Hash) {
	t.Helper()

	info := metainfo.Info{
		Name:        name,
		PieceLength: 16384,
		Length:      1024,
		Pieces:      make([]byte, 20),
	}
	infoBytes, err := bencode.Marshal(info)
	require.NoError(t, err)

	mi := metainfo.MetaInfo{InfoBytes: infoBytes}
	if len(announce) > 0 {
		mi.Announce = announce[0]
		mi.AnnounceList = metainfo.AnnounceList{announce}
	}
	mi.UrlList = metainfo.UrlList{"http://seed.example/" + name}

	path := filepath.Join(dir, file)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, mi.Write(f))

	return path, metainfo.HashBytes(infoBytes)
}
