package host

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/anacrolix/torrent/metainfo"
)

// Magnet URI parameter names beyond xt/dn/tr
const (
	ParamExactLength = "xl"
	ParamWebSeed     = "ws"
)

// MagnetFromFile reads a .torrent file and builds its magnet link. The short
// form carries only the info hash and display name; the full form adds
// trackers, total length and web seeds.
func MagnetFromFile(path string, fullLink bool) (string, error) {
	mi, err := metainfo.LoadFromFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to load torrent %s: %w", path, err)
	}

	info, err := mi.UnmarshalInfo()
	if err != nil {
		return "", fmt.Errorf("failed to decode info dictionary of %s: %w", path, err)
	}

	magnet := metainfo.Magnet{
		InfoHash:    mi.HashInfoBytes(),
		DisplayName: info.Name,
	}

	if fullLink {
		magnet.Trackers = trackers(mi)
		params := url.Values{}
		if length := info.TotalLength(); length > 0 {
			params.Set(ParamExactLength, strconv.FormatInt(length, 10))
		}
		for _, ws := range mi.UrlList {
			params.Add(ParamWebSeed, ws)
		}
		if len(params) > 0 {
			magnet.Params = params
		}
	}

	return magnet.String(), nil
}

// trackers flattens the announce tiers, dropping duplicates and keeping order.
func trackers(mi *metainfo.MetaInfo) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tier := range mi.UpvertedAnnounceList() {
		for _, tr := range tier {
			if tr == "" || seen[tr] {
				continue
			}
			seen[tr] = true
			out = append(out, tr)
		}
	}
	return out
}
