package helpers

import (
	"fmt"
	"math"
	"strings"
)

const (
	NetworkTwitter = "Twitter"
	NetworkBluesky = "Bluesky"
)

type Network struct {
	Name  string
	Color string
}

var SourceNetwork = Network{Name: NetworkTwitter, Color: "#1d9bf0"}

var DestinationNetwork = Network{Name: NetworkBluesky, Color: "#1185fe"}

func ConvNetworkToURL(network, username string) (string, error) {
	switch network {
	case NetworkTwitter:
		return "https://x.com/" + username, nil
	case NetworkBluesky:
		return "https://bsky.app/profile/" + username, nil
	default:
		return "", fmt.Errorf("network %v not recognized", network)
	}
}

func ConvPostToURL(network, author, networkId string) (string, error) {
	if networkId == "" {
		return "", fmt.Errorf("empty post id for network %v", network)
	}

	switch network {
	case NetworkTwitter:
		if author == "" {
			return "https://x.com/i/web/status/" + networkId, nil
		}
		return "https://x.com/" + author + "/status/" + networkId, nil
	case NetworkBluesky:
		return "https://bsky.app/profile/" + author + "/post/" + networkId, nil
	default:
		return "", fmt.Errorf("network %v not recognized", network)
	}
}

// RecordKey returns the last path segment of an at:// record URI.
func RecordKey(uri string) string {
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}

func ClampToInt32(n int) int32 {
	switch {
	case n > math.MaxInt32:
		return math.MaxInt32
	case n < 0:
		return 0
	default:
		return int32(n)
	}
}

// TruncateRunes cuts s to at most limit characters, ending with an ellipsis when shortened.
func TruncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}
