package enrich

import (
	"regexp"
	"strings"
)

const highResolutionSize = "1600"

var (
	sizeSuffix  = regexp.MustCompile(`/s-l\d+\.`)
	thumbSuffix = regexp.MustCompile(`-thumb(\.[A-Za-z0-9]+)($|[?#])`)
)

// UpgradeResolution rewrites an eBay picture URL to its high-resolution
// variant. Applying it to an already upgraded URL is a no-op.
func UpgradeResolution(url string) string {
	if url == "" {
		return ""
	}
	for {
		next := upgradeOnce(url)
		if next == url {
			return next
		}
		url = next
	}
}

func upgradeOnce(url string) string {
	url = strings.ReplaceAll(url, "/thumbs/", "/")
	url = sizeSuffix.ReplaceAllString(url, "/s-l"+highResolutionSize+".")
	url = thumbSuffix.ReplaceAllString(url, "$1$2")
	return url
}

// MergeImages combines the given URL lists in order, drops empties,
// deduplicates on the raw URL (first occurrence wins) and upgrades the
// survivors. Two raw URLs that upgrade to the same value are both kept.
func MergeImages(sources ...[]string) []string {
	seen := make(map[string]struct{})
	var images []string
	for _, urls := range sources {
		for _, raw := range urls {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			if _, ok := seen[raw]; ok {
				continue
			}
			seen[raw] = struct{}{}
			images = append(images, UpgradeResolution(raw))
		}
	}
	return images
}
