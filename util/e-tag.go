package util

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// GenerateETag returns a strong entity tag for a response body: the quoted SHA-1 of
// its bytes.
func GenerateETag(body []byte) string {
	hash := sha1.Sum(body)
	return `"` + hex.EncodeToString(hash[:]) + `"`
}

// MatchETag reports whether an If-None-Match header selects etag. The header may be
// "*" or a comma separated list; weak tags compare by their opaque part.
func MatchETag(ifNoneMatch, etag string) bool {
	ifNoneMatch = strings.TrimSpace(ifNoneMatch)
	if ifNoneMatch == "" {
		return false
	}
	if ifNoneMatch == "*" {
		return true
	}

	want := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		if strings.TrimPrefix(strings.TrimSpace(candidate), "W/") == want {
			return true
		}
	}
	return false
}
