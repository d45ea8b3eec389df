package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// CanonicalURL normalizes a resource URL into its canonical form, which is
// both the merge key and the value persisted in the catalog:
//
//   - scheme and host are lowercased ("https" is assumed when absent),
//   - a single trailing slash is stripped from non-root paths,
//   - utm_* query parameters are dropped (remaining ones keep their order),
//   - the fragment is dropped.
func CanonicalURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty url")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("url %q has no host", raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	if strings.HasSuffix(u.Path, "/") && u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	u.RawQuery = stripTrackingParams(u.RawQuery)

	return u.String(), nil
}

// stripTrackingParams removes utm_* parameters while preserving the order of
// the rest. url.Values.Encode would re-sort the keys, so the query is
// rebuilt by hand.
func stripTrackingParams(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}
	var kept []string
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key := pair
		if i := strings.IndexByte(pair, '='); i >= 0 {
			key = pair[:i]
		}
		if strings.HasPrefix(strings.ToLower(key), "utm_") {
			continue
		}
		kept = append(kept, pair)
	}
	return strings.Join(kept, "&")
}
