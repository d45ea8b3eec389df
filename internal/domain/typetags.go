package domain

import (
	"regexp"
	"strings"
)

// Canonical category tokens the site understands, matching the form options.
var allowedTypeTokens = map[string]bool{
	"flood":           true,
	"earthquake":      true,
	"wildfire":        true,
	"drought":         true,
	"hurricane":       true,
	"tornado":         true,
	"extreme-weather": true,
	"other":           true,
}

// Plural and variant form labels mapped to canonical tokens.
var typeTokenAliases = map[string]string{
	"extreme weather": "extreme-weather",
	"wildfires":       "wildfire",
	"flooding":        "flood",
	"floods":          "flood",
	"hurricanes":      "hurricane",
	"tornados":        "tornado",
	"tornadoes":       "tornado",
	"earthquakes":     "earthquake",
	"droughts":        "drought",
}

var otherPrefixRe = regexp.MustCompile(`^other:\s*(.+)$`)

// CanonicalTypeToken maps a form label (Title Case, plural, "Other: ...") to
// a canonical token. The second return carries the free text of an
// "Other: ..." label. ok is false for labels outside the vocabulary.
func CanonicalTypeToken(label string) (token, otherText string, ok bool) {
	t := strings.ToLower(strings.TrimSpace(label))
	t = strings.NewReplacer("–", "-", "—", "-").Replace(t)

	if m := otherPrefixRe.FindStringSubmatch(t); m != nil {
		return "other", strings.TrimSpace(m[1]), true
	}
	if alias, found := typeTokenAliases[t]; found {
		t = alias
	}
	if allowedTypeTokens[t] {
		return t, "", true
	}
	return "", "", false
}

// NormalizeTypeTags maps raw form labels to a deduplicated, order-preserving
// tag set. Labels outside the vocabulary are dropped; collected "Other: ..."
// texts are returned separately so callers can fold them into notes.
func NormalizeTypeTags(labels []string) (TypeTags, []string) {
	var tags TypeTags
	var otherTexts []string
	seen := make(map[string]bool, len(labels))

	for _, label := range labels {
		token, other, ok := CanonicalTypeToken(label)
		if !ok {
			continue
		}
		if other != "" {
			otherTexts = append(otherTexts, other)
		}
		if !seen[token] {
			seen[token] = true
			tags = append(tags, token)
		}
	}
	return tags, otherTexts
}
