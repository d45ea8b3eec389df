package forms

import (
	"regexp"
	"strings"
)

// columns holds the detected index of each known field, -1 when absent.
type columns struct {
	name             int
	description      int
	types            int
	url              int
	organization     int
	contact          int
	contributorName  int
	contributorEmail int
	notes            int
	subscription     int
	researchOrOps    int
	public           int
	active           int
}

// Candidate header names per field. Forms exports use long question titles
// ("Publicly available without login?"), so matching is fuzzy: a header
// matches when its normalized key equals a candidate, starts with it, or
// contains it as a whole word.
var columnCandidates = map[string][]string{
	"name":             {"data name", "name", "resource name"},
	"description":      {"description"},
	"types":            {"type", "types"},
	"url":              {"url", "link"},
	"organization":     {"organization", "org"},
	"contact":          {"contact", "email"},
	"contributorName":  {"contributor name", "contributor"},
	"contributorEmail": {"contributor email"},
	"notes":            {"notes", "note"},
	"subscription":     {"requires subscription", "subscription"},
	"researchOrOps":    {"use case", "usecase", "research or ops", "researchorops"},
	"public":           {"publicly available", "public"},
	"active":           {"currently active", "active"},
}

func detectColumns(headers []string) columns {
	find := func(field string) int { return detectColumn(headers, columnCandidates[field]) }
	return columns{
		name:             find("name"),
		description:      find("description"),
		types:            find("types"),
		url:              find("url"),
		organization:     find("organization"),
		contact:          find("contact"),
		contributorName:  find("contributorName"),
		contributorEmail: find("contributorEmail"),
		notes:            find("notes"),
		subscription:     find("subscription"),
		researchOrOps:    find("researchOrOps"),
		public:           find("public"),
		active:           find("active"),
	}
}

var headerKeyRe = regexp.MustCompile(`[^a-z0-9]+`)

func detectColumn(headers []string, candidates []string) int {
	for i, h := range headers {
		key := strings.TrimSpace(headerKeyRe.ReplaceAllString(strings.ToLower(h), " "))
		for _, cand := range candidates {
			if key == cand || strings.HasPrefix(key, cand) || containsWord(key, cand) {
				return i
			}
		}
	}
	return -1
}

func containsWord(key, word string) bool {
	for _, w := range strings.Fields(key) {
		if w == word {
			return true
		}
	}
	return false
}
