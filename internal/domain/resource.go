package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Resource represents one catalog entry describing a disaster-data resource.
// The JSON field names are a compatibility contract shared with the static
// site that renders the catalog; do not rename them.
type Resource struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// URL is the canonical unique identifier (see CanonicalURL).
	// If the URL changes, the record is a different resource.
	URL string `json:"url"`

	// ─────────────────────────────
	// Submission-owned fields
	// ─────────────────────────────

	Name         string `json:"name"`
	Description  string `json:"description"`
	Organization string `json:"organization"`

	// Type holds the disaster-category tags, e.g. [flood, earthquake].
	Type TypeTags `json:"type"`

	// Public is true when the resource is reachable without credentials.
	Public bool `json:"public"`

	// Active is the last-known liveness state. Submissions set the initial
	// value; the accessibility sweep overwrites it.
	Active bool `json:"active"`

	// Subscription is true when the resource requires paid or registered access.
	Subscription bool `json:"subscription"`

	ResearchOrOps UsageKind `json:"researchOrOps"`

	Notes   string `json:"notes"`
	Contact string `json:"contact"`

	ContributorName  string `json:"contributorName,omitempty"`
	ContributorEmail string `json:"contributorEmail,omitempty"`

	// ─────────────────────────────
	// Probe-owned fields
	// ─────────────────────────────

	// LastChecked is the RFC3339 UTC timestamp of the last accessibility probe.
	LastChecked string `json:"lastChecked,omitempty"`

	// AccessibilityStatus is the HTTP status of the last probe (0 on transport failure).
	AccessibilityStatus int `json:"accessibilityStatus,omitempty"`

	// AccessibilityError describes the last probe failure. Cleared when active.
	AccessibilityError string `json:"accessibilityError,omitempty"`
}

// CheckedWithin reports whether the record was probed within the given window.
// An absent or unparsable LastChecked counts as never checked.
func (r *Resource) CheckedWithin(window time.Duration, now time.Time) bool {
	if r.LastChecked == "" {
		return false
	}
	t, err := time.Parse(time.RFC3339, r.LastChecked)
	if err != nil {
		return false
	}
	return now.Sub(t) < window
}

// CopyProbeFields carries the probe-owned fields over from prev.
// Used when a re-submission overwrites a record: the form never carries
// probe results, so the previous sweep's answer stays.
func (r *Resource) CopyProbeFields(prev *Resource) {
	r.LastChecked = prev.LastChecked
	r.AccessibilityStatus = prev.AccessibilityStatus
	r.AccessibilityError = prev.AccessibilityError
}

// UsageKind classifies how a resource is used.
type UsageKind string

const (
	UsageUnspecified UsageKind = ""
	UsageResearch    UsageKind = "Research"
	UsageOperation   UsageKind = "Operation"
	UsageBoth        UsageKind = "Both"
)

// ParseUsageKind normalizes free-text form values into a UsageKind.
func ParseUsageKind(raw string) (UsageKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return UsageUnspecified, nil
	case "research":
		return UsageResearch, nil
	case "operation", "operations", "ops":
		return UsageOperation, nil
	case "both", "research and operations":
		return UsageBoth, nil
	default:
		return UsageUnspecified, fmt.Errorf("unrecognized usage classification %q", raw)
	}
}

// TypeTags is an ordered, deduplicated set of canonical category tokens.
//
// The catalog file stores a bare string when there is a single tag and an
// array otherwise (the site reads both forms), so the JSON codec is custom.
type TypeTags []string

// Contains reports whether the set holds the given token.
func (t TypeTags) Contains(token string) bool {
	for _, tag := range t {
		if tag == token {
			return true
		}
	}
	return false
}

// MarshalJSON implements json.Marshaler.
func (t TypeTags) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return json.Marshal(t[0])
	}
	return json.Marshal([]string(t))
}

// UnmarshalJSON implements json.Unmarshaler, accepting both forms.
func (t *TypeTags) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = TypeTags{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("type must be a string or an array of strings: %w", err)
	}
	*t = TypeTags(many)
	return nil
}
