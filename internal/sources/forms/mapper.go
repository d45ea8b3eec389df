package forms

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/trusteddatanow/catalog/internal/domain"
)

// MalformedRowError describes a single export row that could not be
// normalized into a resource record. The row is skipped; the rest of the
// batch is unaffected.
type MalformedRowError struct {
	Row     int // 1-based row number in the export, header = row 1
	Reasons []string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, strings.Join(e.Reasons, ", "))
}

// Mapper converts export rows into domain.Resource records.
type Mapper struct{}

// NewMapper creates a new mapper instance.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapRows normalizes every data row in the export. Malformed rows are
// reported individually and never abort the batch; the returned resources
// keep the export's row order.
func (m *Mapper) MapRows(export *Export) ([]*domain.Resource, []*MalformedRowError) {
	cols := detectColumns(export.Headers)

	var resources []*domain.Resource
	var malformed []*MalformedRowError

	for i, row := range export.Rows {
		rowNum := i + 2 // header is row 1
		res, err := m.mapRow(cols, row, rowNum)
		if err != nil {
			malformed = append(malformed, err)
			continue
		}
		resources = append(resources, res)
	}
	return resources, malformed
}

func (m *Mapper) mapRow(cols columns, row []string, rowNum int) (*domain.Resource, *MalformedRowError) {
	cell := func(ix int) string {
		if ix < 0 || ix >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[ix])
	}

	var reasons []string

	tags, otherTexts := domain.NormalizeTypeTags(splitMulti(cell(cols.types)))

	subscription, err := parseBool(cell(cols.subscription), false)
	if err != nil {
		reasons = append(reasons, fmt.Sprintf("subscription: %v", err))
	}
	public, err := parseBool(cell(cols.public), true)
	if err != nil {
		reasons = append(reasons, fmt.Sprintf("public: %v", err))
	}
	active, err := parseBool(cell(cols.active), true)
	if err != nil {
		reasons = append(reasons, fmt.Sprintf("active: %v", err))
	}
	usage, err := domain.ParseUsageKind(cell(cols.researchOrOps))
	if err != nil {
		reasons = append(reasons, err.Error())
	}

	res := &domain.Resource{
		Name:             cell(cols.name),
		Description:      cell(cols.description),
		Organization:     cell(cols.organization),
		Type:             tags,
		Public:           public,
		Active:           active,
		Subscription:     subscription,
		ResearchOrOps:    usage,
		Notes:            cell(cols.notes),
		Contact:          cell(cols.contact),
		ContributorName:  cell(cols.contributorName),
		ContributorEmail: cell(cols.contributorEmail),
	}

	if res.Name == "" {
		reasons = append(reasons, "missing name")
	}
	if res.Description == "" {
		reasons = append(reasons, "missing description")
	}
	if len(tags) == 0 {
		reasons = append(reasons, "no valid types")
	}

	rawURL := cell(cols.url)
	if rawURL == "" {
		reasons = append(reasons, "missing url")
	} else {
		canonical, err := domain.CanonicalURL(rawURL)
		if err != nil {
			reasons = append(reasons, fmt.Sprintf("bad url: %v", err))
		} else {
			res.URL = canonical
		}
	}

	if len(reasons) > 0 {
		return nil, &MalformedRowError{Row: rowNum, Reasons: reasons}
	}

	// "Other: ..." form labels carry free text; fold it into notes so it
	// survives the fixed vocabulary.
	if len(otherTexts) > 0 {
		note := "Other type(s): " + strings.Join(dedupeSorted(otherTexts), ", ")
		if res.Notes != "" {
			res.Notes += " | " + note
		} else {
			res.Notes = note
		}
	}

	return res, nil
}

var (
	truthyTokens = map[string]bool{"true": true, "yes": true, "y": true, "1": true, "on": true, "checked": true}
	falsyTokens  = map[string]bool{"false": true, "no": true, "n": true, "0": true, "off": true, "unchecked": true}
)

// parseBool maps recognized truthy/falsy form strings to a bool.
// An empty cell takes the field's default; anything else is an error.
func parseBool(raw string, def bool) (bool, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return def, nil
	}
	if truthyTokens[s] {
		return true, nil
	}
	if falsyTokens[s] {
		return false, nil
	}
	return def, fmt.Errorf("unrecognized boolean %q", raw)
}

var multiSplitRe = regexp.MustCompile(`[,\n;]+`)

// splitMulti splits checkbox aggregate values from a forms export.
func splitMulti(s string) []string {
	if s == "" {
		return nil
	}
	var parts []string
	for _, p := range multiSplitRe.Split(s, -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func dedupeSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
