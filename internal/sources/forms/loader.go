package forms

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/trusteddatanow/catalog/internal/utils"
)

// Loader reads form-submission exports from a local CSV file or from a
// sheet-export URL (the published CSV endpoint of a spreadsheet).
type Loader struct {
	client *http.Client
}

// NewLoader creates a loader. fetchTimeout bounds export-URL downloads.
func NewLoader(fetchTimeout time.Duration) *Loader {
	return &Loader{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// Load reads and parses the export at source. Sources starting with http://
// or https:// are fetched over the network; everything else is treated as a
// file path.
func (l *Loader) Load(ctx context.Context, source string) (*Export, error) {
	var reader io.ReadCloser

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to build export request: %w", err)
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch export %s: %w", source, err)
		}
		if resp.StatusCode != http.StatusOK {
			utils.Drain(resp.Body)
			return nil, fmt.Errorf("export %s returned HTTP %d", source, resp.StatusCode)
		}
		reader = resp.Body
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open export file: %w", err)
		}
		reader = f
	}
	defer utils.Close(reader)

	return parseCSV(reader)
}

func parseCSV(r io.Reader) (*Export, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // exports omit trailing empty cells

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse export csv: %w", err)
	}
	if len(records) == 0 {
		return &Export{}, nil
	}
	return &Export{
		Headers: records[0],
		Rows:    records[1:],
	}, nil
}
