package deps

import (
	"time"

	"github.com/trusteddatanow/catalog/internal/catalog"
	"github.com/trusteddatanow/catalog/internal/logger"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	Catalog   *catalog.Cache // mtime-checked view of the catalog file
}
