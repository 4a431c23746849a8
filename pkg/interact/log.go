package interact

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/progresstwin/pkg/matrix"
)

// LogHandler returns a handler that logs every forwarded click at info
// level.
func LogHandler(logger *log.Logger) Handler {
	return func(rowID, columnID string, cell matrix.Cell) {
		logger.Info("element clicked", "row", rowID, "column", columnID, "code", cell.Code, "status", cell.Status)
	}
}
