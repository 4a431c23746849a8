// Package interact carries click identities from drawn primitives back to
// the progress matrix.
//
// Every clickable primitive holds a [Target]: the row, the column its
// feature resolved to, and the cell at that intersection (or the
// placeholder cell when the row has none). A [Dispatcher] forwards a target
// to the registered [Handler] exactly once. Nothing here mutates matrix
// state; forwarding is the only outward channel.
package interact

import (
	"context"

	"github.com/matzehuels/progresstwin/pkg/errors"
	"github.com/matzehuels/progresstwin/pkg/matrix"
	"github.com/matzehuels/progresstwin/pkg/observability"
)

// Target is the click identity attached to a primitive.
type Target struct {
	RowID    string      `json:"row_id" cbor:"row_id"`
	ColumnID string      `json:"column_id" cbor:"column_id"`
	Cell     matrix.Cell `json:"cell" cbor:"cell"`
}

// NewTarget returns the target for row's cell under columnID. An empty
// columnID is an unresolved role and yields nil: the feature is drawn but
// not clickable.
func NewTarget(row matrix.Row, columnID string) *Target {
	if columnID == "" {
		return nil
	}
	return &Target{RowID: row.ID, ColumnID: columnID, Cell: row.Cell(columnID)}
}

// Handler receives forwarded clicks.
type Handler func(rowID, columnID string, cell matrix.Cell)

// Dispatcher forwards click targets to a handler.
type Dispatcher struct {
	handler Handler
}

// NewDispatcher returns a dispatcher calling h. A nil h drops clicks.
func NewDispatcher(h Handler) *Dispatcher {
	return &Dispatcher{handler: h}
}

// Forward calls the handler once with t. A nil target is reported as
// [errors.ErrCodeNotInteractive] and the handler is not called.
func (d *Dispatcher) Forward(ctx context.Context, t *Target) error {
	if t == nil {
		observability.Interaction().OnClick(ctx, "", "", false)
		return errors.New(errors.ErrCodeNotInteractive, "primitive has no click target")
	}
	if d != nil && d.handler != nil {
		d.handler(t.RowID, t.ColumnID, t.Cell)
	}
	observability.Interaction().OnClick(ctx, t.RowID, t.ColumnID, true)
	return nil
}

// Fanout returns a handler calling every non-nil handler in order.
func Fanout(hs ...Handler) Handler {
	var live []Handler
	for _, h := range hs {
		if h != nil {
			live = append(live, h)
		}
	}
	return func(rowID, columnID string, cell matrix.Cell) {
		for _, h := range live {
			h(rowID, columnID, cell)
		}
	}
}
