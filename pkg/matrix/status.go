package matrix

import "strings"

// Status is a cell's position in the completion lifecycle. The order is only
// used for coloring and summaries; transitions are not enforced here.
type Status string

const (
	StatusEmpty     Status = "EMPTY"
	StatusPreparing Status = "PREPARING"
	StatusPending   Status = "PENDING"
	StatusSigned    Status = "SIGNED"
	StatusRejected  Status = "REJECTED"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusEmpty, StatusPreparing, StatusPending, StatusSigned, StatusRejected}

// ParseStatus maps s to a known status. Unknown or blank input yields
// [StatusEmpty].
func ParseStatus(s string) Status {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPreparing:
		return StatusPreparing
	case StatusPending:
		return StatusPending
	case StatusSigned:
		return StatusSigned
	case StatusRejected:
		return StatusRejected
	default:
		return StatusEmpty
	}
}

// Direction is the transverse side a row sits on.
type Direction string

const (
	DirectionLeft   Direction = "LEFT"
	DirectionRight  Direction = "RIGHT"
	DirectionCenter Direction = "CENTER"
)

// ParseDirection maps s to a direction; blank or malformed input is CENTER.
func ParseDirection(s string) Direction {
	switch Direction(strings.ToUpper(strings.TrimSpace(s))) {
	case DirectionLeft, "L", "SOL":
		return DirectionLeft
	case DirectionRight, "R", "SAG", "SAĞ":
		return DirectionRight
	default:
		return DirectionCenter
	}
}
