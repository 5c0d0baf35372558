package anchors

import (
	"fmt"
	"strings"

	"github.com/matzehuels/anchorage/pkg/errors"
)

// Edge identifies one anchorable line of an item.
type Edge uint8

// Anchorable edges. EdgeNone is the edge of an unset [Line].
const (
	EdgeNone Edge = iota
	Left
	Right
	HCenter
	Top
	Bottom
	VCenter
	Baseline
)

var edgeNames = [...]string{
	EdgeNone: "none",
	Left:     "left",
	Right:    "right",
	HCenter:  "horizontalCenter",
	Top:      "top",
	Bottom:   "bottom",
	VCenter:  "verticalCenter",
	Baseline: "baseline",
}

// String returns the edge name as used in scene files.
func (e Edge) String() string {
	if int(e) < len(edgeNames) {
		return edgeNames[e]
	}
	return fmt.Sprintf("Edge(%d)", uint8(e))
}

// Horizontal reports whether e lies on the horizontal axis (left, right, horizontal center).
func (e Edge) Horizontal() bool {
	return e == Left || e == Right || e == HCenter
}

// Vertical reports whether e lies on the vertical axis (top, bottom, vertical center, baseline).
func (e Edge) Vertical() bool {
	return e == Top || e == Bottom || e == VCenter || e == Baseline
}

// ParseEdge parses an edge name. It accepts the canonical names returned by
// [Edge.String] as well as the short and snake_case spellings
// ("hcenter", "vertical_center"). Matching is case-insensitive.
func ParseEdge(s string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "horizontalcenter", "horizontal_center", "hcenter":
		return HCenter, nil
	case "top":
		return Top, nil
	case "bottom":
		return Bottom, nil
	case "verticalcenter", "vertical_center", "vcenter":
		return VCenter, nil
	case "baseline":
		return Baseline, nil
	}
	return EdgeNone, errors.New(errors.ErrCodeInvalidEdge, "unknown edge %q", s)
}

// Line is a specific edge of a specific item. Lines compare structurally:
// two lines are equal when they name the same item and the same edge.
// The zero Line (nil Item) is the unset line.
type Line struct {
	Item Item
	Edge Edge
}

// IsSet reports whether the line references an item.
func (l Line) IsSet() bool { return l.Item != nil }

// String formats the line as "<item id>.<edge>".
func (l Line) String() string {
	if l.Item == nil {
		return "<unset>"
	}
	return l.Item.ID() + "." + l.Edge.String()
}

// position returns the edge coordinate of it in its parent's coordinate space.
func position(it Item, e Edge) float64 {
	switch e {
	case Left:
		return it.X()
	case Right:
		return it.X() + it.Width()
	case HCenter:
		return it.X() + it.Width()/2
	case Top:
		return it.Y()
	case Bottom:
		return it.Y() + it.Height()
	case VCenter:
		return it.Y() + it.Height()/2
	case Baseline:
		return it.Y() + it.BaselineOffset()
	}
	return 0
}

// adjustedPosition returns the edge coordinate of it with its own origin
// treated as zero. The result is truncated to an integer.
func adjustedPosition(it Item, e Edge) int {
	switch e {
	case Left, Top:
		return 0
	case Right:
		return int(it.Width())
	case HCenter:
		return int(it.Width() / 2)
	case Bottom:
		return int(it.Height())
	case VCenter:
		return int(it.Height() / 2)
	case Baseline:
		return int(it.BaselineOffset())
	}
	return 0
}
