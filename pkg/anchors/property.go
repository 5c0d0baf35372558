package anchors

import (
	"fmt"
	"strings"
)

// Property names an observable property of an anchor set.
type Property uint8

// Anchor set properties.
const (
	PropFill Property = iota
	PropCenterIn
	PropLeft
	PropRight
	PropHorizontalCenter
	PropTop
	PropBottom
	PropVerticalCenter
	PropBaseline
	PropMargins
	PropLeftMargin
	PropRightMargin
	PropTopMargin
	PropBottomMargin
	PropHorizontalCenterOffset
	PropVerticalCenterOffset
	PropBaselineOffset

	propCount
)

var propertyNames = [...]string{
	PropFill:                   "fill",
	PropCenterIn:               "centerIn",
	PropLeft:                   "left",
	PropRight:                  "right",
	PropHorizontalCenter:       "horizontalCenter",
	PropTop:                    "top",
	PropBottom:                 "bottom",
	PropVerticalCenter:         "verticalCenter",
	PropBaseline:               "baseline",
	PropMargins:                "margins",
	PropLeftMargin:             "leftMargin",
	PropRightMargin:            "rightMargin",
	PropTopMargin:              "topMargin",
	PropBottomMargin:           "bottomMargin",
	PropHorizontalCenterOffset: "horizontalCenterOffset",
	PropVerticalCenterOffset:   "verticalCenterOffset",
	PropBaselineOffset:         "baselineOffset",
}

func (p Property) String() string {
	if p < propCount {
		return propertyNames[p]
	}
	return fmt.Sprintf("Property(%d)", uint8(p))
}

// lineProps are the properties that hold a Line, in update priority order
// per axis.
var lineProps = [...]Property{
	PropLeft, PropRight, PropHorizontalCenter,
	PropTop, PropBottom, PropVerticalCenter, PropBaseline,
}

// isLine reports whether p holds a Line.
func (p Property) isLine() bool {
	return p >= PropLeft && p <= PropBaseline
}

// used returns the usedAnchors flag for a line property.
func (p Property) used() Used {
	switch p {
	case PropLeft:
		return HasLeft
	case PropRight:
		return HasRight
	case PropHorizontalCenter:
		return HasHCenter
	case PropTop:
		return HasTop
	case PropBottom:
		return HasBottom
	case PropVerticalCenter:
		return HasVCenter
	case PropBaseline:
		return HasBaseline
	}
	return 0
}

// horizontal reports whether p is a horizontal line property.
func (p Property) horizontal() bool {
	return p == PropLeft || p == PropRight || p == PropHorizontalCenter
}

// Used records which line anchors are active.
type Used uint8

// Line anchor flags.
const (
	HasLeft Used = 1 << iota
	HasRight
	HasHCenter
	HasTop
	HasBottom
	HasVCenter
	HasBaseline
)

// Horizontal and vertical flag groups.
const (
	HorizontalMask = HasLeft | HasRight | HasHCenter
	VerticalMask   = HasTop | HasBottom | HasVCenter | HasBaseline
)

var usedNames = []struct {
	flag Used
	name string
}{
	{HasLeft, "left"},
	{HasRight, "right"},
	{HasHCenter, "horizontalCenter"},
	{HasTop, "top"},
	{HasBottom, "bottom"},
	{HasVCenter, "verticalCenter"},
	{HasBaseline, "baseline"},
}

// Has reports whether every flag in f is set.
func (u Used) Has(f Used) bool { return u&f == f }

// String lists the active anchors joined by "|", or "none".
func (u Used) String() string {
	if u == 0 {
		return "none"
	}
	var parts []string
	for _, n := range usedNames {
		if u&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
