package scene

// Document is a declarative scene: a root item with nested children, each
// carrying its initial geometry and anchor bindings, plus optional steps
// applied after the layout is built.
//
// The same structure decodes from TOML, YAML and JSON.
type Document struct {
	Name  string `toml:"name" yaml:"name" json:"name,omitempty"`
	Root  Node   `toml:"root" yaml:"root" json:"root"`
	Steps []Step `toml:"steps" yaml:"steps" json:"steps,omitempty"`
}

// Node declares one item.
type Node struct {
	ID       string   `toml:"id" yaml:"id" json:"id,omitempty"`
	X        float64  `toml:"x" yaml:"x" json:"x,omitempty"`
	Y        float64  `toml:"y" yaml:"y" json:"y,omitempty"`
	Width    float64  `toml:"width" yaml:"width" json:"width,omitempty"`
	Height   float64  `toml:"height" yaml:"height" json:"height,omitempty"`
	Baseline float64  `toml:"baseline" yaml:"baseline" json:"baseline,omitempty"`
	Anchors  *Anchors `toml:"anchors" yaml:"anchors" json:"anchors,omitempty"`
	Children []Node   `toml:"children" yaml:"children" json:"children,omitempty"`
}

// Anchors declares the bindings of one item.
//
// Fill and CenterIn take an item reference: "parent" or a sibling id.
// Line fields take "<ref>.<edge>", for example "parent.left" or
// "title.bottom". Unset numeric fields leave the solver default (zero).
type Anchors struct {
	Fill             string `toml:"fill" yaml:"fill" json:"fill,omitempty"`
	CenterIn         string `toml:"center_in" yaml:"center_in" json:"center_in,omitempty"`
	Left             string `toml:"left" yaml:"left" json:"left,omitempty"`
	Right            string `toml:"right" yaml:"right" json:"right,omitempty"`
	HorizontalCenter string `toml:"horizontal_center" yaml:"horizontal_center" json:"horizontal_center,omitempty"`
	Top              string `toml:"top" yaml:"top" json:"top,omitempty"`
	Bottom           string `toml:"bottom" yaml:"bottom" json:"bottom,omitempty"`
	VerticalCenter   string `toml:"vertical_center" yaml:"vertical_center" json:"vertical_center,omitempty"`
	Baseline         string `toml:"baseline" yaml:"baseline" json:"baseline,omitempty"`

	Margins                *float64 `toml:"margins" yaml:"margins" json:"margins,omitempty"`
	LeftMargin             *float64 `toml:"left_margin" yaml:"left_margin" json:"left_margin,omitempty"`
	RightMargin            *float64 `toml:"right_margin" yaml:"right_margin" json:"right_margin,omitempty"`
	TopMargin              *float64 `toml:"top_margin" yaml:"top_margin" json:"top_margin,omitempty"`
	BottomMargin           *float64 `toml:"bottom_margin" yaml:"bottom_margin" json:"bottom_margin,omitempty"`
	HorizontalCenterOffset *float64 `toml:"horizontal_center_offset" yaml:"horizontal_center_offset" json:"horizontal_center_offset,omitempty"`
	VerticalCenterOffset   *float64 `toml:"vertical_center_offset" yaml:"vertical_center_offset" json:"vertical_center_offset,omitempty"`
	BaselineOffset         *float64 `toml:"baseline_offset" yaml:"baseline_offset" json:"baseline_offset,omitempty"`
}

// Step is a geometry write applied to one item after the build. Only the
// fields that are set are written.
type Step struct {
	Target   string   `toml:"target" yaml:"target" json:"target"`
	X        *float64 `toml:"x" yaml:"x" json:"x,omitempty"`
	Y        *float64 `toml:"y" yaml:"y" json:"y,omitempty"`
	Width    *float64 `toml:"width" yaml:"width" json:"width,omitempty"`
	Height   *float64 `toml:"height" yaml:"height" json:"height,omitempty"`
	Baseline *float64 `toml:"baseline" yaml:"baseline" json:"baseline,omitempty"`
}

// Count returns the number of nodes in the document.
func (d *Document) Count() int {
	return d.Root.count()
}

func (n *Node) count() int {
	c := 1
	for i := range n.Children {
		c += n.Children[i].count()
	}
	return c
}
