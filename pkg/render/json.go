package render

import (
	"encoding/json"

	"github.com/matzehuels/anchorage/pkg/scene"
)

// JSON encodes the snapshot as an indented JSON document with a trailing
// newline.
func JSON(snap scene.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// ParseJSON decodes a snapshot produced by [JSON].
func ParseJSON(data []byte) (scene.Snapshot, error) {
	var snap scene.Snapshot
	err := json.Unmarshal(data, &snap)
	return snap, err
}
