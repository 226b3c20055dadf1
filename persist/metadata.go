package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Metadata is the small structured sidecar describing a persisted graph:
// the source/sink node indices and the engine's end pointer at the time
// of Save (spec.md §6, "Persisted state layout").
type Metadata struct {
	Source      uint64 `json:"source"`
	Sink        uint64 `json:"sink"`
	EndPosition uint64 `json:"end_position"`
}

// ErrEmptyMetadata indicates metadata.json exists but contains no bytes.
// spec.md §6 calls this out explicitly: an empty file must fail loudly
// rather than being treated the same as a missing one.
var ErrEmptyMetadata = errors.New("persist: metadata.json is present but empty")

// readMetadata loads metadata.json from path. A missing file yields the
// fresh-graph defaults (source=0, sink=1, end_position=0); an empty file
// is an error.
func readMetadata(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Metadata{Source: 0, Sink: 1, EndPosition: 0}, nil
	}
	if err != nil {
		return Metadata{}, fmt.Errorf("persist: read %q: %w", path, err)
	}
	if len(data) == 0 {
		return Metadata{}, ErrEmptyMetadata
	}

	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return Metadata{}, fmt.Errorf("persist: parse %q: %w", path, err)
	}

	return m, nil
}

// writeMetadata writes m to path as indented JSON.
func writeMetadata(path string, m Metadata) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("persist: encode metadata: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("persist: write %q: %w", path, err)
	}

	return nil
}
