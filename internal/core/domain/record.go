package domain

import "time"

// BuildRecord describes how a component was provided in the last successful run.
type BuildRecord struct {
	Component ComponentID    `json:"component,omitzero"`
	Kind      ResolutionKind `json:"kind"`
	Mode      LinkMode       `json:"mode"`
	LibDir    string         `json:"lib_dir,omitzero"`
	Artifact  string         `json:"artifact,omitzero"`
	// InputHash fingerprints the compile unit; OutputHash fingerprints the archive.
	InputHash  string    `json:"input_hash,omitzero"`
	OutputHash string    `json:"output_hash,omitzero"`
	Target     string    `json:"target,omitzero"`
	Timestamp  time.Time `json:"timestamp,omitzero"`
}
