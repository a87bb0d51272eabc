package domain

// APISurface is the generated description of the C API exposed by the primary library.
type APISurface struct {
	Header    string        `json:"header"`
	Types     []string      `json:"types"`
	Functions []APIFunction `json:"functions"`
}

// APIFunction is one exported C function.
type APIFunction struct {
	Name    string `json:"name"`
	Returns string `json:"returns"`
	Params  string `json:"params"`
}
