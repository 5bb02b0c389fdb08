package board

// BoardInfo is one entry of the board server catalog.
type BoardInfo struct {
	Title    string   `json:"title"`
	Path     string   `json:"path"`
	Username string   `json:"username,omitempty"`
	ReadOnly bool     `json:"readonly,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Description reports a board's input and output contracts as returned by
// the describe endpoint.
type Description struct {
	Title        string         `json:"title,omitempty"`
	Description  string         `json:"description,omitempty"`
	InputSchema  map[string]any `json:"inputSchema,omitempty"`
	OutputSchema map[string]any `json:"outputSchema,omitempty"`
}
