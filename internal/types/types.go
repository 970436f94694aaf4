package types

// GeneratedFile is one file of a generated theme as listed in API responses.
type GeneratedFile struct {
	Filename string `json:"filename"`
	Type     string `json:"type"` // e.g. "Pattern", "Template", "CSS"
	Size     int    `json:"size"`
	Content  string `json:"content,omitempty"`
}
