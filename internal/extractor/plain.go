package extractor

// Plain treats its whole input as one block, with no stripping. It is used
// for standalone documentation files.
type Plain struct{}

// NewPlain creates a plain extractor
func NewPlain() *Plain {
	return &Plain{}
}

// Extract returns text as the only block
func (p *Plain) Extract(text string) []string {
	if text == "" {
		return nil
	}
	return []string{text}
}
