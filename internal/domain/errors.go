package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrNoNamespace indicates a directive needed a namespace before any was declared
	ErrNoNamespace = errors.New("no class/namespace set")

	// ErrMissingName indicates a class or namespace directive without a name
	ErrMissingName = errors.New("missing name")

	// ErrUnknownDirective indicates a directive that is neither fixed nor a registered kind
	ErrUnknownDirective = errors.New("unknown directive")

	// ErrInvalidSignature indicates a documentable declaration could not be parsed
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrInvalidParams indicates a parameter list could not be parsed
	ErrInvalidParams = errors.New("invalid parameter list")

	// ErrInvalidMiniclass indicates a malformed miniclass definition
	ErrInvalidMiniclass = errors.New("invalid miniclass definition")

	// ErrInvalidRelationship indicates a malformed relationship definition
	ErrInvalidRelationship = errors.New("invalid relationship definition")

	// ErrAncestorNotFound indicates an inherited namespace does not exist
	ErrAncestorNotFound = errors.New("ancestor class/namespace not found")

	// ErrInvalidLeadingCharacter indicates an unusable directive sentinel
	ErrInvalidLeadingCharacter = errors.New("invalid leading character")

	// ErrUnknownFormat indicates an unsupported output format
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrUnknownStyle indicates an unsupported comment style
	ErrUnknownStyle = errors.New("unknown comment style")

	// ErrCacheMiss indicates a cache miss
	ErrCacheMiss = errors.New("cache miss")

	// ErrInputNotFound indicates a command-line input that is neither a file nor a directory
	ErrInputNotFound = errors.New("input not found")

	// ErrOutputExists indicates the output file exists and overwriting is disabled
	ErrOutputExists = errors.New("output file already exists")
)

// StructuralError is raised when the directive stream cannot be applied to
// the tree without breaking its invariants. It aborts the current parse call.
type StructuralError struct {
	Source    string
	Block     int
	Line      int
	Directive string
	BlockText string
	Err       error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: block %d, line %d: directive %q: %v", sourceName(e.Source), e.Block, e.Line, e.Directive, e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// NewStructuralError creates a new StructuralError
func NewStructuralError(source string, block, line int, directive, blockText string, err error) *StructuralError {
	return &StructuralError{
		Source:    source,
		Block:     block,
		Line:      line,
		Directive: directive,
		BlockText: blockText,
		Err:       err,
	}
}

// GrammarError reports content that does not follow the directive grammar
type GrammarError struct {
	Kind    string
	Content string
	Err     error
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("invalid %s definition %q: %v", e.Kind, e.Content, e.Err)
}

func (e *GrammarError) Unwrap() error {
	return e.Err
}

// NewGrammarError creates a new GrammarError
func NewGrammarError(kind, content string, err error) *GrammarError {
	return &GrammarError{
		Kind:    kind,
		Content: content,
		Err:     err,
	}
}

// IsGrammarError checks if err is, or wraps, a GrammarError
func IsGrammarError(err error) bool {
	var ge *GrammarError
	return errors.As(err, &ge)
}

// IsStructural checks if err is, or wraps, a StructuralError
func IsStructural(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}

func sourceName(source string) string {
	if source == "" {
		return "<string>"
	}
	return source
}
