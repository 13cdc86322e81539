package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Validation errors owned by the render core.
const (
	// ErrCodeMissingTypeDirective indicates the resolved configuration has no
	// diagram type at all. Unreachable when defaults are applied.
	ErrCodeMissingTypeDirective ErrorCode = "MISSING_TYPE_DIRECTIVE"
	// ErrCodeInvalidDiagramType indicates the resolved diagram type is not one
	// of the known variants.
	ErrCodeInvalidDiagramType ErrorCode = "INVALID_DIAGRAM_TYPE"
)

// Collaborator errors, propagated unchanged apart from the code tag.
const (
	// ErrCodeGrammar indicates a diagram grammar rejected an instruction line.
	ErrCodeGrammar ErrorCode = "GRAMMAR_ERROR"
	// ErrCodeRender indicates the layout engine failed to render.
	ErrCodeRender ErrorCode = "RENDER_ERROR"
	// ErrCodeStream indicates the streaming input source failed mid-read.
	ErrCodeStream ErrorCode = "STREAM_ERROR"
)

// Request/transport errors used by the HTTP facade.
const (
	// ErrCodeInvalidInput indicates a malformed render request.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeUnauthorized indicates a missing or invalid bearer token.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)
