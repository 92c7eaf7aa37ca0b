package eagle

import "errors"

// Error kinds reported by parsing and resolution. Callers match with
// errors.Is; messages carry the offending element or attribute.
var (
	// ErrNotEagleDocument is returned when the root element is not <eagle>.
	ErrNotEagleDocument = errors.New("not an EAGLE document")
	// ErrUnrecognizedDocument is returned when the drawing holds neither a
	// board, a library nor a schematic.
	ErrUnrecognizedDocument = errors.New("corrupt or unhandled EAGLE document")
	// ErrUnsupported is returned for document content this package does not
	// parse (boards).
	ErrUnsupported = errors.New("unsupported")
	// ErrMissingAttribute is returned when a required attribute is absent.
	ErrMissingAttribute = errors.New("missing attribute")
	// ErrMissingIdentity is returned when a LibraryRef is requested from a
	// library that has no name.
	ErrMissingIdentity = errors.New("library has no name")
	// ErrInvalidEncoding is returned when a scalar token cannot be decoded.
	ErrInvalidEncoding = errors.New("invalid encoding")
	// ErrDuplicateName is returned in strict mode when two siblings share a
	// name within one scope.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrUnresolvedReference is returned when a part's selection chain does
	// not resolve against the schematic's libraries.
	ErrUnresolvedReference = errors.New("unresolved reference")
)
