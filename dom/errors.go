package dom

import "fmt"

// DOMError represents a tree usage error with a name and message.
type DOMError struct {
	Name    string
	Message string
}

func (e *DOMError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// Is reports whether target is a DOMError with the same name, so callers can
// match on the error kind with errors.Is regardless of the message.
func (e *DOMError) Is(target error) bool {
	t, ok := target.(*DOMError)
	if !ok {
		return false
	}
	return t.Name == e.Name && (t.Message == "" || t.Message == e.Message)
}

// ErrExhausted is returned by Iterator.Next when no nodes remain.
var ErrExhausted = &DOMError{Name: "StopIteration", Message: "no more nodes"}

// Kind values for errors.Is matching.
var (
	ErrKindHierarchyRequest = &DOMError{Name: "HierarchyRequestError"}
	ErrKindSyntax           = &DOMError{Name: "SyntaxError"}
	ErrKindInvalidCharacter = &DOMError{Name: "InvalidCharacterError"}
	ErrKindIndexSize        = &DOMError{Name: "IndexSizeError"}
	ErrKindNotSupported     = &DOMError{Name: "NotSupportedError"}
)

// ErrHierarchyRequest creates a HierarchyRequestError.
func ErrHierarchyRequest(message string) *DOMError {
	return &DOMError{Name: "HierarchyRequestError", Message: message}
}

// ErrInvalidCharacter creates an InvalidCharacterError.
func ErrInvalidCharacter(message string) *DOMError {
	return &DOMError{Name: "InvalidCharacterError", Message: message}
}

// ErrNotSupported creates a NotSupportedError.
func ErrNotSupported(message string) *DOMError {
	return &DOMError{Name: "NotSupportedError", Message: message}
}

// ErrIndexSize creates an IndexSizeError.
func ErrIndexSize(message string) *DOMError {
	return &DOMError{Name: "IndexSizeError", Message: message}
}

// ErrSyntax creates a SyntaxError.
func ErrSyntax(message string) *DOMError {
	return &DOMError{Name: "SyntaxError", Message: message}
}
