package dom

import (
	"fmt"
	"slices"
	"strings"
)

// validateToken checks if a class name is a valid token.
func validateToken(token string) *DOMError {
	if token == "" {
		return ErrSyntax("The token provided must not be empty.")
	}
	if strings.ContainsAny(token, " \t\n\r\f") {
		return ErrInvalidCharacter(fmt.Sprintf("The token provided ('%s') contains HTML space characters, which are not valid in tokens.", token))
	}
	return nil
}

// ClassList is an ordered set of CSS class names.
type ClassList struct {
	tokens []string
}

// Len returns the number of classes.
func (cl *ClassList) Len() int {
	if cl == nil {
		return 0
	}
	return len(cl.tokens)
}

// Item returns the class at the given index, or empty string if out of bounds.
func (cl *ClassList) Item(index int) string {
	if cl == nil || index < 0 || index >= len(cl.tokens) {
		return ""
	}
	return cl.tokens[index]
}

// Contains returns true if the class is present. Invalid tokens are never
// present.
func (cl *ClassList) Contains(token string) bool {
	if cl == nil || validateToken(token) != nil {
		return false
	}
	return slices.Contains(cl.tokens, token)
}

// Add appends the given classes, skipping ones already present. Nothing is
// added if any token is invalid.
func (cl *ClassList) Add(tokens ...string) error {
	for _, token := range tokens {
		if err := validateToken(token); err != nil {
			return err
		}
	}
	for _, token := range tokens {
		if !slices.Contains(cl.tokens, token) {
			cl.tokens = append(cl.tokens, token)
		}
	}
	return nil
}

// Remove removes the class and reports whether it was present.
func (cl *ClassList) Remove(token string) bool {
	i := slices.Index(cl.tokens, token)
	if i < 0 {
		return false
	}
	cl.tokens = slices.Delete(cl.tokens, i, i+1)
	return true
}

// Toggle removes the class if present and adds it otherwise. It returns true
// if the class is present afterwards.
func (cl *ClassList) Toggle(token string) (bool, error) {
	if err := validateToken(token); err != nil {
		return false, err
	}
	if cl.Remove(token) {
		return false, nil
	}
	cl.tokens = append(cl.tokens, token)
	return true, nil
}

// Values returns a copy of the classes in insertion order.
func (cl *ClassList) Values() []string {
	if cl == nil {
		return nil
	}
	return slices.Clone(cl.tokens)
}

// String returns the space separated class attribute value.
func (cl *ClassList) String() string {
	if cl == nil {
		return ""
	}
	return strings.Join(cl.tokens, " ")
}
