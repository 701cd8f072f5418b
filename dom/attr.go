package dom

import "strings"

// Attr is a single name/value attribute on an element. The class attribute
// is never stored here; it lives in the element's ClassList.
type Attr struct {
	Name  string
	Value string
}

// attrList keeps attributes in insertion order.
type attrList []Attr

func (al attrList) index(name string) int {
	for i, a := range al {
		if a.Name == name {
			return i
		}
	}
	return -1
}

func (al *attrList) set(name, value string) {
	if i := al.index(name); i >= 0 {
		(*al)[i].Value = value
		return
	}
	*al = append(*al, Attr{Name: name, Value: value})
}

func (al *attrList) remove(name string) bool {
	i := al.index(name)
	if i < 0 {
		return false
	}
	*al = append((*al)[:i], (*al)[i+1:]...)
	return true
}

// validateAttributeName rejects names that cannot be rendered.
func validateAttributeName(name string) *DOMError {
	if name == "" {
		return ErrInvalidCharacter("Attribute name must not be empty.")
	}
	if strings.ContainsAny(name, " \t\n\r\f\"'>/=") {
		return ErrInvalidCharacter("The attribute name '" + name + "' contains invalid characters.")
	}
	return nil
}
