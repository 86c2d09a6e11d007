package forest

import (
	"fmt"

	"github.com/abhisek/mindcheck/internal/assessment"
)

// LabelTable maps between class names and the integer codes used at
// training time. Codes are positions in Classes.
type LabelTable struct {
	Classes []string `json:"classes"`
}

// Encode returns the code for value, or an UnknownCategoryError naming field.
func (l *LabelTable) Encode(field, value string) (int, error) {
	for i, c := range l.Classes {
		if c == value {
			return i, nil
		}
	}
	known := make([]string, len(l.Classes))
	copy(known, l.Classes)
	return 0, &assessment.UnknownCategoryError{Field: field, Value: value, Known: known}
}

// Decode returns the class name for code.
func (l *LabelTable) Decode(code int) (string, error) {
	if code < 0 || code >= len(l.Classes) {
		return "", &assessment.SchemaMismatchError{
			Detail: fmt.Sprintf("label index %d outside decoder range [0, %d)", code, len(l.Classes)),
		}
	}
	return l.Classes[code], nil
}
