package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/coursedraft/internal/domain"
)

// ValidationError holds one human-readable message per invalid field of a
// step. It is raised before any network call and never reaches the API.
type ValidationError struct {
	Step   domain.Step
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, k := range e.Keys() {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: invalid fields: %s", e.Step, strings.Join(parts, "; "))
}

// Keys returns the invalid field names in sorted order.
func (e *ValidationError) Keys() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Message returns the message for field, or "" when the field is valid.
func (e *ValidationError) Message(field string) string {
	return e.Fields[field]
}
