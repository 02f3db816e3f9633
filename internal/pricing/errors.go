package pricing

import (
	"errors"
	"sort"
	"strings"
)

// FieldErrors maps an input field name to a message suitable for showing next to it.
type FieldErrors map[string]string

// Error lists every field message in a stable order.
func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return "invalid quote request: " + strings.Join(parts, "; ")
}

// Add records a message for field unless one is already present.
func (f FieldErrors) Add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

// Err returns nil when no field failed so callers can return it directly.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

// IsValidation extracts field errors, letting handlers tell bad input from infrastructure failures.
func IsValidation(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
