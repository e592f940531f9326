package criteria

import (
	"fmt"
	"strings"
)

// Describe renders a human-readable, single-line form of a criterion
// tree — grounded on zoekt.Q.String()/pivot's filter.Criterion.String().
// Used for translator error messages and debug logging, never for wire
// serialization (MarshalJSON is the serialization contract, §6).
func Describe(c Criterion) string {
	return describeOne(c)
}

func describeOne(c Criterion) string {
	switch v := c.(type) {
	case nil:
		return `<nil>`
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", c)
	}
}

func joinChildren(kind string, children []Criterion) string {
	parts := make([]string, len(children))

	for i, ch := range children {
		parts[i] = describeOne(ch)
	}

	return fmt.Sprintf("%s(%s)", kind, strings.Join(parts, `, `))
}
