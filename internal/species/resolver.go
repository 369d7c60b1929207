package species

import (
	"strconv"
	"strings"
)

// UpdatedStatsMarker flags a compile-time conditional whose "updated"
// branch follows the '?'.
const UpdatedStatsMarker = "P_UPDATED_STATS"

// Resolver reduces a possibly macro-indirect numeric expression to an int.
type Resolver struct {
	defines *DefineTable
}

// NewResolver creates a resolver over the macros of one source file.
func NewResolver(defines *DefineTable) *Resolver {
	return &Resolver{defines: defines}
}

// Resolve returns the integer expr stands for. ok is false when the
// expression is not a literal, has no reachable definition, or the macro
// chain cycles back onto a name it already visited.
func (r *Resolver) Resolve(expr string) (value int, ok bool) {
	return r.resolve(expr, make(map[string]bool))
}

// Value is Resolve with the documented fallback of 0.
func (r *Resolver) Value(expr string) int {
	v, _ := r.Resolve(expr)
	return v
}

func (r *Resolver) resolve(expr string, visited map[string]bool) (int, bool) {
	expr = stripParens(strings.TrimSpace(expr))
	if expr == "" {
		return 0, false
	}

	if isDigits(expr) {
		n, err := strconv.Atoi(expr)
		return n, err == nil
	}

	if strings.Contains(expr, UpdatedStatsMarker) {
		_, branch, found := strings.Cut(expr, "?")
		if !found {
			return 0, false
		}
		branch, _, _ = strings.Cut(branch, ":")
		return r.resolve(branch, visited)
	}

	if !isIdentifier(expr) || visited[expr] {
		return 0, false
	}
	visited[expr] = true

	def, found := r.defines.Lookup(expr)
	if !found || def.Function {
		return 0, false
	}
	return r.resolve(def.Body, visited)
}
