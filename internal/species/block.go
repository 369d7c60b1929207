package species

import "strings"

// Locator finds the literal initializer block behind a species entry,
// chasing macro indirection.
type Locator struct {
	defines *DefineTable
}

// NewLocator creates a block locator over the macros of one source file.
func NewLocator(defines *DefineTable) *Locator {
	return &Locator{defines: defines}
}

// Locate returns the {...} block the fragment resolves to. A fragment that
// already starts with '{' (after an optional '=') is returned as its first
// balanced block, or verbatim when the braces never close. ok is false when
// no #define exists for the macro, a substitution leaves the text unchanged,
// or the chain revisits a macro.
func (l *Locator) Locate(fragment string) (block string, ok bool) {
	return l.locate(fragment, make(map[string]bool))
}

func (l *Locator) locate(text string, visited map[string]bool) (string, bool) {
	text = strings.TrimSpace(text)
	text = strings.TrimSpace(strings.TrimLeft(text, "="))

	if strings.HasPrefix(text, "{") {
		if end := matchingClose(text, 0, '{', '}'); end >= 0 {
			return text[:end+1], true
		}
		return text, true
	}

	name := leadingIdent(text)
	if !isIdentifier(name) || visited[name] {
		return "", false
	}
	visited[name] = true

	def, found := l.defines.Lookup(name)
	if !found {
		return "", false
	}

	next := def.Body
	if def.Function {
		next = def.expand(invocationArgs(text[len(name):]))
	}
	next = strings.TrimSpace(next)
	if next == text {
		return "", false
	}
	return l.locate(next, visited)
}

// invocationArgs parses "(a, b)" at the start of s into its arguments.
func invocationArgs(s string) []string {
	s = strings.TrimLeft(s, " \t\n")
	if !strings.HasPrefix(s, "(") {
		return nil
	}
	end := matchingClose(s, 0, '(', ')')
	if end < 0 {
		return nil
	}
	inner := strings.TrimSpace(s[1:end])
	if inner == "" {
		return nil
	}
	args := splitTopLevel(inner, ',')
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	return args
}
