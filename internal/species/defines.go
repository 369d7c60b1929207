package species

import (
	"strings"

	"dexsheet/internal/textutil"
)

// Define is one #define directive. Bodies continued with trailing
// backslashes are joined with newlines.
type Define struct {
	Name     string
	Params   []string
	Function bool
	Body     string
}

// DefineTable indexes the #define directives of one source text.
// When a name is defined more than once (for example in both branches of
// an #if), the first definition wins.
type DefineTable struct {
	defs map[string]Define
}

// NewDefineTable scans source for #define directives.
func NewDefineTable(source string) *DefineTable {
	t := &DefineTable{defs: make(map[string]Define)}
	for _, line := range logicalLines(source) {
		def, ok := parseDefine(line)
		if !ok {
			continue
		}
		if _, exists := t.defs[def.Name]; !exists {
			t.defs[def.Name] = def
		}
	}
	return t
}

// Lookup returns the definition of name.
func (t *DefineTable) Lookup(name string) (Define, bool) {
	d, ok := t.defs[name]
	return d, ok
}

// Len returns the number of distinct macro names.
func (t *DefineTable) Len() int { return len(t.defs) }

// logicalLines joins physical lines ending in a backslash.
func logicalLines(source string) []string {
	var out []string
	var cur strings.Builder
	continuing := false

	for _, line := range textutil.SplitLines(source) {
		trimmed := strings.TrimRight(line, " \t")
		cont := strings.HasSuffix(trimmed, "\\")
		if cont {
			trimmed = strings.TrimRight(strings.TrimSuffix(trimmed, "\\"), " \t")
		}
		if continuing {
			cur.WriteByte('\n')
		}
		cur.WriteString(trimmed)
		continuing = cont
		if !cont {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	if continuing {
		out = append(out, cur.String())
	}
	return out
}

func parseDefine(line string) (Define, bool) {
	rest := strings.TrimSpace(line)
	if !strings.HasPrefix(rest, "#") {
		return Define{}, false
	}
	rest = strings.TrimSpace(rest[1:])
	if !strings.HasPrefix(rest, "define") {
		return Define{}, false
	}
	rest = rest[len("define"):]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return Define{}, false
	}
	rest = strings.TrimLeft(rest, " \t")

	name := leadingIdent(rest)
	if !isIdentifier(name) {
		return Define{}, false
	}
	def := Define{Name: name}
	after := rest[len(name):]

	// A parameter list must follow the name with no whitespace in between.
	if strings.HasPrefix(after, "(") {
		end := strings.IndexByte(after, ')')
		if end < 0 {
			return Define{}, false
		}
		def.Function = true
		for _, p := range strings.Split(after[1:end], ",") {
			if p = strings.TrimSpace(p); p != "" {
				def.Params = append(def.Params, p)
			}
		}
		after = after[end+1:]
	}

	def.Body = strings.TrimSpace(stripLineComments(after))
	return def, true
}

// stripLineComments removes // comments outside string literals from every
// line of s.
func stripLineComments(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		for j := 0; j < len(line); j++ {
			if line[j] == '"' {
				j = skipString(line, j)
				continue
			}
			if line[j] == '/' && j+1 < len(line) && line[j+1] == '/' {
				lines[i] = line[:j]
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}

// expand substitutes args for the parameters of a function-like macro.
// Identifiers inside string literals are left alone.
func (d Define) expand(args []string) string {
	if !d.Function || len(d.Params) == 0 {
		return d.Body
	}

	subst := make(map[string]string, len(d.Params))
	for i, p := range d.Params {
		if p == "..." {
			if i < len(args) {
				subst["__VA_ARGS__"] = strings.Join(args[i:], ", ")
			} else {
				subst["__VA_ARGS__"] = ""
			}
			break
		}
		if i < len(args) {
			subst[p] = strings.TrimSpace(args[i])
		}
	}

	var b strings.Builder
	body := d.Body
	for i := 0; i < len(body); {
		c := body[i]
		switch {
		case c == '"':
			end := skipString(body, i)
			b.WriteString(body[i : end+1])
			i = end + 1
		case isIdentChar(c) && (i == 0 || !isIdentChar(body[i-1])):
			ident := leadingIdent(body[i:])
			if v, ok := subst[ident]; ok {
				b.WriteString(v)
			} else {
				b.WriteString(ident)
			}
			i += len(ident)
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}
