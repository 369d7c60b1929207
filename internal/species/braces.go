package species

// TopLevelBraces returns every balanced {...} substring that starts at
// nesting depth 0, in source order. Nested blocks stay inside their parent,
// stray closing braces are ignored and an unterminated block is dropped.
func TopLevelBraces(text string) []string {
	var blocks []string
	depth := 0
	start := -1
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '"':
			i = skipString(text, i)
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				blocks = append(blocks, text[start:i+1])
				start = -1
			}
		}
	}
	return blocks
}
