package export

import (
	"fmt"
	"io"
	"strings"

	"dexsheet/internal/roster"
)

const unset = "None"

// RenderMastersheet writes one "## <trainer>" section per trainer with a line
// per party member:
//
//	Geodude Lv.21 @Hard Stone: Tackle, Rock Throw [Sturdy|Adamant]
//
// Each creature line ends in two spaces (a Markdown line break).
func RenderMastersheet(w io.Writer, trainers []roster.Trainer) error {
	for _, t := range trainers {
		if _, err := fmt.Fprintf(w, "## %s\n", t.Name); err != nil {
			return fmt.Errorf("write mastersheet: %w", err)
		}
		for _, c := range t.Party {
			_, err := fmt.Fprintf(w, "%s Lv.%s @%s: %s [%s]  \n",
				c.Species, orUnset(c.Level), orUnset(c.Item), strings.Join(c.Moves, ", "), suffix(c))
			if err != nil {
				return fmt.Errorf("write mastersheet: %w", err)
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("write mastersheet: %w", err)
		}
	}
	return nil
}

// WriteMastersheet renders the mastersheet to path.
func WriteMastersheet(path string, trainers []roster.Trainer) error {
	return writeFile(path, func(w io.Writer) error {
		return RenderMastersheet(w, trainers)
	})
}

// suffix is "ability|nature", extended by tera type then status when set.
func suffix(c roster.Creature) string {
	parts := []string{orUnset(c.Ability), orUnset(c.Nature)}
	if c.TeraType != nil {
		parts = append(parts, *c.TeraType)
	}
	if c.Status != nil {
		parts = append(parts, *c.Status)
	}
	return strings.Join(parts, "|")
}

func orUnset(s *string) string {
	if s == nil {
		return unset
	}
	return *s
}
