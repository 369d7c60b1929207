package roster

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIVs parses "31 HP / 0 Atk / 31 Def / 31 SpA / 31 SpD / 31 Spe".
// Values are taken positionally; the stat labels are not checked.
func ParseIVs(s string) (IVs, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 6 {
		return IVs{}, fmt.Errorf("%w: expected 6 stat tokens, got %d in %q", ErrMalformedIVs, len(parts), s)
	}

	var values [6]int
	for i, part := range parts {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			return IVs{}, fmt.Errorf("%w: empty stat token %d in %q", ErrMalformedIVs, i+1, s)
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return IVs{}, fmt.Errorf("%w: stat token %d %q is not a number", ErrMalformedIVs, i+1, fields[0])
		}
		values[i] = n
	}

	return IVs{
		HP:  values[0],
		Atk: values[1],
		Def: values[2],
		SpA: values[3],
		SpD: values[4],
		Spe: values[5],
	}, nil
}
