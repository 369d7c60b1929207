package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"dexsheet/internal/species"
)

// SpeciesHeader is the column order of the species CSV.
var SpeciesHeader = []string{
	"Name", "Form", "HP", "Attack", "Defense", "Speed", "Sp Attack", "Sp Defense", "BST",
	"Types", "Type1", "Type2", "Abilities", "Ability1", "Ability2", "HiddenAbility",
	"Generation", "Evolutions",
}

// RenderSpeciesCSV writes the header and one row per record in order.
func RenderSpeciesCSV(w io.Writer, records []species.Species) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SpeciesHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, sp := range records {
		if err := cw.Write(speciesRow(sp)); err != nil {
			return fmt.Errorf("write csv row %s: %w", sp.Enum, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteSpeciesCSV writes records to path.
func WriteSpeciesCSV(path string, records []species.Species) error {
	return writeFile(path, func(w io.Writer) error {
		return RenderSpeciesCSV(w, records)
	})
}

func speciesRow(sp species.Species) []string {
	return []string{
		sp.Name,
		sp.Form,
		strconv.Itoa(sp.HP),
		strconv.Itoa(sp.Attack),
		strconv.Itoa(sp.Defense),
		strconv.Itoa(sp.Speed),
		strconv.Itoa(sp.SpAttack),
		strconv.Itoa(sp.SpDefense),
		strconv.Itoa(sp.BST),
		sp.Types,
		sp.Type1,
		sp.Type2,
		sp.Abilities,
		sp.Ability1,
		sp.Ability2,
		sp.HiddenAbility,
		sp.Generation,
		sp.Evolutions,
	}
}
