package species

import "strings"

// Species is one extracted species-enum entry.
type Species struct {
	// Enum is the SPECIES_ constant the entry was declared under.
	Enum string

	Name string
	Form string

	HP        int
	Attack    int
	Defense   int
	Speed     int
	SpAttack  int
	SpDefense int
	// BST is always the sum of the six base stats.
	BST int

	Type1 string
	Type2 string
	Types string

	Ability1      string
	Ability2      string
	HiddenAbility string
	Abilities     string

	Generation string

	// Evolutions is the comma-joined description of EvolutionSteps.
	Evolutions     string
	EvolutionSteps []Evolution
}

// Key identifies the species (and form) the way evolution targets name it,
// e.g. "Raichu Alola".
func (s Species) Key() string {
	return strings.TrimSpace(s.Name + " " + s.Form)
}

// StatVector returns the base stats in HP/Atk/Def/Spe/SpA/SpD order.
func (s Species) StatVector() []float32 {
	return []float32{
		float32(s.HP),
		float32(s.Attack),
		float32(s.Defense),
		float32(s.Speed),
		float32(s.SpAttack),
		float32(s.SpDefense),
	}
}

// FileResult is the outcome of extracting one header file.
type FileResult struct {
	File       string
	Generation string
	Species    []Species
	// Skipped lists species enums whose data block could not be located.
	Skipped []string
}
