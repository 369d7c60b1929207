package roster

import (
	"errors"
	"fmt"
)

// IVs holds the six individual values of a creature in the fixed
// hp/at/df/sa/sd/sp order used by the calc export.
type IVs struct {
	HP  int `json:"hp"`
	Atk int `json:"at"`
	Def int `json:"df"`
	SpA int `json:"sa"`
	SpD int `json:"sd"`
	Spe int `json:"sp"`
}

// Creature is one party member read from a roster block.
// Optional fields stay nil when the source has no matching line.
type Creature struct {
	Species  string
	Item     *string
	Level    *string
	Ability  *string
	Nature   *string
	IVs      *IVs
	TeraType *string
	Status   *string
	// Index is the 0-based position of the creature across the whole roster.
	Index int
	Moves []string
}

// Trainer is a named party. Name is "<class> <personal name>".
type Trainer struct {
	Name  string
	Party []Creature
}

var (
	// ErrMalformedIVs is returned for an IVs line that is not six numeric stat tokens.
	ErrMalformedIVs = errors.New("malformed IVs")
	// ErrOrphanCreature is reported for a creature block seen before any trainer header.
	ErrOrphanCreature = errors.New("creature outside of a trainer")
)

// RecordError is a problem local to a single roster record. It never aborts the run.
type RecordError struct {
	// Line is the 1-based line number where the problem was found.
	Line    int
	Trainer string
	Species string
	Err     error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d (trainer %q, species %q): %v", e.Line, e.Trainer, e.Species, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Result holds everything produced by one roster parsing run.
type Result struct {
	Trainers []Trainer
	Errors   []*RecordError
}

// CreatureCount returns the number of creatures filed across all trainers.
func (r *Result) CreatureCount() int {
	n := 0
	for _, t := range r.Trainers {
		n += len(t.Party)
	}
	return n
}
