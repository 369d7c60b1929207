package export

import (
	"encoding/json"
	"fmt"
	"io"

	"dexsheet/internal/roster"
)

// SetDexPrefix precedes the JSON document in the calc sets file.
const SetDexPrefix = "var SETDEX_SV ="

// CalcSet is one trainer's set for a species, as read by the damage calc.
type CalcSet struct {
	Level    *string     `json:"level"`
	IVs      *roster.IVs `json:"ivs"`
	Item     *string     `json:"item"`
	Ability  *string     `json:"ability"`
	Nature   *string     `json:"nature"`
	TeraType *string     `json:"teraType"`
	Status   *string     `json:"status"`
	Moves    []string    `json:"moves"`
	Index    int         `json:"index"`
}

// SetDex maps species to trainer name to set.
type SetDex map[string]map[string]CalcSet

// BuildSetDex groups every creature by species and trainer. When a trainer
// has the same species twice, the later creature wins.
func BuildSetDex(trainers []roster.Trainer) SetDex {
	dex := make(SetDex)
	for _, t := range trainers {
		for _, c := range t.Party {
			sets, ok := dex[c.Species]
			if !ok {
				sets = make(map[string]CalcSet)
				dex[c.Species] = sets
			}
			sets[t.Name] = newCalcSet(c)
		}
	}
	return dex
}

func newCalcSet(c roster.Creature) CalcSet {
	moves := c.Moves
	if moves == nil {
		moves = []string{}
	}
	return CalcSet{
		Level:    c.Level,
		IVs:      c.IVs,
		Item:     c.Item,
		Ability:  c.Ability,
		Nature:   c.Nature,
		TeraType: c.TeraType,
		Status:   c.Status,
		Moves:    moves,
		Index:    c.Index,
	}
}

// RenderCalcSets writes the SetDex as a JavaScript assignment.
func RenderCalcSets(w io.Writer, dex SetDex) error {
	data, err := json.Marshal(dex)
	if err != nil {
		return fmt.Errorf("marshal calc sets: %w", err)
	}
	if _, err := io.WriteString(w, SetDexPrefix); err != nil {
		return fmt.Errorf("write calc sets: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write calc sets: %w", err)
	}
	return nil
}

// WriteCalcSets builds the SetDex for trainers and writes it to path.
func WriteCalcSets(path string, trainers []roster.Trainer) error {
	return writeFile(path, func(w io.Writer) error {
		return RenderCalcSets(w, BuildSetDex(trainers))
	})
}
