package species

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Evolution Simplifier:
// - Each rule of the precedence produces its documented description
// - Targets lose the SPECIES_ prefix and are title-cased
// - Blocks without three leading word fields are skipped
// - Descriptions of several blocks join with ", " in source order
// - The same block always yields the same description

func TestParseEvolution_Rules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		block string
		want  string
	}{
		{"level", "{EVO_LEVEL, 16, SPECIES_FOO}", "Foo (16)"},
		{"level zero", "{EVO_LEVEL, 0, SPECIES_FOO}", "Foo"},
		{"friendship condition", "{EVO_LEVEL, 0, SPECIES_CROBAT, CONDITIONS({IF_MIN_FRIENDSHIP, FRIENDSHIP_EVO_THRESHOLD})}", "Crobat (Happiness)"},
		{"held item level up", "{EVO_LEVEL, 0, SPECIES_WEAVILE, CONDITIONS({IF_HELD_ITEM, ITEM_RAZOR_CLAW}, {IF_TIME, TIME_NIGHT})}", "Weavile (Razor Claw, Level Up)"},
		{"held item condition without item constant", "{EVO_LEVEL, 0, SPECIES_FOO, CONDITIONS({IF_HELD_ITEM, SOMETHING})}", "Foo (Held Item, Level Up)"},
		{"unrecognised condition", "{EVO_ITEM, ITEM_THUNDER_STONE, SPECIES_RAICHU_ALOLA, CONDITIONS({IF_REGION, REGION_ALOLA})}", "Raichu Alola"},
		{"held item condition on trade", "{EVO_TRADE, 0, SPECIES_STEELIX, CONDITIONS({IF_HELD_ITEM, ITEM_METAL_COAT})}", "Steelix"},
		{"item", "{EVO_ITEM, ITEM_FIRE_STONE, SPECIES_ARCANINE}", "Arcanine (Fire Stone)"},
		{"trade", "{EVO_TRADE, 0, SPECIES_GENGAR}", "Gengar (Trade)"},
		{"trade with held item", "{EVO_TRADE_ITEM, ITEM_KINGS_ROCK, SPECIES_POLITOED}", "Politoed (Trade, Kings Rock)"},
		{"legacy friendship method", "{EVO_FRIENDSHIP, 0, SPECIES_GOLBAT_X}", "Golbat X (Happiness)"},
		{"other method", "{EVO_MOVE, MOVE_ANCIENT_POWER, SPECIES_YANMEGA}", "Yanmega"},
		{"multi word target", "{EVO_LEVEL, 30, SPECIES_MR_MIME_GALAR}", "Mr Mime Galar (30)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evo, ok := ParseEvolution(tt.block)
			require.True(t, ok)
			assert.Equal(t, tt.want, evo.Description)

			again, _ := ParseEvolution(tt.block)
			assert.Equal(t, evo, again)
		})
	}
}

func TestParseEvolution_Fields(t *testing.T) {
	t.Parallel()

	evo, ok := ParseEvolution("{ EVO_LEVEL ,  16 , SPECIES_IVYSAUR }")
	require.True(t, ok)
	assert.Equal(t, Evolution{
		Method:      "EVO_LEVEL",
		Param:       "16",
		Target:      "Ivysaur",
		TargetEnum:  "SPECIES_IVYSAUR",
		Description: "Ivysaur (16)",
	}, evo)
}

func TestParseEvolution_Malformed(t *testing.T) {
	t.Parallel()

	for _, block := range []string{
		"{}",
		"{EVO_LEVEL, 16}",
		"{EVO_LEVEL, 16 + 1, SPECIES_FOO}",
		"{EVO_LEVEL, 16, }",
	} {
		_, ok := ParseEvolution(block)
		assert.False(t, ok, "block %q", block)
	}
}

func TestSimplifyEvolutions(t *testing.T) {
	t.Parallel()

	steps, desc := SimplifyEvolutions(`EVOLUTION({EVO_ITEM, ITEM_WATER_STONE, SPECIES_VAPOREON},
	                                          {EVO_BROKEN},
	                                          {EVO_LEVEL, 0, SPECIES_ESPEON, CONDITIONS({IF_MIN_FRIENDSHIP, FRIENDSHIP_EVO_THRESHOLD}, {IF_TIME, TIME_DAY})})`)

	require.Len(t, steps, 2)
	assert.Equal(t, "Vaporeon", steps[0].Target)
	assert.Equal(t, "Espeon", steps[1].Target)
	assert.Equal(t, "Vaporeon (Water Stone), Espeon (Happiness)", desc)

	steps, desc = SimplifyEvolutions("")
	assert.Nil(t, steps)
	assert.Equal(t, "", desc)
}
