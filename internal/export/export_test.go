package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dexsheet/internal/roster"
	"dexsheet/internal/species"
)

// Test Plan for exporters:
// - Mastersheet renders one section per trainer with two-space line endings
// - Suffix appends tera type before status, each only when set
// - Unset level/item/ability/nature render as "None"
// - SetDex groups by species then trainer; a repeated species keeps the later creature
// - Unset optionals serialise as null and an empty move list as []
// - Calc sets file starts with the SETDEX prefix followed by JSON
// - Species CSV has the fixed header and one row per record
// - Writers create missing parent directories

func s(v string) *string { return &v }

func sampleTrainers() []roster.Trainer {
	return []roster.Trainer{
		{
			Name: "Hiker Ann",
			Party: []roster.Creature{
				{
					Species: "Geodude", Item: s("Hard Stone"), Level: s("21"),
					Ability: s("Sturdy"), Nature: s("Adamant"),
					IVs:   &roster.IVs{HP: 31, Atk: 0, Def: 31, SpA: 31, SpD: 31, Spe: 31},
					Moves: []string{"Tackle", "Rock Throw"}, Index: 0,
				},
				{
					Species: "Onix", Level: s("22"), Ability: s("Sturdy"), Nature: s("Brave"),
					TeraType: s("Rock"), Status: s("Burn"),
					Moves: []string{"Bind"}, Index: 1,
				},
			},
		},
		{
			Name: "Youngster Bob",
			Party: []roster.Creature{
				{Species: "Rattata", Level: s("5"), Index: 2},
				{Species: "Geodude", Level: s("6"), Status: s("Sleep"), Index: 3},
			},
		},
	}
}

func TestRenderMastersheet(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderMastersheet(&buf, sampleTrainers()))

	want := "## Hiker Ann\n" +
		"Geodude Lv.21 @Hard Stone: Tackle, Rock Throw [Sturdy|Adamant]  \n" +
		"Onix Lv.22 @None: Bind [Sturdy|Brave|Rock|Burn]  \n" +
		"\n" +
		"## Youngster Bob\n" +
		"Rattata Lv.5 @None:  [None|None]  \n" +
		"Geodude Lv.6 @None:  [None|None|Sleep]  \n" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestBuildSetDex(t *testing.T) {
	t.Parallel()

	trainers := sampleTrainers()
	trainers[0].Party = append(trainers[0].Party, roster.Creature{Species: "Geodude", Level: s("30"), Index: 9})

	dex := BuildSetDex(trainers)

	require.Len(t, dex, 3)
	require.Len(t, dex["Geodude"], 2)
	assert.Equal(t, "30", *dex["Geodude"]["Hiker Ann"].Level, "later creature wins")
	assert.Equal(t, 9, dex["Geodude"]["Hiker Ann"].Index)
	assert.Equal(t, "6", *dex["Geodude"]["Youngster Bob"].Level)
	assert.Equal(t, 1, dex["Onix"]["Hiker Ann"].Index)
}

func TestRenderCalcSets(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderCalcSets(&buf, BuildSetDex(sampleTrainers()[:1])))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, SetDexPrefix))

	var doc map[string]map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(out, SetDexPrefix)), &doc))

	geodude := doc["Geodude"]["Hiker Ann"]
	assert.Equal(t, "21", geodude["level"])
	assert.Equal(t, "Hard Stone", geodude["item"])
	assert.Nil(t, geodude["teraType"])
	assert.Contains(t, geodude, "status")
	assert.Equal(t, map[string]any{"hp": 31.0, "at": 0.0, "df": 31.0, "sa": 31.0, "sd": 31.0, "sp": 31.0}, geodude["ivs"])
	assert.Equal(t, []any{"Tackle", "Rock Throw"}, geodude["moves"])
	assert.Equal(t, 0.0, geodude["index"])

	onix := doc["Onix"]["Hiker Ann"]
	assert.Nil(t, onix["item"])
	assert.Nil(t, onix["ivs"])
	assert.Equal(t, "Rock", onix["teraType"])
}

func TestRenderCalcSets_EmptyMoves(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	dex := BuildSetDex([]roster.Trainer{{Name: "A", Party: []roster.Creature{{Species: "Mew"}}}})
	require.NoError(t, RenderCalcSets(&buf, dex))
	assert.Contains(t, buf.String(), `"moves":[]`)
}

func TestRenderSpeciesCSV(t *testing.T) {
	t.Parallel()

	records := []species.Species{
		{
			Name: "Bulbasaur", HP: 45, Attack: 49, Defense: 49, Speed: 45, SpAttack: 65, SpDefense: 65, BST: 318,
			Types: "Grass, Poison", Type1: "Grass", Type2: "Poison",
			Abilities: "Overgrow, Chlorophyll", Ability1: "Overgrow", HiddenAbility: "Chlorophyll",
			Generation: "1", Evolutions: "Ivysaur (16)",
		},
		{Name: "Raichu", Form: "Alola", Generation: "1"},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderSpeciesCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, SpeciesHeader, rows[0])
	assert.Equal(t, []string{
		"Bulbasaur", "", "45", "49", "49", "45", "65", "65", "318",
		"Grass, Poison", "Grass", "Poison", "Overgrow, Chlorophyll", "Overgrow", "", "Chlorophyll",
		"1", "Ivysaur (16)",
	}, rows[1])
	assert.Equal(t, "Alola", rows[2][1])
}

func TestWriters_CreateParentDirectories(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out", "nested")

	md := filepath.Join(dir, "mastersheet.md")
	require.NoError(t, WriteMastersheet(md, sampleTrainers()))
	data, err := os.ReadFile(md)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "## Hiker Ann\n"))

	js := filepath.Join(dir, "gen9.js")
	require.NoError(t, WriteCalcSets(js, sampleTrainers()))
	data, err = os.ReadFile(js)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), SetDexPrefix+"{"))

	csvPath := filepath.Join(dir, "species.csv")
	require.NoError(t, WriteSpeciesCSV(csvPath, []species.Species{{Name: "Mew"}}))
	data, err = os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}
