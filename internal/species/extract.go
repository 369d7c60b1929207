package species

import (
	"path/filepath"
	"regexp"
	"strings"

	"dexsheet/internal/textutil"
)

// UnknownGeneration is used when the file name carries no gen_<n> tag.
const UnknownGeneration = "Unknown"

var (
	entryPattern       = regexp.MustCompile(`\[(SPECIES_\w+)\]`)
	generationPattern  = regexp.MustCompile(`gen_(\d+)`)
	speciesNamePattern = regexp.MustCompile(`\.speciesName\s*=\s*_\("([^"]+)"\)`)
	typesPattern       = regexp.MustCompile(`\.types\s*=\s*MON_TYPES\(([^)]*)\)`)
	updatedAbilities   = regexp.MustCompile(`(?s)#if P_UPDATED_ABILITIES.*?\.abilities\s*=\s*\{(.*?)\}.*?#else`)
	plainAbilities     = regexp.MustCompile(`(?s)\.abilities\s*=\s*\{(.*?)\}`)
	evolutionsPattern  = regexp.MustCompile(`\.evolutions\s*=\s*EVOLUTION\s*\(`)
)

// statFields maps each base stat to the initializer field holding it.
var statFields = []struct {
	pattern *regexp.Regexp
	set     func(*Species, int)
}{
	{statPattern("baseHP"), func(s *Species, v int) { s.HP = v }},
	{statPattern("baseAttack"), func(s *Species, v int) { s.Attack = v }},
	{statPattern("baseDefense"), func(s *Species, v int) { s.Defense = v }},
	{statPattern("baseSpeed"), func(s *Species, v int) { s.Speed = v }},
	{statPattern("baseSpAttack"), func(s *Species, v int) { s.SpAttack = v }},
	{statPattern("baseSpDefense"), func(s *Species, v int) { s.SpDefense = v }},
}

func statPattern(field string) *regexp.Regexp {
	return regexp.MustCompile(`\.` + field + `\b\s*=\s*([^,\n}]*)`)
}

// GenerationFromFilename extracts the generation number from names like
// "gen_3_families.h".
func GenerationFromFilename(name string) string {
	if m := generationPattern.FindStringSubmatch(filepath.Base(name)); m != nil {
		return m[1]
	}
	return UnknownGeneration
}

// ExtractFile extracts one Species per species-enum entry declared in
// content. Entries whose data block cannot be located are listed in
// FileResult.Skipped.
func ExtractFile(filename, content string) *FileResult {
	result := &FileResult{
		File:       filename,
		Generation: GenerationFromFilename(filename),
	}

	defines := NewDefineTable(content)
	locator := NewLocator(defines)
	resolver := NewResolver(defines)

	locs := entryPattern.FindAllStringSubmatchIndex(content, -1)
	for i, loc := range locs {
		enum := content[loc[2]:loc[3]]
		end := len(content)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}

		block, ok := locator.Locate(content[loc[1]:end])
		if !ok {
			result.Skipped = append(result.Skipped, enum)
			continue
		}

		sp := extractSpecies(enum, block, resolver)
		sp.Generation = result.Generation
		result.Species = append(result.Species, sp)
	}

	return result
}

func extractSpecies(enum, block string, resolver *Resolver) Species {
	sp := Species{Enum: enum}

	if m := speciesNamePattern.FindStringSubmatch(block); m != nil {
		sp.Name = m[1]
		sp.Form = formSuffix(enum, sp.Name)
	}

	for _, f := range statFields {
		if m := f.pattern.FindStringSubmatch(block); m != nil {
			f.set(&sp, resolver.Value(m[1]))
		}
	}
	sp.BST = sp.HP + sp.Attack + sp.Defense + sp.Speed + sp.SpAttack + sp.SpDefense

	if m := typesPattern.FindStringSubmatch(block); m != nil {
		types := cleanList(m[1], "TYPE_")
		sp.Types = strings.Join(types, ", ")
		sp.Type1, sp.Type2 = slot(types, 0), slot(types, 1)
	}

	if abilities, ok := abilityList(block); ok {
		slots := make([]string, 0, len(abilities))
		var named []string
		for _, a := range abilities {
			if a == "ABILITY_NONE" {
				slots = append(slots, "")
				continue
			}
			name := textutil.CleanConstant(a, "ABILITY_")
			slots = append(slots, name)
			named = append(named, name)
		}
		sp.Abilities = strings.Join(named, ", ")
		sp.Ability1, sp.Ability2, sp.HiddenAbility = slot(slots, 0), slot(slots, 1), slot(slots, 2)
	}

	if expr := evolutionExpr(block); expr != "" {
		sp.EvolutionSteps, sp.Evolutions = SimplifyEvolutions(expr)
	}

	return sp
}

// formSuffix is what remains of the enum once the base name derived from the
// display name is removed: SPECIES_RAICHU_ALOLA with "Raichu" gives "Alola".
func formSuffix(enum, name string) string {
	base := strings.ToUpper(name)
	base = strings.NewReplacer("-", "_", " ", "_", "'", "", ".", "").Replace(base)

	raw := strings.Replace(enum, "SPECIES_", "", 1)
	if base != "" {
		raw = strings.Replace(raw, base, "", 1)
	}
	raw = strings.Trim(raw, "_")
	return textutil.TitleCase(strings.ReplaceAll(raw, "_", " "))
}

// abilityList prefers the updated-abilities branch of a conditional block.
func abilityList(block string) ([]string, bool) {
	m := updatedAbilities.FindStringSubmatch(block)
	if m == nil {
		m = plainAbilities.FindStringSubmatch(block)
	}
	if m == nil {
		return nil, false
	}

	var out []string
	for _, a := range strings.Split(m[1], ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out, len(out) > 0
}

// evolutionExpr returns the parenthesised argument list of the block's
// EVOLUTION(...) call.
func evolutionExpr(block string) string {
	loc := evolutionsPattern.FindStringIndex(block)
	if loc == nil {
		return ""
	}
	open := loc[1] - 1
	end := matchingClose(block, open, '(', ')')
	if end < 0 {
		return block[open:]
	}
	return block[open : end+1]
}

func cleanList(s, prefix string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		out = append(out, textutil.CleanConstant(strings.TrimSpace(v), prefix))
	}
	return out
}

func slot(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
