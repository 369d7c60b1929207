package species

import (
	"fmt"
	"regexp"
	"strings"

	"dexsheet/internal/textutil"
)

// Evolution is one simplified evolution step.
type Evolution struct {
	Method string
	Param  string
	// Target is the display name of the species evolved into.
	Target string
	// TargetEnum is the SPECIES_ constant of the target, matching Species.Enum.
	TargetEnum string
	// Description is the human-readable form, e.g. "Ivysaur (16)".
	Description string
}

// Markers recognised inside an evolution block.
const (
	conditionsMarker  = "CONDITIONS"
	friendshipMarker  = "IF_MIN_FRIENDSHIP"
	heldItemCondition = "IF_HELD_ITEM"
	heldItemMarker    = "HELD_ITEM"

	methodLevel      = "EVO_LEVEL"
	methodItem       = "EVO_ITEM"
	methodTrade      = "EVO_TRADE"
	methodTradeItem  = "EVO_TRADE_ITEM"
	methodFriendship = "EVO_FRIENDSHIP"
)

var itemPattern = regexp.MustCompile(`\bITEM_(\w+)`)

// ParseEvolution reads the method, param and target of one evolution block
// such as "{EVO_LEVEL, 16, SPECIES_IVYSAUR}" and describes it. ok is false
// when the block does not start with three word fields.
func ParseEvolution(block string) (Evolution, bool) {
	inner := strings.TrimSpace(block)
	inner = strings.TrimPrefix(inner, "{")
	inner = strings.TrimSuffix(inner, "}")

	fields := splitTopLevel(inner, ',')
	if len(fields) < 3 {
		return Evolution{}, false
	}
	method := strings.TrimSpace(fields[0])
	param := strings.TrimSpace(fields[1])
	target := leadingIdent(strings.TrimSpace(fields[2]))
	if !isWord(method) || !isWord(param) || target == "" {
		return Evolution{}, false
	}

	evo := Evolution{
		Method:     method,
		Param:      param,
		Target:     textutil.CleanConstant(target, "SPECIES_"),
		TargetEnum: target,
	}
	evo.Description = describe(evo, block)
	return evo, true
}

// describe applies the fixed rule precedence. Every parsed block matches
// exactly one branch; methods with no dedicated rule fall back to the bare
// target name.
func describe(e Evolution, block string) string {
	if strings.Contains(block, conditionsMarker) {
		switch {
		case strings.Contains(block, friendshipMarker):
			return e.Target + " (Happiness)"
		case strings.Contains(block, heldItemCondition) && isLevelMethod(e.Method):
			return fmt.Sprintf("%s (%s, Level Up)", e.Target, itemName(block, "Held Item"))
		default:
			return e.Target
		}
	}

	switch {
	case isLevelMethod(e.Method) && e.Param != "0":
		return fmt.Sprintf("%s (%s)", e.Target, e.Param)
	case isLevelMethod(e.Method):
		return e.Target
	case isItemMethod(e.Method):
		return fmt.Sprintf("%s (%s)", e.Target, textutil.CleanConstant(e.Param, "ITEM_"))
	case strings.HasPrefix(e.Method, methodTrade):
		if strings.Contains(block, heldItemMarker) || e.Method == methodTradeItem {
			if item := itemName(block, ""); item != "" {
				return fmt.Sprintf("%s (Trade, %s)", e.Target, item)
			}
		}
		return e.Target + " (Trade)"
	case strings.HasPrefix(e.Method, methodFriendship):
		return e.Target + " (Happiness)"
	default:
		return e.Target
	}
}

// SimplifyEvolutions splits an EVOLUTION(...) expression into its blocks and
// returns the parsed steps with their descriptions joined by ", ". Blocks
// that do not parse are skipped.
func SimplifyEvolutions(expr string) ([]Evolution, string) {
	if strings.TrimSpace(expr) == "" {
		return nil, ""
	}

	var steps []Evolution
	var descriptions []string
	for _, block := range TopLevelBraces(expr) {
		evo, ok := ParseEvolution(block)
		if !ok {
			continue
		}
		steps = append(steps, evo)
		descriptions = append(descriptions, evo.Description)
	}
	return steps, strings.Join(descriptions, ", ")
}

func isLevelMethod(m string) bool {
	return m == methodLevel || strings.HasPrefix(m, methodLevel+"_")
}

func isItemMethod(m string) bool {
	return m == methodItem || strings.HasPrefix(m, methodItem+"_")
}

// itemName returns the first ITEM_ constant in block as a display name.
func itemName(block, fallback string) string {
	m := itemPattern.FindStringSubmatch(block)
	if m == nil {
		return fallback
	}
	return textutil.CleanConstant(m[1], "")
}

func isWord(s string) bool {
	return s != "" && leadingIdent(s) == s
}
