package roster

import (
	"fmt"
	"io"
	"os"
	"strings"

	"dexsheet/internal/textutil"
)

const (
	// EndSentinel stops parsing; anything after it is ignored.
	EndSentinel = "REGULAR TRAINERS END"
	// SectionMarker opens a trainer section ("=== TRAINER_FOO ===").
	SectionMarker = "=== TRAINER_"
)

// Header and field labels recognised in the roster text.
const (
	labelName     = "Name:"
	labelClass    = "Class:"
	labelAbility  = "Ability:"
	labelLevel    = "Level:"
	labelTeraType = "Tera Type:"
	labelStatus   = "Status:"
	labelNature   = "Nature:"
	labelIVs      = "IVs:"
	moveBullet    = "- "
)

type state int

const (
	stateIdle state = iota
	stateCreature
)

// Options tunes roster parsing.
type Options struct {
	// DropTrailing keeps the legacy behaviour where the trainer being built
	// when input ends (or the sentinel is hit) is never filed, along with
	// any creature block that was not closed by a blank line.
	DropTrailing bool
}

// Parser rebuilds trainers and their parties from roster text.
type Parser struct {
	opts Options
}

// NewParser creates a roster parser.
func NewParser(opts Options) *Parser {
	return &Parser{opts: opts}
}

// ParseFile reads and parses a roster file.
func (p *Parser) ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster file: %w", err)
	}
	defer f.Close()

	return p.ParseReader(f)
}

// ParseReader parses roster text from r.
func (p *Parser) ParseReader(r io.Reader) (*Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return p.Parse(textutil.SplitLines(string(raw))), nil
}

// Parse runs the state machine over lines (without line terminators).
func (p *Parser) Parse(lines []string) *Result {
	r := &run{opts: p.opts, result: &Result{}}

	for i, line := range lines {
		r.lineNum = i + 1
		if !r.step(line) {
			break
		}
	}
	r.finish()

	return r.result
}

// run is the mutable accumulator of a single Parse call.
type run struct {
	opts   Options
	result *Result

	// filed holds pointers so that a trainer filed by a section marker still
	// receives creatures until the next header pair replaces it.
	filed        []*Trainer
	trainer      *Trainer
	trainerFiled bool
	creature     *Creature
	name         string

	state     state
	prevBlank bool
	nextIndex int
	lineNum   int
}

// step consumes one line and reports whether parsing should continue.
func (r *run) step(line string) bool {
	if strings.Contains(line, EndSentinel) {
		return false
	}

	trimmed := strings.TrimSpace(line)
	blank := trimmed == ""
	prevBlank := r.prevBlank
	r.prevBlank = blank
	section := strings.Contains(line, SectionMarker)

	switch {
	case strings.HasPrefix(trimmed, labelName):
		r.name = valueAfterColon(trimmed)
		return true
	case strings.HasPrefix(trimmed, labelClass):
		class := valueAfterColon(trimmed)
		r.trainer = &Trainer{Name: class + " " + r.name}
		r.trainerFiled = false
		return true
	case section && prevBlank:
		r.fileTrainer()
		r.state = stateIdle
		return true
	case !section && prevBlank && !blank && r.state != stateCreature:
		r.startCreature(trimmed)
		return true
	}

	if r.state == stateCreature {
		r.collect(trimmed, blank)
	}
	return true
}

func (r *run) startCreature(line string) {
	species, item, hasItem := strings.Cut(line, "@")
	c := &Creature{Species: strings.TrimSpace(species)}
	if hasItem {
		c.Item = ptr(strings.TrimSpace(item))
	}
	r.creature = c
	r.state = stateCreature
}

func (r *run) collect(trimmed string, blank bool) {
	if blank {
		r.closeCreature()
		return
	}

	c := r.creature
	switch {
	case strings.HasPrefix(trimmed, labelAbility):
		c.Ability = ptr(valueAfterColon(trimmed))
	case strings.HasPrefix(trimmed, labelLevel):
		c.Level = ptr(valueAfterColon(trimmed))
	case strings.HasPrefix(trimmed, labelTeraType):
		c.TeraType = ptr(valueAfterColon(trimmed))
	case strings.HasPrefix(trimmed, labelStatus):
		c.Status = ptr(valueAfterColon(trimmed))
	case strings.HasPrefix(trimmed, labelNature):
		c.Nature = ptr(valueAfterColon(trimmed))
	case strings.HasPrefix(trimmed, labelIVs):
		ivs, err := ParseIVs(valueAfterColon(trimmed))
		if err != nil {
			r.report(err)
			return
		}
		c.IVs = &ivs
	case strings.HasPrefix(trimmed, moveBullet):
		c.Moves = append(c.Moves, strings.TrimSpace(trimmed[1:]))
	}
}

// closeCreature files the open creature into the current trainer's party.
func (r *run) closeCreature() {
	c := r.creature
	r.creature = nil
	r.state = stateIdle
	if c == nil {
		return
	}

	if r.trainer == nil {
		r.result.Errors = append(r.result.Errors, &RecordError{
			Line:    r.lineNum,
			Species: c.Species,
			Err:     ErrOrphanCreature,
		})
		return
	}

	c.Index = r.nextIndex
	r.nextIndex++
	r.trainer.Party = append(r.trainer.Party, *c)
}

// fileTrainer appends the current trainer once; a second section marker
// without a new header pair does not file it again.
func (r *run) fileTrainer() {
	if r.trainer == nil || r.trainerFiled {
		return
	}
	r.filed = append(r.filed, r.trainer)
	r.trainerFiled = true
}

func (r *run) report(err error) {
	re := &RecordError{Line: r.lineNum, Err: err}
	if r.trainer != nil {
		re.Trainer = r.trainer.Name
	}
	if r.creature != nil {
		re.Species = r.creature.Species
	}
	r.result.Errors = append(r.result.Errors, re)
}

func (r *run) finish() {
	if !r.opts.DropTrailing {
		if r.state == stateCreature {
			r.closeCreature()
		}
		r.fileTrainer()
	}

	r.result.Trainers = make([]Trainer, 0, len(r.filed))
	for _, t := range r.filed {
		r.result.Trainers = append(r.result.Trainers, *t)
	}
}

// valueAfterColon returns the stripped text after the first ':'.
func valueAfterColon(s string) string {
	_, after, _ := strings.Cut(s, ":")
	return strings.TrimSpace(after)
}

func ptr(s string) *string { return &s }
