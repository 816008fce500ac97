package loadfile

import (
	"strings"

	"github.com/jyane/marscore/emuerr"
	"github.com/jyane/marscore/redcode"
)

// Options controls dialect and strictness for Parse and ParseInstr.
type Options struct {
	// OmitModifiers selects the '88 dialect: instructions carry no explicit
	// modifier, and one is synthesized from (opcode, a_mode, b_mode).
	OmitModifiers bool
	// DisallowEmptyWarrior rejects an input that yields zero instructions.
	DisallowEmptyWarrior bool
	// MustConsumeAll rejects trailing non-whitespace content after the
	// first terminating END line.
	MustConsumeAll bool
}

// Parse reduces the full text of a loadfile to a RelaxedWarrior: its
// instructions in core order, its start offset, and its PSPACE pin, if any.
// Field values and the start offset are left unnormalized; the caller binds
// them to a specific core size via RelaxedWarrior.Normalize.
func Parse(text string, opts Options) (redcode.RelaxedWarrior, error) {
	lines := strings.Split(text, "\n")

	var code []redcode.RelaxedCompleteInstruction
	var org int64
	haveOrg := false
	var pin *int64
	ended := false
	endLineIdx := -1

	for i, raw := range lines {
		raw = strings.TrimRight(raw, "\r")
		if ended {
			endLineIdx = i
			break
		}
		line, err := parseLine(raw, opts)
		if err != nil {
			return redcode.RelaxedWarrior{}, emuerr.NewInvalidParam("line %d: %v", i+1, err)
		}
		switch line.kind {
		case kindEmpty, kindComment:
		case kindInstr:
			code = append(code, line.instr)
		case kindOrg:
			org = line.number
			haveOrg = true
		case kindPin:
			p := line.number
			pin = &p
		case kindEnd:
			if line.hasNum {
				org = line.number
				haveOrg = true
			}
			ended = true
		}
	}

	if opts.MustConsumeAll && endLineIdx >= 0 {
		for _, raw := range lines[endLineIdx:] {
			if strings.TrimSpace(raw) != "" {
				return redcode.RelaxedWarrior{}, emuerr.NewInvalidParam(
					"trailing content after END at line %d", endLineIdx+1)
			}
		}
	}

	if opts.DisallowEmptyWarrior && len(code) == 0 {
		return redcode.RelaxedWarrior{}, emuerr.NewInvalidParam("loadfile produced no instructions")
	}

	start := int64(0)
	if haveOrg {
		start = org
	}

	return redcode.RelaxedWarrior{Code: code, Start: start, Pin: pin}, nil
}

// ParseInstr skips leading empty/comment lines, parses exactly the next line
// as a single instruction, and ignores anything after it. It rejects any
// other production (ORG, PIN, END) even though parseLine would accept them.
func ParseInstr(text string, opts Options) (redcode.RelaxedCompleteInstruction, error) {
	for _, raw := range strings.Split(text, "\n") {
		line, err := parseLine(strings.TrimRight(raw, "\r"), opts)
		if err != nil {
			return redcode.RelaxedCompleteInstruction{}, err
		}
		switch line.kind {
		case kindEmpty, kindComment:
			continue
		case kindInstr:
			return line.instr, nil
		default:
			return redcode.RelaxedCompleteInstruction{}, emuerr.NewInvalidParam("expected an instruction, got %q", raw)
		}
	}
	return redcode.RelaxedCompleteInstruction{}, emuerr.NewInvalidParam("no instruction found in %q", text)
}
