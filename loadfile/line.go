package loadfile

import (
	"strings"

	"github.com/jyane/marscore/emuerr"
	"github.com/jyane/marscore/redcode"
)

// lineKind distinguishes the six productions a loadfile line can reduce to.
type lineKind int

const (
	kindEmpty lineKind = iota
	kindComment
	kindInstr
	kindOrg
	kindPin
	kindEnd
)

// parsedLine is the result of reducing one line of loadfile text.
type parsedLine struct {
	kind   lineKind
	instr  redcode.RelaxedCompleteInstruction
	number int64
	hasNum bool // for END, whether a start value was given
}

// parseOperand consumes an optional addressing-mode symbol (defaulting to
// Direct when omitted) followed by a signed number.
func parseOperand(s string) (redcode.AddrMode, int64, string, error) {
	s = skipSpace(s)
	mode, rest, ok := parseAddrMode(s)
	if !ok {
		mode = redcode.Direct
		rest = s
	}
	rest = skipSpace(rest)
	n, rest, err := parseNumber(rest)
	if err != nil {
		return 0, 0, s, err
	}
	return mode, n, rest, nil
}

// parseInstr94 parses "opcode.modifier mode number, mode number".
func parseInstr94(s string) (parsedLine, string, error) {
	opcode, rest, err := parseOpcode(s)
	if err != nil {
		return parsedLine{}, s, err
	}
	rest = skipSpace(rest)
	if !strings.HasPrefix(rest, ".") {
		return parsedLine{}, s, emuerr.NewInvalidParam("expected '.' after opcode in %q", s)
	}
	rest = rest[1:]
	modifier, rest, err := parseModifier(rest)
	if err != nil {
		return parsedLine{}, s, err
	}
	aMode, aNum, rest, err := parseOperand(rest)
	if err != nil {
		return parsedLine{}, s, err
	}
	rest = skipSpace(rest)
	if !strings.HasPrefix(rest, ",") {
		return parsedLine{}, s, emuerr.NewInvalidParam("expected ',' between operands in %q", s)
	}
	rest = rest[1:]
	bMode, bNum, rest, err := parseOperand(rest)
	if err != nil {
		return parsedLine{}, s, err
	}
	instr := redcode.RelaxedCompleteInstruction{
		Instr: redcode.Instruction{
			Opcode: opcode, Modifier: modifier, AMode: aMode, BMode: bMode,
		},
		AField: aNum,
		BField: bNum,
	}
	return parsedLine{kind: kindInstr, instr: instr}, rest, nil
}

// parseInstr88 parses "opcode mode number, mode number" and synthesizes the
// modifier from the opcode/mode table.
func parseInstr88(s string) (parsedLine, string, error) {
	opcode, rest, err := parseOpcode(s)
	if err != nil {
		return parsedLine{}, s, err
	}
	aMode, aNum, rest, err := parseOperand(rest)
	if err != nil {
		return parsedLine{}, s, err
	}
	rest = skipSpace(rest)
	if !strings.HasPrefix(rest, ",") {
		return parsedLine{}, s, emuerr.NewInvalidParam("expected ',' between operands in %q", s)
	}
	rest = rest[1:]
	bMode, bNum, rest, err := parseOperand(rest)
	if err != nil {
		return parsedLine{}, s, err
	}
	modifier := redcode.DefaultModifier(opcode, aMode, bMode)
	instr := redcode.RelaxedCompleteInstruction{
		Instr: redcode.Instruction{
			Opcode: opcode, Modifier: modifier, AMode: aMode, BMode: bMode,
		},
		AField: aNum,
		BField: bNum,
	}
	return parsedLine{kind: kindInstr, instr: instr}, rest, nil
}

func parseOrg(s string) (parsedLine, string, error) {
	rest := skipSpace(s)
	n, rest, err := parseNumber(rest)
	if err != nil {
		return parsedLine{}, s, err
	}
	return parsedLine{kind: kindOrg, number: n}, rest, nil
}

func parsePin(s string) (parsedLine, string, error) {
	rest := skipSpace(s)
	n, rest, err := parseNumber(rest)
	if err != nil {
		return parsedLine{}, s, err
	}
	return parsedLine{kind: kindPin, number: n}, rest, nil
}

func parseEnd(s string) (parsedLine, string, error) {
	rest := skipSpace(s)
	n, after, err := parseNumber(rest)
	if err != nil {
		// END with no start value is valid; leave the line untouched.
		return parsedLine{kind: kindEnd}, rest, nil
	}
	return parsedLine{kind: kindEnd, number: n, hasNum: true}, after, nil
}

// parseLine reduces one line of loadfile text to a parsedLine, trying
// productions in this order: empty, comment, org, pin, end, and then the
// instruction form of the selected dialect (instr88 when opts.OmitModifiers
// is set, instr94 otherwise). The caller is responsible for presenting one
// line at a time with its trailing EOL already stripped.
func parseLine(raw string, opts Options) (parsedLine, error) {
	s := skipSpace(raw)
	trimmed := strings.TrimRight(s, " \t")
	if trimmed == "" {
		return parsedLine{kind: kindEmpty}, nil
	}
	if strings.HasPrefix(trimmed, ";") {
		return parsedLine{kind: kindComment}, nil
	}
	if hasPrefixFold(trimmed, "ORG") {
		line, rest, err := parseOrg(trimmed[len("ORG"):])
		if err == nil && strings.TrimSpace(rest) == "" {
			return line, nil
		}
	}
	if hasPrefixFold(trimmed, "PIN") {
		line, rest, err := parsePin(trimmed[len("PIN"):])
		if err == nil && strings.TrimSpace(rest) == "" {
			return line, nil
		}
	}
	if hasPrefixFold(trimmed, "END") {
		line, rest, err := parseEnd(trimmed[len("END"):])
		if err == nil && strings.TrimSpace(rest) == "" {
			return line, nil
		}
	}
	if opts.OmitModifiers {
		if line, rest, err := parseInstr88(trimmed); err == nil && strings.TrimSpace(rest) == "" {
			return line, nil
		}
	} else if line, rest, err := parseInstr94(trimmed); err == nil && strings.TrimSpace(rest) == "" {
		return line, nil
	}
	return parsedLine{}, emuerr.NewInvalidParam("unrecognized loadfile line %q", raw)
}
