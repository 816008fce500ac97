// Package loadfile parses Redcode loadfiles — the textual '88 and '94
// dialects of warrior source — into a relaxed, unnormalized warrior that the
// caller later binds to a specific core size.
package loadfile

import (
	"strconv"
	"strings"

	"github.com/jyane/marscore/emuerr"
	"github.com/jyane/marscore/redcode"
)

var opcodeByName = map[string]redcode.Opcode{
	"DAT": redcode.Dat, "MOV": redcode.Mov, "ADD": redcode.Add,
	"SUB": redcode.Sub, "MUL": redcode.Mul, "DIV": redcode.Div,
	"MOD": redcode.Mod, "JMP": redcode.Jmp, "JMZ": redcode.Jmz,
	"JMN": redcode.Jmn, "DJN": redcode.Djn, "SPL": redcode.Spl,
	"SLT": redcode.Slt, "CMP": redcode.Cmp, "SEQ": redcode.Seq,
	"SNE": redcode.Sne, "NOP": redcode.Nop, "LDP": redcode.Ldp,
	"STP": redcode.Stp,
}

var modifierByName = map[string]redcode.Modifier{
	"A": redcode.A, "B": redcode.B, "AB": redcode.AB, "BA": redcode.BA,
	"F": redcode.F, "X": redcode.X, "I": redcode.I,
}

var addrModeBySymbol = map[byte]redcode.AddrMode{
	'#': redcode.Immediate, '$': redcode.Direct,
	'*': redcode.IndirectA, '@': redcode.IndirectB,
	'{': redcode.PredecA, '<': redcode.PredecB,
	'}': redcode.PostincA, '>': redcode.PostincB,
}

// parseNumber consumes a signed decimal integer from the front of s and
// returns its value along with the unconsumed remainder. Exactly one
// leading '+' or '-' is allowed; a bare sign or no digits is an error.
func parseNumber(s string) (int64, string, error) {
	rest := s
	sign := int64(1)
	if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
		if rest[0] == '-' {
			sign = -1
		}
		rest = rest[1:]
	}
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, s, emuerr.NewInvalidParam("expected a number at %q", s)
	}
	v, err := strconv.ParseInt(rest[:end], 10, 64)
	if err != nil {
		return 0, s, emuerr.NewInvalidParam("malformed number %q: %v", rest[:end], err)
	}
	return sign * v, rest[end:], nil
}

// parseAddrMode consumes one addressing-mode symbol. Direct ($) may be
// omitted; its absence is reported via ok == false rather than an error, so
// the caller can fall back to the Direct default.
func parseAddrMode(s string) (mode redcode.AddrMode, rest string, ok bool) {
	if len(s) == 0 {
		return 0, s, false
	}
	m, found := addrModeBySymbol[s[0]]
	if !found {
		return 0, s, false
	}
	return m, s[1:], true
}

// parseOpcode consumes a case-insensitive opcode keyword.
func parseOpcode(s string) (redcode.Opcode, string, error) {
	for name, op := range opcodeByName {
		if hasPrefixFold(s, name) {
			return op, s[len(name):], nil
		}
	}
	return 0, s, emuerr.NewInvalidParam("expected an opcode at %q", s)
}

// parseModifier consumes a case-insensitive modifier keyword. Two-letter
// names (AB, BA) are tried before single-letter ones so "AB" isn't
// swallowed as "A" followed by a stray "B".
var modifierNamesLongestFirst = []string{"AB", "BA", "A", "B", "F", "X", "I"}

func parseModifier(s string) (redcode.Modifier, string, error) {
	for _, name := range modifierNamesLongestFirst {
		if hasPrefixFold(s, name) {
			return modifierByName[name], s[len(name):], nil
		}
	}
	return 0, s, emuerr.NewInvalidParam("expected a modifier at %q", s)
}

func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	return strings.EqualFold(s[:len(prefix)], prefix)
}

func skipSpace(s string) string {
	return strings.TrimLeft(s, " \t")
}
