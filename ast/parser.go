package ast

import (
	"strconv"

	"github.com/Toplogic-Inc/log-surgeon-go/lserr"
	"github.com/Toplogic-Inc/log-surgeon-go/symbol"
)

// Parse parses pattern into an AST under this module's restricted regex
// dialect. Errors are *lserr.Error values whose Kind names the specific
// taxonomy entry from spec.md §7 (RegexParse, UnsupportedASTNode,
// NonASCIICharacter, NegatedClass, NonGreedyRepetition).
func Parse(pattern string) (Node, error) {
	p := &parser{pattern: pattern}
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.isEOF() {
		return nil, lserr.New(lserr.RegexParse, "unexpected %q at position %d", p.peek(), p.pos)
	}
	return node, nil
}

// parser is a recursive-descent parser over a regex pattern string,
// structured after the codecrafters-grep-go teacher's Parser
// (peek/advance/isEOF + parseExpression/parseQuantified/parseAtom), but
// restricted to this dialect's grammar and error taxonomy instead of
// accepting every stdlib-regex feature.
type parser struct {
	pattern string
	pos     int
}

func (p *parser) peek() byte {
	if p.pos >= len(p.pattern) {
		return 0
	}
	return p.pattern[p.pos]
}

func (p *parser) advance() byte {
	if p.pos >= len(p.pattern) {
		return 0
	}
	b := p.pattern[p.pos]
	p.pos++
	return b
}

func (p *parser) isEOF() bool {
	return p.pos >= len(p.pattern)
}

// parseExpression parses an alternation: concat ('|' concat)*.
func (p *parser) parseExpression() (Node, error) {
	var alts []Node
	for {
		concat, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		alts = append(alts, concat)
		if p.peek() != '|' {
			break
		}
		p.advance()
	}
	if len(alts) == 1 {
		return alts[0], nil
	}
	return Alternate{Subs: alts}, nil
}

// parseConcat parses a sequence of quantified atoms until '|', ')', or EOF.
func (p *parser) parseConcat() (Node, error) {
	var nodes []Node
	for !p.isEOF() && p.peek() != '|' && p.peek() != ')' {
		atom, err := p.parseQuantified()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, atom)
	}
	if len(nodes) == 0 {
		return nil, lserr.New(lserr.RegexParse, "empty alternative at position %d", p.pos)
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return Concat{Subs: nodes}, nil
}

// parseQuantified parses a single atom followed by an optional quantifier.
func (p *parser) parseQuantified() (Node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	switch p.peek() {
	case '*':
		p.advance()
		return p.rejectNonGreedy(Repeat{Sub: atom, Min: 0, Max: -1})
	case '+':
		p.advance()
		return p.rejectNonGreedy(Repeat{Sub: atom, Min: 1, Max: -1})
	case '?':
		p.advance()
		return p.rejectNonGreedy(Repeat{Sub: atom, Min: 0, Max: 1})
	case '{':
		return p.parseBraceRepeat(atom)
	default:
		return atom, nil
	}
}

// rejectNonGreedy checks for a trailing '?' making the quantifier just
// consumed lazy, which this dialect does not support (spec.md §1 Non-goals).
func (p *parser) rejectNonGreedy(rep Repeat) (Node, error) {
	if p.peek() == '?' {
		return nil, lserr.New(lserr.NonGreedyRepetition, "non-greedy quantifier at position %d", p.pos)
	}
	return rep, nil
}

// parseBraceRepeat parses the {m}, {m,}, or {m,n} forms following atom.
func (p *parser) parseBraceRepeat(atom Node) (Node, error) {
	start := p.pos
	p.advance() // consume '{'

	minStr := p.readDigits()
	if minStr == "" {
		p.pos = start
		return atom, nil // not actually a repetition, '{' is a literal elsewhere
	}

	minCount, err := strconv.Atoi(minStr)
	if err != nil {
		return nil, lserr.Wrap(lserr.RegexParse, err, "invalid repeat count at position %d", start)
	}

	maxCount := minCount
	if p.peek() == ',' {
		p.advance()
		maxStr := p.readDigits()
		if maxStr == "" {
			maxCount = -1
		} else {
			maxCount, err = strconv.Atoi(maxStr)
			if err != nil {
				return nil, lserr.Wrap(lserr.RegexParse, err, "invalid repeat count at position %d", start)
			}
		}
	}

	if p.peek() != '}' {
		return nil, lserr.New(lserr.RegexParse, "expected '}' at position %d", p.pos)
	}
	p.advance()

	if maxCount != -1 && minCount > maxCount {
		return nil, lserr.New(lserr.RegexParse, "invalid repeat range {%d,%d}", minCount, maxCount)
	}

	return p.rejectNonGreedy(Repeat{Sub: atom, Min: minCount, Max: maxCount})
}

func (p *parser) readDigits() string {
	start := p.pos
	for !p.isEOF() && p.peek() >= '0' && p.peek() <= '9' {
		p.advance()
	}
	return p.pattern[start:p.pos]
}

// parseAtom parses a single atom: literal, '.', escape, class, or group.
func (p *parser) parseAtom() (Node, error) {
	if p.isEOF() {
		return nil, lserr.New(lserr.RegexParse, "unexpected end of pattern")
	}
	ch := p.advance()

	switch ch {
	case '\\':
		return p.parseEscape()
	case '[':
		return p.parseClass()
	case '(':
		return p.parseGroup()
	case '.':
		return Dot{}, nil
	case '^', '$':
		return nil, lserr.New(lserr.UnsupportedASTNode, "anchors are not supported (position %d)", p.pos-1)
	default:
		if ch >= 128 {
			return nil, lserr.New(lserr.NonASCIICharacter, "non-ASCII byte 0x%02x at position %d", ch, p.pos-1)
		}
		return Literal{Byte: ch}, nil
	}
}

// parseEscape parses the atom following a backslash: \d \s \w (classes),
// \D \S \W (rejected as negated classes), \1-\9 (rejected as
// backreferences), or an escaped literal byte.
func (p *parser) parseEscape() (Node, error) {
	if p.isEOF() {
		return nil, lserr.New(lserr.RegexParse, "dangling escape at end of pattern")
	}
	ch := p.advance()
	switch ch {
	case 'd':
		return Class{Mask: symbol.Digits}, nil
	case 's':
		return Class{Mask: symbol.Space}, nil
	case 'w':
		return Class{Mask: symbol.Word}, nil
	case 'D', 'S', 'W':
		return nil, lserr.New(lserr.NegatedClass, "negated Perl class \\%c is not supported", ch)
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return nil, lserr.New(lserr.UnsupportedASTNode, "backreference \\%c is not supported", ch)
	default:
		if ch >= 128 {
			return nil, lserr.New(lserr.NonASCIICharacter, "non-ASCII escaped byte 0x%02x at position %d", ch, p.pos-1)
		}
		return Literal{Byte: ch}, nil
	}
}

// parseClass parses a bracketed class "[...]" into a single Class node,
// folding literal ranges and embedded \d \s \w escapes into one mask.
// Negated classes "[^...]" are rejected.
func (p *parser) parseClass() (Node, error) {
	if p.peek() == '^' {
		p.advance()
		return nil, lserr.New(lserr.NegatedClass, "negated character class [^...] is not supported")
	}

	var mask symbol.Mask
	first := true
	for {
		if p.isEOF() {
			return nil, lserr.New(lserr.RegexParse, "unterminated character class")
		}
		if p.peek() == ']' && !first {
			p.advance()
			break
		}
		first = false

		lo, err := p.readClassByte()
		if err != nil {
			return nil, err
		}
		// lo may itself expand to a full mask (a \d \s \w escape inside
		// the class); classByte reports that case via isClass=true.
		if lo.isClass {
			mask = mask.Union(lo.mask)
			continue
		}

		if p.peek() == '-' && p.pos+1 < len(p.pattern) && p.pattern[p.pos+1] != ']' {
			p.advance() // consume '-'
			hi, err := p.readClassByte()
			if err != nil {
				return nil, err
			}
			if hi.isClass {
				return nil, lserr.New(lserr.RegexParse, "invalid range end in character class at position %d", p.pos)
			}
			if hi.b < lo.b {
				return nil, lserr.New(lserr.RegexParse, "invalid character range %q-%q", lo.b, hi.b)
			}
			mask = mask.Union(symbol.RangeMask(lo.b, hi.b))
		} else {
			mask = mask.Set(lo.b)
		}
	}

	if mask.IsEmpty() {
		return nil, lserr.New(lserr.RegexParse, "empty character class")
	}
	return Class{Mask: mask}, nil
}

// classByte is either a single byte (for use as a literal or range
// endpoint) or a pre-expanded mask (from a \d \s \w escape).
type classByte struct {
	b       byte
	mask    symbol.Mask
	isClass bool
}

func (p *parser) readClassByte() (classByte, error) {
	ch := p.advance()
	if ch == '\\' {
		if p.isEOF() {
			return classByte{}, lserr.New(lserr.RegexParse, "dangling escape in character class")
		}
		esc := p.advance()
		switch esc {
		case 'd':
			return classByte{mask: symbol.Digits, isClass: true}, nil
		case 's':
			return classByte{mask: symbol.Space, isClass: true}, nil
		case 'w':
			return classByte{mask: symbol.Word, isClass: true}, nil
		case 'D', 'S', 'W':
			return classByte{}, lserr.New(lserr.NegatedClass, "negated Perl class \\%c is not supported", esc)
		default:
			if esc >= 128 {
				return classByte{}, lserr.New(lserr.NonASCIICharacter, "non-ASCII escaped byte 0x%02x", esc)
			}
			return classByte{b: esc}, nil
		}
	}
	if ch >= 128 {
		return classByte{}, lserr.New(lserr.NonASCIICharacter, "non-ASCII byte 0x%02x in character class", ch)
	}
	return classByte{b: ch}, nil
}

// parseGroup parses "(" expression ")". This dialect has no capture-group
// AST node, so a parenthesized group is pure precedence grouping.
func (p *parser) parseGroup() (Node, error) {
	if p.peek() == '?' {
		return nil, lserr.New(lserr.UnsupportedASTNode, "named/non-capturing group syntax '(?...)' is not supported")
	}
	inner, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.peek() != ')' {
		return nil, lserr.New(lserr.RegexParse, "expected ')' at position %d", p.pos)
	}
	p.advance()
	return inner, nil
}
