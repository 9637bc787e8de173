// Package lexer implements the streaming tokenizer: a state machine that
// pulls bytes from a streamio.ByteStream through a growable scan buffer,
// probes for a timestamp at every logical line start, runs the schema's
// variable DFA with POSIX-style longest-match semantics, and emits typed
// tokens bounded by the schema's delimiter set.
//
// States: ParsingTimestamp (try a timestamp match at the current
// position), SeekingDelimiter (scan static text for a delimiter byte),
// HandleDelimiter (decide what the delimiter just consumed means),
// DFARunNotAccepted/DFARunAccepted (the variable DFA is running),
// VarExtract (emit the accepted variable), and EndOfStream (flush
// residual static text and stop). This mirrors the state names and
// scan-buffer fields (last_delimiter, last_tokenized_pos, match_start/
// match_end_pos, line_num) of this module's reference lexer, translated
// from a Rc/RefCell-owning struct into a plain Go struct over a []byte
// buffer.
package lexer

import (
	"io"

	"github.com/Toplogic-Inc/log-surgeon-go/dfa"
	"github.com/Toplogic-Inc/log-surgeon-go/lserr"
	"github.com/Toplogic-Inc/log-surgeon-go/schema"
	"github.com/Toplogic-Inc/log-surgeon-go/streamio"
)

// gcThreshold is the minimum last_tokenized_pos (in bytes) before the
// scan buffer becomes eligible for compaction; compaction also requires
// last_tokenized_pos to exceed half of the buffer's current length.
const gcThreshold = 4096

type lexerState int

const (
	stateParsingTimestamp lexerState = iota
	stateSeekingDelimiter
	stateHandleDelimiter
	stateDFARunNotAccepted
	stateDFARunAccepted
	stateVarExtract
	stateEndOfStream
)

// Lexer is a streaming tokenizer bound to one schema.Config. A single
// Lexer is not safe for concurrent use, but independent Lexers sharing
// the same (immutable) Config may run concurrently in separate
// goroutines, each with its own stream and scan buffer.
type Lexer struct {
	cfg    *schema.Config
	stream streamio.ByteStream

	state lexerState
	atEnd bool

	buf              []byte
	cursor           int
	lastTokenizedPos int
	queue            []Token

	hasDelimiter  bool
	lastDelimiter byte

	matchStart int
	matchEnd   int
	varState   dfa.StateID

	lineNum int
}

// New creates a Lexer bound to cfg. Call SetInputStream before NextToken.
func New(cfg *schema.Config) *Lexer {
	return &Lexer{cfg: cfg}
}

// SetInputStream resets all scan state and attaches stream. Safe to call
// repeatedly, including to reuse a Lexer across multiple inputs.
func (l *Lexer) SetInputStream(stream streamio.ByteStream) {
	l.stream = stream
	l.state = stateParsingTimestamp
	l.atEnd = false
	l.buf = l.buf[:0]
	l.cursor = 0
	l.lastTokenizedPos = 0
	l.queue = l.queue[:0]
	l.hasDelimiter = false
	l.matchStart = 0
	l.matchEnd = 0
	l.lineNum = 1
}

// NextToken returns the next token, or (nil, nil) at clean end of
// stream. Returns a *lserr.Error of Kind LexerStreamNotSet if called
// before SetInputStream.
func (l *Lexer) NextToken() (*Token, error) {
	if l.stream == nil {
		return nil, lserr.New(lserr.LexerStreamNotSet, "next_token called before set_input_stream")
	}
	if len(l.queue) == 0 && !l.atEnd {
		if err := l.fill(); err != nil {
			return nil, err
		}
	}
	if len(l.queue) == 0 {
		return nil, nil
	}
	tok := l.queue[0]
	l.queue = l.queue[1:]
	return &tok, nil
}

// fill drives the state machine until it has at least one token queued
// or has reached a clean end of stream, then compacts the scan buffer.
func (l *Lexer) fill() error {
	for {
		switch l.state {
		case stateSeekingDelimiter:
			if err := l.stepSeekingDelimiter(); err != nil {
				return err
			}
		case stateHandleDelimiter:
			if err := l.stepHandleDelimiter(); err != nil {
				return err
			}
		case stateParsingTimestamp:
			matched, err := l.tryParseTimestamp()
			if err != nil {
				return err
			}
			if matched {
				l.state = stateSeekingDelimiter
			} else {
				l.state = stateDFARunNotAccepted
			}
		case stateDFARunNotAccepted:
			if err := l.stepDFARunNotAccepted(); err != nil {
				return err
			}
		case stateDFARunAccepted:
			if err := l.stepDFARunAccepted(); err != nil {
				return err
			}
		case stateVarExtract:
			if err := l.stepVarExtract(); err != nil {
				return err
			}
		case stateEndOfStream:
			if err := l.stepEndOfStream(); err != nil {
				return err
			}
			l.atEnd = true
		}

		if len(l.queue) > 0 || l.atEnd {
			l.gc()
			return nil
		}
	}
}

// peekByte returns the byte at cursor without consuming it, pulling one
// more byte from the stream if the buffer doesn't reach that far yet.
// ok is false at clean end of stream.
func (l *Lexer) peekByte() (b byte, ok bool, err error) {
	if l.cursor == len(l.buf) {
		nb, serr := l.stream.NextByte()
		if serr != nil {
			if serr == io.EOF {
				return 0, false, nil
			}
			return 0, false, lserr.Wrap(lserr.IOError, serr, "reading input stream")
		}
		l.buf = append(l.buf, nb)
	}
	return l.buf[l.cursor], true, nil
}

func (l *Lexer) advance() {
	l.cursor++
}

// emit copies buf[start:end] into a new token and appends it to queue.
// Copying now (rather than slicing buf) is what makes buffer compaction
// safe between fill() calls: tokens never alias the scan buffer.
func (l *Lexer) emit(kind Kind, id int32, start, end int) {
	text := make([]byte, end-start)
	copy(text, l.buf[start:end])
	l.queue = append(l.queue, Token{Kind: kind, ID: id, Text: text, Line: l.lineNum})
}

func (l *Lexer) stepSeekingDelimiter() error {
	b, ok, err := l.peekByte()
	if err != nil {
		return err
	}
	if !ok {
		l.state = stateEndOfStream
		return nil
	}
	l.advance()
	if b < 128 && l.cfg.Delimiters[b] {
		l.lastDelimiter = b
		l.hasDelimiter = true
		l.state = stateHandleDelimiter
	}
	return nil
}

func (l *Lexer) stepHandleDelimiter() error {
	delim := l.lastDelimiter
	l.hasDelimiter = false

	if delim != '\n' {
		l.matchStart = l.cursor
		l.varState = l.cfg.VarDFA.Start
		l.state = stateDFARunNotAccepted
		return nil
	}

	if l.lastTokenizedPos >= l.cursor {
		return lserr.New(lserr.LexerInternal, "delimiter position corrupted")
	}
	l.emit(KindStaticTextWithEndLine, NoID, l.lastTokenizedPos, l.cursor)
	l.lastTokenizedPos = l.cursor
	l.lineNum++
	l.state = stateParsingTimestamp
	return nil
}

// tryParseTimestamp walks ts_dfa from its root starting at the current
// cursor, remembering the rightmost accepting position seen (longest
// match is mandatory: the walk does not stop at the first accept). On
// success it emits the Timestamp token and advances past it; on failure
// it rewinds the cursor and primes a variable-DFA attempt at the same
// position, exactly as HandleDelimiter does for a non-newline delimiter.
func (l *Lexer) tryParseTimestamp() (bool, error) {
	entry := l.cursor
	state := l.cfg.TSDFA.Start

	var haveMatch bool
	var matchID int32
	var matchPos int

	for {
		b, ok, err := l.peekByte()
		if err != nil {
			return false, err
		}
		if !ok {
			break
		}
		l.advance()
		if b >= 128 {
			break
		}
		next := l.cfg.TSDFA.Step(state, b)
		if next == dfa.NoTransition {
			break
		}
		state = next
		if l.cfg.TSDFA.IsAccepting(state) {
			haveMatch = true
			matchID = l.cfg.TSDFA.AcceptOrigin[state]
			matchPos = l.cursor
		}
	}

	if haveMatch {
		l.emit(KindTimestamp, matchID, l.lastTokenizedPos, matchPos)
		l.lastTokenizedPos = matchPos
		l.cursor = matchPos
		return true, nil
	}

	l.cursor = entry
	l.matchStart = entry
	l.varState = l.cfg.VarDFA.Start
	return false, nil
}

func (l *Lexer) stepDFARunNotAccepted() error {
	b, ok, err := l.peekByte()
	if err != nil {
		return err
	}
	if !ok {
		l.state = stateEndOfStream
		return nil
	}
	if b >= 128 || b == '\n' {
		l.state = stateSeekingDelimiter
		return nil
	}

	// A delimiter byte continues the run when the variable DFA has a
	// transition for it (e.g. '=' inside `name=\d+`). A byte without a
	// transition is left unconsumed for SeekingDelimiter to handle.
	next := l.cfg.VarDFA.Step(l.varState, b)
	if next == dfa.NoTransition {
		l.state = stateSeekingDelimiter
		return nil
	}
	l.advance()
	l.varState = next
	if l.cfg.VarDFA.IsAccepting(next) {
		l.state = stateDFARunAccepted
	}
	return nil
}

// stepDFARunAccepted behaves like stepDFARunNotAccepted but additionally
// maintains a running longest match: match_end advances every time an
// accepting state is revisited, giving POSIX-style longest-match
// semantics for variables.
func (l *Lexer) stepDFARunAccepted() error {
	l.matchEnd = l.cursor

	b, ok, err := l.peekByte()
	if err != nil {
		return err
	}
	if !ok {
		l.state = stateVarExtract
		return nil
	}
	if b >= 128 {
		// A non-ASCII byte can never continue a variable run. The run
		// aborts here, but an accepting state was already reached, so the
		// match is committed instead of discarded; the byte itself is left
		// unconsumed for SeekingDelimiter to fold into static text.
		if err := l.commitVariable(); err != nil {
			return err
		}
		l.state = stateSeekingDelimiter
		return nil
	}

	l.advance()
	if l.cfg.Delimiters[b] {
		l.lastDelimiter = b
		l.hasDelimiter = true
		l.state = stateVarExtract
		return nil
	}

	next := l.cfg.VarDFA.Step(l.varState, b)
	if next == dfa.NoTransition {
		l.state = stateSeekingDelimiter
		return nil
	}
	l.varState = next
	if l.cfg.VarDFA.IsAccepting(next) {
		l.state = stateDFARunAccepted
	} else {
		l.state = stateDFARunNotAccepted
	}
	return nil
}

// commitVariable emits the static-text gap preceding the current match (if
// any) followed by the matched variable itself, and advances
// lastTokenizedPos past it. Callers decide what state to enter next.
func (l *Lexer) commitVariable() error {
	if l.matchStart > l.lastTokenizedPos {
		l.emit(KindStaticText, NoID, l.lastTokenizedPos, l.matchStart)
	}
	if l.matchStart >= l.matchEnd {
		return lserr.New(lserr.LexerInternal, "match positions corrupted")
	}
	origin := l.cfg.VarDFA.AcceptOrigin[l.varState]
	if origin == dfa.NoOrigin {
		return lserr.New(lserr.LexerInternal, "DFA state doesn't stop in an accepted state")
	}
	l.emit(KindVariable, origin, l.matchStart, l.matchEnd)
	l.lastTokenizedPos = l.matchEnd
	return nil
}

func (l *Lexer) stepVarExtract() error {
	if err := l.commitVariable(); err != nil {
		return err
	}

	if l.hasDelimiter {
		l.state = stateHandleDelimiter
	} else {
		l.state = stateEndOfStream
	}
	return nil
}

func (l *Lexer) stepEndOfStream() error {
	if l.cursor > l.lastTokenizedPos {
		kind := KindStaticText
		if l.hasDelimiter && l.lastDelimiter == '\n' {
			kind = KindStaticTextWithEndLine
		}
		l.emit(kind, NoID, l.lastTokenizedPos, l.cursor)
	}
	return nil
}

// gc compacts the scan buffer once last_tokenized_pos exceeds both
// gcThreshold and half of the buffer's length, shifting the untokenized
// tail to the front. It must only run at a quiescent boundary (fill
// already guarantees every emitted token copied its bytes out of buf
// before this runs).
func (l *Lexer) gc() {
	if l.lastTokenizedPos <= gcThreshold || l.lastTokenizedPos*2 <= len(l.buf) {
		return
	}
	n := copy(l.buf, l.buf[l.lastTokenizedPos:])
	l.buf = l.buf[:n]
	l.cursor -= l.lastTokenizedPos
	l.matchStart -= l.lastTokenizedPos
	l.matchEnd -= l.lastTokenizedPos
	l.lastTokenizedPos = 0
}
