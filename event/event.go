// Package event groups the lexer's token stream into log events: the
// longest run of tokens starting at a Timestamp token (or at stream
// start, for an untimed prefix) and ending just before the next
// Timestamp token or at clean end of stream.
package event

import "github.com/Toplogic-Inc/log-surgeon-go/lexer"

// Event is an ordered, non-empty run of tokens belonging to one log
// record.
type Event struct {
	Tokens       []lexer.Token
	HasTimestamp bool
	FirstLine    int
	LastLine     int
}

// Assembler buffers tokens from one lexer and flushes an Event each time
// a new Timestamp token arrives or the stream ends. It holds no
// reference to the lexer itself; callers drive it with Push.
type Assembler struct {
	pending []lexer.Token
}

// NewAssembler returns an empty Assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Push feeds one token to the assembler. It returns the previously
// buffered event (ok=true) when tok is a Timestamp token and the buffer
// already held at least one token — the arrival of a new Timestamp
// flushes everything seen since the last one. Otherwise tok is appended
// to the pending buffer and ok is false.
func (a *Assembler) Push(tok lexer.Token) (Event, bool) {
	if tok.Kind == lexer.KindTimestamp && len(a.pending) > 0 {
		ev := a.flush()
		a.pending = append(a.pending, tok)
		return ev, true
	}
	a.pending = append(a.pending, tok)
	return Event{}, false
}

// Finish flushes any buffered tokens as a final event at clean end of
// stream. ok is false if nothing was pending (empty input, or the
// previous Push already flushed everything and nothing followed).
func (a *Assembler) Finish() (Event, bool) {
	if len(a.pending) == 0 {
		return Event{}, false
	}
	return a.flush(), true
}

func (a *Assembler) flush() Event {
	toks := a.pending
	a.pending = nil
	return Event{
		Tokens:       toks,
		HasTimestamp: toks[0].Kind == lexer.KindTimestamp,
		FirstLine:    toks[0].Line,
		LastLine:     toks[len(toks)-1].Line,
	}
}

// Collect runs next (typically lexer.Lexer.NextToken) to exhaustion and
// returns every assembled event in order. next must return (nil, nil) at
// clean end of stream.
func Collect(next func() (*lexer.Token, error)) ([]Event, error) {
	a := NewAssembler()
	var events []Event
	for {
		tok, err := next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			break
		}
		if ev, ok := a.Push(*tok); ok {
			events = append(events, ev)
		}
	}
	if ev, ok := a.Finish(); ok {
		events = append(events, ev)
	}
	return events, nil
}
