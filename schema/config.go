package schema

import (
	"github.com/Toplogic-Inc/log-surgeon-go/ast"
	"github.com/Toplogic-Inc/log-surgeon-go/dfa"
	"github.com/Toplogic-Inc/log-surgeon-go/lserr"
	"github.com/Toplogic-Inc/log-surgeon-go/nfa"
)

// Config is the immutable, fully-compiled schema: a combined timestamp
// DFA, a combined variable DFA, and a 128-entry delimiter table. It is
// produced once by Compile/Load and shared read-only across lexers.
type Config struct {
	TSPatterns  []string
	VarNames    []string
	Delimiters  [128]bool
	TSDFA       *dfa.DFA
	VarDFA      *dfa.DFA
}

// TSName returns the 0-based timestamp pattern's source text for
// diagnostics; id is a dfa.AcceptOrigin value from TSDFA.
func (c *Config) TSName(id int32) string {
	if id < 0 || int(id) >= len(c.TSPatterns) {
		return ""
	}
	return c.TSPatterns[id]
}

// VarName returns the variable name declared at schema index id; id is a
// dfa.AcceptOrigin value from VarDFA.
func (c *Config) VarName(id int32) string {
	if id < 0 || int(id) >= len(c.VarNames) {
		return ""
	}
	return c.VarNames[id]
}

// Compile parses and compiles every pattern in src into the two combined
// DFAs and the delimiter table. Pattern errors from the ast/nfa layers
// propagate unchanged (they already carry the right lserr.Kind).
func Compile(src Source) (*Config, error) {
	tsNFAs := make([]*nfa.NFA, 0, len(src.Timestamp))
	for _, pattern := range src.Timestamp {
		n, err := compilePattern(pattern)
		if err != nil {
			return nil, err
		}
		tsNFAs = append(tsNFAs, n)
	}

	varNFAs := make([]*nfa.NFA, 0, len(src.Variables))
	varNames := make([]string, 0, len(src.Variables))
	for _, v := range src.Variables {
		n, err := compilePattern(v.Pattern)
		if err != nil {
			return nil, err
		}
		varNFAs = append(varNFAs, n)
		varNames = append(varNames, v.Name)
	}

	tsDFA, err := dfa.Build(tsNFAs)
	if err != nil {
		return nil, lserr.Wrap(lserr.InvalidSchemaShape, err, "compiling timestamp DFA")
	}
	varDFA, err := dfa.Build(varNFAs)
	if err != nil {
		return nil, lserr.Wrap(lserr.InvalidSchemaShape, err, "compiling variable DFA")
	}

	var delimiters [128]bool
	for i := 0; i < len(src.Delimiters); i++ {
		b := src.Delimiters[i]
		if b >= 128 {
			return nil, lserr.New(lserr.NonASCIICharacter, "non-ASCII delimiter byte 0x%02x", b)
		}
		delimiters[b] = true
	}
	delimiters['\n'] = true // always forced in, regardless of user input

	return &Config{
		TSPatterns: append([]string(nil), src.Timestamp...),
		VarNames:   varNames,
		Delimiters: delimiters,
		TSDFA:      tsDFA,
		VarDFA:     varDFA,
	}, nil
}

func compilePattern(pattern string) (*nfa.NFA, error) {
	node, err := ast.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return nfa.Compile(node)
}
