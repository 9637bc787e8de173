// Package lserr defines the error taxonomy shared by every layer of the
// tokenizer: the regex AST parser, the NFA/DFA compilers, the schema
// loader, and the lexer. Callers switch on Kind rather than matching on
// error strings, following the same wrap-with-context idiom as the
// teacher's nfa.CompileError/BuildError, unified into one type.
package lserr

import "fmt"

// Kind identifies a class of failure. The taxonomy is fixed by the schema
// specification: schema-compile errors are fatal to the load step, stream
// I/O errors propagate unchanged, and internal invariant breaches inside
// the lexer or assembler are always fatal.
type Kind int

const (
	// RegexParse indicates a malformed regex pattern string.
	RegexParse Kind = iota
	// UnsupportedASTNode indicates an AST form outside this dialect
	// (anchors, capture groups, backreferences, lookarounds, ...).
	UnsupportedASTNode
	// NonASCIICharacter indicates a non-ASCII literal character in a
	// pattern, or a non-ASCII byte in the delimiter string.
	NonASCIICharacter
	// NegatedClass indicates a negated character class or Perl class
	// (\D, \S, \W, [^...]), which this dialect does not support.
	NegatedClass
	// NonGreedyRepetition indicates a `?`-suffixed (lazy) quantifier.
	NonGreedyRepetition
	// YAMLParse indicates the schema file is not valid YAML.
	YAMLParse
	// MissingSchemaKey indicates one of the three required top-level
	// keys (timestamp, variables, delimiters) is absent.
	MissingSchemaKey
	// InvalidSchemaShape indicates a required key is present but has the
	// wrong YAML shape (e.g. timestamp is not a sequence of strings).
	InvalidSchemaShape
	// IOError wraps an error surfaced by a byte-stream implementation.
	IOError
	// LexerStreamNotSet indicates next_token was called before
	// set_input_stream.
	LexerStreamNotSet
	// LexerInternal indicates an invariant breach inside the lexer
	// (e.g. match_start >= match_end on entry to VarExtract).
	LexerInternal
	// AssemblerInternal indicates an invariant breach inside the
	// log-event assembler.
	AssemblerInternal
)

// String renders the Kind as the taxonomy name used in spec.md §7.
func (k Kind) String() string {
	switch k {
	case RegexParse:
		return "RegexParse"
	case UnsupportedASTNode:
		return "UnsupportedAstNode"
	case NonASCIICharacter:
		return "NonAsciiCharacter"
	case NegatedClass:
		return "NegatedClass"
	case NonGreedyRepetition:
		return "NonGreedyRepetition"
	case YAMLParse:
		return "YamlParse"
	case MissingSchemaKey:
		return "MissingSchemaKey"
	case InvalidSchemaShape:
		return "InvalidSchemaShape"
	case IOError:
		return "IoError"
	case LexerStreamNotSet:
		return "LexerStreamNotSet"
	case LexerInternal:
		return "LexerInternal"
	case AssemblerInternal:
		return "AssemblerInternal"
	default:
		return fmt.Sprintf("UnknownKind(%d)", int(k))
	}
}

// Error is the single error type returned across package boundaries in
// this module. Msg carries kind-specific detail (e.g. which schema key is
// missing, or the offending pattern), Cause optionally wraps an
// underlying error (a YAML decode error, an I/O error).
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return e.Kind.String()
}

// Unwrap returns the wrapped cause, if any, enabling errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind around an existing cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
