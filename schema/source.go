// Package schema loads a YAML schema document and compiles it into an
// immutable schema.Config: a timestamp DFA, a variable DFA, and a
// delimiter table, ready to be handed to a lexer.Lexer.
package schema

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Toplogic-Inc/log-surgeon-go/lserr"
)

// VarDef is one name/pattern entry from the schema's variables mapping,
// in declaration order.
type VarDef struct {
	Name    string
	Pattern string
}

// Source is the YAML-decoded, pre-compilation shape of a schema: three
// required top-level keys, `timestamp` (ordered sequence of patterns),
// `variables` (ordered name -> pattern mapping), and `delimiters` (a
// string whose bytes are delimiters).
//
// Go's map type does not preserve iteration order, and schema priority
// (spec §8 property 6: ties broken by earlier schema index) depends on
// `variables` keeping declaration order. yaml.v3's plain Unmarshal into a
// map would silently lose that order, so Source implements
// yaml.Unmarshaler itself and walks the raw mapping Node instead,
// following the same "decode into your own shape rather than trust the
// library's default" approach this module's pack uses for schema/config
// loading.
type Source struct {
	Timestamp  []string
	Variables  []VarDef
	Delimiters string

	hasTimestamp  bool
	hasVariables  bool
	hasDelimiters bool
}

// UnmarshalYAML implements yaml.Unmarshaler over the raw document node so
// that the variables mapping's key order survives decoding.
func (s *Source) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return lserr.New(lserr.InvalidSchemaShape, "schema document must be a YAML mapping")
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]
		switch keyNode.Value {
		case "timestamp":
			if err := valNode.Decode(&s.Timestamp); err != nil {
				return lserr.Wrap(lserr.InvalidSchemaShape, err, "timestamp must be a sequence of strings")
			}
			s.hasTimestamp = true

		case "variables":
			if valNode.Kind != yaml.MappingNode {
				return lserr.New(lserr.InvalidSchemaShape, "variables must be a mapping")
			}
			for j := 0; j+1 < len(valNode.Content); j += 2 {
				nameNode, patNode := valNode.Content[j], valNode.Content[j+1]
				var pattern string
				if err := patNode.Decode(&pattern); err != nil {
					return lserr.Wrap(lserr.InvalidSchemaShape, err, "variables.%s must be a string pattern", nameNode.Value)
				}
				s.Variables = append(s.Variables, VarDef{Name: nameNode.Value, Pattern: pattern})
			}
			s.hasVariables = true

		case "delimiters":
			if err := valNode.Decode(&s.Delimiters); err != nil {
				return lserr.Wrap(lserr.InvalidSchemaShape, err, "delimiters must be a string")
			}
			s.hasDelimiters = true
		}
	}
	return nil
}

// validate checks that all three required top-level keys were present.
func (s *Source) validate() error {
	switch {
	case !s.hasTimestamp:
		return lserr.New(lserr.MissingSchemaKey, "missing required key %q", "timestamp")
	case !s.hasVariables:
		return lserr.New(lserr.MissingSchemaKey, "missing required key %q", "variables")
	case !s.hasDelimiters:
		return lserr.New(lserr.MissingSchemaKey, "missing required key %q", "delimiters")
	}
	return nil
}

// Load reads the YAML schema file at path, decodes it into a Source, and
// compiles it into a Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, lserr.Wrap(lserr.IOError, err, "reading schema file %q", path)
	}

	var src Source
	if err := yaml.Unmarshal(data, &src); err != nil {
		if lsErr, ok := err.(*lserr.Error); ok {
			return nil, lsErr
		}
		return nil, lserr.Wrap(lserr.YAMLParse, err, "parsing schema file %q", path)
	}
	if err := src.validate(); err != nil {
		return nil, err
	}

	return Compile(src)
}
