package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a JSON Schema a structured reply must satisfy. Declare schemas
// as package-level pointers; the compiled form is built once on first use.
type Schema struct {
	// Name is sent to providers that label structured output, kebab-case.
	Name        string
	Description string
	Definition  map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// Check parses raw and validates it against the schema. Failures are
// reported as *Error with KindInvalidOutput.
func (s *Schema) Check(raw json.RawMessage) error {
	invalid := func(err error) error {
		return &Error{Kind: KindInvalidOutput, Content: raw, Err: err}
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalid(fmt.Errorf("reply is not JSON: %w", err))
	}

	s.once.Do(s.compile)
	if s.err != nil {
		return invalid(s.err)
	}
	if err := s.compiled.Validate(doc); err != nil {
		return invalid(err)
	}
	return nil
}

func (s *Schema) compile() {
	// Round-trip so Go slices and maps become the generic JSON values the
	// compiler expects.
	def, err := json.Marshal(s.Definition)
	if err != nil {
		s.err = fmt.Errorf("schema %s: %w", s.Name, err)
		return
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		s.err = fmt.Errorf("schema %s: %w", s.Name, err)
		return
	}

	url := "mem://" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		s.err = fmt.Errorf("schema %s: %w", s.Name, err)
		return
	}
	s.compiled, s.err = c.Compile(url)
}
