package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema for structured output.
type Schema struct {
	// Name identifies the schema to vendors. Kebab-case, e.g.
	// "az104-question-batch".
	Name string

	Description string

	// Definition is the schema document.
	Definition map[string]any

	// ArrayKey names the array property of an object schema. Some models
	// answer with the bare array; Conform wraps it under this key.
	ArrayKey string

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// Conform normalizes a model reply and validates it. Markdown code fences
// are stripped and a bare array is wrapped under ArrayKey. The normalized
// document is returned; failures are *ErrInvalidResponse.
func (s *Schema) Conform(raw json.RawMessage) (json.RawMessage, error) {
	doc := unfence(raw)

	var parsed any
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if arr, ok := parsed.([]any); ok && s.ArrayKey != "" {
		parsed = map[string]any{s.ArrayKey: arr}
		wrapped, err := json.Marshal(parsed)
		if err != nil {
			return nil, &ErrInvalidResponse{Content: raw, Err: err}
		}
		doc = wrapped
	}

	compiled, err := s.compile()
	if err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("compile schema %q: %w", s.Name, err)}
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return doc, nil
}

// compile builds the validator once per Schema value.
func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		if s.Definition == nil {
			s.err = errors.New("empty schema definition")
			return
		}
		// jsonschema wants plain decoded JSON, not Go literals such as []string.
		def, err := json.Marshal(s.Definition)
		if err != nil {
			s.err = err
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
		if err != nil {
			s.err = err
			return
		}

		url := "schema://" + s.Name + ".json"
		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, doc); err != nil {
			s.err = err
			return
		}
		s.compiled, s.err = c.Compile(url)
	})
	return s.compiled, s.err
}

// unfence removes a surrounding ```json ... ``` block.
func unfence(raw []byte) []byte {
	b := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(b, []byte("```")) {
		return b
	}
	b = bytes.TrimPrefix(b, []byte("```"))
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		b = b[i+1:]
	} else {
		b = bytes.TrimPrefix(b, []byte("json"))
	}
	b = bytes.TrimSuffix(bytes.TrimSpace(b), []byte("```"))
	return bytes.TrimSpace(b)
}
