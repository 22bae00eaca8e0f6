package httpapi

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/translate_request.schema.json
var translateRequestSchemaJSON string

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

type translateRequest struct {
	Provider string `json:"provider"`
	From     string `json:"from"`
	To       string `json:"to"`
	Text     string `json:"text"`
}

// decodeTranslateRequest validates raw against the request schema and decodes it.
func decodeTranslateRequest(raw []byte) (translateRequest, error) {
	value, err := decodeStrictJSON(raw)
	if err != nil {
		return translateRequest{}, fmt.Errorf("decode request JSON: %w", err)
	}

	schema, err := loadSchema()
	if err != nil {
		return translateRequest{}, fmt.Errorf("load schema: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return translateRequest{}, fmt.Errorf("schema validation failed: %w", err)
	}

	var req translateRequest
	if err := json.Unmarshal(bytes.TrimSpace(raw), &req); err != nil {
		return translateRequest{}, fmt.Errorf("unmarshal request: %w", err)
	}
	if strings.TrimSpace(req.Text) == "" {
		return translateRequest{}, fmt.Errorf("text must not be blank")
	}
	return req, nil
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource("translate_request.schema.json", strings.NewReader(translateRequestSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}

		schema, err := compiler.Compile("translate_request.schema.json")
		if err != nil {
			compiledSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}

		compiledSchema = schema
	})

	if compiledSchemaErr != nil {
		return nil, compiledSchemaErr
	}
	if compiledSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return compiledSchema, nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("body is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("body contains trailing content")
	}
	return value, nil
}
