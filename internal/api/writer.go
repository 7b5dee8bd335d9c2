package api

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/docforge/outliner/internal/model"
)

//go:embed outline_schema.json
var outlineSchema string

var outlineSchemaCompiled = jsonschema.MustCompileString("outline_schema.json", outlineSchema)

// WriteDocument validates an extracted outline against the output schema and
// writes it as indented UTF-8 JSON, one file per input document. A schema
// violation means a pipeline bug upstream; the file is not written.
func WriteDocument(path string, doc *model.Document) error {
	data, err := sonic.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal outline: %w", err)
	}

	var v any
	if err := sonic.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("failed to re-read outline for validation: %w", err)
	}
	if err := outlineSchemaCompiled.Validate(v); err != nil {
		return fmt.Errorf("outline failed schema validation: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write outline: %w", err)
	}
	return nil
}
