// Package validation checks JSON payloads against inline JSON Schemas.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
)

// MustCompile compiles an inline schema and panics on a malformed one.
func MustCompile(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("invalid json schema: %v", err))
	}
	return schema
}

// Validate returns a *model.ValidationError listing every violation.
func Validate(schema *gojsonschema.Schema, body []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return model.NewValidationError("invalid JSON: %v", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return model.NewValidationError("%s", strings.Join(msgs, "; "))
}
