package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
)

var testSchema = MustCompile(`{
  "type": "object",
  "required": ["name"],
  "properties": { "name": { "type": "string", "minLength": 1 } }
}`)

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(testSchema, []byte(`{"name":"LTC"}`)))

	err := Validate(testSchema, []byte(`{"name":""}`))
	assert.True(t, errors.Is(err, model.ErrValidation))

	err = Validate(testSchema, []byte(`{not json`))
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestMustCompilePanicsOnBadSchema(t *testing.T) {
	assert.Panics(t, func() { MustCompile(`{"type": 12}`) })
}
