package controller

import (
	"github.com/HackingCorp/ltcgroup-sub001/internal/validation"
)

// maxBodyBytes bounds request bodies on every JSON endpoint.
const maxBodyBytes = 1 << 20

var orderSchema = validation.MustCompile(`{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["cardType", "customerName", "email", "phone", "deliveryOption"],
  "properties": {
    "cardType":        { "type": "string", "minLength": 1 },
    "customerName":    { "type": "string", "minLength": 2, "maxLength": 120 },
    "email":           { "type": "string", "format": "email" },
    "phone":           { "type": "string", "pattern": "^[+0-9 ()-]{9,20}$" },
    "niu":             { "type": "string", "maxLength": 20 },
    "requestNiu":      { "type": "boolean" },
    "deliveryOption":  { "type": "string", "minLength": 1 },
    "deliveryAddress": { "type": "string", "maxLength": 300 }
  },
  "additionalProperties": false
}`)

var contactSchema = validation.MustCompile(`{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "email", "message"],
  "properties": {
    "name":    { "type": "string", "minLength": 2, "maxLength": 120 },
    "email":   { "type": "string", "format": "email" },
    "phone":   { "type": "string", "maxLength": 30 },
    "company": { "type": "string", "maxLength": 120 },
    "subject": { "type": "string", "maxLength": 200 },
    "message": { "type": "string", "minLength": 1, "maxLength": 5000 }
  },
  "additionalProperties": false
}`)
