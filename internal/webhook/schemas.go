package webhook

const enkapSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["order_id", "merchant_reference", "status"],
  "properties": {
    "order_id": { "type": "string", "minLength": 1 },
    "order_transaction_id": { "type": "string" },
    "merchant_reference": { "type": "string", "minLength": 1 },
    "status": { "type": "string", "enum": ["COMPLETED", "FAILED", "CANCELLED", "PENDING"] },
    "amount": { "type": ["number", "string"] },
    "currency": { "type": "string" },
    "payment_method": { "type": ["string", "null"] },
    "customer": {
      "type": ["object", "null"],
      "properties": {
        "name": { "type": ["string", "null"] },
        "email": { "type": ["string", "null"] },
        "phone": { "type": ["string", "null"] }
      }
    },
    "completed_at": { "type": ["string", "null"] }
  }
}`

const s3pSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["ptn", "trid", "status"],
  "properties": {
    "ptn": { "type": "string", "minLength": 1 },
    "trid": { "type": "string", "minLength": 1 },
    "status": { "type": "string", "enum": ["SUCCESS", "FAILED", "ERRORED", "PENDING"] },
    "amount": { "type": ["number", "string"] },
    "serviceNumber": { "type": "string" },
    "errorMessage": { "type": ["string", "null"] }
  }
}`
