// internal/server/schemas.go
package server

import "simmer-assistant/internal/common/validation"

// assistantMessageSchema guards both chat endpoints. The message is the only
// required field; everything else is optional client-side state.
var assistantMessageSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["message"],
	"additionalProperties": false,
	"properties": {
		"sessionId": {"type": "string", "maxLength": 64},
		"message": {"type": "string", "minLength": 1, "maxLength": 1000},
		"phone": {"type": "string", "maxLength": 20},
		"name": {"type": "string", "maxLength": 80},
		"locationId": {"type": "string", "maxLength": 40},
		"language": {"type": "string", "enum": ["es", "en"]},
		"cart": {
			"type": "array",
			"maxItems": 50,
			"items": {
				"type": "object",
				"required": ["name", "quantity", "price"],
				"properties": {
					"name": {"type": "string", "maxLength": 120},
					"quantity": {"type": "integer", "minimum": 1},
					"price": {"type": "number", "minimum": 0}
				}
			}
		}
	}
}`)

var nudgeSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["sessionId"],
	"properties": {
		"sessionId": {"type": "string", "minLength": 1, "maxLength": 64},
		"language": {"type": "string", "enum": ["es", "en"]}
	}
}`)

var orderCreateSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["phone", "locationId", "items"],
	"properties": {
		"phone": {"type": "string", "minLength": 6, "maxLength": 20},
		"locationId": {"type": "string", "minLength": 1, "maxLength": 40},
		"items": {
			"type": "array",
			"minItems": 1,
			"maxItems": 50,
			"items": {
				"type": "object",
				"required": ["itemId", "quantity", "price"],
				"properties": {
					"itemId": {"type": "string", "minLength": 1},
					"name": {"type": "string"},
					"quantity": {"type": "integer", "minimum": 1, "maximum": 50},
					"price": {"type": "number", "minimum": 0}
				}
			}
		}
	}
}`)

var loyaltyEnrollSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["phone"],
	"properties": {
		"phone": {"type": "string", "minLength": 6, "maxLength": 20},
		"name": {"type": "string", "maxLength": 80}
	}
}`)

var settingPutSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["key", "value"],
	"properties": {
		"key": {"type": "string", "minLength": 1, "maxLength": 120},
		"value": {"type": "string", "maxLength": 4000}
	}
}`)
