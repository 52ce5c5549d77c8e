// Package docs registers the OpenAPI document for insurecost with swag.
// Regenerate with `swag init -g cmd/insurecost/docs.go -o docs`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "insurecost maintainers"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/predict_insurance_charge": {
            "post": {
                "description": "Validates a policyholder record, estimates the annual charge and assigns a risk tier.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["prediction"],
                "summary": "Predict annual medical charge",
                "parameters": [
                    {
                        "description": "Policyholder record",
                        "name": "record",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.PolicyholderRecord"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.PredictionResult"}},
                    "400": {"description": "unreadable or oversized body", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "not JSON", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "422": {"description": "invalid fields or malformed JSON", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "inference failed", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "model not loaded", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["ops"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "ready", "schema": {"type": "string"}},
                    "503": {"description": "unavailable", "schema": {"type": "string"}}
                }
            }
        },
        "/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Gateway status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 422},
                "error": {"type": "string", "example": "invalid input"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/types.FieldError"}},
                "kind": {"type": "string", "example": "validation_error"}
            }
        },
        "types.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string", "example": "age"},
                "message": {"type": "string", "example": "must be between 18 and 65"}
            }
        },
        "types.PolicyholderRecord": {
            "type": "object",
            "properties": {
                "age": {"type": "integer", "example": 30},
                "bmi": {"type": "number", "example": 25.0},
                "children": {"type": "integer", "example": 1},
                "sex": {"type": "string", "enum": ["male", "female"], "example": "male"},
                "smoker": {"type": "string", "enum": ["yes", "no"], "example": "no"}
            }
        },
        "types.PredictionResult": {
            "type": "object",
            "properties": {
                "predicted_charge": {"type": "number", "example": 14345.00},
                "risk_category": {"type": "string", "example": "Elevated Risk (Tier 2)"}
            }
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "failures_total": {"type": "integer", "example": 0},
                "loaded_at_unix": {"type": "integer", "example": 1700000000},
                "model_path": {"type": "string", "example": "models/insurance.json"},
                "predictions_total": {"type": "integer", "example": 42},
                "regressor": {"type": "string", "example": "linear"},
                "schema": {"type": "string", "example": "v1"},
                "state": {"type": "string", "example": "ready"},
                "uptime_seconds": {"type": "integer", "example": 3600}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "insurecost API",
	Description:      "Estimates annual medical insurance charges and assigns a risk tier.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
