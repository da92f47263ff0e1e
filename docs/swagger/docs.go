// Package swagger registers the OpenAPI document served at /swagger.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "in": "header", "name": "X-API-Key"}
    },
    "security": [{"ApiKeyAuth": []}],
    "paths": {
        "/plugins": {
            "get": {
                "tags": ["plugins"],
                "summary": "List Managed Files",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/drift.PluginInfo"}}}
                }
            }
        },
        "/plugins/status": {
            "get": {
                "tags": ["plugins"],
                "summary": "Check All Files",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/reconcile.ReconcilePlan"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/plugins/{key}": {
            "get": {
                "tags": ["plugins"],
                "summary": "Check File",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Configuration key", "name": "key", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/reconcile.ReconcileResult"}},
                    "404": {"description": "Unknown key", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/plugins/{key}/apply": {
            "post": {
                "tags": ["plugins"],
                "summary": "Apply Value",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Configuration key", "name": "key", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/reconcile.ReconcileResult"}},
                    "404": {"description": "Unknown key or no value", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/history": {
            "get": {
                "tags": ["history"],
                "summary": "Update History",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "default": 50, "description": "Maximum number of entries", "name": "limit", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/history.FileUpdate"}}}
                }
            }
        }
    },
    "definitions": {
        "drift.PluginInfo": {
            "type": "object",
            "properties": {"key": {"type": "string"}, "file": {"type": "string"}}
        },
        "history.FileUpdate": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "key": {"type": "string"},
                "file": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "reconcile.ReconcileResult": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "file": {"type": "string"},
                "value_present": {"type": "boolean"},
                "status": {"type": "string", "enum": ["up_to_date", "out_of_sync", "missing"]},
                "error": {"type": "string"}
            }
        },
        "reconcile.Action": {
            "type": "object",
            "properties": {"type": {"type": "string"}, "key": {"type": "string"}, "reason": {"type": "string"}}
        },
        "reconcile.PlanSummary": {
            "type": "object",
            "properties": {
                "total_items": {"type": "integer"},
                "up_to_date": {"type": "integer"},
                "out_of_sync": {"type": "integer"},
                "missing": {"type": "integer"},
                "missing_value": {"type": "integer"},
                "failed": {"type": "integer"},
                "apply_actions": {"type": "integer"}
            }
        },
        "reconcile.ReconcilePlan": {
            "type": "object",
            "properties": {
                "results": {"type": "array", "items": {"$ref": "#/definitions/reconcile.ReconcileResult"}},
                "actions": {"type": "array", "items": {"$ref": "#/definitions/reconcile.Action"}},
                "summary": {"$ref": "#/definitions/reconcile.PlanSummary"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Config Manager API",
	Description:      "Drift checks and updates for managed configuration files.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
