// Package docs holds the OpenAPI document for the llmapi HTTP surface.
// Regenerate with `swag init -g cmd/llmapi/docs.go -o docs`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "llmapi maintainers"
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
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "Liveness marker",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.RootResponse"}}
                }
            }
        },
        "/api/models": {
            "get": {
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "List installed models and the active model",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ModelsResponse"}}
                }
            }
        },
        "/api/trending-models": {
            "get": {
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "Popular models from the public library",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.TrendingResponse"}}
                }
            }
        },
        "/api/models/load": {
            "post": {
                "description": "When a pull is needed the response is an NDJSON stream of pull\nprogress records ending with a {status, message} record.",
                "consumes": ["application/json"],
                "produces": ["application/json", "application/x-ndjson"],
                "tags": ["models"],
                "summary": "Load a model, pulling it first when it is not installed",
                "parameters": [
                    {"description": "Model to load", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.ModelRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.StatusResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/types.StatusResponse"}}
                }
            }
        },
        "/api/models/unload": {
            "post": {
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "Unload the active model",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}
                }
            }
        },
        "/api/models/delete": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "Delete an installed model",
                "parameters": [
                    {"description": "Model to delete", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.ModelRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.StatusResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/types.StatusResponse"}}
                }
            }
        },
        "/api/generate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["inference"],
                "summary": "Generate text with the active model",
                "parameters": [
                    {"description": "Prompt and sampling options", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.GenerateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.GenerateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "409": {"description": "no model is currently loaded", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/api/ocr": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["inference"],
                "summary": "Extract text from an uploaded image",
                "parameters": [
                    {"type": "file", "description": "Image file", "name": "image", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.OCRResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.RootResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "types.ModelsResponse": {
            "type": "object",
            "properties": {
                "models": {"type": "array", "items": {"type": "string"}},
                "categorized_models": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}},
                "current_model": {"type": "string"}
            }
        },
        "types.TrendingResponse": {
            "type": "object",
            "properties": {"popular": {"type": "array", "items": {"type": "string"}}}
        },
        "types.ModelRequest": {
            "type": "object",
            "required": ["model_name"],
            "properties": {"model_name": {"type": "string"}}
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {"status": {"type": "string"}, "message": {"type": "string"}}
        },
        "types.GenerateRequest": {
            "type": "object",
            "properties": {
                "query": {"type": "string"},
                "max_tokens": {"type": "integer", "minimum": -1},
                "temperature": {"type": "number", "minimum": 0, "maximum": 2}
            }
        },
        "types.GenerateResponse": {
            "type": "object",
            "properties": {"response": {"type": "string"}}
        },
        "types.OCRResponse": {
            "type": "object",
            "properties": {"text": {"type": "string"}}
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "code": {"type": "integer"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "llmapi",
	Description:      "HTTP API for listing, loading and prompting models served by a local model runner.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
