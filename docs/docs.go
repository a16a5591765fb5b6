// Package docs registers the swagger document served at /swagger/*any.
package docs

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
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "produces": ["application/json"],
                "responses": {"200": {"description": "API is healthy"}}
            }
        },
        "/ready": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness Check",
                "produces": ["application/json"],
                "responses": {"200": {"description": "API is ready"}}
            }
        },
        "/live": {
            "get": {
                "tags": ["Health"],
                "summary": "Liveness Check",
                "produces": ["application/json"],
                "responses": {"200": {"description": "API is alive"}}
            }
        },
        "/api/v1/route": {
            "post": {
                "tags": ["Assistant"],
                "summary": "Route an utterance",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/httpserver.utteranceRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/utterances": {
            "post": {
                "tags": ["Assistant"],
                "summary": "Handle an utterance",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/httpserver.utteranceRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/memories": {
            "post": {
                "tags": ["Memory"],
                "summary": "Remember a fact",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/httpserver.memoryRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/tools": {
            "get": {
                "tags": ["Tools"],
                "summary": "List tools",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}}}
            }
        },
        "/api/v1/ws": {
            "get": {
                "tags": ["Assistant"],
                "summary": "Voice websocket",
                "description": "Send {\"type\":\"utterance\",\"text\":\"...\"} or {\"type\":\"interrupt\",\"text\":\"...\"}; receive reply, interrupted or error frames",
                "parameters": [{"type": "string", "description": "Session id (generated when empty)", "name": "session_id", "in": "query"}],
                "responses": {"101": {"description": "Switching Protocols"}}
            }
        }
    },
    "definitions": {
        "httpserver.utteranceRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {
                "session_id": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "httpserver.memoryRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {
                "text": {"type": "string"}
            }
        },
        "response.Resp": {
            "type": "object",
            "properties": {
                "error_code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {},
                "errors": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Voice Assistant API",
	Description:      "Intent routing, tiered model dispatch and MCP tool use for a voice assistant.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
