// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"type": "string", "description": "User email", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.tokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/auth/register/admin": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Register a user (governance only)",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
            }
        },
        "/dashboard/bsc/objetivos": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["dashboard"], "summary": "List BSC objectives", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["dashboard"], "summary": "Create a BSC objective", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/dashboard/bsc/objetivos/{id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["dashboard"],
                "summary": "Update a BSC objective",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/dashboard/finanzas/resumen": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["dashboard"], "summary": "Financial summary of the organization", "responses": {"200": {"description": "OK"}}}
        },
        "/dashboard/finanzas/transacciones": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["dashboard"], "summary": "Register a funding transaction", "responses": {"201": {"description": "Created"}}}
        },
        "/dashboard/proyectos": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["dashboard"], "summary": "List projects", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["dashboard"], "summary": "Create a project", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/dashboard/impacto/metricas": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["dashboard"], "summary": "Impact counters", "responses": {"200": {"description": "OK"}}}
        },
        "/operations/tickets/inbox": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["operations"],
                "summary": "Ticket inbox",
                "parameters": [
                    {"type": "string", "name": "estado", "in": "query"},
                    {"type": "integer", "name": "zona_id", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/operations/tickets/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["operations"], "summary": "Ticket detail", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/operations/tickets/{id}/assign": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["operations"], "summary": "Assign a ticket", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/operations/tickets/{id}/transfer": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["operations"], "summary": "Transfer a ticket", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/operations/gastos": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["operations"], "summary": "Register a project expense", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/operations/cobertura/sugerencias/{zona_id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["operations"], "summary": "Transfer targets for a zone", "parameters": [{"type": "integer", "name": "zona_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/public/zonas": {
            "get": {"tags": ["public"], "summary": "List municipal zones", "responses": {"200": {"description": "OK"}}}
        },
        "/public/evidence/upload": {
            "post": {
                "consumes": ["multipart/form-data"],
                "tags": ["public"],
                "summary": "Upload evidence",
                "parameters": [{"type": "file", "description": "JPEG, PNG or MP4", "name": "file", "in": "formData", "required": true}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/public/evidence/{name}": {
            "get": {"tags": ["public"], "summary": "Download evidence", "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/public/tickets": {
            "post": {
                "tags": ["public"],
                "summary": "Report an incident",
                "parameters": [{"type": "string", "description": "Client retry key", "name": "Idempotency-Key", "in": "header"}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/public/tickets/status/{uuid}": {
            "get": {"tags": ["public"], "summary": "Citizen ticket history", "parameters": [{"type": "string", "name": "uuid", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/public/chatbot/ask": {
            "post": {"tags": ["public"], "summary": "Ask the assistant", "responses": {"200": {"description": "OK"}}}
        },
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        }
    },
    "definitions": {
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.tokenResponse": {
            "type": "object",
            "properties": {"access_token": {"type": "string"}, "token_type": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Cuenca Resiliencia ERP API",
	Description:      "Environmental incident reporting and management backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
