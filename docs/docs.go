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
    "securityDefinitions": {
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/health": {"get": {"tags": ["health"], "summary": "Liveness and dependency check", "responses": {"200": {"description": "OK"}, "503": {"description": "Degraded"}}}},
        "/auth/sessions": {
            "get": {"security": [{"Bearer": []}], "tags": ["auth-sessions"], "summary": "List auth sessions", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"Bearer": []}], "tags": ["auth-sessions"], "summary": "Register a login session", "responses": {"201": {"description": "Created"}}},
            "delete": {"security": [{"Bearer": []}], "tags": ["auth-sessions"], "summary": "End every auth session", "responses": {"200": {"description": "OK"}}}
        },
        "/auth/sessions/{id}": {"delete": {"security": [{"Bearer": []}], "tags": ["auth-sessions"], "summary": "End one auth session", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}},
        "/quiz-sessions": {
            "get": {"security": [{"Bearer": []}], "tags": ["quiz-sessions"], "summary": "List quiz session history", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"Bearer": []}], "tags": ["quiz-sessions"], "summary": "Create a quiz session", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/quiz-sessions/active": {"get": {"security": [{"Bearer": []}], "tags": ["quiz-sessions"], "summary": "Get the active quiz session", "responses": {"200": {"description": "OK"}}}},
        "/quiz-sessions/cleanup": {"post": {"security": [{"Bearer": []}], "tags": ["quiz-sessions"], "summary": "Repair orphaned quiz sessions", "responses": {"200": {"description": "OK"}}}},
        "/quiz-sessions/{id}/start": {"post": {"security": [{"Bearer": []}], "tags": ["quiz-sessions"], "summary": "Start a created session", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/quiz-sessions/{id}/resume": {"post": {"security": [{"Bearer": []}], "tags": ["quiz-sessions"], "summary": "Resume a paused session", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/quiz-sessions/{id}/answers/{question_id}": {"put": {"security": [{"Bearer": []}], "tags": ["quiz-sessions"], "summary": "Record an answer", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/quiz-sessions/{id}/flags/{question_id}": {"put": {"security": [{"Bearer": []}], "tags": ["quiz-sessions"], "summary": "Flag or unflag a question", "responses": {"200": {"description": "OK"}}}},
        "/quiz-sessions/{id}/pause": {"post": {"security": [{"Bearer": []}], "tags": ["quiz-sessions"], "summary": "Pause a session", "responses": {"200": {"description": "OK"}}}},
        "/quiz-sessions/{id}/end": {"post": {"security": [{"Bearer": []}], "tags": ["quiz-sessions"], "summary": "End a session", "responses": {"200": {"description": "OK"}}}},
        "/quiz-sessions/{id}/active-time": {"get": {"security": [{"Bearer": []}], "tags": ["quiz-sessions"], "summary": "Get active time", "responses": {"200": {"description": "OK"}}}},
        "/quiz-sessions/{id}/sync": {"post": {"security": [{"Bearer": []}], "tags": ["quiz-sessions"], "summary": "Sync client active time", "responses": {"200": {"description": "OK"}}}},
        "/quiz-sessions/{id}/results": {"get": {"security": [{"Bearer": []}], "tags": ["quiz-sessions"], "summary": "Get session results", "responses": {"200": {"description": "OK"}}}},
        "/questions": {"get": {"security": [{"Bearer": []}], "tags": ["questions"], "summary": "List questions", "responses": {"200": {"description": "OK"}}}},
        "/notes/{question_id}": {"put": {"security": [{"Bearer": []}], "tags": ["questions"], "summary": "Save a note", "responses": {"200": {"description": "OK"}}}},
        "/cache": {
            "get": {"security": [{"Bearer": []}], "tags": ["cache"], "summary": "Load the cached snapshot", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"Bearer": []}], "tags": ["cache"], "summary": "Save a snapshot", "responses": {"200": {"description": "OK"}}},
            "patch": {"security": [{"Bearer": []}], "tags": ["cache"], "summary": "Update a snapshot", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"Bearer": []}], "tags": ["cache"], "summary": "Clear the snapshot", "responses": {"204": {"description": "No Content"}}}
        },
        "/cache/reconcile": {"post": {"security": [{"Bearer": []}], "tags": ["cache"], "summary": "Reconcile the snapshot with the database", "responses": {"200": {"description": "OK"}}}},
        "/cache/resume": {"get": {"security": [{"Bearer": []}], "tags": ["cache"], "summary": "Resolve the session to resume", "responses": {"200": {"description": "OK"}}}},
        "/reports/summary": {"get": {"security": [{"Bearer": []}], "tags": ["reports"], "summary": "Performance summary", "responses": {"200": {"description": "OK"}}}},
        "/reports/progress": {"get": {"security": [{"Bearer": []}], "tags": ["reports"], "summary": "Progress over time", "responses": {"200": {"description": "OK"}}}},
        "/admin/auth-sessions/cleanup": {"post": {"security": [{"Bearer": []}], "tags": ["admin"], "summary": "Purge ended auth sessions", "responses": {"200": {"description": "OK"}}}},
        "/admin/quiz-sessions/sweep": {"post": {"security": [{"Bearer": []}], "tags": ["admin"], "summary": "Sweep orphaned quiz sessions", "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Medical Quiz API",
	Description:      "Quiz sessions, answer tracking and study reports for medical exam preparation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
