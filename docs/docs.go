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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponseDTO"}}
                }
            }
        },
        "/api/chat": {
            "post": {
                "description": "대화 턴 목록을 Gemini 로 전달하고 assistant 답변 한 개를 돌려준다.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Prompt Bridge",
                "parameters": [
                    {"description": "chat turns", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ChatRequestDTO"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ChatResponseDTO"}},
                    "400": {"description": "malformed_request", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "429": {"description": "rate_limited", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "500": {"description": "configuration_error 또는 upstream_error", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        },
        "/api/v1/ai-logs/{request_id}": {
            "get": {
                "description": "X-Request-Id 로 해당 요청이 만든 Gemini 호출 기록을 오래된 순으로 돌려준다. mongo.uri 가 설정된 경우에만 등록된다.",
                "produces": ["application/json"],
                "tags": ["ai-logs"],
                "summary": "Gemini 호출 기록 조회",
                "parameters": [
                    {"type": "string", "description": "X-Request-Id", "name": "request_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AILogsResponseDTO"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        },
        "/api/v1/auth/signin": {
            "post": {
                "description": "고정된 데모 계정(demo/demo)만 확인한다. 토큰이나 세션은 발급하지 않는다.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "데모 로그인",
                "parameters": [
                    {"description": "credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SignInRequestDTO"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SignInResponseDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        },
        "/api/v1/feedback": {
            "post": {
                "description": "assistant 답변에 대한 helpful / not-helpful 평가를 이벤트로 발행한다.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["feedback"],
                "summary": "답변 평가",
                "parameters": [
                    {"description": "feedback", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.FeedbackRequestDTO"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/dto.FeedbackResponseDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        },
        "/api/v1/sessions": {
            "post": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "대화 세션 생성",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.SessionDTO"}}
                }
            }
        },
        "/api/v1/sessions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "대화 세션 조회",
                "parameters": [
                    {"type": "string", "description": "세션 ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionDTO"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "대화 세션 종료",
                "parameters": [
                    {"type": "string", "description": "세션 ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponseDTO"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        },
        "/api/v1/sessions/{id}/messages": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "메시지 전송",
                "parameters": [
                    {"type": "string", "description": "세션 ID", "name": "id", "in": "path", "required": true},
                    {"description": "message", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SubmitMessageRequestDTO"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SubmitMessageResponseDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "409": {"description": "이전 답변 대기 중", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        },
        "/api/v1/sessions/{id}/conversations": {
            "post": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "새 대화 시작",
                "parameters": [
                    {"type": "string", "description": "세션 ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionDTO"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        },
        "/api/v1/sessions/{id}/conversations/{cid}/select": {
            "post": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "대화 선택",
                "parameters": [
                    {"type": "string", "description": "세션 ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "대화 ID", "name": "cid", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SelectConversationResponseDTO"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        },
        "/api/v1/sessions/{id}/suggestions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "추천 질문",
                "parameters": [
                    {"type": "string", "description": "세션 ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SuggestionsResponseDTO"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        }
    },
    "definitions": {
        "models.Turn": {
            "type": "object",
            "properties": {
                "role": {"type": "string", "enum": ["user", "assistant"]},
                "content": {"type": "string"},
                "timestamp": {"type": "string", "example": "14:05"}
            }
        },
        "models.Conversation": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "last_activity": {"type": "string", "example": "Just now"},
                "turns": {"type": "array", "items": {"$ref": "#/definitions/models.Turn"}},
                "created_at": {"type": "string"}
            }
        },
        "models.AILog": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "request_id": {"type": "string"},
                "model_name": {"type": "string"},
                "model_version": {"type": "string"},
                "prompt_mode": {"type": "string"},
                "turn_count": {"type": "integer"},
                "input_tokens": {"type": "integer"},
                "output_tokens": {"type": "integer"},
                "total_tokens": {"type": "integer"},
                "duration_ms": {"type": "integer"},
                "success": {"type": "boolean"},
                "error_message": {"type": "string"},
                "input_prompt": {"type": "string"},
                "output_response": {"type": "string"},
                "requested_at": {"type": "string"},
                "completed_at": {"type": "string"}
            }
        },
        "dto.AILogsResponseDTO": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "logs": {"type": "array", "items": {"$ref": "#/definitions/models.AILog"}}
            }
        },
        "dto.ChatTurnDTO": {
            "type": "object",
            "required": ["role"],
            "properties": {
                "role": {"type": "string", "enum": ["user", "assistant"], "example": "user"},
                "content": {"type": "string"}
            }
        },
        "dto.ChatRequestDTO": {
            "type": "object",
            "required": ["messages"],
            "properties": {
                "messages": {"type": "array", "items": {"$ref": "#/definitions/dto.ChatTurnDTO"}}
            }
        },
        "dto.ChatResponseDTO": {
            "type": "object",
            "properties": {
                "role": {"type": "string", "example": "assistant"},
                "content": {"type": "string"}
            }
        },
        "dto.ErrorResponseDTO": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Error processing your request"},
                "details": {"type": "string"},
                "code": {"type": "string", "example": "upstream_error"}
            }
        },
        "dto.MessageResponseDTO": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "deleted"}
            }
        },
        "dto.HealthResponseDTO": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"}
            }
        },
        "dto.SignInRequestDTO": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string", "example": "demo"},
                "password": {"type": "string", "example": "demo"}
            }
        },
        "dto.SignInResponseDTO": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "dto.FeedbackRequestDTO": {
            "type": "object",
            "required": ["content", "feedback"],
            "properties": {
                "content": {"type": "string"},
                "feedback": {"type": "string", "enum": ["helpful", "not-helpful"]},
                "session_id": {"type": "string"}
            }
        },
        "dto.FeedbackResponseDTO": {
            "type": "object",
            "properties": {
                "event_id": {"type": "string"}
            }
        },
        "dto.SessionDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "state": {"type": "string", "enum": ["idle", "sending"]},
                "sending": {"type": "boolean"},
                "turns": {"type": "array", "items": {"$ref": "#/definitions/models.Turn"}},
                "conversations": {"type": "array", "items": {"$ref": "#/definitions/models.Conversation"}},
                "active_conversation_id": {"type": "string"}
            }
        },
        "dto.SubmitMessageRequestDTO": {
            "type": "object",
            "required": ["content"],
            "properties": {
                "content": {"type": "string"}
            }
        },
        "dto.SubmitMessageResponseDTO": {
            "type": "object",
            "properties": {
                "user_turn": {"$ref": "#/definitions/models.Turn"},
                "reply": {"$ref": "#/definitions/models.Turn"},
                "failed": {"type": "boolean"},
                "error": {"$ref": "#/definitions/dto.ErrorResponseDTO"},
                "conversation": {"$ref": "#/definitions/models.Conversation"},
                "conversation_created": {"type": "boolean"}
            }
        },
        "dto.SelectConversationResponseDTO": {
            "type": "object",
            "properties": {
                "selected": {"type": "boolean"},
                "session": {"$ref": "#/definitions/dto.SessionDTO"}
            }
        },
        "dto.SuggestionsResponseDTO": {
            "type": "object",
            "properties": {
                "suggestions": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "VB Capital AI API",
	Description:      "Gemini prompt bridge, chat sessions and demo sign-in for VB Capital AI",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
