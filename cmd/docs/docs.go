// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/ledger_backend/main.go -o cmd/docs
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
                "tags": ["auth"],
                "summary": "Admin login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "login", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/orders": {
            "post": {
                "tags": ["payments"],
                "summary": "Create a checkout order",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "order", "required": true, "schema": {"type": "object", "properties": {"amount": {"type": "number"}}}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/investments": {
            "post": {
                "tags": ["investments"],
                "summary": "Submit an investment",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "aadhaar", "in": "formData", "required": true},
                    {"type": "string", "name": "name", "in": "formData"},
                    {"type": "string", "name": "email", "in": "formData"},
                    {"type": "string", "name": "phone", "in": "formData"},
                    {"type": "string", "name": "plan", "in": "formData", "required": true},
                    {"type": "string", "name": "amount", "in": "formData", "required": true},
                    {"type": "string", "name": "referral", "in": "formData"},
                    {"type": "string", "name": "razorpay_order_id", "in": "formData"},
                    {"type": "string", "name": "razorpay_payment_id", "in": "formData"},
                    {"type": "string", "name": "razorpay_signature", "in": "formData"},
                    {"type": "file", "name": "front", "in": "formData", "required": true},
                    {"type": "file", "name": "back", "in": "formData", "required": true}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "502": {"description": "Bad Gateway"}}
            }
        },
        "/accounts/lookup": {
            "post": {
                "tags": ["accounts"],
                "summary": "Look up an account",
                "parameters": [{"in": "body", "name": "lookup", "required": true, "schema": {"type": "object", "properties": {"aadhaar": {"type": "string"}}}}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/withdrawals": {
            "post": {
                "tags": ["withdrawals"],
                "summary": "Request a withdrawal",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"type": "object", "properties": {"aadhaar": {"type": "string"}, "upi": {"type": "string"}, "bankAccount": {"type": "string"}, "ifsc": {"type": "string"}}}}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/admin/investments": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "List all investments", "responses": {"200": {"description": "OK"}}}},
        "/admin/investments/recent": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "List recent investments", "parameters": [{"type": "string", "name": "window", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/admin/plans/{plan}/investments": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "List investments of one plan", "parameters": [{"type": "string", "name": "plan", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/admin/accounts/{accountID}/investments/{index}": {"post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Override an investment", "parameters": [{"type": "string", "name": "accountID", "in": "path", "required": true}, {"type": "integer", "name": "index", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/admin/plans": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "List plans", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Create or update a plan", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/admin/referrals": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "List pending referrals", "responses": {"200": {"description": "OK"}}}},
        "/admin/referrals/{accountID}/approve": {"post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Approve a referral", "parameters": [{"type": "string", "name": "accountID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/admin/referrals/{accountID}/reject": {"post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Reject a referral", "parameters": [{"type": "string", "name": "accountID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/admin/withdrawals": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "List withdrawal requests", "responses": {"200": {"description": "OK"}}}},
        "/admin/withdrawals/{accountID}": {"post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Resolve a withdrawal", "parameters": [{"type": "string", "name": "accountID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/admin/accrual/run": {"post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Run the daily accrual now", "responses": {"200": {"description": "OK"}}}}
    },
    "definitions": {
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {"password": {"type": "string"}, "username": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Investment Ledger API",
	Description:      "Investment submissions, daily profit accrual, referrals and withdrawals.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
