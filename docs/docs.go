// Package docs registers the OpenAPI description served under /swagger/.
// Regenerate with `swag init -g cmd/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {"name": "MIT", "url": "https://opensource.org/licenses/MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/customers": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Customers"],
                "summary": "List customers",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "pageSize", "in": "query"},
                    {"type": "string", "name": "city", "in": "query"},
                    {"type": "string", "name": "state", "in": "query"},
                    {"type": "string", "name": "pincode", "in": "query"},
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "string", "name": "sortBy", "in": "query"},
                    {"enum": ["asc", "desc"], "type": "string", "name": "sortDir", "in": "query"},
                    {"type": "string", "name": "onlyMultipleAddresses", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Page of customers", "schema": {"$ref": "#/definitions/dto.CustomerListResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Customers"],
                "summary": "Create a new customer",
                "parameters": [
                    {"description": "Customer creation request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateCustomerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Customer created", "schema": {"$ref": "#/definitions/dto.IDResponse"}},
                    "400": {"description": "validation_failed", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "email_exists", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/customers/{customerID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Customers"],
                "summary": "Retrieve a customer",
                "parameters": [{"type": "string", "name": "customerID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Customer details", "schema": {"$ref": "#/definitions/dto.CustomerDetailResponse"}},
                    "404": {"description": "not_found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Customers"],
                "summary": "Update a customer",
                "parameters": [
                    {"type": "string", "name": "customerID", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CustomerInput"}}
                ],
                "responses": {
                    "200": {"description": "Customer updated", "schema": {"$ref": "#/definitions/dto.UpdatedResponse"}},
                    "400": {"description": "validation_failed or no_fields", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "not_found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "email_exists", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Customers"],
                "summary": "Delete a customer",
                "parameters": [{"type": "string", "name": "customerID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Customer deleted", "schema": {"$ref": "#/definitions/dto.DeletedResponse"}},
                    "400": {"description": "linked_transactions with count", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "not_found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/customers/{customerID}/addresses": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Addresses"],
                "summary": "List a customer's addresses",
                "description": "Primary address first, then newest first. An unknown customer id returns 404 customer_not_found rather than an empty list.",
                "parameters": [{"type": "string", "name": "customerID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Addresses", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.AddressResponse"}}},
                    "404": {"description": "customer_not_found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Addresses"],
                "summary": "Add an address to a customer",
                "parameters": [
                    {"type": "string", "name": "customerID", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AddressInput"}}
                ],
                "responses": {
                    "201": {"description": "Address created", "schema": {"$ref": "#/definitions/dto.IDResponse"}},
                    "400": {"description": "line1_required", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "customer_not_found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/customers/{customerID}/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Transactions"],
                "summary": "List a customer's transactions",
                "parameters": [{"type": "string", "name": "customerID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Transactions and total", "schema": {"$ref": "#/definitions/dto.LedgerResponse"}},
                    "404": {"description": "customer_not_found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/addresses/{addressID}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Addresses"],
                "summary": "Update an address",
                "parameters": [
                    {"type": "string", "name": "addressID", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AddressInput"}}
                ],
                "responses": {
                    "200": {"description": "Address updated", "schema": {"$ref": "#/definitions/dto.UpdatedResponse"}},
                    "400": {"description": "no_fields or line1_required", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "not_found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Addresses"],
                "summary": "Delete an address",
                "parameters": [{"type": "string", "name": "addressID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Address deleted", "schema": {"$ref": "#/definitions/dto.DeletedResponse"}},
                    "404": {"description": "not_found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/auth/token": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Authentication"],
                "summary": "Generate a JWT bearer token",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.TokenRequest"}}],
                "responses": {
                    "200": {"description": "Token", "schema": {"$ref": "#/definitions/dto.TokenResponse"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Wrong or missing admin password while auth is enabled", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/health": {"get": {"tags": ["Health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}}}},
        "/ready": {"get": {"tags": ["Health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}, "503": {"description": "Database unreachable", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}}}}
    },
    "definitions": {
        "dto.CustomerInput": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "phone": {"type": "string", "example": "9876543210"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "pincode": {"type": "string", "example": "560001"},
                "email": {"type": "string"},
                "account_type": {"type": "string"}
            }
        },
        "dto.AddressInput": {
            "type": "object",
            "properties": {
                "line1": {"type": "string"},
                "line2": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "pincode": {"type": "string"},
                "country": {"type": "string", "example": "India"},
                "is_primary": {"type": "boolean"}
            }
        },
        "dto.CreateCustomerRequest": {
            "allOf": [
                {"$ref": "#/definitions/dto.CustomerInput"},
                {"type": "object", "properties": {"address": {"$ref": "#/definitions/dto.AddressInput"}}}
            ]
        },
        "dto.CustomerResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "phone": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "pincode": {"type": "string"},
                "email": {"type": "string"},
                "account_type": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "dto.CustomerSummaryResponse": {
            "allOf": [
                {"$ref": "#/definitions/dto.CustomerResponse"},
                {"type": "object", "properties": {"address_count": {"type": "integer"}, "onlyOneAddress": {"type": "boolean"}}}
            ]
        },
        "dto.CustomerListResponse": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/dto.CustomerSummaryResponse"}}
            }
        },
        "dto.CustomerDetailResponse": {
            "allOf": [
                {"$ref": "#/definitions/dto.CustomerResponse"},
                {"type": "object", "properties": {
                    "addresses": {"type": "array", "items": {"$ref": "#/definitions/dto.AddressResponse"}},
                    "transactions": {"type": "array", "items": {"$ref": "#/definitions/dto.TransactionResponse"}}
                }}
            ]
        },
        "dto.AddressResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "customer_id": {"type": "string"},
                "line1": {"type": "string"},
                "line2": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "pincode": {"type": "string"},
                "country": {"type": "string"},
                "is_primary": {"type": "boolean"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "dto.TransactionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "customer_id": {"type": "string"},
                "detail": {"type": "string"},
                "amount": {"type": "number"},
                "created_at": {"type": "string"}
            }
        },
        "dto.LedgerResponse": {
            "type": "object",
            "properties": {
                "total": {"type": "number"},
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/dto.TransactionResponse"}}
            }
        },
        "dto.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "field": {"type": "string"},
                "fields": {"type": "array", "items": {"type": "string"}},
                "count": {"type": "integer"}
            }
        },
        "dto.ErrorResponse": {"type": "object", "properties": {"error": {"$ref": "#/definitions/dto.ErrorDetail"}}},
        "dto.IDResponse": {"type": "object", "properties": {"id": {"type": "string"}}},
        "dto.UpdatedResponse": {"type": "object", "properties": {"updated": {"type": "boolean"}}},
        "dto.DeletedResponse": {"type": "object", "properties": {"deleted": {"type": "boolean"}}},
        "dto.HealthResponse": {"type": "object", "properties": {"status": {"type": "string"}}},
        "dto.TokenRequest": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "dto.TokenResponse": {"type": "object", "properties": {"token": {"type": "string"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Customer Registry API",
	Description:      "Customers, their addresses and their transactions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
