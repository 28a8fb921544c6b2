// Package docs registers the OpenAPI document served at /swagger/doc.json.
// Regenerate from the handler annotations with `swag init`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
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
        "/auth/signup": {
            "post": {
                "tags": ["Auth"],
                "summary": "User Signup",
                "parameters": [{"in": "body", "name": "signupBody", "required": true, "schema": {"$ref": "#/definitions/auth.SignupRequest"}}],
                "responses": {
                    "201": {"description": "User created", "schema": {"$ref": "#/definitions/auth.UserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/auth/signin": {
            "post": {
                "tags": ["Auth"],
                "summary": "User Signin",
                "parameters": [{"in": "body", "name": "signinBody", "required": true, "schema": {"$ref": "#/definitions/auth.SigninRequest"}}],
                "responses": {
                    "200": {"description": "Signed in", "schema": {"$ref": "#/definitions/auth.TokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Refresh Access Token",
                "parameters": [{"in": "body", "name": "refreshBody", "required": true, "schema": {"$ref": "#/definitions/auth.RefreshTokenRequest"}}],
                "responses": {
                    "200": {"description": "Token refreshed", "schema": {"$ref": "#/definitions/auth.TokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/home": {
            "get": {
                "tags": ["Homes"],
                "summary": "List homes",
                "parameters": [
                    {"in": "query", "name": "city", "type": "string"},
                    {"in": "query", "name": "minPrice", "type": "number"},
                    {"in": "query", "name": "maxPrice", "type": "number"},
                    {"in": "query", "name": "propertyType", "type": "string", "enum": ["RESIDENTIAL", "CONDO"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/homes.HomeResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Homes"],
                "summary": "Create a home",
                "parameters": [{"in": "body", "name": "home", "required": true, "schema": {"$ref": "#/definitions/homes.CreateHomeRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/homes.HomeResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/home/{id}": {
            "get": {
                "tags": ["Homes"],
                "summary": "Get a home",
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/homes.HomeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["Homes"],
                "summary": "Update a home",
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "body", "name": "home", "required": true, "schema": {"$ref": "#/definitions/homes.UpdateHomeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/homes.HomeResponse"}},
                    "403": {"description": "Forbidden - Not the owner", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Homes"],
                "summary": "Delete a home",
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "403": {"description": "Forbidden - Not the owner", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/home/{id}/realtor": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Homes"],
                "summary": "Get the realtor of a home",
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/homes.Realtor"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Get current user's profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.UserProfileResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Update current user's profile",
                "parameters": [{"in": "body", "name": "userProfile", "required": true, "schema": {"$ref": "#/definitions/users.UpdateUserProfileRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.UserProfileResponse"}}
                }
            }
        }
    },
    "definitions": {
        "apperror.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "auth.SignupRequest": {
            "type": "object",
            "required": ["name", "phone", "email", "password"],
            "properties": {
                "name": {"type": "string"},
                "phone": {"type": "string", "example": "555 555-0123"},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 5}
            }
        },
        "auth.SigninRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "auth.RefreshTokenRequest": {
            "type": "object",
            "required": ["refresh_token"],
            "properties": {"refresh_token": {"type": "string"}}
        },
        "auth.TokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "refresh_token": {"type": "string"},
                "token_type": {"type": "string"},
                "expires_in": {"type": "integer"}
            }
        },
        "auth.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "user_type": {"type": "string", "enum": ["BUYER", "REALTOR", "ADMIN"]},
                "created_at": {"type": "string"}
            }
        },
        "homes.HomeResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "address": {"type": "string"},
                "city": {"type": "string"},
                "price": {"type": "number"},
                "land_size": {"type": "number"},
                "number_of_bedrooms": {"type": "integer"},
                "number_of_bathrooms": {"type": "number"},
                "property_type": {"type": "string", "enum": ["RESIDENTIAL", "CONDO"]},
                "listed_date": {"type": "string"},
                "realtor_id": {"type": "integer"},
                "image": {"type": "string"},
                "images": {"type": "array", "items": {"type": "string"}},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "homes.CreateHomeRequest": {
            "type": "object",
            "required": ["address", "city", "property_type"],
            "properties": {
                "address": {"type": "string"},
                "city": {"type": "string"},
                "price": {"type": "number"},
                "land_size": {"type": "number"},
                "number_of_bedrooms": {"type": "integer"},
                "number_of_bathrooms": {"type": "number"},
                "property_type": {"type": "string", "enum": ["RESIDENTIAL", "CONDO"]},
                "images": {"type": "array", "items": {"type": "object", "properties": {"url": {"type": "string"}}}}
            }
        },
        "homes.UpdateHomeRequest": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "city": {"type": "string"},
                "price": {"type": "number"},
                "land_size": {"type": "number"},
                "number_of_bedrooms": {"type": "integer"},
                "number_of_bathrooms": {"type": "number"},
                "property_type": {"type": "string", "enum": ["RESIDENTIAL", "CONDO"]}
            }
        },
        "homes.Realtor": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "users.UserProfileResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "user_type": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "users.UpdateUserProfileRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "phone": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type 'Bearer YOUR_JWT_TOKEN' to authorize",
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Realtor API",
	Description:      "Home listings for buyers and realtors.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
