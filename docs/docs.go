// Package docs registers the Swagger 2.0 document served under /swagger/.
// It follows the layout swag init emits but is maintained by hand; keep it in step with
// the @Router annotations on the controllers.
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
        "/api/contact": {
            "get": {
                "produces": ["application/json"],
                "tags": ["contact"],
                "summary": "List contact submissions",
                "parameters": [
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (max 100)", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Status filter", "name": "status", "in": "query"},
                    {"type": "string", "description": "Search first name, last name, email or subject", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["contact"],
                "summary": "Submit contact form",
                "parameters": [
                    {"description": "Contact message", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.ContactSubmitRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/contact/stats/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["contact"],
                "summary": "Contact statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/contact/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["contact"],
                "summary": "Get contact submission",
                "parameters": [
                    {"type": "integer", "description": "Submission ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/contact/{id}/status": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["contact"],
                "summary": "Update contact status",
                "parameters": [
                    {"type": "integer", "description": "Submission ID", "name": "id", "in": "path", "required": true},
                    {"description": "New status", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.UpdateContactStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/membership": {
            "get": {
                "produces": ["application/json"],
                "tags": ["membership"],
                "summary": "List membership applications",
                "parameters": [
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (max 100)", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Status filter", "name": "status", "in": "query"},
                    {"type": "string", "description": "Membership type filter", "name": "membershipType", "in": "query"},
                    {"type": "string", "description": "Programming experience filter", "name": "programmingExperience", "in": "query"},
                    {"type": "string", "description": "Search first name, last name, email or course", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["membership"],
                "summary": "Submit membership application",
                "parameters": [
                    {"description": "Application", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.MembershipSubmitRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/membership/check-email/{email}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["membership"],
                "summary": "Check whether an email already applied",
                "parameters": [
                    {"type": "string", "description": "Email address, optionally percent-encoded", "name": "email", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/membership/stats/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["membership"],
                "summary": "Membership statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/membership/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["membership"],
                "summary": "Get membership application",
                "parameters": [
                    {"type": "integer", "description": "Application ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/membership/{id}/status": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["membership"],
                "summary": "Update application status",
                "parameters": [
                    {"type": "integer", "description": "Application ID", "name": "id", "in": "path", "required": true},
                    {"description": "New status", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.UpdateMembershipStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Dashboard statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.ContactSubmitRequest": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "subject": {"type": "string", "enum": ["general", "membership", "events", "collaboration", "technical", "feedback"]},
                "message": {"type": "string"}
            }
        },
        "controllers.UpdateContactStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["pending", "read", "responded"]}
            }
        },
        "controllers.MembershipSubmitRequest": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "studentId": {"type": "string"},
                "course": {"type": "string"},
                "yearOfStudy": {"type": "string", "enum": ["1st Year", "2nd Year", "3rd Year", "4th Year", "Graduate", "Post Graduate", "PhD"]},
                "branch": {"type": "string"},
                "membershipType": {"type": "string", "enum": ["student", "alumni"]},
                "programmingExperience": {"type": "string", "enum": ["beginner", "intermediate", "advanced"]},
                "interests": {"type": "array", "items": {"type": "string"}},
                "githubProfile": {"type": "string"},
                "linkedinProfile": {"type": "string"},
                "whyJoin": {"type": "string"},
                "previousExperience": {"type": "string"},
                "expectations": {"type": "string"},
                "heardAboutUs": {"type": "string", "enum": ["social-media", "friends", "college-notice", "website", "event", "teacher", "other"]},
                "agreeTerms": {"type": "boolean"},
                "newsletterSubscribe": {"type": "boolean"}
            }
        },
        "controllers.UpdateMembershipStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["pending", "approved", "rejected", "reviewing"]},
                "approvedBy": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "controllers.HealthResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "timestamp": {"type": "string"},
                "environment": {"type": "string"},
                "version": {"type": "string"},
                "database": {"type": "string"},
                "uptime": {"type": "number"}
            }
        },
        "domain.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "helpers.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/domain.FieldError"}},
                "detail": {"type": "string"}
            }
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Code_d_Code Backend API",
	Description:      "Contact form and membership application backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
