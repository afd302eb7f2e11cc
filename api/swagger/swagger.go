package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Roster API",
        "description": "Shift roster, availability and earnings service",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Account registration and token lifecycle"},
        {"name": "Workplaces", "description": "Employer records with pay rates"},
        {"name": "Availability", "description": "Weekly time slots and adhoc exceptions"},
        {"name": "Shifts", "description": "Work sessions and earning estimates"},
        {"name": "Agenda", "description": "Date-bucketed calendar views and live snapshot streams"},
        {"name": "Calendar", "description": "iCalendar subscription feed"}
    ],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Create account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh access token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/password": {
            "put": {
                "tags": ["Authentication"],
                "summary": "Change password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangePasswordRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Current password incorrect"}
                }
            }
        },
        "/auth/account": {
            "delete": {
                "tags": ["Authentication"],
                "summary": "Delete account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DeleteAccountRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Password incorrect"}
                }
            }
        },
        "/profile": {
            "get": {
                "tags": ["Profile"],
                "summary": "Get profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No profile saved"}
                }
            },
            "put": {
                "tags": ["Profile"],
                "summary": "Save profile",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed"}
                }
            }
        },
        "/workplaces": {
            "get": {
                "tags": ["Workplaces"],
                "summary": "List workplaces",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Workplaces"],
                "summary": "Create workplace",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/WorkplaceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate workplace name"}
                }
            }
        },
        "/workplaces/{id}": {
            "get": {
                "tags": ["Workplaces"],
                "summary": "Get workplace",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Workplaces"],
                "summary": "Update workplace",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/WorkplaceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Workplaces"],
                "summary": "Delete workplace",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/availability/slots": {
            "get": {
                "tags": ["Availability"],
                "summary": "List weekly time slots",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Availability"],
                "summary": "Create weekly time slot",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/adhocs": {
            "get": {
                "tags": ["Availability"],
                "summary": "List adhoc availability exceptions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Availability"],
                "summary": "Create adhoc availability exception",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/shifts": {
            "get": {
                "tags": ["Shifts"],
                "summary": "List work shifts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Shifts"],
                "summary": "Create work shift",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/shifts/{id}/earning": {
            "get": {
                "tags": ["Shifts"],
                "summary": "Estimated earning for a shift",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/agenda/shifts": {
            "get": {
                "tags": ["Agenda"],
                "summary": "Agenda view of work shifts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/agenda/adhocs": {
            "get": {
                "tags": ["Agenda"],
                "summary": "Agenda view of adhoc availability exceptions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar/shifts.ics": {
            "get": {
                "tags": ["Calendar"],
                "summary": "iCalendar feed of work shifts",
                "produces": ["text/calendar"],
                "responses": {
                    "200": {"description": "VCALENDAR document"}
                }
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "required": ["email", "full_name", "password"],
            "properties": {
                "email": {"type": "string"},
                "full_name": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "WorkplaceRequest": {
            "type": "object",
            "required": ["name", "abn", "address", "contact_name", "contact_phone", "contact_email", "frequency"],
            "properties": {
                "name": {"type": "string"},
                "abn": {"type": "string"},
                "address": {"type": "string"},
                "contact_name": {"type": "string"},
                "contact_phone": {"type": "string"},
                "contact_email": {"type": "string"},
                "frequency": {"type": "string", "enum": ["Day", "Hour"]},
                "standard_rate": {"type": "string"},
                "overtime_rate": {"type": "string"}
            }
        },
        "ChangePasswordRequest": {
            "type": "object",
            "required": ["current_password", "new_password"],
            "properties": {
                "current_password": {"type": "string"},
                "new_password": {"type": "string", "minLength": 6}
            }
        },
        "DeleteAccountRequest": {
            "type": "object",
            "required": ["password"],
            "properties": {
                "password": {"type": "string"}
            }
        },
        "ProfileRequest": {
            "type": "object",
            "required": ["first_name", "last_name", "gender", "birthday", "contact_phone", "contact_email", "address_line1"],
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "gender": {"type": "string", "enum": ["Male", "Female", "Other", "Prefer not to say"]},
                "birthday": {"type": "string", "format": "date-time"},
                "contact_phone": {"type": "string"},
                "contact_email": {"type": "string"},
                "address_line1": {"type": "string"},
                "address_line2": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "postcode": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "fields": {"type": "object"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"type": "object"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
