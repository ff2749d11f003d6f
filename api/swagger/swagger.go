package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CQT Cloud Platform API",
        "description": "Recruitment season and applicant workflow backend",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Credentials and sessions"},
        {"name": "Seasons", "description": "Recruitment season lifecycle"},
        {"name": "Recruitment", "description": "Applications, review and assignment"}
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a student credential",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already registered"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate by student id or email",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Return the authenticated caller",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/recruitment-seasons/current": {
            "get": {
                "tags": ["Seasons"],
                "summary": "Get the currently open recruitment season",
                "responses": {
                    "200": {"description": "OK, data is null when nothing is open", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/recruitment-seasons": {
            "get": {
                "tags": ["Seasons"],
                "summary": "List recruitment seasons",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Seasons"],
                "summary": "Delete a closed recruitment season",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "year", "in": "query", "required": true, "type": "integer"},
                    {"name": "type", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Season is still open"}
                }
            }
        },
        "/recruitment-seasons/open": {
            "post": {
                "tags": ["Seasons"],
                "summary": "Open or reopen a recruitment season",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/OpenSeasonRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/recruitment-seasons/close": {
            "post": {
                "tags": ["Seasons"],
                "summary": "Close one recruitment season",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SeasonKey"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/recruitment-seasons/close-all": {
            "post": {
                "tags": ["Seasons"],
                "summary": "Close every recruitment season",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/recruitment/apply": {
            "post": {
                "tags": ["Recruitment"],
                "summary": "Submit an application for the open recruitment season",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitApplyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "No open season, type mismatch, or already a member"},
                    "409": {"description": "Application already exists for this year"}
                }
            }
        },
        "/recruitment/my-application": {
            "get": {
                "tags": ["Recruitment"],
                "summary": "Get the caller's own application",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No application for this year"}
                }
            }
        },
        "/recruitment/applicants": {
            "get": {
                "tags": ["Recruitment"],
                "summary": "List applicants for administrators",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "type", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/recruitment/department-applicants": {
            "get": {
                "tags": ["Recruitment"],
                "summary": "List applicants scoped to the caller's managed departments",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/recruitment/review": {
            "post": {
                "tags": ["Recruitment"],
                "summary": "Apply one interview stage outcome to a batch of applicants",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReviewStageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/recruitment/assign": {
            "post": {
                "tags": ["Recruitment"],
                "summary": "Assign pending applicants into a department as members",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignFinalRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Department not found"}
                }
            }
        },
        "/recruitment/export": {
            "get": {
                "tags": ["Recruitment"],
                "summary": "Download the applicant roster of a year",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered roster file"}
                }
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "student_id": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["student_id", "email", "password"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "account": {"type": "string", "description": "Student id or email"},
                "password": {"type": "string"}
            },
            "required": ["account", "password"]
        },
        "OpenSeasonRequest": {
            "type": "object",
            "properties": {
                "year": {"type": "integer"},
                "type": {"type": "string", "enum": ["new_student", "internal_election"]},
                "title": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"}
            },
            "required": ["year", "type"]
        },
        "SeasonKey": {
            "type": "object",
            "properties": {
                "year": {"type": "integer"},
                "type": {"type": "string", "enum": ["new_student", "internal_election"]}
            },
            "required": ["year", "type"]
        },
        "SubmitApplyRequest": {
            "type": "object",
            "properties": {
                "recruitment_type": {"type": "string", "enum": ["new_student", "internal_election"]},
                "name": {"type": "string"},
                "gender": {"type": "string"},
                "college": {"type": "string"},
                "major": {"type": "string"},
                "grade": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "qq": {"type": "string"},
                "dormitory": {"type": "string"},
                "intention_dept1": {"type": "string"},
                "intention_dept2": {"type": "string"},
                "current_position": {"type": "string"},
                "election_position": {"type": "string"},
                "work_plan": {"type": "string"},
                "self_intro": {"type": "string"},
                "past_experience": {"type": "string"},
                "reason_for_joining": {"type": "string"},
                "skill_tags": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["name", "gender", "college", "major", "grade", "phone", "email", "intention_dept1", "reason_for_joining"]
        },
        "ReviewStageRequest": {
            "type": "object",
            "properties": {
                "year": {"type": "integer"},
                "student_ids": {"type": "array", "items": {"type": "string"}},
                "stage": {"type": "integer", "enum": [1, 2]},
                "pass": {"type": "boolean"},
                "remark": {"type": "string"}
            },
            "required": ["year", "student_ids", "stage", "pass"]
        },
        "AssignFinalRequest": {
            "type": "object",
            "properties": {
                "year": {"type": "integer"},
                "student_ids": {"type": "array", "items": {"type": "string"}},
                "department": {"type": "string"},
                "position": {"type": "string"}
            },
            "required": ["year", "student_ids", "department"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
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
