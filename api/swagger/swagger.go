package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Chronos Schedule Engine API",
        "description": "Weekly timetable conflict detection and compliance engine",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Placements", "description": "Assignment placement, validation and bulk operations"},
        {"name": "Compliance", "description": "Guideline compliance reports"},
        {"name": "Availability", "description": "Teacher availability matrix"},
        {"name": "Observations", "description": "Teacher observations"},
        {"name": "Catalog", "description": "Reference data snapshot"},
        {"name": "Exports", "description": "Timetable downloads"}
    ],
    "paths": {
        "/placements": {
            "get": {
                "tags": ["Placements"],
                "summary": "List placements",
                "parameters": [
                    {"name": "groupId", "in": "query", "type": "string"},
                    {"name": "subjectId", "in": "query", "type": "string"},
                    {"name": "teacherId", "in": "query", "type": "string"},
                    {"name": "day", "in": "query", "type": "string"},
                    {"name": "blockId", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Placements"],
                "summary": "Commit a placement",
                "parameters": [
                    {"name": "strict", "in": "query", "type": "boolean"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PlacementRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Rejected by conflicts", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/placements/validate": {
            "post": {
                "tags": ["Placements"],
                "summary": "Validate a candidate placement without committing",
                "parameters": [
                    {"name": "strict", "in": "query", "type": "boolean"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PlacementRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/placements/bulk": {
            "post": {
                "tags": ["Placements"],
                "summary": "Execute a bulk delete, copy or move",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Atomic batch rejected", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/placements/{id}": {
            "put": {
                "tags": ["Placements"],
                "summary": "Re-place an existing assignment",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PlacementRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Rejected by conflicts", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Placements"],
                "summary": "Delete an assignment",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/groups/{id}/placements": {
            "get": {
                "tags": ["Placements"],
                "summary": "List placements for a group",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/groups/{id}/subjects/{subjectId}/compliance": {
            "get": {
                "tags": ["Compliance"],
                "summary": "Guideline compliance for a group and subject",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "subjectId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/groups/{id}/timetable/export": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export a group's weekly timetable",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/teachers/{id}/placements": {
            "get": {
                "tags": ["Placements"],
                "summary": "List placements for a teacher",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teachers/{id}/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "Weekly availability matrix for a teacher",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Availability"],
                "summary": "Toggle one availability slot",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ToggleAvailabilityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teachers/{id}/observations": {
            "get": {
                "tags": ["Observations"],
                "summary": "List observations for a teacher",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Observations"],
                "summary": "Attach an observation to a teacher",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateObservationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teachers/{id}/observations/{obsId}": {
            "delete": {
                "tags": ["Observations"],
                "summary": "Delete an observation",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "obsId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/teachers/{id}/timetable/export": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export a teacher's weekly timetable as PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/observations/predefined": {
            "get": {
                "tags": ["Observations"],
                "summary": "List the predefined observation catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Full reference snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/cache": {
            "delete": {
                "tags": ["Catalog"],
                "summary": "Drop the cached snapshot",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/subjects/{id}/teachers": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Teachers already assigned to a subject",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "PlacementRequest": {
            "type": "object",
            "properties": {
                "group_id": {"type": "string"},
                "subject_id": {"type": "string"},
                "teacher_id": {"type": "string"},
                "day": {"type": "string", "enum": ["MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY"]},
                "block_id": {"type": "string"},
                "strict": {"type": "boolean"}
            },
            "required": ["group_id", "subject_id", "teacher_id", "day", "block_id"]
        },
        "BulkRequest": {
            "type": "object",
            "properties": {
                "operation": {"type": "string", "enum": ["delete", "copy", "move"]},
                "assignment_ids": {"type": "array", "items": {"type": "string"}},
                "target": {"$ref": "#/definitions/BulkTarget"},
                "atomic": {"type": "boolean"},
                "strict": {"type": "boolean"}
            },
            "required": ["operation", "assignment_ids"]
        },
        "BulkTarget": {
            "type": "object",
            "properties": {
                "day": {"type": "string"},
                "block_id": {"type": "string"},
                "group_id": {"type": "string"}
            }
        },
        "ToggleAvailabilityRequest": {
            "type": "object",
            "properties": {
                "day": {"type": "string"},
                "block_id": {"type": "string"},
                "available": {"type": "boolean"}
            },
            "required": ["day", "block_id", "available"]
        },
        "CreateObservationRequest": {
            "type": "object",
            "properties": {
                "predefined_id": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "Conflict": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "severity": {"type": "string", "enum": ["error", "warning", "info"]},
                "message": {"type": "string"},
                "suggestions": {"type": "array", "items": {"$ref": "#/definitions/Suggestion"}}
            }
        },
        "Suggestion": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "day": {"type": "string"},
                "block_id": {"type": "string"},
                "teacher_id": {"type": "string"}
            }
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
