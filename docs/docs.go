// Package docs registra el documento OpenAPI servido en /swagger.
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
        "/pets/{petID}/sources": {
            "put": {
                "description": "Reemplaza el snapshot completo de registros de la mascota. Solo disponible con almacenamiento in-memory.",
                "consumes": ["application/json"],
                "tags": ["timeline"],
                "summary": "Reemplazar colecciones fuente (modo dev)",
                "parameters": [
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true},
                    {"description": "Snapshot de las nueve colecciones + plan de nutrición", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/timeline.Sources"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "invalid json", "schema": {"type": "string"}},
                    "405": {"description": "sources are read-only", "schema": {"type": "string"}}
                }
            }
        },
        "/pets/{petID}/timeline": {
            "get": {
                "description": "Devuelve el timeline agrupado por día. Por defecto muestra hasta 12 eventos; con ` + "`" + `full=true` + "`" + ` devuelve todo. Alertas y progreso de hoy siempre se calculan sobre el timeline completo.",
                "produces": ["application/json"],
                "tags": ["timeline"],
                "summary": "Timeline de bienestar de una mascota",
                "parameters": [
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true},
                    {"type": "boolean", "description": "Mostrar el timeline completo", "name": "full", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/timeline.timelineResponse"}},
                    "400": {"description": "full inválido", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        },
        "/pets/{petID}/timeline/alerts": {
            "get": {
                "description": "Lista los eventos vencidos ordenados por prioridad de tipo y días de atraso. No depende del límite de visualización.",
                "produces": ["application/json"],
                "tags": ["timeline"],
                "summary": "Alertas urgentes",
                "parameters": [
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/timeline.alertResponse"}}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        },
        "/pets/{petID}/timeline/progress": {
            "get": {
                "description": "Minutos, distancia y calorías de las actividades completadas hoy.",
                "produces": ["application/json"],
                "tags": ["timeline"],
                "summary": "Progreso de hoy",
                "parameters": [
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/timeline.TodayProgress"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "timeline.Sources": {
            "type": "object",
            "properties": {
                "activities": {"type": "array", "items": {"type": "object"}},
                "meals": {"type": "array", "items": {"type": "object"}},
                "weights": {"type": "array", "items": {"type": "object"}},
                "grooming": {"type": "array", "items": {"type": "object"}},
                "vet_visits": {"type": "array", "items": {"type": "object"}},
                "vaccinations": {"type": "array", "items": {"type": "object"}},
                "checkups": {"type": "array", "items": {"type": "object"}},
                "treatments": {"type": "array", "items": {"type": "object"}},
                "treats": {"type": "array", "items": {"type": "object"}},
                "nutrition_plan": {"type": "object"}
            }
        },
        "timeline.TodayProgress": {
            "type": "object",
            "properties": {
                "minutes": {"type": "integer"},
                "distance": {"type": "number"},
                "calories": {"type": "integer"}
            }
        },
        "timeline.metricResponse": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "timeline.eventResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string", "enum": ["activity", "meal", "weight", "grooming", "vet_visit", "vaccination", "checkup", "treatment", "treat", "bowl_cleaning", "injury"]},
                "title": {"type": "string"},
                "timestamp": {"type": "string"},
                "status": {"type": "string", "enum": ["completed", "upcoming", "overdue"]},
                "metrics": {"type": "array", "items": {"$ref": "#/definitions/timeline.metricResponse"}},
                "source_id": {"type": "string"},
                "details": {"type": "object"},
                "metadata": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "timeline.dayResponse": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "label": {"type": "string"},
                "is_today": {"type": "boolean"},
                "is_yesterday": {"type": "boolean"},
                "events": {"type": "array", "items": {"$ref": "#/definitions/timeline.eventResponse"}}
            }
        },
        "timeline.alertResponse": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "event_id": {"type": "string"},
                "days_overdue": {"type": "integer"},
                "metadata": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "timeline.timelineResponse": {
            "type": "object",
            "properties": {
                "pet_id": {"type": "string"},
                "generated_at": {"type": "string"},
                "show_full": {"type": "boolean"},
                "total_events": {"type": "integer"},
                "shown_events": {"type": "integer"},
                "hidden_events": {"type": "integer"},
                "days": {"type": "array", "items": {"$ref": "#/definitions/timeline.dayResponse"}},
                "alerts": {"type": "array", "items": {"$ref": "#/definitions/timeline.alertResponse"}},
                "today_progress": {"$ref": "#/definitions/timeline.TodayProgress"}
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
	Title:            "Pet Wellness Timeline API",
	Description:      "Timeline de bienestar por mascota: eventos agrupados por día, alertas de vencidos y progreso de hoy.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
