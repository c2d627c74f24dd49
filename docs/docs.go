// Package docs registers the OpenAPI description served at /docs.
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
                "tags": ["Auth"],
                "summary": "Login User",
                "parameters": [{"in": "body", "name": "credentials", "required": true, "schema": {"$ref": "#/definitions/models.UserLoginPayload"}}],
                "responses": {"200": {"description": "Login berhasil", "schema": {"$ref": "#/definitions/models.LoginSuccessResponse"}}}
            }
        },
        "/attendance/{id}/check-in": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Attendance"],
                "summary": "Check-in karyawan",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Sudah check-in hari ini"}}
            }
        },
        "/attendance/{id}/check-out": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Attendance"],
                "summary": "Check-out karyawan",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Belum check-in atau sudah check-out"}}
            }
        },
        "/attendance/{id}/leave": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Leave"],
                "summary": "Ajukan cuti",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "422": {"description": "Sisa cuti tidak mencukupi"}}
            }
        },
        "/attendance/{id}/monthly": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Attendance"],
                "summary": "Rekap absensi bulanan",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "month", "in": "query"},
                    {"type": "integer", "name": "year", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/payroll/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Payroll"],
                "summary": "Hitung gaji karyawan",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "month", "in": "query"},
                    {"type": "integer", "name": "year", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Tipe penggajian tidak didukung"}}
            }
        },
        "/payroll/report": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Payroll"],
                "summary": "Laporan gaji seluruh karyawan aktif",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "models.UserLoginPayload": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "models.LoginSuccessResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Login berhasil"},
                "token": {"type": "string"},
                "user_id": {"type": "string"},
                "role": {"type": "string", "example": "staff"},
                "is_first_login": {"type": "boolean"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Format: Bearer <token>",
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
	Title:            "Sistem Manajemen Restoran API",
	Description:      "Absensi staf restoran, cuti, dan penggajian.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
