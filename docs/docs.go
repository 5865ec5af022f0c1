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
        "/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Данные дашборда",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/teams": {
            "get": {"produces": ["application/json"], "tags": ["teams"], "summary": "Список команд", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["teams"], "summary": "Создать команду", "responses": {"201": {"description": "Created"}, "403": {"description": "Режим редактирования выключен"}, "409": {"description": "ID уже занят"}}}
        },
        "/teams/{teamID}": {
            "get": {"produces": ["application/json"], "tags": ["teams"], "summary": "Команда по ID", "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Команда не найдена"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["teams"], "summary": "Заменить команду", "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["teams"], "summary": "Удалить команду", "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/teams/{teamID}/logo": {
            "post": {"security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "tags": ["teams"], "summary": "Загрузить логотип команды", "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}, {"type": "file", "name": "logo", "in": "formData", "required": true}], "responses": {"200": {"description": "OK"}, "503": {"description": "Загрузка не настроена"}}}
        },
        "/players": {
            "get": {"produces": ["application/json"], "tags": ["players"], "summary": "Список игроков", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["players"], "summary": "Создать игрока", "responses": {"201": {"description": "Created"}}}
        },
        "/players/{playerID}": {
            "get": {"tags": ["players"], "summary": "Игрок по ID", "parameters": [{"type": "string", "name": "playerID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Игрок не найден"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["players"], "summary": "Заменить игрока", "parameters": [{"type": "string", "name": "playerID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["players"], "summary": "Удалить игрока", "parameters": [{"type": "string", "name": "playerID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/players/{playerID}/avatar": {
            "post": {"security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "tags": ["players"], "summary": "Загрузить аватар игрока", "parameters": [{"type": "string", "name": "playerID", "in": "path", "required": true}, {"type": "file", "name": "avatar", "in": "formData", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/brackets": {
            "get": {"tags": ["brackets"], "summary": "Список сеток", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["brackets"], "summary": "Создать сетку", "responses": {"201": {"description": "Created"}}}
        },
        "/brackets/generate": {
            "post": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "tags": ["brackets"], "summary": "Сгенерировать сетку", "responses": {"201": {"description": "Created"}, "400": {"description": "Ошибка валидации"}}}
        },
        "/brackets/{bracketID}": {
            "get": {"tags": ["brackets"], "summary": "Сетка по ID", "parameters": [{"type": "string", "name": "bracketID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Сетка не найдена"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["brackets"], "summary": "Заменить сетку", "parameters": [{"type": "string", "name": "bracketID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["brackets"], "summary": "Удалить сетку", "parameters": [{"type": "string", "name": "bracketID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/session/login": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["session"], "summary": "Вход администратора", "responses": {"200": {"description": "OK"}, "401": {"description": "Неверный пароль"}}}
        },
        "/session": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["session"], "summary": "Состояние сессии", "responses": {"200": {"description": "OK"}, "401": {"description": "Сессия не найдена"}}}
        },
        "/session/edit-mode": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["session"], "summary": "Включить режим редактирования", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["session"], "summary": "Выключить режим редактирования", "responses": {"200": {"description": "OK"}}}
        },
        "/session/logout": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["session"], "summary": "Выход администратора", "responses": {"200": {"description": "OK"}, "409": {"description": "Есть несохранённые изменения"}}}
        },
        "/edits": {
            "post": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "tags": ["edits"], "summary": "Применить правку поля", "responses": {"200": {"description": "OK"}, "400": {"description": "Неизвестный тип поля или нет нужного ID"}, "403": {"description": "Режим редактирования выключен"}, "404": {"description": "Объект не найден"}, "409": {"description": "Идёт загрузка или сохранение"}}}
        },
        "/save": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["edits"], "summary": "Сохранить изменения", "responses": {"200": {"description": "OK"}, "500": {"description": "Ошибка сохранения"}}}
        },
        "/discard": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["edits"], "summary": "Отменить изменения", "responses": {"200": {"description": "OK"}, "500": {"description": "Ошибка загрузки"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Tournament Dashboard API",
	Description:      "Competition dashboard: public read API, admin session, in-place edits, save and discard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
