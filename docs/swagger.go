package docs

import "github.com/swaggo/swag"

// @title           Pharus Task Board API
// @version         1.0
// @description     API for the Pharus task board: kanban and table views, task editing, and direct messaging

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Users
// @tag.description Registration, login and profile administration

// @tag.name Columns
// @tag.description Board column operations

// @tag.name Tasks
// @tag.description Task CRUD, drag-drop moves and completion

// @tag.name Board
// @tag.description Column and table view projections

// @tag.name Chat
// @tag.description Direct messages, unread counters and the realtime stream

// Register swagger info
var instance = &swag.Spec{InfoInstanceName: swag.Name}

func SwaggerInfo() *swag.Spec {
	return instance
}
