package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"todo-web/internal/middleware"
	"todo-web/internal/web/handlers"
	myws "todo-web/internal/websocket"
)

// RegisterRoutes mendaftarkan seluruh halaman aplikasi.
func RegisterRoutes(app *fiber.App) {
	app.Get("/", handlers.StartPage)

	// Auth
	app.Get("/login", handlers.LoginPage)
	app.Post("/login", handlers.Login)
	app.Get("/register", handlers.RegisterPage)
	app.Post("/register", handlers.Register)
	app.Get("/logout", handlers.Logout)

	// Halaman task
	app.Get("/home", handlers.Home)
	app.Get("/task_list", handlers.TaskList)
	app.Get("/read", handlers.ReadTask)
	app.Post("/read", middleware.RequireLogin, handlers.EditTask)
	app.Get("/new-task", middleware.RequireLogin, handlers.NewTaskPage)
	app.Post("/new-task", middleware.RequireLogin, handlers.CreateTask)
	app.Get("/delete", middleware.RequireLogin, handlers.DeleteTask)

	// Update live untuk halaman task list
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/tasklist", websocket.New(func(c *websocket.Conn) {
		client := &myws.Client{Conn: c}
		myws.TaskHub.Register <- client
		defer func() {
			myws.TaskHub.Unregister <- client
		}()
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
