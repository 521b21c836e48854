package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"todo-web/internal/config"
	"todo-web/internal/store"
	"todo-web/internal/web/view"
	"todo-web/pkg/logger"
)

// StartPage menampilkan halaman pembuka.
func StartPage(c *fiber.Ctx) error {
	return c.Render("startpage", view.BaseData(c), "layouts/main")
}

// Home menampilkan homepage. User yang login melihat task miliknya sendiri.
func Home(c *fiber.Ctx) error {
	data := view.BaseData(c)
	if userID := view.CurrentUserID(c); userID != 0 {
		tasks, err := store.TasksByOwner(config.DB, userID)
		if err != nil {
			logger.ErrorLogger.Error("Error fetching user's tasks", zap.Error(err))
			return view.RenderError(c, fiber.StatusInternalServerError, "Error fetching tasks")
		}
		data["Tasks"] = tasks
	}
	return c.Render("index", data, "layouts/main")
}
