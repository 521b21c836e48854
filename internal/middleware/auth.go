package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"todo-web/internal/config"
	"todo-web/internal/session"
	"todo-web/internal/store"
	"todo-web/internal/web/view"
	"todo-web/pkg/logger"
)

// LoadIdentity mengambil identitas dari sesi sekali per request dan
// menyimpannya di locals, supaya handler dan view menerima identitas
// sebagai nilai eksplisit, bukan lookup global.
func LoadIdentity(c *fiber.Ctx) error {
	userID := session.CurrentUserID(c)
	c.Locals("userID", userID)

	if userID != 0 {
		user, err := store.FindUserByID(config.DB, userID)
		if err == store.ErrNotFound {
			// Sesi menunjuk identitas yang sudah tidak ada, fatal untuk request ini.
			// Halaman error dirender sebagai anonim supaya navbar tidak
			// menampilkan identitas yang barusan gagal di-resolve.
			logger.SecurityLogger.Warn("Session user not found", zap.Int("user_id", userID))
			c.Locals("userID", 0)
			return view.RenderError(c, fiber.StatusNotFound, "User not found")
		}
		if err != nil {
			logger.ErrorLogger.Error("Error resolving session user", zap.Error(err))
			c.Locals("userID", 0)
			return view.RenderError(c, fiber.StatusInternalServerError, "Error resolving user")
		}
		c.Locals("userEmail", user.Email)
	}
	return c.Next()
}

// RequireLogin menolak request anonim pada route yang mengubah task.
func RequireLogin(c *fiber.Ctx) error {
	if userID, ok := c.Locals("userID").(int); !ok || userID == 0 {
		session.Flash(c, "Please log in first.")
		return c.Redirect("/login")
	}
	return c.Next()
}
