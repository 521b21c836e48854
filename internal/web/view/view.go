package view

import (
	"github.com/gofiber/fiber/v2"

	"todo-web/internal/session"
)

// BaseData menyusun data dasar untuk setiap halaman: identitas + flash.
// Semua render, termasuk halaman error dari middleware, lewat sini supaya
// navbar dan flash message selalu konsisten.
func BaseData(c *fiber.Ctx) fiber.Map {
	data := fiber.Map{
		"LoggedIn": false,
	}
	if userID, ok := c.Locals("userID").(int); ok && userID != 0 {
		data["LoggedIn"] = true
		data["UserID"] = userID
	}
	if email, ok := c.Locals("userEmail").(string); ok {
		data["UserEmail"] = email
	}
	data["Flashes"] = session.PopFlashes(c)
	return data
}

// CurrentUserID membaca identitas yang sudah dimuat middleware, 0 untuk anonim.
func CurrentUserID(c *fiber.Ctx) int {
	if userID, ok := c.Locals("userID").(int); ok {
		return userID
	}
	return 0
}

// RenderError menampilkan halaman error dengan status yang diberikan.
func RenderError(c *fiber.Ctx, status int, message string) error {
	data := BaseData(c)
	data["Status"] = status
	data["Message"] = message
	return c.Status(status).Render("error", data, "layouts/main")
}
