package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"todo-web/internal/config"
	"todo-web/internal/forms"
	"todo-web/internal/session"
	"todo-web/internal/store"
	"todo-web/internal/web/view"
	"todo-web/pkg/logger"
)

// Auth handlers

// LoginPage menampilkan halaman login.
func LoginPage(c *fiber.Ctx) error {
	return c.Render("login", view.BaseData(c), "layouts/main")
}

// Login memproses form login: cek email dulu, lalu cocokkan hash password.
func Login(c *fiber.Ctx) error {
	form, result := forms.ParseLogin(c)
	if !result.Valid() {
		// form tidak valid: render ulang halaman login dengan pesan per field,
		// tanpa menyentuh database
		data := view.BaseData(c)
		data["Form"] = form
		data["Errors"] = result.Errors
		return c.Render("login", data, "layouts/main")
	}

	user, err := store.FindUserByEmail(config.DB, form.Email)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching user by email", zap.Error(err))
		return view.RenderError(c, fiber.StatusInternalServerError, "Error fetching user")
	}
	if user == nil {
		logger.SecurityLogger.Warn("Login with unknown email", zap.String("email", form.Email))
		session.Flash(c, "That email does not exist, please try again.")
		return c.Redirect("/login")
	}

	// user.Password -> hash yang ada di database
	// form.Password -> password yang dikirimkan oleh user
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(form.Password)); err != nil {
		logger.SecurityLogger.Warn("Login with wrong password", zap.Int("user_id", user.ID))
		session.Flash(c, "Password incorrect, please try again.")
		return c.Redirect("/login")
	}

	if err := session.Login(c, user); err != nil {
		logger.ErrorLogger.Error("Error opening session", zap.Error(err))
		return view.RenderError(c, fiber.StatusInternalServerError, "Error opening session")
	}

	logger.AuditLogger.Info("Login success", zap.Int("user_id", user.ID))
	return c.Redirect("/home")
}

// RegisterPage menampilkan halaman registrasi.
func RegisterPage(c *fiber.Ctx) error {
	return c.Render("register", view.BaseData(c), "layouts/main")
}

// Register memproses registrasi: email yang sudah terdaftar diarahkan ke login,
// selain itu password di-hash, user dibuat, lalu langsung dibuka sesi.
func Register(c *fiber.Ctx) error {
	form, result := forms.ParseRegister(c)
	if !result.Valid() {
		data := view.BaseData(c)
		data["Form"] = form
		data["Errors"] = result.Errors
		return c.Render("register", data, "layouts/main")
	}

	existing, err := store.FindUserByEmail(config.DB, form.Email)
	if err != nil {
		logger.ErrorLogger.Error("Error checking existing email", zap.Error(err))
		return view.RenderError(c, fiber.StatusInternalServerError, "Error checking email")
	}
	if existing != nil {
		session.Flash(c, "You've already signed up with that email, log in instead!")
		return c.Redirect("/login")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorLogger.Error("Error hashing password", zap.Error(err))
		return view.RenderError(c, fiber.StatusInternalServerError, "Error hashing password")
	}

	user, err := store.CreateUser(config.DB, form.Email, string(hashedPassword))
	if err == store.ErrDuplicateEmail {
		// dua registrasi dengan email sama bisa lolos pre-check secara bersamaan,
		// unique constraint yang menangkap sisanya
		logger.SecurityLogger.Warn("Duplicate email on register", zap.String("email", form.Email))
		session.Flash(c, "You've already signed up with that email, log in instead!")
		return c.Redirect("/login")
	}
	if err != nil {
		logger.ErrorLogger.Error("Error creating user", zap.Error(err))
		return view.RenderError(c, fiber.StatusInternalServerError, "Error creating user")
	}

	if err := session.Login(c, user); err != nil {
		logger.ErrorLogger.Error("Error opening session", zap.Error(err))
		return view.RenderError(c, fiber.StatusInternalServerError, "Error opening session")
	}

	logger.AuditLogger.Info("User registered", zap.Int("user_id", user.ID))
	return c.Redirect("/login")
}

// Logout menutup sesi dan kembali ke halaman pembuka.
func Logout(c *fiber.Ctx) error {
	session.Logout(c)
	return c.Redirect("/")
}
