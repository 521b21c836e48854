package forms

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"todo-web/internal/config"
)

// Satu struct per bentuk input. Aturannya hanya "wajib diisi",
// tidak ada validasi format email atau panjang password.

type LoginForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type RegisterForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type TaskForm struct {
	Title string `form:"title" validate:"required"`
	Body  string `form:"body" validate:"required"`
}

// Result adalah hasil validasi: Errors kosong berarti form valid.
type Result struct {
	Errors map[string]string
}

func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// ParseLogin membaca dan memvalidasi form login.
func ParseLogin(c *fiber.Ctx) (LoginForm, Result) {
	var form LoginForm
	if err := c.BodyParser(&form); err != nil {
		return form, badRequest()
	}
	// email dipakai apa adanya: lookup di database exact match
	return form, check(form)
}

// ParseRegister membaca dan memvalidasi form registrasi.
func ParseRegister(c *fiber.Ctx) (RegisterForm, Result) {
	var form RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return form, badRequest()
	}
	return form, check(form)
}

// ParseTask membaca dan memvalidasi form task (dipakai create dan edit).
func ParseTask(c *fiber.Ctx) (TaskForm, Result) {
	var form TaskForm
	if err := c.BodyParser(&form); err != nil {
		return form, badRequest()
	}
	form.Title = strings.TrimSpace(form.Title)
	form.Body = strings.TrimSpace(form.Body)
	return form, check(form)
}

func badRequest() Result {
	return Result{Errors: map[string]string{"form": "Bad request"}}
}

func check(v interface{}) Result {
	result := Result{Errors: map[string]string{}}
	if err := config.Validate.Struct(v); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				result.Errors[strings.ToLower(fe.Field())] = "This field is required."
			}
		} else {
			result.Errors["form"] = err.Error()
		}
	}
	return result
}
