package forms

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postForm mengirim form-encoded body ke satu handler dan mengembalikan hasilnya.
func postForm(t *testing.T, handler fiber.Handler, values url.Values) {
	t.Helper()

	app := fiber.New()
	app.Post("/", handler)

	req := httptest.NewRequest("POST", "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
}

func TestParseTaskValid(t *testing.T) {
	var form TaskForm
	var result Result
	postForm(t, func(c *fiber.Ctx) error {
		form, result = ParseTask(c)
		return nil
	}, url.Values{
		"title": {"  Buy milk  "},
		"body":  {"2%"},
	})

	assert.True(t, result.Valid())
	// nilai di-trim sebelum divalidasi
	assert.Equal(t, "Buy milk", form.Title)
	assert.Equal(t, "2%", form.Body)
}

func TestParseTaskMissingFields(t *testing.T) {
	var result Result
	postForm(t, func(c *fiber.Ctx) error {
		_, result = ParseTask(c)
		return nil
	}, url.Values{
		"title": {""},
		"body":  {""},
	})

	assert.False(t, result.Valid())
	assert.Equal(t, "This field is required.", result.Errors["title"])
	assert.Equal(t, "This field is required.", result.Errors["body"])
}

func TestParseTaskWhitespaceOnly(t *testing.T) {
	var result Result
	postForm(t, func(c *fiber.Ctx) error {
		_, result = ParseTask(c)
		return nil
	}, url.Values{
		"title": {"   "},
		"body":  {"content"},
	})

	assert.False(t, result.Valid())
	assert.Contains(t, result.Errors, "title")
	assert.NotContains(t, result.Errors, "body")
}

func TestParseLoginKeepsEmailVerbatim(t *testing.T) {
	var form LoginForm
	var result Result
	postForm(t, func(c *fiber.Ctx) error {
		form, result = ParseLogin(c)
		return nil
	}, url.Values{
		"email":    {"  User@Example.com  "},
		"password": {"secret123"},
	})

	assert.True(t, result.Valid())
	// email tidak dinormalisasi: spasi dan kapitalisasi ikut tersimpan
	assert.Equal(t, "  User@Example.com  ", form.Email)
}

func TestParseRegisterKeepsEmailVerbatim(t *testing.T) {
	var form RegisterForm
	var result Result
	postForm(t, func(c *fiber.Ctx) error {
		form, result = ParseRegister(c)
		return nil
	}, url.Values{
		"email":    {" user@example.com"},
		"password": {"secret123"},
	})

	assert.True(t, result.Valid())
	assert.Equal(t, " user@example.com", form.Email)
}

func TestParseLoginMissingPassword(t *testing.T) {
	var result Result
	postForm(t, func(c *fiber.Ctx) error {
		_, result = ParseLogin(c)
		return nil
	}, url.Values{
		"email": {"user@example.com"},
	})

	assert.False(t, result.Valid())
	assert.Contains(t, result.Errors, "password")
	assert.NotContains(t, result.Errors, "email")
}

func TestParseRegisterValid(t *testing.T) {
	var form RegisterForm
	var result Result
	postForm(t, func(c *fiber.Ctx) error {
		form, result = ParseRegister(c)
		return nil
	}, url.Values{
		"email":    {"user@example.com"},
		"password": {"secret123"},
	})

	assert.True(t, result.Valid())
	assert.Equal(t, "user@example.com", form.Email)
	assert.Equal(t, "secret123", form.Password)
}
