package test

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"

	"todo-web/internal/config"
	"todo-web/internal/middleware"
	"todo-web/internal/repository"
	"todo-web/internal/session"
	"todo-web/internal/web"
	"todo-web/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize logger for testing
	logger.InitLoggers()
	defer logger.SyncLoggers()

	os.Setenv("GO_ENV", "test")

	// Postgres dan Redis sekali pakai lewat docker
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct docker pool: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		log.Fatalf("Could not connect to docker: %v", err)
	}

	pgResource, err := pool.Run("postgres", "15-alpine", []string{
		"POSTGRES_USER=todo",
		"POSTGRES_PASSWORD=secret",
		"POSTGRES_DB=todo_test",
	})
	if err != nil {
		log.Fatalf("Could not start postgres: %v", err)
	}
	_ = pgResource.Expire(180)

	redisResource, err := pool.Run("redis", "7-alpine", nil)
	if err != nil {
		log.Fatalf("Could not start redis: %v", err)
	}
	_ = redisResource.Expire(180)

	if err := pool.Retry(func() error {
		var err error
		config.DB, err = sql.Open("postgres", fmt.Sprintf(
			"host=localhost port=%s user=todo password=secret dbname=todo_test sslmode=disable",
			pgResource.GetPort("5432/tcp")))
		if err != nil {
			return err
		}
		return config.DB.Ping()
	}); err != nil {
		log.Fatalf("Could not connect to postgres: %v", err)
	}

	config.RedisClient = redis.NewClient(&redis.Options{
		Addr: "localhost:" + redisResource.GetPort("6379/tcp"),
	})
	if err := pool.Retry(func() error {
		return config.RedisClient.Ping(config.Ctx).Err()
	}); err != nil {
		log.Fatalf("Could not connect to redis: %v", err)
	}

	repository.CreateTableIfNotExists(config.DB)

	// Run all tests
	code := m.Run()

	repository.DeleteAllTable(config.DB)
	config.DB.Close()
	config.RedisClient.Close()
	_ = pool.Purge(pgResource)
	_ = pool.Purge(redisResource)

	os.Exit(code)
}

// CreateTestApp menginisialisasi aplikasi Fiber dengan seluruh halaman yang di-test
func CreateTestApp() *fiber.App {
	engine := html.New("../views", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(middleware.ErrorHandler())
	app.Use(middleware.LoadIdentity)
	web.RegisterRoutes(app)
	return app
}

// doRequest mengirim satu request form-encoded ke aplikasi test.
func doRequest(t *testing.T, app *fiber.App, method, path string, values url.Values, cookies []*http.Cookie) *http.Response {
	t.Helper()

	var body io.Reader
	if values != nil {
		body = strings.NewReader(values.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if values != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", method, path, err)
	}
	return resp
}

// readBody membaca body response sampai habis lalu menutupnya.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Error reading response body: %v", err)
	}
	return string(body)
}

// sessionCookies mengambil cookie sesi dari response login.
func sessionCookies(resp *http.Response) []*http.Cookie {
	var cookies []*http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == session.CookieName {
			cookies = append(cookies, ck)
		}
	}
	return cookies
}

// registerAndLogin membuat user baru lewat halaman register dan login,
// mengembalikan cookie sesi yang siap dipakai request berikutnya.
func registerAndLogin(t *testing.T, app *fiber.App, email, password string) []*http.Cookie {
	t.Helper()

	resp := doRequest(t, app, "POST", "/register", url.Values{
		"email":    {email},
		"password": {password},
	}, nil)
	resp.Body.Close()

	resp = doRequest(t, app, "POST", "/login", url.Values{
		"email":    {email},
		"password": {password},
	}, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("Expected redirect after login, got %d", resp.StatusCode)
	}
	cookies := sessionCookies(resp)
	if len(cookies) == 0 {
		t.Fatalf("Expected session cookie after login")
	}
	return cookies
}

// userIDByEmail membaca id user langsung dari database.
func userIDByEmail(t *testing.T, email string) int {
	t.Helper()

	var id int
	if err := config.DB.QueryRow("SELECT id FROM users WHERE email = $1", email).Scan(&id); err != nil {
		t.Fatalf("Error fetching user id: %v", err)
	}
	return id
}

// taskIDByTitle membaca id task langsung dari database.
func taskIDByTitle(t *testing.T, title string) int {
	t.Helper()

	var id int
	if err := config.DB.QueryRow("SELECT id FROM tasks WHERE title = $1", title).Scan(&id); err != nil {
		t.Fatalf("Error fetching task id: %v", err)
	}
	return id
}
