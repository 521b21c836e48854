package session

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"todo-web/internal/config"
	"todo-web/internal/models"
	"todo-web/pkg/logger"
)

const (
	// CookieName adalah nama cookie yang menyimpan token sesi.
	CookieName = "session_token"

	flashCookieName = "flash_id"
	sessionTTL      = 24 * time.Hour
	flashTTL        = 10 * time.Minute
)

// Login membuka sesi baru untuk user: id sesi disimpan di Redis dengan TTL,
// lalu dibungkus JWT yang ditaruh di cookie HttpOnly.
func Login(c *fiber.Ctx, user *models.User) error {
	sid := uuid.NewString()
	key := fmt.Sprintf("session:%s", sid)
	if err := config.RedisClient.Set(config.Ctx, key, user.ID, sessionTTL).Err(); err != nil {
		return err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid":     sid,
		"user_id": user.ID,
		"exp":     time.Now().Add(sessionTTL).Unix(),
	})
	tokenString, err := token.SignedString(config.SecretKey)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    tokenString,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(sessionTTL),
	})
	logger.AuditLogger.Info("Session opened", zap.Int("user_id", user.ID))
	return nil
}

// Logout menghapus sesi di Redis dan mengosongkan cookie.
// JWT yang sid-nya sudah dihapus tidak lagi dianggap login.
func Logout(c *fiber.Ctx) {
	if sid, userID, ok := parseToken(c); ok {
		config.RedisClient.Del(config.Ctx, fmt.Sprintf("session:%s", sid))
		logger.AuditLogger.Info("Session closed", zap.Int("user_id", userID))
	}
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(-time.Hour),
	})
}

// CurrentUserID mengembalikan id user yang sedang login, 0 untuk anonim.
func CurrentUserID(c *fiber.Ctx) int {
	sid, userID, ok := parseToken(c)
	if !ok {
		return 0
	}
	stored, err := config.RedisClient.Get(config.Ctx, fmt.Sprintf("session:%s", sid)).Int()
	if err != nil || stored != userID {
		return 0
	}
	return stored
}

// parseToken memverifikasi JWT dari cookie dan mengembalikan sid + user id.
func parseToken(c *fiber.Ctx) (string, int, bool) {
	tokenString := c.Cookies(CookieName)
	if tokenString == "" {
		return "", 0, false
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return config.SecretKey, nil
	})
	if err != nil || !token.Valid {
		return "", 0, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", 0, false
	}
	sid, ok := claims["sid"].(string)
	if !ok {
		return "", 0, false
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return "", 0, false
	}
	return sid, int(userID), true
}
