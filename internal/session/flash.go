package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"todo-web/internal/config"
	"todo-web/pkg/logger"
)

// Flash menyimpan pesan sekali-tampil untuk render berikutnya.
// Dipakai cookie tersendiri supaya flash juga bekerja untuk user anonim
// (misalnya login gagal yang di-redirect kembali ke halaman login).
func Flash(c *fiber.Ctx, message string) {
	fid := c.Cookies(flashCookieName)
	if fid == "" {
		fid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     flashCookieName,
			Value:    fid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: "Lax",
			Expires:  time.Now().Add(flashTTL),
		})
	}

	key := "flash:" + fid
	pipe := config.RedisClient.TxPipeline()
	pipe.RPush(config.Ctx, key, message)
	pipe.Expire(config.Ctx, key, flashTTL)
	if _, err := pipe.Exec(config.Ctx); err != nil {
		logger.ErrorLogger.Error("Error storing flash message", zap.Error(err))
	}
}

// PopFlashes mengambil sekaligus menghapus semua pesan flash milik request ini.
func PopFlashes(c *fiber.Ctx) []string {
	fid := c.Cookies(flashCookieName)
	if fid == "" {
		return nil
	}

	key := "flash:" + fid
	messages, err := config.RedisClient.LRange(config.Ctx, key, 0, -1).Result()
	if err != nil || len(messages) == 0 {
		return nil
	}
	config.RedisClient.Del(config.Ctx, key)
	return messages
}
