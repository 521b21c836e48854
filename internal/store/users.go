package store

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"todo-web/internal/models"
)

var (
	// ErrNotFound dikembalikan ketika record dengan id yang diminta tidak ada.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail dikembalikan ketika email sudah terdaftar (unique violation).
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateTitle dikembalikan ketika judul task sudah dipakai (unique violation).
	ErrDuplicateTitle = errors.New("title already used")
)

// FindUserByEmail mencari user berdasarkan email, exact match tanpa normalisasi.
// Mengembalikan (nil, nil) jika tidak ditemukan.
func FindUserByEmail(db *sql.DB, email string) (*models.User, error) {
	var user models.User
	err := db.QueryRow(
		"SELECT id, email, password, created_at FROM users WHERE email = $1",
		email).Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByID mencari user berdasarkan id. Tidak ditemukan berarti ErrNotFound.
func FindUserByID(db *sql.DB, id int) (*models.User, error) {
	var user models.User
	err := db.QueryRow(
		"SELECT id, email, password, created_at FROM users WHERE id = $1",
		id).Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser menyisipkan user baru. Pemanggil melakukan pre-check email,
// tapi unique constraint tetap dipetakan ke ErrDuplicateEmail karena dua
// registrasi bersamaan bisa lolos pre-check sekaligus.
func CreateUser(db *sql.DB, email, passwordHash string) (*models.User, error) {
	var user models.User
	err := db.QueryRow(
		"INSERT INTO users (email, password) VALUES ($1, $2) RETURNING id, email, password, created_at",
		email, passwordHash).Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &user, nil
}
