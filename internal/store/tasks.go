package store

import (
	"database/sql"

	"github.com/lib/pq"

	"todo-web/internal/models"
)

// FindTaskByID mencari task berdasarkan id. Tidak ditemukan berarti ErrNotFound.
func FindTaskByID(db *sql.DB, id int) (*models.Task, error) {
	var task models.Task
	err := db.QueryRow(
		"SELECT id, title, body, author_id, created_at, updated_at FROM tasks WHERE id = $1",
		id).Scan(&task.ID, &task.Title, &task.Body, &task.AuthorID, &task.CreatedAt, &task.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks mengambil seluruh task apa adanya, tanpa ORDER BY dan tanpa paginasi.
func ListTasks(db *sql.DB) ([]models.Task, error) {
	rows, err := db.Query("SELECT id, title, body, author_id, created_at, updated_at FROM tasks")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

// TasksByOwner mengambil task milik satu user lewat foreign key,
// pengganti back-reference User.task di skema lama.
func TasksByOwner(db *sql.DB, userID int) ([]models.Task, error) {
	rows, err := db.Query(
		"SELECT id, title, body, author_id, created_at, updated_at FROM tasks WHERE author_id = $1",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

// OwnerOf mengembalikan id pemilik sebuah task, 0 jika kolomnya NULL.
func OwnerOf(db *sql.DB, taskID int) (int, error) {
	var authorID sql.NullInt64
	err := db.QueryRow("SELECT author_id FROM tasks WHERE id = $1", taskID).Scan(&authorID)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return int(authorID.Int64), nil
}

// CreateTask menyisipkan task baru milik authorID.
func CreateTask(db *sql.DB, title, body string, authorID int) (*models.Task, error) {
	var task models.Task
	err := db.QueryRow(
		"INSERT INTO tasks (title, body, author_id) VALUES ($1, $2, $3) RETURNING id, title, body, author_id, created_at, updated_at",
		title, body, authorID).Scan(&task.ID, &task.Title, &task.Body, &task.AuthorID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrDuplicateTitle
		}
		return nil, err
	}
	return &task, nil
}

// UpdateTask menimpa title dan body. author_id tidak disentuh:
// kepemilikan task tetap pada pembuatnya.
func UpdateTask(db *sql.DB, id int, title, body string) error {
	result, err := db.Exec(
		"UPDATE tasks SET title = $1, body = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3",
		title, body, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrDuplicateTitle
		}
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTask menghapus satu task tanpa konfirmasi.
func DeleteTask(db *sql.DB, id int) error {
	result, err := db.Exec("DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTasks(rows *sql.Rows) ([]models.Task, error) {
	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		err := rows.Scan(&task.ID, &task.Title, &task.Body, &task.AuthorID, &task.CreatedAt, &task.UpdatedAt)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}
