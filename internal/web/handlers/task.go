package handlers

import (
	"html/template"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"todo-web/internal/config"
	"todo-web/internal/forms"
	"todo-web/internal/store"
	"todo-web/internal/web/view"
	"todo-web/internal/websocket"
	"todo-web/pkg/logger"
)

// Task handlers

// TaskList menampilkan seluruh task, apa adanya tanpa urutan dan paginasi.
func TaskList(c *fiber.Ctx) error {
	tasks, err := store.ListTasks(config.DB)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks", zap.Error(err))
		return view.RenderError(c, fiber.StatusInternalServerError, "Error fetching tasks")
	}

	data := view.BaseData(c)
	data["Tasks"] = tasks
	return c.Render("tasklist", data, "layouts/main")
}

// ReadTask menampilkan satu task beserta form editnya.
func ReadTask(c *fiber.Ctx) error {
	taskID, err := strconv.Atoi(c.Query("id"))
	if err != nil {
		return view.RenderError(c, fiber.StatusBadRequest, "Invalid task ID")
	}

	task, err := store.FindTaskByID(config.DB, taskID)
	if err == store.ErrNotFound {
		logger.ErrorLogger.Error("Task not found", zap.Int("task_id", taskID))
		return view.RenderError(c, fiber.StatusNotFound, "Task not found")
	}
	if err != nil {
		logger.ErrorLogger.Error("Error fetching task", zap.Error(err))
		return view.RenderError(c, fiber.StatusInternalServerError, "Error fetching task")
	}

	data := view.BaseData(c)
	data["Task"] = task
	// body adalah rich text, dirender mentah di halaman
	data["Body"] = template.HTML(task.Body)
	data["Form"] = forms.TaskForm{Title: task.Title, Body: task.Body}
	data["CanEdit"] = task.AuthorID.Valid && int(task.AuthorID.Int64) == view.CurrentUserID(c)
	return c.Render("read", data, "layouts/main")
}

// EditTask memproses form edit: hanya pemilik yang boleh, dan hanya
// title/body yang ditimpa. Kepemilikan task tidak berpindah.
func EditTask(c *fiber.Ctx) error {
	userID := view.CurrentUserID(c)

	taskID, err := strconv.Atoi(c.Query("id"))
	if err != nil {
		return view.RenderError(c, fiber.StatusBadRequest, "Invalid task ID")
	}

	ownerID, err := store.OwnerOf(config.DB, taskID)
	if err == store.ErrNotFound {
		return view.RenderError(c, fiber.StatusNotFound, "Task not found")
	}
	if err != nil {
		logger.ErrorLogger.Error("Error fetching task owner", zap.Error(err))
		return view.RenderError(c, fiber.StatusInternalServerError, "Error fetching task")
	}
	if ownerID != userID {
		logger.SecurityLogger.Warn("Edit attempt by non-owner",
			zap.Int("user_id", userID), zap.Int("task_id", taskID))
		return view.RenderError(c, fiber.StatusForbidden, "You don't have permission to edit this task")
	}

	form, result := forms.ParseTask(c)
	if !result.Valid() {
		return rerenderRead(c, taskID, form, result.Errors)
	}

	err = store.UpdateTask(config.DB, taskID, form.Title, form.Body)
	if err == store.ErrDuplicateTitle {
		return rerenderRead(c, taskID, form, map[string]string{"title": "That title is already used."})
	}
	if err != nil {
		logger.ErrorLogger.Error("Error updating task", zap.Error(err))
		return view.RenderError(c, fiber.StatusInternalServerError, "Error updating task")
	}

	websocket.TaskHub.Publish(websocket.TaskEvent{Event: "updated", TaskID: taskID, Title: form.Title})
	logger.AuditLogger.Info("Task updated", zap.Int("task_id", taskID), zap.Int("user_id", userID))
	return c.Redirect("/task_list")
}

// NewTaskPage menampilkan form pembuatan task.
func NewTaskPage(c *fiber.Ctx) error {
	data := view.BaseData(c)
	data["Form"] = forms.TaskForm{}
	return c.Render("create", data, "layouts/main")
}

// CreateTask memproses form task baru milik identitas yang sedang login.
func CreateTask(c *fiber.Ctx) error {
	form, result := forms.ParseTask(c)
	if !result.Valid() {
		data := view.BaseData(c)
		data["Form"] = form
		data["Errors"] = result.Errors
		return c.Render("create", data, "layouts/main")
	}

	task, err := store.CreateTask(config.DB, form.Title, form.Body, view.CurrentUserID(c))
	if err == store.ErrDuplicateTitle {
		data := view.BaseData(c)
		data["Form"] = form
		data["Errors"] = map[string]string{"title": "That title is already used."}
		return c.Render("create", data, "layouts/main")
	}
	if err != nil {
		logger.ErrorLogger.Error("Error creating task", zap.Error(err))
		return view.RenderError(c, fiber.StatusInternalServerError, "Error creating task")
	}

	websocket.TaskHub.Publish(websocket.TaskEvent{Event: "created", TaskID: task.ID, Title: task.Title})
	logger.AuditLogger.Info("Task created", zap.Int("task_id", task.ID), zap.Int("user_id", view.CurrentUserID(c)))
	return c.Redirect("/home")
}

// DeleteTask menghapus task tanpa konfirmasi, hanya oleh pemiliknya.
func DeleteTask(c *fiber.Ctx) error {
	userID := view.CurrentUserID(c)

	taskID, err := strconv.Atoi(c.Query("id"))
	if err != nil {
		return view.RenderError(c, fiber.StatusBadRequest, "Invalid task ID")
	}

	ownerID, err := store.OwnerOf(config.DB, taskID)
	if err == store.ErrNotFound {
		logger.ErrorLogger.Error("Task not found", zap.Int("task_id", taskID))
		return view.RenderError(c, fiber.StatusNotFound, "Task not found")
	}
	if err != nil {
		logger.ErrorLogger.Error("Error fetching task owner", zap.Error(err))
		return view.RenderError(c, fiber.StatusInternalServerError, "Error fetching task")
	}
	if ownerID != userID {
		logger.SecurityLogger.Warn("Delete attempt by non-owner",
			zap.Int("user_id", userID), zap.Int("task_id", taskID))
		return view.RenderError(c, fiber.StatusForbidden, "You don't have permission to delete this task")
	}

	if err := store.DeleteTask(config.DB, taskID); err != nil {
		logger.ErrorLogger.Error("Error deleting task", zap.Error(err))
		return view.RenderError(c, fiber.StatusInternalServerError, "Error deleting task")
	}

	websocket.TaskHub.Publish(websocket.TaskEvent{Event: "deleted", TaskID: taskID})
	logger.AuditLogger.Info("Task deleted", zap.Int("task_id", taskID), zap.Int("user_id", userID))
	return c.Redirect("/home")
}

// rerenderRead menampilkan ulang halaman read dengan nilai form yang
// dikirim user dan pesan error per field.
func rerenderRead(c *fiber.Ctx, taskID int, form forms.TaskForm, fieldErrors map[string]string) error {
	task, err := store.FindTaskByID(config.DB, taskID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching task", zap.Error(err))
		return view.RenderError(c, fiber.StatusInternalServerError, "Error fetching task")
	}

	data := view.BaseData(c)
	data["Task"] = task
	data["Body"] = template.HTML(task.Body)
	data["Form"] = form
	data["Errors"] = fieldErrors
	data["CanEdit"] = true
	return c.Render("read", data, "layouts/main")
}
