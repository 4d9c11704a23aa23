package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bra1695/backend-kanban/internal/dto"
)

// seedBoardWithColumn prepares an admin inside an organization with one
// board and one column, and returns the session token.
func seedBoardWithColumn(t *testing.T, env apiTestEnv) string {
	t.Helper()

	accessToken := env.registerAndLogin(t, "alice", "organization")
	env.attachOrganization(t, "alice", "Acme")

	w := env.doJSON(t, http.MethodPost, "/api/boards", map[string]any{"name": "Sprint 1"}, accessToken)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.doJSON(t, http.MethodPost, "/api/boards/sprint-1/columns", map[string]string{"name": "To Do"}, accessToken)
	require.Equal(t, http.StatusOK, w.Code)

	return accessToken
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	env := setupAPITestEnv(t)
	accessToken := seedBoardWithColumn(t, env)

	w := env.doJSON(t, http.MethodPost, "/api/columns/to-do/tasks", map[string]any{
		"title":       "Ship it",
		"description": "Release the feature",
	}, accessToken)
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.TaskDTO
	decodeBody(t, w, &created)
	require.Equal(t, "ship-it", created.Slug)
	require.Equal(t, "Todo", created.Status)
	require.NotNil(t, created.Images)

	// Partial update; the description must survive.
	w = env.doJSON(t, http.MethodPatch, "/api/tasks/ship-it", map[string]any{
		"status": "Doing",
	}, accessToken)
	require.Equal(t, http.StatusOK, w.Code)

	var updated dto.TaskDTO
	decodeBody(t, w, &updated)
	require.Equal(t, "Doing", updated.Status)
	require.Equal(t, "Release the feature", updated.Description)

	w = env.doJSON(t, http.MethodGet, "/api/tasks", nil, accessToken)
	require.Equal(t, http.StatusOK, w.Code)

	var list dto.TaskListResponse
	decodeBody(t, w, &list)
	require.Len(t, list.Tasks, 1)
	require.EqualValues(t, 1, list.Pagination.Total)

	w = env.doJSON(t, http.MethodDelete, "/api/tasks/ship-it", nil, accessToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(t, http.MethodGet, "/api/tasks/ship-it", nil, accessToken)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTaskWithoutOrganization(t *testing.T) {
	env := setupAPITestEnv(t)
	accessToken := env.registerAndLogin(t, "alice", "organization")

	w := env.doJSON(t, http.MethodPost, "/api/boards", map[string]any{"name": "Sprint 1"}, accessToken)
	require.Equal(t, http.StatusCreated, w.Code)
	w = env.doJSON(t, http.MethodPost, "/api/boards/sprint-1/columns", map[string]string{"name": "To Do"}, accessToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(t, http.MethodPost, "/api/columns/to-do/tasks", map[string]any{
		"title": "Ship it",
	}, accessToken)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubtaskLifecycleOverHTTP(t *testing.T) {
	env := setupAPITestEnv(t)
	accessToken := seedBoardWithColumn(t, env)

	w := env.doJSON(t, http.MethodPost, "/api/columns/to-do/tasks", map[string]any{
		"title": "Ship it",
	}, accessToken)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.doJSON(t, http.MethodPost, "/api/tasks/ship-it/subtasks", map[string]any{
		"title": "Write docs",
	}, accessToken)
	require.Equal(t, http.StatusCreated, w.Code)

	var subtask dto.SubtaskDTO
	decodeBody(t, w, &subtask)
	require.Equal(t, "write-docs", subtask.Slug)
	require.False(t, subtask.IsCompleted)

	w = env.doJSON(t, http.MethodPatch, "/api/tasks/ship-it/subtasks/write-docs", map[string]any{
		"is_completed": true,
	}, accessToken)
	require.Equal(t, http.StatusOK, w.Code)

	decodeBody(t, w, &subtask)
	require.True(t, subtask.IsCompleted)
	require.Equal(t, "Write docs", subtask.Title)

	w = env.doJSON(t, http.MethodGet, "/api/tasks/ship-it", nil, accessToken)
	require.Equal(t, http.StatusOK, w.Code)

	var task dto.TaskDTO
	decodeBody(t, w, &task)
	require.Len(t, task.Subtasks, 1)
}
