package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bra1695/backend-kanban/internal/models"
	"github.com/bra1695/backend-kanban/internal/repository"
)

type boardTestEnv struct {
	db      *gorm.DB
	boards  *BoardService
	columns *ColumnService
	owner   *models.User
	other   *models.User
}

func setupBoardTestEnv(t *testing.T) boardTestEnv {
	t.Helper()

	db := setupTestDB(t)
	boardRepo := repository.NewBoardRepository(db)

	return boardTestEnv{
		db:      db,
		boards:  NewBoardService(boardRepo),
		columns: NewColumnService(boardRepo),
		owner:   createActiveUser(t, db, "owner", models.UserTypeAdmin, nil),
		other:   createActiveUser(t, db, "other", models.UserTypeAdmin, nil),
	}
}

func TestCreateBoardDerivesSlug(t *testing.T) {
	env := setupBoardTestEnv(t)

	board, err := env.boards.Create(CreateBoardInput{Name: "Sprint 1"}, env.owner)
	require.NoError(t, err)
	require.Equal(t, "sprint-1", board.Slug)
	require.Equal(t, env.owner.ID, board.CreatedBy)
	require.Empty(t, board.Columns)
}

func TestCreateBoardRejectsDuplicateName(t *testing.T) {
	env := setupBoardTestEnv(t)

	_, err := env.boards.Create(CreateBoardInput{Name: "Sprint 1"}, env.owner)
	require.NoError(t, err)

	_, err = env.boards.Create(CreateBoardInput{Name: "Sprint 1"}, env.owner)
	require.ErrorIs(t, err, ErrBoardNameTaken)

	// A different name that normalizes to the same slug is also a conflict.
	_, err = env.boards.Create(CreateBoardInput{Name: "sprint   1"}, env.owner)
	require.ErrorIs(t, err, ErrBoardNameTaken)
}

func TestCreateBoardRejectsUnsluggableName(t *testing.T) {
	env := setupBoardTestEnv(t)

	// Punctuation-only names derive an empty slug and would be
	// unreachable by route.
	_, err := env.boards.Create(CreateBoardInput{Name: "!!!"}, env.owner)
	require.ErrorIs(t, err, ErrNameRequired)

	_, err = env.boards.Create(CreateBoardInput{Name: "Sprint 1"}, env.owner)
	require.NoError(t, err)

	bad := "???"
	_, err = env.boards.Update("sprint-1", UpdateBoardInput{Name: &bad}, env.owner)
	require.ErrorIs(t, err, ErrNameRequired)

	_, err = env.columns.Add("sprint-1", "***", env.owner)
	require.ErrorIs(t, err, ErrNameRequired)
}

func TestBoardOwnershipScoping(t *testing.T) {
	env := setupBoardTestEnv(t)

	_, err := env.boards.Create(CreateBoardInput{Name: "Sprint 1"}, env.owner)
	require.NoError(t, err)

	// The owner sees the board; another user does not, even with the slug.
	_, err = env.boards.Get("sprint-1", env.owner)
	require.NoError(t, err)

	_, err = env.boards.Get("sprint-1", env.other)
	require.ErrorIs(t, err, ErrBoardNotFound)

	boards, err := env.boards.List(env.other)
	require.NoError(t, err)
	require.Empty(t, boards)

	err = env.boards.Delete("sprint-1", env.other)
	require.ErrorIs(t, err, ErrBoardNotFound)
}

func TestUpdateBoardRenameKeepsSlugStable(t *testing.T) {
	env := setupBoardTestEnv(t)

	_, err := env.boards.Create(CreateBoardInput{Name: "Sprint 1"}, env.owner)
	require.NoError(t, err)

	// Renaming to the same name does not change the slug.
	name := "Sprint 1"
	board, err := env.boards.Update("sprint-1", UpdateBoardInput{Name: &name}, env.owner)
	require.NoError(t, err)
	require.Equal(t, "sprint-1", board.Slug)

	renamed := "Sprint 2"
	board, err = env.boards.Update("sprint-1", UpdateBoardInput{Name: &renamed}, env.owner)
	require.NoError(t, err)
	require.Equal(t, "sprint-2", board.Slug)
}

func TestAddColumnAppends(t *testing.T) {
	env := setupBoardTestEnv(t)

	_, err := env.boards.Create(CreateBoardInput{Name: "Sprint 1"}, env.owner)
	require.NoError(t, err)

	board, err := env.columns.Add("sprint-1", "To Do", env.owner)
	require.NoError(t, err)
	require.Len(t, board.Columns, 1)

	board, err = env.columns.Add("sprint-1", "Doing", env.owner)
	require.NoError(t, err)
	require.Len(t, board.Columns, 2)

	board, err = env.columns.Add("sprint-1", "Done", env.owner)
	require.NoError(t, err)
	require.Len(t, board.Columns, 3)

	// Existing columns are preserved in order.
	require.Equal(t, "To Do", board.Columns[0].Name)
	require.Equal(t, "Doing", board.Columns[1].Name)
	require.Equal(t, "Done", board.Columns[2].Name)
	require.Equal(t, env.owner.ID, board.Columns[0].CreatedBy)
}

func TestAddColumnAfterDeleteKeepsPositionsDistinct(t *testing.T) {
	env := setupBoardTestEnv(t)

	_, err := env.boards.Create(CreateBoardInput{Name: "Sprint 1"}, env.owner)
	require.NoError(t, err)

	for _, name := range []string{"To Do", "Doing", "Done"} {
		_, err = env.columns.Add("sprint-1", name, env.owner)
		require.NoError(t, err)
	}

	// Deleting a middle column leaves a hole; the next append must still
	// land strictly after every surviving column.
	require.NoError(t, env.columns.Delete("to-do", env.owner))

	board, err := env.columns.Add("sprint-1", "Review", env.owner)
	require.NoError(t, err)
	require.Len(t, board.Columns, 3)
	require.Equal(t, "Doing", board.Columns[0].Name)
	require.Equal(t, "Done", board.Columns[1].Name)
	require.Equal(t, "Review", board.Columns[2].Name)

	seen := make(map[int]bool)
	for _, column := range board.Columns {
		require.False(t, seen[column.Position], "position %d assigned twice", column.Position)
		seen[column.Position] = true
	}
	require.Greater(t, board.Columns[2].Position, board.Columns[1].Position)
}

func TestAddColumnRejectsDuplicateSlug(t *testing.T) {
	env := setupBoardTestEnv(t)

	_, err := env.boards.Create(CreateBoardInput{Name: "Sprint 1"}, env.owner)
	require.NoError(t, err)

	_, err = env.columns.Add("sprint-1", "To Do", env.owner)
	require.NoError(t, err)

	_, err = env.columns.Add("sprint-1", "to do", env.owner)
	require.ErrorIs(t, err, ErrColumnNameTaken)
}

func TestAddColumnToUnownedBoard(t *testing.T) {
	env := setupBoardTestEnv(t)

	_, err := env.boards.Create(CreateBoardInput{Name: "Sprint 1"}, env.owner)
	require.NoError(t, err)

	_, err = env.columns.Add("sprint-1", "To Do", env.other)
	require.ErrorIs(t, err, ErrBoardNotFound)
}

func TestUpdateColumnRename(t *testing.T) {
	env := setupBoardTestEnv(t)

	_, err := env.boards.Create(CreateBoardInput{Name: "Sprint 1"}, env.owner)
	require.NoError(t, err)
	_, err = env.columns.Add("sprint-1", "To Do", env.owner)
	require.NoError(t, err)

	name := "Backlog"
	column, err := env.columns.Update("to-do", UpdateColumnInput{Name: &name}, env.owner)
	require.NoError(t, err)
	require.Equal(t, "backlog", column.Slug)

	_, err = env.columns.Get("to-do", env.owner)
	require.ErrorIs(t, err, ErrColumnNotFound)

	_, err = env.columns.Update("backlog", UpdateColumnInput{Name: &name}, env.other)
	require.ErrorIs(t, err, ErrColumnNotFound)
}

func TestDeleteColumnRemovesTasks(t *testing.T) {
	env := setupBoardTestEnv(t)

	org := createOrganization(t, env.db, "Acme")
	env.owner.OrganizationID = &org.ID
	require.NoError(t, env.db.Save(env.owner).Error)

	_, err := env.boards.Create(CreateBoardInput{Name: "Sprint 1"}, env.owner)
	require.NoError(t, err)
	_, err = env.columns.Add("sprint-1", "To Do", env.owner)
	require.NoError(t, err)

	tasks := NewTaskService(repository.NewTaskRepository(env.db), repository.NewBoardRepository(env.db), &fakeUploader{})
	_, err = tasks.Create(context.Background(), "to-do", CreateTaskInput{Title: "Ship it"}, env.owner, nil)
	require.NoError(t, err)

	require.NoError(t, env.columns.Delete("to-do", env.owner))

	var count int64
	require.NoError(t, env.db.Model(&models.Task{}).Count(&count).Error)
	require.Zero(t, count)

	board, err := env.boards.Get("sprint-1", env.owner)
	require.NoError(t, err)
	require.Empty(t, board.Columns)
}

func TestDeleteBoardCascades(t *testing.T) {
	env := setupBoardTestEnv(t)

	org := createOrganization(t, env.db, "Acme")
	env.owner.OrganizationID = &org.ID
	require.NoError(t, env.db.Save(env.owner).Error)

	_, err := env.boards.Create(CreateBoardInput{Name: "Sprint 1"}, env.owner)
	require.NoError(t, err)
	_, err = env.columns.Add("sprint-1", "To Do", env.owner)
	require.NoError(t, err)

	taskRepo := repository.NewTaskRepository(env.db)
	tasks := NewTaskService(taskRepo, repository.NewBoardRepository(env.db), &fakeUploader{})
	subtasks := NewSubtaskService(taskRepo, &fakeUploader{}, tasks)

	ctx := context.Background()
	_, err = tasks.Create(ctx, "to-do", CreateTaskInput{Title: "Ship it"}, env.owner, nil)
	require.NoError(t, err)
	_, err = subtasks.Add(ctx, "ship-it", CreateSubtaskInput{Title: "Write docs"}, env.owner, nil)
	require.NoError(t, err)

	require.NoError(t, env.boards.Delete("sprint-1", env.owner))

	var count int64
	require.NoError(t, env.db.Model(&models.Column{}).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, env.db.Model(&models.Task{}).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, env.db.Model(&models.Subtask{}).Count(&count).Error)
	require.Zero(t, count)
}
