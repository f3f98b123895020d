package lists

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/catalog/internal/database/migrations"
	"github.com/mrlokans/catalog/internal/dberr"
	"github.com/mrlokans/catalog/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "lists.db")

	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	_, err = migrations.Up(context.Background(), sqlDB)
	require.NoError(t, err)

	t.Cleanup(func() { sqlDB.Close() })
	return NewRepository(db), db
}

func TestRepository_InsertAssignsKey(t *testing.T) {
	repo, _ := setupTestDB(t)

	list := entities.NewList(entities.TypeTitle, "Wish List Titles", "wish-titles")
	require.NoError(t, repo.Insert(list))

	key, ok := list.Key.Value()
	require.True(t, ok)
	assert.Positive(t, key)

	got, err := repo.GetByKey(list.Key)
	require.NoError(t, err)
	assert.Equal(t, list, got)
}

func TestRepository_InsertRejectsBadType(t *testing.T) {
	repo, _ := setupTestDB(t)

	err := repo.Insert(entities.NewList("SERIES", "Shows", ""))
	assert.Error(t, err)
}

func TestRepository_NameUniquePerType(t *testing.T) {
	repo, _ := setupTestDB(t)

	require.NoError(t, repo.Insert(entities.NewList(entities.TypeTitle, "Favorites", "")))
	require.NoError(t, repo.Insert(entities.NewList(entities.TypeAuthor, "Favorites", "")))

	err := repo.Insert(entities.NewList(entities.TypeTitle, "Favorites", ""))
	assert.Error(t, err)
}

func TestRepository_NameResolution(t *testing.T) {
	repo, _ := setupTestDB(t)

	list := entities.NewList(entities.TypeAuthor, "Favorite Authors", "fav-authors")
	require.NoError(t, repo.Insert(list))

	id, err := repo.IDByName(entities.TypeAuthor, "Favorite Authors")
	require.NoError(t, err)
	assert.Equal(t, list.Key.Int64(), id)

	name, err := repo.NameByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Favorite Authors", name)

	_, err = repo.IDByName(entities.TypeTitle, "Favorite Authors")
	assert.ErrorIs(t, err, dberr.ErrNotFound)

	_, err = repo.NameByID(id + 100)
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}

func TestRepository_Update(t *testing.T) {
	repo, _ := setupTestDB(t)

	list := entities.NewList(entities.TypeTitle, "Reading", "reading")
	require.NoError(t, repo.Insert(list))

	list.DialogTitle = "Now Reading"
	require.NoError(t, repo.Update(list))

	got, err := repo.GetByName(entities.TypeTitle, "Now Reading")
	require.NoError(t, err)
	assert.Equal(t, list.Key, got.Key)

	err = repo.Update(entities.NewList(entities.TypeTitle, "x", ""))
	assert.ErrorIs(t, err, dberr.ErrMissingKey)

	ghost := entities.NewList(entities.TypeTitle, "ghost", "")
	ghost.Key = entities.MustKey(999)
	assert.ErrorIs(t, repo.Update(ghost), dberr.ErrNotFound)
}

func TestRepository_DeleteTwice(t *testing.T) {
	repo, _ := setupTestDB(t)

	list := entities.NewList(entities.TypeTitle, "Scratch", "")
	require.NoError(t, repo.Insert(list))

	require.NoError(t, repo.Delete(list))
	assert.ErrorIs(t, repo.Delete(list), dberr.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteByKey(entities.NoKey), dberr.ErrMissingKey)
}

func TestRepository_DeleteReferencedListFails(t *testing.T) {
	repo, db := setupTestDB(t)

	list := entities.NewList(entities.TypeAuthor, "Favorite Authors", "")
	require.NoError(t, repo.Insert(list))
	require.NoError(t, db.Create(&entities.AuthorRecord{ListID: list.Key.Int64(), Name: "Banks, Iain"}).Error)

	err := repo.Delete(list)
	require.Error(t, err)
	assert.NotErrorIs(t, err, dberr.ErrNotFound)

	_, err = repo.GetByKey(list.Key)
	assert.NoError(t, err)
}

func TestRepository_GetByType(t *testing.T) {
	repo, _ := setupTestDB(t)

	for _, l := range []*entities.KCLSList{
		entities.NewList(entities.TypeTitle, "B titles", ""),
		entities.NewList(entities.TypeAuthor, "Authors", ""),
		entities.NewList(entities.TypeTitle, "A titles", ""),
	} {
		require.NoError(t, repo.Insert(l))
	}

	got, err := repo.GetByType(entities.TypeTitle)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A titles", got[0].DialogTitle)
	assert.Equal(t, "B titles", got[1].DialogTitle)

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
