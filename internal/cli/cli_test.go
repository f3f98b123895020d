package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

func seedCatalog(t *testing.T) string {
	t.Helper()
	color.NoColor = true

	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := database.NewDatabase(path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.InsertList(entities.NewList(entities.TypeTitle, "Wish List Titles", "wish-titles")))
	require.NoError(t, db.InsertList(entities.NewList(entities.TypeAuthor, "Favorite Authors", "fav-authors")))
	require.NoError(t, db.InsertAuthor(entities.NewAuthor("Herbert, Frank", "Favorite Authors")))

	dune := entities.NewTitle("Dune", "Herbert, Frank", "Wish List Titles")
	dune.Rank = 1
	dune.ReckonQPos, dune.ReckonDate = 20, entities.Date(2024, 1, 1)
	dune.CheckQPos, dune.CheckDate = 10, entities.Date(2024, 1, 11)
	dune.AddComment("read first")
	require.NoError(t, db.InsertTitle(dune))

	emma := entities.NewTitle("Emma", "", "Wish List Titles")
	emma.Rank = 2
	require.NoError(t, db.InsertTitle(emma))
	return path
}

func run(t *testing.T, path string, args ...string) (string, error) {
	t.Helper()
	open := func(string) (Store, error) {
		return database.NewDatabase(path)
	}
	var out bytes.Buffer
	cmd := NewRootCmd(open, "test")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListsCommand(t *testing.T) {
	path := seedCatalog(t)

	out, err := run(t, path, "lists")
	require.NoError(t, err)
	assert.Contains(t, out, "Wish List Titles")
	assert.Contains(t, out, "Favorite Authors")
	assert.Contains(t, out, "AUTHOR")
}

func TestListShow(t *testing.T) {
	path := seedCatalog(t)

	t.Run("requested columns in order", func(t *testing.T) {
		out, err := run(t, path, "list", "show", "Wish List Titles", "--columns", "rank,title-text,author-name")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, []string{"RANK", "TITLE-TEXT", "AUTHOR-NAME"}, strings.Fields(lines[1]))
		assert.Equal(t, []string{"1", "Dune", "Herbert,", "Frank"}, strings.Fields(lines[2]))
		assert.Equal(t, []string{"2", "Emma"}, strings.Fields(lines[3]))
	})

	t.Run("estimate", func(t *testing.T) {
		out, err := run(t, path, "list", "show", "Wish List Titles", "-c", "title-text", "--estimate")
		require.NoError(t, err)
		assert.Contains(t, out, "AVAILABLE")
		// one place per day over ten days leaves ten more days
		assert.Contains(t, out, "2024-01-21")
		assert.Contains(t, out, "-")
	})

	t.Run("authors", func(t *testing.T) {
		out, err := run(t, path, "list", "show", "Favorite Authors", "--type", "author")
		require.NoError(t, err)
		assert.Contains(t, out, "Herbert, Frank")
		assert.Contains(t, out, "CURRENT-COUNT")
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := run(t, path, "list", "show", "Wish List Titles", "-c", "isbn")
		assert.Error(t, err)
	})

	t.Run("unknown list", func(t *testing.T) {
		_, err := run(t, path, "list", "show", "Nope")
		assert.Error(t, err)
	})
}

func TestTruncateAndSweep(t *testing.T) {
	path := seedCatalog(t)

	_, err := run(t, path, "truncate")
	assert.Error(t, err)
	_, err = run(t, path, "truncate", "titles", "--all")
	assert.Error(t, err)

	out, err := run(t, path, "truncate", "titles")
	require.NoError(t, err)
	assert.Contains(t, out, "sweep")

	out, err = run(t, path, "sweep")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 orphaned comments")

	_, err = run(t, path, "truncate", "--all")
	require.NoError(t, err)
	out, err = run(t, path, "lists")
	require.NoError(t, err)
	assert.Contains(t, out, "No lists.")
}
