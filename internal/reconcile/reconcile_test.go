package reconcile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/dberr"
	"github.com/mrlokans/catalog/internal/entities"
)

// memoryStore records the statements the engine issues.
type memoryStore struct {
	rows    map[int64]entities.Comment
	nextID  int64
	calls   []string
	failOn  string
	failErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: map[int64]entities.Comment{}, nextID: 1}
}

func (s *memoryStore) seed(owner entities.OptionalKey, kind entities.ListType, text string) *entities.Comment {
	c := entities.Comment{Key: entities.MustKey(s.nextID), Text: text, OwnerKey: owner, OwnerType: kind}
	s.rows[s.nextID] = c
	s.nextID++
	cp := c
	return &cp
}

func (s *memoryStore) fail(op string) error {
	if s.failOn == op {
		return s.failErr
	}
	return nil
}

func (s *memoryStore) ForOwner(key entities.OptionalKey, kind entities.ListType) ([]*entities.Comment, error) {
	var out []*entities.Comment
	for _, c := range s.rows {
		if c.OwnerKey == key && c.OwnerType == kind {
			cp := c
			out = append(out, &cp)
		}
	}
	return out, s.fail("for-owner")
}

func (s *memoryStore) Insert(c *entities.Comment) error {
	s.calls = append(s.calls, "insert")
	if err := s.fail("insert"); err != nil {
		return err
	}
	c.Key = entities.MustKey(s.nextID)
	s.rows[s.nextID] = *c
	s.nextID++
	return nil
}

func (s *memoryStore) Update(c *entities.Comment) error {
	s.calls = append(s.calls, "update")
	if err := s.fail("update"); err != nil {
		return err
	}
	if _, ok := s.rows[c.Key.Int64()]; !ok {
		return dberr.NotFound("comment", c.Key)
	}
	s.rows[c.Key.Int64()] = *c
	return nil
}

func (s *memoryStore) DeleteByKey(key entities.OptionalKey) error {
	s.calls = append(s.calls, "delete")
	if _, ok := s.rows[key.Int64()]; !ok {
		return dberr.NotFound("comment", key)
	}
	delete(s.rows, key.Int64())
	return nil
}

func (s *memoryStore) DeleteForOwner(key entities.OptionalKey, kind entities.ListType) (int64, error) {
	var n int64
	for id, c := range s.rows {
		if c.OwnerKey == key && c.OwnerType == kind {
			delete(s.rows, id)
			n++
		}
	}
	return n, nil
}

func persistedTitle(key int64) *entities.Title {
	t := entities.NewTitle("Dune", "Herbert, Frank", "Wish List Titles")
	t.Key = entities.MustKey(key)
	return t
}

func texts(store *memoryStore, key entities.OptionalKey, kind entities.ListType) map[int64]string {
	out := map[int64]string{}
	comments, _ := store.ForOwner(key, kind)
	for _, c := range comments {
		out[c.Key.Int64()] = c.Text
	}
	return out
}

func TestDiff_Classification(t *testing.T) {
	owner := entities.MustKey(10)
	a := &entities.Comment{Key: entities.MustKey(1), Text: "x", OwnerKey: owner, OwnerType: entities.TypeTitle}
	b := &entities.Comment{Key: entities.MustKey(2), Text: "y", OwnerKey: owner, OwnerType: entities.TypeTitle}
	d := &entities.Comment{Key: entities.MustKey(4), Text: "same", OwnerKey: owner, OwnerType: entities.TypeTitle}

	current := []*entities.Comment{
		{Key: entities.MustKey(2), Text: "y2"},
		{Text: "z"},
		{Key: entities.MustKey(4), Text: "same"},
		{Key: entities.MustKey(99), Text: "stray"},
	}

	plan, err := Diff(owner, entities.TypeTitle, []*entities.Comment{a, b, d}, current)
	require.NoError(t, err)

	require.Len(t, plan.Deletes, 1)
	assert.Equal(t, entities.MustKey(1), plan.Deletes[0].Key)

	require.Len(t, plan.Updates, 2)
	assert.Equal(t, "y2", plan.Updates[0].Text)
	assert.Equal(t, entities.MustKey(99), plan.Updates[1].Key, "unknown key is attempted as an update")

	require.Len(t, plan.Inserts, 1)
	assert.Equal(t, "z", plan.Inserts[0].Text)

	require.Len(t, plan.Unchanged, 1)
	assert.Equal(t, 4, plan.Writes())

	for _, c := range current {
		assert.Equal(t, owner, c.OwnerKey)
		assert.Equal(t, entities.TypeTitle, c.OwnerType)
	}
}

func TestDiff_CommittedWithoutKey(t *testing.T) {
	_, err := Diff(entities.MustKey(1), entities.TypeAuthor, []*entities.Comment{{Text: "ghost"}}, nil)
	assert.ErrorIs(t, err, dberr.ErrInternalConsistency)
}

func TestDiff_UnkeyedParent(t *testing.T) {
	_, err := Diff(entities.NoKey, entities.TypeTitle, nil, []*entities.Comment{{Text: "a"}})
	assert.ErrorIs(t, err, dberr.ErrMissingKey)
}

func TestSync_ReplacesCommentSet(t *testing.T) {
	store := newMemoryStore()
	title := persistedTitle(7)
	a := store.seed(title.Key, entities.TypeTitle, "x")
	b := store.seed(title.Key, entities.TypeTitle, "y")
	other := store.seed(entities.MustKey(8), entities.TypeTitle, "other title")

	b.Text = "y2"
	title.Comments = []*entities.Comment{b, {Text: "z"}}

	plan, err := NewEngine(store).Sync(title)
	require.NoError(t, err)
	assert.Equal(t, []string{"delete", "update", "insert"}, store.calls)
	assert.Len(t, plan.Deletes, 1)

	got := texts(store, title.Key, entities.TypeTitle)
	require.Len(t, got, 2)
	assert.Equal(t, "y2", got[b.Key.Int64()])
	assert.NotContains(t, got, a.Key.Int64())

	newKey := title.Comments[1].Key
	require.True(t, newKey.IsAssigned())
	assert.Equal(t, "z", got[newKey.Int64()])

	// comments of other parents are untouched
	assert.Equal(t, "other title", store.rows[other.Key.Int64()].Text)
}

func TestSync_UnchangedSetIssuesNoWrites(t *testing.T) {
	store := newMemoryStore()
	author := entities.NewAuthor("Banks, Iain", "Favorite Authors")
	author.Key = entities.MustKey(3)
	a := store.seed(author.Key, entities.TypeAuthor, "culture")
	b := store.seed(author.Key, entities.TypeAuthor, "space")
	author.Comments = []*entities.Comment{a, b}

	plan, err := NewEngine(store).Sync(author)
	require.NoError(t, err)
	assert.Zero(t, plan.Writes())
	assert.Empty(t, store.calls)
	assert.Len(t, plan.Unchanged, 2)
}

func TestSync_StrayKeyFailsOnUpdate(t *testing.T) {
	store := newMemoryStore()
	title := persistedTitle(1)
	title.Comments = []*entities.Comment{{Key: entities.MustKey(500), Text: "gone"}}

	_, err := NewEngine(store).Sync(title)
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}

func TestSync_StopsAtFirstFailure(t *testing.T) {
	store := newMemoryStore()
	store.failOn = "update"
	store.failErr = errors.New("disk full")

	title := persistedTitle(2)
	c := store.seed(title.Key, entities.TypeTitle, "before")
	c.Text = "after"
	title.Comments = []*entities.Comment{c, {Text: "new"}}

	_, err := NewEngine(store).Sync(title)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, []string{"update"}, store.calls)
	assert.False(t, title.Comments[1].Key.IsAssigned())
}

func TestInsertAll_ResetsKeys(t *testing.T) {
	store := newMemoryStore()
	title := persistedTitle(4)
	title.AddComment("good")
	title.AddComment("long")
	title.Comments[1].Key = entities.MustKey(42)

	require.NoError(t, NewEngine(store).InsertAll(title))

	got := texts(store, title.Key, entities.TypeTitle)
	assert.Len(t, got, 2)
	for _, c := range title.Comments {
		assert.True(t, c.Key.IsAssigned())
		assert.NotEqual(t, int64(42), c.Key.Int64())
		assert.Equal(t, title.Key, c.OwnerKey)
	}
}

func TestDeleteAll(t *testing.T) {
	store := newMemoryStore()
	title := persistedTitle(5)
	store.seed(title.Key, entities.TypeTitle, "a")
	store.seed(title.Key, entities.TypeTitle, "b")
	store.seed(title.Key, entities.TypeTitle, "c")
	// same key but author owner type stays
	store.seed(title.Key, entities.TypeAuthor, "author note")
	title.AddComment("never stored")

	n, err := NewEngine(store).DeleteAll(title)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Empty(t, texts(store, title.Key, entities.TypeTitle))
	assert.Len(t, texts(store, title.Key, entities.TypeAuthor), 1)

	_, err = NewEngine(store).DeleteAll(entities.NewTitle("x", "", "l"))
	assert.ErrorIs(t, err, dberr.ErrMissingKey)
}

func TestNilComment(t *testing.T) {
	store := newMemoryStore()
	title := persistedTitle(6)
	title.AddComment("fine")
	title.Comments = append(title.Comments, nil)

	_, err := Diff(title.Key, entities.TypeTitle, nil, title.Comments)
	assert.ErrorIs(t, err, dberr.ErrInternalConsistency)

	_, err = NewEngine(store).Sync(title)
	assert.ErrorIs(t, err, dberr.ErrInternalConsistency)

	assert.ErrorIs(t, NewEngine(store).InsertAll(title), dberr.ErrInternalConsistency)
	assert.Empty(t, store.calls)
}

func TestRepeatedCommentWrittenOnce(t *testing.T) {
	t.Run("insert all", func(t *testing.T) {
		store := newMemoryStore()
		title := persistedTitle(7)
		c := title.AddComment("twice")
		title.Comments = append(title.Comments, c)

		require.NoError(t, NewEngine(store).InsertAll(title))
		assert.Len(t, texts(store, title.Key, entities.TypeTitle), 1)
		assert.Equal(t, []string{"insert"}, store.calls)
	})

	t.Run("sync", func(t *testing.T) {
		store := newMemoryStore()
		title := persistedTitle(8)
		c := &entities.Comment{Text: "twice"}
		title.Comments = []*entities.Comment{c, c}

		plan, err := NewEngine(store).Sync(title)
		require.NoError(t, err)
		assert.Len(t, plan.Inserts, 1)
		got := texts(store, title.Key, entities.TypeTitle)
		require.Len(t, got, 1)
		assert.Equal(t, "twice", got[c.Key.Int64()])
	})
}
