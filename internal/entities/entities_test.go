package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalKey(t *testing.T) {
	assert.False(t, NoKey.IsAssigned())
	assert.Nil(t, NoKey.Ptr())

	_, err := NewKey(0)
	assert.Error(t, err)
	_, err = NewKey(-3)
	assert.Error(t, err)

	k := MustKey(42)
	v, ok := k.Value()
	assert.True(t, ok)
	assert.Equal(t, int64(42), v)
	assert.Equal(t, k, KeyFromPtr(k.Ptr()))
	assert.Equal(t, NoKey, KeyFromPtr(nil))
	assert.Panics(t, func() { MustKey(0) })
}

func TestOptionalKey_JSON(t *testing.T) {
	var c Comment
	require.NoError(t, json.Unmarshal([]byte(`{"key":null,"text":"a","owner_key":5}`), &c))
	assert.False(t, c.Key.IsAssigned())
	assert.Equal(t, MustKey(5), c.OwnerKey)

	require.NoError(t, json.Unmarshal([]byte(`{"key":0}`), &c))
	assert.False(t, c.Key.IsAssigned())

	assert.Error(t, json.Unmarshal([]byte(`{"key":-1}`), &c))

	out, err := json.Marshal(Comment{Key: MustKey(9), Text: "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":9,"text":"x","owner_key":null,"owner_type":""}`, string(out))
}

func TestCommentsOnItem(t *testing.T) {
	title := NewTitle("Dune", "Herbert, Frank", "Wish List Titles")
	a := title.AddComment("a")
	b := title.AddComment("b")
	assert.True(t, a.IsNew())

	assert.True(t, title.RemoveComment(a))
	assert.False(t, title.RemoveComment(a))
	assert.Equal(t, []*Comment{b}, title.AllComments())
	assert.Equal(t, TypeTitle, title.OwnerType())
	assert.Equal(t, TypeAuthor, NewAuthor("x", "y").OwnerType())
}

func TestCommentEqual(t *testing.T) {
	a := &Comment{Key: MustKey(1), Text: "x", OwnerKey: MustKey(2), OwnerType: TypeTitle}
	b := *a
	assert.True(t, a.Equal(&b))
	b.Text = "y"
	assert.False(t, a.Equal(&b))
}

func TestTruncateDate(t *testing.T) {
	local := time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("X", -5*3600))
	assert.Equal(t, Date(2024, 3, 9), TruncateDate(local))
	assert.True(t, TruncateDate(time.Time{}).IsZero())
	assert.Nil(t, DatePtr(time.Time{}))
	assert.True(t, DateFromPtr(nil).IsZero())
}

func TestEstimatedAvailability(t *testing.T) {
	title := &Title{}
	_, ok := title.EstimatedAvailability()
	assert.False(t, ok)

	title.ReckonQPos, title.ReckonDate = 30, Date(2024, 1, 1)
	title.CheckQPos, title.CheckDate = 20, Date(2024, 1, 6)
	when, ok := title.EstimatedAvailability()
	require.True(t, ok)
	// two places a day, ten days left
	assert.Equal(t, Date(2024, 1, 16), when)

	title.CheckQPos = 0
	when, ok = title.EstimatedAvailability()
	require.True(t, ok)
	assert.Equal(t, title.CheckDate, when)

	title.CheckQPos = 40
	_, ok = title.EstimatedAvailability()
	assert.False(t, ok)
}

func TestAuthorCatalogChanged(t *testing.T) {
	a := NewAuthor("Le Guin", "Favorites")
	assert.False(t, a.CatalogChanged())
	a.CurrentCount = 1
	assert.True(t, a.CatalogChanged())
}
