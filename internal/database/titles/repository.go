// Package titles is the table gateway for titles.
//
// A title belongs to a TITLE list and names its author, both by display name.
// The list must exist when the title is written. The author is optional: a
// name with no matching author row is stored as a NULL author_id and reads
// back as an empty name.
package titles

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/dberr"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/reconcile"
)

// ListResolver translates list display names to ids and back.
type ListResolver interface {
	IDByName(listType entities.ListType, name string) (int64, error)
	NameByID(id int64) (string, error)
}

// AuthorResolver translates author names to ids and back.
type AuthorResolver interface {
	IDByName(name string) (int64, error)
	NameByID(id int64) (string, error)
}

// Repository handles all title database operations.
type Repository struct {
	db       *gorm.DB
	lists    ListResolver
	authors  AuthorResolver
	comments reconcile.Store
	engine   *reconcile.Engine
}

// NewRepository creates a new titles repository.
func NewRepository(db *gorm.DB, lists ListResolver, authors AuthorResolver, comments reconcile.Store) *Repository {
	return &Repository{
		db:       db,
		lists:    lists,
		authors:  authors,
		comments: comments,
		engine:   reconcile.NewEngine(comments),
	}
}

func (r *Repository) toRecord(t *entities.Title) (entities.TitleRecord, error) {
	listID, err := r.lists.IDByName(entities.TypeTitle, t.ListName)
	if errors.Is(err, dberr.ErrNotFound) {
		return entities.TitleRecord{}, fmt.Errorf("title list %q: %w", t.ListName, dberr.ErrUnresolvedReference)
	}
	if err != nil {
		return entities.TitleRecord{}, err
	}

	var authorID *int64
	if t.AuthorName != "" {
		id, err := r.authors.IDByName(t.AuthorName)
		switch {
		case err == nil:
			authorID = &id
		case !errors.Is(err, dberr.ErrNotFound):
			return entities.TitleRecord{}, err
		}
	}

	return entities.TitleRecord{
		ID:           t.Key.Int64(),
		ListID:       listID,
		AuthorID:     authorID,
		Title:        t.Title,
		MediaType:    t.MediaType,
		Rank:         t.Rank,
		Rating:       t.Rating,
		Source:       t.Source,
		ReckonQPos:   t.ReckonQPos,
		CheckQPos:    t.CheckQPos,
		ReckonDate:   entities.DatePtr(t.ReckonDate),
		CheckDate:    entities.DatePtr(t.CheckDate),
		CreationDate: entities.TruncateDate(t.CreationDate),
		ModifyDate:   entities.TruncateDate(t.ModifyDate),
	}, nil
}

func (r *Repository) toEntity(rec *entities.TitleRecord) (*entities.Title, error) {
	listName, err := r.lists.NameByID(rec.ListID)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, fmt.Errorf("title %d refers to missing list %d: %w", rec.ID, rec.ListID, dberr.ErrInternalConsistency)
	}
	if err != nil {
		return nil, err
	}

	var authorName string
	if rec.AuthorID != nil {
		authorName, err = r.authors.NameByID(*rec.AuthorID)
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, fmt.Errorf("title %d refers to missing author %d: %w", rec.ID, *rec.AuthorID, dberr.ErrInternalConsistency)
		}
		if err != nil {
			return nil, err
		}
	}

	t := &entities.Title{
		LibraryItem: entities.LibraryItem{
			Key:          entities.KeyFromPtr(&rec.ID),
			Rank:         rec.Rank,
			Rating:       rec.Rating,
			Source:       rec.Source,
			ListName:     listName,
			CreationDate: entities.TruncateDate(rec.CreationDate),
			ModifyDate:   entities.TruncateDate(rec.ModifyDate),
		},
		Title:      rec.Title,
		AuthorName: authorName,
		MediaType:  rec.MediaType,
		ReckonQPos: rec.ReckonQPos,
		CheckQPos:  rec.CheckQPos,
		ReckonDate: entities.DateFromPtr(rec.ReckonDate),
		CheckDate:  entities.DateFromPtr(rec.CheckDate),
	}
	t.Comments, err = r.comments.ForOwner(t.Key, entities.TypeTitle)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments of title %d: %w", rec.ID, err)
	}
	return t, nil
}

func (r *Repository) toEntities(recs []entities.TitleRecord) ([]*entities.Title, error) {
	out := make([]*entities.Title, 0, len(recs))
	for i := range recs {
		t, err := r.toEntity(&recs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Insert stores a new title with all of its comments and assigns keys.
func (r *Repository) Insert(t *entities.Title) error {
	rec, err := r.toRecord(t)
	if err != nil {
		return err
	}
	rec.ID = 0
	if err := r.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to insert title %q: %w", t.Title, err)
	}
	t.Key = entities.MustKey(rec.ID)
	return r.engine.InsertAll(t)
}

// Update rewrites the title row and reconciles its comments.
func (r *Repository) Update(t *entities.Title) error {
	id, ok := t.Key.Value()
	if !ok {
		return dberr.Missing("title")
	}
	rec, err := r.toRecord(t)
	if err != nil {
		return err
	}
	result := r.db.Model(&entities.TitleRecord{}).Where("id = ?", id).Updates(map[string]any{
		"list_id":       rec.ListID,
		"author_id":     rec.AuthorID,
		"title":         rec.Title,
		"media_type":    rec.MediaType,
		"rank":          rec.Rank,
		"rating":        rec.Rating,
		"source":        rec.Source,
		"reckon_qpos":   rec.ReckonQPos,
		"check_qpos":    rec.CheckQPos,
		"reckon_date":   rec.ReckonDate,
		"check_date":    rec.CheckDate,
		"creation_date": rec.CreationDate,
		"modify_date":   rec.ModifyDate,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update title %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.NotFound("title", id)
	}
	_, err = r.engine.Sync(t)
	return err
}

// Delete removes the title's stored comments, then the title row.
func (r *Repository) Delete(t *entities.Title) error {
	if !t.Key.IsAssigned() {
		return dberr.Missing("title")
	}
	if _, err := r.engine.DeleteAll(t); err != nil {
		return err
	}
	return r.deleteRow(t.Key.Int64())
}

// DeleteByKey is Delete for callers holding only the key.
func (r *Repository) DeleteByKey(key entities.OptionalKey) error {
	id, ok := key.Value()
	if !ok {
		return dberr.Missing("title")
	}
	if _, err := r.comments.DeleteForOwner(key, entities.TypeTitle); err != nil {
		return fmt.Errorf("failed to delete comments of title %d: %w", id, err)
	}
	return r.deleteRow(id)
}

func (r *Repository) deleteRow(id int64) error {
	result := r.db.Delete(&entities.TitleRecord{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete title %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.NotFound("title", id)
	}
	return nil
}

// GetByKey retrieves a title with its comments.
func (r *Repository) GetByKey(key entities.OptionalKey) (*entities.Title, error) {
	id, ok := key.Value()
	if !ok {
		return nil, dberr.Missing("title")
	}
	var rec entities.TitleRecord
	if err := r.db.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dberr.NotFound("title", id)
		}
		return nil, err
	}
	return r.toEntity(&rec)
}

// GetAll retrieves every title ordered by key.
func (r *Repository) GetAll() ([]*entities.Title, error) {
	var recs []entities.TitleRecord
	if err := r.db.Order("id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return r.toEntities(recs)
}

// GetForList retrieves the titles of one TITLE list ordered by rank.
func (r *Repository) GetForList(listName string) ([]*entities.Title, error) {
	listID, err := r.lists.IDByName(entities.TypeTitle, listName)
	if err != nil {
		return nil, err
	}
	var recs []entities.TitleRecord
	if err := r.db.Where("list_id = ?", listID).Order("rank ASC, id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return r.toEntities(recs)
}

// GetForAuthor retrieves the titles written by any author with the given
// name. An unknown name yields no titles.
func (r *Repository) GetForAuthor(authorName string) ([]*entities.Title, error) {
	var recs []entities.TitleRecord
	err := r.db.
		Where("author_id IN (?)", r.db.Model(&entities.AuthorRecord{}).Select("id").Where("name = ?", authorName)).
		Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(recs)
}
