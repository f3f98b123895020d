// Package authors is the table gateway for authors.
//
// An author belongs to an AUTHOR list referenced by display name. Reads turn
// the stored list id back into that name and load the author's comments;
// writes resolve the name to an id and keep the comments in step through the
// reconciliation engine.
package authors

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

// Repository handles all author database operations.
type Repository struct {
	db       *gorm.DB
	lists    ListResolver
	comments reconcile.Store
	engine   *reconcile.Engine
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB, lists ListResolver, comments reconcile.Store) *Repository {
	return &Repository{
		db:       db,
		lists:    lists,
		comments: comments,
		engine:   reconcile.NewEngine(comments),
	}
}

func (r *Repository) listID(name string) (int64, error) {
	id, err := r.lists.IDByName(entities.TypeAuthor, name)
	if errors.Is(err, dberr.ErrNotFound) {
		return 0, fmt.Errorf("author list %q: %w", name, dberr.ErrUnresolvedReference)
	}
	return id, err
}

func (r *Repository) toRecord(a *entities.Author) (entities.AuthorRecord, error) {
	listID, err := r.listID(a.ListName)
	if err != nil {
		return entities.AuthorRecord{}, err
	}
	return entities.AuthorRecord{
		ID:           a.Key.Int64(),
		ListID:       listID,
		Name:         a.Name,
		Rank:         a.Rank,
		Rating:       a.Rating,
		Source:       a.Source,
		LastCount:    a.LastCount,
		CurrentCount: a.CurrentCount,
		CreationDate: entities.TruncateDate(a.CreationDate),
		ModifyDate:   entities.TruncateDate(a.ModifyDate),
	}, nil
}

func (r *Repository) toEntity(rec *entities.AuthorRecord) (*entities.Author, error) {
	listName, err := r.lists.NameByID(rec.ListID)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, fmt.Errorf("author %d refers to missing list %d: %w", rec.ID, rec.ListID, dberr.ErrInternalConsistency)
	}
	if err != nil {
		return nil, err
	}
	a := &entities.Author{
		LibraryItem: entities.LibraryItem{
			Key:          entities.KeyFromPtr(&rec.ID),
			Rank:         rec.Rank,
			Rating:       rec.Rating,
			Source:       rec.Source,
			ListName:     listName,
			CreationDate: entities.TruncateDate(rec.CreationDate),
			ModifyDate:   entities.TruncateDate(rec.ModifyDate),
		},
		Name:         rec.Name,
		LastCount:    rec.LastCount,
		CurrentCount: rec.CurrentCount,
	}
	a.Comments, err = r.comments.ForOwner(a.Key, entities.TypeAuthor)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments of author %d: %w", rec.ID, err)
	}
	return a, nil
}

func (r *Repository) toEntities(recs []entities.AuthorRecord) ([]*entities.Author, error) {
	out := make([]*entities.Author, 0, len(recs))
	for i := range recs {
		a, err := r.toEntity(&recs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Insert stores a new author with all of its comments and assigns keys.
func (r *Repository) Insert(a *entities.Author) error {
	rec, err := r.toRecord(a)
	if err != nil {
		return err
	}
	rec.ID = 0
	if err := r.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to insert author %q: %w", a.Name, err)
	}
	a.Key = entities.MustKey(rec.ID)
	return r.engine.InsertAll(a)
}

// Update rewrites the author row and reconciles its comments.
func (r *Repository) Update(a *entities.Author) error {
	id, ok := a.Key.Value()
	if !ok {
		return dberr.Missing("author")
	}
	rec, err := r.toRecord(a)
	if err != nil {
		return err
	}
	result := r.db.Model(&entities.AuthorRecord{}).Where("id = ?", id).Updates(map[string]any{
		"list_id":       rec.ListID,
		"name":          rec.Name,
		"rank":          rec.Rank,
		"rating":        rec.Rating,
		"source":        rec.Source,
		"last_count":    rec.LastCount,
		"current_count": rec.CurrentCount,
		"creation_date": rec.CreationDate,
		"modify_date":   rec.ModifyDate,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update author %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.NotFound("author", id)
	}
	_, err = r.engine.Sync(a)
	return err
}

// Delete removes the author's stored comments, then the author row.
func (r *Repository) Delete(a *entities.Author) error {
	if !a.Key.IsAssigned() {
		return dberr.Missing("author")
	}
	if _, err := r.engine.DeleteAll(a); err != nil {
		return err
	}
	return r.deleteRow(a.Key.Int64())
}

// DeleteByKey is Delete for callers holding only the key.
func (r *Repository) DeleteByKey(key entities.OptionalKey) error {
	id, ok := key.Value()
	if !ok {
		return dberr.Missing("author")
	}
	if _, err := r.comments.DeleteForOwner(key, entities.TypeAuthor); err != nil {
		return fmt.Errorf("failed to delete comments of author %d: %w", id, err)
	}
	return r.deleteRow(id)
}

func (r *Repository) deleteRow(id int64) error {
	result := r.db.Delete(&entities.AuthorRecord{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete author %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.NotFound("author", id)
	}
	return nil
}

// GetByKey retrieves an author with its comments.
func (r *Repository) GetByKey(key entities.OptionalKey) (*entities.Author, error) {
	id, ok := key.Value()
	if !ok {
		return nil, dberr.Missing("author")
	}
	var rec entities.AuthorRecord
	if err := r.db.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dberr.NotFound("author", id)
		}
		return nil, err
	}
	return r.toEntity(&rec)
}

// GetAll retrieves every author ordered by key.
func (r *Repository) GetAll() ([]*entities.Author, error) {
	var recs []entities.AuthorRecord
	if err := r.db.Order("id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return r.toEntities(recs)
}

// GetForList retrieves the authors of one AUTHOR list ordered by rank.
func (r *Repository) GetForList(listName string) ([]*entities.Author, error) {
	listID, err := r.lists.IDByName(entities.TypeAuthor, listName)
	if err != nil {
		return nil, err
	}
	var recs []entities.AuthorRecord
	if err := r.db.Where("list_id = ?", listID).Order("rank ASC, id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return r.toEntities(recs)
}

// IDByName resolves an author name to the oldest author row carrying it.
func (r *Repository) IDByName(name string) (int64, error) {
	var ids []int64
	err := r.db.Model(&entities.AuthorRecord{}).Where("name = ?", name).Order("id ASC").Limit(1).Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, dberr.NotFound("author", fmt.Sprintf("%q", name))
	}
	return ids[0], nil
}

// NameByID resolves an author id to the author's name.
func (r *Repository) NameByID(id int64) (string, error) {
	var names []string
	err := r.db.Model(&entities.AuthorRecord{}).Where("id = ?", id).Limit(1).Pluck("name", &names).Error
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", dberr.NotFound("author", id)
	}
	return names[0], nil
}
