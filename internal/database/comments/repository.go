// Package comments is the table gateway for comments on titles and authors.
//
// Comments of both parent kinds share one table. The owner is the pair
// (owner_key, owner_type); there is no foreign key, so Insert and Update
// check that the owner row exists and DeleteOrphans sweeps rows whose owner
// is gone.
//
// This package implements reconcile.Store:
//
//	var _ reconcile.Store = (*Repository)(nil)
package comments

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/dberr"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/reconcile"
)

var _ reconcile.Store = (*Repository)(nil)

// Repository handles all comment database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new comments repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func ownerTable(ownerType entities.ListType) (string, error) {
	switch ownerType {
	case entities.TypeTitle:
		return "titles", nil
	case entities.TypeAuthor:
		return "authors", nil
	default:
		return "", fmt.Errorf("invalid comment owner type %q", ownerType)
	}
}

func toEntity(rec *entities.CommentRecord) *entities.Comment {
	return &entities.Comment{
		Key:       entities.KeyFromPtr(&rec.ID),
		Text:      rec.Text,
		OwnerKey:  entities.KeyFromPtr(&rec.OwnerKey),
		OwnerType: entities.ListType(rec.OwnerType),
	}
}

func toEntities(recs []entities.CommentRecord) []*entities.Comment {
	out := make([]*entities.Comment, len(recs))
	for i := range recs {
		out[i] = toEntity(&recs[i])
	}
	return out
}

// checkOwner makes sure the comment points at an existing title or author.
func (r *Repository) checkOwner(c *entities.Comment) error {
	ownerID, ok := c.OwnerKey.Value()
	if !ok {
		return dberr.Missing("comment owner")
	}
	table, err := ownerTable(c.OwnerType)
	if err != nil {
		return err
	}
	var count int64
	if err := r.db.Table(table).Where("id = ?", ownerID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("comment owner %s %d: %w", c.OwnerType, ownerID, dberr.ErrUnresolvedReference)
	}
	return nil
}

// Insert stores a new comment and assigns its key.
func (r *Repository) Insert(c *entities.Comment) error {
	if err := r.checkOwner(c); err != nil {
		return err
	}
	rec := entities.CommentRecord{
		OwnerKey:  c.OwnerKey.Int64(),
		OwnerType: string(c.OwnerType),
		Text:      c.Text,
	}
	if err := r.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	c.Key = entities.MustKey(rec.ID)
	return nil
}

// Update rewrites text and owner of an existing comment.
func (r *Repository) Update(c *entities.Comment) error {
	id, ok := c.Key.Value()
	if !ok {
		return dberr.Missing("comment")
	}
	if err := r.checkOwner(c); err != nil {
		return err
	}
	result := r.db.Model(&entities.CommentRecord{}).Where("id = ?", id).Updates(map[string]any{
		"text":       c.Text,
		"owner_key":  c.OwnerKey.Int64(),
		"owner_type": string(c.OwnerType),
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update comment %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.NotFound("comment", id)
	}
	return nil
}

// Delete removes a stored comment.
func (r *Repository) Delete(c *entities.Comment) error {
	return r.DeleteByKey(c.Key)
}

// DeleteByKey removes the comment with the given key.
func (r *Repository) DeleteByKey(key entities.OptionalKey) error {
	id, ok := key.Value()
	if !ok {
		return dberr.Missing("comment")
	}
	result := r.db.Delete(&entities.CommentRecord{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.NotFound("comment", id)
	}
	return nil
}

// GetByKey retrieves a comment by key.
func (r *Repository) GetByKey(key entities.OptionalKey) (*entities.Comment, error) {
	id, ok := key.Value()
	if !ok {
		return nil, dberr.Missing("comment")
	}
	var rec entities.CommentRecord
	if err := r.db.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dberr.NotFound("comment", id)
		}
		return nil, err
	}
	return toEntity(&rec), nil
}

// GetAll retrieves every comment ordered by key.
func (r *Repository) GetAll() ([]*entities.Comment, error) {
	var recs []entities.CommentRecord
	if err := r.db.Order("id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return toEntities(recs), nil
}

// ForOwner retrieves the stored comments of one title or author.
func (r *Repository) ForOwner(ownerKey entities.OptionalKey, ownerType entities.ListType) ([]*entities.Comment, error) {
	id, ok := ownerKey.Value()
	if !ok {
		return nil, nil
	}
	var recs []entities.CommentRecord
	err := r.db.Where("owner_key = ? AND owner_type = ?", id, string(ownerType)).Order("id ASC").Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return toEntities(recs), nil
}

// DeleteForOwner removes all stored comments of one title or author.
func (r *Repository) DeleteForOwner(ownerKey entities.OptionalKey, ownerType entities.ListType) (int64, error) {
	id, ok := ownerKey.Value()
	if !ok {
		return 0, dberr.Missing("comment owner")
	}
	result := r.db.Where("owner_key = ? AND owner_type = ?", id, string(ownerType)).Delete(&entities.CommentRecord{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteOrphans removes comments whose owner row no longer exists.
func (r *Repository) DeleteOrphans() (int64, error) {
	result := r.db.Exec(`
		DELETE FROM comments
		WHERE (owner_type = ? AND owner_key NOT IN (SELECT id FROM titles))
		   OR (owner_type = ? AND owner_key NOT IN (SELECT id FROM authors))
	`, string(entities.TypeTitle), string(entities.TypeAuthor))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
