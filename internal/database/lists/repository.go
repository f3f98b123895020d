// Package lists is the table gateway for catalog lists.
//
// Lists are addressed by key or by (type, display name); the name is unique
// per list type. Titles and authors refer to a list by display name in memory
// and by id in storage; IDByName and NameByID are the two directions of that
// translation and are used by the other gateways.
//
// # Usage
//
//	repo := lists.NewRepository(db)
//	list := entities.NewList(entities.TypeTitle, "Wish List Titles", "wish-titles")
//	err := repo.Insert(list) // list.Key is now assigned
package lists

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/dberr"
	"github.com/mrlokans/catalog/internal/entities"
)

// Repository handles all list database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new lists repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func toRecord(l *entities.KCLSList) entities.ListRecord {
	return entities.ListRecord{
		ID:             l.Key.Int64(),
		ListType:       string(l.ListType),
		DialogTitle:    l.DialogTitle,
		ComponentLabel: l.ComponentLabel,
		CreationDate:   entities.TruncateDate(l.CreationDate),
		ModifyDate:     entities.TruncateDate(l.ModifyDate),
	}
}

func toEntity(rec *entities.ListRecord) *entities.KCLSList {
	return &entities.KCLSList{
		Key:            entities.KeyFromPtr(&rec.ID),
		ListType:       entities.ListType(rec.ListType),
		DialogTitle:    rec.DialogTitle,
		ComponentLabel: rec.ComponentLabel,
		CreationDate:   entities.TruncateDate(rec.CreationDate),
		ModifyDate:     entities.TruncateDate(rec.ModifyDate),
	}
}

func toEntities(recs []entities.ListRecord) []*entities.KCLSList {
	out := make([]*entities.KCLSList, len(recs))
	for i := range recs {
		out[i] = toEntity(&recs[i])
	}
	return out
}

// Insert stores a new list and assigns its key.
func (r *Repository) Insert(l *entities.KCLSList) error {
	if !l.ListType.Valid() {
		return fmt.Errorf("invalid list type %q", l.ListType)
	}
	rec := toRecord(l)
	rec.ID = 0
	if err := r.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to insert list %q: %w", l.DialogTitle, err)
	}
	l.Key = entities.MustKey(rec.ID)
	return nil
}

// Update rewrites every column of an existing list.
func (r *Repository) Update(l *entities.KCLSList) error {
	id, ok := l.Key.Value()
	if !ok {
		return dberr.Missing("list")
	}
	if !l.ListType.Valid() {
		return fmt.Errorf("invalid list type %q", l.ListType)
	}
	rec := toRecord(l)
	result := r.db.Model(&entities.ListRecord{}).Where("id = ?", id).Updates(map[string]any{
		"list_type":       rec.ListType,
		"dialog_title":    rec.DialogTitle,
		"component_label": rec.ComponentLabel,
		"creation_date":   rec.CreationDate,
		"modify_date":     rec.ModifyDate,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update list %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.NotFound("list", id)
	}
	return nil
}

// Delete removes the list row. Lists still referenced by titles or authors
// are protected by the foreign keys.
func (r *Repository) Delete(l *entities.KCLSList) error {
	return r.DeleteByKey(l.Key)
}

// DeleteByKey removes the list with the given key.
func (r *Repository) DeleteByKey(key entities.OptionalKey) error {
	id, ok := key.Value()
	if !ok {
		return dberr.Missing("list")
	}
	result := r.db.Delete(&entities.ListRecord{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete list %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.NotFound("list", id)
	}
	return nil
}

// GetByKey retrieves a list by key.
func (r *Repository) GetByKey(key entities.OptionalKey) (*entities.KCLSList, error) {
	id, ok := key.Value()
	if !ok {
		return nil, dberr.Missing("list")
	}
	var rec entities.ListRecord
	if err := r.db.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dberr.NotFound("list", id)
		}
		return nil, err
	}
	return toEntity(&rec), nil
}

// GetAll retrieves every list ordered by key.
func (r *Repository) GetAll() ([]*entities.KCLSList, error) {
	var recs []entities.ListRecord
	if err := r.db.Order("id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return toEntities(recs), nil
}

// GetByType retrieves all lists of one type ordered by name.
func (r *Repository) GetByType(listType entities.ListType) ([]*entities.KCLSList, error) {
	var recs []entities.ListRecord
	err := r.db.Where("list_type = ?", string(listType)).Order("dialog_title ASC").Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return toEntities(recs), nil
}

// GetByName retrieves a list by type and display name.
func (r *Repository) GetByName(listType entities.ListType, name string) (*entities.KCLSList, error) {
	var rec entities.ListRecord
	err := r.db.Where("list_type = ? AND dialog_title = ?", string(listType), name).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dberr.NotFound(fmt.Sprintf("%s list", listType), fmt.Sprintf("%q", name))
		}
		return nil, err
	}
	return toEntity(&rec), nil
}

// IDByName resolves a display name to the list id.
func (r *Repository) IDByName(listType entities.ListType, name string) (int64, error) {
	var ids []int64
	err := r.db.Model(&entities.ListRecord{}).
		Where("list_type = ? AND dialog_title = ?", string(listType), name).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, dberr.NotFound(fmt.Sprintf("%s list", listType), fmt.Sprintf("%q", name))
	}
	return ids[0], nil
}

// NameByID resolves a list id to its display name.
func (r *Repository) NameByID(id int64) (string, error) {
	var names []string
	err := r.db.Model(&entities.ListRecord{}).Where("id = ?", id).Limit(1).Pluck("dialog_title", &names).Error
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", dberr.NotFound("list", id)
	}
	return names[0], nil
}
