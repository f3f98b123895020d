// Package reconcile keeps the stored comments of a title or author in step
// with the comments the caller holds in memory.
//
// Identity is by primary key only. A stored comment whose key is no longer
// present in memory is deleted, a keyed in-memory comment is updated in place
// and an unkeyed one is inserted. Deletes run before updates and inserts; the
// two sets touch disjoint keys.
//
//	engine := reconcile.NewEngine(commentsRepo)
//	if err := engine.Sync(title); err != nil { ... }
package reconcile

import (
	"fmt"

	"github.com/mrlokans/catalog/internal/dberr"
	"github.com/mrlokans/catalog/internal/entities"
)

// Store is the comment storage the engine writes through.
type Store interface {
	ForOwner(ownerKey entities.OptionalKey, ownerType entities.ListType) ([]*entities.Comment, error)
	Insert(c *entities.Comment) error
	Update(c *entities.Comment) error
	DeleteByKey(key entities.OptionalKey) error
	DeleteForOwner(ownerKey entities.OptionalKey, ownerType entities.ListType) (int64, error)
}

// Owner is a parent entity carrying comments. *entities.Title and
// *entities.Author satisfy it.
type Owner interface {
	OwnerKey() entities.OptionalKey
	OwnerType() entities.ListType
	AllComments() []*entities.Comment
}

var (
	_ Owner = (*entities.Title)(nil)
	_ Owner = (*entities.Author)(nil)
)

// Plan is the set of writes that brings storage in line with memory.
type Plan struct {
	Deletes   []*entities.Comment
	Updates   []*entities.Comment
	Inserts   []*entities.Comment
	Unchanged []*entities.Comment
}

// Writes counts the statements the plan will execute.
func (p Plan) Writes() int {
	return len(p.Deletes) + len(p.Updates) + len(p.Inserts)
}

// Diff classifies committed and current comments of one parent. Every current
// comment is re-owned to the parent before classification, so a comment moved
// from another parent shows up as an update.
func Diff(parentKey entities.OptionalKey, parentType entities.ListType, committed, current []*entities.Comment) (Plan, error) {
	var plan Plan
	if !parentKey.IsAssigned() {
		return plan, dberr.Missing(fmt.Sprintf("%s comment owner", parentType))
	}

	stored := make(map[entities.OptionalKey]*entities.Comment, len(committed))
	for _, c := range committed {
		if !c.Key.IsAssigned() {
			return plan, fmt.Errorf("stored comment of %s %s has no key: %w", parentType, parentKey, dberr.ErrInternalConsistency)
		}
		stored[c.Key] = c
	}

	current, err := distinct(parentKey, parentType, current)
	if err != nil {
		return plan, err
	}

	kept := make(map[entities.OptionalKey]bool, len(current))
	for _, c := range current {
		c.OwnerKey = parentKey
		c.OwnerType = parentType

		if !c.Key.IsAssigned() {
			plan.Inserts = append(plan.Inserts, c)
			continue
		}
		kept[c.Key] = true
		if prev, ok := stored[c.Key]; ok && prev.Equal(c) {
			plan.Unchanged = append(plan.Unchanged, c)
			continue
		}
		plan.Updates = append(plan.Updates, c)
	}

	for _, c := range committed {
		if !kept[c.Key] {
			plan.Deletes = append(plan.Deletes, c)
		}
	}
	return plan, nil
}

// distinct drops repeated pointers so a comment listed twice is written once.
// A nil entry is an error.
func distinct(parentKey entities.OptionalKey, parentType entities.ListType, comments []*entities.Comment) ([]*entities.Comment, error) {
	seen := make(map[*entities.Comment]bool, len(comments))
	out := make([]*entities.Comment, 0, len(comments))
	for i, c := range comments {
		if c == nil {
			return nil, fmt.Errorf("%s %s: nil comment at %d: %w", parentType, parentKey, i, dberr.ErrInternalConsistency)
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out, nil
}

// Engine applies plans through a Store.
type Engine struct {
	store Store
}

// NewEngine creates an engine writing through store.
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Sync reads the owner's stored comments fresh, diffs them against the
// in-memory set and applies deletes, then updates, then inserts. Inserted
// comments receive their keys.
func (e *Engine) Sync(owner Owner) (Plan, error) {
	key, kind := owner.OwnerKey(), owner.OwnerType()
	if !key.IsAssigned() {
		return Plan{}, dberr.Missing(fmt.Sprintf("%s comment owner", kind))
	}

	committed, err := e.store.ForOwner(key, kind)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to read comments of %s %s: %w", kind, key, err)
	}

	plan, err := Diff(key, kind, committed, owner.AllComments())
	if err != nil {
		return Plan{}, err
	}
	return plan, e.Apply(plan)
}

// Apply executes a plan in delete, update, insert order and stops at the
// first failure.
func (e *Engine) Apply(plan Plan) error {
	for _, c := range plan.Deletes {
		if err := e.store.DeleteByKey(c.Key); err != nil {
			return fmt.Errorf("failed to delete comment %s: %w", c.Key, err)
		}
	}
	for _, c := range plan.Updates {
		if err := e.store.Update(c); err != nil {
			return fmt.Errorf("failed to update comment %s: %w", c.Key, err)
		}
	}
	for _, c := range plan.Inserts {
		if err := e.store.Insert(c); err != nil {
			return fmt.Errorf("failed to insert comment: %w", err)
		}
	}
	return nil
}

// InsertAll stores every in-memory comment of a freshly inserted owner as a
// new row. Keys the comments may already carry are discarded.
func (e *Engine) InsertAll(owner Owner) error {
	key, kind := owner.OwnerKey(), owner.OwnerType()
	if !key.IsAssigned() {
		return dberr.Missing(fmt.Sprintf("%s comment owner", kind))
	}
	current, err := distinct(key, kind, owner.AllComments())
	if err != nil {
		return err
	}
	for _, c := range current {
		c.Key = entities.NoKey
		c.OwnerKey = key
		c.OwnerType = kind
		if err := e.store.Insert(c); err != nil {
			return fmt.Errorf("failed to insert comment of %s %s: %w", kind, key, err)
		}
	}
	return nil
}

// DeleteAll removes every stored comment of the owner. In-memory comments
// without a key never reached storage and are ignored.
func (e *Engine) DeleteAll(owner Owner) (int64, error) {
	key, kind := owner.OwnerKey(), owner.OwnerType()
	if !key.IsAssigned() {
		return 0, dberr.Missing(fmt.Sprintf("%s comment owner", kind))
	}
	n, err := e.store.DeleteForOwner(key, kind)
	if err != nil {
		return 0, fmt.Errorf("failed to delete comments of %s %s: %w", kind, key, err)
	}
	return n, nil
}
