package entities

import (
	"math"
	"time"
)

// ListType discriminates the two kinds of lists. It also tells which table a
// comment's owner lives in.
type ListType string

const (
	TypeTitle  ListType = "TITLE"
	TypeAuthor ListType = "AUTHOR"
)

// Valid reports whether t is one of the two known list types.
func (t ListType) Valid() bool {
	return t == TypeTitle || t == TypeAuthor
}

// Date builds a calendar date at midnight UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TruncateDate drops the time of day, keeping the calendar date of t in its
// own location. Zero stays zero.
func TruncateDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return Date(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar date.
func Today() time.Time {
	return TruncateDate(time.Now())
}

// LibraryItem holds what titles and authors have in common.
type LibraryItem struct {
	Key          OptionalKey `json:"key"`
	Rank         int         `json:"rank"`
	Rating       int         `json:"rating"`
	Source       string      `json:"source"`
	ListName     string      `json:"list_name"`
	Comments     []*Comment  `json:"comments" binding:"omitempty,dive,required"`
	CreationDate time.Time   `json:"creation_date"`
	ModifyDate   time.Time   `json:"modify_date"`
}

// OwnerKey returns the key comments of this item are filed under.
func (i *LibraryItem) OwnerKey() OptionalKey {
	return i.Key
}

// AllComments returns the in-memory comment set.
func (i *LibraryItem) AllComments() []*Comment {
	return i.Comments
}

// AddComment appends a new, unpersisted comment with the given text.
func (i *LibraryItem) AddComment(text string) *Comment {
	c := &Comment{Text: text}
	i.Comments = append(i.Comments, c)
	return c
}

// RemoveComment drops c from the in-memory set by identity. The stored row
// goes away on the next update of the owner.
func (i *LibraryItem) RemoveComment(c *Comment) bool {
	for idx, existing := range i.Comments {
		if existing == c {
			i.Comments = append(i.Comments[:idx], i.Comments[idx+1:]...)
			return true
		}
	}
	return false
}

// Title is a book, movie or show tracked in a title list.
type Title struct {
	LibraryItem
	Title      string    `json:"title"`
	AuthorName string    `json:"author"`
	MediaType  string    `json:"media_type"`
	ReckonQPos int       `json:"reckon_qpos"`
	CheckQPos  int       `json:"check_qpos"`
	ReckonDate time.Time `json:"reckon_date"`
	CheckDate  time.Time `json:"check_date"`
}

// NewTitle returns an unpersisted title filed under listName.
func NewTitle(title, authorName, listName string) *Title {
	today := Today()
	return &Title{
		LibraryItem: LibraryItem{
			ListName:     listName,
			CreationDate: today,
			ModifyDate:   today,
		},
		Title:      title,
		AuthorName: authorName,
	}
}

// OwnerType marks comments of a title.
func (t *Title) OwnerType() ListType {
	return TypeTitle
}

// EstimatedAvailability projects the date the hold queue reaches zero from
// the queue movement between the reckon and check observations.
func (t *Title) EstimatedAvailability() (time.Time, bool) {
	if t.ReckonDate.IsZero() || t.CheckDate.IsZero() {
		return time.Time{}, false
	}
	if t.CheckQPos <= 0 {
		return t.CheckDate, true
	}
	days := t.CheckDate.Sub(t.ReckonDate).Hours() / 24
	moved := float64(t.ReckonQPos - t.CheckQPos)
	if days <= 0 || moved <= 0 {
		return time.Time{}, false
	}
	perDay := moved / days
	remaining := int(math.Ceil(float64(t.CheckQPos) / perDay))
	return t.CheckDate.AddDate(0, 0, remaining), true
}

// Author is a writer or creator tracked in an author list.
type Author struct {
	LibraryItem
	Name         string `json:"name"`
	LastCount    int    `json:"last_count"`
	CurrentCount int    `json:"current_count"`
}

// NewAuthor returns an unpersisted author filed under listName.
func NewAuthor(name, listName string) *Author {
	today := Today()
	return &Author{
		LibraryItem: LibraryItem{
			ListName:     listName,
			CreationDate: today,
			ModifyDate:   today,
		},
		Name: name,
	}
}

// OwnerType marks comments of an author.
func (a *Author) OwnerType() ListType {
	return TypeAuthor
}

// CatalogChanged reports whether the author's catalog size moved since the
// last review.
func (a *Author) CatalogChanged() bool {
	return a.LastCount != a.CurrentCount
}

// KCLSList is a named grouping of titles or authors. DialogTitle is the
// display name items refer to.
type KCLSList struct {
	Key            OptionalKey `json:"key"`
	ListType       ListType    `json:"list_type"`
	DialogTitle    string      `json:"dialog_title"`
	ComponentLabel string      `json:"component_label"`
	CreationDate   time.Time   `json:"creation_date"`
	ModifyDate     time.Time   `json:"modify_date"`
}

// NewList returns an unpersisted list.
func NewList(listType ListType, dialogTitle, componentLabel string) *KCLSList {
	today := Today()
	return &KCLSList{
		ListType:       listType,
		DialogTitle:    dialogTitle,
		ComponentLabel: componentLabel,
		CreationDate:   today,
		ModifyDate:     today,
	}
}

// Comment is free text attached to a title or an author.
type Comment struct {
	Key       OptionalKey `json:"key"`
	Text      string      `json:"text"`
	OwnerKey  OptionalKey `json:"owner_key"`
	OwnerType ListType    `json:"owner_type"`
}

// IsNew reports whether the comment has never been stored.
func (c *Comment) IsNew() bool {
	return !c.Key.IsAssigned()
}

// Equal compares comments by value.
func (c *Comment) Equal(other *Comment) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Key == other.Key &&
		c.Text == other.Text &&
		c.OwnerKey == other.OwnerKey &&
		c.OwnerType == other.OwnerType
}
