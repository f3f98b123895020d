package entities

import "time"

// The record types below are the storage shapes of the four catalog tables.
// Foreign relationships are integer ids here; only the gateways translate them
// to and from display names. The schema itself lives in the migrations.

type ListRecord struct {
	ID             int64     `gorm:"primaryKey;column:id"`
	ListType       string    `gorm:"column:list_type;size:10;not null"`
	DialogTitle    string    `gorm:"column:dialog_title;size:255;not null"`
	ComponentLabel string    `gorm:"column:component_label;size:255"`
	CreationDate   time.Time `gorm:"column:creation_date;type:date"`
	ModifyDate     time.Time `gorm:"column:modify_date;type:date"`
}

func (ListRecord) TableName() string {
	return "lists"
}

type AuthorRecord struct {
	ID           int64     `gorm:"primaryKey;column:id"`
	ListID       int64     `gorm:"column:list_id;index;not null"`
	Name         string    `gorm:"column:name;size:255;index"`
	Rank         int       `gorm:"column:rank"`
	Rating       int       `gorm:"column:rating"`
	Source       string    `gorm:"column:source;size:255"`
	LastCount    int       `gorm:"column:last_count"`
	CurrentCount int       `gorm:"column:current_count"`
	CreationDate time.Time `gorm:"column:creation_date;type:date"`
	ModifyDate   time.Time `gorm:"column:modify_date;type:date"`
}

func (AuthorRecord) TableName() string {
	return "authors"
}

type TitleRecord struct {
	ID           int64      `gorm:"primaryKey;column:id"`
	ListID       int64      `gorm:"column:list_id;index;not null"`
	AuthorID     *int64     `gorm:"column:author_id;index"`
	Title        string     `gorm:"column:title;size:512"`
	MediaType    string     `gorm:"column:media_type;size:50"`
	Rank         int        `gorm:"column:rank"`
	Rating       int        `gorm:"column:rating"`
	Source       string     `gorm:"column:source;size:255"`
	ReckonQPos   int        `gorm:"column:reckon_qpos"`
	CheckQPos    int        `gorm:"column:check_qpos"`
	ReckonDate   *time.Time `gorm:"column:reckon_date;type:date"`
	CheckDate    *time.Time `gorm:"column:check_date;type:date"`
	CreationDate time.Time  `gorm:"column:creation_date;type:date"`
	ModifyDate   time.Time  `gorm:"column:modify_date;type:date"`
}

func (TitleRecord) TableName() string {
	return "titles"
}

// CommentRecord rows from titles and authors share one table; the pair
// (owner_key, owner_type) identifies the owner.
type CommentRecord struct {
	ID        int64  `gorm:"primaryKey;column:id"`
	OwnerKey  int64  `gorm:"column:owner_key;not null"`
	OwnerType string `gorm:"column:owner_type;size:10;not null"`
	Text      string `gorm:"column:text;type:text"`
}

func (CommentRecord) TableName() string {
	return "comments"
}

// DatePtr maps a zero date to NULL.
func DatePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	d := TruncateDate(t)
	return &d
}

// DateFromPtr maps NULL back to the zero date.
func DateFromPtr(p *time.Time) time.Time {
	if p == nil {
		return time.Time{}
	}
	return TruncateDate(*p)
}
