package http

import (
	"github.com/mrlokans/catalog/internal/entities"
)

// ListStore defines database operations for list management.
type ListStore interface {
	InsertList(l *entities.KCLSList) error
	UpdateList(l *entities.KCLSList) error
	DeleteListByKey(key entities.OptionalKey) error
	GetList(key entities.OptionalKey) (*entities.KCLSList, error)
	GetAllLists() ([]*entities.KCLSList, error)
	GetListsOfType(listType entities.ListType) ([]*entities.KCLSList, error)
}

// TitleStore defines database operations for titles.
type TitleStore interface {
	InsertTitle(t *entities.Title) error
	UpdateTitle(t *entities.Title) error
	DeleteTitleByKey(key entities.OptionalKey) error
	GetTitle(key entities.OptionalKey) (*entities.Title, error)
	GetAllTitles() ([]*entities.Title, error)
	GetTitlesForList(listName string) ([]*entities.Title, error)
	GetTitlesForAuthor(authorName string) ([]*entities.Title, error)
}

// AuthorStore defines database operations for authors.
type AuthorStore interface {
	InsertAuthor(a *entities.Author) error
	UpdateAuthor(a *entities.Author) error
	DeleteAuthorByKey(key entities.OptionalKey) error
	GetAuthor(key entities.OptionalKey) (*entities.Author, error)
	GetAllAuthors() ([]*entities.Author, error)
	GetAuthorsForList(listName string) ([]*entities.Author, error)
}

// CommentStore defines database operations for single comments.
type CommentStore interface {
	InsertComment(c *entities.Comment) error
	UpdateComment(c *entities.Comment) error
	DeleteComment(c *entities.Comment) error
	GetComment(key entities.OptionalKey) (*entities.Comment, error)
}

// HealthChecker reports whether the store is reachable and migrated.
type HealthChecker interface {
	Ping() error
	SchemaVersion() (int64, error)
}

// CatalogStore is everything the API needs from the catalog database.
type CatalogStore interface {
	ListStore
	TitleStore
	AuthorStore
	CommentStore
	HealthChecker
}
