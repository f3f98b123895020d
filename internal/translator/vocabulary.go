package translator

import (
	"time"

	"github.com/mrlokans/catalog/internal/entities"
)

// Columns shared by titles and authors.
const (
	ListName     Column = "list-name"
	Rank         Column = "rank"
	Rating       Column = "rating"
	Source       Column = "source"
	CreationDate Column = "creation-date"
	ModifyDate   Column = "modify-date"
	AuthorName   Column = "author-name"
)

// Title-only columns.
const (
	TitleText  Column = "title-text"
	MediaType  Column = "media-type"
	CheckQPos  Column = "check-qpos"
	ReckonQPos Column = "reckon-qpos"
	CheckDate  Column = "check-date"
	ReckonDate Column = "reckon-date"
)

// Author-only columns.
const (
	LastCount    Column = "last-count"
	CurrentCount Column = "current-count"
)

var titleVocabulary = Vocabulary[entities.Title]{
	TitleText: textField(
		func(t *entities.Title) string { return t.Title },
		func(t *entities.Title, v string) { t.Title = v }),
	AuthorName: textField(
		func(t *entities.Title) string { return t.AuthorName },
		func(t *entities.Title, v string) { t.AuthorName = v }),
	ListName: textField(
		func(t *entities.Title) string { return t.ListName },
		func(t *entities.Title, v string) { t.ListName = v }),
	Rank: intField(
		func(t *entities.Title) int { return t.Rank },
		func(t *entities.Title, v int) { t.Rank = v }),
	Rating: intField(
		func(t *entities.Title) int { return t.Rating },
		func(t *entities.Title, v int) { t.Rating = v }),
	Source: textField(
		func(t *entities.Title) string { return t.Source },
		func(t *entities.Title, v string) { t.Source = v }),
	MediaType: textField(
		func(t *entities.Title) string { return t.MediaType },
		func(t *entities.Title, v string) { t.MediaType = v }),
	CheckQPos: intField(
		func(t *entities.Title) int { return t.CheckQPos },
		func(t *entities.Title, v int) { t.CheckQPos = v }),
	ReckonQPos: intField(
		func(t *entities.Title) int { return t.ReckonQPos },
		func(t *entities.Title, v int) { t.ReckonQPos = v }),
	CreationDate: dateField(
		func(t *entities.Title) time.Time { return t.CreationDate },
		func(t *entities.Title, v time.Time) { t.CreationDate = v }),
	ModifyDate: dateField(
		func(t *entities.Title) time.Time { return t.ModifyDate },
		func(t *entities.Title, v time.Time) { t.ModifyDate = v }),
	CheckDate: dateField(
		func(t *entities.Title) time.Time { return t.CheckDate },
		func(t *entities.Title, v time.Time) { t.CheckDate = v }),
	ReckonDate: dateField(
		func(t *entities.Title) time.Time { return t.ReckonDate },
		func(t *entities.Title, v time.Time) { t.ReckonDate = v }),
}

var authorVocabulary = Vocabulary[entities.Author]{
	AuthorName: textField(
		func(a *entities.Author) string { return a.Name },
		func(a *entities.Author, v string) { a.Name = v }),
	ListName: textField(
		func(a *entities.Author) string { return a.ListName },
		func(a *entities.Author, v string) { a.ListName = v }),
	Rank: intField(
		func(a *entities.Author) int { return a.Rank },
		func(a *entities.Author, v int) { a.Rank = v }),
	Rating: intField(
		func(a *entities.Author) int { return a.Rating },
		func(a *entities.Author, v int) { a.Rating = v }),
	Source: textField(
		func(a *entities.Author) string { return a.Source },
		func(a *entities.Author, v string) { a.Source = v }),
	LastCount: intField(
		func(a *entities.Author) int { return a.LastCount },
		func(a *entities.Author, v int) { a.LastCount = v }),
	CurrentCount: intField(
		func(a *entities.Author) int { return a.CurrentCount },
		func(a *entities.Author, v int) { a.CurrentCount = v }),
	CreationDate: dateField(
		func(a *entities.Author) time.Time { return a.CreationDate },
		func(a *entities.Author, v time.Time) { a.CreationDate = v }),
	ModifyDate: dateField(
		func(a *entities.Author) time.Time { return a.ModifyDate },
		func(a *entities.Author, v time.Time) { a.ModifyDate = v }),
}

// TitleVocabulary returns the columns recognized for titles.
func TitleVocabulary() Vocabulary[entities.Title] {
	return titleVocabulary
}

// AuthorVocabulary returns the columns recognized for authors.
func AuthorVocabulary() Vocabulary[entities.Author] {
	return authorVocabulary
}

// ForTitles builds a title translator.
func ForTitles(columns ...Column) (*Translator[entities.Title], error) {
	return New(titleVocabulary, columns...)
}

// ForAuthors builds an author translator.
func ForAuthors(columns ...Column) (*Translator[entities.Author], error) {
	return New(authorVocabulary, columns...)
}

// DefaultTitleColumns is the layout used when a caller asks for none.
var DefaultTitleColumns = []Column{TitleText, AuthorName, MediaType, Rank, Rating, CheckQPos, Hidden}

// DefaultAuthorColumns is the layout used when a caller asks for none.
var DefaultAuthorColumns = []Column{AuthorName, Rank, Rating, LastCount, CurrentCount, Hidden}
