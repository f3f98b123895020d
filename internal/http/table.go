package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/translator"
)

var errNotInList = errors.New("item is not in this list")

type tableRow struct {
	Key    entities.OptionalKey `json:"key"`
	Values []any                `json:"values"`
}

type tableResponse struct {
	List    *entities.KCLSList  `json:"list"`
	Columns []translator.Column `json:"columns"`
	Rows    []tableRow          `json:"rows"`
}

type patchRow struct {
	Key    entities.OptionalKey `json:"key"`
	Values []json.RawMessage    `json:"values"`
}

type tablePatch struct {
	Columns []translator.Column `json:"columns" binding:"required"`
	Rows    []patchRow          `json:"rows"`
}

// TableController exposes the items of a list as rows of named columns.
type TableController struct {
	lists   ListStore
	titles  TitleStore
	authors AuthorStore
	log     *zap.Logger
}

func NewTableController(lists ListStore, titles TitleStore, authors AuthorStore, log *zap.Logger) *TableController {
	return &TableController{lists: lists, titles: titles, authors: authors, log: orNop(log)}
}

// GetTable returns the list's items as rows
// GET /api/lists/:id/table?columns=title-text,rank
func (tc *TableController) GetTable(c *gin.Context) {
	list, ok := tc.loadList(c)
	if !ok {
		return
	}
	columns := requestedColumns(c.Query("columns"))

	resp := tableResponse{List: list}
	var err error
	switch list.ListType {
	case entities.TypeTitle:
		if columns == nil {
			columns = translator.DefaultTitleColumns
		}
		var tr *translator.Translator[entities.Title]
		if tr, err = translator.ForTitles(columns...); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		var titles []*entities.Title
		if titles, err = tc.titles.GetTitlesForList(list.DialogTitle); err == nil {
			resp.Rows = renderRows(tr, titles, titleKey)
		}
	case entities.TypeAuthor:
		if columns == nil {
			columns = translator.DefaultAuthorColumns
		}
		var tr *translator.Translator[entities.Author]
		if tr, err = translator.ForAuthors(columns...); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		var authors []*entities.Author
		if authors, err = tc.authors.GetAuthorsForList(list.DialogTitle); err == nil {
			resp.Rows = renderRows(tr, authors, authorKey)
		}
	}
	if err != nil {
		respondStoreError(c, tc.log, err, "get table")
		return
	}
	resp.Columns = columns[:len(columns)-1]
	resp.Rows = nonNil(resp.Rows)
	c.JSON(http.StatusOK, resp)
}

// PatchTable writes edited row values back into the list's items. All rows
// are decoded and applied in memory first; then each item is updated in
// turn and the first storage failure stops the run.
// PATCH /api/lists/:id/table
func (tc *TableController) PatchTable(c *gin.Context) {
	list, ok := tc.loadList(c)
	if !ok {
		return
	}
	var req tablePatch
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "columns are required")
		return
	}
	columns := append(append([]translator.Column(nil), req.Columns...), translator.Hidden)

	var (
		updated int
		err     error
	)
	switch list.ListType {
	case entities.TypeTitle:
		var tr *translator.Translator[entities.Title]
		if tr, err = translator.ForTitles(columns...); err != nil {
			break
		}
		var titles []*entities.Title
		titles, err = applyRows(tr, req.Rows, tc.titles.GetTitle, func(t *entities.Title) bool {
			return t.ListName == list.DialogTitle
		})
		if err == nil {
			updated, err = updateAll(titles, tc.titles.UpdateTitle)
		}
	case entities.TypeAuthor:
		var tr *translator.Translator[entities.Author]
		if tr, err = translator.ForAuthors(columns...); err != nil {
			break
		}
		var authors []*entities.Author
		authors, err = applyRows(tr, req.Rows, tc.authors.GetAuthor, func(a *entities.Author) bool {
			return a.ListName == list.DialogTitle
		})
		if err == nil {
			updated, err = updateAll(authors, tc.authors.UpdateAuthor)
		}
	}

	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"updated": updated})
	case isTableInputError(err):
		respondBadRequest(c, err.Error())
	default:
		tc.log.Warn("Table patch stopped", zap.Int("updated", updated), zap.Error(err))
		respondStoreError(c, tc.log, err, "patch table")
	}
}

func (tc *TableController) loadList(c *gin.Context) (*entities.KCLSList, bool) {
	key, ok := parseKeyParam(c, "id")
	if !ok {
		return nil, false
	}
	list, err := tc.lists.GetList(key)
	if err != nil {
		respondStoreError(c, tc.log, err, "get list")
		return nil, false
	}
	return list, true
}

func requestedColumns(raw string) []translator.Column {
	columns := translator.ParseColumns(raw)
	if len(columns) == 1 {
		return nil
	}
	return columns
}

func titleKey(t *entities.Title) entities.OptionalKey   { return t.Key }
func authorKey(a *entities.Author) entities.OptionalKey { return a.Key }

// renderRows drops the hidden slot and formats dates the way PATCH reads them.
func renderRows[E any](tr *translator.Translator[E], items []*E, keyOf func(*E) entities.OptionalKey) []tableRow {
	rows := make([]tableRow, 0, len(items))
	for _, item := range items {
		values := tr.Row(item)
		values = values[:len(values)-1]
		for i := range values {
			if tr.Kind(i) == translator.KindDate {
				values[i] = translator.Format(values[i])
			}
		}
		rows = append(rows, tableRow{Key: keyOf(item), Values: values})
	}
	return rows
}

func applyRows[E any](
	tr *translator.Translator[E],
	rows []patchRow,
	load func(entities.OptionalKey) (*E, error),
	inList func(*E) bool,
) ([]*E, error) {
	items := make([]*E, 0, len(rows))
	for i, r := range rows {
		if len(r.Values) != tr.Width()-1 {
			return nil, fmt.Errorf("row %d: %w: want %d values, got %d", i, translator.ErrRowLength, tr.Width()-1, len(r.Values))
		}
		item, err := load(r.Key)
		if err != nil {
			return nil, err
		}
		if !inList(item) {
			return nil, fmt.Errorf("row %d: key %s: %w", i, r.Key, errNotInList)
		}

		row := make([]any, tr.Width())
		for j, raw := range r.Values {
			v, err := translator.Decode(tr.Kind(j), raw)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", i, tr.Columns()[j], err)
			}
			row[j] = v
		}
		row[len(row)-1] = item
		if err := tr.Apply(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func updateAll[E any](items []*E, update func(*E) error) (int, error) {
	for i, item := range items {
		if err := update(item); err != nil {
			return i, err
		}
	}
	return len(items), nil
}

func isTableInputError(err error) bool {
	return errors.Is(err, translator.ErrUnknownColumn) ||
		errors.Is(err, translator.ErrBadLayout) ||
		errors.Is(err, translator.ErrRowLength) ||
		errors.Is(err, translator.ErrTypeMismatch) ||
		errors.Is(err, errNotInList)
}
