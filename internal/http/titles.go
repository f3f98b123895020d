package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/catalog/internal/entities"
)

type TitlesController struct {
	store TitleStore
	log   *zap.Logger
}

func NewTitlesController(store TitleStore, log *zap.Logger) *TitlesController {
	return &TitlesController{store: store, log: orNop(log)}
}

// GetTitles returns all titles, the titles of a list or the titles of an author
// GET /api/titles?list=Wish%20List
// GET /api/titles?author=Herbert,%20Frank
func (tc *TitlesController) GetTitles(c *gin.Context) {
	var (
		titles []*entities.Title
		err    error
	)
	switch list, author := c.Query("list"), c.Query("author"); {
	case list != "" && author != "":
		respondBadRequest(c, "use either list or author, not both")
		return
	case list != "":
		titles, err = tc.store.GetTitlesForList(list)
	case author != "":
		titles, err = tc.store.GetTitlesForAuthor(author)
	default:
		titles, err = tc.store.GetAllTitles()
	}
	if err != nil {
		respondStoreError(c, tc.log, err, "get titles")
		return
	}
	c.JSON(http.StatusOK, nonNil(titles))
}

// CreateTitle stores a new title and its comments
// POST /api/titles
func (tc *TitlesController) CreateTitle(c *gin.Context) {
	var t entities.Title
	if err := c.ShouldBindJSON(&t); err != nil {
		respondBadRequest(c, "invalid title: "+err.Error())
		return
	}
	if t.Title == "" || t.ListName == "" {
		respondBadRequest(c, "title and list_name are required")
		return
	}
	t.Key = entities.NoKey
	stampNew(&t.LibraryItem)

	if err := tc.store.InsertTitle(&t); err != nil {
		respondStoreError(c, tc.log, err, "create title")
		return
	}
	respondCreated(c, &t)
}

// GetTitle returns one title with its comments
// GET /api/titles/:id
func (tc *TitlesController) GetTitle(c *gin.Context) {
	key, ok := parseKeyParam(c, "id")
	if !ok {
		return
	}
	t, err := tc.store.GetTitle(key)
	if err != nil {
		respondStoreError(c, tc.log, err, "get title")
		return
	}
	c.JSON(http.StatusOK, t)
}

// UpdateTitle replaces a title. Comments sent with a key are updated, those
// without one are added and stored ones left out are deleted. Omitting the
// comments field keeps the stored comments.
// PUT /api/titles/:id
func (tc *TitlesController) UpdateTitle(c *gin.Context) {
	key, ok := parseKeyParam(c, "id")
	if !ok {
		return
	}
	var t entities.Title
	if err := c.ShouldBindJSON(&t); err != nil {
		respondBadRequest(c, "invalid title: "+err.Error())
		return
	}

	stored, err := tc.store.GetTitle(key)
	if err != nil {
		respondStoreError(c, tc.log, err, "update title")
		return
	}
	t.Key = key
	stampUpdate(&t.LibraryItem, &stored.LibraryItem)

	if err := tc.store.UpdateTitle(&t); err != nil {
		respondStoreError(c, tc.log, err, "update title")
		return
	}
	c.JSON(http.StatusOK, &t)
}

// DeleteTitle removes a title and its comments
// DELETE /api/titles/:id
func (tc *TitlesController) DeleteTitle(c *gin.Context) {
	key, ok := parseKeyParam(c, "id")
	if !ok {
		return
	}
	if err := tc.store.DeleteTitleByKey(key); err != nil {
		respondStoreError(c, tc.log, err, "delete title")
		return
	}
	respondSuccess(c, "title deleted")
}

func stampNew(item *entities.LibraryItem) {
	today := entities.Today()
	if item.CreationDate.IsZero() {
		item.CreationDate = today
	}
	item.ModifyDate = today
}

func stampUpdate(item, stored *entities.LibraryItem) {
	if item.CreationDate.IsZero() {
		item.CreationDate = stored.CreationDate
	}
	if item.ListName == "" {
		item.ListName = stored.ListName
	}
	if item.Comments == nil {
		item.Comments = stored.Comments
	}
	item.ModifyDate = entities.Today()
}
