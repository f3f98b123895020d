package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/catalog/internal/entities"
)

type AuthorsController struct {
	store AuthorStore
	log   *zap.Logger
}

func NewAuthorsController(store AuthorStore, log *zap.Logger) *AuthorsController {
	return &AuthorsController{store: store, log: orNop(log)}
}

// GetAuthors returns all authors or the authors of one list
// GET /api/authors?list=Favorite%20Authors
func (ac *AuthorsController) GetAuthors(c *gin.Context) {
	var (
		authors []*entities.Author
		err     error
	)
	if list := c.Query("list"); list != "" {
		authors, err = ac.store.GetAuthorsForList(list)
	} else {
		authors, err = ac.store.GetAllAuthors()
	}
	if err != nil {
		respondStoreError(c, ac.log, err, "get authors")
		return
	}
	c.JSON(http.StatusOK, nonNil(authors))
}

// CreateAuthor stores a new author and its comments
// POST /api/authors
func (ac *AuthorsController) CreateAuthor(c *gin.Context) {
	var a entities.Author
	if err := c.ShouldBindJSON(&a); err != nil {
		respondBadRequest(c, "invalid author: "+err.Error())
		return
	}
	if a.Name == "" || a.ListName == "" {
		respondBadRequest(c, "name and list_name are required")
		return
	}
	a.Key = entities.NoKey
	stampNew(&a.LibraryItem)

	if err := ac.store.InsertAuthor(&a); err != nil {
		respondStoreError(c, ac.log, err, "create author")
		return
	}
	respondCreated(c, &a)
}

// GET /api/authors/:id
func (ac *AuthorsController) GetAuthor(c *gin.Context) {
	key, ok := parseKeyParam(c, "id")
	if !ok {
		return
	}
	a, err := ac.store.GetAuthor(key)
	if err != nil {
		respondStoreError(c, ac.log, err, "get author")
		return
	}
	c.JSON(http.StatusOK, a)
}

// UpdateAuthor replaces an author, reconciling comments like UpdateTitle.
// PUT /api/authors/:id
func (ac *AuthorsController) UpdateAuthor(c *gin.Context) {
	key, ok := parseKeyParam(c, "id")
	if !ok {
		return
	}
	var a entities.Author
	if err := c.ShouldBindJSON(&a); err != nil {
		respondBadRequest(c, "invalid author: "+err.Error())
		return
	}

	stored, err := ac.store.GetAuthor(key)
	if err != nil {
		respondStoreError(c, ac.log, err, "update author")
		return
	}
	a.Key = key
	stampUpdate(&a.LibraryItem, &stored.LibraryItem)

	if err := ac.store.UpdateAuthor(&a); err != nil {
		respondStoreError(c, ac.log, err, "update author")
		return
	}
	c.JSON(http.StatusOK, &a)
}

// DELETE /api/authors/:id
func (ac *AuthorsController) DeleteAuthor(c *gin.Context) {
	key, ok := parseKeyParam(c, "id")
	if !ok {
		return
	}
	if err := ac.store.DeleteAuthorByKey(key); err != nil {
		respondStoreError(c, ac.log, err, "delete author")
		return
	}
	respondSuccess(c, "author deleted")
}
