package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/catalog/internal/entities"
)

type listRequest struct {
	ListType       entities.ListType `json:"list_type"`
	DialogTitle    string            `json:"dialog_title" binding:"required"`
	ComponentLabel string            `json:"component_label"`
}

type ListsController struct {
	store ListStore
	log   *zap.Logger
}

func NewListsController(store ListStore, log *zap.Logger) *ListsController {
	return &ListsController{store: store, log: orNop(log)}
}

// GetLists returns every list, or the lists of one type
// GET /api/lists?type=TITLE
func (lc *ListsController) GetLists(c *gin.Context) {
	var (
		lists []*entities.KCLSList
		err   error
	)
	if t := c.Query("type"); t != "" {
		listType := entities.ListType(t)
		if !listType.Valid() {
			respondBadRequest(c, "type must be TITLE or AUTHOR")
			return
		}
		lists, err = lc.store.GetListsOfType(listType)
	} else {
		lists, err = lc.store.GetAllLists()
	}
	if err != nil {
		respondStoreError(c, lc.log, err, "get lists")
		return
	}
	c.JSON(http.StatusOK, nonNil(lists))
}

// CreateList stores a new list
// POST /api/lists
func (lc *ListsController) CreateList(c *gin.Context) {
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "dialog_title is required")
		return
	}
	if !req.ListType.Valid() {
		respondBadRequest(c, "list_type must be TITLE or AUTHOR")
		return
	}

	l := entities.NewList(req.ListType, req.DialogTitle, req.ComponentLabel)
	if err := lc.store.InsertList(l); err != nil {
		respondStoreError(c, lc.log, err, "create list")
		return
	}
	respondCreated(c, l)
}

// GetList returns one list
// GET /api/lists/:id
func (lc *ListsController) GetList(c *gin.Context) {
	key, ok := parseKeyParam(c, "id")
	if !ok {
		return
	}
	l, err := lc.store.GetList(key)
	if err != nil {
		respondStoreError(c, lc.log, err, "get list")
		return
	}
	c.JSON(http.StatusOK, l)
}

// UpdateList renames or relabels a list. The type of a list never changes.
// PUT /api/lists/:id
func (lc *ListsController) UpdateList(c *gin.Context) {
	key, ok := parseKeyParam(c, "id")
	if !ok {
		return
	}
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "dialog_title is required")
		return
	}

	l, err := lc.store.GetList(key)
	if err != nil {
		respondStoreError(c, lc.log, err, "update list")
		return
	}
	l.DialogTitle = req.DialogTitle
	l.ComponentLabel = req.ComponentLabel
	l.ModifyDate = entities.Today()

	if err := lc.store.UpdateList(l); err != nil {
		respondStoreError(c, lc.log, err, "update list")
		return
	}
	c.JSON(http.StatusOK, l)
}

// DeleteList removes a list that has no titles or authors filed under it
// DELETE /api/lists/:id
func (lc *ListsController) DeleteList(c *gin.Context) {
	key, ok := parseKeyParam(c, "id")
	if !ok {
		return
	}
	if err := lc.store.DeleteListByKey(key); err != nil {
		respondStoreError(c, lc.log, err, "delete list")
		return
	}
	respondSuccess(c, "list deleted")
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// nonNil keeps empty collections encoding as [] instead of null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
