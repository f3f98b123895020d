package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/catalog/internal/entities"
)

type commentRequest struct {
	Text      string               `json:"text" binding:"required"`
	OwnerKey  entities.OptionalKey `json:"owner_key"`
	OwnerType entities.ListType    `json:"owner_type"`
}

type CommentsController struct {
	store CommentStore
	log   *zap.Logger
}

func NewCommentsController(store CommentStore, log *zap.Logger) *CommentsController {
	return &CommentsController{store: store, log: orNop(log)}
}

// CreateComment attaches a comment to a stored title or author
// POST /api/comments
func (cc *CommentsController) CreateComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "text is required")
		return
	}
	if !req.OwnerType.Valid() {
		respondBadRequest(c, "owner_type must be TITLE or AUTHOR")
		return
	}

	comment := &entities.Comment{Text: req.Text, OwnerKey: req.OwnerKey, OwnerType: req.OwnerType}
	if err := cc.store.InsertComment(comment); err != nil {
		respondStoreError(c, cc.log, err, "create comment")
		return
	}
	respondCreated(c, comment)
}

// GET /api/comments/:id
func (cc *CommentsController) GetComment(c *gin.Context) {
	key, ok := parseKeyParam(c, "id")
	if !ok {
		return
	}
	comment, err := cc.store.GetComment(key)
	if err != nil {
		respondStoreError(c, cc.log, err, "get comment")
		return
	}
	c.JSON(http.StatusOK, comment)
}

// UpdateComment changes the text of a comment. The owner stays.
// PUT /api/comments/:id
func (cc *CommentsController) UpdateComment(c *gin.Context) {
	key, ok := parseKeyParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "text is required")
		return
	}

	comment, err := cc.store.GetComment(key)
	if err != nil {
		respondStoreError(c, cc.log, err, "update comment")
		return
	}
	comment.Text = req.Text
	if err := cc.store.UpdateComment(comment); err != nil {
		respondStoreError(c, cc.log, err, "update comment")
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DELETE /api/comments/:id
func (cc *CommentsController) DeleteComment(c *gin.Context) {
	key, ok := parseKeyParam(c, "id")
	if !ok {
		return
	}
	if err := cc.store.DeleteComment(&entities.Comment{Key: key}); err != nil {
		respondStoreError(c, cc.log, err, "delete comment")
		return
	}
	respondSuccess(c, "comment deleted")
}
