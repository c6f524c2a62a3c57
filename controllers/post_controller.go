package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/soraien/raidhall/hub"
	"github.com/soraien/raidhall/models"
	"github.com/soraien/raidhall/utils"
)

// PostController manages posts and comments. Comment creation additionally
// fans a NEW_COMMENT event out through the hub.
type PostController struct {
	db  *gorm.DB
	hub *hub.Hub
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB, h *hub.Hub) *PostController {
	return &PostController{db: db, hub: h}
}

// ListPosts returns all posts, newest first.
func (p *PostController) ListPosts(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes("cache:posts:list"); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var posts []models.Post
	if err := p.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to list posts")
		return
	}

	utils.CacheSetJSON("cache:posts:list", posts, 0)
	ctx.JSON(http.StatusOK, posts)
}

// CreatePost inserts a post and returns its id.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required,min=1"`
		Content     string `json:"content" binding:"required"`
		Category    string `json:"category" binding:"required"`
		SubCategory string `json:"sub_category"`
		Author      string `json:"author"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "title cannot be empty")
		return
	}

	post := models.Post{
		Title:       title,
		Content:     utils.Sanitize(req.Content),
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Author:      defaultAuthor(req.Author),
	}
	if err := p.db.Create(&post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to create post")
		return
	}

	utils.InvalidateByPrefix("cache:posts:")
	ctx.JSON(http.StatusOK, gin.H{"id": post.ID})
}

// DeletePost removes a post; the database cascade removes its comments.
func (p *PostController) DeletePost(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid post id")
		return
	}
	if err := p.db.Delete(&models.Post{}, id).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to delete post")
		return
	}
	utils.InvalidateByPrefix("cache:posts:")
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// ListComments returns a post's comments, oldest first.
func (p *PostController) ListComments(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40023, "invalid post id")
		return
	}
	var comments []models.Comment
	if err := p.db.Where("post_id = ?", id).Order("created_at ASC").Find(&comments).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to list comments")
		return
	}
	ctx.JSON(http.StatusOK, comments)
}

// CreateComment inserts a comment and then broadcasts NEW_COMMENT to every
// connected client. The insert commits first; a missing parent at
// broadcast time (post deleted in between) just skips the broadcast, and
// hub delivery failures never fail the request.
func (p *PostController) CreateComment(ctx *gin.Context) {
	postID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid post id")
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
		Author  string `json:"author"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40025, "invalid request payload")
		return
	}

	content := utils.Sanitize(req.Content)
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40026, "content cannot be empty")
		return
	}

	comment := models.Comment{
		PostID:  uint(postID),
		Content: content,
		Author:  defaultAuthor(req.Author),
	}
	// No existence pre-check: the FK constraint rejects orphan comments.
	if err := p.db.Create(&comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to create comment")
		return
	}

	var post models.Post
	if err := p.db.First(&post, comment.PostID).Error; err == nil {
		p.hub.BroadcastEvent(hub.NewComment(post.ID, post.Title, comment.Author, comment.Content))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Sugar.Warnf("post lookup for broadcast failed: %v", err)
	}

	ctx.JSON(http.StatusOK, gin.H{"id": comment.ID})
}

func defaultAuthor(author string) string {
	author = strings.TrimSpace(author)
	if author == "" {
		return "anonymous"
	}
	return author
}
