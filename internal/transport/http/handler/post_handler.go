package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"artshare/internal/domain"
	"artshare/internal/service"
	"artshare/internal/storage"
)

type PostHandler struct {
	posts *service.PostService
	store *storage.Local
	log   *zap.Logger
}

func NewPostHandler(posts *service.PostService, store *storage.Local, l *zap.Logger) *PostHandler {
	return &PostHandler{posts: posts, store: store, log: l}
}

// POST /posts (multipart: title, description?, authorId, image? | image_url?)
func (h *PostHandler) Create(c *gin.Context) {
	in := service.CreatePostInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		AuthorID:    parseUint(c.PostForm("authorId")),
	}

	if fh, err := c.FormFile("image"); err == nil {
		ref, err := h.store.Save(fh)
		if err != nil {
			// the whole create fails; no post without its image
			fail(c, h.log, err)
			return
		}
		in.ImageURL = &ref
	} else if v := c.PostForm("image_url"); v != "" {
		// pre-uploaded reference supplied directly
		in.ImageURL = &v
	}

	view, err := h.posts.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GET /posts?search=&authorId=
func (h *PostHandler) List(c *gin.Context) {
	author := c.Query("authorId")
	if author == "" {
		author = c.Query("author_id")
	}
	views, err := h.posts.List(c.Request.Context(), domain.PostFilter{
		Search:   c.Query("search"),
		AuthorID: parseUint(author),
	})
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GET /posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	view, err := h.posts.Get(c.Request.Context(), parseUint(c.Param("id")))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DELETE /posts/:id — requester id from ?userId= or the JSON body.
func (h *PostHandler) Delete(c *gin.Context) {
	requester := parseUint(c.Query("userId"))
	if requester == 0 {
		var in struct {
			UserID uint `json:"userId"`
		}
		if err := c.ShouldBindJSON(&in); err == nil {
			requester = in.UserID
		}
	}
	if err := h.posts.Delete(c.Request.Context(), parseUint(c.Param("id")), requester); err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}
