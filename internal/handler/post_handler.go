package handler

import (
	"net/http"

	"Postbook/internal/middleware"
	"Postbook/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc   *service.PostService
	votes *service.VoteService
}

func NewPostHandler(svc *service.PostService, votes *service.VoteService) *PostHandler {
	return &PostHandler{svc: svc, votes: votes}
}

func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) GetByID(c *gin.Context) {
	post, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Create(c *gin.Context) {
	claims := middleware.Claims(c)

	var req CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	post, err := h.svc.Create(c.Request.Context(), claims.UserID, req.Content)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": post.ID})
}

func (h *PostHandler) Edit(c *gin.Context) {
	claims := middleware.Claims(c)

	var req EditPostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	if err := h.svc.Edit(c.Request.Context(), claims.UserID, c.Param("id"), req.Content); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *PostHandler) Delete(c *gin.Context) {
	claims := middleware.Claims(c)

	if err := h.svc.Delete(c.Request.Context(), claims.UserID, claims.Role, c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

// Vote applies a like/dislike with toggle-off and flip semantics.
func (h *PostHandler) Vote(c *gin.Context) {
	claims := middleware.Claims(c)

	var req VoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	if err := h.votes.Apply(c.Request.Context(), claims.UserID, c.Param("id"), *req.Like); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
