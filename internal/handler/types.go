package handler

import (
	"net/http"

	"Postbook/internal/pkg"

	"github.com/gin-gonic/gin"
)

type SignupReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreatePostReq struct {
	Content string `json:"content" binding:"required"`
}

type EditPostReq struct {
	Content string `json:"content" binding:"required"`
}

// VoteReq uses a pointer so `{"like": false}` binds as a dislike instead
// of a missing field.
type VoteReq struct {
	Like *bool `json:"like" binding:"required"`
}

// fail maps a business error to its status; unclassified errors are 500.
func fail(c *gin.Context, err error) {
	c.JSON(pkg.HTTPStatus(err), gin.H{"msg": err.Error()})
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
}
