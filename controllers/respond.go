package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kdcreatives/kdcreatives-backend/models"
	"github.com/kdcreatives/kdcreatives-backend/services"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// currentPrincipal reads the auth context set by the middleware. Nil means
// the request is unauthenticated (guest).
func currentPrincipal(c *gin.Context) *services.Principal {
	idStr, ok := c.Get("userID")
	if !ok {
		return nil
	}
	id, err := bson.ObjectIDFromHex(idStr.(string))
	if err != nil {
		return nil
	}
	email, _ := c.Get("email")
	role, _ := c.Get("role")
	return &services.Principal{
		UserID: id,
		Email:  email.(string),
		Role:   models.Role(role.(string)),
	}
}

// respondServiceError maps the core error taxonomy onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "fields": ve.Fields})
		return
	}
	var nf *services.NotFoundError
	if errors.As(err, &nf) {
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
		return
	}
	var fe *services.ForbiddenError
	if errors.As(err, &fe) {
		c.JSON(http.StatusForbidden, gin.H{"error": fe.Error()})
		return
	}
	var ce *services.ConflictError
	if errors.As(err, &ce) {
		c.JSON(http.StatusConflict, gin.H{"error": ce.Error()})
		return
	}
	log.Println("internal error:", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
