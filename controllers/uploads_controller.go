package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kdcreatives/kdcreatives-backend/database"
	"github.com/kdcreatives/kdcreatives-backend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// POST /uploads/profile — stores the caller's profile picture in R2.
func UploadProfilePicture(v *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := currentPrincipal(c)
		if caller == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		fh, err := c.FormFile("profilePicture")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please upload an image file"})
			return
		}
		if _, err := v.ValidateFile(fh); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		r2, err := utils.NewR2Client(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to init storage client"})
			return
		}

		url, err := r2.UploadImage(ctx, "profiles/"+caller.UserID.Hex(), fh)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "upload failed", "details": err.Error()})
			return
		}

		usersCol := database.OpenCollection("users")
		_, err = usersCol.UpdateByID(ctx, caller.UserID, bson.M{
			"$set": bson.M{
				"profilePicture": url,
				"updatedAt":      time.Now().UTC(),
			},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":        "Profile picture uploaded successfully",
			"profilePicture": url,
		})
	}
}

// POST /admin/uploads/services/:id — attaches a storefront image to a
// catalog service.
func UploadServiceImage(v *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
			return
		}

		fh, err := c.FormFile("serviceImage")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please upload an image file"})
			return
		}
		if _, err := v.ValidateFile(fh); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		r2, err := utils.NewR2Client(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to init storage client"})
			return
		}

		url, err := r2.UploadImage(ctx, "services/"+id.Hex(), fh)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "upload failed", "details": err.Error()})
			return
		}

		servicesCol := database.OpenCollection("services")
		res, err := servicesCol.UpdateByID(ctx, id, bson.M{
			"$set": bson.M{
				"image":     url,
				"updatedAt": time.Now().UTC(),
			},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			// best effort cleanup of the orphaned object
			if obj, oerr := r2.ObjectNameFromPublicURL(url); oerr == nil {
				_ = r2.DeleteObjects(ctx, []string{obj})
			}
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Service image uploaded successfully",
			"image":   url,
		})
	}
}
