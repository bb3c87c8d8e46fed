package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kdcreatives/kdcreatives-backend/database"
	"github.com/kdcreatives/kdcreatives-backend/dto"
	"github.com/kdcreatives/kdcreatives-backend/models"
	"github.com/kdcreatives/kdcreatives-backend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// GET /services — public storefront listing, active services only.
func GetServices() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		servicesCol := database.OpenCollection("services")

		filter := bson.M{"isActive": true}
		if category := c.Query("category"); category != "" {
			filter["category"] = category
		}

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := servicesCol.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		list := make([]models.Service, 0)
		for cursor.Next(ctx) {
			var svc models.Service
			if err := cursor.Decode(&svc); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			list = append(list, svc)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"count": len(list), "services": list})
	}
}

// GET /services/:id
func GetService() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		servicesCol := database.OpenCollection("services")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
			return
		}

		var svc models.Service
		if err := servicesCol.FindOne(ctx, bson.M{"_id": id}).Decode(&svc); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"service": svc})
	}
}

// POST /admin/services
func CreateService() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		servicesCol := database.OpenCollection("services")

		var body dto.CreateServiceDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		caller := currentPrincipal(c)
		now := time.Now().UTC()
		svc := models.Service{
			ID:          bson.NewObjectID(),
			Name:        body.Name,
			Slug:        utils.GenerateSlug(body.Name),
			Description: body.Description,
			Category:    body.Category,
			Price:       body.Price,
			Duration:    body.Duration,
			Features:    body.Features,
			Image:       body.Image,
			CreatedBy:   caller.UserID,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if _, err := servicesCol.InsertOne(ctx, svc); err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "a service with this name already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Service created successfully", "service": svc})
	}
}

// PATCH /admin/services/:id
func UpdateService() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		servicesCol := database.OpenCollection("services")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
			return
		}

		var body dto.UpdateServiceDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		set := bson.M{"updatedAt": time.Now().UTC()}
		if body.Name != nil {
			set["name"] = *body.Name
			set["slug"] = utils.GenerateSlug(*body.Name)
		}
		if body.Description != nil {
			set["description"] = *body.Description
		}
		if body.Category != nil {
			set["category"] = *body.Category
		}
		if body.Price != nil {
			if *body.Price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
				return
			}
			set["price"] = *body.Price
		}
		if body.Duration != nil {
			set["duration"] = *body.Duration
		}
		if body.Features != nil {
			set["features"] = *body.Features
		}
		if body.Image != nil {
			set["image"] = *body.Image
		}
		if body.IsActive != nil {
			set["isActive"] = *body.IsActive
		}

		res, err := servicesCol.UpdateByID(ctx, id, bson.M{"$set": set})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Service updated successfully"})
	}
}

// DELETE /admin/services/:id
func DeleteService() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		servicesCol := database.OpenCollection("services")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
			return
		}

		res, err := servicesCol.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
	}
}
