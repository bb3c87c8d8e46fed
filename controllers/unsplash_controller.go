package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kdcreatives/kdcreatives-backend/services"
	"github.com/kdcreatives/kdcreatives-backend/utils"
)

// GET /unsplash/search?query=&page=&per_page=
func SearchUnsplash(svc *services.UnsplashService) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("query"))
		if len(query) < 3 || len(query) > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Search query must be between 3 and 100 characters"})
			return
		}
		page := utils.ParseIntDefault(c.Query("page"), 1)
		perPage := utils.ParseIntDefault(c.Query("per_page"), 10)

		result, err := svc.SearchPhotos(c.Request.Context(), query, page, perPage)
		if err != nil {
			respondUpstreamError(c, err, "Failed to search images")
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// GET /unsplash/random?count=&query=
func RandomUnsplash(svc *services.UnsplashService) gin.HandlerFunc {
	return func(c *gin.Context) {
		count := utils.ParseIntDefault(c.Query("count"), 5)
		query := strings.TrimSpace(c.Query("query"))

		result, err := svc.RandomPhotos(c.Request.Context(), count, query)
		if err != nil {
			respondUpstreamError(c, err, "Failed to fetch random images")
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func respondUpstreamError(c *gin.Context, err error, fallback string) {
	var ue *services.UpstreamError
	if errors.As(err, &ue) {
		if ue.Status == http.StatusTooManyRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Unsplash API rate limit exceeded. Please try again in an hour."})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": fallback})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}
