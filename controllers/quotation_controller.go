package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kdcreatives/kdcreatives-backend/dto"
	"github.com/kdcreatives/kdcreatives-backend/models"
	"github.com/kdcreatives/kdcreatives-backend/services"
	"github.com/kdcreatives/kdcreatives-backend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func imagesFromDTO(in []dto.ReferenceImageDTO) []models.ReferenceImage {
	images := make([]models.ReferenceImage, 0, len(in))
	for _, img := range in {
		images = append(images, models.ReferenceImage{
			UnsplashID:  img.UnsplashID,
			URL:         img.URL,
			ThumbURL:    img.ThumbURL,
			Description: img.Description,
			Photographer: models.Photographer{
				Name:        img.Photographer.Name,
				Username:    img.Photographer.Username,
				ProfileLink: img.Photographer.ProfileLink,
			},
			PhotoLink: img.PhotoLink,
		})
	}
	return images
}

// POST /quotations (public; guests submit contact info, clients a token)
func CreateQuotation(svc *services.QuotationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateQuotationDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		serviceID, err := bson.ObjectIDFromHex(body.Service)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
			return
		}
		deadline, err := utils.ParseDate(body.Deadline)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deadline date"})
			return
		}

		quotation, err := svc.Create(c.Request.Context(), currentPrincipal(c), services.CreateQuotationInput{
			ServiceID:       serviceID,
			ProjectName:     body.ProjectName,
			Description:     body.Description,
			Budget:          body.Budget,
			Deadline:        deadline,
			AdditionalInfo:  body.AdditionalInfo,
			GuestName:       body.GuestName,
			GuestEmail:      body.GuestEmail,
			GuestPhone:      body.GuestPhone,
			ReferenceImages: imagesFromDTO(body.ReferenceImages),
		})
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":   "Quotation request submitted successfully",
			"quotation": quotation,
		})
	}
}

// GET /quotations/my-quotations
func GetMyQuotations(svc *services.QuotationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		quotations, err := svc.ListMine(c.Request.Context(), currentPrincipal(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(quotations), "quotations": quotations})
	}
}

// GET /quotations/:id
func GetQuotation(svc *services.QuotationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quotation id"})
			return
		}
		quotation, err := svc.GetByID(c.Request.Context(), currentPrincipal(c), id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"quotation": quotation})
	}
}

// GET /admin/quotations
func GetAllQuotations(svc *services.QuotationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		quotations, err := svc.ListAll(c.Request.Context(), currentPrincipal(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(quotations), "quotations": quotations})
	}
}

// PUT /quotations/:id — admins patch freely, clients may only request a
// revision on their own record. Role gating lives in the service.
func UpdateQuotation(svc *services.QuotationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quotation id"})
			return
		}

		var body dto.UpdateQuotationDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		patch := services.StatusPatch{
			QuotedPrice:       body.QuotedPrice,
			AdminNotes:        body.AdminNotes,
			RevisionFee:       body.RevisionFee,
			RevisionRequest:   body.RevisionRequest,
			IncrementRevision: body.IncrementRevisionCount,
		}
		if body.Status != nil {
			status := models.QuotationStatus(*body.Status)
			patch.Status = &status
		}

		quotation, err := svc.UpdateStatus(c.Request.Context(), currentPrincipal(c), id, patch)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":   "Quotation updated successfully",
			"quotation": quotation,
		})
	}
}

// DELETE /admin/quotations/:id
func DeleteQuotation(svc *services.QuotationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quotation id"})
			return
		}
		if err := svc.Delete(c.Request.Context(), currentPrincipal(c), id); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Quotation deleted successfully"})
	}
}

// POST /quotations/:id/images
func AddQuotationImages(svc *services.QuotationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quotation id"})
			return
		}
		var body dto.AddImagesDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		quotation, err := svc.AddImages(c.Request.Context(), currentPrincipal(c), id, imagesFromDTO(body.Images))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"quotation": quotation})
	}
}

// DELETE /quotations/:id/images
func RemoveQuotationImages(svc *services.QuotationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quotation id"})
			return
		}
		var body dto.RemoveImagesDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		quotation, err := svc.RemoveImages(c.Request.Context(), currentPrincipal(c), id, body.UnsplashIDs)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"quotation": quotation})
	}
}
