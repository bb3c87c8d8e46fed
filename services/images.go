package services

import (
	"fmt"
	"strings"

	"github.com/kdcreatives/kdcreatives-backend/models"
)

// Unsplash host prefixes. Image URLs must come from the Unsplash CDN and
// attribution links from unsplash.com, regardless of what the caller sent —
// the shape of the payload is never trusted on its own.
const (
	unsplashCDNPrefix     = "https://images.unsplash.com/"
	unsplashProfilePrefix = "https://unsplash.com/@"
	unsplashPhotoPrefix   = "https://unsplash.com/photos/"
)

const maxImageDescriptionLen = 500

func validateReferenceImage(idx int, img models.ReferenceImage) []FieldError {
	field := func(name string) string {
		return fmt.Sprintf("referenceImages[%d].%s", idx, name)
	}

	var errs []FieldError
	if strings.TrimSpace(img.UnsplashID) == "" {
		errs = append(errs, FieldError{field("unsplashId"), "Unsplash ID is required for each image"})
	}
	if !strings.HasPrefix(img.URL, unsplashCDNPrefix) {
		errs = append(errs, FieldError{field("url"), "Image URL must be from the Unsplash CDN (" + unsplashCDNPrefix + ")"})
	}
	if !strings.HasPrefix(img.ThumbURL, unsplashCDNPrefix) {
		errs = append(errs, FieldError{field("thumbUrl"), "Thumbnail URL must be from the Unsplash CDN"})
	}
	if len(img.Description) > maxImageDescriptionLen {
		errs = append(errs, FieldError{field("description"), "Description must be at most 500 characters"})
	}
	if n := len(strings.TrimSpace(img.Photographer.Name)); n < 2 || n > 100 {
		errs = append(errs, FieldError{field("photographer.name"), "Photographer name is required for legal attribution (2-100 characters)"})
	}
	if n := len(strings.TrimSpace(img.Photographer.Username)); n < 2 || n > 50 {
		errs = append(errs, FieldError{field("photographer.username"), "Photographer username is required (2-50 characters)"})
	}
	if !strings.HasPrefix(img.Photographer.ProfileLink, unsplashProfilePrefix) {
		errs = append(errs, FieldError{field("photographer.profileLink"), "Photographer profile link must be a valid Unsplash profile URL"})
	}
	if !strings.HasPrefix(img.PhotoLink, unsplashPhotoPrefix) {
		errs = append(errs, FieldError{field("photoLink"), "Photo link must be a valid Unsplash photo URL"})
	}
	return errs
}

// ValidateReferenceImages checks attribution and host constraints on every
// image and the overall cap. Returns *ValidationError listing each failing
// field, or nil.
func ValidateReferenceImages(images []models.ReferenceImage) error {
	var errs []FieldError
	if len(images) > models.MaxReferenceImages {
		errs = append(errs, FieldError{
			Field:   "referenceImages",
			Message: fmt.Sprintf("Maximum %d reference images allowed per quotation", models.MaxReferenceImages),
		})
	}
	for i, img := range images {
		errs = append(errs, validateReferenceImage(i, img)...)
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
