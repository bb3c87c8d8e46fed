package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/kdcreatives/kdcreatives-backend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var sampleServices = []models.Service{
	{
		Name:        "Professional Logo Design",
		Description: "Get a custom, professional logo that represents your brand perfectly. Includes 3 initial concepts, unlimited revisions, and final files in all formats (PNG, JPG, SVG, AI).",
		Category:    "Logo Design",
		Price:       3500,
		Duration:    "5-7 days",
		Features: []string{
			"3 initial logo concepts",
			"Unlimited revisions",
			"Final files in PNG, JPG, SVG, AI",
			"Color and black & white versions",
			"Brand style guide included",
			"Commercial usage rights",
		},
	},
	{
		Name:        "Complete Brand Identity Package",
		Description: "Comprehensive branding solution including logo, business cards, letterhead, email signature, and brand guidelines.",
		Category:    "Branding",
		Price:       12000,
		Duration:    "2-3 weeks",
		Features: []string{
			"Custom logo design",
			"Business card design",
			"Letterhead design",
			"Email signature template",
			"Brand style guide (colors, fonts, usage)",
			"Social media profile graphics",
			"All source files included",
		},
	},
	{
		Name:        "Social Media Graphics Pack",
		Description: "A month's worth of branded social media graphics sized for Facebook, Instagram and Twitter, ready to post.",
		Category:    "Social Media",
		Price:       5000,
		Duration:    "1 week",
		Features: []string{
			"12 branded post templates",
			"Cover and profile images",
			"Editable source files",
		},
	},
	{
		Name:        "Custom Illustration",
		Description: "Hand-crafted digital illustration for book covers, posters, packaging or personal commissions.",
		Category:    "Illustration",
		Price:       8000,
		Duration:    "1-2 weeks",
		Features: []string{
			"2 concept sketches",
			"3 revision rounds",
			"High-resolution print and web files",
		},
	},
}

// SeedServices upserts the starter catalog by slug so reboots never
// duplicate entries.
func SeedServices(ctx context.Context, servicesCol *mongo.Collection) error {
	now := time.Now().UTC()
	seeded := 0

	for _, svc := range sampleServices {
		slug := GenerateSlug(svc.Name)
		update := bson.M{
			"$setOnInsert": bson.M{
				"name":        svc.Name,
				"slug":        slug,
				"description": svc.Description,
				"category":    svc.Category,
				"price":       svc.Price,
				"duration":    svc.Duration,
				"features":    svc.Features,
				"isActive":    true,
				"createdAt":   now,
				"updatedAt":   now,
			},
		}
		opts := options.UpdateOne().SetUpsert(true)
		res, err := servicesCol.UpdateOne(ctx, bson.M{"slug": slug}, update, opts)
		if err != nil {
			return fmt.Errorf("seed service %q: %w", svc.Name, err)
		}
		if res.UpsertedCount == 1 {
			seeded++
		}
	}

	if seeded > 0 {
		fmt.Printf("Seeded %d catalog services\n", seeded)
	}
	return nil
}
