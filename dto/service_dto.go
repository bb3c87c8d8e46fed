package dto

type CreateServiceDTO struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Duration    string   `json:"duration" binding:"required"`
	Features    []string `json:"features"`
	Image       string   `json:"image"`
}

type UpdateServiceDTO struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Price       *float64  `json:"price"`
	Duration    *string   `json:"duration"`
	Features    *[]string `json:"features"`
	Image       *string   `json:"image"`
	IsActive    *bool     `json:"isActive"`
}
