package dto

type PhotographerDTO struct {
	Name        string `json:"name" binding:"required"`
	Username    string `json:"username" binding:"required"`
	ProfileLink string `json:"profileLink" binding:"required"`
}

type ReferenceImageDTO struct {
	UnsplashID   string          `json:"unsplashId" binding:"required"`
	URL          string          `json:"url" binding:"required"`
	ThumbURL     string          `json:"thumbUrl" binding:"required"`
	Description  string          `json:"description"`
	Photographer PhotographerDTO `json:"photographer" binding:"required"`
	PhotoLink    string          `json:"photoLink" binding:"required"`
}

type CreateQuotationDTO struct {
	Service        string `json:"service" binding:"required"`
	ProjectName    string `json:"projectName" binding:"required"`
	Description    string `json:"description" binding:"required"`
	Budget         string `json:"budget" binding:"required"`
	Deadline       string `json:"deadline" binding:"required"`
	AdditionalInfo string `json:"additionalInfo"`

	GuestName  string `json:"guestName"`
	GuestEmail string `json:"guestEmail"`
	GuestPhone string `json:"guestPhone"`

	ReferenceImages []ReferenceImageDTO `json:"referenceImages" binding:"max=5,dive"`
}

// UpdateQuotationDTO is a field-patch: nil means "leave alone".
type UpdateQuotationDTO struct {
	Status                 *string  `json:"status"`
	QuotedPrice            *float64 `json:"quotedPrice"`
	AdminNotes             *string  `json:"adminNotes"`
	RevisionFee            *float64 `json:"revisionFee"`
	RevisionRequest        *string  `json:"revisionRequest"`
	IncrementRevisionCount bool     `json:"incrementRevisionCount"`
}

type AddImagesDTO struct {
	Images []ReferenceImageDTO `json:"images" binding:"required,min=1,dive"`
}

type RemoveImagesDTO struct {
	UnsplashIDs []string `json:"unsplashIds" binding:"required,min=1"`
}
