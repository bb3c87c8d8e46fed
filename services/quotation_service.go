package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/kdcreatives/kdcreatives-backend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Principal is the authenticated caller, resolved by the auth middleware.
// A nil *Principal means the call is from a guest.
type Principal struct {
	UserID bson.ObjectID
	Email  string
	Role   models.Role
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == models.RoleAdmin
}

// QuotationStore persists quotation documents. The underlying store is
// expected to serialize writes per document; no locking happens here.
type QuotationStore interface {
	Insert(ctx context.Context, q *models.QuotationRequest) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.QuotationRequest, error)
	FindByClient(ctx context.Context, clientID bson.ObjectID) ([]models.QuotationRequest, error)
	FindAll(ctx context.Context) ([]models.QuotationRequest, error)
	Replace(ctx context.Context, q *models.QuotationRequest) error
	Delete(ctx context.Context, id bson.ObjectID) error
}

// Catalog resolves a service id to its immutable catalog entry.
type Catalog interface {
	Resolve(ctx context.Context, id bson.ObjectID) (*models.Service, error)
}

// Notifier is the best-effort side channel invoked after a status change.
// Failures are logged and never surfaced to the caller.
type Notifier interface {
	Notify(ctx context.Context, q *models.QuotationRequest) error
}

type QuotationService struct {
	store    QuotationStore
	catalog  Catalog
	notifier Notifier

	policy        models.TransitionPolicy
	notifyTimeout time.Duration
	now           func() time.Time
}

func NewQuotationService(store QuotationStore, catalog Catalog, notifier Notifier) *QuotationService {
	return &QuotationService{
		store:         store,
		catalog:       catalog,
		notifier:      notifier,
		policy:        models.PermissiveTransitionPolicy(),
		notifyTimeout: 15 * time.Second,
		now:           time.Now,
	}
}

// SetTransitionPolicy replaces the admin transition table.
func (s *QuotationService) SetTransitionPolicy(p models.TransitionPolicy) {
	s.policy = p
}

type CreateQuotationInput struct {
	ServiceID      bson.ObjectID
	ProjectName    string
	Description    string
	Budget         string
	Deadline       time.Time
	AdditionalInfo string

	GuestName  string
	GuestEmail string
	GuestPhone string

	ReferenceImages []models.ReferenceImage
}

func (s *QuotationService) Create(ctx context.Context, caller *Principal, in CreateQuotationInput) (*models.QuotationRequest, error) {
	var errs []FieldError
	if strings.TrimSpace(in.ProjectName) == "" {
		errs = append(errs, FieldError{"projectName", "Project name is required"})
	}
	if strings.TrimSpace(in.Description) == "" {
		errs = append(errs, FieldError{"description", "Description is required"})
	}
	if strings.TrimSpace(in.Budget) == "" {
		errs = append(errs, FieldError{"budget", "Budget is required"})
	}
	now := s.now().UTC()
	if in.Deadline.IsZero() {
		errs = append(errs, FieldError{"deadline", "Deadline is required"})
	} else if in.Deadline.Before(now.Truncate(24 * time.Hour)) {
		errs = append(errs, FieldError{"deadline", "Deadline cannot be in the past"})
	}
	if caller == nil {
		if strings.TrimSpace(in.GuestName) == "" || strings.TrimSpace(in.GuestEmail) == "" {
			errs = append(errs, FieldError{"guest", "Guest users must provide name and email"})
		}
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	if err := ValidateReferenceImages(in.ReferenceImages); err != nil {
		return nil, err
	}

	if _, err := s.catalog.Resolve(ctx, in.ServiceID); err != nil {
		return nil, err
	}

	var requester models.Requester
	if caller != nil {
		requester = models.ClientRequester(caller.UserID)
	} else {
		requester = models.GuestRequester(
			strings.TrimSpace(in.GuestName),
			strings.TrimSpace(in.GuestEmail),
			strings.TrimSpace(in.GuestPhone),
		)
	}

	images := make([]models.ReferenceImage, 0, len(in.ReferenceImages))
	for _, img := range in.ReferenceImages {
		img.AddedAt = now
		images = append(images, img)
	}

	q := &models.QuotationRequest{
		ID:              bson.NewObjectID(),
		Requester:       requester,
		ServiceID:       in.ServiceID,
		ProjectName:     strings.TrimSpace(in.ProjectName),
		Description:     in.Description,
		Budget:          in.Budget,
		Deadline:        in.Deadline,
		AdditionalInfo:  in.AdditionalInfo,
		Status:          models.QuotationStatusPending,
		ReferenceImages: images,
		DateRequested:   now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Insert(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// ListMine returns the caller's own quotations, newest first.
func (s *QuotationService) ListMine(ctx context.Context, caller *Principal) ([]models.QuotationRequest, error) {
	if caller == nil {
		return nil, &ForbiddenError{Reason: "authentication required"}
	}
	return s.store.FindByClient(ctx, caller.UserID)
}

func (s *QuotationService) GetByID(ctx context.Context, caller *Principal, id bson.ObjectID) (*models.QuotationRequest, error) {
	q, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canView(caller, q) {
		return nil, &ForbiddenError{Reason: "not authorized to view this quotation"}
	}
	return q, nil
}

func (s *QuotationService) canView(caller *Principal, q *models.QuotationRequest) bool {
	if caller.IsAdmin() {
		return true
	}
	return caller != nil && q.Requester.OwnedBy(caller.UserID)
}

func (s *QuotationService) ListAll(ctx context.Context, caller *Principal) ([]models.QuotationRequest, error) {
	if !caller.IsAdmin() {
		return nil, &ForbiddenError{Reason: "admin access required"}
	}
	return s.store.FindAll(ctx)
}

// StatusPatch is the partial update applied by UpdateStatus. Nil pointers
// leave the corresponding field untouched. IncrementRevision bumps
// RevisionCount by exactly one.
type StatusPatch struct {
	Status            *models.QuotationStatus
	QuotedPrice       *float64
	AdminNotes        *string
	RevisionFee       *float64
	RevisionRequest   *string
	IncrementRevision bool
}

// UpdateStatus applies a role-gated patch to one quotation.
//
// Clients may only set status=revision_requested with a non-empty revision
// request on their own record. Admins may patch any subset of the admin
// fields; setting any status other than pending stamps DateResponded.
func (s *QuotationService) UpdateStatus(ctx context.Context, caller *Principal, id bson.ObjectID, patch StatusPatch) (*models.QuotationRequest, error) {
	if caller == nil {
		return nil, &ForbiddenError{Reason: "authentication required"}
	}

	q, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if caller.IsAdmin() {
		if err := s.applyAdminPatch(q, patch, now); err != nil {
			return nil, err
		}
	} else {
		if err := s.applyClientPatch(caller, q, patch); err != nil {
			return nil, err
		}
	}

	q.UpdatedAt = now
	if err := s.store.Replace(ctx, q); err != nil {
		return nil, err
	}

	s.dispatchNotification(q)
	return q, nil
}

func (s *QuotationService) applyClientPatch(caller *Principal, q *models.QuotationRequest, patch StatusPatch) error {
	if !q.Requester.OwnedBy(caller.UserID) {
		return &ForbiddenError{Reason: "not authorized to update this quotation"}
	}
	onlyRevisionFields := patch.QuotedPrice == nil &&
		patch.AdminNotes == nil &&
		patch.RevisionFee == nil &&
		!patch.IncrementRevision
	if !onlyRevisionFields ||
		patch.Status == nil || *patch.Status != models.QuotationStatusRevisionRequested ||
		patch.RevisionRequest == nil || strings.TrimSpace(*patch.RevisionRequest) == "" {
		return &ForbiddenError{Reason: "clients can only request revisions"}
	}

	q.Status = models.QuotationStatusRevisionRequested
	q.RevisionRequest = *patch.RevisionRequest
	return nil
}

func (s *QuotationService) applyAdminPatch(q *models.QuotationRequest, patch StatusPatch, now time.Time) error {
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return newValidationError("status", "unknown status value")
		}
		if !s.policy.Allows(q.Status, *patch.Status) {
			return newValidationError("status", string(q.Status)+" may not transition to "+string(*patch.Status))
		}
	}
	if patch.QuotedPrice != nil && *patch.QuotedPrice < 0 {
		return newValidationError("quotedPrice", "quoted price must be non-negative")
	}
	if patch.RevisionFee != nil && *patch.RevisionFee < 0 {
		return newValidationError("revisionFee", "revision fee must be non-negative")
	}

	if patch.Status != nil {
		q.Status = *patch.Status
		if *patch.Status != models.QuotationStatusPending {
			responded := now
			q.DateResponded = &responded
		}
	}
	if patch.QuotedPrice != nil {
		q.QuotedPrice = *patch.QuotedPrice
	}
	if patch.AdminNotes != nil {
		q.AdminNotes = *patch.AdminNotes
	}
	if patch.RevisionFee != nil {
		q.RevisionFee = *patch.RevisionFee
	}
	if patch.RevisionRequest != nil {
		q.RevisionRequest = *patch.RevisionRequest
	}
	if patch.IncrementRevision {
		q.RevisionCount++
	}
	return nil
}

// dispatchNotification fires the notifier on its own goroutine with a
// bounded deadline. The state write has already committed; a notification
// failure must not undo or delay it.
func (s *QuotationService) dispatchNotification(q *models.QuotationRequest) {
	if s.notifier == nil {
		return
	}
	snapshot := *q
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()
		if err := s.notifier.Notify(ctx, &snapshot); err != nil {
			log.Printf("quotation %s: notification failed: %v", snapshot.ID.Hex(), err)
		}
	}()
}

func (s *QuotationService) Delete(ctx context.Context, caller *Principal, id bson.ObjectID) error {
	if !caller.IsAdmin() {
		return &ForbiddenError{Reason: "admin access required"}
	}
	return s.store.Delete(ctx, id)
}

// AddImages appends validated reference images. Exceeding the cap is a
// conflict and leaves the stored set unchanged.
func (s *QuotationService) AddImages(ctx context.Context, caller *Principal, id bson.ObjectID, images []models.ReferenceImage) (*models.QuotationRequest, error) {
	q, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canMutateImages(caller, q) {
		return nil, &ForbiddenError{Reason: "not authorized to modify this quotation's images"}
	}
	if len(images) == 0 {
		return nil, newValidationError("images", "at least one image is required")
	}

	var errs []FieldError
	for i, img := range images {
		errs = append(errs, validateReferenceImage(i, img)...)
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	if len(q.ReferenceImages)+len(images) > models.MaxReferenceImages {
		return nil, &ConflictError{Reason: "maximum 5 reference images allowed per quotation"}
	}

	now := s.now().UTC()
	for _, img := range images {
		img.AddedAt = now
		q.ReferenceImages = append(q.ReferenceImages, img)
	}
	q.UpdatedAt = now
	if err := s.store.Replace(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// RemoveImages drops images whose Unsplash id matches. Unknown ids are a
// no-op, not an error.
func (s *QuotationService) RemoveImages(ctx context.Context, caller *Principal, id bson.ObjectID, unsplashIDs []string) (*models.QuotationRequest, error) {
	q, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canMutateImages(caller, q) {
		return nil, &ForbiddenError{Reason: "not authorized to modify this quotation's images"}
	}

	remove := make(map[string]struct{}, len(unsplashIDs))
	for _, id := range unsplashIDs {
		remove[id] = struct{}{}
	}
	kept := q.ReferenceImages[:0]
	for _, img := range q.ReferenceImages {
		if _, drop := remove[img.UnsplashID]; !drop {
			kept = append(kept, img)
		}
	}
	q.ReferenceImages = kept
	q.UpdatedAt = s.now().UTC()
	if err := s.store.Replace(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuotationService) canMutateImages(caller *Principal, q *models.QuotationRequest) bool {
	if caller.IsAdmin() {
		return true
	}
	return caller != nil && q.Requester.OwnedBy(caller.UserID)
}
