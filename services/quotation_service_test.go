package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/kdcreatives/kdcreatives-backend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type memStore struct {
	mu   sync.Mutex
	docs map[bson.ObjectID]models.QuotationRequest
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[bson.ObjectID]models.QuotationRequest)}
}

func (s *memStore) Insert(_ context.Context, q *models.QuotationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[q.ID] = *q
	return nil
}

func (s *memStore) FindByID(_ context.Context, id bson.ObjectID) (*models.QuotationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.docs[id]
	if !ok {
		return nil, &NotFoundError{Resource: "quotation"}
	}
	doc := q
	return &doc, nil
}

func (s *memStore) FindByClient(_ context.Context, clientID bson.ObjectID) ([]models.QuotationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.QuotationRequest, 0)
	for _, q := range s.docs {
		if q.Requester.OwnedBy(clientID) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateRequested.After(out[j].DateRequested) })
	return out, nil
}

func (s *memStore) FindAll(_ context.Context) ([]models.QuotationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.QuotationRequest, 0, len(s.docs))
	for _, q := range s.docs {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateRequested.After(out[j].DateRequested) })
	return out, nil
}

func (s *memStore) Replace(_ context.Context, q *models.QuotationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[q.ID]; !ok {
		return &NotFoundError{Resource: "quotation"}
	}
	s.docs[q.ID] = *q
	return nil
}

func (s *memStore) Delete(_ context.Context, id bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return &NotFoundError{Resource: "quotation"}
	}
	delete(s.docs, id)
	return nil
}

type memCatalog struct {
	services map[bson.ObjectID]models.Service
}

func (c *memCatalog) Resolve(_ context.Context, id bson.ObjectID) (*models.Service, error) {
	svc, ok := c.services[id]
	if !ok {
		return nil, &NotFoundError{Resource: "service"}
	}
	return &svc, nil
}

type recordingNotifier struct {
	calls chan models.QuotationRequest
}

func (n *recordingNotifier) Notify(_ context.Context, q *models.QuotationRequest) error {
	n.calls <- *q
	return nil
}

func testImage(id string) models.ReferenceImage {
	return models.ReferenceImage{
		UnsplashID:  id,
		URL:         "https://images.unsplash.com/photo-" + id,
		ThumbURL:    "https://images.unsplash.com/photo-" + id + "-thumb",
		Description: "moody blue interior",
		Photographer: models.Photographer{
			Name:        "Jane Cruz",
			Username:    "janecruz",
			ProfileLink: "https://unsplash.com/@janecruz",
		},
		PhotoLink: "https://unsplash.com/photos/" + id,
	}
}

type fixture struct {
	svc       *QuotationService
	store     *memStore
	notifier  *recordingNotifier
	serviceID bson.ObjectID
	admin     *Principal
	client    *Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	serviceID := bson.NewObjectID()
	store := newMemStore()
	notifier := &recordingNotifier{calls: make(chan models.QuotationRequest, 8)}
	catalog := &memCatalog{services: map[bson.ObjectID]models.Service{
		serviceID: {ID: serviceID, Name: "Professional Logo Design", Category: "Logo Design", Price: 3500},
	}}
	return &fixture{
		svc:       NewQuotationService(store, catalog, notifier),
		store:     store,
		notifier:  notifier,
		serviceID: serviceID,
		admin:     &Principal{UserID: bson.NewObjectID(), Email: "admin@kdcreatives.ph", Role: models.RoleAdmin},
		client:    &Principal{UserID: bson.NewObjectID(), Email: "client@example.com", Role: models.RoleClient},
	}
}

func (f *fixture) validInput() CreateQuotationInput {
	return CreateQuotationInput{
		ServiceID:   f.serviceID,
		ProjectName: "Coffee shop rebrand",
		Description: "Full rebrand of a small coffee shop",
		Budget:      "₱5,000 - ₱10,000",
		Deadline:    time.Now().Add(48 * time.Hour),
	}
}

func TestCreateQuotation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("client submission", func(t *testing.T) {
		q, err := f.svc.Create(ctx, f.client, f.validInput())
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if q.Status != models.QuotationStatusPending {
			t.Errorf("status = %q, want pending", q.Status)
		}
		if q.RevisionCount != 0 {
			t.Errorf("revisionCount = %d, want 0", q.RevisionCount)
		}
		if q.DateResponded != nil {
			t.Errorf("dateResponded = %v, want nil at creation", q.DateResponded)
		}
		if !q.Requester.OwnedBy(f.client.UserID) {
			t.Error("quotation not owned by submitting client")
		}
	})

	t.Run("guest submission", func(t *testing.T) {
		in := f.validInput()
		in.GuestName = "Gina"
		in.GuestEmail = "g@x.com"
		q, err := f.svc.Create(ctx, nil, in)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if !q.Requester.IsGuest() {
			t.Fatal("requester should be a guest")
		}
		if q.Requester.Guest.Email != "g@x.com" {
			t.Errorf("guest email = %q", q.Requester.Guest.Email)
		}
	})

	t.Run("guest without contact info", func(t *testing.T) {
		_, err := f.svc.Create(ctx, nil, f.validInput())
		var ve *ValidationError
		if !asValidation(err, &ve) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		in := f.validInput()
		in.ProjectName = ""
		in.Budget = ""
		var ve *ValidationError
		if _, err := f.svc.Create(ctx, f.client, in); !asValidation(err, &ve) {
			t.Fatalf("err = %v, want ValidationError", err)
		} else if len(ve.Fields) != 2 {
			t.Errorf("got %d field errors, want 2: %v", len(ve.Fields), ve.Fields)
		}
	})

	t.Run("past deadline", func(t *testing.T) {
		in := f.validInput()
		in.Deadline = time.Now().Add(-48 * time.Hour)
		var ve *ValidationError
		if _, err := f.svc.Create(ctx, f.client, in); !asValidation(err, &ve) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})

	t.Run("unknown service", func(t *testing.T) {
		in := f.validInput()
		in.ServiceID = bson.NewObjectID()
		var nf *NotFoundError
		if _, err := f.svc.Create(ctx, f.client, in); !asNotFound(err, &nf) {
			t.Fatalf("err = %v, want NotFoundError", err)
		}
	})

	t.Run("six images rejected", func(t *testing.T) {
		in := f.validInput()
		for i := 0; i < 6; i++ {
			in.ReferenceImages = append(in.ReferenceImages, testImage(string(rune('a'+i))))
		}
		var ve *ValidationError
		if _, err := f.svc.Create(ctx, f.client, in); !asValidation(err, &ve) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})

	t.Run("bad attribution rejected", func(t *testing.T) {
		img := testImage("abc")
		img.Photographer.Name = ""
		in := f.validInput()
		in.ReferenceImages = []models.ReferenceImage{img}
		var ve *ValidationError
		if _, err := f.svc.Create(ctx, f.client, in); !asValidation(err, &ve) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})
}

func TestCreateRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.validInput()
	in.Budget = "₱5,000 - ₱10,000"
	in.Deadline = time.Now().Add(24 * time.Hour)
	in.ReferenceImages = []models.ReferenceImage{testImage("first"), testImage("second")}

	created, err := f.svc.Create(ctx, f.client, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := f.svc.GetByID(ctx, f.client, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ProjectName != in.ProjectName {
		t.Errorf("projectName = %q, want %q", got.ProjectName, in.ProjectName)
	}
	if got.Budget != "₱5,000 - ₱10,000" {
		t.Errorf("budget = %q", got.Budget)
	}
	if len(got.ReferenceImages) != 2 {
		t.Fatalf("got %d images, want 2", len(got.ReferenceImages))
	}
	if got.ReferenceImages[0].UnsplashID != "first" || got.ReferenceImages[1].UnsplashID != "second" {
		t.Errorf("image order not preserved: %q, %q",
			got.ReferenceImages[0].UnsplashID, got.ReferenceImages[1].UnsplashID)
	}
}

func TestGetByIDAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.validInput()
	in.GuestName = "Gina"
	in.GuestEmail = "g@x.com"
	guestQ, err := f.svc.Create(ctx, nil, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	clientQ, err := f.svc.Create(ctx, f.client, f.validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	tests := []struct {
		name      string
		caller    *Principal
		id        bson.ObjectID
		forbidden bool
	}{
		{"admin reads guest record", f.admin, guestQ.ID, false},
		{"other client reads guest record", &Principal{UserID: bson.NewObjectID(), Role: models.RoleClient}, guestQ.ID, true},
		{"owner reads own record", f.client, clientQ.ID, false},
		{"other client reads client record", &Principal{UserID: bson.NewObjectID(), Role: models.RoleClient}, clientQ.ID, true},
		{"unauthenticated", nil, clientQ.ID, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.GetByID(ctx, tt.caller, tt.id)
			var fe *ForbiddenError
			if tt.forbidden && !asForbidden(err, &fe) {
				t.Errorf("err = %v, want ForbiddenError", err)
			}
			if !tt.forbidden && err != nil {
				t.Errorf("err = %v, want nil", err)
			}
		})
	}

	t.Run("unknown id", func(t *testing.T) {
		var nf *NotFoundError
		if _, err := f.svc.GetByID(ctx, f.admin, bson.NewObjectID()); !asNotFound(err, &nf) {
			t.Errorf("err = %v, want NotFoundError", err)
		}
	})
}

func TestUpdateStatusClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	q, err := f.svc.Create(ctx, f.client, f.validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("client cannot complete own quotation", func(t *testing.T) {
		status := models.QuotationStatusCompleted
		_, err := f.svc.UpdateStatus(ctx, f.client, q.ID, StatusPatch{Status: &status})
		var fe *ForbiddenError
		if !asForbidden(err, &fe) {
			t.Fatalf("err = %v, want ForbiddenError", err)
		}
	})

	t.Run("client cannot touch admin fields", func(t *testing.T) {
		status := models.QuotationStatusRevisionRequested
		reason := "please change color"
		price := 100.0
		_, err := f.svc.UpdateStatus(ctx, f.client, q.ID, StatusPatch{
			Status: &status, RevisionRequest: &reason, QuotedPrice: &price,
		})
		var fe *ForbiddenError
		if !asForbidden(err, &fe) {
			t.Fatalf("err = %v, want ForbiddenError", err)
		}
	})

	t.Run("revision without text rejected", func(t *testing.T) {
		status := models.QuotationStatusRevisionRequested
		_, err := f.svc.UpdateStatus(ctx, f.client, q.ID, StatusPatch{Status: &status})
		var fe *ForbiddenError
		if !asForbidden(err, &fe) {
			t.Fatalf("err = %v, want ForbiddenError", err)
		}
	})

	t.Run("revision request succeeds", func(t *testing.T) {
		status := models.QuotationStatusRevisionRequested
		reason := "please change color"
		updated, err := f.svc.UpdateStatus(ctx, f.client, q.ID, StatusPatch{
			Status: &status, RevisionRequest: &reason,
		})
		if err != nil {
			t.Fatalf("UpdateStatus: %v", err)
		}
		if updated.Status != models.QuotationStatusRevisionRequested {
			t.Errorf("status = %q", updated.Status)
		}
		if updated.RevisionRequest != "please change color" {
			t.Errorf("revisionRequest = %q, want verbatim text", updated.RevisionRequest)
		}
	})

	t.Run("not the owner", func(t *testing.T) {
		other := &Principal{UserID: bson.NewObjectID(), Role: models.RoleClient}
		status := models.QuotationStatusRevisionRequested
		reason := "tweak it"
		_, err := f.svc.UpdateStatus(ctx, other, q.ID, StatusPatch{Status: &status, RevisionRequest: &reason})
		var fe *ForbiddenError
		if !asForbidden(err, &fe) {
			t.Fatalf("err = %v, want ForbiddenError", err)
		}
	})
}

func TestUpdateStatusAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	now := base
	f.svc.now = func() time.Time { return now }

	q, err := f.svc.Create(ctx, f.client, f.validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if q.DateResponded != nil {
		t.Fatal("dateResponded should be nil after creation")
	}

	t.Run("responding stamps dateResponded", func(t *testing.T) {
		now = base.Add(time.Hour)
		status := models.QuotationStatusReviewing
		updated, err := f.svc.UpdateStatus(ctx, f.admin, q.ID, StatusPatch{Status: &status})
		if err != nil {
			t.Fatalf("UpdateStatus: %v", err)
		}
		if updated.DateResponded == nil || !updated.DateResponded.Equal(base.Add(time.Hour)) {
			t.Errorf("dateResponded = %v, want %v", updated.DateResponded, base.Add(time.Hour))
		}
	})

	t.Run("second edit moves dateResponded forward", func(t *testing.T) {
		now = base.Add(2 * time.Hour)
		status := models.QuotationStatusQuoted
		price := 7500.0
		notes := "includes two concepts"
		updated, err := f.svc.UpdateStatus(ctx, f.admin, q.ID, StatusPatch{
			Status: &status, QuotedPrice: &price, AdminNotes: &notes,
		})
		if err != nil {
			t.Fatalf("UpdateStatus: %v", err)
		}
		if updated.DateResponded == nil || !updated.DateResponded.Equal(base.Add(2*time.Hour)) {
			t.Errorf("dateResponded = %v, want %v", updated.DateResponded, base.Add(2*time.Hour))
		}
		if updated.QuotedPrice != 7500 {
			t.Errorf("quotedPrice = %v", updated.QuotedPrice)
		}
		if updated.AdminNotes != notes {
			t.Errorf("adminNotes = %q", updated.AdminNotes)
		}
	})

	t.Run("revision counter increments by one", func(t *testing.T) {
		fee := 500.0
		updated, err := f.svc.UpdateStatus(ctx, f.admin, q.ID, StatusPatch{
			RevisionFee: &fee, IncrementRevision: true,
		})
		if err != nil {
			t.Fatalf("UpdateStatus: %v", err)
		}
		if updated.RevisionCount != 1 {
			t.Errorf("revisionCount = %d, want 1", updated.RevisionCount)
		}
		if updated.RevisionFee != 500 {
			t.Errorf("revisionFee = %v", updated.RevisionFee)
		}
	})

	t.Run("negative quoted price rejected", func(t *testing.T) {
		price := -1.0
		var ve *ValidationError
		if _, err := f.svc.UpdateStatus(ctx, f.admin, q.ID, StatusPatch{QuotedPrice: &price}); !asValidation(err, &ve) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		bogus := models.QuotationStatus("archived")
		var ve *ValidationError
		if _, err := f.svc.UpdateStatus(ctx, f.admin, q.ID, StatusPatch{Status: &bogus}); !asValidation(err, &ve) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		var nf *NotFoundError
		if _, err := f.svc.UpdateStatus(ctx, f.admin, bson.NewObjectID(), StatusPatch{}); !asNotFound(err, &nf) {
			t.Fatalf("err = %v, want NotFoundError", err)
		}
	})
}

func TestUpdateStatusNotifies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	q, err := f.svc.Create(ctx, f.client, f.validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	status := models.QuotationStatusReviewing
	if _, err := f.svc.UpdateStatus(ctx, f.admin, q.ID, StatusPatch{Status: &status}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	select {
	case notified := <-f.notifier.calls:
		if notified.Status != models.QuotationStatusReviewing {
			t.Errorf("notified status = %q", notified.Status)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was not invoked")
	}
}

func TestRestrictedTransitionPolicy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Forbid reopening completed work.
	policy := models.PermissiveTransitionPolicy()
	policy[models.QuotationStatusCompleted] = nil
	f.svc.SetTransitionPolicy(policy)

	q, err := f.svc.Create(ctx, f.client, f.validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	status := models.QuotationStatusCompleted
	if _, err := f.svc.UpdateStatus(ctx, f.admin, q.ID, StatusPatch{Status: &status}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	status = models.QuotationStatusPending
	var ve *ValidationError
	if _, err := f.svc.UpdateStatus(ctx, f.admin, q.ID, StatusPatch{Status: &status}); !asValidation(err, &ve) {
		t.Fatalf("err = %v, want ValidationError under restricted policy", err)
	}
}

func TestListMine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	now := base
	f.svc.now = func() time.Time { return now }

	in := f.validInput()
	in.Deadline = base.Add(72 * time.Hour)
	if _, err := f.svc.Create(ctx, f.client, in); err != nil {
		t.Fatalf("Create: %v", err)
	}
	now = base.Add(time.Hour)
	in.ProjectName = "Second project"
	if _, err := f.svc.Create(ctx, f.client, in); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Another client's record should not appear
	other := &Principal{UserID: bson.NewObjectID(), Role: models.RoleClient}
	if _, err := f.svc.Create(ctx, other, in); err != nil {
		t.Fatalf("Create: %v", err)
	}

	mine, err := f.svc.ListMine(ctx, f.client)
	if err != nil {
		t.Fatalf("ListMine: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("got %d quotations, want 2", len(mine))
	}
	if mine[0].ProjectName != "Second project" {
		t.Errorf("first result = %q, want newest first", mine[0].ProjectName)
	}

	if _, err := f.svc.ListMine(ctx, nil); err == nil {
		t.Error("ListMine without auth should fail")
	}
}

func TestListAllAdminOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, f.client, f.validInput()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := f.svc.ListAll(ctx, f.admin); err != nil {
		t.Errorf("admin ListAll: %v", err)
	}
	var fe *ForbiddenError
	if _, err := f.svc.ListAll(ctx, f.client); !asForbidden(err, &fe) {
		t.Errorf("client ListAll err = %v, want ForbiddenError", err)
	}
}

func TestDeleteQuotation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	q, err := f.svc.Create(ctx, f.client, f.validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	var fe *ForbiddenError
	if err := f.svc.Delete(ctx, f.client, q.ID); !asForbidden(err, &fe) {
		t.Fatalf("client delete err = %v, want ForbiddenError", err)
	}

	if err := f.svc.Delete(ctx, f.admin, q.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}

	var nf *NotFoundError
	if _, err := f.svc.GetByID(ctx, f.admin, q.ID); !asNotFound(err, &nf) {
		t.Fatalf("GetByID after delete err = %v, want NotFoundError", err)
	}
	if err := f.svc.Delete(ctx, f.admin, q.ID); !asNotFound(err, &nf) {
		t.Fatalf("second delete err = %v, want NotFoundError", err)
	}
}

func TestImageCap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.validInput()
	for _, id := range []string{"a", "b", "c", "d"} {
		in.ReferenceImages = append(in.ReferenceImages, testImage(id))
	}
	q, err := f.svc.Create(ctx, f.client, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("fifth image fits", func(t *testing.T) {
		updated, err := f.svc.AddImages(ctx, f.client, q.ID, []models.ReferenceImage{testImage("e")})
		if err != nil {
			t.Fatalf("AddImages: %v", err)
		}
		if len(updated.ReferenceImages) != 5 {
			t.Fatalf("got %d images, want 5", len(updated.ReferenceImages))
		}
	})

	t.Run("sixth image conflicts and leaves set unchanged", func(t *testing.T) {
		_, err := f.svc.AddImages(ctx, f.client, q.ID, []models.ReferenceImage{testImage("f")})
		var ce *ConflictError
		if !asConflict(err, &ce) {
			t.Fatalf("err = %v, want ConflictError", err)
		}
		stored, err := f.svc.GetByID(ctx, f.client, q.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if len(stored.ReferenceImages) != 5 {
			t.Errorf("stored set changed: %d images", len(stored.ReferenceImages))
		}
	})

	t.Run("invalid image rejected before cap check", func(t *testing.T) {
		img := testImage("g")
		img.URL = "https://evil.example.com/photo"
		_, err := f.svc.AddImages(ctx, f.client, q.ID, []models.ReferenceImage{img})
		var ve *ValidationError
		if !asValidation(err, &ve) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})

	t.Run("stranger may not mutate images", func(t *testing.T) {
		other := &Principal{UserID: bson.NewObjectID(), Role: models.RoleClient}
		_, err := f.svc.AddImages(ctx, other, q.ID, []models.ReferenceImage{testImage("h")})
		var fe *ForbiddenError
		if !asForbidden(err, &fe) {
			t.Fatalf("err = %v, want ForbiddenError", err)
		}
	})

	t.Run("remove known and unknown ids", func(t *testing.T) {
		updated, err := f.svc.RemoveImages(ctx, f.client, q.ID, []string{"a", "never-existed"})
		if err != nil {
			t.Fatalf("RemoveImages: %v", err)
		}
		if len(updated.ReferenceImages) != 4 {
			t.Fatalf("got %d images, want 4", len(updated.ReferenceImages))
		}
		for _, img := range updated.ReferenceImages {
			if img.UnsplashID == "a" {
				t.Error("image \"a\" should have been removed")
			}
		}
	})
}

func asValidation(err error, target **ValidationError) bool { return errors.As(err, target) }
func asNotFound(err error, target **NotFoundError) bool     { return errors.As(err, target) }
func asForbidden(err error, target **ForbiddenError) bool   { return errors.As(err, target) }
func asConflict(err error, target **ConflictError) bool     { return errors.As(err, target) }
