package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type QuotationStatus string

const (
	QuotationStatusPending           QuotationStatus = "pending"
	QuotationStatusReviewing         QuotationStatus = "reviewing"
	QuotationStatusQuoted            QuotationStatus = "quoted"
	QuotationStatusAccepted          QuotationStatus = "accepted"
	QuotationStatusInProgress        QuotationStatus = "in_progress"
	QuotationStatusRevisionRequested QuotationStatus = "revision_requested"
	QuotationStatusCompleted         QuotationStatus = "completed"
	QuotationStatusRejected          QuotationStatus = "rejected"
)

// AllQuotationStatuses lists every status in lifecycle order.
var AllQuotationStatuses = []QuotationStatus{
	QuotationStatusPending,
	QuotationStatusReviewing,
	QuotationStatusQuoted,
	QuotationStatusAccepted,
	QuotationStatusInProgress,
	QuotationStatusRevisionRequested,
	QuotationStatusCompleted,
	QuotationStatusRejected,
}

func (s QuotationStatus) Valid() bool {
	for _, known := range AllQuotationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// TransitionPolicy maps a current status to the statuses an admin may move
// it to. It is data, not code: tightening the lifecycle later is a matter
// of editing the table, not the manager.
type TransitionPolicy map[QuotationStatus][]QuotationStatus

func (p TransitionPolicy) Allows(from, to QuotationStatus) bool {
	for _, s := range p[from] {
		if s == to {
			return true
		}
	}
	return false
}

// PermissiveTransitionPolicy allows every transition, including leaving
// completed/rejected. Stakeholders have not documented an intended
// transition graph, so the default imposes none.
func PermissiveTransitionPolicy() TransitionPolicy {
	p := make(TransitionPolicy, len(AllQuotationStatuses))
	for _, from := range AllQuotationStatuses {
		p[from] = append([]QuotationStatus(nil), AllQuotationStatuses...)
	}
	return p
}

type RequesterKind string

const (
	RequesterKindClient RequesterKind = "client"
	RequesterKindGuest  RequesterKind = "guest"
)

type GuestInfo struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Requester is the quotation's originator: an authenticated client XOR a
// guest with contact info. Build one with ClientRequester or GuestRequester
// so exactly one side is ever populated.
type Requester struct {
	Kind     RequesterKind `bson:"kind" json:"kind"`
	ClientID bson.ObjectID `bson:"clientId,omitempty" json:"clientId,omitempty"`
	Guest    *GuestInfo    `bson:"guest,omitempty" json:"guest,omitempty"`
}

func ClientRequester(id bson.ObjectID) Requester {
	return Requester{Kind: RequesterKindClient, ClientID: id}
}

func GuestRequester(name, email, phone string) Requester {
	return Requester{Kind: RequesterKindGuest, Guest: &GuestInfo{Name: name, Email: email, Phone: phone}}
}

func (r Requester) IsClient() bool {
	return r.Kind == RequesterKindClient
}

func (r Requester) IsGuest() bool {
	return r.Kind == RequesterKindGuest
}

// OwnedBy reports whether the given authenticated user is this requester.
// Guest requesters are owned by nobody: there is no session to own them.
func (r Requester) OwnedBy(userID bson.ObjectID) bool {
	return r.Kind == RequesterKindClient && r.ClientID == userID
}

type Photographer struct {
	Name        string `bson:"name" json:"name"`
	Username    string `bson:"username" json:"username"`
	ProfileLink string `bson:"profileLink" json:"profileLink"`
}

// ReferenceImage is a design-inspiration image sourced from Unsplash.
// Attribution fields are mandatory (Unsplash API terms).
type ReferenceImage struct {
	UnsplashID   string       `bson:"unsplashId" json:"unsplashId"`
	URL          string       `bson:"url" json:"url"`
	ThumbURL     string       `bson:"thumbUrl" json:"thumbUrl"`
	Description  string       `bson:"description,omitempty" json:"description,omitempty"`
	Photographer Photographer `bson:"photographer" json:"photographer"`
	PhotoLink    string       `bson:"photoLink" json:"photoLink"`
	AddedAt      time.Time    `bson:"addedAt" json:"addedAt"`
}

// MaxReferenceImages caps the reference images per quotation.
const MaxReferenceImages = 5

type QuotationRequest struct {
	ID bson.ObjectID `bson:"_id,omitempty" json:"id"`

	Requester Requester     `bson:"requester" json:"requester"`
	ServiceID bson.ObjectID `bson:"serviceId" json:"serviceId"`

	ProjectName    string    `bson:"projectName" json:"projectName"`
	Description    string    `bson:"description" json:"description"`
	Budget         string    `bson:"budget" json:"budget"`
	Deadline       time.Time `bson:"deadline" json:"deadline"`
	AdditionalInfo string    `bson:"additionalInfo,omitempty" json:"additionalInfo,omitempty"`

	Status QuotationStatus `bson:"status" json:"status"`

	QuotedPrice     float64 `bson:"quotedPrice" json:"quotedPrice"`
	AdminNotes      string  `bson:"adminNotes,omitempty" json:"adminNotes,omitempty"`
	RevisionRequest string  `bson:"revisionRequest,omitempty" json:"revisionRequest,omitempty"`
	RevisionFee     float64 `bson:"revisionFee" json:"revisionFee"`
	RevisionCount   int     `bson:"revisionCount" json:"revisionCount"`

	ReferenceImages []ReferenceImage `bson:"referenceImages,omitempty" json:"referenceImages,omitempty"`

	DateRequested time.Time  `bson:"dateRequested" json:"dateRequested"`
	DateResponded *time.Time `bson:"dateResponded,omitempty" json:"dateResponded,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
