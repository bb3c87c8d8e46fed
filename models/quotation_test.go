package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestQuotationStatusValid(t *testing.T) {
	for _, s := range AllQuotationStatuses {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []QuotationStatus{"", "PENDING", "archived", "done"} {
		if s.Valid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestPermissiveTransitionPolicy(t *testing.T) {
	p := PermissiveTransitionPolicy()
	for _, from := range AllQuotationStatuses {
		for _, to := range AllQuotationStatuses {
			if !p.Allows(from, to) {
				t.Errorf("permissive policy should allow %s -> %s", from, to)
			}
		}
	}
	if p.Allows(QuotationStatusPending, "archived") {
		t.Error("unknown target status should never be allowed")
	}
}

func TestTransitionPolicyAllows(t *testing.T) {
	p := TransitionPolicy{
		QuotationStatusPending: {QuotationStatusReviewing, QuotationStatusRejected},
	}
	if !p.Allows(QuotationStatusPending, QuotationStatusReviewing) {
		t.Error("pending -> reviewing should be allowed")
	}
	if p.Allows(QuotationStatusPending, QuotationStatusCompleted) {
		t.Error("pending -> completed should be denied")
	}
	if p.Allows(QuotationStatusCompleted, QuotationStatusPending) {
		t.Error("statuses absent from the table allow nothing")
	}
}

func TestRequester(t *testing.T) {
	clientID := bson.NewObjectID()

	client := ClientRequester(clientID)
	if !client.IsClient() || client.IsGuest() {
		t.Error("ClientRequester kind mismatch")
	}
	if client.Guest != nil {
		t.Error("client requester must not carry guest info")
	}
	if !client.OwnedBy(clientID) {
		t.Error("client requester should be owned by its client")
	}
	if client.OwnedBy(bson.NewObjectID()) {
		t.Error("client requester owned by a stranger")
	}

	guest := GuestRequester("Gina", "g@x.com", "")
	if !guest.IsGuest() || guest.IsClient() {
		t.Error("GuestRequester kind mismatch")
	}
	if guest.Guest == nil || guest.Guest.Name != "Gina" || guest.Guest.Email != "g@x.com" {
		t.Errorf("guest info = %+v", guest.Guest)
	}
	if guest.OwnedBy(clientID) {
		t.Error("guest requester is owned by nobody")
	}
	if !guest.ClientID.IsZero() {
		t.Error("guest requester must not carry a client id")
	}
}
