package models

import (
	"testing"
	"time"
)

func TestBookingTransitionGraph(t *testing.T) {
	all := []BookingStatus{BookingPending, BookingConfirmed, BookingInProgress, BookingCompletionRequested, BookingCompleted, BookingCancelled}
	allowed := map[BookingStatus]map[BookingStatus]bool{
		BookingPending:             {BookingConfirmed: true, BookingCancelled: true},
		BookingConfirmed:           {BookingInProgress: true, BookingCancelled: true},
		BookingInProgress:          {BookingCompletionRequested: true},
		BookingCompletionRequested: {BookingCompleted: true},
	}
	for _, from := range all {
		for _, to := range all {
			if got, want := from.CanTransitionTo(to), allowed[from][to]; got != want {
				t.Errorf("%s -> %s: got %t, want %t", from, to, got, want)
			}
		}
	}
	if !BookingCompleted.IsTerminal() || !BookingCancelled.IsTerminal() || BookingPending.IsTerminal() {
		t.Fatal("terminal statuses misclassified")
	}
}

func TestParseBookingStatus(t *testing.T) {
	if s, err := ParseBookingStatus("IN_PROGRESS"); err != nil || s != BookingInProgress {
		t.Fatalf("got %q, %v", s, err)
	}
	if _, err := ParseBookingStatus("LATE"); err == nil {
		t.Fatal("LATE accepted as a status")
	}
}

func TestMutationApplyAndClone(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	late := true
	evidence := &CompletionEvidence{Notes: "n", Attachments: []string{"a"}}
	b := Booking{ID: "b", Status: BookingConfirmed, Version: 2}

	BookingMutation{Status: BookingInProgress, StartedAt: &now, LateFlag: &late, Evidence: evidence}.Apply(&b)
	if b.Status != BookingInProgress || !b.LateFlag || b.StartedAt == nil || b.Version != 2 {
		t.Fatalf("apply: %+v", b)
	}

	evidence.Attachments[0] = "changed"
	now = now.Add(time.Hour)
	if b.Evidence.Attachments[0] != "a" || !b.StartedAt.Equal(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)) {
		t.Fatal("apply shares memory with the mutation")
	}

	c := b.Clone()
	c.Evidence.Attachments[0] = "other"
	*c.StartedAt = c.StartedAt.Add(time.Hour)
	if b.Evidence.Attachments[0] != "a" || b.StartedAt.Hour() != 9 {
		t.Fatal("clone shares memory with the original")
	}
}

func TestIsParticipant(t *testing.T) {
	b := Booking{ClientID: "c", ProviderID: "p"}
	if !b.IsParticipant("c") || !b.IsParticipant("p") || b.IsParticipant("x") || b.IsParticipant("") {
		t.Fatal("participant check wrong")
	}
}

func TestRoleClassification(t *testing.T) {
	for _, r := range []Role{RolePetSitter, RolePetHotel, RolePetSchool, RoleVendor} {
		if !r.IsBusiness() || !r.IsKnown() {
			t.Errorf("%s should be a known business role", r)
		}
	}
	if RolePetOwner.IsBusiness() || RoleAdmin.IsBusiness() || Role("GHOST").IsKnown() {
		t.Fatal("non-business roles misclassified")
	}
}
