package policy

import (
	"reflect"
	"testing"

	"expofloor/models"
)

var (
	admin = Caller{ID: "a1", Role: models.RoleAdmin}
	userA = Caller{ID: "u1", Role: models.RoleUser}
	userB = Caller{ID: "u2", Role: models.RoleUser}
)

func TestCanCreate(t *testing.T) {
	if !CanCreate(admin) {
		t.Error("admin must be allowed to create")
	}
	if CanCreate(userA) {
		t.Error("regular user must not create")
	}
	if CanCreate(Anonymous) {
		t.Error("anonymous must not create")
	}
}

func TestVisibleStatuses(t *testing.T) {
	if got := VisibleStatuses(admin); got != nil {
		t.Errorf("admin scope should be unfiltered, got %v", got)
	}
	if got := VisibleStatuses(userA); !reflect.DeepEqual(got, []string{"active", "published"}) {
		t.Errorf("user scope = %v", got)
	}
	if got := VisibleStatuses(Anonymous); !reflect.DeepEqual(got, []string{"published"}) {
		t.Errorf("anonymous scope = %v", got)
	}
}

func TestCanRead_OwnershipDoesNotGrantReads(t *testing.T) {
	// userA owns a draft; ownership is irrelevant on the read path.
	if CanRead(userA, models.StatusDraft) {
		t.Error("non-admin must not read a draft, even their own")
	}
	if !CanRead(admin, models.StatusDraft) {
		t.Error("admin reads drafts")
	}
	if !CanRead(userB, models.StatusActive) || !CanRead(userB, models.StatusPublished) {
		t.Error("users read active and published plans")
	}
	if CanRead(userB, models.StatusArchived) {
		t.Error("users must not read archived plans")
	}
}

func TestCanReadPublic(t *testing.T) {
	if !CanReadPublic(models.StatusPublished) {
		t.Error("published plans are public")
	}
	for _, s := range []string{models.StatusDraft, models.StatusActive, models.StatusArchived} {
		if CanReadPublic(s) {
			t.Errorf("status %q must not be public", s)
		}
	}
}

func TestCanMutate(t *testing.T) {
	owner := userA.ID
	if !CanMutate(admin, owner) {
		t.Error("admin mutates anything")
	}
	if !CanMutate(userA, owner) {
		t.Error("owner mutates their own plan")
	}
	if CanMutate(userB, owner) {
		t.Error("non-owner must not mutate")
	}
	if CanMutate(Anonymous, "") {
		t.Error("anonymous must never mutate, even with an empty owner id")
	}
}
