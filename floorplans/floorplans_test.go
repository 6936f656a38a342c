package floorplans

import (
	"errors"
	"net/http"
	"reflect"
	"testing"
	"time"

	"expofloor/models"
	"expofloor/policy"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestListFilter_ScopesByRole(t *testing.T) {
	admin := policy.Caller{ID: "a1", Role: models.RoleAdmin}
	user := policy.Caller{ID: "u1", Role: models.RoleUser}

	if f := listFilter(admin, "", ""); len(f) != 0 {
		t.Errorf("admin filter should be empty, got %v", f)
	}

	f := listFilter(user, "", "")
	want := bson.M{"status": bson.M{"$in": []string{"active", "published"}}}
	if !reflect.DeepEqual(f, want) {
		t.Errorf("user filter = %v, want %v", f, want)
	}

	f = listFilter(policy.Anonymous, "", "")
	want = bson.M{"status": bson.M{"$in": []string{"published"}}}
	if !reflect.DeepEqual(f, want) {
		t.Errorf("anonymous filter = %v, want %v", f, want)
	}
}

func TestListFilter_SearchAndEvent(t *testing.T) {
	f := listFilter(policy.Caller{ID: "a1", Role: models.RoleAdmin}, "hall", "ev42")

	or, ok := f["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected two-way $or search clause, got %v", f["$or"])
	}
	name := or[0].(bson.M)["name"].(bson.M)
	if name["$regex"] != "hall" || name["$options"] != "i" {
		t.Errorf("name clause = %v", name)
	}
	if f["event_id"] != "ev42" {
		t.Errorf("event_id = %v", f["event_id"])
	}
}

func TestBuildUpdate_AlwaysBumpsVersion(t *testing.T) {
	now := time.Now().UTC()

	// Input with no recognized field still bumps version and last_modified.
	set := buildUpdate(bson.M{"bogus": true}, 3, now)
	if set["version"] != 4 {
		t.Errorf("version = %v, want 4", set["version"])
	}
	if set["last_modified"] != now {
		t.Errorf("last_modified = %v", set["last_modified"])
	}
	if _, ok := set["bogus"]; ok {
		t.Error("unrecognized fields must not be written")
	}
}

func TestBuildUpdate_RecognizedFieldsOnly(t *testing.T) {
	now := time.Now().UTC()
	input := bson.M{
		"name":        "Hall B",
		"description": "west wing",
		"floor":       2,
		"layer":       1,
		"event_id":    "ev1",
		"status":      "active",
		"state":       map[string]any{"elements": []any{}},
		"version":     99,   // not user-settable
		"created":     "x",  // immutable
		"user_id":     "u9", // immutable
	}

	set := buildUpdate(input, 1, now)
	if set["version"] != 2 {
		t.Errorf("version = %v, want 2 (client-supplied version ignored)", set["version"])
	}
	if _, ok := set["created"]; ok {
		t.Error("created must be immutable")
	}
	if _, ok := set["user_id"]; ok {
		t.Error("user_id must be immutable")
	}
	for _, field := range []string{"name", "description", "floor", "layer", "event_id", "status", "state"} {
		if _, ok := set[field]; !ok {
			t.Errorf("field %q missing from update", field)
		}
	}
}

// Both racing updates read version 3 and write 4: last write wins by design.
func TestBuildUpdate_LostUpdateSemantics(t *testing.T) {
	now := time.Now().UTC()
	first := buildUpdate(bson.M{"name": "a"}, 3, now)
	second := buildUpdate(bson.M{"name": "b"}, 3, now)
	if first["version"] != 4 || second["version"] != 4 {
		t.Fatalf("both writers must compute version 4, got %v and %v", first["version"], second["version"])
	}
}

func TestNewPlan_Defaults(t *testing.T) {
	now := time.Now().UTC()
	plan := newPlan(createRequest{Name: "Hall A"}, "u1", now)

	if plan.Version != 1 {
		t.Errorf("version = %d, want 1", plan.Version)
	}
	if plan.Status != models.StatusDraft {
		t.Errorf("status = %q, want draft", plan.Status)
	}
	if plan.Floor != 1 || plan.Layer != 0 {
		t.Errorf("floor/layer = %d/%d, want 1/0", plan.Floor, plan.Layer)
	}
	if !plan.Created.Equal(now) || !plan.LastModified.Equal(now) {
		t.Errorf("created/last_modified = %v/%v, want %v", plan.Created, plan.LastModified, now)
	}
	if plan.UserID != "u1" {
		t.Errorf("user_id = %q", plan.UserID)
	}

	elements, ok := plan.State["elements"].(bson.A)
	if !ok || len(elements) != 0 {
		t.Fatalf("default state elements = %v, want empty list", plan.State["elements"])
	}
}

func TestNewPlan_ExplicitValuesKept(t *testing.T) {
	floor, layer := 3, 2
	state := bson.M{"elements": bson.A{bson.M{"type": "booth"}}}
	plan := newPlan(createRequest{
		Name:   "Hall B",
		Floor:  &floor,
		Layer:  &layer,
		State:  state,
		Status: models.StatusActive,
	}, "u2", time.Now().UTC())

	if plan.Floor != 3 || plan.Layer != 2 {
		t.Errorf("floor/layer = %d/%d, want 3/2", plan.Floor, plan.Layer)
	}
	if plan.Status != models.StatusActive {
		t.Errorf("status = %q, want active", plan.Status)
	}
	if !reflect.DeepEqual(plan.State, state) {
		t.Errorf("state = %v, want the supplied state untouched", plan.State)
	}
}

func TestClassifyPublicRead(t *testing.T) {
	if got := classifyPublicRead(mongo.ErrNoDocuments, ""); got != http.StatusNotFound {
		t.Errorf("missing document: got %d, want 404", got)
	}
	if got := classifyPublicRead(errors.New("connection reset"), ""); got != http.StatusInternalServerError {
		t.Errorf("store fault: got %d, want 500", got)
	}
	if got := classifyPublicRead(nil, models.StatusDraft); got != http.StatusNotFound {
		t.Errorf("unpublished plan: got %d, want 404", got)
	}
	if got := classifyPublicRead(nil, models.StatusPublished); got != http.StatusOK {
		t.Errorf("published plan: got %d, want 200", got)
	}
}

func TestPublicViewerURL(t *testing.T) {
	t.Setenv("PUBLIC_BASE_URL", "https://floorplans.example.com")
	got := publicViewerURL("abc123")
	if got != "https://floorplans.example.com/api/public/floorplans/abc123" {
		t.Fatalf("url = %q", got)
	}
}
