// Package floorplans implements the floor-plan lifecycle: create, list, read,
// partial update, status change, delete, booth views and exports. Every
// operation resolves the caller, asks the policy package, and only then talks
// to the store.
package floorplans

import (
	"context"
	"log"
	"net/http"

	"expofloor/db"
	"expofloor/models"
	"expofloor/mq"
	"expofloor/rdx"
	"expofloor/stats"
	"expofloor/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Handler struct {
	Store  *db.Store
	Cache  *rdx.Cache
	Events *mq.Emitter
}

func New(store *db.Store, cache *rdx.Cache, events *mq.Emitter) *Handler {
	return &Handler{Store: store, Cache: cache, Events: events}
}

// planResponse is the single-resource payload: the full document plus derived
// booth data.
type planResponse struct {
	models.FloorPlan
	Stats        models.BoothStats    `json:"stats"`
	BoothDetails []models.BoothDetail `json:"booth_details"`
}

// loadPlan fetches the plan addressed by the :id route parameter. A malformed
// or unknown id is reported as not found; the error response has already been
// written when ok is false.
func (h *Handler) loadPlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) (models.FloorPlan, bool) {
	var plan models.FloorPlan

	oid, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Floor plan not found")
		return plan, false
	}

	err = h.Store.FloorPlans.FindOne(r.Context(), bson.M{"_id": oid}).Decode(&plan)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Floor plan not found")
		return plan, false
	}
	if err != nil {
		log.Printf("floorplans: load %s failed: %v", oid.Hex(), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get floor plan")
		return plan, false
	}
	return plan, true
}

// statsFor computes booth stats for a plan, going through the redis cache.
func (h *Handler) statsFor(ctx context.Context, plan models.FloorPlan) models.BoothStats {
	id := plan.ID.Hex()
	if cached, ok := h.Cache.GetStats(ctx, id); ok {
		return cached
	}
	st := stats.CalculateBoothStats(plan.State)
	h.Cache.SetStats(ctx, id, st)
	return st
}

// touch invalidates cached data and emits a change event after a mutation.
func (h *Handler) touch(ctx context.Context, planID, event, method string) {
	h.Cache.InvalidatePlan(ctx, planID)
	h.Events.Emit(ctx, event, mq.Index{EntityType: "floorplan", EntityId: planID, Method: method})
}
