package floorplans

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"expofloor/middleware"
	"expofloor/models"
	"expofloor/policy"
	"expofloor/stats"
	"expofloor/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// updatableFields are the only keys a partial update may overwrite; anything
// else in the request body is ignored.
var updatableFields = []string{"name", "description", "state", "event_id", "floor", "layer", "status"}

// buildUpdate assembles the $set document for a partial update. The version
// bump and last_modified refresh happen unconditionally, even when the input
// contained no recognized field.
func buildUpdate(input bson.M, version int, now time.Time) bson.M {
	set := bson.M{
		"last_modified": now,
		"version":       version + 1,
	}
	for _, field := range updatableFields {
		if value, ok := input[field]; ok {
			set[field] = value
		}
	}
	return set
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input bson.M
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || len(input) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No data provided")
		return
	}

	plan, ok := h.loadPlan(w, r, ps)
	if !ok {
		return
	}

	caller := middleware.CallerFromRequest(r)
	if !policy.CanMutate(caller, plan.UserID) {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	if rawState, ok := input["state"]; ok {
		state, ok := rawState.(map[string]any)
		if !ok {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid state")
			return
		}
		if err := stats.ValidateState(state); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	// No compare-and-swap against the version read above: concurrent updates
	// race and the last write wins.
	set := buildUpdate(input, plan.Version, time.Now().UTC())
	planID := plan.ID
	if _, err := h.Store.FloorPlans.UpdateOne(r.Context(), bson.M{"_id": planID}, bson.M{"$set": set}); err != nil {
		log.Printf("floorplans: update %s failed: %v", planID.Hex(), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update floor plan")
		return
	}

	var updated models.FloorPlan
	if err := h.Store.FloorPlans.FindOne(r.Context(), bson.M{"_id": planID}).Decode(&updated); err != nil {
		log.Printf("floorplans: reload %s failed: %v", planID.Hex(), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update floor plan")
		return
	}

	h.touch(r.Context(), planID.Hex(), "floorplan-updated", http.MethodPut)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message":   "Floor plan updated successfully",
		"floorplan": updated,
	})
}

func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Status == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Status is required")
		return
	}

	if !models.ValidStatus(input.Status) {
		utils.RespondWithError(w, http.StatusBadRequest,
			"Invalid status. Must be one of: draft, active, published, archived")
		return
	}

	plan, ok := h.loadPlan(w, r, ps)
	if !ok {
		return
	}

	caller := middleware.CallerFromRequest(r)
	if !policy.CanMutate(caller, plan.UserID) {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	set := bson.M{
		"status":        input.Status,
		"last_modified": time.Now().UTC(),
		"version":       plan.Version + 1,
	}
	if _, err := h.Store.FloorPlans.UpdateOne(r.Context(), bson.M{"_id": plan.ID}, bson.M{"$set": set}); err != nil {
		log.Printf("floorplans: status update %s failed: %v", plan.ID.Hex(), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update floor plan status")
		return
	}

	h.touch(r.Context(), plan.ID.Hex(), "floorplan-status-changed", http.MethodPut)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": fmt.Sprintf("Floor plan status updated to %s", input.Status),
		"status":  input.Status,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	plan, ok := h.loadPlan(w, r, ps)
	if !ok {
		return
	}

	caller := middleware.CallerFromRequest(r)
	if !policy.CanMutate(caller, plan.UserID) {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	if _, err := h.Store.FloorPlans.DeleteOne(r.Context(), bson.M{"_id": plan.ID}); err != nil {
		log.Printf("floorplans: delete %s failed: %v", plan.ID.Hex(), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete floor plan")
		return
	}

	h.touch(r.Context(), plan.ID.Hex(), "floorplan-deleted", http.MethodDelete)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Floor plan deleted successfully"})
}
