package floorplans

import (
	"encoding/json"
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
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	EventID     string `json:"event_id"`
	Floor       *int   `json:"floor"`
	Layer       *int   `json:"layer"`
	State       bson.M `json:"state"`
	Status      string `json:"status"`
}

// newPlan builds the document for a create request, applying the defaults: a
// fresh canvas state, draft status, floor 1 and layer 0, version 1.
func newPlan(input createRequest, ownerID string, now time.Time) models.FloorPlan {
	state := input.State
	if state == nil {
		state = models.DefaultCanvasState()
	}

	status := input.Status
	if status == "" {
		status = models.StatusDraft
	}

	floor := 1
	if input.Floor != nil {
		floor = *input.Floor
	}
	layer := 0
	if input.Layer != nil {
		layer = *input.Layer
	}

	return models.FloorPlan{
		Name:         input.Name,
		Description:  input.Description,
		Created:      now,
		LastModified: now,
		State:        state,
		Version:      1,
		EventID:      input.EventID,
		Floor:        floor,
		Layer:        layer,
		UserID:       ownerID,
		Status:       status,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller := middleware.CallerFromRequest(r)
	if !policy.CanCreate(caller) {
		utils.RespondWithError(w, http.StatusForbidden, "Admin access required")
		return
	}

	var input createRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Floor plan name is required")
		return
	}

	if input.State != nil {
		if err := stats.ValidateState(input.State); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	plan := newPlan(input, caller.ID, time.Now().UTC())

	result, err := h.Store.FloorPlans.InsertOne(r.Context(), plan)
	if err != nil {
		log.Printf("floorplans: insert failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create floor plan")
		return
	}
	plan.ID = result.InsertedID.(primitive.ObjectID)

	h.touch(r.Context(), plan.ID.Hex(), "floorplan-created", http.MethodPost)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message":   "Floor plan created successfully",
		"floorplan": plan,
	})
}
