// Package dashboard serves the aggregated overview: plan totals and booth
// statistics rolled up across every plan the caller can manage.
package dashboard

import (
	"log"
	"net/http"

	"expofloor/db"
	"expofloor/middleware"
	"expofloor/models"
	"expofloor/stats"
	"expofloor/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Handler struct {
	Store *db.Store
}

func New(store *db.Store) *Handler {
	return &Handler{Store: store}
}

// Stats aggregates over the caller's scope: admins see every plan, regular
// users only the plans they own.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	caller := middleware.CallerFromRequest(r)

	filter := bson.M{}
	if !caller.IsAdmin() {
		filter["user_id"] = caller.ID
	}

	total, err := h.Store.FloorPlans.CountDocuments(ctx, filter)
	if err != nil {
		log.Printf("dashboard: count failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	plans, err := utils.FindAndDecode[models.FloorPlan](ctx, h.Store.FloorPlans, filter)
	if err != nil {
		log.Printf("dashboard: find failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	var overall models.BoothStats
	for _, p := range plans {
		overall.Add(stats.CalculateBoothStats(p.State))
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "last_modified", Value: -1}}).
		SetLimit(5)
	recent, err := utils.FindAndDecode[models.FloorPlan](ctx, h.Store.FloorPlans, filter, opts)
	if err != nil {
		log.Printf("dashboard: recent find failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	recentItems := make([]models.FloorPlanSummary, 0, len(recent))
	for _, p := range recent {
		recentItems = append(recentItems, p.Summary(stats.CalculateBoothStats(p.State)))
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"total_floorplans":  total,
		"overall_stats":     overall,
		"recent_floorplans": recentItems,
	})
}
