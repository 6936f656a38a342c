package floorplans

import (
	"log"
	"net/http"

	"expofloor/middleware"
	"expofloor/models"
	"expofloor/policy"
	"expofloor/stats"
	"expofloor/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// listFilter builds the collection query for a caller: the policy's status
// scope plus optional case-insensitive search over name/description and an
// exact event filter.
func listFilter(caller policy.Caller, search, eventID string) bson.M {
	filter := bson.M{}
	if statuses := policy.VisibleStatuses(caller); statuses != nil {
		filter["status"] = bson.M{"$in": statuses}
	}
	if search != "" {
		filter["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": search, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": search, "$options": "i"}},
		}
	}
	if eventID != "" {
		filter["event_id"] = eventID
	}
	return filter
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.list(w, r, middleware.CallerFromRequest(r), false)
}

// PublicList serves published plans to anonymous callers.
func (h *Handler) PublicList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.list(w, r, policy.Anonymous, true)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, caller policy.Caller, public bool) {
	ctx := r.Context()
	q := r.URL.Query()
	page, limit, skip := utils.ParsePagination(r, 10, 100)
	filter := listFilter(caller, q.Get("search"), q.Get("event_id"))

	total, err := h.Store.FloorPlans.CountDocuments(ctx, filter)
	if err != nil {
		log.Printf("floorplans: count failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get floor plans")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "last_modified", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	plans, err := utils.FindAndDecode[models.FloorPlan](ctx, h.Store.FloorPlans, filter, opts)
	if err != nil {
		log.Printf("floorplans: find failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get floor plans")
		return
	}

	items := make([]models.FloorPlanSummary, 0, len(plans))
	for _, p := range plans {
		s := p.Summary(h.statsFor(ctx, p))
		if public {
			s.UserID = ""
		}
		items = append(items, s)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"floorplans": items,
		"pagination": utils.M{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": utils.PageCount(total, limit),
		},
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	plan, ok := h.loadPlan(w, r, ps)
	if !ok {
		return
	}

	caller := middleware.CallerFromRequest(r)
	if !policy.CanRead(caller, plan.Status) {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"floorplan": planResponse{
			FloorPlan:    plan,
			Stats:        h.statsFor(r.Context(), plan),
			BoothDetails: stats.BoothDetails(plan.State),
		},
	})
}

// GetBooths returns the booth projection without the full document. Gated
// like a mutation: booth pricing and exhibitor contacts are for the plan's
// owner and admins.
func (h *Handler) GetBooths(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	plan, ok := h.loadPlan(w, r, ps)
	if !ok {
		return
	}

	caller := middleware.CallerFromRequest(r)
	if !policy.CanMutate(caller, plan.UserID) {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"booths": stats.BoothDetails(plan.State),
		"stats":  h.statsFor(r.Context(), plan),
	})
}

// classifyPublicRead maps the outcome of a public plan lookup to an HTTP
// status. Absent and unpublished plans are both reported not found; store
// faults stay internal errors.
func classifyPublicRead(err error, status string) int {
	switch {
	case err == mongo.ErrNoDocuments:
		return http.StatusNotFound
	case err != nil:
		return http.StatusInternalServerError
	case !policy.CanReadPublic(status):
		return http.StatusNotFound
	}
	return http.StatusOK
}

// PublicGet serves a single published plan anonymously. Unpublished plans are
// reported absent, never forbidden, so their existence does not leak.
func (h *Handler) PublicGet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	oid, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Floor plan not found or not published")
		return
	}

	var plan models.FloorPlan
	err = h.Store.FloorPlans.FindOne(r.Context(), bson.M{"_id": oid}).Decode(&plan)
	switch classifyPublicRead(err, plan.Status) {
	case http.StatusInternalServerError:
		log.Printf("floorplans: public load %s failed: %v", oid.Hex(), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get floor plan")
		return
	case http.StatusNotFound:
		utils.RespondWithError(w, http.StatusNotFound, "Floor plan not found or not published")
		return
	}

	plan.UserID = ""
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"floorplan": planResponse{
			FloorPlan:    plan,
			Stats:        h.statsFor(r.Context(), plan),
			BoothDetails: stats.BoothDetails(plan.State),
		},
	})
}
