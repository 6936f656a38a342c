package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Floor plan lifecycle statuses. Transitions are unrestricted; "published" is the
// only status visible on the anonymous endpoints.
const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Booth element statuses inside a canvas state.
const (
	BoothAvailable = "available"
	BoothReserved  = "reserved"
	BoothSold      = "sold"
	BoothOnHold    = "on_hold"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusActive, StatusPublished, StatusArchived:
		return true
	}
	return false
}

func ValidBoothStatus(s string) bool {
	switch s {
	case BoothAvailable, BoothReserved, BoothSold, BoothOnHold:
		return true
	}
	return false
}

// FloorPlan is the owned document. State is kept as a raw map so unknown canvas
// fields (view state, history, tool selection) round-trip untouched.
type FloorPlan struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty"`
	Created      time.Time          `json:"created" bson:"created"`
	LastModified time.Time          `json:"last_modified" bson:"last_modified"`
	State        bson.M             `json:"state" bson:"state"`
	Version      int                `json:"version" bson:"version"`
	EventID      string             `json:"event_id,omitempty" bson:"event_id,omitempty"`
	Floor        int                `json:"floor" bson:"floor"`
	Layer        int                `json:"layer" bson:"layer"`
	UserID       string             `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Status       string             `json:"status" bson:"status"`
}

// DefaultCanvasState mirrors what the canvas editor initializes for a new plan.
func DefaultCanvasState() bson.M {
	return bson.M{
		"elements":    bson.A{},
		"selectedIds": bson.A{},
		"activeTool":  "select",
		"history": bson.M{
			"past":   bson.A{},
			"future": bson.A{},
		},
		"grid": bson.M{
			"enabled": true,
			"size":    20,
			"snap":    true,
			"opacity": 0.3,
		},
		"zoom":           1,
		"offset":         bson.M{"x": 0, "y": 0},
		"canvasSize":     bson.M{"width": 1200, "height": 800},
		"viewerMode":     "editor",
		"miniMapEnabled": false,
	}
}

// FloorPlanSummary is the listing projection: everything but the state blob,
// enriched with booth stats.
type FloorPlanSummary struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Created      time.Time  `json:"created"`
	LastModified time.Time  `json:"last_modified"`
	Version      int        `json:"version"`
	EventID      string     `json:"event_id,omitempty"`
	Floor        int        `json:"floor"`
	Layer        int        `json:"layer"`
	UserID       string     `json:"user_id,omitempty"`
	Status       string     `json:"status"`
	Stats        BoothStats `json:"stats"`
}

func (p FloorPlan) Summary(stats BoothStats) FloorPlanSummary {
	return FloorPlanSummary{
		ID:           p.ID.Hex(),
		Name:         p.Name,
		Description:  p.Description,
		Created:      p.Created,
		LastModified: p.LastModified,
		Version:      p.Version,
		EventID:      p.EventID,
		Floor:        p.Floor,
		Layer:        p.Layer,
		UserID:       p.UserID,
		Status:       p.Status,
		Stats:        stats,
	}
}

type BoothStats struct {
	TotalBooths  int     `json:"total_booths"`
	Available    int     `json:"available"`
	Reserved     int     `json:"reserved"`
	Sold         int     `json:"sold"`
	OnHold       int     `json:"on_hold"`
	TotalRevenue float64 `json:"total_revenue"`
}

func (s *BoothStats) Add(other BoothStats) {
	s.TotalBooths += other.TotalBooths
	s.Available += other.Available
	s.Reserved += other.Reserved
	s.Sold += other.Sold
	s.OnHold += other.OnHold
	s.TotalRevenue += other.TotalRevenue
}

type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Exhibitor struct {
	CompanyName string         `json:"company_name"`
	Category    string         `json:"category"`
	Contact     map[string]any `json:"contact"`
}

type BoothDetail struct {
	ID         string         `json:"id"`
	Number     string         `json:"number"`
	Status     string         `json:"status"`
	Price      float64        `json:"price"`
	Dimensions map[string]any `json:"dimensions"`
	Position   Position       `json:"position"`
	Exhibitor  *Exhibitor     `json:"exhibitor,omitempty"`
}
