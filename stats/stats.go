// Package stats derives booth statistics from a floor plan's canvas state.
// Everything here is pure: the state blob is never mutated and every nested
// lookup tolerates missing or partially-typed fields, whether the state came
// from a JSON request body or a BSON document.
package stats

import (
	"fmt"

	"expofloor/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CalculateBoothStats aggregates counts and revenue over the booth elements of
// a canvas state. A booth with no status counts as available. Revenue is the
// sum of prices over reserved and sold booths.
func CalculateBoothStats(state bson.M) models.BoothStats {
	var out models.BoothStats
	for _, booth := range booths(state) {
		out.TotalBooths++
		price := asFloat(booth["price"])
		switch boothStatus(booth) {
		case models.BoothReserved:
			out.Reserved++
			out.TotalRevenue += price
		case models.BoothSold:
			out.Sold++
			out.TotalRevenue += price
		case models.BoothOnHold:
			out.OnHold++
		default:
			out.Available++
		}
	}
	return out
}

// BoothDetails projects each booth element to a normalized record, in the
// order the elements appear in the state.
func BoothDetails(state bson.M) []models.BoothDetail {
	details := []models.BoothDetail{}
	for _, booth := range booths(state) {
		d := models.BoothDetail{
			ID:         asString(booth["id"]),
			Number:     "N/A",
			Status:     boothStatus(booth),
			Price:      asFloat(booth["price"]),
			Dimensions: asMap(booth["dimensions"]),
			Position: models.Position{
				X:      asFloat(booth["x"]),
				Y:      asFloat(booth["y"]),
				Width:  asFloat(booth["width"]),
				Height: asFloat(booth["height"]),
			},
		}
		if n := asString(booth["number"]); n != "" {
			d.Number = n
		}
		if d.Dimensions == nil {
			d.Dimensions = map[string]any{}
		}
		if ex := asMap(booth["exhibitor"]); len(ex) > 0 {
			contact := asMap(ex["contact"])
			if contact == nil {
				contact = map[string]any{}
			}
			d.Exhibitor = &models.Exhibitor{
				CompanyName: asString(ex["companyName"]),
				Category:    asString(ex["category"]),
				Contact:     contact,
			}
		}
		details = append(details, d)
	}
	return details
}

// ValidateState rejects canvas states carrying booth elements with a status
// outside the known enum. Absent statuses are fine (they read as available);
// anything else would silently skew the aggregates, so writes refuse it.
func ValidateState(state bson.M) error {
	for i, booth := range booths(state) {
		raw, ok := booth["status"]
		if !ok || raw == nil {
			continue
		}
		s := asString(raw)
		if !models.ValidBoothStatus(s) {
			return fmt.Errorf("booth %d has invalid status %q", i, s)
		}
	}
	return nil
}

// booths returns the booth elements of a state, preserving order. Non-booth
// elements (text, shapes, anything unknown) are passed over untouched.
func booths(state bson.M) []map[string]any {
	var out []map[string]any
	for _, el := range asSlice(state["elements"]) {
		m := asMap(el)
		if m == nil {
			continue
		}
		if asString(m["type"]) == "booth" {
			out = append(out, m)
		}
	}
	return out
}

func boothStatus(booth map[string]any) string {
	s := asString(booth["status"])
	if s == "" {
		return models.BoothAvailable
	}
	return s
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asFloat coerces the numeric shapes JSON and BSON decoding produce.
func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func asMap(v any) map[string]any {
	switch m := v.(type) {
	case bson.M:
		return m
	case map[string]any:
		return m
	case bson.D:
		return m.Map()
	}
	return nil
}

func asSlice(v any) []any {
	switch s := v.(type) {
	case primitive.A:
		return s
	case []any:
		return s
	case []bson.M:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out
	}
	return nil
}
