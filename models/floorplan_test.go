package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestDefaultCanvasState(t *testing.T) {
	state := DefaultCanvasState()

	elements, ok := state["elements"].(bson.A)
	if !ok || len(elements) != 0 {
		t.Fatalf("elements = %v, want empty list", state["elements"])
	}

	grid, ok := state["grid"].(bson.M)
	if !ok {
		t.Fatalf("grid = %v", state["grid"])
	}
	if grid["enabled"] != true || grid["size"] != 20 || grid["snap"] != true || grid["opacity"] != 0.3 {
		t.Errorf("grid defaults wrong: %v", grid)
	}

	size, ok := state["canvasSize"].(bson.M)
	if !ok || size["width"] != 1200 || size["height"] != 800 {
		t.Errorf("canvasSize = %v, want 1200x800", state["canvasSize"])
	}

	if state["zoom"] != 1 {
		t.Errorf("zoom = %v, want 1", state["zoom"])
	}
	if state["activeTool"] != "select" || state["viewerMode"] != "editor" {
		t.Errorf("tool/viewer defaults wrong: %v / %v", state["activeTool"], state["viewerMode"])
	}
	if state["miniMapEnabled"] != false {
		t.Errorf("miniMapEnabled = %v, want false", state["miniMapEnabled"])
	}
}
