//go:build js && wasm

package main

import (
	"encoding/json"
	"log/slog"
	"os"
	"syscall/js"

	"github.com/pyotruk/artboard/internal/config"
	"github.com/pyotruk/artboard/internal/engine"
	"github.com/pyotruk/artboard/internal/viewport"
)

var eng *engine.Engine

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg, err := config.LoadEngine()
	if err != nil {
		logger.Error("load engine config", "error", err)
		cfg = config.DefaultEngine()
	}

	eng, err = engine.New(cfg, logger)
	if err != nil {
		logger.Error("create engine", "error", err)
		return
	}

	// Create the engine API object
	artboardEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	artboardEngine.Set("handleEvent", js.FuncOf(handleEvent))
	artboardEngine.Set("setLayout", js.FuncOf(setLayout))
	artboardEngine.Set("zoomIn", js.FuncOf(zoomIn))
	artboardEngine.Set("zoomOut", js.FuncOf(zoomOut))
	artboardEngine.Set("setZoomPercent", js.FuncOf(setZoomPercent))
	artboardEngine.Set("clearSurface", js.FuncOf(clearSurface))
	artboardEngine.Set("tick", js.FuncOf(tick))

	// --- Queries (frontend ← engine) ---
	artboardEngine.Set("getTransform", js.FuncOf(getTransform))
	artboardEngine.Set("getScrollbars", js.FuncOf(getScrollbars))
	artboardEngine.Set("getZoomPercent", js.FuncOf(getZoomPercent))
	artboardEngine.Set("drawCommands", js.FuncOf(drawCommands))
	artboardEngine.Set("isDrawing", js.FuncOf(isDrawing))

	// Register on global scope
	js.Global().Set("artboardEngine", artboardEngine)

	// Signal that WASM is ready
	js.Global().Set("artboardWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

// handleEvent takes one input event as JSON and tells the caller whether to
// stop propagation or prevent the default action.
func handleEvent(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing event JSON"})
	}

	res, err := eng.HandleEventJSON([]byte(args[0].String()))
	out := map[string]interface{}{
		"consumed":        res.Consumed,
		"stopPropagation": res.StopPropagation,
		"preventDefault":  res.PreventDefault,
	}
	if err != nil {
		out["error"] = err.Error()
	}
	return js.ValueOf(out)
}

func setLayout(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing layout JSON"})
	}

	var layout viewport.Layout
	if err := json.Unmarshal([]byte(args[0].String()), &layout); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	eng.SetLayout(layout)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func zoomIn(this js.Value, args []js.Value) interface{} {
	eng.ZoomIn()
	return nil
}

func zoomOut(this js.Value, args []js.Value) interface{} {
	eng.ZoomOut()
	return nil
}

func setZoomPercent(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetZoomPercent(args[0].Float())
	return nil
}

func clearSurface(this js.Value, args []js.Value) interface{} {
	eng.ClearSurface()
	return nil
}

// tick applies throttled view updates and returns the view snapshot.
// Called once per animation frame.
func tick(this js.Value, args []js.Value) interface{} {
	eng.Tick()
	return js.ValueOf(eng.SnapshotJSON())
}

// --- Query Handlers ---

func getTransform(this js.Value, args []js.Value) interface{} {
	data, _ := json.Marshal(eng.Transform())
	return js.ValueOf(string(data))
}

func getScrollbars(this js.Value, args []js.Value) interface{} {
	data, _ := json.Marshal(eng.Scrollbars())
	return js.ValueOf(string(data))
}

func getZoomPercent(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.ZoomPercent())
}

func drawCommands(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.DrawCommandsJSON())
}

func isDrawing(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Drawing())
}
