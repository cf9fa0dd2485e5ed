//go:build js && wasm

// Command wasm exposes the race engine to the browser via WebAssembly.
// After loading, it registers a global JavaScript function:
//
//	runSimulation(jsonString[, logLevel]) -> jsonString
//
// The input and output are JSON-encoded SimulationInput and SimulationLog
// respectively, matching the contract of `racedemo sim`. Engine logs go to the
// browser console as JSON lines at logLevel (default "warn").
package main

import (
	"strings"
	"syscall/js"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cxd309/race-engine/internal/engine"
)

func main() {
	js.Global().Set("runSimulation", js.FuncOf(runSimulation))
	select {} // keep the WASM module alive until the page is closed
}

func runSimulation(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return map[string]any{"error": "no input provided"}
	}

	level := "warn"
	if len(args) > 1 && args[1].Type() == js.TypeString {
		level = args[1].String()
	}
	logger, err := consoleLogger(level)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	defer func() { _ = logger.Sync() }()

	result, err := engine.RunJSON(args[0].String(), engine.WithLogger(logger))
	if err != nil {
		logger.Error("simulation failed", zap.Error(err))
		return map[string]any{"error": err.Error()}
	}
	return result
}

// consoleWriter forwards each encoded log entry to console.log.
type consoleWriter struct{}

func (consoleWriter) Write(p []byte) (int, error) {
	js.Global().Get("console").Call("log", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func consoleLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(consoleWriter{}),
		lvl,
	)
	return zap.New(core), nil
}
