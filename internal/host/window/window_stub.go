//go:build !cgo

package window

import (
	"errors"

	"go.uber.org/zap"

	"github.com/cxd309/race-engine/internal/engine"
	"github.com/cxd309/race-engine/internal/input"
	"github.com/cxd309/race-engine/internal/kinematics"
)

type ModelSource interface {
	Take() (kinematics.MotionModel, bool)
}

type Config struct {
	Title         string
	Width, Height int
	Keys          input.KeyMap
	Models        ModelSource
	Logger        *zap.Logger
}

func Run(_ *engine.Race, _ Config) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
