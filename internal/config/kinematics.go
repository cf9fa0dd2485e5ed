package config

import (
	"fmt"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cxd309/race-engine/internal/kinematics"
)

// KinematicsKey is the config file section holding arcade model tuning, e.g.
//
//	kinematics:
//	  accel: 0.03
//	  max_speed: 0.5
const KinematicsKey = "kinematics"

// Arcade overlays the kinematics section of v onto base. Keys use the same
// names as scenario files. A missing section returns base unchanged.
func Arcade(v *viper.Viper, base kinematics.Arcade) (kinematics.Arcade, error) {
	if !v.IsSet(KinematicsKey) {
		return base, nil
	}
	out := base
	err := v.UnmarshalKey(KinematicsKey, &out, func(c *mapstructure.DecoderConfig) {
		c.TagName = "yaml"
		c.ErrorUnused = true
	})
	if err != nil {
		return base, fmt.Errorf("decoding %s: %w", KinematicsKey, err)
	}
	if err := out.Validate(); err != nil {
		return base, fmt.Errorf("invalid %s: %w", KinematicsKey, err)
	}
	return out, nil
}

// ModelWatcher reloads the arcade tuning when the config file changes. The
// new model is parked until the frame loop calls Take, so a swap only ever
// happens between frames.
type ModelWatcher struct {
	v       *viper.Viper
	base    kinematics.Arcade
	logger  *zap.Logger
	pending atomic.Pointer[kinematics.Arcade]
}

// NewModelWatcher returns a watcher overlaying changes onto base.
func NewModelWatcher(v *viper.Viper, base kinematics.Arcade, logger *zap.Logger) *ModelWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModelWatcher{v: v, base: base, logger: logger}
}

// Start registers for config file change notifications. viper must already
// have a config file.
func (w *ModelWatcher) Start() {
	w.v.OnConfigChange(w.handle)
	w.v.WatchConfig()
}

// Take returns the most recently reloaded model, if any, and clears it.
func (w *ModelWatcher) Take() (kinematics.MotionModel, bool) {
	a := w.pending.Swap(nil)
	if a == nil {
		return nil, false
	}
	return *a, true
}

func (w *ModelWatcher) handle(e fsnotify.Event) {
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
		return
	}
	a, err := Arcade(w.v, w.base)
	if err != nil {
		w.logger.Error("ignoring config change", zap.String("file", e.Name), zap.Error(err))
		return
	}
	w.logger.Info("config changed", zap.String("file", e.Name),
		zap.Float64("accel", a.Accel), zap.Float64("max_speed", a.MaxSpeedVal))
	w.pending.Store(&a)
}
