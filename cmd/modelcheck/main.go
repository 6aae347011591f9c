// Command modelcheck loads the configured model artifact and reports what it
// can do: feature order, probability support and predictions for reference rows.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Skufu/cardiocare/internal/cardio"
	"github.com/Skufu/cardiocare/internal/config"
	"github.com/Skufu/cardiocare/internal/logger"
	"github.com/Skufu/cardiocare/internal/predictor"
)

type sample struct {
	name     string
	features []float64
}

// Rows taken from the cleaned cardio dataset; both are labelled positive.
var samples = []sample{
	{"zero vector", make([]float64, cardio.FeatureCount)},
	{"row 3 (id 1) high cholesterol and BP", []float64{1, 156, 85, 140, 90, 3, 1, 0, 0, 1, 55}},
	{"row 5 (id 3) high BP", []float64{2, 169, 82, 150, 100, 1, 1, 0, 0, 1, 48}},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, "console", "modelcheck")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	path := cfg.ModelPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	if err := run(log, path); err != nil {
		log.Error("model check failed", zap.String("path", path), zap.Error(err))
		os.Exit(1)
	}
}

func run(log *zap.Logger, path string) error {
	loaded, err := predictor.Load(path)
	if err != nil {
		return err
	}
	svc := predictor.NewService(loaded.Model)

	log.Info("model loaded",
		zap.String("format", loaded.Format),
		zap.String("kind", loaded.Kind),
		zap.Strings("features", loaded.Features),
		zap.Bool("probability", svc.SupportsProbability()),
	)
	if !svc.SupportsProbability() {
		log.Warn("model does not report probabilities; responses will show 0%")
	}

	for _, s := range samples {
		pred, err := svc.Assess(s.features)
		if err != nil {
			log.Error("prediction failed", zap.String("sample", s.name), zap.Error(err))
			continue
		}
		log.Info("prediction",
			zap.String("sample", s.name),
			zap.Int("label", pred.Label),
			zap.Float64("risk_pct", pred.Probability),
		)
	}
	return nil
}
