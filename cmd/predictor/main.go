package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/coinsight/predictor/internal/adapters/clickhouse"
	"github.com/coinsight/predictor/internal/adapters/config"
	"github.com/coinsight/predictor/internal/adapters/database"
	"github.com/coinsight/predictor/internal/adapters/telegram"
	"github.com/coinsight/predictor/internal/export"
	"github.com/coinsight/predictor/internal/history"
	"github.com/coinsight/predictor/internal/loader"
	"github.com/coinsight/predictor/internal/marketstats"
	"github.com/coinsight/predictor/internal/pipeline"
	"github.com/coinsight/predictor/internal/predict"
	"github.com/coinsight/predictor/internal/sentiment"
	"github.com/coinsight/predictor/pkg/logger"
	"github.com/coinsight/predictor/pkg/worker"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("prediction pipeline starting",
		zap.String("asset", cfg.Pipeline.Asset),
		zap.Int("recent_days", cfg.Pipeline.RecentDays),
		zap.Int("time_steps", cfg.Pipeline.TimeSteps),
	)

	// Scaler and model are loaded once and read-only from here on
	scaler, err := predict.LoadMinMaxScaler(cfg.Model.ScalerFile)
	if err != nil {
		return fmt.Errorf("failed to load scaler: %w", err)
	}
	scorer, err := predict.LoadLinearScorer(cfg.Model.WeightsFile)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}

	classifier := sentiment.NewClassifier()
	pipe := pipeline.New(classifier, predict.NewPredictor(scaler, scorer))

	runner := &pipelineRunner{
		cfg:      cfg,
		pipe:     pipe,
		exporter: export.NewExporter(),
	}

	if cfg.Database.Enabled {
		db, err := database.New(&cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.RunMigrations(db.Conn(), cfg.Database.MigrationsPath); err != nil {
			return err
		}
		runner.history = history.NewRepository(db.DB())
	}

	if cfg.ClickHouse.Enabled {
		archive, err := clickhouse.New(cfg.ClickHouse.DSN)
		if err != nil {
			return err
		}
		defer archive.Close()
		runner.archive = archive
	}

	if cfg.Telegram.BotToken != "" {
		notifier, err := telegram.NewNotifier(&cfg.Telegram)
		if err != nil {
			logger.Error("failed to create telegram notifier", zap.Error(err))
		} else {
			runner.notifier = notifier
		}
	}

	if cfg.Pipeline.Interval > 0 {
		periodic := worker.NewPeriodicWorker(runner, cfg.Pipeline.Interval)
		periodic.Start(ctx)
		<-ctx.Done()
		periodic.Stop(cfg.Pipeline.Interval)
		return nil
	}

	return runner.Run(ctx)
}

// pipelineRunner loads the collaborator batches, runs one pipeline pass and
// handles the configured side outputs.
type pipelineRunner struct {
	cfg      *config.Config
	pipe     *pipeline.Pipeline
	exporter *export.Exporter
	history  *history.Repository
	archive  *clickhouse.Repository
	notifier *telegram.Notifier
}

func (r *pipelineRunner) Name() string {
	return "prediction_pipeline"
}

func (r *pipelineRunner) Run(ctx context.Context) error {
	posts, err := loader.LoadPosts(r.cfg.Input.PostsFile)
	if err != nil {
		return err
	}
	ticks, err := loader.LoadTicks(r.cfg.Input.TicksFile)
	if err != nil {
		return err
	}

	result, err := r.pipe.Run(ctx, posts, ticks, pipeline.Options{
		RecentDays:   r.cfg.Pipeline.RecentDays,
		TimeSteps:    r.cfg.Pipeline.TimeSteps,
		FeatureOrder: r.cfg.Model.FeatureOrder,
	})
	if err != nil {
		return err
	}

	if stats, err := marketstats.Summarize(ticks); err == nil {
		logger.Info("market statistics",
			zap.Float64("latest", stats.Latest),
			zap.Float64("high", stats.High),
			zap.Float64("low", stats.Low),
			zap.Float64("volatility", stats.Volatility),
			zap.Float64("change_pct", stats.ChangePct),
		)
	}

	if r.archive != nil {
		if err := r.archive.ArchiveTicks(ctx, r.cfg.Pipeline.Asset, ticks); err != nil {
			logger.Error("tick archival failed", zap.Error(err))
		}
	}

	payload, err := json.Marshal(result.Prediction)
	if err != nil {
		return fmt.Errorf("failed to encode prediction: %w", err)
	}
	fmt.Println(string(payload))

	r.sideOutputs(ctx, result)

	return nil
}

// sideOutputs handles export, archival, history and alerting. Failures here
// are logged, not fatal: the prediction itself already went out.
func (r *pipelineRunner) sideOutputs(ctx context.Context, result *pipeline.Result) {
	asset := r.cfg.Pipeline.Asset
	features := result.Features

	if r.cfg.Export.Enabled {
		if err := r.exporter.ExportRedditDaily(result.RedditDaily, r.cfg.Export.RedditFile); err != nil {
			logger.Error("reddit export failed", zap.Error(err))
		}
		if err := r.exporter.ExportPriceDaily(result.PriceDaily, r.cfg.Export.PriceFile); err != nil {
			logger.Error("price export failed", zap.Error(err))
		}
		if err := r.exporter.ExportFeatures(features, r.cfg.Export.FeatureFile); err != nil {
			logger.Error("feature export failed", zap.Error(err))
		}
	}

	if r.archive != nil {
		if err := r.archive.ArchiveFeatureRows(ctx, asset, features); err != nil {
			logger.Error("feature archival failed", zap.Error(err))
		}
	}

	if r.history != nil {
		if err := r.history.RecordRun(ctx, asset, result.Prediction, features); err != nil {
			logger.Error("history recording failed", zap.Error(err))
		}
	}

	if r.notifier != nil {
		from := features[0].Day
		to := features[len(features)-1].Day
		if err := r.notifier.SendPredictionAlert(asset, result.Prediction, from, to); err != nil {
			logger.Error("telegram alert failed", zap.Error(err))
		}
	}
}
