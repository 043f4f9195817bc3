// Package app wires the pipeline together: config, store, cache, bus,
// background loops, and the HTTP surface.
package app

import (
	"context"
	"strings"
	"sync"

	"match-highlights/internal/brokers"
	"match-highlights/internal/brokers/kafka"
	"match-highlights/internal/cache"
	"match-highlights/internal/common/logging"
	"match-highlights/internal/config"
	"match-highlights/internal/enrich"
	"match-highlights/internal/events"
	"match-highlights/internal/ingest"
	"match-highlights/internal/storage"
	"match-highlights/internal/storage/factory"
)

// App holds all the application dependencies
type App struct {
	Config    *config.Config
	Store     storage.Store
	Cache     cache.HighlightCache
	Publisher events.Publisher
	Producer  brokers.Producer
	Logger    logging.Logger

	consumer    *ingest.Consumer
	rawConsumer brokers.Consumer
	worker      *enrich.Worker

	cancelLoops context.CancelFunc
	loopsDone   sync.WaitGroup
}

// New creates a new application instance with all dependencies
func New(cfg *config.Config) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logging.GetGlobalLogger().WithFields(logging.Field{Key: "component", Value: "app"}),
	}

	store, err := factory.NewStore(cfg)
	if err != nil {
		return nil, err
	}
	app.Store = store

	highlightCache, err := cache.NewHighlightCache(cfg, app.Logger)
	if err != nil {
		store.Close()
		return nil, err
	}
	app.Cache = highlightCache

	if err := app.initializeBus(); err != nil {
		app.Cleanup()
		return nil, err
	}

	enricher := enrich.NewEnricher(cfg, app.Logger)
	app.worker = enrich.NewWorker(store, enricher, cfg.WorkerPollInterval, cfg.WorkerBatchSize, app.Logger)

	return app, nil
}

// initializeBus sets up the producer side (publisher) and the consumer
// side (ingestion loop). With Kafka disabled, events are logged instead of
// published and no ingestion loop runs.
func (app *App) initializeBus() error {
	if !app.Config.KafkaEnabled {
		app.Logger.Info("Kafka disabled, events will be logged only")
		app.Publisher = events.NewLoggingPublisher(app.Logger)
		return nil
	}

	kafkaConfig := &kafka.Config{
		Brokers:          strings.Split(app.Config.KafkaBrokers, ","),
		GroupID:          app.Config.ConsumerGroupID,
		SecurityProtocol: app.Config.KafkaSecurityProtocol,
		SASLMechanism:    app.Config.KafkaSASLMechanism,
		SASLUsername:     app.Config.KafkaSASLUsername,
		SASLPassword:     app.Config.KafkaSASLPassword,
	}

	producer, err := kafka.NewProducer(kafkaConfig)
	if err != nil {
		return err
	}
	app.Producer = producer
	app.Publisher = events.NewBrokerPublisher(producer, app.Config.MatchEventsTopic, app.Logger)

	consumer, err := kafka.NewConsumer(kafkaConfig, app.Config.MatchEventsTopic)
	if err != nil {
		return err
	}
	app.rawConsumer = consumer
	app.consumer = ingest.NewConsumer(consumer, app.Store, app.Config.ConsumerBackoff, app.Logger)

	return nil
}

// StartLoops launches the ingestion consumer and the enrichment worker.
func (app *App) StartLoops() {
	ctx, cancel := context.WithCancel(context.Background())
	app.cancelLoops = cancel

	if app.consumer != nil {
		app.loopsDone.Add(1)
		go func() {
			defer app.loopsDone.Done()
			app.consumer.Run(ctx)
		}()
	}

	app.loopsDone.Add(1)
	go func() {
		defer app.loopsDone.Done()
		app.worker.Run(ctx)
	}()
}

// StopLoops cancels both background loops and waits for them to drain.
func (app *App) StopLoops() {
	if app.cancelLoops != nil {
		app.cancelLoops()
	}
	app.loopsDone.Wait()
}

// Cleanup releases all resources
func (app *App) Cleanup() {
	if app.rawConsumer != nil {
		app.rawConsumer.Close()
	}
	if app.Producer != nil {
		app.Producer.Close()
	}
	if app.Cache != nil {
		app.Cache.Close()
	}
	if app.Store != nil {
		app.Store.Close()
	}
}
