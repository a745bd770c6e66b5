package app

import (
	"context"
	"fmt"
	"os"

	"orderservice/internal/config"
	"orderservice/internal/platform/kafka"
	"orderservice/internal/platform/observability"
	"orderservice/internal/storage/mongostore"

	otelkafka "github.com/Trendyol/otel-kafka-konsumer"
	kafkago "github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Container holds expensive-to-create singleton resources and dependencies
type Container struct {
	config            *config.Config
	logger            observability.Logger
	tracer            observability.Tracer
	mongoClient       *mongo.Client
	products          *mongostore.Products
	orders            *mongostore.Orders
	messageProducer   kafka.Producer
	otelLogShutdown   func(context.Context) error
	otelTraceShutdown func(context.Context) error
}

// NewContainer creates and initializes all infrastructure components
func NewContainer(ctx context.Context) (*Container, error) {
	// Load configuration first
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	container := &Container{
		config: cfg,
	}

	// Initialize logger
	if err := container.setupLogger(ctx); err != nil {
		return nil, err
	}

	// Setup OpenTelemetry and Kafka
	if err := container.setupObservability(ctx); err != nil {
		return nil, err
	}

	// Connect storage
	if err := container.setupMongo(ctx); err != nil {
		return nil, err
	}

	return container, nil
}

// setupLogger initializes the logger with OpenTelemetry integration
func (c *Container) setupLogger(ctx context.Context) error {
	// Start with basic logger
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}

	c.logger = logger
	return nil
}

// setupObservability configures OpenTelemetry logging and tracing
func (c *Container) setupObservability(ctx context.Context) error {
	// Setup logging SDK
	otelLogShutdown, err := observability.SetupLoggingSDK(ctx, c.config)
	if err != nil {
		c.logger.Error("Failed to setup OpenTelemetry logging", zap.Error(err))
	}
	c.otelLogShutdown = otelLogShutdown

	// Setup tracing SDK
	tp, otelTraceShutdown, err := observability.SetupTracingSDK(ctx, c.config)
	if err != nil {
		c.logger.Error("Failed to setup OpenTelemetry tracing", zap.Error(err))
	}
	c.otelTraceShutdown = otelTraceShutdown

	// Re-initialize logger with OTel bridge
	c.reinitializeLoggerWithOTel()

	// Setup tracer
	c.tracer = otel.Tracer(config.ServiceName)

	// Setup Kafka with the TracerProvider. SetupTracingSDK registers the
	// provider globally on success, so the global is always safe to hand out.
	var tracerProvider trace.TracerProvider = otel.GetTracerProvider()
	if tp != nil {
		tracerProvider = tp
	}
	if err := c.setupKafkaWithTracer(tracerProvider); err != nil {
		return err
	}

	return nil
}

// reinitializeLoggerWithOTel creates a new logger with OpenTelemetry integration
func (c *Container) reinitializeLoggerWithOTel() {
	logProvider := global.GetLoggerProvider()
	instrumentationScopeName := "order-service.manual"
	otelZapCore := otelzap.NewCore(instrumentationScopeName,
		otelzap.WithLoggerProvider(logProvider),
	)

	consoleEncoderConfig := zap.NewProductionEncoderConfig()
	consoleEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	consoleCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(consoleEncoderConfig),
		zapcore.Lock(os.Stdout),
		zap.InfoLevel,
	)

	finalCore := zapcore.NewTee(otelZapCore, consoleCore)
	logger := zap.New(finalCore,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("service.name", config.ServiceName)),
	)

	c.logger = logger
	c.logger.Info("Logger re-initialized with OpenTelemetry bridge")
}

// setupKafkaWithTracer initializes the Kafka producer with OpenTelemetry
func (c *Container) setupKafkaWithTracer(tp trace.TracerProvider) error {
	baseWriter := &kafkago.Writer{
		Addr:         kafkago.TCP(c.config.KafkaBroker),
		Topic:        config.OrderCreatedTopic,
		Balancer:     &kafkago.LeastBytes{},
		BatchTimeout: config.BatchTimeout,
		BatchSize:    config.BatchSize,
	}

	writer, err := otelkafka.NewWriter(baseWriter,
		otelkafka.WithTracerProvider(tp),
		otelkafka.WithPropagator(propagation.TraceContext{}),
		otelkafka.WithAttributes(
			[]attribute.KeyValue{
				semconv.MessagingDestinationNameKey.String(config.OrderCreatedTopic),
				attribute.String("messaging.kafka.client_id", config.ServiceName),
			},
		),
	)
	if err != nil {
		return err
	}
	c.messageProducer = writer

	return nil
}

// setupMongo connects the document store and prepares the collections
func (c *Container) setupMongo(ctx context.Context) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.config.MongoURI))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(config.DatabaseName)
	c.mongoClient = client
	c.products = mongostore.NewProducts(db)
	c.orders = mongostore.NewOrders(db)

	c.logger.Info("✅ MongoDB connected successfully")
	return nil
}

// Shutdown gracefully shuts down all infrastructure components
func (c *Container) Shutdown(ctx context.Context) {
	c.logger.Info("Shutting down infrastructure...")

	if c.messageProducer != nil {
		if err := c.messageProducer.Close(); err != nil {
			c.logger.Error("Failed to close message producer", zap.Error(err))
		}
	}

	if c.mongoClient != nil {
		if err := c.mongoClient.Disconnect(ctx); err != nil {
			c.logger.Error("Failed to disconnect MongoDB", zap.Error(err))
		}
	}

	// Shutdown OpenTelemetry
	if c.otelTraceShutdown != nil {
		if err := c.otelTraceShutdown(ctx); err != nil {
			c.logger.Error("Failed to shutdown OTel tracing", zap.Error(err))
		}
	}

	if c.otelLogShutdown != nil {
		if err := c.otelLogShutdown(ctx); err != nil {
			c.logger.Error("Failed to shutdown OTel logging", zap.Error(err))
		}
	}

	// Sync logger
	if err := c.logger.Sync(); err != nil {
		// Can't log this error since logger might be closed
		fmt.Printf("Failed to sync logger: %v\n", err)
	}
}

// Getters for accessing infrastructure components
func (c *Container) Config() *config.Config           { return c.config }
func (c *Container) Logger() observability.Logger     { return c.logger }
func (c *Container) Tracer() observability.Tracer     { return c.tracer }
func (c *Container) Products() *mongostore.Products   { return c.products }
func (c *Container) Orders() *mongostore.Orders       { return c.orders }
func (c *Container) MessageProducer() kafka.Producer  { return c.messageProducer }
