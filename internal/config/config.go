package config

import (
	"fmt"
	"os"
	"time"
)

const (
	ServiceName    = "order-service"
	ServiceVersion = "0.1.0"
)

const (
	OrderCreatedTopic = "OrderCreated"
	BatchTimeout      = 10 * time.Millisecond
	BatchSize         = 100
)

const (
	DatabaseName       = "ecommerce"
	ProductsCollection = "products"
	OrdersCollection   = "orders"
)

const (
	LogsPath      = "/otlp/v1/logs"   // Grafana Cloud OTLP path
	TracesPath    = "/otlp/v1/traces" // Grafana Cloud OTLP path
	ExportTimeout = 30 * time.Second
	MaxQueueSize  = 2048
)

const (
	DefaultHTTPAddr = ":3000"
	ShutdownTimeout = 15 * time.Second
)

type Config struct {
	HTTPAddr       string
	MongoURI       string
	KafkaBroker    string
	OtelEndpoint   string
	OtelAuthHeader string
}

func LoadConfig() (*Config, error) {
	config := &Config{
		HTTPAddr:       os.Getenv("HTTP_ADDR"),
		MongoURI:       os.Getenv("MONGO_URI"),
		KafkaBroker:    os.Getenv("KAFKA_BROKER"),
		OtelEndpoint:   os.Getenv("OTEL_ENDPOINT"),
		OtelAuthHeader: os.Getenv("OTEL_AUTH_HEADER"),
	}

	if config.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI environment variable is required")
	}
	if config.KafkaBroker == "" {
		return nil, fmt.Errorf("KAFKA_BROKER environment variable is required")
	}
	if config.HTTPAddr == "" {
		config.HTTPAddr = DefaultHTTPAddr
	}

	return config, nil
}
