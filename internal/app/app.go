package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"

	"orderservice/internal/config"
	"orderservice/internal/httpapi"
	"orderservice/internal/order"

	"go.uber.org/zap"
)

// Application holds all the components and manages the application lifecycle
type Application struct {
	ctx       context.Context
	cancel    context.CancelFunc
	container *Container
	server    *http.Server
}

// NewApplication creates and fully initializes a new Application instance
func NewApplication(ctx context.Context) (*Application, error) {
	// Set up signal handling
	appCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, os.Kill)

	app := &Application{
		ctx:    appCtx,
		cancel: cancel,
	}

	// Initialize container (expensive singletons)
	container, err := NewContainer(app.ctx)
	if err != nil {
		cancel() // Clean up context if initialization fails
		return nil, err
	}
	app.container = container

	app.server = &http.Server{
		Addr:    container.Config().HTTPAddr,
		Handler: httpapi.NewRouter(app.buildHandler()),
	}

	app.container.Logger().Info("Application initialized successfully")
	return app, nil
}

// buildHandler wires the order workflow onto the container's infrastructure.
// The products collection serves as both catalog and inventory ledger; the
// conditional stock decrement lives in the storage layer.
func (app *Application) buildHandler() *httpapi.Handler {
	products := app.container.Products()

	coordinator := order.NewCoordinator(
		products,
		products,
		app.container.Orders(),
		app.container.Logger(),
		app.container.Tracer(),
	)
	publisher := order.NewKafkaPublisher(app.container.MessageProducer(), app.container.Logger())
	service := order.NewService(coordinator, app.container.Orders(), publisher, app.container.Logger())

	return httpapi.NewHandler(service, app.container.Logger())
}

// Run serves HTTP until the context is cancelled or the server fails
func (app *Application) Run() error {
	logger := app.container.Logger()
	logger.Info("🚀 Server starting", zap.String("addr", app.server.Addr))

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-app.ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		return app.server.Shutdown(shutdownCtx)
	}
}

// Shutdown gracefully shuts down all application components
func (app *Application) Shutdown() {
	if app.container != nil {
		app.container.Logger().Info("Starting application shutdown...")
	}

	// Cancel context
	if app.cancel != nil {
		app.cancel()
	}

	// Shutdown container
	if app.container != nil {
		app.container.Shutdown(context.Background())
	}
}
