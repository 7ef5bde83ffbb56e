// Package app wires configuration, storage, pricing and the HTTP router into
// a runnable service.
package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/quote-service/config"
	"github.com/guttosm/quote-service/internal/http"
)

// App is a fully wired quote service.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	Services *ServiceComponents

	db     *DatabaseComponents
	router *RouterComponents
}

// InitializeApp creates and wires all application dependencies. The database
// and Redis are optional; when either is unreachable the service starts
// without it.
func InitializeApp(ctx context.Context, cfg config.Config) (*App, error) {
	InitializeLogger(cfg.Log)

	db := InitializeDatabase(cfg.Database)

	services, err := InitializeServices(ctx, cfg, db)
	if err != nil {
		db.Close(ctx)
		return nil, err
	}

	routerComponents := InitializeRouter(services, db, cfg)

	return &App{
		Config:   cfg,
		Router:   http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config),
		Services: services,
		db:       db,
		router:   routerComponents,
	}, nil
}

// Run serves HTTP until ctx is cancelled or a shutdown signal arrives, then
// releases every resource.
func (a *App) Run(ctx context.Context) error {
	err := NewServer(a.Router, a.Config.Server).Run(ctx)
	a.Close()
	return err
}

// Close stops background workers, flushes request logs and disconnects from
// MongoDB and Redis.
func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.router.Stop()
	a.Services.Pricing.Stop()
	a.db.Close(ctx)
}
