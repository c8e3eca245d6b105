package ingestor

import (
	"net/http"

	"github.com/shardeum/explorerx/app/ingestor/controller"
	"github.com/shardeum/explorerx/app/ingestor/types"
	"github.com/shardeum/explorerx/pkg/utils"
	"go.uber.org/zap"
)

// NewServer creates and returns a new Server instance for the ingest API.
func NewServer(app *types.App) error {
	ctler := controller.NewController(app)
	router, err := ctler.NewRouter()
	if err != nil {
		return err
	}

	// use <ip>:<port> to bind to a specific interface or :<port> to bind to all interfaces
	addr := utils.Env("ADDR", ":3002")

	app.Server = &http.Server{Addr: addr, Handler: controller.WithCORS(router)}
	app.Logger.Info("Starting server", zap.String("addr", addr))

	return nil
}
