// Package main is the entry point for the quote-service application.
//
// @title           Quote Service API
// @version         1.0.0
// @description     Pricing engine for custom packaging orders.
//
//	Prices a package design at one quantity with a full cost breakdown, compares
//	unit prices across quantities and shares comparisons by link.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/quote-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 Admin API key. Required on /api/admin when authentication is enabled.
//
// @securityDefinitions.apikey  ShareToken
// @in                          header
// @name                        X-Share-Token
// @description                 Token returned by the unlock endpoint of a password-protected share.
//
// @tag.name        Quotes
// @tag.description Single quotes, validation and the active cost model
//
// @tag.name        Comparisons
// @tag.description Multi-quantity comparisons and XLSX export
//
// @tag.name        Shares
// @tag.description Shareable comparison links
//
// @tag.name        Admin
// @tag.description Cost model versions, cache and request logs
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"os"

	_ "github.com/guttosm/quote-service/docs" // swagger docs

	"github.com/guttosm/quote-service/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
