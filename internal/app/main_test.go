//go:build integration

package app

import (
	"context"
	"os"
	"testing"

	"github.com/guttosm/quote-service/config"
	"github.com/guttosm/quote-service/internal/testutil"
)

func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}

// mongoConfig points testConfig at a database private to t.
func mongoConfig(t *testing.T) config.Config {
	cfg := testConfig()
	cfg.Database.Enabled = true
	cfg.Database.URI = testutil.GetSharedContainerURI()
	cfg.Database.DatabaseName = testutil.SanitizeDBName(t.Name())
	return cfg
}
