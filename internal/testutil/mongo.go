//go:build integration

// Package testutil starts the MongoDB container shared by integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// DefaultMongoImage can be overridden with MONGO_TEST_IMAGE.
const DefaultMongoImage = "mongo:7.0"

// Mongo database names are limited to 64 bytes.
const maxDBNameLen = 56

// MongoDBContainer is a running MongoDB testcontainer.
type MongoDBContainer struct {
	Container testcontainers.Container
	URI       string
}

// SetupMongoDB starts a fresh container. Packages that run many tests
// should prefer SetupTestMainWithMongoDB and share one.
func SetupMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	image := os.Getenv("MONGO_TEST_IMAGE")
	if image == "" {
		image = DefaultMongoImage
	}

	container, err := mongodb.Run(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("start mongo container %s: %w", image, err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("mongo connection string: %w", err)
	}
	return &MongoDBContainer{Container: container, URI: uri}, nil
}

// Cleanup terminates the container.
func (m *MongoDBContainer) Cleanup(ctx context.Context) error {
	if m == nil || m.Container == nil {
		return nil
	}
	if err := m.Container.Terminate(ctx); err != nil {
		return fmt.Errorf("terminate mongo container: %w", err)
	}
	return nil
}

var shared struct {
	once      sync.Once
	mu        sync.RWMutex
	container *MongoDBContainer
	err       error
}

// GetSharedMongoDB starts the package-wide container on first use.
func GetSharedMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	shared.once.Do(func() {
		c, err := SetupMongoDB(ctx)
		shared.mu.Lock()
		shared.container, shared.err = c, err
		shared.mu.Unlock()
	})

	shared.mu.RLock()
	defer shared.mu.RUnlock()
	return shared.container, shared.err
}

// SetupTestMainWithMongoDB runs m against a shared container:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	if _, err := GetSharedMongoDB(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "mongo container: %v\n", err)
		return 1
	}

	code := m.Run()

	shared.mu.Lock()
	c := shared.container
	shared.container = nil
	shared.mu.Unlock()
	if err := c.Cleanup(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return code
}

// GetSharedContainerURI panics when the shared container was never started.
func GetSharedContainerURI() string {
	shared.mu.RLock()
	defer shared.mu.RUnlock()
	if shared.container == nil {
		panic("testutil: shared mongo container not started, call SetupTestMainWithMongoDB from TestMain")
	}
	return shared.container.URI
}

// SanitizeDBName turns a test name into a unique, valid database name.
func SanitizeDBName(testName string) string {
	var b strings.Builder
	for _, r := range testName {
		switch r {
		case '/', '\\', '.', ' ', '"', '$', '*', '<', '>', ':', '|', '?':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	name := b.String()
	if len(name) > maxDBNameLen {
		name = name[:maxDBNameLen]
	}
	return name + "_" + strconv.FormatInt(time.Now().UnixNano()%1_000_000, 10)
}
