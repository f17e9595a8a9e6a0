//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

var (
	sharedOnce      sync.Once
	sharedContainer *MongoDBContainer
	sharedErr       error
)

// GetSharedMongoDB starts the package-wide container on first use.
func GetSharedMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	sharedOnce.Do(func() {
		sharedContainer, sharedErr = SetupMongoDB(ctx)
	})
	return sharedContainer, sharedErr
}

// SetupTestMainWithMongoDB runs m against a shared container and tears it
// down afterwards. Use it from TestMain:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	container, err := GetSharedMongoDB(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mongodb container: %v\n", err)
		return 1
	}

	code := m.Run()

	if err := container.Cleanup(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return code
}

// GetSharedContainerURI returns the shared container's URI. It panics when
// GetSharedMongoDB has not succeeded.
func GetSharedContainerURI() string {
	if sharedContainer == nil {
		panic("testutil: shared mongodb container not started")
	}
	return sharedContainer.URI
}

// SanitizeDBName turns a test name into a unique database name. MongoDB caps
// names at 63 bytes and rejects separators and dots.
func SanitizeDBName(testName string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '.', ' ', '"', '$':
			return '_'
		}
		return r
	}, testName)
	if len(name) > 50 {
		name = name[:50]
	}
	return fmt.Sprintf("%s_%d", name, time.Now().UnixNano()%1000000)
}
