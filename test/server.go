package test

import (
	"net/http/httptest"
	"time"

	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/celestiaorg/intakeflow/internal/api/v1/client"
	"github.com/celestiaorg/intakeflow/internal/app"
)

// Write key used by the test server
const (
	TestAPIKey       = "test-api-key"
	TestAPIKeyHeader = "x-api-key"
)

// testClientTimeout is the timeout for test API client requests
const testClientTimeout = 5 * time.Second

// SetupServer configures the test suite with a real API server
func SetupServer(suite *Suite) {
	suite.App = app.NewApp(suite.DB, app.Options{
		APIKey:       TestAPIKey,
		APIKeyHeader: TestAPIKeyHeader,
	})

	// Create test server using adaptor to convert Fiber app to http.Handler
	suite.Server = httptest.NewServer(adaptor.FiberApp(suite.App))

	// Create API client with test configuration
	suite.APIClient = suite.newClient(TestAPIKey)

	// Update cleanup to close server
	originalCleanup := suite.cleanup
	suite.cleanup = func() {
		if suite.Server != nil {
			suite.Server.Close()
		}
		if originalCleanup != nil {
			originalCleanup()
		}
	}
}

// ClientWithKey returns a client that sends key on writes, or no key when it is empty
func (s *Suite) ClientWithKey(key string) client.Client {
	return s.newClient(key)
}

func (s *Suite) newClient(key string) client.Client {
	c, err := client.NewClient(&client.Options{
		BaseURL:      s.Server.URL,
		Timeout:      testClientTimeout,
		APIKey:       key,
		APIKeyHeader: TestAPIKeyHeader,
	})
	s.Require().NoError(err, "Failed to create API client")
	return c
}
