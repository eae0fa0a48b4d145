// Package test provides infrastructure for end-to-end testing of IntakeFlow.
//
// A Suite runs the real fiber application behind an httptest server, backed
// by a temporary SQLite database, and exposes a real API client pointed at it:
//
//	func TestExample(t *testing.T) {
//	    suite := test.NewSuite(t)
//	    defer suite.Cleanup()
//
//	    projects, err := suite.APIClient.ListProjects(suite.Context())
//	    ...
//	}
//
// ClientWithKey returns a client sending a different write key (or none),
// for checking the write gate.
package test
