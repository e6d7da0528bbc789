// Package test provides infrastructure and utilities for integration testing in DevBoard.
//
// A Suite runs the real API server (fiber, behind an httptest server) on a
// file-based SQLite database, and a real API client pointed at it.
//
// Example Usage:
//
//	func TestExample(t *testing.T) {
//	    suite := test.NewSuite(t)
//	    defer suite.Cleanup()
//
//	    // Use suite.APIClient to make requests
//	    // Use suite.ProjectRepo to seed or inspect the database
//	}
package test
