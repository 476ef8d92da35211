// Package testdb provides helpers for tests that run against a real
// PostgreSQL or MySQL database.
//
// Tests using it are built with the integration tag and skip themselves
// when no database URL is configured:
//
//	func TestSomething(t *testing.T) {
//	    if testdb.ShouldSkipDatabaseTest() {
//	        t.Skip("DATABASE_URL not set - skipping integration test")
//	    }
//	    db, dialect := testdb.SetupTestDB(t)
//	    ...
//	}
//
// SetupTestDB applies the embedded migrations and empties both tables, so
// every test starts from an empty store. Tests sharing a database must not
// run in parallel.
package testdb
