// Package testdb provides helpers for tests that need a real PostgreSQL
// database.
//
// Tests obtain a connection with GetTestDBWithT, which skips the test when
// no database URL is configured, and isolate their writes with WithTx or
// BeginTx: every change is made inside a transaction that is rolled back
// when the test finishes.
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.SetupTestDatabaseSchema(t, db)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        // use tx
//	    })
//	}
package testdb
