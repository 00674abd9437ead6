// Package postgres implements store.TaskStore on PostgreSQL.
//
// The database is reached through database/sql with the pgx stdlib driver.
// Open never blocks: it hands a ping-and-bootstrap dial to store.Connect and
// every TaskStore method waits on the resulting connection. The tasks table
// is created from an embedded goose migration on the first successful dial.
package postgres
