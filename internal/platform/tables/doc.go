// Package tables implements store.TaskStore on Azure Table Storage.
//
// Every task is an entity in a single partition of one table: the RowKey is
// the task ID and the Text property holds the task text. The table is
// created on the first successful connection.
package tables
