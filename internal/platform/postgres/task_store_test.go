//go:build integration

package postgres_test

import (
	"testing"

	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/platform/postgres"
	"github.com/phrazzld/taskboard/internal/store"
	"github.com/phrazzld/taskboard/internal/store/storetest"
	"github.com/phrazzld/taskboard/internal/testdb"
)

func TestPostgresTaskStoreContract(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	testdb.SetupTestDatabaseSchema(t, db)

	storetest.RunTaskStoreContract(t, func(t *testing.T) store.TaskStore {
		tx := testdb.BeginTx(t, db)
		testLogger, _ := logger.GetTestLogger(t)
		return postgres.NewPostgresTaskStore(tx, store.EstablishedConnection(postgres.StoreName), testLogger)
	})
}
