package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/rental-pricing-service/internal/models/m_contract_snapshot"
	"github.com/light-bringer/rental-pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/rental-pricing-service/internal/models/m_price_list"
)

// SetupSpannerTest creates a Spanner client on a clean database and returns a cleanup function.
// Tests are skipped when no emulator is configured.
func SetupSpannerTest(t *testing.T) (*spanner.Client, func()) {
	t.Helper()

	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST not set")
	}

	client, err := spanner.NewClient(context.Background(), GetTestSpannerDB())
	require.NoError(t, err, "failed to create Spanner client")

	CleanDatabase(t, client)

	cleanup := func() {
		CleanDatabase(t, client)
		client.Close()
	}

	return client, cleanup
}

// GetTestSpannerDB returns the test database, overridable with SPANNER_TEST_DATABASE.
func GetTestSpannerDB() string {
	if db := os.Getenv("SPANNER_TEST_DATABASE"); db != "" {
		return db
	}
	return "projects/test-project/instances/test-instance/databases/rental-pricing-test"
}

// CleanDatabase empties every table. Seasons and tiers go with their price list.
func CleanDatabase(t *testing.T, client *spanner.Client) {
	t.Helper()

	_, err := client.Apply(context.Background(), []*spanner.Mutation{
		spanner.Delete(m_outbox.TableName, spanner.AllKeys()),
		spanner.Delete(m_contract_snapshot.TableName, spanner.AllKeys()),
		spanner.Delete(m_price_list.TableName, spanner.AllKeys()),
	})
	require.NoError(t, err, "failed to clean database")
}

// AssertRowCount asserts the number of rows in a table.
func AssertRowCount(t *testing.T, client *spanner.Client, table string, expectedCount int) {
	t.Helper()

	stmt := spanner.Statement{SQL: fmt.Sprintf("SELECT COUNT(*) FROM %s", table)}
	iter := client.Single().Query(context.Background(), stmt)
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to query row count")

	var count int64
	require.NoError(t, row.Columns(&count), "failed to parse count")
	require.Equal(t, int64(expectedCount), count, "unexpected row count in table %s", table)
}
