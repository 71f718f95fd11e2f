package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/rental-pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/logger"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/query"
)

// retentionRule removes events of one status once they are older than the cutoff.
type retentionRule struct {
	status string
	cutoff time.Time
}

func main() {
	var (
		spannerDB          = flag.String("database", os.Getenv("SPANNER_DATABASE"), "Spanner database (projects/P/instances/I/databases/D)")
		completedRetention = flag.Int("completed-retention", 30, "Retention days for completed events")
		failedRetention    = flag.Int("failed-retention", 90, "Retention days for failed events")
		dryRun             = flag.Bool("dry-run", false, "Count what would be deleted without deleting")
		logLevel           = flag.String("log-level", "info", "Log level")
	)
	flag.Parse()
	logger.Initialize(*logLevel, "text")

	if *spannerDB == "" {
		logger.Error("outbox_cleanup.missing_database", "hint", "pass -database or set SPANNER_DATABASE")
		os.Exit(2)
	}

	now := time.Now().UTC()
	rules := []retentionRule{
		{status: m_outbox.StatusCompleted, cutoff: now.AddDate(0, 0, -*completedRetention)},
		{status: m_outbox.StatusFailed, cutoff: now.AddDate(0, 0, -*failedRetention)},
	}

	if err := run(context.Background(), *spannerDB, rules, *dryRun); err != nil {
		logger.Error("outbox_cleanup.failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, db string, rules []retentionRule, dryRun bool) error {
	client, err := spanner.NewClient(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	var total int64
	for _, rule := range rules {
		var n int64
		if dryRun {
			n, err = countExpired(ctx, client.Single(), rule)
		} else {
			n, err = deleteExpired(ctx, client, rule)
		}
		if err != nil {
			return err
		}
		logger.Info("outbox_cleanup.rule_done",
			"status", rule.status,
			"cutoff", rule.cutoff.Format(time.RFC3339),
			"events", n,
			"dry_run", dryRun,
		)
		total += n
	}

	logger.Info("outbox_cleanup.completed", "events", total, "dry_run", dryRun)
	return nil
}

func expiredQuery(rule retentionRule) *query.Builder {
	return query.From(m_outbox.TableName).
		Where(query.Eq(m_outbox.Status, rule.status)).
		Where(query.Lt(m_outbox.ProcessedAt, rule.cutoff))
}

func deleteStatement(rule retentionRule) spanner.Statement {
	return spanner.Statement{
		SQL: fmt.Sprintf("DELETE FROM %s WHERE %s = @status AND %s < @cutoff",
			m_outbox.TableName, m_outbox.Status, m_outbox.ProcessedAt),
		Params: map[string]interface{}{
			"status": rule.status,
			"cutoff": rule.cutoff,
		},
	}
}

type queryRunner interface {
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

func countExpired(ctx context.Context, txn queryRunner, rule retentionRule) (int64, error) {
	iter := txn.Query(ctx, expiredQuery(rule).Count().Build())
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to count %s events: %w", rule.status, err)
	}
	var count int64
	if err := row.Columns(&count); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}
	return count, nil
}

func deleteExpired(ctx context.Context, client *spanner.Client, rule retentionRule) (int64, error) {
	var deleted int64
	_, err := client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		count, err := countExpired(ctx, txn, rule)
		if err != nil || count == 0 {
			deleted = 0
			return err
		}
		deleted, err = txn.Update(ctx, deleteStatement(rule))
		if err != nil {
			return fmt.Errorf("failed to delete %s events: %w", rule.status, err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("cleanup transaction failed: %w", err)
	}
	return deleted, nil
}
