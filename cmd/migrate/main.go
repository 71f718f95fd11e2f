package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/rental-pricing-service/internal/pkg/logger"
)

type migrator struct {
	project    string
	instance   string
	database   string
	dir        string
	onEmulator bool
}

func (m *migrator) instancePath() string {
	return fmt.Sprintf("projects/%s/instances/%s", m.project, m.instance)
}

func (m *migrator) databasePath() string {
	return m.instancePath() + "/databases/" + m.database
}

func main() {
	m := &migrator{onEmulator: os.Getenv("SPANNER_EMULATOR_HOST") != ""}
	flag.StringVar(&m.project, "project", envOr("SPANNER_PROJECT_ID", "test-project"), "GCP project ID")
	flag.StringVar(&m.instance, "instance", envOr("SPANNER_INSTANCE_ID", "dev-instance"), "Spanner instance ID")
	flag.StringVar(&m.database, "database", envOr("SPANNER_DATABASE_ID", "rental-pricing-db"), "Spanner database ID")
	flag.StringVar(&m.dir, "migrations", "migrations", "Directory containing migration SQL files")
	flag.Parse()
	logger.Initialize(envOr("LOG_LEVEL", "info"), "text")

	if m.onEmulator {
		logger.Info("migrate.using_emulator", "host", os.Getenv("SPANNER_EMULATOR_HOST"))
	}

	if err := m.run(context.Background()); err != nil {
		logger.Error("migrate.failed", "error", err)
		os.Exit(1)
	}
	logger.Info("migrate.completed", "database", m.databasePath())
}

func (m *migrator) run(ctx context.Context) error {
	if err := m.ensureInstance(ctx); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create database admin client: %w", err)
	}
	defer admin.Close()

	if err := m.ensureDatabase(ctx, admin); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}
	return m.apply(ctx, admin)
}

// ensureInstance creates the instance on the emulator config when it is missing.
func (m *migrator) ensureInstance(ctx context.Context) error {
	admin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer admin.Close()

	_, err = admin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: m.instancePath()})
	switch status.Code(err) {
	case codes.OK:
		logger.Debug("migrate.instance_exists", "instance", m.instance)
		return nil
	case codes.NotFound:
	default:
		logger.Warn("migrate.instance_check_failed", "instance", m.instance, "error", err)
		return nil
	}

	logger.Info("migrate.creating_instance", "instance", m.instance)
	op, err := admin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     "projects/" + m.project,
		InstanceId: m.instance,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", m.project),
			DisplayName: "Development Instance",
			NodeCount:   1,
		},
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create instance: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		logger.Warn("migrate.instance_wait_failed", "error", err)
	}
	return nil
}

func (m *migrator) ensureDatabase(ctx context.Context, admin *database.DatabaseAdminClient) error {
	_, err := admin.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: m.databasePath()})
	switch {
	case err == nil:
		logger.Debug("migrate.database_exists", "database", m.database)
		return nil
	case status.Code(err) != codes.NotFound:
		if m.onEmulator {
			logger.Warn("migrate.database_check_failed", "database", m.database, "error", err)
			return nil
		}
		return fmt.Errorf("failed to check database: %w", err)
	}

	logger.Info("migrate.creating_database", "database", m.database)
	op, err := admin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          m.instancePath(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", m.database),
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}
	return nil
}

// apply runs every *.sql file in lexical order, one DDL batch per file.
func (m *migrator) apply(ctx context.Context, admin *database.DatabaseAdminClient) error {
	files, err := filepath.Glob(filepath.Join(m.dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		logger.Warn("migrate.no_files", "dir", m.dir)
		return nil
	}

	for _, file := range files {
		name := filepath.Base(file)
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}

		statements := splitDDL(string(content))
		if len(statements) == 0 {
			continue
		}

		op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   m.databasePath(),
			Statements: statements,
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", name, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", name, err)
		}
		logger.Info("migrate.applied", "file", name, "statements", len(statements))
	}
	return nil
}

// splitDDL drops comment lines and splits the rest on semicolons.
func splitDDL(content string) []string {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		kept = append(kept, line)
	}

	var statements []string
	for _, stmt := range strings.Split(strings.Join(kept, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
