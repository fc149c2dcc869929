package database

import (
	"fmt"
	"strings"

	"github.com/rpupo63/blog-site/config"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// Open connects to the store selected by DB_TYPE and checks the connection.
func Open(cfg config.Config) (*gorm.DB, error) {
	var dsn string
	switch cfg.DBType {
	case "postgres", "supa":
		dsn = cfg.PostgresDSN()
	case "sqlite":
		dsn = cfg.SQLitePath + "?_foreign_keys=on"
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", cfg.DBType)
	}
	dialector := newDialector(cfg.DBType, dsn)

	log.Info().Str("dbType", cfg.DBType).Msg("Connecting to database...")

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: false,
		Logger:      NewGormLogger(log.Logger, cfg.SlowQuery),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := useReplicas(db, cfg); err != nil {
		return nil, err
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test database connection: %w", err)
	}
	return db, nil
}

func newDialector(dbType, dsn string) gorm.Dialector {
	if dbType == "sqlite" {
		return sqlite.Open(dsn)
	}
	return postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	})
}

// useReplicas sends queries outside transactions to the configured read replicas.
// Writes and migrations stay on the primary.
func useReplicas(db *gorm.DB, cfg config.Config) error {
	if len(cfg.DBReplicaDSNs) == 0 {
		return nil
	}

	replicas := make([]gorm.Dialector, 0, len(cfg.DBReplicaDSNs))
	for _, dsn := range cfg.DBReplicaDSNs {
		if dsn = strings.TrimSpace(dsn); dsn != "" {
			replicas = append(replicas, newDialector(cfg.DBType, dsn))
		}
	}
	if len(replicas) == 0 {
		return nil
	}

	resolver := dbresolver.Register(dbresolver.Config{
		Replicas: replicas,
		Policy:   dbresolver.RandomPolicy{},
	})
	if err := db.Use(resolver); err != nil {
		return fmt.Errorf("register read replicas: %w", err)
	}
	log.Info().Int("replicas", len(replicas)).Msg("Read replicas registered")
	return nil
}
