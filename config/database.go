package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/soraien/raidhall/models"
)

var db *gorm.DB

// InitDatabase opens the configured database, migrates the schema and seeds
// default rows. SQLite is the default embedded store; a MySQL DSN in
// DatabaseURI switches drivers. Foreign keys stay enabled in both modes:
// the Post→Comment and RaidSchedule→RaidParticipant cascades are a schema
// invariant, not application behavior.
func InitDatabase() *gorm.DB {
	if db != nil {
		return db
	}

	cfg := Get()

	gormCfg := &gorm.Config{
		Logger: logger.New(
			log.New(os.Stdout, "", log.LstdFlags),
			logger.Config{
				SlowThreshold:             2 * time.Second,
				LogLevel:                  toGormLogLevel(cfg.LogLevel),
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	}

	var err error
	if cfg.DatabaseURI != "" {
		db, err = gorm.Open(mysql.Open(cfg.DatabaseURI), gormCfg)
	} else {
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		// _fk=1 turns on SQLite foreign key enforcement per connection
		db, err = gorm.Open(sqlite.Open("file:"+cfg.DBPath+"?_fk=1"), gormCfg)
	}
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("database ping failed: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}

// Migrate ensures all tables exist and seeds defaults. Idempotent: repeated
// calls never duplicate seeded rows or overwrite edited ones.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&models.Post{},
		&models.Comment{},
		&models.Profile{},
		&models.Setting{},
		&models.RaidSchedule{},
		&models.RaidParticipant{},
		&models.UploadedFile{},
	); err != nil {
		return err
	}
	return models.Seed(conn)
}

// DB provides access to the initialized gorm DB instance.
func DB() *gorm.DB {
	if db == nil {
		log.Fatal("database not initialized, call InitDatabase first")
	}
	return db
}

// toGormLogLevel maps the application LogLevel to GORM's logger level.
func toGormLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		return logger.Info
	case "error":
		return logger.Error
	case "silent":
		return logger.Silent
	default:
		return logger.Warn
	}
}
