// Package db opens the database handle shared by all stores
package db

import (
	"fmt"

	"avolkov/resume-api/model"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New opens the configured database and migrates the schema. Postgres
// is what production runs on, sqlite covers development and tests.
// TranslateError is on so unique violations surface as
// gorm.ErrDuplicatedKey on both drivers.
func New() (*gorm.DB, error) {
	var dial gorm.Dialector

	switch driver := viper.GetString("db.driver"); driver {
	case "postgres":
		dial = postgres.Open(viper.GetString("db.dsn"))
	case "sqlite":
		dial = sqlite.Open(viper.GetString("db.dsn"))
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}

	db, err := gorm.Open(dial, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open database, %w", err)
	}

	err = db.AutoMigrate(&model.User{}, &model.Session{}, &model.Resume{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
