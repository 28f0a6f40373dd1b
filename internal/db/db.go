package db

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/placeatlas/ops-portal/internal/model"
)

var db *gorm.DB

// Init installs the gorm handle and migrates the schema.
func Init(d *gorm.DB) {
	db = d
	if err := AutoMigrate(new(model.Session)); err != nil {
		log.Fatalf("failed migrate database: %s", err.Error())
	}
}

func AutoMigrate(dst ...interface{}) error {
	return db.AutoMigrate(dst...)
}

func GetDb() *gorm.DB {
	return db
}

func Close() {
	log.Info("closing db")
	sqlDB, err := db.DB()
	if err != nil {
		log.Errorf("failed to get db: %s", err.Error())
		return
	}
	if err = sqlDB.Close(); err != nil {
		log.Errorf("failed to close db: %s", err.Error())
	}
}
