package bootstrap

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/placeatlas/ops-portal/cmd/flags"
	"github.com/placeatlas/ops-portal/internal/conf"
	"github.com/placeatlas/ops-portal/internal/db"
)

func InitDB() {
	logLevel := gormlogger.Silent
	if flags.Debug || flags.Dev {
		logLevel = gormlogger.Info
	}
	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: conf.Conf.Database.TablePrefix,
		},
		Logger: gormlogger.Default.LogMode(logLevel),
	}
	database := conf.Conf.Database
	var dB *gorm.DB
	var err error
	switch database.Type {
	case "sqlite3":
		if !(strings.HasSuffix(database.DBFile, ".db") && len(database.DBFile) > 3) {
			log.Fatalf("db name error.")
		}
		dsn := fmt.Sprintf("%s?_journal=WAL&_vacuum=incremental", database.DBFile)
		dB, err = gorm.Open(sqlite.Open(dsn), gormConfig)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			database.User, database.Password, database.Host, database.Port, database.Name)
		dB, err = gorm.Open(mysql.Open(dsn), gormConfig)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
			database.Host, database.User, database.Password, database.Name, database.Port, database.SSLMode)
		dB, err = gorm.Open(postgres.Open(dsn), gormConfig)
	default:
		log.Fatalf("not supported database type: %s", database.Type)
	}
	if err != nil {
		log.Fatalf("failed to connect database: %s", err.Error())
	}
	db.Init(dB)
}
