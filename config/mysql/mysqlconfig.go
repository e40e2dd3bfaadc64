package mysql

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lgn-lvx3/pge-nrg-api/config/toml"
	"github.com/lgn-lvx3/pge-nrg-api/entity"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _db *gorm.DB

func init() {
	username := toml.GetConfig().Mysql.User
	password := toml.GetConfig().Mysql.Password
	host := toml.GetConfig().Mysql.Host
	port := toml.GetConfig().Mysql.Port
	dbname := toml.GetConfig().Mysql.DbName
	timeout := "10s" // if connection time > 10s, then timeout

	// dsn == Data Source Name
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8&parseTime=True&loc=UTC&timeout=%s", username, password, host, port, dbname, timeout)

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second, // SQL slower than 1s is "slow"
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	var err error
	_db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	if err := _db.AutoMigrate(
		&entity.EnergyEntryEntity{},
		&entity.AlertEntity{},
		&entity.UploadJobEntity{},
		&entity.RejectedRowEntity{},
	); err != nil {
		fmt.Println("Migration failed:", err)
	}

	sqlDB, _ := _db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
}

func GetDB() *gorm.DB {
	return _db
}
