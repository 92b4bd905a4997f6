// Package database initializes the portal database connection.
package database

import (
	"fmt"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"dcim-ng/models/portal"
)

// 连接池参数
const (
	maxIdleConns    = 10
	maxOpenConns    = 100
	connMaxLifetime = time.Hour
)

// InitDB 初始化数据库连接.
// 设置 DCIM_MYSQL_DSN 时连接 MySQL，否则使用本地 SQLite 文件.
func InitDB() (*gorm.DB, error) {
	// 配置 GORM 日志
	gormLogger := logger.New(
		logger.Default.LogMode(logger.Info).(logger.Writer),
		logger.Config{
			SlowThreshold:             time.Second, // 慢 SQL 阈值
			IgnoreRecordNotFoundError: true,        // 忽略记录未找到错误
			Colorful:                  true,
			LogLevel:                  logger.Info,
		},
	)

	var dialector gorm.Dialector
	if dsn := os.Getenv("DCIM_MYSQL_DSN"); dsn != "" {
		dialector = mysql.Open(dsn)
	} else {
		dialector = sqlite.Open("dcim.db")
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %v", err)
	}

	// 获取底层 SQL DB 并设置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	// 自动迁移数据库表
	if err := db.AutoMigrate(
		&portal.Site{},
		&portal.Location{},
		&portal.RackType{},
		&portal.RackRole{},
		&portal.Rack{},
		&portal.RackReservation{},
		&portal.Device{},
		&portal.PowerFeed{},
		&portal.PowerPort{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %v", err)
	}

	return db, nil
}
