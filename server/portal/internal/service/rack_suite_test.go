package service_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dcim-ng/models/portal"
)

func TestRackServices(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rack Services Suite")
}

// newTestDB 创建临时的SQLite测试数据库并迁移全部模型
func newTestDB() (*gorm.DB, string) {
	dbPath := fmt.Sprintf("test_db_%d.db", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	Expect(err).NotTo(HaveOccurred())

	err = db.AutoMigrate(
		&portal.Site{},
		&portal.Location{},
		&portal.RackType{},
		&portal.RackRole{},
		&portal.Rack{},
		&portal.RackReservation{},
		&portal.Device{},
		&portal.PowerFeed{},
		&portal.PowerPort{},
	)
	Expect(err).NotTo(HaveOccurred())
	return db, dbPath
}

// closeTestDB 关闭并删除测试数据库文件
func closeTestDB(db *gorm.DB, dbPath string) {
	sqlDB, err := db.DB()
	Expect(err).NotTo(HaveOccurred())
	Expect(sqlDB.Close()).To(Succeed())
	Expect(os.Remove(dbPath)).To(Succeed())
}
