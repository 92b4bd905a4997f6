package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"dcim-ng/models/portal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// 配置信息
const (
	dbUser     = "root"
	dbPassword = "password"
	dbHost     = "localhost"
	dbPort     = "3306"
	dbName     = "dcim"
	rackCount  = 40 // 生成的机柜数量
)

// 模拟数据选项
var (
	sitePrefixes  = []string{"BJ", "SH", "GZ", "SZ", "CD"}
	rowLetters    = []string{"A", "B", "C", "D", "E"}
	statuses      = []string{portal.RackStatusActive, portal.RackStatusActive, portal.RackStatusPlanned, portal.RackStatusReserved}
	manufacturers = []string{"Dell", "HPE", "浪潮", "联想", "华为"}
	serverModels  = []string{"PowerEdge R650", "ProLiant DL380", "NF5280M6", "ThinkSystem SR650", "TaiShan 200"}
	deviceRoles   = []string{"application", "database", "storage", "monitoring"}
	uHeights      = []int{42, 42, 42, 48, 24}
	deviceSizes   = []float64{1, 1, 2, 2, 4}
)

func main() {
	rand.Seed(time.Now().UnixNano())

	// 连接数据库
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbUser, dbPassword, dbHost, dbPort, dbName)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		fmt.Printf("连接数据库失败: %v\n", err)
		os.Exit(1)
	}

	total := 0
	for i := 0; i < rackCount; i++ {
		rack, devices := generateMockRack(i)
		if err := db.Create(&rack).Error; err != nil {
			fmt.Printf("保存机柜失败: %v\n", err)
			os.Exit(1)
		}
		for j := range devices {
			devices[j].RackID = rack.ID
		}
		if len(devices) > 0 {
			if err := db.Create(&devices).Error; err != nil {
				fmt.Printf("保存设备失败: %v\n", err)
				os.Exit(1)
			}
		}
		total += len(devices)
	}

	fmt.Printf("成功生成 %d 台机柜、%d 台设备模拟数据\n", rackCount, total)
}

// 生成单台机柜及其内部设备；设备按自底向上顺序装填，保证互不重叠
func generateMockRack(index int) (portal.Rack, []portal.Device) {
	site := sitePrefixes[rand.Intn(len(sitePrefixes))]
	row := rowLetters[rand.Intn(len(rowLetters))]
	uHeight := uHeights[rand.Intn(len(uHeights))]

	rack := portal.Rack{
		Name:       fmt.Sprintf("%s%02d", row, index+1),
		FacilityID: fmt.Sprintf("DC-%s-%s%02d", site, row, index+1),
		SiteID:     int64(rand.Intn(len(sitePrefixes)) + 1),
		Status:     statuses[rand.Intn(len(statuses))],
		RackDimensions: portal.RackDimensions{
			FormFactor:   portal.RackFormFactorCabinet,
			Width:        portal.RackWidth19IN,
			UHeight:      uHeight,
			StartingUnit: 1,
		},
	}

	var devices []portal.Device
	position := 1.0
	for position < float64(uHeight)-4 {
		// 随机留空隙，模拟真实的装填密度
		if rand.Intn(3) == 0 {
			position += float64(rand.Intn(3) + 1)
			continue
		}
		size := deviceSizes[rand.Intn(len(deviceSizes))]
		if position+size > float64(uHeight)+1 {
			break
		}
		devices = append(devices, portal.Device{
			Name:         fmt.Sprintf("%s%02d-srv-%02d", row, index+1, len(devices)+1),
			Position:     position,
			UHeight:      size,
			Face:         portal.DeviceFaceFront,
			IsFullDepth:  true,
			Manufacturer: manufacturers[rand.Intn(len(manufacturers))],
			Model:        serverModels[rand.Intn(len(serverModels))],
			Role:         deviceRoles[rand.Intn(len(deviceRoles))],
			Status:       "active",
		})
		position += size
	}

	return rack, devices
}
