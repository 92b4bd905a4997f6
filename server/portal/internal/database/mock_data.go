package database

import (
	"log"

	"gorm.io/gorm"

	"dcim-ng/models/portal"
)

// 样例数据 ID
const (
	siteIDProdEast  int64 = 101
	siteIDProdNorth int64 = 102

	locationIDEastF2  int64 = 201
	locationIDNorthF1 int64 = 202

	rackTypeIDAPC42  int64 = 301
	rackTypeIDDell48 int64 = 302

	rackRoleIDCompute int64 = 401
	rackRoleIDNetwork int64 = 402

	rackIDEastA01  int64 = 501
	rackIDEastA02  int64 = 502
	rackIDNorthB01 int64 = 503
)

// ClearAndSeedDatabase 清空现有数据并插入样例数据，仅用于本地开发.
func ClearAndSeedDatabase(db *gorm.DB) {
	tables := []string{
		"power_port", "power_feed", "device", "rack_reservation",
		"rack", "rack_role", "rack_type", "location", "site",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Printf("Warning: failed to clear table %s: %v", table, err)
		}
	}

	seedSites(db)
	seedRackTypes(db)
	seedRacks(db)
	seedDevices(db)
	seedPower(db)
}

func seedSites(db *gorm.DB) {
	sites := []portal.Site{
		{
			BaseModel: portal.BaseModel{ID: siteIDProdEast},
			Name:      "生产机房-华东",
			Slug:      "prod-east",
			Region:    "华东区域",
			Status:    "active",
		},
		{
			BaseModel: portal.BaseModel{ID: siteIDProdNorth},
			Name:      "生产机房-华北",
			Slug:      "prod-north",
			Region:    "华北区域",
			Status:    "active",
		},
	}
	for _, site := range sites {
		if err := db.Create(&site).Error; err != nil {
			log.Printf("Warning: failed to create site %d: %v", site.ID, err)
		}
	}

	locations := []portal.Location{
		{
			BaseModel: portal.BaseModel{ID: locationIDEastF2},
			SiteID:    siteIDProdEast,
			Name:      "华东2层机房",
			Slug:      "east-f2",
			Facility:  "DC-E-F2",
		},
		{
			BaseModel: portal.BaseModel{ID: locationIDNorthF1},
			SiteID:    siteIDProdNorth,
			Name:      "华北1层机房",
			Slug:      "north-f1",
			Facility:  "DC-N-F1",
		},
	}
	for _, location := range locations {
		if err := db.Create(&location).Error; err != nil {
			log.Printf("Warning: failed to create location %d: %v", location.ID, err)
		}
	}
}

func seedRackTypes(db *gorm.DB) {
	rackTypes := []portal.RackType{
		{
			BaseModel:    portal.BaseModel{ID: rackTypeIDAPC42},
			Manufacturer: "APC",
			Model:        "AR3100",
			Slug:         "apc-ar3100",
			Description:  "标准42U机柜",
			RackDimensions: portal.RackDimensions{
				FormFactor:   portal.RackFormFactorCabinet,
				Width:        portal.RackWidth19IN,
				UHeight:      42,
				StartingUnit: 1,
				OuterWidth:   600,
				OuterDepth:   1070,
				OuterUnit:    portal.RackDimensionMillimeter,
				MaxWeight:    1363,
			},
		},
		{
			BaseModel:    portal.BaseModel{ID: rackTypeIDDell48},
			Manufacturer: "Dell",
			Model:        "PowerEdge 4820",
			Slug:         "dell-4820",
			Description:  "48U深型机柜",
			RackDimensions: portal.RackDimensions{
				FormFactor:   portal.RackFormFactorCabinet,
				Width:        portal.RackWidth19IN,
				UHeight:      48,
				StartingUnit: 1,
				OuterWidth:   750,
				OuterDepth:   1200,
				OuterUnit:    portal.RackDimensionMillimeter,
				MaxWeight:    1588,
			},
		},
	}
	for _, rackType := range rackTypes {
		if err := db.Create(&rackType).Error; err != nil {
			log.Printf("Warning: failed to create rack type %d: %v", rackType.ID, err)
		}
	}

	roles := []portal.RackRole{
		{
			BaseModel:   portal.BaseModel{ID: rackRoleIDCompute},
			Name:        "计算",
			Slug:        "compute",
			Color:       "2196f3",
			Description: "通用计算机柜",
		},
		{
			BaseModel:   portal.BaseModel{ID: rackRoleIDNetwork},
			Name:        "网络",
			Slug:        "network",
			Color:       "4caf50",
			Description: "网络汇聚机柜",
		},
	}
	for _, role := range roles {
		if err := db.Create(&role).Error; err != nil {
			log.Printf("Warning: failed to create rack role %d: %v", role.ID, err)
		}
	}
}

func seedRacks(db *gorm.DB) {
	racks := []portal.Rack{
		{
			BaseModel:  portal.BaseModel{ID: rackIDEastA01},
			Name:       "A01",
			FacilityID: "DC-E-F2-A01",
			SiteID:     siteIDProdEast,
			LocationID: locationIDEastF2,
			RackTypeID: rackTypeIDAPC42,
			RoleID:     rackRoleIDCompute,
			Status:     portal.RackStatusActive,
			RackDimensions: portal.RackDimensions{
				FormFactor:   portal.RackFormFactorCabinet,
				Width:        portal.RackWidth19IN,
				UHeight:      42,
				StartingUnit: 1,
			},
		},
		{
			BaseModel:  portal.BaseModel{ID: rackIDEastA02},
			Name:       "A02",
			FacilityID: "DC-E-F2-A02",
			SiteID:     siteIDProdEast,
			LocationID: locationIDEastF2,
			RackTypeID: rackTypeIDAPC42,
			RoleID:     rackRoleIDNetwork,
			Status:     portal.RackStatusActive,
			RackDimensions: portal.RackDimensions{
				FormFactor:   portal.RackFormFactorCabinet,
				Width:        portal.RackWidth19IN,
				UHeight:      42,
				StartingUnit: 1,
			},
		},
		{
			// 降序编号机柜，U1在最上方
			BaseModel:  portal.BaseModel{ID: rackIDNorthB01},
			Name:       "B01",
			FacilityID: "DC-N-F1-B01",
			SiteID:     siteIDProdNorth,
			LocationID: locationIDNorthF1,
			RoleID:     rackRoleIDCompute,
			Status:     portal.RackStatusPlanned,
			RackDimensions: portal.RackDimensions{
				FormFactor:   portal.RackFormFactor4Post,
				Width:        portal.RackWidth19IN,
				UHeight:      24,
				StartingUnit: 1,
				DescUnits:    true,
			},
		},
	}
	for _, rack := range racks {
		if err := db.Create(&rack).Error; err != nil {
			log.Printf("Warning: failed to create rack %d: %v", rack.ID, err)
		}
	}

	reservation := portal.RackReservation{
		RackID:      rackIDEastA01,
		UserName:    "admin",
		Description: "预留给三季度扩容",
	}
	if err := reservation.SetUnitList([]int{20, 21}); err != nil {
		log.Printf("Warning: failed to encode reservation units: %v", err)
		return
	}
	if err := db.Create(&reservation).Error; err != nil {
		log.Printf("Warning: failed to create rack reservation: %v", err)
	}
}

func seedDevices(db *gorm.DB) {
	devices := []portal.Device{
		{
			Name:         "core-sw-01",
			RackID:       rackIDEastA02,
			Position:     40,
			UHeight:      2,
			Face:         portal.DeviceFaceFront,
			IsFullDepth:  true,
			Manufacturer: "Cisco",
			Model:        "Nexus 9336C",
			Role:         "core-switch",
			Status:       "active",
		},
		{
			Name:         "db-server-01",
			RackID:       rackIDEastA01,
			Position:     1,
			UHeight:      4,
			Face:         portal.DeviceFaceFront,
			IsFullDepth:  true,
			Manufacturer: "Dell",
			Model:        "PowerEdge R940",
			Role:         "database",
			Status:       "active",
		},
		{
			Name:         "app-server-01",
			RackID:       rackIDEastA01,
			Position:     10,
			UHeight:      1,
			Face:         portal.DeviceFaceFront,
			IsFullDepth:  true,
			Manufacturer: "Dell",
			Model:        "PowerEdge R650",
			Role:         "application",
			Status:       "active",
		},
		{
			// 浅型设备只占用后面板
			Name:         "pdu-monitor-01",
			RackID:       rackIDEastA01,
			Position:     10,
			UHeight:      1,
			Face:         portal.DeviceFaceRear,
			IsFullDepth:  false,
			Manufacturer: "APC",
			Model:        "NetBotz 250",
			Role:         "monitoring",
			Status:       "active",
		},
		{
			// 假面板不计入利用率
			Name:                   "blank-panel-12",
			RackID:                 rackIDEastA01,
			Position:               12,
			UHeight:                1,
			Face:                   portal.DeviceFaceFront,
			ExcludeFromUtilization: true,
			Role:                   "blanking-panel",
			Status:                 "active",
		},
	}
	for _, device := range devices {
		if err := db.Create(&device).Error; err != nil {
			log.Printf("Warning: failed to create device %s: %v", device.Name, err)
		}
	}
}

func seedPower(db *gorm.DB) {
	feeds := []portal.PowerFeed{
		{
			RackID:         rackIDEastA01,
			Name:           "PF-A01-1",
			Status:         "active",
			Supply:         portal.PowerFeedSupplySinglePhase,
			Voltage:        220,
			Amperage:       32,
			MaxUtilization: 80,
		},
		{
			RackID:         rackIDEastA01,
			Name:           "PF-A01-2",
			Status:         "active",
			Supply:         portal.PowerFeedSupplySinglePhase,
			Voltage:        220,
			Amperage:       32,
			MaxUtilization: 80,
		},
	}
	for i := range feeds {
		feeds[i].AvailablePower = feeds[i].CalcAvailablePower()
		if err := db.Create(&feeds[i]).Error; err != nil {
			log.Printf("Warning: failed to create power feed %s: %v", feeds[i].Name, err)
			return
		}
	}

	var dbServer portal.Device
	if err := db.Where("name = ?", "db-server-01").First(&dbServer).Error; err != nil {
		log.Printf("Warning: failed to find seed device for power ports: %v", err)
		return
	}
	ports := []portal.PowerPort{
		{
			DeviceID:      dbServer.ID,
			Name:          "PSU1",
			PowerFeedID:   feeds[0].ID,
			AllocatedDraw: 1100,
			MaximumDraw:   1600,
		},
		{
			DeviceID:      dbServer.ID,
			Name:          "PSU2",
			PowerFeedID:   feeds[1].ID,
			AllocatedDraw: 1100,
			MaximumDraw:   1600,
		},
	}
	for _, port := range ports {
		if err := db.Create(&port).Error; err != nil {
			log.Printf("Warning: failed to create power port %s: %v", port.Name, err)
		}
	}
}
