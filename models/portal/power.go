package portal

// PowerFeed 机柜电源馈线.
// AvailablePower 在保存时按 电压*电流*最大利用率 计算（单相），单位VA.
type PowerFeed struct {
	BaseModel
	RackID         int64  `gorm:"column:rack_id;not null;index" json:"rackId"`                    // 所属机柜ID
	Name           string `gorm:"column:name;type:varchar(100);not null" json:"name"`             // 馈线名称
	Status         string `gorm:"column:status;type:varchar(50);default:active" json:"status"`    // 状态
	Supply         string `gorm:"column:supply;type:varchar(50)" json:"supply"`                   // 供电相式
	Voltage        int    `gorm:"column:voltage;default:220" json:"voltage"`                      // 电压（V）
	Amperage       int    `gorm:"column:amperage;default:16" json:"amperage"`                     // 电流（A）
	MaxUtilization int    `gorm:"column:max_utilization;default:80" json:"maxUtilization"`        // 最大利用率（%）
	AvailablePower int    `gorm:"column:available_power" json:"availablePower"`                   // 可用功率（VA）

	Rack *Rack `gorm:"foreignKey:RackID" json:"rack,omitempty"` // 所属机柜
}

// TableName 指定表名.
func (PowerFeed) TableName() string {
	return "power_feed"
}

// CalcAvailablePower 计算可用功率.
func (f *PowerFeed) CalcAvailablePower() int {
	power := f.Voltage * f.Amperage
	if f.Supply == PowerFeedSupplyThreePhase {
		// 三相供电按 1.732 倍折算
		power = int(float64(power) * 1.732)
	}
	return power * f.MaxUtilization / 100
}

// PowerPort 设备电源端口，通过 PowerFeedID 与馈线对端相连.
type PowerPort struct {
	BaseModel
	DeviceID      int64  `gorm:"column:device_id;not null;index" json:"deviceId"`     // 所属设备ID
	Name          string `gorm:"column:name;type:varchar(100);not null" json:"name"`  // 端口名称
	PowerFeedID   int64  `gorm:"column:power_feed_id;index" json:"powerFeedId"`       // 对端馈线ID，0表示未连接
	AllocatedDraw int    `gorm:"column:allocated_draw" json:"allocatedDraw"`          // 分配功耗（VA）
	MaximumDraw   int    `gorm:"column:maximum_draw" json:"maximumDraw"`              // 峰值功耗（VA）

	Device *Device `gorm:"foreignKey:DeviceID" json:"device,omitempty"` // 所属设备
}

// TableName 指定表名.
func (PowerPort) TableName() string {
	return "power_port"
}
