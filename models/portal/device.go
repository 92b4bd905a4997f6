package portal

// Device 机柜内设备.
// Position 为设备底部所在单元编号（支持0.5U粒度），0表示未按U位安装；
// 设备占用 [Position, Position+UHeight) 的半U区间.
type Device struct {
	BaseModel
	Name                   string  `gorm:"column:name;type:varchar(100);not null" json:"name"`               // 设备名称
	RackID                 int64   `gorm:"column:rack_id;index" json:"rackId"`                               // 所属机柜ID
	Position               float64 `gorm:"column:position" json:"position"`                                  // 底部单元位置
	UHeight                float64 `gorm:"column:u_height;default:1" json:"uHeight"`                         // 设备高度（U）
	Face                   string  `gorm:"column:face;type:varchar(10)" json:"face"`                         // 安装面
	IsFullDepth            bool    `gorm:"column:is_full_depth" json:"isFullDepth"`                          // 是否全深（前后面同时占用）
	ExcludeFromUtilization bool    `gorm:"column:exclude_from_utilization" json:"excludeFromUtilization"`    // 是否不计入容量占用（如假面板）
	Manufacturer           string  `gorm:"column:manufacturer;type:varchar(100)" json:"manufacturer"`        // 厂商
	Model                  string  `gorm:"column:model;type:varchar(100)" json:"model"`                      // 型号
	Serial                 string  `gorm:"column:serial;type:varchar(50)" json:"serial"`                     // 序列号
	AssetTag               string  `gorm:"column:asset_tag;type:varchar(50)" json:"assetTag"`                // 资产标签
	Role                   string  `gorm:"column:role;type:varchar(100)" json:"role"`                        // 设备角色
	Status                 string  `gorm:"column:status;type:varchar(50)" json:"status"`                     // 状态

	Rack *Rack `gorm:"foreignKey:RackID" json:"rack,omitempty"` // 所属机柜
}

// TableName 指定表名.
func (Device) TableName() string {
	return "device"
}
