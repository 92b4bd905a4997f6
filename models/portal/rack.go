package portal

// Rack 机柜.
// 关联 RackType 后物理属性由型号级联维护；可用单元、利用率等均为派生数据，
// 不落库，每次按当前状态重新计算.
type Rack struct {
	BaseModel
	RackDimensions
	Name       string `gorm:"column:name;type:varchar(100);not null" json:"name"`        // 机柜名称
	FacilityID string `gorm:"column:facility_id;type:varchar(50)" json:"facilityId"`     // 机房本地编号
	SiteID     int64  `gorm:"column:site_id;not null;index" json:"siteId"`               // 所属站点ID
	LocationID int64  `gorm:"column:location_id;index" json:"locationId"`                // 所属位置ID，0表示未指定
	RackTypeID int64  `gorm:"column:rack_type_id;index" json:"rackTypeId"`               // 机柜型号ID，0表示未关联
	RoleID     int64  `gorm:"column:role_id;index" json:"roleId"`                        // 功能角色ID
	Status     string `gorm:"column:status;type:varchar(50);default:active" json:"status"` // 状态
	Serial     string `gorm:"column:serial;type:varchar(50)" json:"serial"`              // 序列号
	AssetTag   string `gorm:"column:asset_tag;type:varchar(50)" json:"assetTag"`         // 资产标签
	Airflow    string `gorm:"column:airflow;type:varchar(50)" json:"airflow"`            // 风道方向
	Comments   string `gorm:"column:comments;type:text" json:"comments"`                 // 备注

	Site     *Site             `gorm:"foreignKey:SiteID" json:"site,omitempty"`         // 所属站点
	Location *Location         `gorm:"foreignKey:LocationID" json:"location,omitempty"` // 所属位置
	RackType *RackType         `gorm:"foreignKey:RackTypeID" json:"rackType,omitempty"` // 机柜型号
	Role     *RackRole         `gorm:"foreignKey:RoleID" json:"role,omitempty"`         // 功能角色
	// 预留记录随机柜级联删除
	Reservations []RackReservation `gorm:"foreignKey:RackID;constraint:OnDelete:CASCADE" json:"reservations,omitempty"`
}

// TableName 指定表名.
func (Rack) TableName() string {
	return "rack"
}

// CopyRackTypeAttrs 从关联的机柜型号复制物理属性.
func (r *Rack) CopyRackTypeAttrs() {
	if r.RackType != nil {
		r.RackDimensions = r.RackType.RackDimensions
	}
}
