package portal

// Site 站点（数据中心/机房园区）.
type Site struct {
	BaseModel
	Name   string `gorm:"column:name;type:varchar(100);not null;uniqueIndex" json:"name"` // 站点名称
	Slug   string `gorm:"column:slug;type:varchar(100);uniqueIndex" json:"slug"`          // 标识符
	Region string `gorm:"column:region;type:varchar(100)" json:"region"`                  // 所属区域
	Status string `gorm:"column:status;type:varchar(50)" json:"status"`                   // 状态
}

// TableName 指定表名.
func (Site) TableName() string {
	return "site"
}

// Location 站点内的细分位置（楼层/机房）.
type Location struct {
	BaseModel
	SiteID   int64  `gorm:"column:site_id;not null;index" json:"siteId"`         // 所属站点ID
	ParentID int64  `gorm:"column:parent_id;index" json:"parentId"`              // 上级位置ID，0表示顶级
	Name     string `gorm:"column:name;type:varchar(100);not null" json:"name"`  // 位置名称
	Slug     string `gorm:"column:slug;type:varchar(100)" json:"slug"`           // 标识符
	Facility string `gorm:"column:facility;type:varchar(100)" json:"facility"`   // 机房设施编号

	Site *Site `gorm:"foreignKey:SiteID" json:"site,omitempty"` // 所属站点
}

// TableName 指定表名.
func (Location) TableName() string {
	return "location"
}
