package portal

// RackRole 机柜功能角色.
type RackRole struct {
	BaseModel
	Name        string `gorm:"column:name;type:varchar(100);not null;uniqueIndex" json:"name"` // 角色名称
	Slug        string `gorm:"column:slug;type:varchar(100)" json:"slug"`                      // 标识符
	Color       string `gorm:"column:color;type:varchar(6);default:9e9e9e" json:"color"`       // 显示颜色
	Description string `gorm:"column:description;type:varchar(200)" json:"description"`        // 描述
}

// TableName 指定表名.
func (RackRole) TableName() string {
	return "rack_role"
}
