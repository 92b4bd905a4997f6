package portal

// RackDimensions 机柜物理属性，RackType 与 Rack 共用.
// 当机柜关联了机柜型号时，这些字段由型号级联覆盖，不可单独编辑.
type RackDimensions struct {
	FormFactor    string  `gorm:"column:form_factor;type:varchar(50)" json:"formFactor"`      // 机柜形态
	Width         int     `gorm:"column:width;default:19" json:"width"`                       // 轨间宽度（英寸）
	UHeight       int     `gorm:"column:u_height;default:42" json:"uHeight"`                  // 高度（U）
	StartingUnit  int     `gorm:"column:starting_unit;default:1" json:"startingUnit"`         // 起始单元编号
	DescUnits     bool    `gorm:"column:desc_units" json:"descUnits"`                         // 单元编号是否自上而下递增
	OuterWidth    int     `gorm:"column:outer_width" json:"outerWidth"`                       // 外部宽度
	OuterDepth    int     `gorm:"column:outer_depth" json:"outerDepth"`                       // 外部深度
	OuterUnit     string  `gorm:"column:outer_unit;type:varchar(10)" json:"outerUnit"`        // 外部尺寸单位
	MountingDepth int     `gorm:"column:mounting_depth" json:"mountingDepth"`                 // 安装深度（毫米）
	Weight        float64 `gorm:"column:weight" json:"weight"`                                // 自重
	WeightUnit    string  `gorm:"column:weight_unit;type:varchar(10)" json:"weightUnit"`      // 重量单位
	MaxWeight     int     `gorm:"column:max_weight" json:"maxWeight"`                         // 最大承重
}

// RackType 机柜型号模板，机柜可关联型号以继承物理属性.
type RackType struct {
	BaseModel
	RackDimensions
	Manufacturer string `gorm:"column:manufacturer;type:varchar(100);not null" json:"manufacturer"`   // 厂商
	Model        string `gorm:"column:model;type:varchar(100);not null" json:"model"`                 // 型号
	Slug         string `gorm:"column:slug;type:varchar(100);uniqueIndex;not null" json:"slug"`       // 标识符
	Description  string `gorm:"column:description;type:varchar(200)" json:"description"`              // 描述
}

// TableName 指定表名.
func (RackType) TableName() string {
	return "rack_type"
}

// FullName 返回 "厂商 型号" 形式的完整名称.
func (t *RackType) FullName() string {
	return t.Manufacturer + " " + t.Model
}
