package portal

import "encoding/json"

// RackReservation 机柜单元预留.
// 预留的单元编号以 JSON 数组形式存储在 units 列中（整数U编号）.
type RackReservation struct {
	BaseModel
	RackID      int64  `gorm:"column:rack_id;not null;index" json:"rackId"`                    // 所属机柜ID
	Units       string `gorm:"column:units;type:text;not null" json:"-"`                       // 预留单元编号（JSON数组）
	UserName    string `gorm:"column:user_name;type:varchar(100)" json:"userName"`             // 预留人
	Description string `gorm:"column:description;type:varchar(200);not null" json:"description"` // 预留说明

	Rack *Rack `gorm:"foreignKey:RackID" json:"rack,omitempty"` // 所属机柜
}

// TableName 指定表名.
func (RackReservation) TableName() string {
	return "rack_reservation"
}

// UnitList 解析预留的单元编号列表.
func (r *RackReservation) UnitList() ([]int, error) {
	if r.Units == "" {
		return nil, nil
	}
	var units []int
	if err := json.Unmarshal([]byte(r.Units), &units); err != nil {
		return nil, err
	}
	return units, nil
}

// SetUnitList 序列化并保存单元编号列表.
func (r *RackReservation) SetUnitList(units []int) error {
	data, err := json.Marshal(units)
	if err != nil {
		return err
	}
	r.Units = string(data)
	return nil
}
