package service

import (
	"dcim-ng/models/portal"
	"dcim-ng/internal/rackspace"
)

// RackQuery 机柜列表查询参数
type RackQuery struct {
	PaginationRequest
	Name       string `form:"name" json:"name"`             // 名称模糊匹配
	SiteID     int64  `form:"siteId" json:"siteId"`         // 站点过滤
	LocationID int64  `form:"locationId" json:"locationId"` // 位置过滤
	Status     string `form:"status" json:"status"`         // 状态过滤
	RoleID     int64  `form:"roleId" json:"roleId"`         // 角色过滤
}

// RackCreateDTO 机柜创建请求
type RackCreateDTO struct {
	Name       string `json:"name" binding:"required"`
	FacilityID string `json:"facilityId"`
	SiteID     int64  `json:"siteId" binding:"required"`
	LocationID int64  `json:"locationId"`
	RackTypeID int64  `json:"rackTypeId"`
	RoleID     int64  `json:"roleId"`
	Status     string `json:"status"`
	Serial     string `json:"serial"`
	AssetTag   string `json:"assetTag"`
	Comments   string `json:"comments"`

	// 未关联机柜型号时的物理属性
	FormFactor   string `json:"formFactor"`
	Width        int    `json:"width"`
	UHeight      int    `json:"uHeight"`
	StartingUnit int    `json:"startingUnit"`
	DescUnits    bool   `json:"descUnits"`
}

// RackUpdateDTO 机柜更新请求
type RackUpdateDTO struct {
	Name       string `json:"name"`
	FacilityID string `json:"facilityId"`
	SiteID     int64  `json:"siteId"`
	LocationID int64  `json:"locationId"`
	RackTypeID int64  `json:"rackTypeId"`
	RoleID     int64  `json:"roleId"`
	Status     string `json:"status"`
	Serial     string `json:"serial"`
	AssetTag   string `json:"assetTag"`
	Comments   string `json:"comments"`

	FormFactor   string `json:"formFactor"`
	Width        int    `json:"width"`
	UHeight      int    `json:"uHeight"`
	StartingUnit int    `json:"startingUnit"`
	DescUnits    bool   `json:"descUnits"`
}

// RackResponse 机柜响应
type RackResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	FacilityID   string `json:"facilityId"`
	SiteID       int64  `json:"siteId"`
	SiteName     string `json:"siteName,omitempty"`
	LocationID   int64  `json:"locationId"`
	RackTypeID   int64  `json:"rackTypeId"`
	RackTypeName string `json:"rackTypeName,omitempty"`
	RoleID       int64  `json:"roleId"`
	Status       string `json:"status"`
	Serial       string `json:"serial"`
	AssetTag     string `json:"assetTag"`
	FormFactor   string `json:"formFactor"`
	Width        int    `json:"width"`
	UHeight      int    `json:"uHeight"`
	StartingUnit int    `json:"startingUnit"`
	DescUnits    bool   `json:"descUnits"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// RackListResponse 机柜列表响应
type RackListResponse struct {
	List  []*RackResponse `json:"list"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
	Total int64           `json:"total"`
}

// RackUnitDeviceResponse 单元条目中的设备摘要
type RackUnitDeviceResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RackUnitResponse 立面图单元条目
type RackUnitResponse struct {
	Unit     float64                 `json:"unit"`
	Name     string                  `json:"name"`
	Face     string                  `json:"face"`
	Occupied bool                    `json:"occupied"`
	Height   float64                 `json:"height,omitempty"`
	Device   *RackUnitDeviceResponse `json:"device,omitempty"`
}

// ReservedUnitResponse 已预留单元条目
type ReservedUnitResponse struct {
	Unit          float64 `json:"unit"`
	ReservationID int64   `json:"reservationId"`
	Description   string  `json:"description"`
}

// RackUtilizationResponse 机柜利用率响应
type RackUtilizationResponse struct {
	SpaceUtilization float64 `json:"spaceUtilization"` // 空间利用率（%）
	PowerUtilization float64 `json:"powerUtilization"` // 电力利用率（%）
}

// AvailableUnitsResponse 可用单元响应
type AvailableUnitsResponse struct {
	Units []float64 `json:"units"`
}

// toRackResponse 转换为机柜响应
func toRackResponse(m *portal.Rack) *RackResponse {
	resp := &RackResponse{
		ID:           m.ID,
		Name:         m.Name,
		FacilityID:   m.FacilityID,
		SiteID:       m.SiteID,
		LocationID:   m.LocationID,
		RackTypeID:   m.RackTypeID,
		RoleID:       m.RoleID,
		Status:       m.Status,
		Serial:       m.Serial,
		AssetTag:     m.AssetTag,
		FormFactor:   m.FormFactor,
		Width:        m.Width,
		UHeight:      m.UHeight,
		StartingUnit: m.StartingUnit,
		DescUnits:    m.DescUnits,
		CreatedAt:    m.CreatedAt.String(),
		UpdatedAt:    m.UpdatedAt.String(),
	}
	if m.Site != nil {
		resp.SiteName = m.Site.Name
	}
	if m.RackType != nil {
		resp.RackTypeName = m.RackType.FullName()
	}
	return resp
}

// toRackUnitResponses 转换立面图条目
func toRackUnitResponses(entries []rackspace.UnitEntry) []*RackUnitResponse {
	list := make([]*RackUnitResponse, 0, len(entries))
	for _, e := range entries {
		item := &RackUnitResponse{
			Unit:     e.Unit.Decimal(),
			Name:     e.Name,
			Face:     e.Face,
			Occupied: e.Occupied,
			Height:   e.DeviceHeight.Decimal(),
		}
		if e.Device != nil {
			item.Device = &RackUnitDeviceResponse{ID: e.Device.ID, Name: e.Device.Name}
		}
		list = append(list, item)
	}
	return list
}
