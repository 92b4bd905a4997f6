// Package service provides the business logic for the portal module.
package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"

	"dcim-ng/models/portal"
	"dcim-ng/internal/rackspace"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RackEventPublisher 机柜变更事件发布能力，由redis适配层实现.
type RackEventPublisher interface {
	PublishRackChange(rackID int64, action string) error
}

// RackService provides operations for Rack.
type RackService struct {
	db        *gorm.DB
	logger    *zap.Logger
	publisher RackEventPublisher // 可为nil（如单测场景）
}

// NewRackService creates a new RackService.
func NewRackService(db *gorm.DB, logger *zap.Logger, publisher RackEventPublisher) *RackService {
	return &RackService{db: db, logger: logger, publisher: publisher}
}

// GetRack 获取机柜详情
func (s *RackService) GetRack(ctx context.Context, id int64) (*RackResponse, error) {
	var model portal.Rack
	err := s.db.WithContext(ctx).Preload("Site").Preload("RackType").
		First(&model, id).Error
	if err != nil {
		return nil, HandleDBError(err, ResourceRack, id)
	}
	return toRackResponse(&model), nil
}

// ListRacks 获取机柜列表
func (s *RackService) ListRacks(ctx context.Context, query *RackQuery) (*RackListResponse, error) {
	var models []portal.Rack
	var total int64

	db := s.db.WithContext(ctx).Model(&portal.Rack{})

	// Apply filters
	if query.Name != EmptyString {
		db = db.Where("name LIKE ?", "%"+query.Name+"%")
	}
	if query.SiteID != 0 {
		db = db.Where("site_id = ?", query.SiteID)
	}
	if query.LocationID != 0 {
		db = db.Where("location_id = ?", query.LocationID)
	}
	if query.Status != EmptyString {
		db = db.Where("status = ?", query.Status)
	}
	if query.RoleID != 0 {
		db = db.Where("role_id = ?", query.RoleID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count racks: %w", err)
	}

	query.AdjustPagination()

	err := db.Preload("Site").Preload("RackType").
		Order("site_id, name").
		Offset(query.GetOffset()).Limit(query.Size).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list racks: %w", err)
	}

	list := make([]*RackResponse, 0, len(models))
	for i := range models {
		list = append(list, toRackResponse(&models[i]))
	}

	return &RackListResponse{
		List:  list,
		Page:  query.Page,
		Size:  query.Size,
		Total: total,
	}, nil
}

// CreateRack 创建机柜
func (s *RackService) CreateRack(ctx context.Context, dto *RackCreateDTO) (*RackResponse, error) {
	model := &portal.Rack{
		Name:       dto.Name,
		FacilityID: dto.FacilityID,
		SiteID:     dto.SiteID,
		LocationID: dto.LocationID,
		RackTypeID: dto.RackTypeID,
		RoleID:     dto.RoleID,
		Status:     dto.Status,
		Serial:     dto.Serial,
		AssetTag:   dto.AssetTag,
		Comments:   dto.Comments,
		RackDimensions: portal.RackDimensions{
			FormFactor:   dto.FormFactor,
			Width:        dto.Width,
			UHeight:      dto.UHeight,
			StartingUnit: dto.StartingUnit,
			DescUnits:    dto.DescUnits,
		},
	}
	applyRackDefaults(model)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.resolveRackType(ctx, tx, model); err != nil {
			return err
		}
		if err := s.validateRack(ctx, tx, model, true); err != nil {
			return err
		}
		return tx.Create(model).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifyRackChange(model.ID, RackActionCreated)
	return toRackResponse(model), nil
}

// UpdateRack 更新机柜
// 校验在持久化之前完成，失败即整体回滚，不产生部分写入.
func (s *RackService) UpdateRack(ctx context.Context, id int64, dto *RackUpdateDTO) (*RackResponse, error) {
	var model portal.Rack

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model, id).Error; err != nil {
			return HandleDBError(err, ResourceRack, id)
		}

		applyRackUpdate(&model, dto)
		if err := s.resolveRackType(ctx, tx, &model); err != nil {
			return err
		}
		if err := s.validateRack(ctx, tx, &model, false); err != nil {
			return err
		}
		return tx.Save(&model).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifyRackChange(id, RackActionUpdated)
	return toRackResponse(&model), nil
}

// DeleteRack 删除机柜，预留记录级联删除
func (s *RackService) DeleteRack(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model portal.Rack
		if err := tx.First(&model, id).Error; err != nil {
			return HandleDBError(err, ResourceRack, id)
		}
		if err := tx.Where("rack_id = ?", id).Delete(&portal.RackReservation{}).Error; err != nil {
			return fmt.Errorf("failed to delete reservations of rack %d: %w", id, err)
		}
		return tx.Delete(&model).Error
	})
	if err != nil {
		return err
	}

	s.notifyRackChange(id, RackActionDeleted)
	return nil
}

// RackUnitsQuery 立面图单元查询参数
type RackUnitsQuery struct {
	Face          string
	ExpandDevices bool
	Exclude       []int64
	Viewer        rackspace.ViewerFunc
}

// GetRackUnits 获取机柜立面图单元条目
func (s *RackService) GetRackUnits(ctx context.Context, rackID int64, q RackUnitsQuery) ([]*RackUnitResponse, error) {
	rack, err := s.loadRack(ctx, rackID)
	if err != nil {
		return nil, err
	}
	face, err := normalizeFace(q.Face)
	if err != nil {
		return nil, err
	}

	devices, err := loadEngineDevices(ctx, s.db, rackID)
	if err != nil {
		return nil, err
	}

	entries := rackspace.RackUnits(rackConfig(rack), devices, rackspace.ElevationQuery{
		Face:          face,
		Exclude:       q.Exclude,
		ExpandDevices: q.ExpandDevices,
		Viewer:        q.Viewer,
	})
	return toRackUnitResponses(entries), nil
}

// AvailableUnitsQuery 可用单元查询参数
type AvailableUnitsQuery struct {
	UHeight        float64 // 所需连续高度（U），默认1
	Face           string  // 目标安装面，空表示全深放置
	Exclude        []int64
	IgnoreExcluded bool
}

// GetAvailableUnits 获取可容纳指定高度设备的单元位置
func (s *RackService) GetAvailableUnits(ctx context.Context, rackID int64, q AvailableUnitsQuery) (*AvailableUnitsResponse, error) {
	rack, err := s.loadRack(ctx, rackID)
	if err != nil {
		return nil, err
	}
	if q.Face != EmptyString {
		if q.Face, err = normalizeFace(q.Face); err != nil {
			return nil, err
		}
	}
	if q.UHeight == 0 {
		q.UHeight = 1
	}

	devices, err := loadEngineDevices(ctx, s.db, rackID)
	if err != nil {
		return nil, err
	}

	units := rackspace.AvailableUnits(rackConfig(rack), devices, rackspace.AvailabilityQuery{
		UHeight:        rackspace.UnitFromDecimal(q.UHeight),
		Face:           q.Face,
		Exclude:        q.Exclude,
		IgnoreExcluded: q.IgnoreExcluded,
		OnOverlap:      s.overlapDiagnostic(rackID),
	})

	resp := &AvailableUnitsResponse{Units: make([]float64, 0, len(units))}
	for _, u := range units {
		resp.Units = append(resp.Units, u.Decimal())
	}
	return resp, nil
}

// GetReservedUnits 获取已预留单元与预留记录的映射
func (s *RackService) GetReservedUnits(ctx context.Context, rackID int64) ([]*ReservedUnitResponse, error) {
	if _, err := s.loadRack(ctx, rackID); err != nil {
		return nil, err
	}

	reservations, err := loadEngineReservations(ctx, s.db, rackID, 0)
	if err != nil {
		return nil, err
	}

	reserved := rackspace.ReservedUnits(reservations)
	list := make([]*ReservedUnitResponse, 0, len(reserved))
	for u, resv := range reserved {
		list = append(list, &ReservedUnitResponse{
			Unit:          u.Decimal(),
			ReservationID: resv.ID,
			Description:   resv.Description,
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Unit < list[j].Unit })
	return list, nil
}

// GetUtilization 获取机柜空间与电力利用率
func (s *RackService) GetUtilization(ctx context.Context, rackID int64) (*RackUtilizationResponse, error) {
	rack, err := s.loadRack(ctx, rackID)
	if err != nil {
		return nil, err
	}

	devices, err := loadEngineDevices(ctx, s.db, rackID)
	if err != nil {
		return nil, err
	}
	reservations, err := loadEngineReservations(ctx, s.db, rackID, 0)
	if err != nil {
		return nil, err
	}
	feeds, ports, err := s.loadPowerInputs(ctx, rackID)
	if err != nil {
		return nil, err
	}

	return &RackUtilizationResponse{
		SpaceUtilization: rackspace.Utilization(rackConfig(rack), devices, reservations),
		PowerUtilization: rackspace.PowerUtilization(feeds, ports),
	}, nil
}

// GetPowerUtilization 获取机柜电力利用率（%）
func (s *RackService) GetPowerUtilization(ctx context.Context, rackID int64) (float64, error) {
	if _, err := s.loadRack(ctx, rackID); err != nil {
		return 0, err
	}
	feeds, ports, err := s.loadPowerInputs(ctx, rackID)
	if err != nil {
		return 0, err
	}
	return rackspace.PowerUtilization(feeds, ports), nil
}

// RenderElevation 渲染机柜立面图SVG
func (s *RackService) RenderElevation(ctx context.Context, rackID int64, face string, params rackspace.SVGParams, viewer rackspace.ViewerFunc) ([]byte, error) {
	rack, err := s.loadRack(ctx, rackID)
	if err != nil {
		return nil, err
	}
	if face, err = normalizeFace(face); err != nil {
		return nil, err
	}

	devices, err := loadEngineDevices(ctx, s.db, rackID)
	if err != nil {
		return nil, err
	}

	entries := rackspace.RackUnits(rackConfig(rack), devices, rackspace.ElevationQuery{
		Face:          face,
		ExpandDevices: true,
		Viewer:        viewer,
	})

	var buf bytes.Buffer
	rackspace.RenderElevationSVG(&buf, rackspace.ElevationTitle(rack.Name, face), entries, params)
	return buf.Bytes(), nil
}

// loadRack 读取机柜记录
func (s *RackService) loadRack(ctx context.Context, id int64) (*portal.Rack, error) {
	var model portal.Rack
	if err := s.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, HandleDBError(err, ResourceRack, id)
	}
	return &model, nil
}

// loadPowerInputs 读取机柜的电源馈线与对端端口
func (s *RackService) loadPowerInputs(ctx context.Context, rackID int64) ([]rackspace.PowerFeed, []rackspace.PowerPort, error) {
	var feedModels []portal.PowerFeed
	if err := s.db.WithContext(ctx).Where("rack_id = ?", rackID).Find(&feedModels).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load power feeds of rack %d: %w", rackID, err)
	}

	feeds := make([]rackspace.PowerFeed, 0, len(feedModels))
	feedIDs := make([]int64, 0, len(feedModels))
	for i := range feedModels {
		feeds = append(feeds, rackspace.PowerFeed{
			ID:             feedModels[i].ID,
			AvailablePower: feedModels[i].AvailablePower,
		})
		feedIDs = append(feedIDs, feedModels[i].ID)
	}

	var ports []rackspace.PowerPort
	if len(feedIDs) > 0 {
		var portModels []portal.PowerPort
		if err := s.db.WithContext(ctx).Where("power_feed_id IN ?", feedIDs).Find(&portModels).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to load power ports of rack %d: %w", rackID, err)
		}
		for i := range portModels {
			ports = append(ports, rackspace.PowerPort{
				PowerFeedID:   portModels[i].PowerFeedID,
				AllocatedDraw: portModels[i].AllocatedDraw,
			})
		}
	}

	return feeds, ports, nil
}

// resolveRackType 关联机柜型号并级联复制物理属性
func (s *RackService) resolveRackType(ctx context.Context, tx *gorm.DB, rack *portal.Rack) error {
	if rack.RackTypeID == 0 {
		rack.RackType = nil
		return nil
	}
	var rackType portal.RackType
	if err := tx.WithContext(ctx).First(&rackType, rack.RackTypeID).Error; err != nil {
		return HandleDBError(err, ResourceRackType, rack.RackTypeID)
	}
	rack.RackType = &rackType
	rack.CopyRackTypeAttrs()
	return nil
}

// validateRack 机柜保存前校验，所有校验错误在持久化之前同步抛出.
func (s *RackService) validateRack(ctx context.Context, tx *gorm.DB, rack *portal.Rack, isNew bool) error {
	if rack.UHeight < 1 || rack.UHeight > portal.RackUHeightMax {
		return NewBadRequestError(fmt.Sprintf(MsgInvalidUHeight, portal.RackUHeightMax))
	}
	if rack.StartingUnit < 1 {
		return NewBadRequestError(MsgInvalidStartingUnit)
	}

	// 校验位置与站点的归属关系
	if rack.LocationID != 0 {
		var location portal.Location
		if err := tx.WithContext(ctx).First(&location, rack.LocationID).Error; err != nil {
			return HandleDBError(err, "Location", rack.LocationID)
		}
		if location.SiteID != rack.SiteID {
			return NewBadRequestError(MsgLocationMismatch)
		}
	}

	if isNew {
		return nil
	}

	// 机柜高度必须能容纳当前已安装的最高设备；
	// 起始编号必须不大于最低设备的位置。只校验，不做任何自动纠正.
	var mounted []portal.Device
	err := tx.WithContext(ctx).
		Where("rack_id = ? AND position > 0", rack.ID).
		Order("position").
		Find(&mounted).Error
	if err != nil {
		return fmt.Errorf("failed to load mounted devices of rack %d: %w", rack.ID, err)
	}
	if len(mounted) == 0 {
		return nil
	}

	top := mounted[len(mounted)-1]
	minHeight := top.Position + top.UHeight - float64(rack.StartingUnit)
	if float64(rack.UHeight) < minHeight {
		return NewBadRequestError(fmt.Sprintf(MsgHeightTooSmall, formatUnits(minHeight)))
	}

	lowest := mounted[0]
	if float64(rack.StartingUnit) > lowest.Position {
		return NewBadRequestError(fmt.Sprintf(MsgStartingUnitTooHigh, formatUnits(lowest.Position)))
	}

	return nil
}

// overlapDiagnostic 设备区间重叠的诊断回调；默认行为不变，仅记录日志.
func (s *RackService) overlapDiagnostic(rackID int64) func(deviceID int64, u rackspace.Unit) {
	if s.logger == nil {
		return nil
	}
	return func(deviceID int64, u rackspace.Unit) {
		s.logger.Debug("overlapping devices found in rack",
			zap.Int64("rackId", rackID),
			zap.Int64("deviceId", deviceID),
			zap.String("unit", u.String()),
		)
	}
}

// notifyRackChange 发布机柜变更事件
func (s *RackService) notifyRackChange(rackID int64, action string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishRackChange(rackID, action); err != nil && s.logger != nil {
		s.logger.Warn("failed to publish rack change event",
			zap.Int64("rackId", rackID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// applyRackDefaults 填充缺省的物理属性
func applyRackDefaults(rack *portal.Rack) {
	if rack.UHeight == 0 {
		rack.UHeight = portal.RackUHeightDefault
	}
	if rack.StartingUnit == 0 {
		rack.StartingUnit = portal.RackStartingUnitDefault
	}
	if rack.Width == 0 {
		rack.Width = portal.RackWidth19IN
	}
	if rack.Status == EmptyString {
		rack.Status = portal.RackStatusActive
	}
}

// applyRackUpdate 将更新请求应用到模型
func applyRackUpdate(rack *portal.Rack, dto *RackUpdateDTO) {
	if dto.Name != EmptyString {
		rack.Name = dto.Name
	}
	rack.FacilityID = dto.FacilityID
	if dto.SiteID != 0 {
		rack.SiteID = dto.SiteID
	}
	rack.LocationID = dto.LocationID
	rack.RackTypeID = dto.RackTypeID
	rack.RoleID = dto.RoleID
	if dto.Status != EmptyString {
		rack.Status = dto.Status
	}
	rack.Serial = dto.Serial
	rack.AssetTag = dto.AssetTag
	rack.Comments = dto.Comments

	// 关联了机柜型号时物理属性由型号级联维护，忽略请求中的值
	if rack.RackTypeID != 0 {
		return
	}
	if dto.FormFactor != EmptyString {
		rack.FormFactor = dto.FormFactor
	}
	if dto.Width != 0 {
		rack.Width = dto.Width
	}
	if dto.UHeight != 0 {
		rack.UHeight = dto.UHeight
	}
	if dto.StartingUnit != 0 {
		rack.StartingUnit = dto.StartingUnit
	}
	rack.DescUnits = dto.DescUnits
}

// normalizeFace 校验并规范化安装面取值
func normalizeFace(face string) (string, error) {
	switch face {
	case EmptyString, rackspace.FaceFront:
		return rackspace.FaceFront, nil
	case rackspace.FaceRear:
		return rackspace.FaceRear, nil
	default:
		return EmptyString, NewBadRequestError("invalid rack face: " + face)
	}
}

// formatUnits 格式化U数值，整数时省略小数位
func formatUnits(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
