package service

import (
	"context"
	"fmt"

	"dcim-ng/models/portal"
	"dcim-ng/internal/rackspace"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RackReservationQuery 预留列表查询参数
type RackReservationQuery struct {
	PaginationRequest
	RackID   int64  `form:"rackId" json:"rackId"`     // 机柜过滤
	UserName string `form:"userName" json:"userName"` // 预留人过滤
}

// RackReservationDTO 预留创建/更新请求
type RackReservationDTO struct {
	RackID      int64  `json:"rackId" binding:"required"`
	Units       []int  `json:"units" binding:"required"`
	UserName    string `json:"userName" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// RackReservationResponse 预留响应
type RackReservationResponse struct {
	ID          int64  `json:"id"`
	RackID      int64  `json:"rackId"`
	RackName    string `json:"rackName,omitempty"`
	Units       []int  `json:"units"`
	UserName    string `json:"userName"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// RackReservationListResponse 预留列表响应
type RackReservationListResponse struct {
	List  []*RackReservationResponse `json:"list"`
	Page  int                        `json:"page"`
	Size  int                        `json:"size"`
	Total int64                      `json:"total"`
}

// RackReservationService provides operations for RackReservation.
type RackReservationService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRackReservationService creates a new RackReservationService.
func NewRackReservationService(db *gorm.DB, logger *zap.Logger) *RackReservationService {
	return &RackReservationService{db: db, logger: logger}
}

// GetReservation 获取预留详情
func (s *RackReservationService) GetReservation(ctx context.Context, id int64) (*RackReservationResponse, error) {
	var model portal.RackReservation
	if err := s.db.WithContext(ctx).Preload("Rack").First(&model, id).Error; err != nil {
		return nil, HandleDBError(err, ResourceReservation, id)
	}
	return toReservationResponse(&model)
}

// ListReservations 获取预留列表
func (s *RackReservationService) ListReservations(ctx context.Context, query *RackReservationQuery) (*RackReservationListResponse, error) {
	var models []portal.RackReservation
	var total int64

	db := s.db.WithContext(ctx).Model(&portal.RackReservation{})
	if query.RackID != 0 {
		db = db.Where("rack_id = ?", query.RackID)
	}
	if query.UserName != EmptyString {
		db = db.Where("user_name = ?", query.UserName)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count reservations: %w", err)
	}

	query.AdjustPagination()

	err := db.Preload("Rack").Order("rack_id, id").
		Offset(query.GetOffset()).Limit(query.Size).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	list := make([]*RackReservationResponse, 0, len(models))
	for i := range models {
		item, err := toReservationResponse(&models[i])
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}

	return &RackReservationListResponse{
		List:  list,
		Page:  query.Page,
		Size:  query.Size,
		Total: total,
	}, nil
}

// CreateReservation 创建预留
// 单元合法性与冲突校验和写入在同一事务内完成，避免并发下的双重预留.
func (s *RackReservationService) CreateReservation(ctx context.Context, dto *RackReservationDTO) (*RackReservationResponse, error) {
	model := &portal.RackReservation{
		RackID:      dto.RackID,
		UserName:    dto.UserName,
		Description: dto.Description,
	}
	if err := model.SetUnitList(dto.Units); err != nil {
		return nil, NewBadRequestError("invalid reservation units: " + err.Error())
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.validateReservation(ctx, tx, model, dto.Units); err != nil {
			return err
		}
		return tx.Create(model).Error
	})
	if err != nil {
		return nil, err
	}

	return toReservationResponse(model)
}

// UpdateReservation 更新预留，冲突检测按ID排除自身
func (s *RackReservationService) UpdateReservation(ctx context.Context, id int64, dto *RackReservationDTO) (*RackReservationResponse, error) {
	var model portal.RackReservation

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model, id).Error; err != nil {
			return HandleDBError(err, ResourceReservation, id)
		}

		model.RackID = dto.RackID
		model.UserName = dto.UserName
		model.Description = dto.Description
		if err := model.SetUnitList(dto.Units); err != nil {
			return NewBadRequestError("invalid reservation units: " + err.Error())
		}

		if err := s.validateReservation(ctx, tx, &model, dto.Units); err != nil {
			return err
		}
		return tx.Save(&model).Error
	})
	if err != nil {
		return nil, err
	}

	return toReservationResponse(&model)
}

// DeleteReservation 删除预留
func (s *RackReservationService) DeleteReservation(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&portal.RackReservation{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete reservation %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError(ResourceReservation, id)
	}
	return nil
}

// validateReservation 校验预留单元的合法性与冲突
func (s *RackReservationService) validateReservation(ctx context.Context, tx *gorm.DB, model *portal.RackReservation, units []int) error {
	var rack portal.Rack
	if err := tx.WithContext(ctx).First(&rack, model.RackID).Error; err != nil {
		return HandleDBError(err, ResourceRack, model.RackID)
	}

	others, err := loadEngineReservations(ctx, tx, model.RackID, model.ID)
	if err != nil {
		return err
	}

	engineUnits := make([]rackspace.Unit, 0, len(units))
	for _, u := range units {
		engineUnits = append(engineUnits, rackspace.UnitFromInt(u))
	}

	if err := rackspace.ValidateReservationUnits(rackConfig(&rack), engineUnits, others); err != nil {
		return NewBadRequestError(err.Error())
	}
	return nil
}

// toReservationResponse 转换为预留响应
func toReservationResponse(m *portal.RackReservation) (*RackReservationResponse, error) {
	units, err := m.UnitList()
	if err != nil {
		return nil, fmt.Errorf("failed to parse units of reservation %d: %w", m.ID, err)
	}
	resp := &RackReservationResponse{
		ID:          m.ID,
		RackID:      m.RackID,
		Units:       units,
		UserName:    m.UserName,
		Description: m.Description,
		CreatedAt:   m.CreatedAt.String(),
		UpdatedAt:   m.UpdatedAt.String(),
	}
	if m.Rack != nil {
		resp.RackName = m.Rack.Name
	}
	return resp, nil
}
