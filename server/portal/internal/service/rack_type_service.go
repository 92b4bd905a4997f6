package service

import (
	"context"
	"fmt"

	"dcim-ng/models/portal"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RackTypeQuery 机柜型号列表查询参数
type RackTypeQuery struct {
	PaginationRequest
	Manufacturer string `form:"manufacturer" json:"manufacturer"` // 厂商过滤
	Model        string `form:"model" json:"model"`               // 型号模糊匹配
}

// RackTypeDTO 机柜型号创建/更新请求
type RackTypeDTO struct {
	Manufacturer string `json:"manufacturer" binding:"required"`
	Model        string `json:"model" binding:"required"`
	Slug         string `json:"slug" binding:"required"`
	Description  string `json:"description"`

	FormFactor    string  `json:"formFactor"`
	Width         int     `json:"width"`
	UHeight       int     `json:"uHeight"`
	StartingUnit  int     `json:"startingUnit"`
	DescUnits     bool    `json:"descUnits"`
	OuterWidth    int     `json:"outerWidth"`
	OuterDepth    int     `json:"outerDepth"`
	OuterUnit     string  `json:"outerUnit"`
	MountingDepth int     `json:"mountingDepth"`
	Weight        float64 `json:"weight"`
	WeightUnit    string  `json:"weightUnit"`
	MaxWeight     int     `json:"maxWeight"`
}

// RackTypeResponse 机柜型号响应
type RackTypeResponse struct {
	ID           int64  `json:"id"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`

	FormFactor    string  `json:"formFactor"`
	Width         int     `json:"width"`
	UHeight       int     `json:"uHeight"`
	StartingUnit  int     `json:"startingUnit"`
	DescUnits     bool    `json:"descUnits"`
	OuterWidth    int     `json:"outerWidth"`
	OuterDepth    int     `json:"outerDepth"`
	OuterUnit     string  `json:"outerUnit"`
	MountingDepth int     `json:"mountingDepth"`
	Weight        float64 `json:"weight"`
	WeightUnit    string  `json:"weightUnit"`
	MaxWeight     int     `json:"maxWeight"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// RackTypeListResponse 机柜型号列表响应
type RackTypeListResponse struct {
	List  []*RackTypeResponse `json:"list"`
	Page  int                 `json:"page"`
	Size  int                 `json:"size"`
	Total int64               `json:"total"`
}

// RackTypeService provides operations for RackType.
type RackTypeService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRackTypeService creates a new RackTypeService.
func NewRackTypeService(db *gorm.DB, logger *zap.Logger) *RackTypeService {
	return &RackTypeService{db: db, logger: logger}
}

// GetRackType 获取机柜型号详情
func (s *RackTypeService) GetRackType(ctx context.Context, id int64) (*RackTypeResponse, error) {
	var model portal.RackType
	if err := s.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, HandleDBError(err, ResourceRackType, id)
	}
	return toRackTypeResponse(&model), nil
}

// ListRackTypes 获取机柜型号列表
func (s *RackTypeService) ListRackTypes(ctx context.Context, query *RackTypeQuery) (*RackTypeListResponse, error) {
	var models []portal.RackType
	var total int64

	db := s.db.WithContext(ctx).Model(&portal.RackType{})
	if query.Manufacturer != EmptyString {
		db = db.Where("manufacturer = ?", query.Manufacturer)
	}
	if query.Model != EmptyString {
		db = db.Where("model LIKE ?", "%"+query.Model+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count rack types: %w", err)
	}

	query.AdjustPagination()

	err := db.Order("manufacturer, model").
		Offset(query.GetOffset()).Limit(query.Size).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rack types: %w", err)
	}

	list := make([]*RackTypeResponse, 0, len(models))
	for i := range models {
		list = append(list, toRackTypeResponse(&models[i]))
	}

	return &RackTypeListResponse{
		List:  list,
		Page:  query.Page,
		Size:  query.Size,
		Total: total,
	}, nil
}

// CreateRackType 创建机柜型号
func (s *RackTypeService) CreateRackType(ctx context.Context, dto *RackTypeDTO) (*RackTypeResponse, error) {
	model := &portal.RackType{
		Manufacturer:   dto.Manufacturer,
		Model:          dto.Model,
		Slug:           dto.Slug,
		Description:    dto.Description,
		RackDimensions: dto.dimensions(),
	}
	if model.UHeight == 0 {
		model.UHeight = portal.RackUHeightDefault
	}
	if model.StartingUnit == 0 {
		model.StartingUnit = portal.RackStartingUnitDefault
	}
	if model.Width == 0 {
		model.Width = portal.RackWidth19IN
	}
	if err := validateRackTypeDimensions(&model.RackDimensions); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to create rack type: %w", err)
	}
	return toRackTypeResponse(model), nil
}

// UpdateRackType 更新机柜型号
// 物理属性变更会在同一事务内级联复制到所有关联机柜.
func (s *RackTypeService) UpdateRackType(ctx context.Context, id int64, dto *RackTypeDTO) (*RackTypeResponse, error) {
	var model portal.RackType

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model, id).Error; err != nil {
			return HandleDBError(err, ResourceRackType, id)
		}

		model.Manufacturer = dto.Manufacturer
		model.Model = dto.Model
		model.Slug = dto.Slug
		model.Description = dto.Description
		model.RackDimensions = dto.dimensions()
		if err := validateRackTypeDimensions(&model.RackDimensions); err != nil {
			return err
		}
		if err := tx.Save(&model).Error; err != nil {
			return fmt.Errorf("failed to update rack type %d: %w", id, err)
		}
		return s.propagateToRacks(tx, &model)
	})
	if err != nil {
		return nil, err
	}

	return toRackTypeResponse(&model), nil
}

// DeleteRackType 删除机柜型号，关联机柜解除引用但保留已复制的物理属性
func (s *RackTypeService) DeleteRackType(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model portal.RackType
		if err := tx.First(&model, id).Error; err != nil {
			return HandleDBError(err, ResourceRackType, id)
		}
		err := tx.Model(&portal.Rack{}).
			Where("rack_type_id = ?", id).
			Update("rack_type_id", 0).Error
		if err != nil {
			return fmt.Errorf("failed to detach racks from rack type %d: %w", id, err)
		}
		return tx.Delete(&model).Error
	})
}

// propagateToRacks 将型号的物理属性复制到全部关联机柜
func (s *RackTypeService) propagateToRacks(tx *gorm.DB, rackType *portal.RackType) error {
	var racks []portal.Rack
	if err := tx.Where("rack_type_id = ?", rackType.ID).Find(&racks).Error; err != nil {
		return fmt.Errorf("failed to load racks of rack type %d: %w", rackType.ID, err)
	}
	for i := range racks {
		racks[i].RackType = rackType
		racks[i].CopyRackTypeAttrs()
		if err := tx.Save(&racks[i]).Error; err != nil {
			return fmt.Errorf("failed to propagate rack type attrs to rack %d: %w", racks[i].ID, err)
		}
	}
	if s.logger != nil && len(racks) > 0 {
		s.logger.Info("propagated rack type attrs",
			zap.Int64("rackTypeId", rackType.ID),
			zap.Int("rackCount", len(racks)),
		)
	}
	return nil
}

// validateRackTypeDimensions 校验物理属性取值范围
func validateRackTypeDimensions(d *portal.RackDimensions) error {
	if d.UHeight < 1 || d.UHeight > portal.RackUHeightMax {
		return NewBadRequestError(fmt.Sprintf(MsgInvalidUHeight, portal.RackUHeightMax))
	}
	if d.StartingUnit < 1 {
		return NewBadRequestError(MsgInvalidStartingUnit)
	}
	return nil
}

// dimensions 提取请求中的物理属性
func (dto *RackTypeDTO) dimensions() portal.RackDimensions {
	return portal.RackDimensions{
		FormFactor:    dto.FormFactor,
		Width:         dto.Width,
		UHeight:       dto.UHeight,
		StartingUnit:  dto.StartingUnit,
		DescUnits:     dto.DescUnits,
		OuterWidth:    dto.OuterWidth,
		OuterDepth:    dto.OuterDepth,
		OuterUnit:     dto.OuterUnit,
		MountingDepth: dto.MountingDepth,
		Weight:        dto.Weight,
		WeightUnit:    dto.WeightUnit,
		MaxWeight:     dto.MaxWeight,
	}
}

// toRackTypeResponse 转换为机柜型号响应
func toRackTypeResponse(m *portal.RackType) *RackTypeResponse {
	return &RackTypeResponse{
		ID:            m.ID,
		Manufacturer:  m.Manufacturer,
		Model:         m.Model,
		Slug:          m.Slug,
		Description:   m.Description,
		FormFactor:    m.FormFactor,
		Width:         m.Width,
		UHeight:       m.UHeight,
		StartingUnit:  m.StartingUnit,
		DescUnits:     m.DescUnits,
		OuterWidth:    m.OuterWidth,
		OuterDepth:    m.OuterDepth,
		OuterUnit:     m.OuterUnit,
		MountingDepth: m.MountingDepth,
		Weight:        m.Weight,
		WeightUnit:    m.WeightUnit,
		MaxWeight:     m.MaxWeight,
		CreatedAt:     m.CreatedAt.String(),
		UpdatedAt:     m.UpdatedAt.String(),
	}
}
