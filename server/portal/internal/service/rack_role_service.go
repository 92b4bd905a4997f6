package service

import (
	"context"
	"fmt"

	"dcim-ng/models/portal"

	"gorm.io/gorm"
)

// RackRoleDTO 机柜角色创建/更新请求
type RackRoleDTO struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// RackRoleResponse 机柜角色响应
type RackRoleResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// RackRoleService provides operations for RackRole.
type RackRoleService struct {
	db *gorm.DB
}

// NewRackRoleService creates a new RackRoleService.
func NewRackRoleService(db *gorm.DB) *RackRoleService {
	return &RackRoleService{db: db}
}

// ListRackRoles 获取全部机柜角色
func (s *RackRoleService) ListRackRoles(ctx context.Context) ([]*RackRoleResponse, error) {
	var models []portal.RackRole
	if err := s.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list rack roles: %w", err)
	}
	list := make([]*RackRoleResponse, 0, len(models))
	for i := range models {
		list = append(list, toRackRoleResponse(&models[i]))
	}
	return list, nil
}

// GetRackRole 获取机柜角色详情
func (s *RackRoleService) GetRackRole(ctx context.Context, id int64) (*RackRoleResponse, error) {
	var model portal.RackRole
	if err := s.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, HandleDBError(err, ResourceRackRole, id)
	}
	return toRackRoleResponse(&model), nil
}

// CreateRackRole 创建机柜角色
func (s *RackRoleService) CreateRackRole(ctx context.Context, dto *RackRoleDTO) (*RackRoleResponse, error) {
	model := &portal.RackRole{
		Name:        dto.Name,
		Slug:        dto.Slug,
		Color:       dto.Color,
		Description: dto.Description,
	}
	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to create rack role: %w", err)
	}
	return toRackRoleResponse(model), nil
}

// UpdateRackRole 更新机柜角色
func (s *RackRoleService) UpdateRackRole(ctx context.Context, id int64, dto *RackRoleDTO) (*RackRoleResponse, error) {
	var model portal.RackRole
	if err := s.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, HandleDBError(err, ResourceRackRole, id)
	}

	model.Name = dto.Name
	model.Slug = dto.Slug
	model.Color = dto.Color
	model.Description = dto.Description
	if err := s.db.WithContext(ctx).Save(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to update rack role %d: %w", id, err)
	}
	return toRackRoleResponse(&model), nil
}

// DeleteRackRole 删除机柜角色，关联机柜解除引用
func (s *RackRoleService) DeleteRackRole(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model portal.RackRole
		if err := tx.First(&model, id).Error; err != nil {
			return HandleDBError(err, ResourceRackRole, id)
		}
		err := tx.Model(&portal.Rack{}).
			Where("role_id = ?", id).
			Update("role_id", 0).Error
		if err != nil {
			return fmt.Errorf("failed to detach racks from rack role %d: %w", id, err)
		}
		return tx.Delete(&model).Error
	})
}

// toRackRoleResponse 转换为机柜角色响应
func toRackRoleResponse(m *portal.RackRole) *RackRoleResponse {
	return &RackRoleResponse{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Color:       m.Color,
		Description: m.Description,
	}
}
