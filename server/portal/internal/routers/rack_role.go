package routers

import (
	"fmt"

	"dcim-ng/pkg/middleware/render"
	"dcim-ng/server/portal/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RackRoleHandler handles HTTP requests related to RackRole.
type RackRoleHandler struct {
	service *service.RackRoleService
}

// NewRackRoleHandler creates a new RackRoleHandler, instantiating the service internally.
func NewRackRoleHandler(db *gorm.DB) *RackRoleHandler {
	return &RackRoleHandler{service: service.NewRackRoleService(db)}
}

// RegisterRoutes registers RackRole routes with the given router group.
func (h *RackRoleHandler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group(RouteGroupRackRoles)
	{
		group.GET("", h.listRackRoles)
		group.GET(RouteParamID, h.getRackRole)
		group.POST("", h.createRackRole)
		group.PUT(RouteParamID, h.updateRackRole)
		group.DELETE(RouteParamID, h.deleteRackRole)
	}
}

// listRackRoles 获取机柜角色列表
func (h *RackRoleHandler) listRackRoles(c *gin.Context) {
	roles, err := h.service.ListRackRoles(c.Request.Context())
	if err != nil {
		render.InternalServerError(c, fmt.Sprintf(MsgFailedToListRackRoles, err.Error()))
		return
	}
	render.Success(c, roles)
}

// getRackRole 获取机柜角色详情
func (h *RackRoleHandler) getRackRole(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	role, err := h.service.GetRackRole(c.Request.Context(), id)
	if err != nil {
		renderServiceError(c, err, MsgFailedToListRackRoles)
		return
	}
	render.Success(c, role)
}

// createRackRole 创建机柜角色
func (h *RackRoleHandler) createRackRole(c *gin.Context) {
	var dto service.RackRoleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		render.BadRequest(c, fmt.Sprintf(MsgInvalidRequestBody, err.Error()))
		return
	}

	role, err := h.service.CreateRackRole(c.Request.Context(), &dto)
	if err != nil {
		renderServiceError(c, err, MsgFailedToListRackRoles)
		return
	}
	render.Success(c, role)
}

// updateRackRole 更新机柜角色
func (h *RackRoleHandler) updateRackRole(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var dto service.RackRoleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		render.BadRequest(c, fmt.Sprintf(MsgInvalidRequestBody, err.Error()))
		return
	}

	role, err := h.service.UpdateRackRole(c.Request.Context(), id, &dto)
	if err != nil {
		renderServiceError(c, err, MsgFailedToListRackRoles)
		return
	}
	render.Success(c, role)
}

// deleteRackRole 删除机柜角色
func (h *RackRoleHandler) deleteRackRole(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteRackRole(c.Request.Context(), id); err != nil {
		renderServiceError(c, err, MsgFailedToListRackRoles)
		return
	}
	render.SuccessWithMessage(c, MsgRackRoleDeleteSuccess, nil)
}
