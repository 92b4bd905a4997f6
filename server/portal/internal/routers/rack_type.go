package routers

import (
	"fmt"
	"strconv"

	"dcim-ng/pkg/middleware/render"
	"dcim-ng/server/portal/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RackTypeHandler handles HTTP requests related to RackType.
type RackTypeHandler struct {
	service *service.RackTypeService
}

// NewRackTypeHandler creates a new RackTypeHandler, instantiating the service internally.
func NewRackTypeHandler(db *gorm.DB, logger *zap.Logger) *RackTypeHandler {
	return &RackTypeHandler{service: service.NewRackTypeService(db, logger)}
}

// RegisterRoutes registers RackType routes with the given router group.
func (h *RackTypeHandler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group(RouteGroupRackTypes)
	{
		group.GET("", h.listRackTypes)
		group.GET(RouteParamID, h.getRackType)
		group.POST("", h.createRackType)
		group.PUT(RouteParamID, h.updateRackType)
		group.DELETE(RouteParamID, h.deleteRackType)
	}
}

// listRackTypes 获取机柜型号列表
// @Summary 获取机柜型号列表
// @Description 获取机柜型号列表，支持分页与按厂商、型号过滤
// @Tags 机柜型号管理
// @Accept json
// @Produce json
// @Param page query int false "页码，默认1"
// @Param size query int false "每页大小，默认10"
// @Success 200 {object} render.Response
// @Failure 400 {object} render.ErrorResponse
// @Failure 500 {object} render.ErrorResponse
// @Router /fe-v1/rack-types [get]
func (h *RackTypeHandler) listRackTypes(c *gin.Context) {
	var query service.RackTypeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		render.BadRequest(c, MsgInvalidQueryParams+err.Error())
		return
	}

	response, err := h.service.ListRackTypes(c.Request.Context(), &query)
	if err != nil {
		render.InternalServerError(c, fmt.Sprintf(MsgFailedToListRackTypes, err.Error()))
		return
	}

	render.Success(c, response)
}

// getRackType 获取机柜型号详情
func (h *RackTypeHandler) getRackType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	rackType, err := h.service.GetRackType(c.Request.Context(), id)
	if err != nil {
		renderServiceError(c, err, MsgFailedToListRackTypes)
		return
	}

	render.Success(c, rackType)
}

// createRackType 创建机柜型号
func (h *RackTypeHandler) createRackType(c *gin.Context) {
	var dto service.RackTypeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		render.BadRequest(c, fmt.Sprintf(MsgInvalidRequestBody, err.Error()))
		return
	}

	rackType, err := h.service.CreateRackType(c.Request.Context(), &dto)
	if err != nil {
		renderServiceError(c, err, MsgFailedToCreateRackType)
		return
	}

	render.Success(c, rackType)
}

// updateRackType 更新机柜型号
// @Summary 更新机柜型号
// @Description 更新机柜型号，物理属性变更级联复制到所有关联机柜
// @Tags 机柜型号管理
// @Accept json
// @Produce json
// @Param id path int true "机柜型号ID"
// @Param data body service.RackTypeDTO true "机柜型号更新内容"
// @Success 200 {object} render.Response
// @Failure 400 {object} render.ErrorResponse
// @Failure 404 {object} render.ErrorResponse
// @Failure 500 {object} render.ErrorResponse
// @Router /fe-v1/rack-types/{id} [put]
func (h *RackTypeHandler) updateRackType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var dto service.RackTypeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		render.BadRequest(c, fmt.Sprintf(MsgInvalidRequestBody, err.Error()))
		return
	}

	rackType, err := h.service.UpdateRackType(c.Request.Context(), id, &dto)
	if err != nil {
		renderServiceError(c, err, MsgFailedToUpdateRackType)
		return
	}

	render.SuccessWithMessage(c, MsgRackTypeUpdateSuccess, rackType)
}

// deleteRackType 删除机柜型号
func (h *RackTypeHandler) deleteRackType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteRackType(c.Request.Context(), id); err != nil {
		renderServiceError(c, err, MsgFailedToDeleteRackType)
		return
	}

	render.SuccessWithMessage(c, MsgRackTypeDeleteSuccess, nil)
}

// parseIDParam 解析路径中的ID参数
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(ParamID), Base10, BitSize64)
	if err != nil {
		render.BadRequest(c, MsgInvalidIDFormat)
		return 0, false
	}
	return id, true
}

// renderServiceError 根据服务错误类型选择响应状态
func renderServiceError(c *gin.Context, err error, template string) {
	switch {
	case service.IsNotFound(err):
		render.NotFound(c, err.Error())
	case service.IsBadRequest(err):
		render.BadRequest(c, err.Error())
	default:
		render.InternalServerError(c, fmt.Sprintf(template, err.Error()))
	}
}
