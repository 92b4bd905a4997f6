// Package routers defines the HTTP routes for the portal module.
package routers

import (
	"fmt"
	"strconv"

	"dcim-ng/pkg/middleware/render"
	"dcim-ng/server/portal/internal/service"
	"dcim-ng/internal/rackspace"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RackHandler handles HTTP requests related to Rack.
type RackHandler struct {
	service *service.RackService
}

// NewRackHandler creates a new RackHandler, instantiating the service internally.
func NewRackHandler(db *gorm.DB, logger *zap.Logger, publisher service.RackEventPublisher) *RackHandler {
	rackService := service.NewRackService(db, logger, publisher)
	return &RackHandler{service: rackService}
}

// RegisterRoutes registers Rack routes with the given router group.
func (h *RackHandler) RegisterRoutes(r *gin.RouterGroup) {
	rackGroup := r.Group(RouteGroupRacks)
	{
		rackGroup.GET("", h.listRacks)
		rackGroup.GET(RouteParamID, h.getRack)
		rackGroup.POST("", h.createRack)
		rackGroup.PUT(RouteParamID, h.updateRack)
		rackGroup.DELETE(RouteParamID, h.deleteRack)

		rackGroup.GET(SubRouteUnits, h.getRackUnits)
		rackGroup.GET(SubRouteAvailableUnits, h.getAvailableUnits)
		rackGroup.GET(SubRouteReservedUnits, h.getReservedUnits)
		rackGroup.GET(SubRouteUtilization, h.getUtilization)
		rackGroup.GET(SubRoutePowerUtilization, h.getPowerUtilization)
		rackGroup.GET(SubRouteElevation, h.getElevation)
	}
}

// getRack 获取机柜详情
// @Summary 获取机柜详情
// @Description 根据机柜ID获取机柜的详细信息
// @Tags 机柜管理
// @Accept json
// @Produce json
// @Param id path int true "机柜ID"
// @Success 200 {object} render.Response
// @Failure 400 {object} render.ErrorResponse
// @Failure 404 {object} render.ErrorResponse
// @Failure 500 {object} render.ErrorResponse
// @Router /fe-v1/racks/{id} [get]
func (h *RackHandler) getRack(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	rack, err := h.service.GetRack(c.Request.Context(), id)
	if err != nil {
		renderServiceError(c, err, MsgFailedToGetRack)
		return
	}

	render.Success(c, rack)
}

// listRacks 获取机柜列表
// @Summary 获取机柜列表
// @Description 获取机柜列表，支持分页与按站点、状态等过滤
// @Tags 机柜管理
// @Accept json
// @Produce json
// @Param page query int false "页码，默认1"
// @Param size query int false "每页大小，默认10"
// @Param name query string false "名称模糊匹配"
// @Param siteId query int false "站点ID"
// @Param status query string false "机柜状态"
// @Success 200 {object} render.Response
// @Failure 400 {object} render.ErrorResponse
// @Failure 500 {object} render.ErrorResponse
// @Router /fe-v1/racks [get]
func (h *RackHandler) listRacks(c *gin.Context) {
	var query service.RackQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		render.BadRequest(c, MsgInvalidQueryParams+err.Error())
		return
	}

	response, err := h.service.ListRacks(c.Request.Context(), &query)
	if err != nil {
		render.InternalServerError(c, fmt.Sprintf(MsgFailedToListRacks, err.Error()))
		return
	}

	render.Success(c, response)
}

// createRack 创建机柜
// @Summary 创建机柜
// @Description 创建机柜，关联机柜型号时物理属性由型号继承
// @Tags 机柜管理
// @Accept json
// @Produce json
// @Param data body service.RackCreateDTO true "机柜创建内容"
// @Success 200 {object} render.Response
// @Failure 400 {object} render.ErrorResponse
// @Failure 500 {object} render.ErrorResponse
// @Router /fe-v1/racks [post]
func (h *RackHandler) createRack(c *gin.Context) {
	var dto service.RackCreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		render.BadRequest(c, fmt.Sprintf(MsgInvalidRequestBody, err.Error()))
		return
	}

	rack, err := h.service.CreateRack(c.Request.Context(), &dto)
	if err != nil {
		renderServiceError(c, err, MsgFailedToCreateRack)
		return
	}

	render.SuccessWithMessage(c, MsgRackCreateSuccess, rack)
}

// updateRack 更新机柜
// @Summary 更新机柜
// @Description 根据ID更新机柜属性，高度与起始编号校验失败时整体回滚
// @Tags 机柜管理
// @Accept json
// @Produce json
// @Param id path int true "机柜ID"
// @Param data body service.RackUpdateDTO true "机柜更新内容"
// @Success 200 {object} render.Response
// @Failure 400 {object} render.ErrorResponse
// @Failure 404 {object} render.ErrorResponse
// @Failure 500 {object} render.ErrorResponse
// @Router /fe-v1/racks/{id} [put]
func (h *RackHandler) updateRack(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var dto service.RackUpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		render.BadRequest(c, fmt.Sprintf(MsgInvalidRequestBody, err.Error()))
		return
	}

	rack, err := h.service.UpdateRack(c.Request.Context(), id, &dto)
	if err != nil {
		renderServiceError(c, err, MsgFailedToUpdateRack)
		return
	}

	render.SuccessWithMessage(c, MsgRackUpdateSuccess, rack)
}

// deleteRack 删除机柜
// @Summary 删除机柜
// @Description 根据ID删除机柜，预留记录级联删除
// @Tags 机柜管理
// @Accept json
// @Produce json
// @Param id path int true "机柜ID"
// @Success 200 {object} render.Response
// @Failure 400 {object} render.ErrorResponse
// @Failure 404 {object} render.ErrorResponse
// @Failure 500 {object} render.ErrorResponse
// @Router /fe-v1/racks/{id} [delete]
func (h *RackHandler) deleteRack(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteRack(c.Request.Context(), id); err != nil {
		renderServiceError(c, err, MsgFailedToDeleteRack)
		return
	}

	render.SuccessWithMessage(c, MsgRackDeleteSuccess, nil)
}

// getRackUnits 获取机柜立面图单元
// @Summary 获取机柜立面图单元
// @Description 按安装面返回机柜的单元条目，未认证请求不返回设备信息
// @Tags 机柜管理
// @Accept json
// @Produce json
// @Param id path int true "机柜ID"
// @Param face query string false "安装面 front/rear，默认front"
// @Param expand query bool false "是否展开设备占用的每个单元"
// @Success 200 {object} render.Response
// @Failure 400 {object} render.ErrorResponse
// @Failure 404 {object} render.ErrorResponse
// @Failure 500 {object} render.ErrorResponse
// @Router /fe-v1/racks/{id}/units [get]
func (h *RackHandler) getRackUnits(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	q := service.RackUnitsQuery{
		Face:          c.Query(ParamFace),
		ExpandDevices: c.Query(ParamExpand) != "false",
		Viewer:        viewerFromContext(c),
	}

	units, err := h.service.GetRackUnits(c.Request.Context(), id, q)
	if err != nil {
		renderServiceError(c, err, MsgFailedToGetUnits)
		return
	}

	render.Success(c, units)
}

// getAvailableUnits 获取可用单元
// @Summary 获取可用单元
// @Description 返回可容纳指定高度设备的单元位置列表
// @Tags 机柜管理
// @Accept json
// @Produce json
// @Param id path int true "机柜ID"
// @Param uHeight query number false "所需连续高度（U），默认1"
// @Param face query string false "目标安装面，空表示全深放置"
// @Success 200 {object} render.Response
// @Failure 400 {object} render.ErrorResponse
// @Failure 404 {object} render.ErrorResponse
// @Failure 500 {object} render.ErrorResponse
// @Router /fe-v1/racks/{id}/available-units [get]
func (h *RackHandler) getAvailableUnits(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var q service.AvailableUnitsQuery
	q.Face = c.Query(ParamFace)
	if raw := c.Query(ParamUHeight); raw != "" {
		height, err := strconv.ParseFloat(raw, BitSize64)
		if err != nil || height <= 0 {
			render.BadRequest(c, MsgInvalidQueryParams+ParamUHeight)
			return
		}
		q.UHeight = height
	}

	units, err := h.service.GetAvailableUnits(c.Request.Context(), id, q)
	if err != nil {
		renderServiceError(c, err, MsgFailedToGetAvailable)
		return
	}

	render.Success(c, units)
}

// getReservedUnits 获取已预留单元
// @Summary 获取已预留单元
// @Description 返回机柜中已预留的单元及其预留记录
// @Tags 机柜管理
// @Accept json
// @Produce json
// @Param id path int true "机柜ID"
// @Success 200 {object} render.Response
// @Failure 404 {object} render.ErrorResponse
// @Failure 500 {object} render.ErrorResponse
// @Router /fe-v1/racks/{id}/reserved-units [get]
func (h *RackHandler) getReservedUnits(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	units, err := h.service.GetReservedUnits(c.Request.Context(), id)
	if err != nil {
		renderServiceError(c, err, MsgFailedToGetReserved)
		return
	}

	render.Success(c, units)
}

// getUtilization 获取机柜利用率
// @Summary 获取机柜利用率
// @Description 返回机柜的空间利用率与电力利用率
// @Tags 机柜管理
// @Accept json
// @Produce json
// @Param id path int true "机柜ID"
// @Success 200 {object} render.Response
// @Failure 404 {object} render.ErrorResponse
// @Failure 500 {object} render.ErrorResponse
// @Router /fe-v1/racks/{id}/utilization [get]
func (h *RackHandler) getUtilization(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	utilization, err := h.service.GetUtilization(c.Request.Context(), id)
	if err != nil {
		renderServiceError(c, err, MsgFailedToGetUtilization)
		return
	}

	render.Success(c, utilization)
}

// getPowerUtilization 获取机柜电力利用率
// @Summary 获取机柜电力利用率
// @Description 返回机柜电源馈线的已分配功率占可用功率的百分比
// @Tags 机柜管理
// @Accept json
// @Produce json
// @Param id path int true "机柜ID"
// @Success 200 {object} render.Response
// @Failure 404 {object} render.ErrorResponse
// @Failure 500 {object} render.ErrorResponse
// @Router /fe-v1/racks/{id}/power-utilization [get]
func (h *RackHandler) getPowerUtilization(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	utilization, err := h.service.GetPowerUtilization(c.Request.Context(), id)
	if err != nil {
		renderServiceError(c, err, MsgFailedToGetUtilization)
		return
	}

	render.Success(c, gin.H{"powerUtilization": utilization})
}

// getElevation 渲染机柜立面图
// @Summary 渲染机柜立面图
// @Description 以SVG返回机柜立面图，未认证请求的设备渲染为匿名方块
// @Tags 机柜管理
// @Accept json
// @Produce image/svg+xml
// @Param id path int true "机柜ID"
// @Param face query string false "安装面 front/rear，默认front"
// @Success 200 {string} string "SVG文档"
// @Failure 400 {object} render.ErrorResponse
// @Failure 404 {object} render.ErrorResponse
// @Failure 500 {object} render.ErrorResponse
// @Router /fe-v1/racks/{id}/elevation [get]
func (h *RackHandler) getElevation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	body, err := h.service.RenderElevation(c.Request.Context(), id, c.Query(ParamFace),
		rackspace.SVGParams{}, viewerFromContext(c))
	if err != nil {
		renderServiceError(c, err, MsgFailedToRenderSVG)
		return
	}

	render.SVG(c, body)
}

// viewerFromContext 从请求上下文构造设备可见性判定.
// 已认证用户可见全部设备；匿名请求只见占用轮廓.
func viewerFromContext(c *gin.Context) rackspace.ViewerFunc {
	if _, authed := c.Get(UsernameContextKey); authed {
		return nil
	}
	return func(int64) bool { return false }
}
