package routers

import (
	"fmt"

	"dcim-ng/pkg/middleware/render"
	"dcim-ng/server/portal/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RackReservationHandler handles HTTP requests related to RackReservation.
type RackReservationHandler struct {
	service *service.RackReservationService
}

// NewRackReservationHandler creates a new RackReservationHandler, instantiating the service internally.
func NewRackReservationHandler(db *gorm.DB, logger *zap.Logger) *RackReservationHandler {
	return &RackReservationHandler{service: service.NewRackReservationService(db, logger)}
}

// RegisterRoutes registers RackReservation routes with the given router group.
func (h *RackReservationHandler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group(RouteGroupReservations)
	{
		group.GET("", h.listReservations)
		group.GET(RouteParamID, h.getReservation)
		group.POST("", h.createReservation)
		group.PUT(RouteParamID, h.updateReservation)
		group.DELETE(RouteParamID, h.deleteReservation)
	}
}

// listReservations 获取预留列表
// @Summary 获取预留列表
// @Description 获取机柜单元预留列表，支持分页与按机柜、预留人过滤
// @Tags 机柜预留管理
// @Accept json
// @Produce json
// @Param page query int false "页码，默认1"
// @Param size query int false "每页大小，默认10"
// @Param rackId query int false "机柜ID"
// @Success 200 {object} render.Response
// @Failure 400 {object} render.ErrorResponse
// @Failure 500 {object} render.ErrorResponse
// @Router /fe-v1/rack-reservations [get]
func (h *RackReservationHandler) listReservations(c *gin.Context) {
	var query service.RackReservationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		render.BadRequest(c, MsgInvalidQueryParams+err.Error())
		return
	}

	response, err := h.service.ListReservations(c.Request.Context(), &query)
	if err != nil {
		render.InternalServerError(c, fmt.Sprintf(MsgFailedToListReservations, err.Error()))
		return
	}

	render.Success(c, response)
}

// getReservation 获取预留详情
func (h *RackReservationHandler) getReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	reservation, err := h.service.GetReservation(c.Request.Context(), id)
	if err != nil {
		renderServiceError(c, err, MsgFailedToListReservations)
		return
	}

	render.Success(c, reservation)
}

// createReservation 创建预留
// @Summary 创建预留
// @Description 预留机柜单元，单元越界或与既有预留冲突时返回400
// @Tags 机柜预留管理
// @Accept json
// @Produce json
// @Param data body service.RackReservationDTO true "预留创建内容"
// @Success 200 {object} render.Response
// @Failure 400 {object} render.ErrorResponse
// @Failure 404 {object} render.ErrorResponse
// @Failure 500 {object} render.ErrorResponse
// @Router /fe-v1/rack-reservations [post]
func (h *RackReservationHandler) createReservation(c *gin.Context) {
	var dto service.RackReservationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		render.BadRequest(c, fmt.Sprintf(MsgInvalidRequestBody, err.Error()))
		return
	}

	reservation, err := h.service.CreateReservation(c.Request.Context(), &dto)
	if err != nil {
		renderServiceError(c, err, MsgFailedToCreateReservation)
		return
	}

	render.SuccessWithMessage(c, MsgReservationCreateSuccess, reservation)
}

// updateReservation 更新预留
func (h *RackReservationHandler) updateReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var dto service.RackReservationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		render.BadRequest(c, fmt.Sprintf(MsgInvalidRequestBody, err.Error()))
		return
	}

	reservation, err := h.service.UpdateReservation(c.Request.Context(), id, &dto)
	if err != nil {
		renderServiceError(c, err, MsgFailedToUpdateReservation)
		return
	}

	render.SuccessWithMessage(c, MsgReservationUpdateSuccess, reservation)
}

// deleteReservation 删除预留
func (h *RackReservationHandler) deleteReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteReservation(c.Request.Context(), id); err != nil {
		renderServiceError(c, err, MsgFailedToDeleteReservation)
		return
	}

	render.SuccessWithMessage(c, MsgReservationDeleteSuccess, nil)
}
