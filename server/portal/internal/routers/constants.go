package routers

// HTTP 路由路径常量
const (
	// 基础路由组
	RouteGroupRacks        = "/racks"
	RouteGroupRackTypes    = "/rack-types"
	RouteGroupRackRoles    = "/rack-roles"
	RouteGroupReservations = "/rack-reservations"
	RouteGroupWebSocket    = "/ws"

	// 路由参数路径
	RouteParamID = "/:id"

	// 子路由路径
	SubRouteUnits            = "/:id/units"
	SubRouteAvailableUnits   = "/:id/available-units"
	SubRouteReservedUnits    = "/:id/reserved-units"
	SubRouteUtilization      = "/:id/utilization"
	SubRoutePowerUtilization = "/:id/power-utilization"
	SubRouteElevation        = "/:id/elevation"
	SubRouteWSRacks          = "/racks"
)

// HTTP 参数名常量
const (
	ParamID      = "id"
	ParamFace    = "face"
	ParamExpand  = "expand"
	ParamUHeight = "uHeight"
	ParamRackIDs = "rackIds"

	Base10    = 10
	BitSize64 = 64
)

// 用户相关常量
const (
	UsernameContextKey = "username"
	BasicAuthUser      = "admin"
	BasicAuthPassword  = "password"
	BasicAuthRealm     = `Basic realm="Restricted"`
)

// 通用错误消息常量
const (
	MsgInvalidIDFormat    = "invalid id format"
	MsgInvalidQueryParams = "无效的查询参数: "
	MsgInvalidRequestBody = "invalid request body: %s"

	MsgFailedToListRacks  = "failed to list racks: %s"
	MsgFailedToGetRack    = "failed to get rack: %s"
	MsgFailedToCreateRack = "failed to create rack: %s"
	MsgFailedToUpdateRack = "failed to update rack: %s"
	MsgFailedToDeleteRack = "failed to delete rack: %s"

	MsgFailedToGetUnits       = "failed to get rack units: %s"
	MsgFailedToGetAvailable   = "failed to get available units: %s"
	MsgFailedToGetReserved    = "failed to get reserved units: %s"
	MsgFailedToGetUtilization = "failed to get rack utilization: %s"
	MsgFailedToRenderSVG      = "failed to render rack elevation: %s"

	MsgFailedToListRackTypes  = "failed to list rack types: %s"
	MsgFailedToCreateRackType = "failed to create rack type: %s"
	MsgFailedToUpdateRackType = "failed to update rack type: %s"
	MsgFailedToDeleteRackType = "failed to delete rack type: %s"

	MsgFailedToListReservations  = "failed to list rack reservations: %s"
	MsgFailedToCreateReservation = "failed to create rack reservation: %s"
	MsgFailedToUpdateReservation = "failed to update rack reservation: %s"
	MsgFailedToDeleteReservation = "failed to delete rack reservation: %s"

	MsgFailedToListRackRoles = "failed to list rack roles: %s"

	MsgWebSocketUpgradeError = "failed to upgrade to websocket: %s"
)

// 成功消息常量
const (
	MsgRackCreateSuccess = "rack created successfully"
	MsgRackUpdateSuccess = "rack updated successfully"
	MsgRackDeleteSuccess = "rack deleted successfully"

	MsgRackTypeUpdateSuccess = "rack type updated successfully"
	MsgRackTypeDeleteSuccess = "rack type deleted successfully"

	MsgReservationCreateSuccess = "rack reservation created successfully"
	MsgReservationUpdateSuccess = "rack reservation updated successfully"
	MsgReservationDeleteSuccess = "rack reservation deleted successfully"

	MsgRackRoleDeleteSuccess = "rack role deleted successfully"
)
