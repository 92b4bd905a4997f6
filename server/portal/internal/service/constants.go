package service

// 通用常量
const (
	// 空字符串常量
	EmptyString = ""

	// 分页相关常量
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

// 资源类型
const (
	ResourceRack        = "Rack"
	ResourceRackType    = "Rack type"
	ResourceRackRole    = "Rack role"
	ResourceReservation = "Rack reservation"
	ResourceSite        = "Site"
)

// 校验错误消息
const (
	// ErrRecordNotFoundMsg 记录未找到错误消息模板.
	ErrRecordNotFoundMsg = "%s with id %d not found"

	MsgHeightTooSmall      = "rack must be at least %sU tall to house currently installed devices"
	MsgStartingUnitTooHigh = "rack unit numbering must begin at %s or less to house currently installed devices"
	MsgLocationMismatch    = "assigned location must belong to parent site"
	MsgInvalidUHeight      = "rack height must be between 1 and %d units"
	MsgInvalidStartingUnit = "starting unit must be at least 1"
	MsgRackTypeLocked      = "physical attributes are inherited from the assigned rack type and cannot be set directly"
)

// 机柜变更事件动作
const (
	RackActionCreated = "created"
	RackActionUpdated = "updated"
	RackActionDeleted = "deleted"
)
