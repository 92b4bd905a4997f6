package portal

// 机柜状态.
const (
	RackStatusReserved       = "reserved"       // 已预留
	RackStatusAvailable      = "available"      // 可用
	RackStatusPlanned        = "planned"        // 规划中
	RackStatusActive         = "active"         // 使用中
	RackStatusDeprecated     = "deprecated"     // 已废弃
	RackStatusDecommissioned = "decommissioned" // 已下架
)

// 设备安装面.
const (
	DeviceFaceFront = "front" // 前面板
	DeviceFaceRear  = "rear"  // 后面板
	DeviceFaceNone  = ""      // 未指定（全深设备）
)

// 机柜宽度（英寸）.
const (
	RackWidth10IN = 10
	RackWidth19IN = 19
	RackWidth21IN = 21
	RackWidth23IN = 23
)

// 机柜形态.
const (
	RackFormFactor2Post   = "2-post-frame"
	RackFormFactor4Post   = "4-post-frame"
	RackFormFactorCabinet = "4-post-cabinet"
	RackFormFactorWall    = "wall-cabinet"
)

// 外部尺寸单位.
const (
	RackDimensionMillimeter = "mm"
	RackDimensionInch       = "in"
)

// 机柜高度约束.
const (
	RackUHeightDefault      = 42  // 默认高度（U）
	RackUHeightMax          = 100 // 最大高度（U）
	RackStartingUnitDefault = 1   // 默认起始单元编号
)

// 电源供电相式.
const (
	PowerFeedSupplySinglePhase = "single-phase"
	PowerFeedSupplyThreePhase  = "three-phase"
)
