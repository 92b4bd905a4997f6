package rackspace

import (
	"fmt"
	"strings"
)

// Reservation 引擎视角的单元预留记录.
type Reservation struct {
	ID          int64
	Units       []Unit // 预留的整U位置
	Description string
}

// ReservedUnits 构建 单元位置 -> 预留记录 的映射.
// 唯一性约束下同一单元不应出现在多条预留中；若上游数据异常导致重复，
// 与占用解析一致采用后写覆盖策略，不中断计算.
func ReservedUnits(reservations []Reservation) map[Unit]Reservation {
	reserved := make(map[Unit]Reservation)
	for _, resv := range reservations {
		for _, u := range resv.Units {
			reserved[u] = resv
		}
	}
	return reserved
}

// InvalidUnitsError 预留引用了机柜编号范围之外的单元.
type InvalidUnitsError struct {
	UHeight int
	Units   []Unit
}

// Error 实现 error 接口.
func (e *InvalidUnitsError) Error() string {
	return fmt.Sprintf("invalid unit(s) for %dU rack: %s", e.UHeight, joinUnits(e.Units))
}

// ConflictingReservationError 预留的单元已被同机柜的其他预留占用.
type ConflictingReservationError struct {
	Units []Unit
}

// Error 实现 error 接口.
func (e *ConflictingReservationError) Error() string {
	return fmt.Sprintf("the following units have already been reserved: %s", joinUnits(e.Units))
}

// ValidateReservationUnits 预留保存前的校验门.
// others 必须为同机柜内排除了待保存预留自身（按ID排除，而非按值）的全部预留，
// 且与写操作处于同一事务读取；存储层唯一约束仍是并发场景下的最终仲裁.
func ValidateReservationUnits(cfg Config, units []Unit, others []Reservation) error {
	valid := make(map[Unit]bool, cfg.TotalUnits())
	for _, u := range cfg.Units() {
		valid[u] = true
	}

	var invalid []Unit
	for _, u := range units {
		if !valid[u] {
			invalid = append(invalid, u)
		}
	}
	if len(invalid) > 0 {
		return &InvalidUnitsError{UHeight: cfg.UHeight, Units: invalid}
	}

	reserved := ReservedUnits(others)
	var conflicts []Unit
	for _, u := range units {
		if _, ok := reserved[u]; ok {
			conflicts = append(conflicts, u)
		}
	}
	if len(conflicts) > 0 {
		return &ConflictingReservationError{Units: conflicts}
	}

	return nil
}

// joinUnits 拼接单元编号列表用于错误信息.
func joinUnits(units []Unit) string {
	parts := make([]string, 0, len(units))
	for _, u := range units {
		parts = append(parts, u.String())
	}
	return strings.Join(parts, ", ")
}
