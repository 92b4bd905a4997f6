package service

import (
	"context"
	"fmt"

	"dcim-ng/models/portal"
	"dcim-ng/internal/rackspace"

	"gorm.io/gorm"
)

// rackConfig 从机柜模型提取引擎配置.
func rackConfig(r *portal.Rack) rackspace.Config {
	return rackspace.Config{
		UHeight:      r.UHeight,
		StartingUnit: r.StartingUnit,
		DescUnits:    r.DescUnits,
	}
}

// toEngineDevices 将设备记录转换为引擎输入.
func toEngineDevices(devices []portal.Device) []rackspace.Device {
	out := make([]rackspace.Device, 0, len(devices))
	for i := range devices {
		d := &devices[i]
		out = append(out, rackspace.Device{
			ID:                     d.ID,
			Name:                   d.Name,
			Position:               rackspace.UnitFromDecimal(d.Position),
			UHeight:                rackspace.UnitFromDecimal(d.UHeight),
			Face:                   d.Face,
			IsFullDepth:            d.IsFullDepth,
			ExcludeFromUtilization: d.ExcludeFromUtilization,
		})
	}
	return out
}

// toEngineReservations 将预留记录转换为引擎输入.
func toEngineReservations(reservations []portal.RackReservation) ([]rackspace.Reservation, error) {
	out := make([]rackspace.Reservation, 0, len(reservations))
	for i := range reservations {
		r := &reservations[i]
		units, err := r.UnitList()
		if err != nil {
			return nil, fmt.Errorf("failed to parse units of reservation %d: %w", r.ID, err)
		}
		engineUnits := make([]rackspace.Unit, 0, len(units))
		for _, u := range units {
			engineUnits = append(engineUnits, rackspace.UnitFromInt(u))
		}
		out = append(out, rackspace.Reservation{
			ID:          r.ID,
			Units:       engineUnits,
			Description: r.Description,
		})
	}
	return out, nil
}

// loadEngineDevices 读取机柜内全部设备并转换为引擎输入.
// 引擎不管理事务，读取使用调用方传入的上下文所在的快照.
func loadEngineDevices(ctx context.Context, db *gorm.DB, rackID int64) ([]rackspace.Device, error) {
	var devices []portal.Device
	if err := db.WithContext(ctx).Where("rack_id = ?", rackID).Find(&devices).Error; err != nil {
		return nil, fmt.Errorf("failed to load devices of rack %d: %w", rackID, err)
	}
	return toEngineDevices(devices), nil
}

// loadEngineReservations 读取机柜预留并转换为引擎输入.
// excludeID 非零时按ID排除待保存的预留自身（按身份排除，而非按值）.
func loadEngineReservations(ctx context.Context, db *gorm.DB, rackID, excludeID int64) ([]rackspace.Reservation, error) {
	var reservations []portal.RackReservation
	query := db.WithContext(ctx).Where("rack_id = ?", rackID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to load reservations of rack %d: %w", rackID, err)
	}
	return toEngineReservations(reservations)
}
