package rackspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimals(units []Unit) []float64 {
	out := make([]float64, 0, len(units))
	for _, u := range units {
		out = append(out, u.Decimal())
	}
	return out
}

func TestAvailableUnitsEmptyRack(t *testing.T) {
	cfg := Config{UHeight: 4, StartingUnit: 1}
	available := AvailableUnits(cfg, nil, AvailabilityQuery{UHeight: FullU})

	// 空机柜：顶部半步之外的所有位置都能容纳1U设备
	// 生成序为 4.5,4,...,1，逆序后为 1,1.5,...,4
	assert.Equal(t, []float64{1, 1.5, 2, 2.5, 3, 3.5, 4}, decimals(available))
}

func TestAvailableUnitsContiguity(t *testing.T) {
	// 4U机柜，1U设备安装在位置2：高度2U的设备只能放在位置3
	// 位置1被相邻的占用单元阻挡，位置4上方空间不足
	cfg := Config{UHeight: 4, StartingUnit: 1}
	devices := []Device{
		{ID: 1, Position: UnitFromInt(2), UHeight: FullU, Face: FaceFront},
	}

	available := AvailableUnits(cfg, devices, AvailabilityQuery{
		UHeight: 2 * FullU,
		Face:    FaceFront,
	})
	assert.Equal(t, []float64{3}, decimals(available))

	// 被占用的位置2本身绝不能出现
	for _, u := range available {
		assert.NotEqual(t, UnitFromInt(2), u)
	}
}

func TestAvailableUnitsFaceFiltering(t *testing.T) {
	cfg := Config{UHeight: 4, StartingUnit: 1}
	devices := []Device{
		{ID: 1, Position: UnitFromInt(2), UHeight: FullU, Face: FaceFront},
		{ID: 2, Position: UnitFromInt(4), UHeight: FullU, Face: FaceRear, IsFullDepth: true},
	}

	// 后面板查询：前面板半深设备不阻挡，全深设备阻挡
	rear := AvailableUnits(cfg, devices, AvailabilityQuery{UHeight: FullU, Face: FaceRear})
	assert.Contains(t, decimals(rear), 2.0)
	assert.NotContains(t, decimals(rear), 4.0)

	// 全深放置查询（face为空）：任意面的设备都阻挡
	full := AvailableUnits(cfg, devices, AvailabilityQuery{UHeight: FullU})
	assert.NotContains(t, decimals(full), 2.0)
	assert.NotContains(t, decimals(full), 4.0)
}

func TestAvailableUnitsExcludeDevice(t *testing.T) {
	// 机柜内移位场景：排除自身后原位置重新可用
	cfg := Config{UHeight: 4, StartingUnit: 1}
	devices := []Device{
		{ID: 1, Position: UnitFromInt(2), UHeight: FullU, Face: FaceFront},
	}

	available := AvailableUnits(cfg, devices, AvailabilityQuery{
		UHeight: FullU,
		Face:    FaceFront,
		Exclude: []int64{1},
	})
	assert.Contains(t, decimals(available), 2.0)
}

func TestAvailableUnitsIgnoreExcludedDevices(t *testing.T) {
	cfg := Config{UHeight: 4, StartingUnit: 1}
	devices := []Device{
		{ID: 1, Position: UnitFromInt(2), UHeight: FullU, Face: FaceFront, ExcludeFromUtilization: true},
	}

	blocked := AvailableUnits(cfg, devices, AvailabilityQuery{UHeight: FullU, Face: FaceFront})
	assert.NotContains(t, decimals(blocked), 2.0)

	ignored := AvailableUnits(cfg, devices, AvailabilityQuery{
		UHeight:        FullU,
		Face:           FaceFront,
		IgnoreExcluded: true,
	})
	assert.Contains(t, decimals(ignored), 2.0)
}

func TestAvailableUnitsOverlapTolerance(t *testing.T) {
	// 两台设备错误地占用同一区间：计算不失败，诊断回调被触发
	cfg := Config{UHeight: 4, StartingUnit: 1}
	devices := []Device{
		{ID: 1, Position: UnitFromInt(2), UHeight: FullU, Face: FaceFront},
		{ID: 2, Position: UnitFromInt(2), UHeight: FullU, Face: FaceFront},
	}

	var overlaps []Unit
	available := AvailableUnits(cfg, devices, AvailabilityQuery{
		UHeight: FullU,
		Face:    FaceFront,
		OnOverlap: func(deviceID int64, u Unit) {
			assert.Equal(t, int64(2), deviceID)
			overlaps = append(overlaps, u)
		},
	})

	assert.NotContains(t, decimals(available), 2.0)
	assert.Equal(t, []Unit{UnitFromInt(2), UnitFromDecimal(2.5)}, overlaps)
}

func TestAvailableUnitsDescendingRack(t *testing.T) {
	cfg := Config{UHeight: 4, StartingUnit: 1, DescUnits: true}
	devices := []Device{
		{ID: 1, Position: UnitFromInt(2), UHeight: FullU, Face: FaceFront},
	}

	available := AvailableUnits(cfg, devices, AvailabilityQuery{
		UHeight: 2 * FullU,
		Face:    FaceFront,
	})
	// 降序生成序为 1,...,4.5，逆序后最高编号在前
	assert.Equal(t, []float64{3}, decimals(available))
}

func TestUtilizationBoundaries(t *testing.T) {
	cfg := Config{UHeight: 4, StartingUnit: 1}

	t.Run("empty rack is zero", func(t *testing.T) {
		assert.InDelta(t, 0, Utilization(cfg, nil, nil), 1e-9)
	})

	t.Run("fully occupied rack is hundred", func(t *testing.T) {
		devices := []Device{
			{ID: 1, Position: UnitFromInt(1), UHeight: 4 * FullU, Face: FaceFront},
		}
		assert.InDelta(t, 100, Utilization(cfg, devices, nil), 1e-9)
	})

	t.Run("occupied plus reserved is hundred", func(t *testing.T) {
		devices := []Device{
			{ID: 1, Position: UnitFromInt(1), UHeight: 2 * FullU, Face: FaceFront},
		}
		reservations := []Reservation{
			{ID: 1, Units: []Unit{UnitFromInt(3), UnitFromInt(4)}},
		}
		assert.InDelta(t, 100, Utilization(cfg, devices, reservations), 1e-9)
	})

	t.Run("reservation alone consumes capacity", func(t *testing.T) {
		reservations := []Reservation{
			{ID: 1, Units: []Unit{UnitFromInt(1)}},
		}
		assert.InDelta(t, 25, Utilization(cfg, nil, reservations), 1e-9)
	})

	t.Run("excluded device does not count for utilization", func(t *testing.T) {
		// 不计入容量占用的设备（如假面板）阻挡放置查询，但不计入利用率
		devices := []Device{
			{ID: 1, Position: UnitFromInt(1), UHeight: FullU, Face: FaceFront, ExcludeFromUtilization: true},
		}
		assert.InDelta(t, 0, Utilization(cfg, devices, nil), 1e-9)
		blocked := AvailableUnits(cfg, devices, AvailabilityQuery{UHeight: FullU, Face: FaceFront})
		assert.NotContains(t, decimals(blocked), 1.0)
	})
}

func TestPowerUtilization(t *testing.T) {
	t.Run("zero available power guards division", func(t *testing.T) {
		assert.InDelta(t, 0, PowerUtilization(nil, nil), 1e-9)
		assert.InDelta(t, 0, PowerUtilization([]PowerFeed{{ID: 1, AvailablePower: 0}}, nil), 1e-9)
	})

	t.Run("allocated draw over total with one decimal", func(t *testing.T) {
		feeds := []PowerFeed{
			{ID: 1, AvailablePower: 2000},
			{ID: 2, AvailablePower: 1000},
		}
		ports := []PowerPort{
			{PowerFeedID: 1, AllocatedDraw: 500},
			{PowerFeedID: 2, AllocatedDraw: 250},
			{PowerFeedID: 99, AllocatedDraw: 10000}, // 未连接到本机柜馈线，不计入
		}
		assert.InDelta(t, 25.0, PowerUtilization(feeds, ports), 1e-9)
	})

	t.Run("rounding to one decimal place", func(t *testing.T) {
		feeds := []PowerFeed{{ID: 1, AvailablePower: 3000}}
		ports := []PowerPort{{PowerFeedID: 1, AllocatedDraw: 1000}}
		assert.InDelta(t, 33.3, PowerUtilization(feeds, ports), 1e-9)
	})
}

func TestAvailableUnitsDefaultHeight(t *testing.T) {
	cfg := Config{UHeight: 2, StartingUnit: 1}
	available := AvailableUnits(cfg, nil, AvailabilityQuery{})
	require.NotEmpty(t, available)
	// 未指定高度时按1U处理
	assert.Equal(t, []float64{1, 1.5, 2}, decimals(available))
}
