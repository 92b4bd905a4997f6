package rackspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDevices() []Device {
	return []Device{
		{ID: 1, Name: "web-01", Position: UnitFromInt(1), UHeight: FullU, Face: FaceFront},
		{ID: 2, Name: "db-01", Position: UnitFromInt(3), UHeight: 2 * FullU, Face: FaceFront, IsFullDepth: true},
	}
}

func TestRackUnitsIdempotent(t *testing.T) {
	cfg := Config{UHeight: 8, StartingUnit: 1}
	q := ElevationQuery{Face: FaceFront, ExpandDevices: true}

	first := RackUnits(cfg, testDevices(), q)
	second := RackUnits(cfg, testDevices(), q)
	assert.Equal(t, first, second)
}

func TestRackUnitsExpandDevices(t *testing.T) {
	cfg := Config{UHeight: 8, StartingUnit: 1}
	entries := RackUnits(cfg, testDevices(), ElevationQuery{Face: FaceFront, ExpandDevices: true})
	require.Len(t, entries, 16)

	byUnit := make(map[Unit]UnitEntry)
	for _, e := range entries {
		byUnit[e.Unit] = e
	}

	// web-01 占用 [1, 2) 的两个半步
	for _, u := range []Unit{UnitFromInt(1), UnitFromDecimal(1.5)} {
		e := byUnit[u]
		assert.True(t, e.Occupied)
		require.NotNil(t, e.Device)
		assert.Equal(t, int64(1), e.Device.ID)
	}
	// db-01 占用 [3, 5) 的四个半步
	for _, u := range []Unit{UnitFromInt(3), UnitFromDecimal(3.5), UnitFromInt(4), UnitFromDecimal(4.5)} {
		e := byUnit[u]
		assert.True(t, e.Occupied)
		require.NotNil(t, e.Device)
		assert.Equal(t, int64(2), e.Device.ID)
	}
	// 其余空闲
	assert.False(t, byUnit[UnitFromInt(2)].Occupied)
	assert.False(t, byUnit[UnitFromInt(5)].Occupied)
}

func TestRackUnitsCompactMode(t *testing.T) {
	cfg := Config{UHeight: 8, StartingUnit: 1}
	entries := RackUnits(cfg, testDevices(), ElevationQuery{Face: FaceFront})

	byUnit := make(map[Unit]UnitEntry)
	for _, e := range entries {
		byUnit[e.Unit] = e
	}

	// 紧凑模式只标注设备底部条目并携带高度
	bottom := byUnit[UnitFromInt(3)]
	require.NotNil(t, bottom.Device)
	assert.Equal(t, 2*FullU, bottom.DeviceHeight)

	above := byUnit[UnitFromInt(4)]
	assert.Nil(t, above.Device)
	assert.False(t, above.Occupied)
}

func TestRackUnitsFullDepthVisibleOnRear(t *testing.T) {
	cfg := Config{UHeight: 8, StartingUnit: 1}
	entries := RackUnits(cfg, testDevices(), ElevationQuery{Face: FaceRear, ExpandDevices: true})

	byUnit := make(map[Unit]UnitEntry)
	for _, e := range entries {
		byUnit[e.Unit] = e
	}

	// 全深设备在后面板查询中同样占用
	e := byUnit[UnitFromInt(3)]
	assert.True(t, e.Occupied)
	require.NotNil(t, e.Device)
	assert.Equal(t, int64(2), e.Device.ID)

	// 仅前面板的设备在后面板不出现
	assert.False(t, byUnit[UnitFromInt(1)].Occupied)
}

func TestRackUnitsViewerRedaction(t *testing.T) {
	cfg := Config{UHeight: 8, StartingUnit: 1}
	viewer := func(deviceID int64) bool { return deviceID != 2 }
	entries := RackUnits(cfg, testDevices(), ElevationQuery{
		Face:          FaceFront,
		ExpandDevices: true,
		Viewer:        viewer,
	})

	byUnit := make(map[Unit]UnitEntry)
	for _, e := range entries {
		byUnit[e.Unit] = e
	}

	// 不可见设备：占用标记保留，设备引用被抹除
	hidden := byUnit[UnitFromInt(3)]
	assert.True(t, hidden.Occupied)
	assert.Nil(t, hidden.Device)

	visible := byUnit[UnitFromInt(1)]
	assert.True(t, visible.Occupied)
	assert.NotNil(t, visible.Device)
}

func TestRackUnitsExcludeAndUnmounted(t *testing.T) {
	cfg := Config{UHeight: 8, StartingUnit: 1}
	devices := append(testDevices(),
		Device{ID: 3, Name: "pdu-0u", Position: 0, UHeight: FullU, Face: FaceFront},
	)
	entries := RackUnits(cfg, devices, ElevationQuery{
		Face:          FaceFront,
		ExpandDevices: true,
		Exclude:       []int64{1},
	})

	for _, e := range entries {
		if e.Device != nil {
			assert.NotEqual(t, int64(1), e.Device.ID, "excluded device leaked at %s", e.Unit)
			assert.NotEqual(t, int64(3), e.Device.ID, "unmounted device leaked at %s", e.Unit)
		}
	}
}

func TestRackUnitsOverlapLastWriteWins(t *testing.T) {
	cfg := Config{UHeight: 4, StartingUnit: 1}
	devices := []Device{
		{ID: 10, Name: "first", Position: UnitFromInt(2), UHeight: FullU, Face: FaceFront},
		{ID: 11, Name: "second", Position: UnitFromInt(2), UHeight: FullU, Face: FaceFront},
	}
	entries := RackUnits(cfg, devices, ElevationQuery{Face: FaceFront, ExpandDevices: true})

	for _, e := range entries {
		if e.Unit == UnitFromInt(2) {
			assert.True(t, e.Occupied)
			require.NotNil(t, e.Device)
			assert.Equal(t, int64(11), e.Device.ID)
		}
	}
}
