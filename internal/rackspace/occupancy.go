package rackspace

// 设备安装面.
const (
	FaceFront = "front"
	FaceRear  = "rear"
)

// Device 引擎视角的已安装设备，由调用方从存储层转换而来.
type Device struct {
	ID                     int64
	Name                   string
	Position               Unit   // 底部单元位置，0表示未按U位安装
	UHeight                Unit   // 占用高度（半U步长数）
	Face                   string // 安装面
	IsFullDepth            bool   // 全深设备前后面同时占用
	ExcludeFromUtilization bool   // 不计入容量占用
}

// blocks 判断设备在指定查询面上是否占用空间.
// face 为空表示全深放置查询，任意面的设备都会阻挡；
// 全深设备无论查询哪一面都占用.
func (d Device) blocks(face string) bool {
	if face == "" {
		return true
	}
	return d.Face == face || d.IsFullDepth
}

// ViewerFunc 设备可见性判定能力，由调用方注入；返回false时条目不标注设备引用，
// 但 Occupied 仍然置位（容量统计不受可见性影响）.
type ViewerFunc func(deviceID int64) bool

// UnitEntry 立面图中的一个半U条目.
type UnitEntry struct {
	Unit         Unit    `json:"unit"`
	Name         string  `json:"name"`
	Face         string  `json:"face"`
	Device       *Device `json:"device,omitempty"`
	Occupied     bool    `json:"occupied"`
	DeviceHeight Unit    `json:"height,omitempty"` // 紧凑模式下设备底部条目携带的高度
}

// ElevationQuery RackUnits 的查询参数.
type ElevationQuery struct {
	Face          string     // 查询面（front/rear）
	Exclude       []int64    // 需要排除的设备ID（如机柜内移位场景）
	ExpandDevices bool       // true时多U设备占用的每个半步都标注设备引用
	Viewer        ViewerFunc // 可见性判定，nil表示全部可见
}

// RackUnits 返回自上而下顺序的单元条目列表.
// 设备归属策略：同一位置出现多台设备（上游数据完整性问题）时后写覆盖，
// Occupied 保持为true，引擎不在此处做数据校验.
func RackUnits(cfg Config, devices []Device, q ElevationQuery) []UnitEntry {
	units := cfg.Units()
	entries := make([]UnitEntry, len(units))
	index := make(map[Unit]int, len(units))
	for i, u := range units {
		entries[i] = UnitEntry{
			Unit: u,
			Name: u.Label(),
			Face: q.Face,
		}
		index[u] = i
	}

	excluded := make(map[int64]bool, len(q.Exclude))
	for _, id := range q.Exclude {
		excluded[id] = true
	}

	for i := range devices {
		d := devices[i]
		if excluded[d.ID] || d.Position <= 0 || d.UHeight <= 0 {
			continue
		}
		if d.Face != q.Face && !d.IsFullDepth {
			continue
		}
		visible := q.Viewer == nil || q.Viewer(d.ID)

		if q.ExpandDevices {
			for u := d.Position; u < d.Position+d.UHeight; u += HalfU {
				idx, ok := index[u]
				if !ok {
					// 设备区间超出机柜范围，保存时已校验，这里直接跳过
					continue
				}
				if visible {
					entries[idx].Device = &d
				}
				entries[idx].Occupied = true
			}
			continue
		}

		idx, ok := index[d.Position]
		if !ok {
			continue
		}
		if visible {
			entries[idx].Device = &d
		}
		entries[idx].Occupied = true
		entries[idx].DeviceHeight = d.UHeight
	}

	return entries
}
