package rackspace

import "math"

// AvailabilityQuery AvailableUnits 的查询参数.
type AvailabilityQuery struct {
	UHeight        Unit    // 所需连续高度（半U步长数），默认一个整U
	Face           string  // 目标安装面，空表示全深放置（任意面设备都阻挡）
	Exclude        []int64 // 需要排除的设备ID
	IgnoreExcluded bool    // 跳过标记为不计入容量占用的设备
	OnOverlap      func(deviceID int64, u Unit) // 检测到设备区间重叠时的诊断回调，可为nil
}

// AvailableUnits 返回可容纳指定高度设备的候选位置，按生成序的逆序排列.
//
// 两阶段计算：先从完整单元序列中剔除被设备占用的半步，再筛选出
// 上方存在足够连续空闲空间的候选位置。多U设备只能放在连续空闲块内，
// 空闲总量足够但不连续的位置不合格.
// 设备区间重叠（上游数据完整性问题）不会导致计算失败，仅触发诊断回调.
func AvailableUnits(cfg Config, devices []Device, q AvailabilityQuery) []Unit {
	required := q.UHeight
	if required <= 0 {
		required = FullU
	}

	excluded := make(map[int64]bool, len(q.Exclude))
	for _, id := range q.Exclude {
		excluded[id] = true
	}

	ordered := cfg.Units()
	free := make(map[Unit]bool, len(ordered))
	for _, u := range ordered {
		free[u] = true
	}

	// 第一阶段：剔除设备占用的半步
	for _, d := range devices {
		if excluded[d.ID] || d.Position <= 0 || d.UHeight <= 0 {
			continue
		}
		if q.IgnoreExcluded && d.ExcludeFromUtilization {
			continue
		}
		if !d.blocks(q.Face) {
			continue
		}
		for u := d.Position; u < d.Position+d.UHeight; u += HalfU {
			if !free[u] {
				// 同一半步被多台设备占用，容忍并继续
				if q.OnOverlap != nil && cfg.Contains(u) {
					q.OnOverlap(d.ID, u)
				}
				continue
			}
			delete(free, u)
		}
	}

	// 第二阶段：连续性筛选
	available := make([]Unit, 0, len(free))
	for _, u := range ordered {
		if !free[u] {
			continue
		}
		fits := true
		for step := Unit(0); step < required; step += HalfU {
			if !free[u+step] {
				fits = false
				break
			}
		}
		if fits {
			available = append(available, u)
		}
	}

	// 逆序返回（与生成序相反）
	for i, j := 0, len(available)-1; i < j; i, j = i+1, j-1 {
		available[i], available[j] = available[j], available[i]
	}
	return available
}

// Utilization 计算机柜空间利用率（0-100）.
// 已占用和已预留的单元都计入占用；标记为不计入容量占用的设备（如假面板）
// 在放置查询中阻挡空间，但不计入利用率，两处的用法是不对称的.
func Utilization(cfg Config, devices []Device, reservations []Reservation) float64 {
	total := cfg.TotalUnits()
	if total == 0 {
		return 0
	}

	available := AvailableUnits(cfg, devices, AvailabilityQuery{
		UHeight:        HalfU,
		IgnoreExcluded: true,
	})

	free := make(map[Unit]bool, len(available))
	for _, u := range available {
		free[u] = true
	}

	// 预留的每个整U位置遮蔽 [u, u+1) 的两个半步
	for u := range ReservedUnits(reservations) {
		for step := Unit(0); step < FullU; step += HalfU {
			delete(free, u+step)
		}
	}

	occupied := total - len(free)
	return float64(occupied) / float64(total) * 100
}

// PowerFeed 引擎视角的电源馈线.
type PowerFeed struct {
	ID             int64
	AvailablePower int // 可用功率（VA）
}

// PowerPort 引擎视角的电源端口.
type PowerPort struct {
	PowerFeedID   int64 // 对端馈线ID
	AllocatedDraw int   // 分配功耗（VA）
}

// PowerUtilization 计算机柜电力利用率，结果保留1位小数.
// 馈线可用功率总和为0时返回0，避免除零.
func PowerUtilization(feeds []PowerFeed, ports []PowerPort) float64 {
	total := 0
	feedIDs := make(map[int64]bool, len(feeds))
	for _, f := range feeds {
		total += f.AvailablePower
		feedIDs[f.ID] = true
	}
	if total == 0 {
		return 0
	}

	allocated := 0
	for _, p := range ports {
		if feedIDs[p.PowerFeedID] {
			allocated += p.AllocatedDraw
		}
	}

	return math.Round(float64(allocated)/float64(total)*1000) / 10
}
