package redis

// Redis 键与频道定义，集中维护避免散落各处.
const (
	// RackUpdatesChannel 机柜变更事件的发布频道，
	// portal 服务发布，WebSocket 推送端订阅.
	RackUpdatesChannel = "dcim:rack:updates"

	// CapacityReportLockKey 容量日报任务的分布式锁键.
	CapacityReportLockKey = "dcim:lock:capacity-report"

	// ReportArchiveLockKey 报表归档任务的分布式锁键.
	ReportArchiveLockKey = "dcim:lock:report-archive"
)
