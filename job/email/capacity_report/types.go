// Package capacity_report 生成并发送机柜容量日报.
package capacity_report

// RackCapacityDetail holds capacity data for a single rack.
type RackCapacityDetail struct {
	RackName         string
	FacilityID       string
	UHeight          int
	DeviceCount      int
	NewDevicesToday  int     // 当日新上架设备数
	SpaceUtilization float64 // 空间利用率（%）
	PowerUtilization float64 // 电力利用率（%）
}

// SiteCapacitySummary holds aggregated capacity data for a single site.
type SiteCapacitySummary struct {
	SiteName        string
	TotalRacks      int
	TotalUnits      int
	AvgUtilization  float64 // 站点内机柜空间利用率均值（%）
	HighWaterRacks  int     // 利用率超过80%的机柜数
	NewDevicesToday int     // 当日新上架设备数
	Racks           []RackCapacityDetail
}

// ReportTemplateData structures the fetched data for the HTML template.
type ReportTemplateData struct {
	ReportDate string
	Sites      []SiteCapacitySummary
}
