package capacity_report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet and column name constants
const (
	sheetNameSiteOverview = "站点概览"
	sheetNameRackDetail   = "机柜详情"

	colSiteName       = "站点"
	colTotalRacks     = "机柜数"
	colTotalUnits     = "总单元数(U)"
	colAvgUtilization = "平均空间利用率(%)"
	colHighWaterRacks = "高水位机柜数"

	colRackName   = "机柜"
	colFacilityID = "机房编号"
	colUHeight    = "高度(U)"
	colDevices    = "设备数"
	colSpaceUtil  = "空间利用率(%)"
	colPowerUtil  = "电力利用率(%)"
)

// 高水位单元格样式参数
const (
	warnFillColor = "FFC7CE"
	warnFontColor = "9C0006"
)

// GenerateCapacityWorkbook 生成容量报表 Excel 工作簿.
func GenerateCapacityWorkbook(sites []SiteCapacitySummary) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeSiteOverview(f, sites); err != nil {
		return nil, err
	}
	if err := writeRackDetail(f, sites); err != nil {
		return nil, err
	}

	// 删除默认创建的 Sheet1
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	return f, nil
}

func writeSiteOverview(f *excelize.File, sites []SiteCapacitySummary) error {
	if _, err := f.NewSheet(sheetNameSiteOverview); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheetNameSiteOverview, err)
	}

	headers := []string{colSiteName, colTotalRacks, colTotalUnits, colAvgUtilization, colHighWaterRacks}
	if err := writeRow(f, sheetNameSiteOverview, 1, toCells(headers)); err != nil {
		return err
	}

	for i, site := range sites {
		row := []interface{}{
			site.SiteName,
			site.TotalRacks,
			site.TotalUnits,
			site.AvgUtilization,
			site.HighWaterRacks,
		}
		if err := writeRow(f, sheetNameSiteOverview, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRackDetail(f *excelize.File, sites []SiteCapacitySummary) error {
	if _, err := f.NewSheet(sheetNameRackDetail); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheetNameRackDetail, err)
	}

	headers := []string{colSiteName, colRackName, colFacilityID, colUHeight, colDevices, colSpaceUtil, colPowerUtil}
	if err := writeRow(f, sheetNameRackDetail, 1, toCells(headers)); err != nil {
		return err
	}

	warnStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{warnFillColor}, Pattern: 1},
		Font: &excelize.Font{Color: warnFontColor},
	})
	if err != nil {
		return fmt.Errorf("failed to create warn style: %w", err)
	}

	rowNum := 2
	for _, site := range sites {
		for _, rack := range site.Racks {
			row := []interface{}{
				site.SiteName,
				rack.RackName,
				rack.FacilityID,
				rack.UHeight,
				rack.DeviceCount,
				rack.SpaceUtilization,
				rack.PowerUtilization,
			}
			if err := writeRow(f, sheetNameRackDetail, rowNum, row); err != nil {
				return err
			}
			if rack.SpaceUtilization > highWaterThreshold {
				cell, err := excelize.CoordinatesToCellName(6, rowNum)
				if err != nil {
					return fmt.Errorf("failed to build cell name: %w", err)
				}
				if err := f.SetCellStyle(sheetNameRackDetail, cell, cell, warnStyle); err != nil {
					return fmt.Errorf("failed to style cell %s: %w", cell, err)
				}
			}
			rowNum++
		}
	}
	return nil
}

// writeRow 写入一行数据
func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}
	return nil
}

func toCells(headers []string) []interface{} {
	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}
