package rackspace

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
)

// SVG布局默认参数（像素）.
const (
	DefaultUnitWidth   = 230
	DefaultUnitHeight  = 22
	DefaultLegendWidth = 30
	DefaultMarginWidth = 15
)

// SVGParams 立面图渲染布局参数.
type SVGParams struct {
	UnitWidth   int // 单元格宽度
	UnitHeight  int // 每个整U的高度
	LegendWidth int // 左侧编号栏宽度
	MarginWidth int // 右侧留白宽度
}

// DefaultSVGParams 返回默认布局参数.
func DefaultSVGParams() SVGParams {
	return SVGParams{
		UnitWidth:   DefaultUnitWidth,
		UnitHeight:  DefaultUnitHeight,
		LegendWidth: DefaultLegendWidth,
		MarginWidth: DefaultMarginWidth,
	}
}

// 立面图配色.
const (
	styleFreeUnit     = "fill:#f0f0f0;stroke:#d0d0d0;stroke-width:1"
	styleDeviceUnit   = "fill:#4a90d9;stroke:#2a70b9;stroke-width:1"
	styleHiddenUnit   = "fill:#c0c0c0;stroke:#a0a0a0;stroke-width:1"
	styleLegendText   = "font-family:sans-serif;font-size:10px;fill:#606060;text-anchor:middle;dominant-baseline:middle"
	styleDeviceText   = "font-family:sans-serif;font-size:11px;fill:#ffffff;text-anchor:middle;dominant-baseline:middle"
	styleTitleText    = "font-family:sans-serif;font-size:12px;fill:#303030;text-anchor:middle"
	titleBandHeight   = 20
)

// RenderElevationSVG 将 RackUnits 的输出渲染为机柜立面图.
// entries 必须是展开模式（ExpandDevices=true）的结果，多U设备在图中
// 渲染为跨越多行的单一色块；不可见但占用的半步渲染为灰色遮蔽块.
func RenderElevationSVG(w io.Writer, rackName string, entries []UnitEntry, p SVGParams) {
	if p.UnitWidth <= 0 {
		p.UnitWidth = DefaultUnitWidth
	}
	if p.UnitHeight <= 0 {
		p.UnitHeight = DefaultUnitHeight
	}
	if p.LegendWidth <= 0 {
		p.LegendWidth = DefaultLegendWidth
	}
	if p.MarginWidth < 0 {
		p.MarginWidth = DefaultMarginWidth
	}

	// 每个条目是半个U
	halfHeight := p.UnitHeight / 2
	width := p.LegendWidth + p.UnitWidth + p.MarginWidth
	height := titleBandHeight + len(entries)*halfHeight

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Text(p.LegendWidth+p.UnitWidth/2, titleBandHeight-6, rackName, styleTitleText)

	x := p.LegendWidth
	for i := 0; i < len(entries); {
		e := entries[i]
		y := titleBandHeight + i*halfHeight

		// 整U起点绘制编号
		if e.Unit.IsWhole() || i == 0 {
			canvas.Text(p.LegendWidth/2, y+halfHeight, e.Name, styleLegendText)
		}

		switch {
		case e.Device != nil:
			// 向下合并属于同一设备的连续半步
			span := 1
			for i+span < len(entries) &&
				entries[i+span].Device != nil &&
				entries[i+span].Device.ID == e.Device.ID {
				span++
			}
			blockHeight := span * halfHeight
			canvas.Rect(x, y, p.UnitWidth, blockHeight, styleDeviceUnit)
			canvas.Text(x+p.UnitWidth/2, y+blockHeight/2, e.Device.Name, styleDeviceText)
			// 跨行区间内的整U编号仍要绘制
			for j := i + 1; j < i+span; j++ {
				if entries[j].Unit.IsWhole() {
					yy := titleBandHeight + j*halfHeight
					canvas.Text(p.LegendWidth/2, yy+halfHeight, entries[j].Name, styleLegendText)
				}
			}
			i += span
		case e.Occupied:
			// 占用但设备不可见
			canvas.Rect(x, y, p.UnitWidth, halfHeight, styleHiddenUnit)
			i++
		default:
			canvas.Rect(x, y, p.UnitWidth, halfHeight, styleFreeUnit)
			i++
		}
	}

	canvas.End()
}

// ElevationTitle 生成立面图标题，如 "rack-101 (front)".
func ElevationTitle(rackName, face string) string {
	return fmt.Sprintf("%s (%s)", rackName, face)
}
