/*
Package rackspace 实现机柜单元空间计算引擎.

机柜单元编号支持0.5U粒度，为避免浮点比较问题，内部统一使用定点数表示：
Unit 的取值为实际U编号的2倍（半U步长），仅在展示边界转换为十进制.
引擎无状态，所有计算均为输入数据的纯函数，每次调用按当前数据重新计算.
*/
package rackspace

import (
	"fmt"
	"math"
	"strconv"
)

// Unit 半U定点单元位置，实际U编号 = Unit / 2.
type Unit int

// HalfU 一个半U步长.
const HalfU Unit = 1

// FullU 一个整U（两个半U步长）.
const FullU Unit = 2

// UnitFromDecimal 将十进制U编号转换为定点表示.
func UnitFromDecimal(v float64) Unit {
	return Unit(math.Round(v * 2))
}

// UnitFromInt 将整数U编号转换为定点表示.
func UnitFromInt(v int) Unit {
	return Unit(v * 2)
}

// Decimal 返回十进制U编号.
func (u Unit) Decimal() float64 {
	return float64(u) / 2
}

// IsWhole 是否为整U位置.
func (u Unit) IsWhole() bool {
	return u%2 == 0
}

// Label 返回展示用标签，整U省略小数位，如 U42 / U42.5.
func (u Unit) Label() string {
	if u.IsWhole() {
		return fmt.Sprintf("U%d", u/2)
	}
	return fmt.Sprintf("U%.1f", u.Decimal())
}

// String 实现 Stringer 接口.
func (u Unit) String() string {
	if u.IsWhole() {
		return strconv.Itoa(int(u / 2))
	}
	return strconv.FormatFloat(u.Decimal(), 'f', 1, 64)
}

// MarshalJSON 序列化为十进制U编号.
func (u Unit) MarshalJSON() ([]byte, error) {
	return []byte(u.String()), nil
}

// Config 机柜单元编号方案.
type Config struct {
	UHeight      int  // 机柜高度（U），必须>=1
	StartingUnit int  // 起始单元编号，必须>=1
	DescUnits    bool // 编号是否自上而下递增
}

// Units 返回自上而下顺序的全部单元位置序列.
// 序列长度恒为 2*UHeight，覆盖 [StartingUnit, StartingUnit+UHeight) 的半U步长；
// 配置变更后必须重新生成，序列不做任何缓存.
func (c Config) Units() []Unit {
	n := 2 * c.UHeight
	if n <= 0 {
		return nil
	}
	start := UnitFromInt(c.StartingUnit)
	units := make([]Unit, 0, n)
	if c.DescUnits {
		// 编号自上而下递增：顶部显示最小编号
		for i := 0; i < n; i++ {
			units = append(units, start+Unit(i))
		}
		return units
	}
	// 编号自下而上递增：顶部显示最大编号
	for i := n - 1; i >= 0; i-- {
		units = append(units, start+Unit(i))
	}
	return units
}

// TotalUnits 返回半U步长总数.
func (c Config) TotalUnits() int {
	return 2 * c.UHeight
}

// Contains 判断位置是否在机柜编号范围内.
func (c Config) Contains(u Unit) bool {
	return u >= UnitFromInt(c.StartingUnit) && u <= c.TopUnit()
}

// TopUnit 返回最高的可用单元位置（编号意义上的上边界前一个半步）.
func (c Config) TopUnit() Unit {
	return UnitFromInt(c.StartingUnit) + Unit(2*c.UHeight) - HalfU
}
