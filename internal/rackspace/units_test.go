package rackspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitsSequenceInvariant(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"default 42U", Config{UHeight: 42, StartingUnit: 1}},
		{"descending", Config{UHeight: 42, StartingUnit: 1, DescUnits: true}},
		{"offset start", Config{UHeight: 10, StartingUnit: 21}},
		{"single unit", Config{UHeight: 1, StartingUnit: 1}},
		{"tall offset descending", Config{UHeight: 48, StartingUnit: 100, DescUnits: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			units := tc.cfg.Units()
			require.Len(t, units, 2*tc.cfg.UHeight)

			lower := UnitFromInt(tc.cfg.StartingUnit)
			upper := UnitFromInt(tc.cfg.StartingUnit + tc.cfg.UHeight)
			seen := make(map[Unit]bool)
			for _, u := range units {
				assert.GreaterOrEqual(t, u, lower)
				assert.Less(t, u, upper)
				assert.False(t, seen[u], "duplicate unit %s", u)
				seen[u] = true
			}
		})
	}
}

func TestUnitsDirectionSymmetry(t *testing.T) {
	asc := Config{UHeight: 12, StartingUnit: 5}.Units()
	desc := Config{UHeight: 12, StartingUnit: 5, DescUnits: true}.Units()

	require.Equal(t, len(asc), len(desc))
	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
}

func TestUnitsOrdering(t *testing.T) {
	// 自下而上编号的机柜，顶部显示最大编号
	asc := Config{UHeight: 2, StartingUnit: 1}.Units()
	assert.Equal(t, []Unit{5, 4, 3, 2}, asc) // 2.5, 2, 1.5, 1

	// 自上而下编号的机柜，顶部显示最小编号
	desc := Config{UHeight: 2, StartingUnit: 1, DescUnits: true}.Units()
	assert.Equal(t, []Unit{2, 3, 4, 5}, desc) // 1, 1.5, 2, 2.5
}

func TestUnitConversions(t *testing.T) {
	assert.Equal(t, Unit(2), UnitFromInt(1))
	assert.Equal(t, Unit(3), UnitFromDecimal(1.5))
	assert.Equal(t, Unit(85), UnitFromDecimal(42.5))
	assert.InDelta(t, 42.5, Unit(85).Decimal(), 0)
	assert.True(t, UnitFromInt(7).IsWhole())
	assert.False(t, UnitFromDecimal(7.5).IsWhole())
}

func TestUnitLabel(t *testing.T) {
	assert.Equal(t, "U1", UnitFromInt(1).Label())
	assert.Equal(t, "U42", UnitFromInt(42).Label())
	assert.Equal(t, "U1.5", UnitFromDecimal(1.5).Label())
	assert.Equal(t, "42.5", UnitFromDecimal(42.5).String())
	assert.Equal(t, "42", UnitFromInt(42).String())
}

func TestConfigContains(t *testing.T) {
	cfg := Config{UHeight: 4, StartingUnit: 1}
	assert.True(t, cfg.Contains(UnitFromInt(1)))
	assert.True(t, cfg.Contains(UnitFromDecimal(4.5)))
	assert.False(t, cfg.Contains(UnitFromInt(5)))
	assert.False(t, cfg.Contains(UnitFromDecimal(0.5)))
}

func TestConfigTopUnit(t *testing.T) {
	// 上边界是最后一个半步，恰好被 Contains 接受
	cfg := Config{UHeight: 4, StartingUnit: 1}
	assert.Equal(t, UnitFromDecimal(4.5), cfg.TopUnit())
	assert.True(t, cfg.Contains(cfg.TopUnit()))
	assert.False(t, cfg.Contains(cfg.TopUnit()+HalfU))

	offset := Config{UHeight: 10, StartingUnit: 21}
	assert.Equal(t, UnitFromDecimal(30.5), offset.TopUnit())
}
