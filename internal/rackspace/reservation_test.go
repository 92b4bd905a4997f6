package rackspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservedUnitsMapping(t *testing.T) {
	reservations := []Reservation{
		{ID: 1, Units: []Unit{UnitFromInt(3), UnitFromInt(4)}, Description: "迁移预留"},
		{ID: 2, Units: []Unit{UnitFromInt(7)}, Description: "扩容预留"},
	}

	reserved := ReservedUnits(reservations)
	require.Len(t, reserved, 3)
	assert.Equal(t, int64(1), reserved[UnitFromInt(3)].ID)
	assert.Equal(t, int64(1), reserved[UnitFromInt(4)].ID)
	assert.Equal(t, int64(2), reserved[UnitFromInt(7)].ID)
}

func TestReservedUnitsDuplicateLastWriteWins(t *testing.T) {
	// 唯一性约束下不应出现，但解析器必须容忍
	reservations := []Reservation{
		{ID: 1, Units: []Unit{UnitFromInt(3)}},
		{ID: 2, Units: []Unit{UnitFromInt(3)}},
	}
	reserved := ReservedUnits(reservations)
	assert.Equal(t, int64(2), reserved[UnitFromInt(3)].ID)
}

func TestValidateReservationUnits(t *testing.T) {
	cfg := Config{UHeight: 4, StartingUnit: 1}
	others := []Reservation{
		{ID: 9, Units: []Unit{UnitFromInt(2)}},
	}

	t.Run("valid units pass", func(t *testing.T) {
		err := ValidateReservationUnits(cfg, []Unit{UnitFromInt(3), UnitFromInt(4)}, others)
		assert.NoError(t, err)
	})

	t.Run("out of range units rejected", func(t *testing.T) {
		err := ValidateReservationUnits(cfg, []Unit{UnitFromInt(3), UnitFromInt(10)}, others)
		var invalidErr *InvalidUnitsError
		require.ErrorAs(t, err, &invalidErr)
		assert.Equal(t, []Unit{UnitFromInt(10)}, invalidErr.Units)
		assert.Contains(t, err.Error(), "4U rack")
		assert.Contains(t, err.Error(), "10")
	})

	t.Run("conflicting units rejected", func(t *testing.T) {
		err := ValidateReservationUnits(cfg, []Unit{UnitFromInt(2), UnitFromInt(3)}, others)
		var conflictErr *ConflictingReservationError
		require.ErrorAs(t, err, &conflictErr)
		assert.Equal(t, []Unit{UnitFromInt(2)}, conflictErr.Units)
	})

	t.Run("range check precedes conflict check", func(t *testing.T) {
		err := ValidateReservationUnits(cfg, []Unit{UnitFromInt(2), UnitFromInt(99)}, others)
		var invalidErr *InvalidUnitsError
		assert.ErrorAs(t, err, &invalidErr)
	})
}
