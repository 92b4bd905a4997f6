package report_archive

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dcim-ng/models/portal"
)

func TestRenderFrontElevationExpandsDevices(t *testing.T) {
	rack := &portal.Rack{
		Name:   "A01",
		SiteID: 1,
		RackDimensions: portal.RackDimensions{
			UHeight:      4,
			StartingUnit: 1,
		},
	}
	devices := []portal.Device{
		{Name: "db-01", Position: 2, UHeight: 2, Face: portal.DeviceFaceFront},
	}

	out := string(renderFrontElevation(rack, devices))
	assert.Contains(t, out, "A01 (front)")

	// 2U设备渲染为单一色块，不会把上方半步画成空闲
	assert.Equal(t, 1, strings.Count(out, "db-01"))
	assert.Equal(t, 4, strings.Count(out, "fill:#f0f0f0"),
		"free cells must only cover units outside the device span")
}

func TestRenderFrontElevationEmptyRack(t *testing.T) {
	rack := &portal.Rack{
		Name:           "B01",
		RackDimensions: portal.RackDimensions{UHeight: 2, StartingUnit: 1},
	}

	out := string(renderFrontElevation(rack, nil))
	assert.Equal(t, 4, strings.Count(out, "fill:#f0f0f0"))
}

func TestArchiveKeys(t *testing.T) {
	ts := time.Date(2026, 8, 24, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, "reports/rack-capacity/2026/08/rack-capacity-20260824.xlsx", archiveKey(ts))
	assert.Equal(t, "reports/elevations/20260824/A01-front.svg", elevationKey(ts, "A01"))
}
