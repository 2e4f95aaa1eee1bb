package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindow(t *testing.T) {
	t.Run("Valid Inputs", func(t *testing.T) {
		date, start, end, err := parseWindow("2026-09-02", "10:00", "11:00")
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), date)
		assert.Equal(t, time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, 9, 2, 11, 0, 0, 0, time.UTC), end)
	})

	t.Run("Bad Date", func(t *testing.T) {
		_, _, _, err := parseWindow("02-09-2026", "10:00", "11:00")
		assert.Error(t, err)
	})

	t.Run("Bad Clock Times", func(t *testing.T) {
		_, _, _, err := parseWindow("2026-09-02", "10am", "11:00")
		assert.Error(t, err)

		_, _, _, err = parseWindow("2026-09-02", "10:00", "25:00")
		assert.Error(t, err)
	})
}
