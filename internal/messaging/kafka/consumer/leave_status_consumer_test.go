package consumer

import (
	"testing"

	"hr-portal/internal/attendance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodsForRange(t *testing.T) {
	t.Run("single month", func(t *testing.T) {
		periods, err := periodsForRange("2025-03-10", "2025-03-12")
		require.NoError(t, err)
		assert.Equal(t, []attendance.Period{{Month: 3, Year: 2025}}, periods)
	})

	t.Run("spans a month boundary", func(t *testing.T) {
		periods, err := periodsForRange("2025-03-28", "2025-04-02")
		require.NoError(t, err)
		assert.Equal(t, []attendance.Period{
			{Month: 3, Year: 2025},
			{Month: 4, Year: 2025},
		}, periods)
	})

	t.Run("spans a year boundary", func(t *testing.T) {
		periods, err := periodsForRange("2024-12-20", "2025-01-05")
		require.NoError(t, err)
		assert.Equal(t, []attendance.Period{
			{Month: 12, Year: 2024},
			{Month: 1, Year: 2025},
		}, periods)
	})

	t.Run("malformed dates are rejected", func(t *testing.T) {
		_, err := periodsForRange("20-12-2024", "2025-01-05")
		assert.Error(t, err)
		_, err = periodsForRange("2024-12-20", "bogus")
		assert.Error(t, err)
	})
}
