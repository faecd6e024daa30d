//go:build integration

package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/models"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/testhelpers"
)

func setupCalendarTest(t *testing.T) (context.Context, CalendarRepository) {
	testDB := testhelpers.GetTestDB(t)
	testhelpers.CleanTables(t, testDB.DB)
	return context.Background(), NewCalendarRepository(testDB.DB)
}

func TestCalendarRepositoryCreateWithIntervals(t *testing.T) {
	ctx, repo := setupCalendarTest(t)

	calendar, err := repo.CreateWithIntervals(ctx, []models.CalendarInterval{
		{StartDay: models.Monday, EndDay: models.Friday, StartHour: 9, EndHour: 17},
		{StartDay: models.Saturday, EndDay: models.Saturday, StartHour: 10, EndHour: 14},
	})
	require.NoError(t, err)
	require.NotZero(t, calendar.ID)
	require.Len(t, calendar.Intervals, 2)
	assert.NotZero(t, calendar.Intervals[0].ID)
	assert.Equal(t, calendar.ID, calendar.Intervals[0].CalendarID)

	loaded, err := repo.Get(ctx, calendar.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Intervals, 2)
	assert.Equal(t, models.Monday, loaded.Intervals[0].StartDay)
	assert.Equal(t, 17, loaded.Intervals[0].EndHour)
	assert.Equal(t, models.Saturday, loaded.Intervals[1].StartDay)
}

func TestCalendarRepositoryAddInterval(t *testing.T) {
	ctx, repo := setupCalendarTest(t)

	calendar, err := repo.Create(ctx)
	require.NoError(t, err)

	interval, err := repo.AddInterval(ctx, calendar.ID, models.CalendarInterval{
		StartDay: models.Sunday, EndDay: models.Sunday, StartHour: 12, EndHour: 16,
	})
	require.NoError(t, err)
	assert.NotZero(t, interval.ID)
	assert.Equal(t, calendar.ID, interval.CalendarID)

	loaded, err := repo.Get(ctx, calendar.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Intervals, 1)
}

func TestCalendarRepositoryGetAbsent(t *testing.T) {
	ctx, repo := setupCalendarTest(t)

	calendar, err := repo.Get(ctx, 999999)
	require.NoError(t, err)
	assert.Nil(t, calendar)
}

func TestCalendarRepositoryDelete(t *testing.T) {
	ctx, repo := setupCalendarTest(t)

	calendar, err := repo.CreateWithIntervals(ctx, []models.CalendarInterval{
		{StartDay: models.Monday, EndDay: models.Friday, StartHour: 9, EndHour: 17},
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, calendar.ID))

	loaded, err := repo.Get(ctx, calendar.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Deleting the same id again is a no-op.
	require.NoError(t, repo.Delete(ctx, calendar.ID))
}
