package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_Empty(t *testing.T) {
	stats, err := Aggregate(nil)
	require.NoError(t, err)
	assert.Equal(t, ProgressStats{}, stats)
	assert.Equal(t, 0.0, stats.CompletionRate)
}

func TestAggregate_Counts(t *testing.T) {
	records := []ProgressRecord{
		{CourseID: 1, ActiveTutorials: 0, CompletedTutorials: 10},
		{CourseID: 2, ActiveTutorials: 5, CompletedTutorials: 5, IsGraduated: true},
		{CourseID: 3},
	}
	before := append([]ProgressRecord(nil), records...)

	stats, err := Aggregate(records)
	require.NoError(t, err)

	assert.Equal(t, ProgressStats{
		TotalCourses:       3,
		CompletedCourses:   1,
		InProgressCourses:  2,
		GraduatedCourses:   1,
		TotalTutorials:     20,
		CompletedTutorials: 15,
		CompletionRate:     75.0,
	}, stats)
	assert.Equal(t, before, records)
}

func TestAggregate_CompletionRateRounding(t *testing.T) {
	tests := []struct {
		name      string
		active    int
		completed int
		want      float64
	}{
		{"one third", 2, 1, 33.3},
		{"two thirds", 1, 2, 66.7},
		{"all done", 0, 4, 100},
		{"nothing started", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := Aggregate([]ProgressRecord{{CourseID: 1, ActiveTutorials: tt.active, CompletedTutorials: tt.completed}})
			require.NoError(t, err)
			assert.Equal(t, tt.want, stats.CompletionRate)
			assert.GreaterOrEqual(t, stats.CompletionRate, 0.0)
			assert.LessOrEqual(t, stats.CompletionRate, 100.0)
		})
	}
}

func TestAggregate_RejectsNegativeCounts(t *testing.T) {
	_, err := Aggregate([]ProgressRecord{{CourseID: 1, ActiveTutorials: -1}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	score := 120.0
	_, err = Aggregate([]ProgressRecord{{CourseID: 1, ExamScore: &score}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompletedCourseIDs(t *testing.T) {
	records := []ProgressRecord{
		{CourseID: 9, CompletedTutorials: 3},
		{CourseID: 4, ActiveTutorials: 2, CompletedTutorials: 1, IsGraduated: true},
		{CourseID: 5, ActiveTutorials: 2, CompletedTutorials: 1},
		{CourseID: 9, CompletedTutorials: 3},
		{CourseID: 6},
	}
	assert.Equal(t, []int{4, 9}, CompletedCourseIDs(records))
}
