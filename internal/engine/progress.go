package engine

import "sort"

// ProgressRecord is a read-only snapshot of one learner's progress in one course.
type ProgressRecord struct {
	CourseID           int      `json:"course_id"`
	CourseName         string   `json:"course_name"`
	ActiveTutorials    int      `json:"active_tutorials"`
	CompletedTutorials int      `json:"completed_tutorials"`
	IsGraduated        bool     `json:"is_graduated"`
	ExamScore          *float64 `json:"exam_score,omitempty"`
}

// TotalTutorials counts both the tutorials still open and the finished ones.
func (r ProgressRecord) TotalTutorials() int {
	return r.ActiveTutorials + r.CompletedTutorials
}

// Complete reports whether every tutorial of the course is finished.
func (r ProgressRecord) Complete() bool {
	total := r.TotalTutorials()
	return total > 0 && r.CompletedTutorials == total
}

func (r ProgressRecord) validate(i int) error {
	if r.ActiveTutorials < 0 || r.CompletedTutorials < 0 {
		return InvalidInput("progress record %d has negative tutorial counts", i)
	}
	if r.ExamScore != nil && (*r.ExamScore < 0 || *r.ExamScore > 100) {
		return InvalidInput("progress record %d exam score must be within [0,100]", i)
	}
	return nil
}

// ProgressStats summarises a learner's progress records.
type ProgressStats struct {
	TotalCourses       int     `json:"total_courses"`
	CompletedCourses   int     `json:"completed_courses"`
	InProgressCourses  int     `json:"in_progress_courses"`
	GraduatedCourses   int     `json:"graduated_courses"`
	TotalTutorials     int     `json:"total_tutorials"`
	CompletedTutorials int     `json:"completed_tutorials"`
	CompletionRate     float64 `json:"completion_rate"`
}

// Aggregate computes ProgressStats without touching its input. The
// completion rate is a percentage rounded to one decimal, 0 without tutorials.
func Aggregate(records []ProgressRecord) (ProgressStats, error) {
	var stats ProgressStats
	for i, r := range records {
		if err := r.validate(i); err != nil {
			return ProgressStats{}, err
		}
		stats.TotalCourses++
		if r.Complete() {
			stats.CompletedCourses++
		}
		if r.IsGraduated {
			stats.GraduatedCourses++
		}
		stats.TotalTutorials += r.TotalTutorials()
		stats.CompletedTutorials += r.CompletedTutorials
	}
	stats.InProgressCourses = stats.TotalCourses - stats.CompletedCourses

	if stats.TotalTutorials > 0 {
		rate := float64(stats.CompletedTutorials) / float64(stats.TotalTutorials) * 100
		stats.CompletionRate = round1(min(100, max(0, rate)))
	}
	return stats, nil
}

// CompletedCourseIDs returns, in ascending order, the courses a learner has
// finished either by completing every tutorial or by graduating.
func CompletedCourseIDs(records []ProgressRecord) []int {
	seen := make(map[int]bool)
	var ids []int
	for _, r := range records {
		if (r.Complete() || r.IsGraduated) && !seen[r.CourseID] {
			seen[r.CourseID] = true
			ids = append(ids, r.CourseID)
		}
	}
	sort.Ints(ids)
	return ids
}
