package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recommendedIDs(recs []Recommendation) []int {
	ids := make([]int, len(recs))
	for i, r := range recs {
		ids[i] = r.Course.ID
	}
	return ids
}

func mustCatalog(t *testing.T, paths []LearningPath, courses []Course) *Catalog {
	t.Helper()
	c, err := NewCatalog(paths, courses)
	require.NoError(t, err)
	return c
}

func scenarioCatalog(t *testing.T) *Catalog {
	return mustCatalog(t,
		[]LearningPath{
			{ID: 1, Name: "AI Engineer", Categories: []string{catAI}},
			{ID: 2, Name: "Back-End Developer", Categories: []string{catWeb}},
		},
		[]Course{
			{ID: 11, LearningPathID: 1, Name: "Machine Learning Terapan", Level: LevelIntermediate, Hours: 30},
			{ID: 12, LearningPathID: 1, Name: "Belajar Pengembangan ML Operations", Level: LevelIntermediate, Hours: 20},
			{ID: 21, LearningPathID: 2, Name: "Belajar Back-End Pemula", Level: LevelIntermediate, Hours: 25},
		},
	)
}

func TestRecommend_InterestOnlyScenario(t *testing.T) {
	catalog := scenarioCatalog(t)
	w := DefaultWeights()

	profile, err := NewProfileBuilder(catalog, w).Build(interests(catAI, catAI, catWeb), nil)
	require.NoError(t, err)

	res, err := NewRanker(catalog, w).Recommend(Request{Profile: profile, TopN: 3})
	require.NoError(t, err)

	// AI proficiency 0.7, Web 0.5; mean 0.6 puts the learner in the
	// Intermediate tier, so every course has level_fit 1.0.
	// Web: 0.6*(1-0.5) + 0.4 = 0.70, AI: 0.6*(1-0.7) + 0.4 = 0.58
	require.Len(t, res.RecommendedCourses, 3)
	assert.Equal(t, []int{21, 12, 11}, recommendedIDs(res.RecommendedCourses))
	assert.Equal(t, []float64{70.0, 58.0, 58.0}, []float64{
		res.RecommendedCourses[0].Score,
		res.RecommendedCourses[1].Score,
		res.RecommendedCourses[2].Score,
	})
	for _, rec := range res.RecommendedCourses {
		assert.Equal(t, ReasonLevelMatch, rec.Reason)
	}

	assert.Equal(t, []PathRecommendation{
		{PathID: 1, PathName: "AI Engineer", Score: 116.0, CourseIDs: []int{12, 11}},
		{PathID: 2, PathName: "Back-End Developer", Score: 70.0, CourseIDs: []int{21}},
	}, res.RecommendedPaths)
	assert.Empty(t, res.SkillAnalysis.WeakAreas)
	assert.Equal(t, LevelIntermediate, res.SkillAnalysis.Tier)
}

func TestRecommend_ColdStartOrdersByHours(t *testing.T) {
	catalog := mustCatalog(t,
		[]LearningPath{{ID: 1, Name: "Front-End", Categories: []string{catWeb}}},
		[]Course{
			{ID: 1, LearningPathID: 1, Name: "HTML", Level: LevelBasic, Hours: 12},
			{ID: 2, LearningPathID: 1, Name: "CSS", Level: LevelBasic, Hours: 5},
			{ID: 3, LearningPathID: 1, Name: "JavaScript", Level: LevelBasic, Hours: 8},
			{ID: 4, LearningPathID: 1, Name: "Git", Level: LevelBasic, Hours: 30},
		},
	)

	res, err := NewRanker(catalog, DefaultWeights()).Recommend(Request{TopN: 3})
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3, 1}, recommendedIDs(res.RecommendedCourses))
	for _, rec := range res.RecommendedCourses {
		// 0.6*0.5 + 0.4*1.0
		assert.Equal(t, 70.0, rec.Score)
		assert.Equal(t, ReasonLevelMatch, rec.Reason)
	}
	assert.Equal(t, LevelBasic, res.SkillAnalysis.Tier)
}

func TestRecommend_ColdStartPrefersAccessibleLevels(t *testing.T) {
	catalog := mustCatalog(t,
		[]LearningPath{{ID: 1, Name: "Mixed", Categories: []string{catWeb}}},
		[]Course{
			{ID: 1, LearningPathID: 1, Name: "Advanced", Level: LevelAdvanced, Hours: 1},
			{ID: 2, LearningPathID: 1, Name: "Intermediate", Level: LevelIntermediate, Hours: 2},
			{ID: 3, LearningPathID: 1, Name: "Basic", Level: LevelBasic, Hours: 50},
		},
	)

	res, err := NewRanker(catalog, DefaultWeights()).Recommend(Request{})
	require.NoError(t, err)

	assert.Equal(t, []int{3, 2, 1}, recommendedIDs(res.RecommendedCourses))
	assert.Equal(t, []float64{70.0, 50.0, 30.0}, []float64{
		res.RecommendedCourses[0].Score,
		res.RecommendedCourses[1].Score,
		res.RecommendedCourses[2].Score,
	})
}

func TestRecommend_ExcludesCompletedCourses(t *testing.T) {
	catalog := newTestCatalog(t)
	r := NewRanker(catalog, DefaultWeights())

	res, err := r.Recommend(Request{CompletedCourseIDs: []int{101, 201, 999}})
	require.NoError(t, err)

	ids := recommendedIDs(res.RecommendedCourses)
	assert.NotContains(t, ids, 101)
	assert.NotContains(t, ids, 201)
	assert.Len(t, ids, 3)
	// 999 is not in the catalog and contributes no skills
	assert.Equal(t, []string{catAI, catWeb}, res.SkillAnalysis.CompletedSkills)
}

func TestRecommend_AllCompletedIsEmptyNotError(t *testing.T) {
	catalog := newTestCatalog(t)

	res, err := NewRanker(catalog, DefaultWeights()).Recommend(Request{
		CompletedCourseIDs: []int{101, 102, 201, 202, 301},
	})
	require.NoError(t, err)
	assert.Empty(t, res.RecommendedCourses)
	assert.Empty(t, res.RecommendedPaths)
	assert.NotNil(t, res.RecommendedCourses)
}

func TestRecommend_WeaknessReason(t *testing.T) {
	catalog := newTestCatalog(t)
	w := DefaultWeights()

	tech := append(answers(catWeb, "basic", false, false), answers(catAI, "basic", true)...)
	profile, err := NewProfileBuilder(catalog, w).Build(interests(catAI), tech)
	require.NoError(t, err)
	require.Equal(t, []string{catWeb}, profile.WeakAreas)

	res, err := NewRanker(catalog, w).Recommend(Request{Profile: profile})
	require.NoError(t, err)

	for _, rec := range res.RecommendedCourses {
		switch rec.Course.LearningPathID {
		case 2:
			assert.Equal(t, "addresses weakness in Web Development", rec.Reason)
		default:
			assert.NotContains(t, rec.Reason, "weakness")
		}
	}
	assert.Equal(t, []string{catWeb}, res.SkillAnalysis.WeakAreas)
}

func TestRecommend_LevelFitBands(t *testing.T) {
	catalog := mustCatalog(t,
		[]LearningPath{{ID: 1, Name: "AI", Categories: []string{catAI}}},
		[]Course{
			{ID: 1, LearningPathID: 1, Name: "AI Basic", Level: LevelBasic, Hours: 10},
			{ID: 2, LearningPathID: 1, Name: "AI Intermediate", Level: LevelIntermediate, Hours: 10},
			{ID: 3, LearningPathID: 1, Name: "AI Advanced", Level: LevelAdvanced, Hours: 10},
		},
	)
	w := DefaultWeights()

	// full marks: proficiency 1.0, Advanced tier, no category gap left
	profile, err := NewProfileBuilder(catalog, w).Build(interests(catAI), answers(catAI, "advanced", true, true))
	require.NoError(t, err)

	res, err := NewRanker(catalog, w).Recommend(Request{Profile: profile})
	require.NoError(t, err)

	assert.Equal(t, []int{3, 2, 1}, recommendedIDs(res.RecommendedCourses))
	assert.Equal(t, 40.0, res.RecommendedCourses[0].Score)
	assert.Equal(t, 20.0, res.RecommendedCourses[1].Score)
	assert.Equal(t, 0.0, res.RecommendedCourses[2].Score)
	assert.Equal(t, ReasonBroadens, res.RecommendedCourses[2].Reason)
}

func TestRecommend_NoOverlapScoresZeroCategoryMatch(t *testing.T) {
	catalog := newTestCatalog(t)
	w := DefaultWeights()

	profile := SkillProfile{Proficiency: map[string]float64{"Cloud Computing": 0.1}, WeakAreas: []string{"Cloud Computing"}}
	res, err := NewRanker(catalog, w).Recommend(Request{Profile: profile})
	require.NoError(t, err)

	// mean 0.1 -> Basic tier; no course covers Cloud Computing
	for _, rec := range res.RecommendedCourses {
		switch rec.Course.Level {
		case LevelBasic:
			assert.Equal(t, 40.0, rec.Score)
		case LevelIntermediate:
			assert.Equal(t, 20.0, rec.Score)
		case LevelAdvanced:
			assert.Equal(t, 0.0, rec.Score)
		}
	}
}

func TestRecommend_TotalOrderTieBreaks(t *testing.T) {
	catalog := mustCatalog(t,
		[]LearningPath{{ID: 1, Name: "Web", Categories: []string{catWeb}}},
		[]Course{
			{ID: 30, LearningPathID: 1, Name: "C", Level: LevelBasic, Hours: 10},
			{ID: 10, LearningPathID: 1, Name: "A", Level: LevelBasic, Hours: 10},
			{ID: 20, LearningPathID: 1, Name: "B", Level: LevelBasic, Hours: 4},
		},
	)

	res, err := NewRanker(catalog, DefaultWeights()).Recommend(Request{})
	require.NoError(t, err)
	assert.Equal(t, []int{20, 10, 30}, recommendedIDs(res.RecommendedCourses))
}

func TestRecommend_TopN(t *testing.T) {
	var courses []Course
	for i := 1; i <= 12; i++ {
		courses = append(courses, Course{ID: i, LearningPathID: 1, Name: "c", Level: LevelBasic, Hours: float64(i)})
	}
	catalog := mustCatalog(t, []LearningPath{{ID: 1, Name: "p", Categories: []string{catWeb}}}, courses)
	r := NewRanker(catalog, DefaultWeights())

	res, err := r.Recommend(Request{})
	require.NoError(t, err)
	assert.Len(t, res.RecommendedCourses, DefaultTopN)

	res, err = r.Recommend(Request{TopN: 2})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, recommendedIDs(res.RecommendedCourses))
	assert.Equal(t, 140.0, res.RecommendedPaths[0].Score)

	_, err = r.Recommend(Request{TopN: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecommend_RejectsOutOfRangeProfile(t *testing.T) {
	r := NewRanker(newTestCatalog(t), DefaultWeights())

	_, err := r.Recommend(Request{Profile: SkillProfile{Proficiency: map[string]float64{catAI: 1.5}}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = r.Recommend(Request{Profile: SkillProfile{Proficiency: map[string]float64{catAI: 0.2}, WeakAreas: []string{catWeb}}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecommend_WeakAreasCapped(t *testing.T) {
	catalog := newTestCatalog(t)
	w := DefaultWeights()

	var tech []TechAnswer
	for _, cat := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		tech = append(tech, answers(cat, "basic", false)...)
	}
	profile, err := NewProfileBuilder(catalog, w).Build(nil, tech)
	require.NoError(t, err)
	require.Len(t, profile.WeakAreas, 7)

	res, err := NewRanker(catalog, w).Recommend(Request{Profile: profile})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, res.SkillAnalysis.WeakAreas)
}

func TestRecommend_EchoesProgressStats(t *testing.T) {
	stats := ProgressStats{TotalCourses: 2, CompletedCourses: 1, InProgressCourses: 1, TotalTutorials: 4, CompletedTutorials: 2, CompletionRate: 50}

	res, err := NewRanker(newTestCatalog(t), DefaultWeights()).Recommend(Request{Stats: stats})
	require.NoError(t, err)
	assert.Equal(t, stats, res.Progress)
}

func TestRecommend_DeterministicAndConcurrent(t *testing.T) {
	catalog := newTestCatalog(t)
	w := DefaultWeights()
	profile, err := NewProfileBuilder(catalog, w).Build(
		interests(catMobile, catWeb, catWeb),
		append(answers(catWeb, "basic", true, false), answers(catMobile, "basic", false)...),
	)
	require.NoError(t, err)

	r := NewRanker(catalog, w)
	req := Request{Profile: profile, CompletedCourseIDs: []int{301}, TopN: 4}
	want, err := r.Recommend(req)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Result, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = r.Recommend(req)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestWeights_Validate(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())

	w := DefaultWeights()
	w.QuizWeight = 0.7
	assert.ErrorIs(t, w.Validate(), ErrInvalidInput)

	w = DefaultWeights()
	w.IntermediateTierFloor = 0.8
	assert.ErrorIs(t, w.Validate(), ErrInvalidInput)

	w = DefaultWeights()
	w.DefaultTopN = 0
	assert.ErrorIs(t, w.Validate(), ErrInvalidInput)
}
