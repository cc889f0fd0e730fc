package engine

import (
	"slices"
	"sort"
)

const (
	ReasonWeakness   = "addresses weakness in "
	ReasonLevelMatch = "matches current skill level"
	ReasonBroadens   = "broadens skill coverage"
)

// Request carries everything a ranking run needs. Nothing is read from
// ambient state; the caller passes the learner's full picture every time.
type Request struct {
	Profile            SkillProfile
	Stats              ProgressStats
	CompletedCourseIDs []int
	// TopN <= 0 falls back to Weights.DefaultTopN.
	TopN int
}

type Recommendation struct {
	Course Course  `json:"course"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

type PathRecommendation struct {
	PathID    int     `json:"learning_path_id"`
	PathName  string  `json:"learning_path_name"`
	Score     float64 `json:"score"`
	CourseIDs []int   `json:"course_ids"`
}

type SkillAnalysis struct {
	CompletedSkills []string `json:"completed_skills"`
	WeakAreas       []string `json:"weak_areas"`
	Tier            Level    `json:"tier"`
}

type Result struct {
	RecommendedCourses []Recommendation     `json:"recommended_courses"`
	RecommendedPaths   []PathRecommendation `json:"recommended_learning_paths"`
	SkillAnalysis      SkillAnalysis        `json:"skill_analysis"`
	Progress           ProgressStats        `json:"progress"`
}

// Ranker scores catalog courses against a skill profile. It keeps no state
// between calls and is safe for concurrent use.
type Ranker struct {
	catalog *Catalog
	weights Weights
}

func NewRanker(catalog *Catalog, weights Weights) *Ranker {
	return &Ranker{catalog: catalog, weights: weights}
}

// learnerView is the profile re-keyed by normalized category.
type learnerView struct {
	proficiency map[string]float64
	weak        []string
	coldStart   bool
	tier        Level
}

func (r *Ranker) view(p SkillProfile) learnerView {
	v := learnerView{
		proficiency: make(map[string]float64, len(p.Proficiency)),
		coldStart:   p.Empty(),
		tier:        LevelBasic,
	}
	for _, cat := range p.Categories() {
		v.proficiency[normalizeKeyword(cat)] = p.Proficiency[cat]
	}
	for _, cat := range p.WeakAreas {
		v.weak = append(v.weak, normalizeKeyword(cat))
	}
	if !v.coldStart {
		v.tier = r.weights.tier(p.average())
	}
	return v
}

// Recommend ranks every course the learner has not completed. An empty
// candidate set is a valid, empty result.
func (r *Ranker) Recommend(req Request) (Result, error) {
	if req.TopN < 0 {
		return Result{}, InvalidInput("top_n must not be negative, got %d", req.TopN)
	}
	if err := req.Profile.validate(); err != nil {
		return Result{}, err
	}
	topN := req.TopN
	if topN == 0 {
		topN = r.weights.DefaultTopN
	}

	completed := make(map[int]bool, len(req.CompletedCourseIDs))
	for _, id := range req.CompletedCourseIDs {
		completed[id] = true
	}

	view := r.view(req.Profile)
	ranked := make([]Recommendation, 0, r.catalog.Len())
	for _, course := range r.catalog.courses {
		if completed[course.ID] {
			continue
		}
		score, reason := r.score(course, view)
		ranked = append(ranked, Recommendation{
			Course: cloneCourse(course),
			Score:  score,
			Reason: reason,
		})
	}
	sortRecommendations(ranked)
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	return Result{
		RecommendedCourses: ranked,
		RecommendedPaths:   r.rankPaths(ranked),
		SkillAnalysis:      r.analyse(req, view.tier),
		Progress:           req.Stats,
	}, nil
}

// score returns the final score on a 0-100 scale and the reason for it.
func (r *Ranker) score(course Course, v learnerView) (float64, string) {
	w := r.weights

	categoryMatch := 0.0
	if v.coldStart {
		categoryMatch = w.ColdStartCategoryMatch
	} else {
		for _, cat := range course.Categories {
			if p, ok := v.proficiency[normalizeKeyword(cat)]; ok {
				categoryMatch = max(categoryMatch, 1-p)
			}
		}
	}

	var levelFit float64
	switch course.Level.distance(v.tier) {
	case 0:
		levelFit = 1
	case 1:
		levelFit = 0.5
	}

	categoryPart := w.CategoryMatchWeight * categoryMatch
	levelPart := w.LevelFitWeight * levelFit
	final := round1((categoryPart + levelPart) * 100)

	// weak areas are already ordered weakest first
	for _, weak := range v.weak {
		for _, cat := range course.Categories {
			if normalizeKeyword(cat) == weak {
				return final, ReasonWeakness + cat
			}
		}
	}
	if levelPart > categoryPart {
		return final, ReasonLevelMatch
	}
	return final, ReasonBroadens
}

// sortRecommendations orders by score desc, then hours asc, then course id,
// which makes the ranking a total order.
func sortRecommendations(recs []Recommendation) {
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Course.Hours != b.Course.Hours {
			return a.Course.Hours < b.Course.Hours
		}
		return a.Course.ID < b.Course.ID
	})
}

func (r *Ranker) rankPaths(top []Recommendation) []PathRecommendation {
	byPath := make(map[int]*PathRecommendation)
	var order []int
	for _, rec := range top {
		pr, ok := byPath[rec.Course.LearningPathID]
		if !ok {
			path, err := r.catalog.LookupPath(rec.Course.LearningPathID)
			if err != nil {
				// NewCatalog guarantees every course has a path
				continue
			}
			pr = &PathRecommendation{PathID: path.ID, PathName: path.Name}
			byPath[path.ID] = pr
			order = append(order, path.ID)
		}
		pr.Score += rec.Score
		pr.CourseIDs = append(pr.CourseIDs, rec.Course.ID)
	}

	paths := make([]PathRecommendation, 0, len(order))
	for _, id := range order {
		pr := byPath[id]
		pr.Score = round1(pr.Score)
		paths = append(paths, *pr)
	}
	sort.Slice(paths, func(i, j int) bool {
		if paths[i].Score != paths[j].Score {
			return paths[i].Score > paths[j].Score
		}
		return paths[i].PathID < paths[j].PathID
	})
	return paths
}

func (r *Ranker) analyse(req Request, tier Level) SkillAnalysis {
	skills := []string{}
	for _, id := range req.CompletedCourseIDs {
		course, err := r.catalog.LookupCourse(id)
		if err != nil {
			// progress may reference courses retired from the catalog
			continue
		}
		for _, cat := range course.Categories {
			if !slices.Contains(skills, cat) {
				skills = append(skills, cat)
			}
		}
	}
	sort.Strings(skills)
	if len(skills) > r.weights.MaxCompletedSkills {
		skills = skills[:r.weights.MaxCompletedSkills]
	}

	weak := slices.Clone(req.Profile.WeakAreas)
	if weak == nil {
		weak = []string{}
	}
	if len(weak) > r.weights.MaxWeakAreas {
		weak = weak[:r.weights.MaxWeakAreas]
	}

	return SkillAnalysis{CompletedSkills: skills, WeakAreas: weak, Tier: tier}
}
