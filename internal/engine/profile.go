package engine

import (
	"maps"
	"slices"
	"sort"
	"strings"
)

// InterestAnswer is one category keyword picked during interest profiling.
type InterestAnswer struct {
	Category string `json:"category"`
}

// TechAnswer is the outcome of one skill-assessment question. Score, when set,
// is partial credit in [0,1] and takes precedence over Correct.
type TechAnswer struct {
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty"`
	Correct    bool     `json:"correct"`
	Score      *float64 `json:"score,omitempty"`
}

func (a TechAnswer) credit() float64 {
	if a.Score != nil {
		return *a.Score
	}
	if a.Correct {
		return 1
	}
	return 0
}

// SkillProfile is derived per request and never mutated after Build returns.
type SkillProfile struct {
	Proficiency map[string]float64 `json:"proficiency"`
	// WeakAreas is ordered weakest first, ties by name.
	WeakAreas []string `json:"weak_areas"`
}

// Empty reports a brand-new learner with no answers at all.
func (p SkillProfile) Empty() bool {
	return len(p.Proficiency) == 0
}

// Categories lists the profiled categories in name order.
func (p SkillProfile) Categories() []string {
	return slices.Sorted(maps.Keys(p.Proficiency))
}

func (p SkillProfile) IsWeak(category string) bool {
	return slices.Contains(p.WeakAreas, category)
}

// average is the mean proficiency over the profiled categories.
func (p SkillProfile) average() float64 {
	if len(p.Proficiency) == 0 {
		return 0
	}
	var sum float64
	for _, cat := range p.Categories() {
		sum += p.Proficiency[cat]
	}
	return sum / float64(len(p.Proficiency))
}

func (p SkillProfile) validate() error {
	for _, cat := range p.Categories() {
		v := p.Proficiency[cat]
		if strings.TrimSpace(cat) == "" {
			return InvalidInput("skill profile contains an empty category")
		}
		if !(v >= 0 && v <= 1) {
			return InvalidInput("proficiency of %q must be within [0,1], got %v", cat, v)
		}
	}
	for _, cat := range p.WeakAreas {
		if _, ok := p.Proficiency[cat]; !ok {
			return InvalidInput("weak area %q has no proficiency", cat)
		}
	}
	return nil
}

// ProfileBuilder turns onboarding answers into a SkillProfile. It resolves
// category spellings against the catalog vocabulary.
type ProfileBuilder struct {
	catalog *Catalog
	weights Weights
}

func NewProfileBuilder(catalog *Catalog, weights Weights) *ProfileBuilder {
	return &ProfileBuilder{catalog: catalog, weights: weights}
}

type bucketKey struct {
	category   string
	difficulty string
}

type bucket struct {
	credit    float64
	attempted int
}

// Build is a pure function of its inputs: identical answers always produce an
// identical profile.
func (b *ProfileBuilder) Build(interests []InterestAnswer, answers []TechAnswer) (SkillProfile, error) {
	affinity, err := b.affinity(interests)
	if err != nil {
		return SkillProfile{}, err
	}
	correctness, err := b.correctness(answers)
	if err != nil {
		return SkillProfile{}, err
	}

	categories := make(map[string]struct{}, len(affinity)+len(correctness))
	for cat := range affinity {
		categories[cat] = struct{}{}
	}
	for cat := range correctness {
		categories[cat] = struct{}{}
	}

	w := b.weights
	proficiency := make(map[string]float64, len(categories))
	for cat := range categories {
		quiz, tested := correctness[cat]
		if !tested {
			quiz = w.NeutralQuizScore
		}
		proficiency[cat] = clamp01(w.InterestWeight*affinity[cat] + w.QuizWeight*quiz)
	}

	var weak []string
	for cat, v := range proficiency {
		if v < w.WeakThreshold {
			weak = append(weak, cat)
		}
	}
	sort.Slice(weak, func(i, j int) bool {
		pi, pj := proficiency[weak[i]], proficiency[weak[j]]
		if pi != pj {
			return pi < pj
		}
		return weak[i] < weak[j]
	})

	return SkillProfile{Proficiency: proficiency, WeakAreas: weak}, nil
}

// affinity counts interest answers and normalizes by the largest count.
func (b *ProfileBuilder) affinity(interests []InterestAnswer) (map[string]float64, error) {
	counts := make(map[string]int)
	maxCount := 0
	for i, a := range interests {
		if strings.TrimSpace(a.Category) == "" {
			return nil, InvalidInput("interest answer %d has no category", i)
		}
		cat := b.canonical(a.Category)
		counts[cat]++
		maxCount = max(maxCount, counts[cat])
	}

	affinity := make(map[string]float64, len(counts))
	for cat, n := range counts {
		affinity[cat] = float64(n) / float64(maxCount)
	}
	return affinity, nil
}

// correctness averages the per-difficulty correct ratios of each category.
func (b *ProfileBuilder) correctness(answers []TechAnswer) (map[string]float64, error) {
	buckets := make(map[bucketKey]*bucket)
	for i, a := range answers {
		if strings.TrimSpace(a.Category) == "" {
			return nil, InvalidInput("tech answer %d has no category", i)
		}
		if a.Score != nil && !(*a.Score >= 0 && *a.Score <= 1) {
			return nil, InvalidInput("tech answer %d score must be within [0,1], got %v", i, *a.Score)
		}
		key := bucketKey{
			category:   b.canonical(a.Category),
			difficulty: normalizeKeyword(a.Difficulty),
		}
		bk, ok := buckets[key]
		if !ok {
			bk = &bucket{}
			buckets[key] = bk
		}
		bk.credit += a.credit()
		bk.attempted++
	}

	keys := slices.Collect(maps.Keys(buckets))
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].category != keys[j].category {
			return keys[i].category < keys[j].category
		}
		return keys[i].difficulty < keys[j].difficulty
	})

	sums := make(map[string]float64)
	n := make(map[string]int)
	for _, key := range keys {
		bk := buckets[key]
		sums[key.category] += bk.credit / float64(bk.attempted)
		n[key.category]++
	}

	out := make(map[string]float64, len(sums))
	for cat, sum := range sums {
		out[cat] = sum / float64(n[cat])
	}
	return out, nil
}

func (b *ProfileBuilder) canonical(category string) string {
	if b.catalog == nil {
		return strings.TrimSpace(category)
	}
	return b.catalog.Canonical(category)
}

// PrimaryInterest is the most frequent interest category; ties go to the
// category answered first. It returns "" when there are no answers.
func PrimaryInterest(interests []InterestAnswer) string {
	counts := make(map[string]int)
	var order []string
	for _, a := range interests {
		cat := strings.TrimSpace(a.Category)
		if cat == "" {
			continue
		}
		if counts[cat] == 0 {
			order = append(order, cat)
		}
		counts[cat]++
	}

	primary := ""
	for _, cat := range order {
		if counts[cat] > counts[primary] {
			primary = cat
		}
	}
	return primary
}
