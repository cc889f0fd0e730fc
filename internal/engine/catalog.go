package engine

import (
	"slices"
	"sort"
	"strings"
)

// LearningPath is a named track grouping courses toward a career goal.
type LearningPath struct {
	ID         int      `json:"learning_path_id"`
	Name       string   `json:"learning_path_name"`
	Categories []string `json:"categories"`
}

// Course is immutable reference data owned by exactly one learning path.
type Course struct {
	ID             int      `json:"course_id"`
	LearningPathID int      `json:"learning_path_id"`
	Name           string   `json:"course_name"`
	Level          Level    `json:"level"`
	Hours          float64  `json:"hours"`
	Categories     []string `json:"categories"`
}

// Catalog is the read-only index over paths and courses. It has no mutation
// API, so one instance can be shared by concurrent requests without locking.
type Catalog struct {
	paths      []LearningPath
	courses    []Course
	pathByID   map[int]int
	courseByID map[int]int
	byPath     map[int][]int
	byCategory map[string][]int
	// lower-cased keyword -> canonical spelling
	vocabulary map[string]string
}

// NewCatalog validates the reference data and builds every index up front.
// A course without its own keywords inherits the keywords of its path.
func NewCatalog(paths []LearningPath, courses []Course) (*Catalog, error) {
	c := &Catalog{
		pathByID:   make(map[int]int, len(paths)),
		courseByID: make(map[int]int, len(courses)),
		byPath:     make(map[int][]int, len(paths)),
		byCategory: make(map[string][]int),
		vocabulary: make(map[string]string),
	}

	sortedPaths := slices.Clone(paths)
	sort.Slice(sortedPaths, func(i, j int) bool { return sortedPaths[i].ID < sortedPaths[j].ID })
	for _, p := range sortedPaths {
		if p.ID <= 0 {
			return nil, InvalidInput("learning path id must be positive, got %d", p.ID)
		}
		if strings.TrimSpace(p.Name) == "" {
			return nil, InvalidInput("learning path %d has no name", p.ID)
		}
		if _, dup := c.pathByID[p.ID]; dup {
			return nil, InvalidInput("duplicate learning path id %d", p.ID)
		}
		p.Categories = c.intern(p.Categories)
		c.pathByID[p.ID] = len(c.paths)
		c.paths = append(c.paths, p)
	}

	sortedCourses := slices.Clone(courses)
	sort.Slice(sortedCourses, func(i, j int) bool { return sortedCourses[i].ID < sortedCourses[j].ID })
	for _, course := range sortedCourses {
		if course.ID <= 0 {
			return nil, InvalidInput("course id must be positive, got %d", course.ID)
		}
		if _, dup := c.courseByID[course.ID]; dup {
			return nil, InvalidInput("duplicate course id %d", course.ID)
		}
		pathIdx, ok := c.pathByID[course.LearningPathID]
		if !ok {
			return nil, InvalidInput("course %d references unknown learning path %d", course.ID, course.LearningPathID)
		}
		if !course.Level.Valid() {
			return nil, InvalidInput("course %d has invalid level %d", course.ID, int(course.Level))
		}
		if !(course.Hours > 0) {
			return nil, InvalidInput("course %d must have positive study hours", course.ID)
		}
		if len(course.Categories) == 0 {
			course.Categories = slices.Clone(c.paths[pathIdx].Categories)
		} else {
			course.Categories = c.intern(course.Categories)
		}

		idx := len(c.courses)
		c.courseByID[course.ID] = idx
		c.courses = append(c.courses, course)
		c.byPath[course.LearningPathID] = append(c.byPath[course.LearningPathID], idx)
		for _, kw := range course.Categories {
			key := normalizeKeyword(kw)
			c.byCategory[key] = append(c.byCategory[key], idx)
		}
	}

	return c, nil
}

// intern dedupes keywords and maps each to the first spelling seen.
func (c *Catalog) intern(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		key := normalizeKeyword(kw)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		canonical, ok := c.vocabulary[key]
		if !ok {
			canonical = strings.TrimSpace(kw)
			c.vocabulary[key] = canonical
		}
		out = append(out, canonical)
	}
	sort.Strings(out)
	return out
}

func normalizeKeyword(kw string) string {
	return strings.ToLower(strings.TrimSpace(kw))
}

// LookupPath returns the path or a NotFound error.
func (c *Catalog) LookupPath(id int) (LearningPath, error) {
	idx, ok := c.pathByID[id]
	if !ok {
		return LearningPath{}, NotFound("learning path %d not found", id)
	}
	return clonePath(c.paths[idx]), nil
}

// LookupCourse returns the course or a NotFound error.
func (c *Catalog) LookupCourse(id int) (Course, error) {
	idx, ok := c.courseByID[id]
	if !ok {
		return Course{}, NotFound("course %d not found", id)
	}
	return cloneCourse(c.courses[idx]), nil
}

// CoursesForPath lists the courses of a path ordered by id.
func (c *Catalog) CoursesForPath(id int) ([]Course, error) {
	if _, ok := c.pathByID[id]; !ok {
		return nil, NotFound("learning path %d not found", id)
	}
	return c.collect(c.byPath[id]), nil
}

// CoursesByCategory matches the keyword case-insensitively. Unknown keywords
// yield an empty slice.
func (c *Catalog) CoursesByCategory(keyword string) []Course {
	return c.collect(c.byCategory[normalizeKeyword(keyword)])
}

func (c *Catalog) Paths() []LearningPath {
	out := make([]LearningPath, len(c.paths))
	for i, p := range c.paths {
		out[i] = clonePath(p)
	}
	return out
}

func (c *Catalog) Courses() []Course {
	out := make([]Course, len(c.courses))
	for i, course := range c.courses {
		out[i] = cloneCourse(course)
	}
	return out
}

// Categories is the sorted keyword vocabulary of the catalog.
func (c *Catalog) Categories() []string {
	out := make([]string, 0, len(c.vocabulary))
	for _, canonical := range c.vocabulary {
		out = append(out, canonical)
	}
	sort.Strings(out)
	return out
}

// Canonical maps a keyword to the catalog spelling. Keywords the catalog does
// not know are returned trimmed.
func (c *Catalog) Canonical(keyword string) string {
	if canonical, ok := c.vocabulary[normalizeKeyword(keyword)]; ok {
		return canonical
	}
	return strings.TrimSpace(keyword)
}

func (c *Catalog) Len() int {
	return len(c.courses)
}

func (c *Catalog) collect(indices []int) []Course {
	out := make([]Course, len(indices))
	for i, idx := range indices {
		out[i] = cloneCourse(c.courses[idx])
	}
	return out
}

func clonePath(p LearningPath) LearningPath {
	p.Categories = slices.Clone(p.Categories)
	return p
}

func cloneCourse(c Course) Course {
	c.Categories = slices.Clone(c.Categories)
	return c
}
