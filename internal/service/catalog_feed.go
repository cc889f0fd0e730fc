package service

import (
	"fmt"
	"io"
	"learning_buddy_backend/internal/engine"
	"learning_buddy_backend/internal/model"
	"learning_buddy_backend/internal/repository"
	"strings"

	"gopkg.in/yaml.v3"
)

// CatalogFeed 目录数据文件（YAML）：学习路径、课程、教程以及两类题库
type CatalogFeed struct {
	LearningPaths     []model.LearningPath     `yaml:"learning_paths"`
	Courses           []model.Course           `yaml:"courses"`
	Tutorials         []model.Tutorial         `yaml:"tutorials"`
	InterestQuestions []model.InterestQuestion `yaml:"interest_questions"`
	TechQuestions     []model.TechQuestion     `yaml:"tech_questions"`
}

// ParseCatalogFeed decodes and validates a feed. Unknown keys are rejected.
func ParseCatalogFeed(r io.Reader) (*CatalogFeed, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var feed CatalogFeed
	if err := dec.Decode(&feed); err != nil {
		if err == io.EOF {
			return nil, engine.InvalidInput("catalog feed is empty")
		}
		return nil, engine.InvalidInput("decode catalog feed: %v", err)
	}
	if err := feed.Normalize(); err != nil {
		return nil, err
	}
	return &feed, nil
}

// Normalize validates the feed in place and fills derived fields
// (option question ids, default positions, lower-cased difficulty).
func (f *CatalogFeed) Normalize() error {
	if _, err := f.engineCatalog(); err != nil {
		return err
	}

	courses := make(map[uint]bool, len(f.Courses))
	for _, c := range f.Courses {
		courses[c.ID] = true
	}
	tutorials := make(map[uint]bool, len(f.Tutorials))
	for i := range f.Tutorials {
		t := &f.Tutorials[i]
		switch {
		case t.ID == 0:
			return engine.InvalidInput("tutorial #%d has no id", i)
		case tutorials[t.ID]:
			return engine.InvalidInput("duplicate tutorial id %d", t.ID)
		case !courses[t.CourseID]:
			return engine.InvalidInput("tutorial %d references unknown course %d", t.ID, t.CourseID)
		case strings.TrimSpace(t.Title) == "":
			return engine.InvalidInput("tutorial %d has no title", t.ID)
		}
		tutorials[t.ID] = true
	}

	if err := f.normalizeInterest(); err != nil {
		return err
	}
	return f.normalizeTech()
}

func (f *CatalogFeed) normalizeInterest() error {
	questions := make(map[uint]bool)
	options := make(map[uint]bool)
	for i := range f.InterestQuestions {
		q := &f.InterestQuestions[i]
		if q.ID == 0 || questions[q.ID] {
			return engine.InvalidInput("interest question #%d has a missing or duplicate id %d", i, q.ID)
		}
		questions[q.ID] = true
		if q.Position == 0 {
			q.Position = i + 1
		}
		if len(q.Options) == 0 {
			return engine.InvalidInput("interest question %d has no options", q.ID)
		}
		for j := range q.Options {
			o := &q.Options[j]
			if o.ID == 0 || options[o.ID] {
				return engine.InvalidInput("interest question %d has a missing or duplicate option id %d", q.ID, o.ID)
			}
			if strings.TrimSpace(o.Category) == "" {
				return engine.InvalidInput("interest option %d has no category", o.ID)
			}
			options[o.ID] = true
			o.QuestionID = q.ID
			if o.Position == 0 {
				o.Position = j + 1
			}
		}
	}
	return nil
}

func (f *CatalogFeed) normalizeTech() error {
	questions := make(map[uint]bool)
	options := make(map[uint]bool)
	for i := range f.TechQuestions {
		q := &f.TechQuestions[i]
		if q.ID == 0 || questions[q.ID] {
			return engine.InvalidInput("tech question #%d has a missing or duplicate id %d", i, q.ID)
		}
		questions[q.ID] = true
		if strings.TrimSpace(q.Category) == "" {
			return engine.InvalidInput("tech question %d has no category", q.ID)
		}
		q.Difficulty = strings.ToLower(strings.TrimSpace(q.Difficulty))
		if q.Position == 0 {
			q.Position = i + 1
		}

		correct := 0
		for j := range q.Options {
			o := &q.Options[j]
			if o.ID == 0 || options[o.ID] {
				return engine.InvalidInput("tech question %d has a missing or duplicate option id %d", q.ID, o.ID)
			}
			options[o.ID] = true
			o.QuestionID = q.ID
			if o.Position == 0 {
				o.Position = j + 1
			}
			if o.IsCorrect {
				correct++
			}
		}
		if len(q.Options) < 2 || correct == 0 {
			return engine.InvalidInput("tech question %d needs at least two options and one correct answer", q.ID)
		}
	}
	return nil
}

func (f *CatalogFeed) engineCatalog() (*engine.Catalog, error) {
	paths := make([]engine.LearningPath, 0, len(f.LearningPaths))
	for _, p := range f.LearningPaths {
		paths = append(paths, p.ToEngine())
	}
	courses := make([]engine.Course, 0, len(f.Courses))
	for _, c := range f.Courses {
		ec, err := c.ToEngine()
		if err != nil {
			return nil, fmt.Errorf("course %d: %w", c.ID, err)
		}
		courses = append(courses, ec)
	}
	return engine.NewCatalog(paths, courses)
}

func (f *CatalogFeed) snapshot() repository.CatalogSnapshot {
	return repository.CatalogSnapshot{
		Paths:             f.LearningPaths,
		Courses:           f.Courses,
		Tutorials:         f.Tutorials,
		InterestQuestions: f.InterestQuestions,
		TechQuestions:     f.TechQuestions,
	}
}
