package graph

import (
	"sort"

	"learnpath-service/internal/domain"
)

// Graph is an indexed, read-only view of one course tree. It is built once
// from a loaded course and never mutated afterwards, so concurrent traversals
// need no locking. Siblings are held in slices sorted by their order value;
// adjacency uses slice positions, which tolerates gaps in order numbering.
type Graph struct {
	course     domain.Course
	modules    []*ModuleNode
	byModule   map[string]*ModuleNode
	byLesson   map[string]*LessonNode
	byActivity map[string]*ActivityNode
}

// ModuleNode wraps a module with its sorted lessons and position in the course.
type ModuleNode struct {
	Module  domain.Module
	Lessons []*LessonNode
	pos     int
}

// LessonNode wraps a lesson with its sorted activities and parent module.
type LessonNode struct {
	Lesson     domain.Lesson
	Activities []*ActivityNode
	parent     *ModuleNode
	pos        int
}

// ActivityNode wraps an activity with its parent lesson.
type ActivityNode struct {
	Activity domain.Activity
	parent   *LessonNode
	pos      int
}

// New builds the indexed view. The input tree is copied and each sibling
// level is sorted by order, so callers may pass unsorted content.
func New(course domain.Course) *Graph {
	g := &Graph{
		course:     course,
		byModule:   make(map[string]*ModuleNode),
		byLesson:   make(map[string]*LessonNode),
		byActivity: make(map[string]*ActivityNode),
	}

	modules := make([]domain.Module, len(course.Modules))
	copy(modules, course.Modules)
	sort.SliceStable(modules, func(i, j int) bool { return modules[i].Order < modules[j].Order })

	for mi, module := range modules {
		mn := &ModuleNode{Module: module, pos: mi}

		lessons := make([]domain.Lesson, len(module.Lessons))
		copy(lessons, module.Lessons)
		sort.SliceStable(lessons, func(i, j int) bool { return lessons[i].Order < lessons[j].Order })

		for li, lesson := range lessons {
			ln := &LessonNode{Lesson: lesson, parent: mn, pos: li}

			activities := make([]domain.Activity, len(lesson.Activities))
			copy(activities, lesson.Activities)
			sort.SliceStable(activities, func(i, j int) bool { return activities[i].Order < activities[j].Order })

			for ai, activity := range activities {
				an := &ActivityNode{Activity: activity, parent: ln, pos: ai}
				ln.Activities = append(ln.Activities, an)
				g.byActivity[activity.ID] = an
			}
			mn.Lessons = append(mn.Lessons, ln)
			g.byLesson[lesson.ID] = ln
		}
		g.modules = append(g.modules, mn)
		g.byModule[module.ID] = mn
	}
	return g
}

// CourseID returns the ID of the course this graph was built from.
func (g *Graph) CourseID() string {
	return g.course.ID
}

// Activity looks up an activity node by ID.
func (g *Graph) Activity(id string) (*ActivityNode, error) {
	node, ok := g.byActivity[id]
	if !ok {
		return nil, domain.ErrActivityNotFound
	}
	return node, nil
}

// Lesson looks up a lesson node by ID.
func (g *Graph) Lesson(id string) (*LessonNode, error) {
	node, ok := g.byLesson[id]
	if !ok {
		return nil, domain.ErrLessonNotFound
	}
	return node, nil
}

// Module looks up a module node by ID.
func (g *Graph) Module(id string) (*ModuleNode, error) {
	node, ok := g.byModule[id]
	if !ok {
		return nil, domain.ErrModuleNotFound
	}
	return node, nil
}

// Activities returns every activity in document order: ascending
// (module order, lesson order, activity order).
func (g *Graph) Activities() []*ActivityNode {
	var out []*ActivityNode
	for _, mn := range g.modules {
		for _, ln := range mn.Lessons {
			out = append(out, ln.Activities...)
		}
	}
	return out
}
