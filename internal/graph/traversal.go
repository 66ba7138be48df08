package graph

// Target identifies the adjacent navigable position, or the end of the course
// when Terminal is set. The core returns structured identifiers; building
// route strings from them is the caller's responsibility.
type Target struct {
	Terminal   bool   `json:"terminal"`
	CourseID   string `json:"courseId"`
	ModuleID   string `json:"moduleId,omitempty"`
	LessonID   string `json:"lessonId,omitempty"`
	ActivityID string `json:"activityId,omitempty"`
}

func (g *Graph) activityTarget(node *ActivityNode) Target {
	return Target{
		CourseID:   g.course.ID,
		ModuleID:   node.parent.parent.Module.ID,
		LessonID:   node.parent.Lesson.ID,
		ActivityID: node.Activity.ID,
	}
}

func (g *Graph) lessonTarget(node *LessonNode) Target {
	return Target{
		CourseID: g.course.ID,
		ModuleID: node.parent.Module.ID,
		LessonID: node.Lesson.ID,
	}
}

func (g *Graph) terminal() Target {
	return Target{Terminal: true, CourseID: g.course.ID}
}

// NextActivity resolves the activity following the given one in document
// order: the next sibling in the same lesson, else the first activity of the
// next non-empty lesson, crossing module boundaries as needed. When nothing
// follows it returns the terminal target carrying the course.
func (g *Graph) NextActivity(activityID string) (Target, error) {
	node, err := g.Activity(activityID)
	if err != nil {
		return Target{}, err
	}
	lesson := node.parent
	if node.pos+1 < len(lesson.Activities) {
		return g.activityTarget(lesson.Activities[node.pos+1]), nil
	}
	if next, ok := g.firstActivityAfter(lesson.parent.pos, lesson.pos); ok {
		return g.activityTarget(next), nil
	}
	return g.terminal(), nil
}

// PrevActivity is the mirror of NextActivity. Stepping back into an earlier
// lesson lands on its last activity, not its first.
func (g *Graph) PrevActivity(activityID string) (Target, error) {
	node, err := g.Activity(activityID)
	if err != nil {
		return Target{}, err
	}
	lesson := node.parent
	if node.pos > 0 {
		return g.activityTarget(lesson.Activities[node.pos-1]), nil
	}
	if prev, ok := g.lastActivityBefore(lesson.parent.pos, lesson.pos); ok {
		return g.activityTarget(prev), nil
	}
	return g.terminal(), nil
}

// NextLesson resolves the next non-empty lesson, crossing module boundaries.
// Used for lesson-level navigation controls.
func (g *Graph) NextLesson(lessonID string) (Target, error) {
	node, err := g.Lesson(lessonID)
	if err != nil {
		return Target{}, err
	}
	if next, ok := g.lessonAfter(node.parent.pos, node.pos); ok {
		return g.lessonTarget(next), nil
	}
	return g.terminal(), nil
}

// PrevLesson is the mirror of NextLesson.
func (g *Graph) PrevLesson(lessonID string) (Target, error) {
	node, err := g.Lesson(lessonID)
	if err != nil {
		return Target{}, err
	}
	if prev, ok := g.lessonBefore(node.parent.pos, node.pos); ok {
		return g.lessonTarget(prev), nil
	}
	return g.terminal(), nil
}

// FirstActivity returns the first activity of the course in document order.
// The second result is false for a course with no activities at all.
func (g *Graph) FirstActivity() (Target, bool) {
	for _, mn := range g.modules {
		for _, ln := range mn.Lessons {
			if len(ln.Activities) > 0 {
				return g.activityTarget(ln.Activities[0]), true
			}
		}
	}
	return Target{}, false
}

// firstActivityAfter scans lessons strictly after (modulePos, lessonPos) in
// document order and returns the first activity of the first non-empty one.
func (g *Graph) firstActivityAfter(modulePos, lessonPos int) (*ActivityNode, bool) {
	for mi := modulePos; mi < len(g.modules); mi++ {
		start := 0
		if mi == modulePos {
			start = lessonPos + 1
		}
		for li := start; li < len(g.modules[mi].Lessons); li++ {
			lesson := g.modules[mi].Lessons[li]
			if len(lesson.Activities) > 0 {
				return lesson.Activities[0], true
			}
		}
	}
	return nil, false
}

// lastActivityBefore scans lessons strictly before (modulePos, lessonPos) in
// reverse document order and returns the last activity of the first
// non-empty one found.
func (g *Graph) lastActivityBefore(modulePos, lessonPos int) (*ActivityNode, bool) {
	for mi := modulePos; mi >= 0; mi-- {
		start := len(g.modules[mi].Lessons) - 1
		if mi == modulePos {
			start = lessonPos - 1
		}
		for li := start; li >= 0; li-- {
			lesson := g.modules[mi].Lessons[li]
			if len(lesson.Activities) > 0 {
				return lesson.Activities[len(lesson.Activities)-1], true
			}
		}
	}
	return nil, false
}

func (g *Graph) lessonAfter(modulePos, lessonPos int) (*LessonNode, bool) {
	for mi := modulePos; mi < len(g.modules); mi++ {
		start := 0
		if mi == modulePos {
			start = lessonPos + 1
		}
		for li := start; li < len(g.modules[mi].Lessons); li++ {
			lesson := g.modules[mi].Lessons[li]
			if len(lesson.Activities) > 0 {
				return lesson, true
			}
		}
	}
	return nil, false
}

func (g *Graph) lessonBefore(modulePos, lessonPos int) (*LessonNode, bool) {
	for mi := modulePos; mi >= 0; mi-- {
		start := len(g.modules[mi].Lessons) - 1
		if mi == modulePos {
			start = lessonPos - 1
		}
		for li := start; li >= 0; li-- {
			lesson := g.modules[mi].Lessons[li]
			if len(lesson.Activities) > 0 {
				return lesson, true
			}
		}
	}
	return nil, false
}
