package graph_test

import (
	"testing"

	"learnpath-service/internal/domain"
	"learnpath-service/internal/graph"
)

// testCourse covers boundary crossing, an empty lesson, and gaps in order
// numbers. Document order of activities: a1, a2, a4, a5, a6.
func testCourse() domain.Course {
	return domain.Course{
		ID: "course-1",
		Modules: []domain.Module{
			{
				ID:    "m2",
				Order: 20,
				Lessons: []domain.Lesson{
					{
						ID:    "l4",
						Order: 1,
						Activities: []domain.Activity{
							{ID: "a5", Order: 1, Kind: domain.KindArticle},
							{ID: "a6", Order: 2, Kind: domain.KindQuiz},
						},
					},
				},
			},
			{
				ID:    "m1",
				Order: 10,
				Lessons: []domain.Lesson{
					{
						ID:    "l1",
						Order: 1,
						Activities: []domain.Activity{
							{ID: "a2", Order: 7, Kind: domain.KindQuiz},
							{ID: "a1", Order: 3, Kind: domain.KindArticle},
						},
					},
					{ID: "l2", Order: 2}, // degenerate: no activities
					{
						ID:    "l3",
						Order: 5,
						Activities: []domain.Activity{
							{ID: "a4", Order: 1, Kind: domain.KindArticle},
						},
					},
				},
			},
		},
	}
}

func TestNextVisitsEveryActivityInOrder(t *testing.T) {
	g := graph.New(testCourse())

	want := []string{"a1", "a2", "a4", "a5", "a6"}

	current, ok := g.FirstActivity()
	if !ok {
		t.Fatalf("expected a first activity")
	}
	var visited []string
	for !current.Terminal {
		visited = append(visited, current.ActivityID)
		next, err := g.NextActivity(current.ActivityID)
		if err != nil {
			t.Fatalf("next from %s: %v", current.ActivityID, err)
		}
		current = next
	}

	if len(visited) != len(want) {
		t.Fatalf("expected %d activities, visited %v", len(want), visited)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, visited)
		}
	}
	if current.CourseID != "course-1" {
		t.Fatalf("terminal target should carry the course, got %+v", current)
	}
}

func TestPrevNextSymmetry(t *testing.T) {
	g := graph.New(testCourse())

	for _, id := range []string{"a1", "a2", "a4", "a5"} {
		next, err := g.NextActivity(id)
		if err != nil {
			t.Fatalf("next(%s): %v", id, err)
		}
		back, err := g.PrevActivity(next.ActivityID)
		if err != nil {
			t.Fatalf("prev(%s): %v", next.ActivityID, err)
		}
		if back.ActivityID != id {
			t.Fatalf("prev(next(%s)) = %s, want %s", id, back.ActivityID, id)
		}
	}
}

func TestBoundaryCrossingSelectsEdges(t *testing.T) {
	g := graph.New(testCourse())

	// Crossing forward into a lesson lands on its first activity.
	next, err := g.NextActivity("a2")
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if next.ActivityID != "a4" || next.LessonID != "l3" {
		t.Fatalf("expected first activity of l3, got %+v", next)
	}

	// Crossing backward into a lesson lands on its last activity.
	prev, err := g.PrevActivity("a5")
	if err != nil {
		t.Fatalf("prev: %v", err)
	}
	if prev.ActivityID != "a4" || prev.ModuleID != "m1" {
		t.Fatalf("expected last activity of m1, got %+v", prev)
	}
}

func TestEmptyLessonIsNeverATarget(t *testing.T) {
	g := graph.New(testCourse())

	next, err := g.NextActivity("a2")
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if next.LessonID == "l2" {
		t.Fatalf("traversal returned the empty lesson: %+v", next)
	}

	lesson, err := g.NextLesson("l1")
	if err != nil {
		t.Fatalf("next lesson: %v", err)
	}
	if lesson.LessonID != "l3" {
		t.Fatalf("expected l3 (skipping empty l2), got %+v", lesson)
	}
}

func TestLessonLevelTraversal(t *testing.T) {
	g := graph.New(testCourse())

	next, err := g.NextLesson("l3")
	if err != nil {
		t.Fatalf("next lesson: %v", err)
	}
	if next.LessonID != "l4" || next.ModuleID != "m2" {
		t.Fatalf("expected l4 across module boundary, got %+v", next)
	}

	prev, err := g.PrevLesson("l4")
	if err != nil {
		t.Fatalf("prev lesson: %v", err)
	}
	if prev.LessonID != "l3" {
		t.Fatalf("expected l3, got %+v", prev)
	}

	terminal, err := g.NextLesson("l4")
	if err != nil {
		t.Fatalf("next lesson: %v", err)
	}
	if !terminal.Terminal || terminal.CourseID != "course-1" {
		t.Fatalf("expected terminal target, got %+v", terminal)
	}
}

func TestEndOfCourse(t *testing.T) {
	course := domain.Course{
		ID: "course-2",
		Modules: []domain.Module{
			{
				ID:    "m1",
				Order: 1,
				Lessons: []domain.Lesson{
					{
						ID:    "l1",
						Order: 1,
						Activities: []domain.Activity{
							{ID: "a1", Order: 1, Kind: domain.KindArticle},
							{ID: "a2", Order: 2, Kind: domain.KindQuiz},
						},
					},
				},
			},
		},
	}
	g := graph.New(course)

	next, err := g.NextActivity("a2")
	if err != nil {
		t.Fatalf("next at course end must not error, got %v", err)
	}
	if !next.Terminal || next.CourseID != "course-2" {
		t.Fatalf("expected terminal target carrying course-2, got %+v", next)
	}
}

func TestSingleActivityCourseIsTerminalBothWays(t *testing.T) {
	course := domain.Course{
		ID: "solo",
		Modules: []domain.Module{
			{ID: "m1", Order: 1, Lessons: []domain.Lesson{
				{ID: "l1", Order: 1, Activities: []domain.Activity{
					{ID: "only", Order: 1, Kind: domain.KindArticle},
				}},
			}},
		},
	}
	g := graph.New(course)

	next, err := g.NextActivity("only")
	if err != nil || !next.Terminal {
		t.Fatalf("expected terminal next, got %+v err=%v", next, err)
	}
	prev, err := g.PrevActivity("only")
	if err != nil || !prev.Terminal {
		t.Fatalf("expected terminal prev, got %+v err=%v", prev, err)
	}
}

func TestUnknownIDsReturnNotFound(t *testing.T) {
	g := graph.New(testCourse())

	if _, err := g.NextActivity("nope"); err != domain.ErrActivityNotFound {
		t.Fatalf("expected activity not found, got %v", err)
	}
	if _, err := g.NextLesson("nope"); err != domain.ErrLessonNotFound {
		t.Fatalf("expected lesson not found, got %v", err)
	}
	if _, err := g.Module("nope"); err != domain.ErrModuleNotFound {
		t.Fatalf("expected module not found, got %v", err)
	}
}

func TestLookupsReturnSortedNodes(t *testing.T) {
	g := graph.New(testCourse())

	module, err := g.Module("m1")
	if err != nil {
		t.Fatalf("module: %v", err)
	}
	if len(module.Lessons) != 3 || module.Lessons[2].Lesson.ID != "l3" {
		t.Fatalf("expected lessons sorted by order, got %+v", module.Lessons)
	}

	lesson, err := g.Lesson("l1")
	if err != nil {
		t.Fatalf("lesson: %v", err)
	}
	if lesson.Activities[0].Activity.ID != "a1" {
		t.Fatalf("expected activities sorted by order, got %+v", lesson.Activities)
	}
}
