package service

import (
	"time"

	"github.com/RoaringMaas/edutrack-lms/internal/gradebook"
	"github.com/RoaringMaas/edutrack-lms/internal/models"
)

// buildProjection assembles the read-only snapshot of one student's standing.
// The same shape feeds the parent share link and the teacher report, so it
// must never include notes, other students, or identity fields.
func buildProjection(student *models.Student, class *models.Class, assessments []models.Assessment, grades []models.Grade, assignments []models.Assignment, submissions []models.Submission) models.ParentViewProjection {
	gradeItems := make([]models.GradeSummaryItem, 0, len(assessments))
	for _, a := range assessments {
		item := models.GradeSummaryItem{
			AssessmentID:   a.ID,
			AssessmentName: a.Name,
			Type:           a.Type,
			DateTaken:      a.DateTaken,
			MaxScore:       a.MaxScore,
		}
		for _, g := range grades {
			if g.StudentID == student.ID && g.AssessmentID == a.ID {
				item.Score = g.Score
				item.Percentage = gradebook.Percentage(g.Score, a.MaxScore)
				break
			}
		}
		gradeItems = append(gradeItems, item)
	}

	statusByAssignment := make(map[string]models.SubmissionStatus, len(submissions))
	for _, sub := range submissions {
		if sub.StudentID == student.ID {
			statusByAssignment[sub.AssignmentID] = sub.Status
		}
	}
	homeworkItems := make([]models.HomeworkSummaryItem, 0, len(assignments))
	for _, a := range assignments {
		status := statusByAssignment[a.ID]
		if status == "" {
			status = models.StatusPending
		}
		homeworkItems = append(homeworkItems, models.HomeworkSummaryItem{
			AssignmentID:   a.ID,
			AssignmentName: a.Name,
			WeekLabel:      a.WeekLabel,
			DueDate:        a.DueDate,
			Status:         status,
		})
	}

	return models.ParentViewProjection{
		StudentName:    student.Name,
		StudentCode:    student.StudentCode,
		ClassName:      class.SubjectName,
		GradeLevel:     class.GradeLevel,
		Section:        class.Section,
		AcademicYear:   class.AcademicYear,
		Term:           class.Term,
		TermAverage:    gradebook.TermAverage(student.ID, assessments, grades),
		Grades:         gradeItems,
		Homework:       homeworkItems,
		HomeworkTotals: gradebook.StudentHomeworkTotals(student.ID, assignments, submissions),
		GeneratedAt:    time.Now().UTC(),
	}
}
