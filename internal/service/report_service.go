package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/RoaringMaas/edutrack-lms/internal/gradebook"
	"github.com/RoaringMaas/edutrack-lms/internal/models"
	appErrors "github.com/RoaringMaas/edutrack-lms/pkg/errors"
	"github.com/RoaringMaas/edutrack-lms/pkg/export"
	"github.com/RoaringMaas/edutrack-lms/pkg/narrative"
)

type reportGradeRepository interface {
	ListByClass(ctx context.Context, classID string) ([]models.Grade, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Grade, error)
}

type reportSubmissionRepository interface {
	ListByClass(ctx context.Context, classID string) ([]models.Submission, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Submission, error)
}

type reportStudentRepository interface {
	ListByClass(ctx context.Context, classID string) ([]models.Student, error)
}

type reportAssessmentRepository interface {
	ListByClass(ctx context.Context, classID string) ([]models.Assessment, error)
}

type reportAssignmentRepository interface {
	ListByClass(ctx context.Context, classID string) ([]models.Assignment, error)
}

// ReportService assembles student and class reports. The narrative text is
// produced by an external generator from a prompt built purely from numbers
// already assembled here; when the generator is unavailable the report goes
// out with an empty narrative rather than failing.
type ReportService struct {
	students    reportStudentRepository
	assessments reportAssessmentRepository
	assignments reportAssignmentRepository
	grades      reportGradeRepository
	submissions reportSubmissionRepository
	guard       *AccessGuard
	generator   narrative.Generator
	metrics     *MetricsService
	pdf         *export.PDFExporter
	logger      *zap.Logger
}

// NewReportService constructs a ReportService instance. The generator may
// be nil when narrative generation is disabled.
func NewReportService(
	students reportStudentRepository,
	assessments reportAssessmentRepository,
	assignments reportAssignmentRepository,
	grades reportGradeRepository,
	submissions reportSubmissionRepository,
	guard *AccessGuard,
	generator narrative.Generator,
	metrics *MetricsService,
	logger *zap.Logger,
) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		students:    students,
		assessments: assessments,
		assignments: assignments,
		grades:      grades,
		submissions: submissions,
		guard:       guard,
		generator:   generator,
		metrics:     metrics,
		pdf:         export.NewPDFExporter(),
		logger:      logger,
	}
}

// StudentReport assembles one student's progress report.
func (s *ReportService) StudentReport(ctx context.Context, actor *models.JWTClaims, studentID string) (*models.StudentReport, error) {
	student, class, err := s.guard.Student(ctx, actor, studentID)
	if err != nil {
		return nil, err
	}

	assessments, err := s.assessments.ListByClass(ctx, class.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assessments")
	}
	grades, err := s.grades.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grades")
	}
	assignments, err := s.assignments.ListByClass(ctx, class.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
	}
	submissions, err := s.submissions.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submissions")
	}

	projection := buildProjection(student, class, assessments, grades, assignments, submissions)
	report := &models.StudentReport{
		StudentID:      student.ID,
		StudentName:    student.Name,
		StudentCode:    student.StudentCode,
		ClassName:      class.SubjectName,
		Term:           class.Term,
		TermAverage:    projection.TermAverage,
		Bucket:         gradebook.GradeBucket(projection.TermAverage, class.AlertThreshold),
		Grades:         projection.Grades,
		Homework:       projection.Homework,
		HomeworkTotals: projection.HomeworkTotals,
		GeneratedAt:    time.Now().UTC(),
	}
	report.Narrative = s.generate(ctx, studentPrompt(student, class, report))
	return report, nil
}

// ClassReport assembles the whole-class overview.
func (s *ReportService) ClassReport(ctx context.Context, actor *models.JWTClaims, classID string) (*models.ClassReport, error) {
	class, err := s.guard.Class(ctx, actor, classID)
	if err != nil {
		return nil, err
	}

	roster, err := s.students.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	assessments, err := s.assessments.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assessments")
	}
	assignments, err := s.assignments.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
	}
	grades, err := s.grades.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grades")
	}
	submissions, err := s.submissions.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submissions")
	}

	standings := make([]models.ClassStanding, 0, len(roster))
	sum, graded := 0, 0
	for _, st := range roster {
		avg := gradebook.TermAverage(st.ID, assessments, grades)
		totals := gradebook.StudentHomeworkTotals(st.ID, assignments, submissions)
		standings = append(standings, models.ClassStanding{
			StudentID:      st.ID,
			StudentName:    st.Name,
			StudentCode:    st.StudentCode,
			TermAverage:    avg,
			Bucket:         gradebook.GradeBucket(avg, class.AlertThreshold),
			SubmissionRate: totals.SubmissionRate,
			MissingCount:   totals.Missing,
		})
		if avg != nil {
			sum += *avg
			graded++
		}
	}
	var classAvg *int
	if graded > 0 {
		avg := int(math.Round(float64(sum) / float64(graded)))
		classAvg = &avg
	}

	dist := gradebook.Distribution(roster, assessments, grades, class.AlertThreshold)
	report := &models.ClassReport{
		ClassID:      class.ID,
		ClassName:    class.SubjectName,
		Term:         class.Term,
		AcademicYear: class.AcademicYear,
		ClassAverage: classAvg,
		Distribution: dist,
		AtRiskCount:  dist[gradebook.BucketAtRisk],
		Standings:    standings,
		GeneratedAt:  time.Now().UTC(),
	}
	report.Narrative = s.generate(ctx, classPrompt(class, report, len(roster)))
	return report, nil
}

// StudentReportPDF renders the student report as a downloadable document.
func (s *ReportService) StudentReportPDF(ctx context.Context, actor *models.JWTClaims, studentID string) ([]byte, string, error) {
	report, err := s.StudentReport(ctx, actor, studentID)
	if err != nil {
		return nil, "", err
	}

	avg := "No grades yet"
	if report.TermAverage != nil {
		avg = fmt.Sprintf("%d%%", *report.TermAverage)
	}
	doc := export.ReportDocument{
		Title: fmt.Sprintf("Progress Report - %s", report.StudentName),
		Summary: []string{
			fmt.Sprintf("Class: %s (%s)", report.ClassName, report.Term),
			fmt.Sprintf("Student Code: %s", report.StudentCode),
			fmt.Sprintf("Term Average: %s", avg),
			fmt.Sprintf("Homework: %d submitted, %d late, %d missing of %d",
				report.HomeworkTotals.Submitted, report.HomeworkTotals.Late, report.HomeworkTotals.Missing, report.HomeworkTotals.Total),
		},
		Table:     export.Dataset{Headers: []string{"Assessment", "Type", "Score", "Percentage"}},
		Narrative: report.Narrative,
	}
	for _, g := range report.Grades {
		score, pct := "N/A", "N/A"
		if g.Score != nil {
			score = fmt.Sprintf("%g/%g", *g.Score, g.MaxScore)
		}
		if g.Percentage != nil {
			pct = fmt.Sprintf("%d%%", *g.Percentage)
		}
		doc.Table.AddRow(g.AssessmentName, string(g.Type), score, pct)
	}

	data, err := s.pdf.Render(doc)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render PDF")
	}
	filename := fmt.Sprintf("report-%s.pdf", strings.ReplaceAll(strings.ToLower(report.StudentName), " ", "-"))
	return data, filename, nil
}

func (s *ReportService) generate(ctx context.Context, prompt string) string {
	if s.generator == nil {
		return ""
	}
	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("narrative generation failed", zap.Error(err))
		s.countNarrative("error")
		return ""
	}
	s.countNarrative("ok")
	return text
}

func (s *ReportService) countNarrative(outcome string) {
	if s.metrics != nil {
		s.metrics.CountNarrative(outcome)
	}
}

func studentPrompt(student *models.Student, class *models.Class, report *models.StudentReport) string {
	var b strings.Builder
	b.WriteString("You are an experienced teacher writing a brief, encouraging progress report for a student.\n\n")
	fmt.Fprintf(&b, "Student: %s\n", student.Name)
	fmt.Fprintf(&b, "Class: %s (%s - %s)\n", class.SubjectName, class.GradeLevel, class.Section)
	fmt.Fprintf(&b, "Term: %s %s\n", class.Term, class.AcademicYear)
	if report.TermAverage != nil {
		fmt.Fprintf(&b, "Term Average: %d%%\n", *report.TermAverage)
	} else {
		b.WriteString("Term Average: No grades yet\n")
	}
	fmt.Fprintf(&b, "Submission Rate: %.0f%%\n", report.HomeworkTotals.SubmissionRate)
	b.WriteString("Assessment Results:\n")
	for _, g := range report.Grades {
		score, pct := "N/A", "N/A"
		if g.Score != nil {
			score = fmt.Sprintf("%g", *g.Score)
		}
		if g.Percentage != nil {
			pct = fmt.Sprintf("%d%%", *g.Percentage)
		}
		fmt.Fprintf(&b, "- %s (%s): %s/%g (%s)\n", g.AssessmentName, g.Type, score, g.MaxScore, pct)
	}
	b.WriteString("\nWrite a 2-3 paragraph narrative progress report. Be specific, constructive, and encouraging. Mention strengths and areas for improvement. Keep it professional and suitable for sharing with parents.")
	return b.String()
}

func classPrompt(class *models.Class, report *models.ClassReport, rosterSize int) string {
	var b strings.Builder
	b.WriteString("You are an experienced teacher writing a class progress summary report.\n\n")
	fmt.Fprintf(&b, "Class: %s (%s - %s)\n", class.SubjectName, class.GradeLevel, class.Section)
	fmt.Fprintf(&b, "Term: %s %s\n", class.Term, class.AcademicYear)
	if report.ClassAverage != nil {
		fmt.Fprintf(&b, "Class Average: %d%%\n", *report.ClassAverage)
	} else {
		b.WriteString("Class Average: No grades yet\n")
	}
	fmt.Fprintf(&b, "Total Students: %d\n", rosterSize)
	fmt.Fprintf(&b, "Students above 90%%: %d\n", report.Distribution[gradebook.BucketExcellent])
	fmt.Fprintf(&b, "Students at risk (<%d%%): %d\n", class.AlertThreshold, report.AtRiskCount)
	b.WriteString("\nWrite a 2-3 paragraph class progress summary. Highlight overall performance, areas of strength, and areas needing attention. Be constructive and professional.")
	return b.String()
}
