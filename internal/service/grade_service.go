package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/RoaringMaas/edutrack-lms/internal/gradebook"
	"github.com/RoaringMaas/edutrack-lms/internal/models"
	appErrors "github.com/RoaringMaas/edutrack-lms/pkg/errors"
	"github.com/RoaringMaas/edutrack-lms/pkg/export"
)

type gradeRepository interface {
	ListByClass(ctx context.Context, classID string) ([]models.Grade, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Grade, error)
	Upsert(ctx context.Context, grade *models.Grade) error
	BulkUpsert(ctx context.Context, grades []models.Grade) error
}

type gradeStudentRepository interface {
	ListByClass(ctx context.Context, classID string) ([]models.Student, error)
}

type gradeAssessmentRepository interface {
	ListByClass(ctx context.Context, classID string) ([]models.Assessment, error)
}

// UpsertGradeRequest scores one (student, assessment) pair. A nil score
// clears the grade back to ungraded.
type UpsertGradeRequest struct {
	StudentID    string   `json:"student_id" validate:"required"`
	AssessmentID string   `json:"assessment_id" validate:"required"`
	Score        *float64 `json:"score"`
}

// BulkUpsertGradeRequest scores many students against one assessment.
type BulkUpsertGradeRequest struct {
	AssessmentID string           `json:"assessment_id" validate:"required"`
	Entries      []BulkGradeEntry `json:"entries" validate:"required,dive"`
}

// BulkGradeEntry is one row of a bulk score request.
type BulkGradeEntry struct {
	StudentID string   `json:"student_id" validate:"required"`
	Score     *float64 `json:"score"`
}

// ImportScoresRequest carries raw CSV rows targeted at one assessment.
type ImportScoresRequest struct {
	AssessmentID string               `json:"assessment_id" validate:"required"`
	Rows         []gradebook.ScoreRow `json:"rows"`
}

// ImportScoresResult reports per-row disposition of a score import.
type ImportScoresResult struct {
	Imported  int      `json:"imported"`
	Skipped   []string `json:"skipped"`
	Unmatched []string `json:"unmatched"`
}

// GradeService provides scoring use cases.
type GradeService struct {
	repo        gradeRepository
	students    gradeStudentRepository
	assessments gradeAssessmentRepository
	guard       *AccessGuard
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewGradeService constructs a GradeService instance.
func NewGradeService(repo gradeRepository, students gradeStudentRepository, assessments gradeAssessmentRepository, guard *AccessGuard, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &GradeService{repo: repo, students: students, assessments: assessments, guard: guard, validator: validate, logger: logger}
}

// ListByClass returns every grade row for a class.
func (s *GradeService) ListByClass(ctx context.Context, actor *models.JWTClaims, classID string) ([]models.Grade, error) {
	if _, err := s.guard.Class(ctx, actor, classID); err != nil {
		return nil, err
	}
	grades, err := s.repo.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}
	if grades == nil {
		grades = []models.Grade{}
	}
	return grades, nil
}

// ListByStudent returns one student's grade rows.
func (s *GradeService) ListByStudent(ctx context.Context, actor *models.JWTClaims, studentID string) ([]models.Grade, error) {
	if _, _, err := s.guard.Student(ctx, actor, studentID); err != nil {
		return nil, err
	}
	grades, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}
	if grades == nil {
		grades = []models.Grade{}
	}
	return grades, nil
}

// Upsert scores one pair, enforcing 0 <= score <= maxScore at the boundary.
func (s *GradeService) Upsert(ctx context.Context, actor *models.JWTClaims, req UpsertGradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}

	student, studentClass, err := s.guard.Student(ctx, actor, req.StudentID)
	if err != nil {
		return nil, err
	}
	assessment, _, err := s.guard.Assessment(ctx, actor, req.AssessmentID)
	if err != nil {
		return nil, err
	}
	if assessment.ClassID != studentClass.ID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student and assessment belong to different classes")
	}
	if req.Score != nil && (*req.Score < 0 || *req.Score > assessment.MaxScore) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("score must be between 0 and %g", assessment.MaxScore))
	}

	grade := &models.Grade{
		StudentID:    student.ID,
		AssessmentID: assessment.ID,
		Score:        req.Score,
	}
	if err := s.repo.Upsert(ctx, grade); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save grade")
	}
	return grade, nil
}

// BulkUpsert scores a batch of students against one assessment. Rows are
// validated up front; persistence is row by row and not atomic.
func (s *GradeService) BulkUpsert(ctx context.Context, actor *models.JWTClaims, req BulkUpsertGradeRequest) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}

	assessment, _, err := s.guard.Assessment(ctx, actor, req.AssessmentID)
	if err != nil {
		return 0, err
	}
	roster, err := s.students.ListByClass(ctx, assessment.ClassID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	onRoster := make(map[string]struct{}, len(roster))
	for _, st := range roster {
		onRoster[st.ID] = struct{}{}
	}

	grades := make([]models.Grade, 0, len(req.Entries))
	for _, entry := range req.Entries {
		if _, ok := onRoster[entry.StudentID]; !ok {
			return 0, appErrors.Clone(appErrors.ErrValidation, "entry references a student outside the class")
		}
		if entry.Score != nil && (*entry.Score < 0 || *entry.Score > assessment.MaxScore) {
			return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("score must be between 0 and %g", assessment.MaxScore))
		}
		grades = append(grades, models.Grade{
			StudentID:    entry.StudentID,
			AssessmentID: assessment.ID,
			Score:        entry.Score,
		})
	}
	if err := s.repo.BulkUpsert(ctx, grades); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save grades")
	}
	return len(grades), nil
}

// ImportScores runs the score-matching pipeline against pre-parsed rows.
// Blank scores are skipped, unknown identifiers and invalid values are
// reported back, and only cleanly matched rows are persisted.
func (s *GradeService) ImportScores(ctx context.Context, actor *models.JWTClaims, req ImportScoresRequest) (*ImportScoresResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid import payload")
	}

	assessment, _, err := s.guard.Assessment(ctx, actor, req.AssessmentID)
	if err != nil {
		return nil, err
	}
	roster, err := s.students.ListByClass(ctx, assessment.ClassID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}

	outcome := gradebook.MatchScores(req.Rows, roster, assessment.MaxScore)
	if len(outcome.Imported) > 0 {
		grades := make([]models.Grade, len(outcome.Imported))
		for i, entry := range outcome.Imported {
			score := entry.Score
			grades[i] = models.Grade{
				StudentID:    entry.StudentID,
				AssessmentID: assessment.ID,
				Score:        &score,
			}
		}
		if err := s.repo.BulkUpsert(ctx, grades); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save imported grades")
		}
	}

	s.logger.Info("scores imported",
		zap.String("assessment_id", assessment.ID),
		zap.Int("imported", len(outcome.Imported)),
		zap.Int("skipped", len(outcome.Skipped)),
		zap.Int("unmatched", len(outcome.Unmatched)))
	return &ImportScoresResult{
		Imported:  len(outcome.Imported),
		Skipped:   outcome.Skipped,
		Unmatched: outcome.Unmatched,
	}, nil
}

// ImportScoresCSV parses an uploaded score file, auto-detects the identifier
// and score columns, and delegates to ImportScores.
func (s *GradeService) ImportScoresCSV(ctx context.Context, actor *models.JWTClaims, assessmentID string, file []byte) (*ImportScoresResult, error) {
	records, err := csv.NewReader(bytes.NewReader(file)).ReadAll()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "could not parse CSV file")
	}
	if len(records) < 2 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "CSV file has no data rows")
	}

	identCol, scoreCol, ok := gradebook.DetectScoreColumns(records[0])
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "CSV file needs an identifier column and a score column")
	}

	rows := make([]gradebook.ScoreRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := gradebook.ScoreRow{}
		if identCol < len(record) {
			row.Identifier = record[identCol]
		}
		if scoreCol < len(record) {
			row.ScoreRaw = record[scoreCol]
		}
		rows = append(rows, row)
	}
	return s.ImportScores(ctx, actor, ImportScoresRequest{AssessmentID: assessmentID, Rows: rows})
}

// ExportCSV renders the class scoreboard: one row per student, one column
// per assessment, plus the computed term average.
func (s *GradeService) ExportCSV(ctx context.Context, actor *models.JWTClaims, classID string) ([]byte, string, error) {
	class, err := s.guard.Class(ctx, actor, classID)
	if err != nil {
		return nil, "", err
	}
	roster, err := s.students.ListByClass(ctx, classID)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	assessments, err := s.assessments.ListByClass(ctx, classID)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assessments")
	}
	grades, err := s.repo.ListByClass(ctx, classID)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grades")
	}

	scoreByKey := make(map[string]*float64, len(grades))
	for _, g := range grades {
		scoreByKey[g.StudentID+"|"+g.AssessmentID] = g.Score
	}

	headers := []string{"Student Code", "Name"}
	for _, a := range assessments {
		headers = append(headers, fmt.Sprintf("%s (%g)", a.Name, a.MaxScore))
	}
	headers = append(headers, "Term Average")

	dataset := export.Dataset{Headers: headers}
	for _, st := range roster {
		cells := []string{st.StudentCode, st.Name}
		for _, a := range assessments {
			cell := ""
			if score, ok := scoreByKey[st.ID+"|"+a.ID]; ok && score != nil {
				cell = strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", *score), "0"), ".")
			}
			cells = append(cells, cell)
		}
		avgCell := ""
		if avg := gradebook.TermAverage(st.ID, assessments, grades); avg != nil {
			avgCell = fmt.Sprintf("%d%%", *avg)
		}
		cells = append(cells, avgCell)
		dataset.AddRow(cells...)
	}

	exporter := export.NewCSVExporter()
	data, err := exporter.Render(dataset)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render CSV")
	}
	filename := fmt.Sprintf("scoreboard-%s-%s.csv", strings.ReplaceAll(class.SubjectName, " ", "-"), class.Section)
	return data, filename, nil
}
