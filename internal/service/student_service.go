package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/RoaringMaas/edutrack-lms/internal/gradebook"
	"github.com/RoaringMaas/edutrack-lms/internal/models"
	appErrors "github.com/RoaringMaas/edutrack-lms/pkg/errors"
)

type studentRepository interface {
	ListByClass(ctx context.Context, classID string) ([]models.Student, error)
	CountByClass(ctx context.Context, classID string) (int, error)
	GetByID(ctx context.Context, id string) (*models.Student, error)
	CodeExists(ctx context.Context, classID, code string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	BulkCreate(ctx context.Context, students []models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
}

// CreateStudentRequest carries the fields for a new roster entry.
type CreateStudentRequest struct {
	Name  string  `json:"name" validate:"required,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// UpdateStudentRequest carries the mutable student fields. A student code
// rename is checked for uniqueness within the class.
type UpdateStudentRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Email       *string `json:"email" validate:"omitempty,email"`
	StudentCode *string `json:"student_code" validate:"omitempty,min=1"`
}

// BulkImportRow is one entry of a roster import request.
type BulkImportRow struct {
	Name  string  `json:"name" validate:"required,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// BulkImportResult reports what a roster import did.
type BulkImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Codes   []string `json:"codes"`
}

// StudentService provides roster management use cases.
type StudentService struct {
	repo      studentRepository
	guard     *AccessGuard
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService instance.
func NewStudentService(repo studentRepository, guard *AccessGuard, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &StudentService{repo: repo, guard: guard, validator: validate, logger: logger}
}

// List returns the class roster.
func (s *StudentService) List(ctx context.Context, actor *models.JWTClaims, classID string) ([]models.Student, error) {
	if _, err := s.guard.Class(ctx, actor, classID); err != nil {
		return nil, err
	}
	students, err := s.repo.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	if students == nil {
		students = []models.Student{}
	}
	return students, nil
}

// Create adds one student, deriving the code from the current roster size.
func (s *StudentService) Create(ctx context.Context, actor *models.JWTClaims, classID string, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student name must not be blank")
	}
	class, err := s.guard.Class(ctx, actor, classID)
	if err != nil {
		return nil, err
	}

	size, err := s.repo.CountByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to size roster")
	}

	student := &models.Student{
		ClassID:     classID,
		StudentCode: gradebook.StudentCode(class.Section, size+1),
		Name:        name,
		Email:       req.Email,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	return student, nil
}

// BulkImport creates a batch of students. The code sequence is fixed once
// from the roster size at the start of the batch, so codes cannot collide
// within the import. Rows with a blank name are skipped.
func (s *StudentService) BulkImport(ctx context.Context, actor *models.JWTClaims, classID string, rows []BulkImportRow) (*BulkImportResult, error) {
	class, err := s.guard.Class(ctx, actor, classID)
	if err != nil {
		return nil, err
	}

	size, err := s.repo.CountByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to size roster")
	}

	result := &BulkImportResult{Codes: []string{}}
	students := make([]models.Student, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			result.Skipped++
			continue
		}
		code := gradebook.StudentCode(class.Section, size+len(students)+1)
		students = append(students, models.Student{
			ClassID:     classID,
			StudentCode: code,
			Name:        name,
			Email:       row.Email,
		})
		result.Codes = append(result.Codes, code)
	}
	if len(students) > 0 {
		if err := s.repo.BulkCreate(ctx, students); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import students")
		}
	}
	result.Created = len(students)
	s.logger.Info("roster imported", zap.String("class_id", classID), zap.Int("created", result.Created), zap.Int("skipped", result.Skipped))
	return result, nil
}

// ImportCSV parses an uploaded roster file, auto-detects the name and email
// columns, and delegates to BulkImport. A malformed file rejects the whole
// import with no partial insert.
func (s *StudentService) ImportCSV(ctx context.Context, actor *models.JWTClaims, classID string, file []byte) (*BulkImportResult, error) {
	records, err := csv.NewReader(bytes.NewReader(file)).ReadAll()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "could not parse CSV file")
	}
	if len(records) < 2 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "CSV file has no data rows")
	}

	nameCol, emailCol, ok := gradebook.DetectRosterColumns(records[0])
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "could not detect a name column")
	}

	rows := make([]BulkImportRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if nameCol >= len(record) {
			continue
		}
		row := BulkImportRow{Name: record[nameCol]}
		if emailCol >= 0 && emailCol < len(record) {
			if email := strings.TrimSpace(record[emailCol]); email != "" {
				row.Email = &email
			}
		}
		rows = append(rows, row)
	}
	return s.BulkImport(ctx, actor, classID, rows)
}

// Update applies the provided fields to a student. An explicit code rename
// is rejected with Conflict when the code is already taken in the class.
func (s *StudentService) Update(ctx context.Context, actor *models.JWTClaims, studentID string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student, _, err := s.guard.Student(ctx, actor, studentID)
	if err != nil {
		return nil, err
	}

	if req.StudentCode != nil && *req.StudentCode != student.StudentCode {
		taken, err := s.repo.CodeExists(ctx, student.ClassID, *req.StudentCode)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check student code")
		}
		if taken {
			return nil, appErrors.Clone(appErrors.ErrConflict, "student code is already in use in this class")
		}
		student.StudentCode = *req.StudentCode
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "student name must not be blank")
		}
		student.Name = name
	}
	if req.Email != nil {
		student.Email = req.Email
	}
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return student, nil
}

// Delete removes a student and their grade and submission rows.
func (s *StudentService) Delete(ctx context.Context, actor *models.JWTClaims, studentID string) error {
	if _, _, err := s.guard.Student(ctx, actor, studentID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, studentID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	return nil
}
