package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/RoaringMaas/edutrack-lms/internal/middleware"
	"github.com/RoaringMaas/edutrack-lms/internal/service"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth        *AuthHandler
	Class       *ClassHandler
	Student     *StudentHandler
	Assignment  *AssignmentHandler
	Submission  *SubmissionHandler
	Assessment  *AssessmentHandler
	Grade       *GradeHandler
	ShareLink   *ShareLinkHandler
	Report      *ReportHandler
	Note        *NoteHandler
	Admin       *AdminHandler
	Metrics     *MetricsHandler
	AuthService *service.AuthService
}

// Register mounts all API routes onto the group. Authentication is a
// bearer token except for registration, login, and the parent view.
func Register(api *gin.RouterGroup, h Handlers) {
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/parent-view/:token", h.ShareLink.ParentView)

	authed := api.Group("", middleware.JWT(h.AuthService))
	{
		authed.POST("/auth/logout", h.Auth.Logout)
		authed.POST("/auth/change-password", h.Auth.ChangePassword)
		authed.GET("/auth/me", h.Auth.Me)

		authed.GET("/classes", h.Class.List)
		authed.POST("/classes", h.Class.Create)
		authed.GET("/classes/:id", h.Class.Get)
		authed.PUT("/classes/:id", h.Class.Update)
		authed.DELETE("/classes/:id", h.Class.Delete)

		authed.GET("/classes/:id/students", h.Student.List)
		authed.POST("/classes/:id/students", h.Student.Create)
		authed.POST("/classes/:id/students/bulk", h.Student.BulkImport)
		authed.POST("/classes/:id/students/import", h.Student.ImportCSV)
		authed.PUT("/students/:id", h.Student.Update)
		authed.DELETE("/students/:id", h.Student.Delete)

		authed.GET("/classes/:id/assignments", h.Assignment.List)
		authed.POST("/classes/:id/assignments", h.Assignment.Create)
		authed.PUT("/assignments/:id", h.Assignment.Update)
		authed.DELETE("/assignments/:id", h.Assignment.Delete)

		authed.GET("/classes/:id/submissions", h.Submission.ListByClass)
		authed.PUT("/submissions", h.Submission.Upsert)

		authed.GET("/classes/:id/assessments", h.Assessment.List)
		authed.POST("/classes/:id/assessments", h.Assessment.Create)
		authed.GET("/assessments/:id", h.Assessment.Get)
		authed.PUT("/assessments/:id", h.Assessment.Update)
		authed.DELETE("/assessments/:id", h.Assessment.Delete)
		authed.POST("/assessments/:id/file", h.Assessment.UploadFile)
		authed.DELETE("/assessments/:id/file", h.Assessment.RemoveFile)

		authed.GET("/classes/:id/grades", h.Grade.ListByClass)
		authed.GET("/students/:id/grades", h.Grade.ListByStudent)
		authed.PUT("/grades", h.Grade.Upsert)
		authed.PUT("/grades/bulk", h.Grade.BulkUpsert)
		authed.POST("/grades/import", h.Grade.ImportScores)
		authed.POST("/assessments/:id/scores/import", h.Grade.ImportScoresCSV)
		authed.GET("/classes/:id/grades/export", h.Grade.ExportCSV)

		authed.POST("/students/:id/share-link", h.ShareLink.Generate)
		authed.DELETE("/students/:id/share-link", h.ShareLink.Revoke)

		authed.GET("/students/:id/report", h.Report.StudentReport)
		authed.GET("/students/:id/report/pdf", h.Report.StudentReportPDF)
		authed.GET("/classes/:id/report", h.Report.ClassReport)

		authed.GET("/classes/:id/notes", h.Note.Get)
		authed.PUT("/classes/:id/notes", h.Note.Upsert)

		admin := authed.Group("/admin", middleware.RequireAdmin())
		{
			admin.GET("/users", h.Admin.ListUsers)
			admin.PUT("/users/:id/role", h.Admin.UpdateUserRole)
			admin.PUT("/users/:id/status", h.Admin.UpdateAccountStatus)
		}
	}
}
