package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/office-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/office-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/office-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	logger *slog.Logger,
	allowedOrigins []string,
	JWTService jwt.Service,
	authHandler AuthHandler,
	userHandler UserHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	taskHandler TaskHandler,
	meetingHandler MeetingHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Put("/auth/password", authHandler.ChangePassword)

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", userHandler.Me)
				r.Get("/{id}", userHandler.Get)

				r.With(middleware.RequirePermission(user.PermissionUserViewAll)).Get("/", userHandler.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUserManage))
					r.Post("/", userHandler.Create)
					r.Put("/{id}", userHandler.Update)
					r.Delete("/{id}", userHandler.Delete)
				})
			})

			r.Route("/attendances", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceSubmitOwn)).Post("/", attendanceHandler.Submit)
				r.Get("/my", attendanceHandler.GetMyAttendance)
				r.Get("/my/summary", attendanceHandler.MySummary)
				r.Get("/export", attendanceHandler.Export)
				r.Get("/{id}", attendanceHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
					r.Get("/", attendanceHandler.List)
					r.Get("/summary", attendanceHandler.Summary)
				})

				r.With(middleware.RequirePermission(user.PermissionAttendanceManage)).Delete("/{id}", attendanceHandler.Delete)
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", leaveHandler.CreateRequest)
				r.Get("/my", leaveHandler.GetMyRequests)
				r.Get("/{id}", leaveHandler.GetRequest)
				r.Post("/{id}/cancel", leaveHandler.CancelRequest)

				r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/", leaveHandler.ListRequests)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
					r.Post("/{id}/approve", leaveHandler.ApproveRequest)
					r.Post("/{id}/reject", leaveHandler.RejectRequest)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionTaskViewOwn)).Get("/my", taskHandler.ListMine)
				r.Get("/{id}", taskHandler.Get)
				r.Patch("/{id}/status", taskHandler.UpdateStatus)

				r.With(middleware.RequirePermission(user.PermissionTaskViewAll)).Get("/", taskHandler.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionTaskManage))
					r.Post("/", taskHandler.Create)
					r.Put("/{id}", taskHandler.Update)
					r.Delete("/{id}", taskHandler.Delete)
				})
			})

			r.Route("/meetings", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionMeetingViewOwn)).Get("/my", meetingHandler.ListMine)
				r.Get("/{id}", meetingHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionMeetingManage))
					r.Get("/", meetingHandler.List)
					r.Post("/", meetingHandler.Create)
					r.Put("/{id}", meetingHandler.Update)
					r.Delete("/{id}", meetingHandler.Delete)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
