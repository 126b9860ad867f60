package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inverness4444/quadrant-landing-sub000/config"
	"github.com/inverness4444/quadrant-landing-sub000/internal/api/handler"
	"github.com/inverness4444/quadrant-landing-sub000/internal/api/middleware"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/jwt"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/redis"
)

// maxBodyBytes caps JSON request bodies. Spreadsheet uploads are checked
// separately in the employee import handler.
const maxBodyBytes = 10 << 20

// Setup builds the Gin engine with all routes and middleware attached.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth (no token required); credential endpoints are rate limited
		auth := v1.Group("/auth")
		{
			loginLimit := middleware.RateLimit(rdb, 10, time.Minute)
			auth.POST("/login", loginLimit, h.Auth.Login)
			auth.POST("/refresh", loginLimit, h.Auth.Refresh)
		}

		// routes below require a valid access token
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// auth (token required)
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// workspace
			workspace := authorized.Group("/workspace")
			{
				workspace.GET("", h.Workspace.Get)
				workspace.PUT("", middleware.RoleAuth("admin"), h.Workspace.Update)
				workspace.GET("/members", h.Workspace.ListMembers)
				workspace.POST("/members", middleware.RoleAuth("admin"), h.Workspace.InviteMember)
				workspace.PUT("/members/:id/role", middleware.RoleAuth("admin"), h.Workspace.AssignRole)
			}

			// employees, import and onboarding
			employees := authorized.Group("/employees")
			{
				employees.GET("", h.Employee.List)
				employees.GET("/:id", h.Employee.Get)
				employees.POST("", middleware.RoleAuth("admin", "hr"), h.Employee.Create)
				employees.PUT("/:id", middleware.RoleAuth("admin", "hr"), h.Employee.Update)
				employees.DELETE("/:id", middleware.RoleAuth("admin", "hr"), h.Employee.Delete)
				employees.POST("/import", middleware.RoleAuth("admin", "hr"), h.Employee.Import)

				employees.GET("/:id/skills", h.Skill.EmployeeSkills)
				employees.PUT("/:id/skills", middleware.RoleAuth("admin", "hr", "manager"), h.Skill.Rate)

				employees.POST("/:id/onboarding", middleware.RoleAuth("admin", "hr"), h.Employee.StartOnboarding)
				employees.GET("/:id/onboarding", h.Employee.GetOnboarding)
				employees.PUT("/:id/onboarding/:stepId", middleware.RoleAuth("admin", "hr", "manager"), h.Employee.CompleteOnboardingStep)
			}

			// skill catalog
			skills := authorized.Group("/skills")
			{
				skills.GET("", h.Skill.List)
				skills.POST("", middleware.RoleAuth("admin", "hr"), h.Skill.Create)
				skills.PUT("/:code", middleware.RoleAuth("admin", "hr"), h.Skill.Update)
				skills.DELETE("/:code", middleware.RoleAuth("admin", "hr"), h.Skill.Delete)
			}

			// role profiles
			roleProfiles := authorized.Group("/role-profiles")
			{
				roleProfiles.GET("", h.RoleProfile.List)
				roleProfiles.GET("/:id", h.RoleProfile.Get)
				roleProfiles.POST("", middleware.RoleAuth("admin", "hr"), h.RoleProfile.Create)
				roleProfiles.PUT("/:id", middleware.RoleAuth("admin", "hr"), h.RoleProfile.Update)
				roleProfiles.DELETE("/:id", middleware.RoleAuth("admin", "hr"), h.RoleProfile.Delete)
			}

			// development goals
			goals := authorized.Group("/goals")
			{
				goals.GET("", h.Goal.List)
				goals.GET("/:id", h.Goal.Get)
				goals.POST("", middleware.RoleAuth("admin", "hr", "manager"), h.Goal.Create)
				goals.PUT("/:id", middleware.RoleAuth("admin", "hr", "manager"), h.Goal.Update)
				goals.PUT("/:id/complete", middleware.RoleAuth("admin", "hr", "manager"), h.Goal.Complete)
				goals.DELETE("/:id", middleware.RoleAuth("admin", "hr", "manager"), h.Goal.Delete)
			}

			// pilots
			pilots := authorized.Group("/pilots")
			{
				pilots.GET("", h.Pilot.List)
				pilots.GET("/:id", h.Pilot.Get)
				pilots.POST("", middleware.RoleAuth("admin", "hr"), h.Pilot.Create)
				pilots.PUT("/:id", middleware.RoleAuth("admin", "hr"), h.Pilot.Update)
				pilots.DELETE("/:id", middleware.RoleAuth("admin", "hr"), h.Pilot.Delete)
				pilots.PUT("/:id/steps/:stepId", middleware.RoleAuth("admin", "hr", "manager"), h.Pilot.UpdateStep)
				pilots.POST("/:id/participants", middleware.RoleAuth("admin", "hr"), h.Pilot.AddParticipant)
				pilots.DELETE("/:id/participants/:employeeId", middleware.RoleAuth("admin", "hr"), h.Pilot.RemoveParticipant)
				pilots.POST("/:id/notes", middleware.RoleAuth("admin", "hr", "manager"), h.Pilot.AddNote)
			}

			// talent decisions
			decisions := authorized.Group("/decisions")
			decisions.Use(middleware.RoleAuth("admin", "hr", "manager"))
			{
				decisions.GET("", h.Decision.List)
				decisions.GET("/:id", h.Decision.Get)
				decisions.POST("", h.Decision.Create)
				decisions.PUT("/:id/status", h.Decision.Transition)
			}

			// risk cases
			riskCases := authorized.Group("/risk-cases")
			riskCases.Use(middleware.RoleAuth("admin", "hr", "manager"))
			{
				riskCases.GET("", h.Risk.List)
				riskCases.GET("/employees", h.Risk.EmployeeRiskList)
				riskCases.GET("/:id", h.Risk.Get)
				riskCases.POST("", h.Risk.Create)
				riskCases.PUT("/:id/status", h.Risk.Transition)
			}

			// analytics
			analytics := authorized.Group("/analytics")
			{
				analytics.GET("/overview", h.Analytics.Overview)
				analytics.GET("/skill-gap", h.Analytics.SkillGap)
				analytics.GET("/gaps", middleware.RoleAuth("admin", "hr", "manager"), h.Analytics.EmployeeGaps)
			}

			// quarterly reports
			reports := authorized.Group("/reports")
			reports.Use(middleware.RoleAuth("admin", "hr"))
			{
				reports.GET("", h.Report.List)
				reports.POST("", h.Report.Generate)
				reports.GET("/:year/:quarter", h.Report.Get)
				reports.PUT("/:year/:quarter/lock", h.Report.SetLock)
				reports.PUT("/:year/:quarter/notes", h.Report.UpdateNotes)
				reports.GET("/:year/:quarter/export", h.Report.Export)
			}

			// manager home and one-on-ones
			manager := authorized.Group("/manager")
			manager.Use(middleware.RoleAuth("admin", "manager"))
			{
				manager.GET("/home", h.Manager.Home)
				manager.POST("/meetings", h.Manager.ScheduleMeeting)
				manager.DELETE("/meetings/:id", h.Manager.CancelMeeting)
				manager.GET("/meetings.ics", h.Manager.MeetingsICS)
			}

			// pulse surveys
			surveys := authorized.Group("/surveys")
			{
				surveys.GET("", h.Survey.List)
				surveys.GET("/:id", h.Survey.Get)
				surveys.POST("", middleware.RoleAuth("admin", "hr"), h.Survey.Create)
				surveys.PUT("/:id/close", middleware.RoleAuth("admin", "hr"), h.Survey.Close)
				surveys.POST("/:id/responses", h.Survey.SubmitResponse)
			}
		}
	}

	return r
}
