package Routes

import (
	"ErpClinico/Controllers"
	"ErpClinico/Middleware"
	"ErpClinico/SSE"
	"ErpClinico/Whatsapp"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func ConfigRoutes(router *gin.Engine) {
	// Gzip Compression
	router.Use(gzip.Gzip(gzip.BestSpeed))

	// Public routes
	public := router.Group("/api")
	{
		public.POST("/login", Controllers.Login)
		public.POST("/register", Controllers.Register)
		public.POST("/SaveFcmToken", Controllers.SaveFCM)
	}

	// Authorized routes
	authorized := router.Group("/api/protected")
	authorized.Use(Middleware.JwtAuthMiddleware())
	authorized.Use(Middleware.SetCurrentUser())
	{

		// User-related routes
		authorized.GET("/user", Controllers.CurrentUser)

		// Patient-related routes
		authorized.GET("/FetchPatients", Controllers.FetchPatients)
		authorized.POST("/CreatePatient", Controllers.CreatePatient)
		authorized.POST("/UpdatePatient", Controllers.UpdatePatient)
		authorized.POST("/FetchPatientFilesURLs", Controllers.FetchPatientFilesURLs)
		authorized.POST("/UploadPatientRecord", Controllers.UploadPatientRecord)
		authorized.POST("/DeletePatientRecord", Controllers.DeletePatientRecord)

		// Therapist-related routes
		authorized.GET("/GetTherapists", Controllers.GetTherapists)
		authorized.POST("/FetchTherapistRates", Controllers.FetchTherapistRates)

		// Order-related routes
		authorized.POST("/FetchMedicalOrders", Controllers.FetchMedicalOrders)
		authorized.POST("/FetchOrderSessions", Controllers.FetchOrderSessions)

		// Session-related routes (therapist flows)
		authorized.POST("/CompleteSession", Controllers.CompleteSession)
		authorized.POST("/MarkPlanCasero", Controllers.MarkPlanCasero)
		authorized.POST("/CancelSession", Controllers.CancelSession)
		authorized.POST("/FetchTherapistAgenda", Controllers.FetchTherapistAgenda)

		// Evolution-related routes
		authorized.POST("/FetchSessionEvolution", Controllers.FetchSessionEvolution)
		authorized.POST("/UpdateEvolution", Controllers.UpdateEvolution)
		authorized.POST("/CreateInitialEvaluation", Controllers.CreateInitialEvaluation)
		authorized.POST("/FetchInitialEvaluation", Controllers.FetchInitialEvaluation)

		// SSE (Server-Sent Events) route
		authorized.GET("/RequestSSE", SSE.RequestSSE)
	}

	// Admin-only routes
	admin := router.Group("/api/protected/admin")
	admin.Use(Middleware.JwtAuthMiddleware())
	admin.Use(Middleware.SetCurrentUser())
	admin.Use(Middleware.PermissionCheckAdmin())
	{
		admin.POST("/RegisterTherapist", Controllers.RegisterTherapist)
		admin.POST("/FreezeTherapist", Controllers.FreezeTherapist)
		admin.POST("/SetTherapistRate", Controllers.SetTherapistRate)
		admin.POST("/DeletePatient", Controllers.DeletePatient)

		admin.POST("/CreateMedicalOrder", Controllers.CreateMedicalOrder)
		admin.POST("/TransferMedicalOrder", Controllers.TransferMedicalOrder)
		admin.POST("/CloseMedicalOrder", Controllers.CloseMedicalOrder)

		admin.POST("/RescheduleSession", Controllers.RescheduleSession)
		admin.GET("/FetchPendingReschedules", Controllers.FetchPendingReschedules)

		admin.POST("/LockEvolution", Controllers.LockEvolution)

		// Payroll-related routes
		admin.POST("/CreatePayrollPeriod", Controllers.CreatePayrollPeriod)
		admin.GET("/FetchPayrollPeriods", Controllers.FetchPayrollPeriods)
		admin.POST("/ComputePayroll", Controllers.ComputePayroll)
		admin.POST("/FetchPayrollDetails", Controllers.FetchPayrollDetails)
		admin.POST("/ClosePayrollPeriod", Controllers.ClosePayrollPeriod)
		admin.POST("/MarkPayrollPeriodPaid", Controllers.MarkPayrollPeriodPaid)

		// Export-related routes
		admin.POST("/ExportPayrollExcel", Controllers.ExportPayrollExcel)
		admin.POST("/ExportSessionsExcel", Controllers.ExportSessionsExcel)

		// WhatsApp-related routes
		admin.GET("/CheckWhatsAppLogin", Whatsapp.CheckLogin)
		admin.GET("/GetWhatsAppQRCode", Whatsapp.GetQRCode)
	}

	// Static file serving
	authorized.Static("/PatientRecords", "./PatientRecords")
	router.Static("/Web", "./Static")
}
