package routes

import (
	"loandesk/app"
	"loandesk/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	userCtl := controllers.NewUserController(s)
	catalogCtl := controllers.NewCatalogController(s)
	orderCtl := controllers.NewOrderController(s)
	availCtl := controllers.NewAvailabilityController(s)
	reportCtl := controllers.NewReportController(s)
	settingsCtl := controllers.NewSettingsController(s)

	authMW := app.AuthRequired(a.AppSessions(), s.Repo)
	staffMW := app.StaffOnly()

	// ------------------------------
	// Sessions
	// ------------------------------
	auth := r.Group("/auth")
	{
		auth.POST("/login", userCtl.Login)
	}
	authed := r.Group("/auth", authMW)
	{
		authed.POST("/logout", userCtl.Logout)
		authed.GET("/whoami", userCtl.WhoAmI)
	}

	// ------------------------------
	// Catalog (browse for everyone, mutate for staff)
	// ------------------------------
	catalog := r.Group("/api", authMW)
	{
		catalog.GET("/categories", catalogCtl.ListCategories)
		catalog.GET("/items", catalogCtl.ListItems) // ?category=&start=&end=
		catalog.GET("/items/:id", catalogCtl.GetItem)
		catalog.GET("/items/:id/units", catalogCtl.ListUnits)
		// availability takes ?start=&end=, alternative additionally ?quantity=
		catalog.GET("/items/:id/availability", availCtl.UnitsAvailable)
		catalog.GET("/items/:id/alternative", availCtl.AlternativeWindow)
	}
	catalogAdmin := r.Group("/api", authMW, staffMW)
	{
		catalogAdmin.POST("/categories", catalogCtl.CreateCategory)
		catalogAdmin.POST("/items", catalogCtl.CreateItem)
		catalogAdmin.POST("/items/:id/units", catalogCtl.CreateUnit)
		catalogAdmin.PATCH("/units/:unitId/available", catalogCtl.SetUnitAvailable)
	}

	// ------------------------------
	// Orders
	// ------------------------------
	orders := r.Group("/api/orders", authMW)
	{
		orders.POST("", orderCtl.PlaceOrder)
		orders.POST("/alternatives", availCtl.JointAlternatives)
		orders.GET("", orderCtl.ListOrders)                // upcoming delivered
		orders.GET("/pending", orderCtl.ListPendingOrders) // upcoming pending/approved
		orders.GET("/history", orderCtl.ListOrderHistory)  // ?page=&size=
		orders.GET("/:id", orderCtl.GetOrder)
		orders.POST("/:id/cancel", orderCtl.Cancel)
		orders.POST("/:id/report", reportCtl.CreateReport)
		orders.GET("/:id/report", reportCtl.GetOrderReport)
	}
	ordersStaff := r.Group("/api/orders", authMW, staffMW)
	{
		ordersStaff.POST("/:id/approve", orderCtl.Approve)
		ordersStaff.POST("/:id/reject", orderCtl.Reject)
		ordersStaff.POST("/:id/deliver", orderCtl.Deliver)
		ordersStaff.POST("/:id/return", orderCtl.Return)
	}

	// ------------------------------
	// Reports
	// ------------------------------
	reports := r.Group("/api/reports", authMW)
	{
		reports.GET("/mine", reportCtl.ListMyReports)
	}
	reportsStaff := r.Group("/api/reports", authMW, staffMW)
	{
		reportsStaff.GET("", reportCtl.ListReports) // ?active=true
	}

	// ------------------------------
	// Admin: users + settings
	// ------------------------------
	admin := r.Group("/api", authMW, staffMW)
	{
		admin.GET("/users", userCtl.ListUsers) // ?q=&page=&size=
		admin.POST("/users", userCtl.CreateUser)
		admin.GET("/settings", settingsCtl.GetSettings)
		admin.PUT("/settings", settingsCtl.UpdateSettings)
	}
}
