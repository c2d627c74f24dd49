package router

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"Sistem-Manajemen-Restoran/config/middleware"
	"Sistem-Manajemen-Restoran/handlers"
	"Sistem-Manajemen-Restoran/pkg/paseto"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Department *handlers.DepartmentHandler
	Employee   *handlers.EmployeeHandler
	Attendance *handlers.AttendanceHandler
	Payroll    *handlers.PayrollHandler
}

func SetupRoutes(app *fiber.App, maker *paseto.Maker, h Handlers) {
	log.Println("Memulai pendaftaran rute aplikasi...")

	auth := middleware.AuthMiddleware(maker)
	adminOnly := middleware.AdminMiddleware()
	managerOnly := middleware.ManagerMiddleware()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Sistem Manajemen Restoran API",
			"status":  "running",
			"docs":    "/docs/index.html",
		})
	})
	app.Get("/docs/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/register", auth, adminOnly, h.Auth.Register)

	userGroup := api.Group("/users", auth)
	userGroup.Post("/change-password", h.Auth.ChangePassword)

	deptGroup := api.Group("/departments", auth)
	deptGroup.Get("/", h.Department.GetAllDepartments)
	deptGroup.Get("/stats", managerOnly, h.Department.GetDepartmentStats)
	deptGroup.Post("/", adminOnly, h.Department.CreateDepartment)
	deptGroup.Put("/:id", adminOnly, h.Department.UpdateDepartment)
	deptGroup.Delete("/:id", adminOnly, h.Department.DeleteDepartment)

	employeeGroup := api.Group("/employees", auth)
	employeeGroup.Post("/", managerOnly, h.Employee.CreateEmployee)
	employeeGroup.Get("/", managerOnly, h.Employee.GetAllEmployees)
	employeeGroup.Get("/:id", h.Employee.GetEmployeeByID)
	employeeGroup.Put("/:id", managerOnly, h.Employee.UpdateEmployee)
	employeeGroup.Post("/:id/terminate", adminOnly, h.Employee.TerminateEmployee)
	employeeGroup.Get("/:id/leave-balance", h.Employee.GetLeaveBalance)
	employeeGroup.Post("/:id/reviews", managerOnly, h.Employee.AddPerformanceReview)

	// Rute statis didaftarkan sebelum /:id agar tidak tertangkap sebagai ID.
	attendanceGroup := api.Group("/attendance", auth)
	attendanceGroup.Post("/scan", h.Attendance.ScanQRCode)
	attendanceGroup.Get("/generate-qr", adminOnly, h.Attendance.GenerateQRCode)
	attendanceGroup.Post("/bulk-check-in", managerOnly, h.Attendance.BulkCheckIn)
	attendanceGroup.Post("/:id/check-in", h.Attendance.CheckIn)
	attendanceGroup.Post("/:id/check-out", h.Attendance.CheckOut)
	attendanceGroup.Post("/:id/breaks/start", h.Attendance.StartBreak)
	attendanceGroup.Post("/:id/breaks/end", h.Attendance.EndBreak)
	attendanceGroup.Post("/:id/leave", h.Attendance.ApplyLeave)
	attendanceGroup.Post("/:id/leave/:requestId/approve", managerOnly, h.Attendance.ApproveLeave)
	attendanceGroup.Post("/:id/leave/:requestId/reject", managerOnly, h.Attendance.RejectLeave)
	attendanceGroup.Get("/:id/history", h.Attendance.GetAttendanceHistory)
	attendanceGroup.Get("/:id/monthly", h.Attendance.GetMonthlyAggregate)

	payrollGroup := api.Group("/payroll", auth)
	payrollGroup.Get("/report", managerOnly, h.Payroll.PayrollReport)
	payrollGroup.Get("/:id", h.Payroll.CalculateSalary)

	log.Println("Semua rute aplikasi berhasil didaftarkan.")
	for _, route := range app.GetRoutes(true) {
		if route.Method == fiber.MethodHead {
			continue
		}
		log.Printf("- %s %s", route.Method, route.Path)
	}
	log.Println("Swagger documentation tersedia di: /docs/index.html")
}
