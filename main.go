package main

import (
	"log"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"Sistem-Manajemen-Restoran/config"
	_ "Sistem-Manajemen-Restoran/docs"
	"Sistem-Manajemen-Restoran/handlers"
	"Sistem-Manajemen-Restoran/pkg/paseto"
	"Sistem-Manajemen-Restoran/repository"
	"Sistem-Manajemen-Restoran/router"
	"Sistem-Manajemen-Restoran/seeder"
	"Sistem-Manajemen-Restoran/service"
)

const seedStaffCount = 10

// @title Sistem Manajemen Restoran API
// @version 1.0
// @description API absensi staf restoran, cuti, dan penggajian
//
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and PASETO token.
func main() {
	cfg := config.LoadConfig()

	config.MongoConnect(cfg.MONGOSTRING, cfg.DBName)
	config.InitDatabase()
	defer config.DisconnectDB()

	maker, err := paseto.NewMaker(cfg.PASETO_SECRET)
	if err != nil {
		log.Fatalf("Gagal menginisialisasi token generator: %v", err)
	}

	userRepo := repository.NewUserRepository()
	deptRepo := repository.NewDepartmentRepository()
	employeeRepo := repository.NewEmployeeRepository()
	qrRepo := repository.NewQRCodeRepository()

	attendanceService := service.NewAttendanceService(employeeRepo, service.SystemClock, cfg.Location)
	payrollService := service.NewPayrollService(employeeRepo, attendanceService)
	employeeService := service.NewEmployeeService(employeeRepo, deptRepo, service.SystemClock, cfg.Location)

	if cfg.SeedData {
		seeder.SeedDepartments(deptRepo)
		seeder.SeedUsers(userRepo, employeeService, seedStaffCount)
	}

	app := fiber.New()
	config.SetupCORS(app)
	app.Use(logger.New())

	router.SetupRoutes(app, maker, router.Handlers{
		Auth:       handlers.NewAuthHandler(userRepo, employeeRepo, maker),
		Department: handlers.NewDepartmentHandler(deptRepo, employeeRepo),
		Employee:   handlers.NewEmployeeHandler(employeeService),
		Attendance: handlers.NewAttendanceHandler(attendanceService, qrRepo),
		Payroll:    handlers.NewPayrollHandler(payrollService),
	})

	log.Printf("Server running on port %s", cfg.Port)
	log.Printf("API Documentation: http://localhost:%s/docs/index.html", cfg.Port)
	log.Printf("CORS enabled for origins: %v", config.GetAllowedOrigins())
	log.Fatal(app.Listen(":" + cfg.Port))
}
