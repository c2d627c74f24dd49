package seeder

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"Sistem-Manajemen-Restoran/models"
	"Sistem-Manajemen-Restoran/repository"
	"Sistem-Manajemen-Restoran/service"
)

const defaultSeedPassword = "Password123"

type seedRole struct {
	Role       string
	Department string
}

var seedRoles = []seedRole{
	{"chef", "Kitchen"},
	{"cook", "Kitchen"},
	{"waiter", "Service"},
	{"host", "Service"},
	{"bartender", "Bar"},
	{"cashier", "Cashier"},
	{"cleaner", "Housekeeping"},
}

// SeedUsers membuat user admin dan beberapa karyawan contoh beserta akun staf-nya.
func SeedUsers(userRepo *repository.UserRepository, employees *service.EmployeeService, count int) {
	log.Println("Memulai seeding user...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(defaultSeedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Gagal hash password: %v", err)
	}

	adminEmail := "admin@restoran.id"
	adminUser, err := userRepo.FindUserByEmail(ctx, adminEmail)
	if err == nil && adminUser != nil {
		log.Println("User admin sudah ada, seeding user admin dilewati.")
	} else {
		newAdmin := &models.User{
			Name:     "Admin Restoran",
			Email:    adminEmail,
			Password: string(hashedPassword),
			Role:     models.RoleAdmin,
		}
		if _, err := userRepo.CreateUser(ctx, newAdmin); err != nil {
			log.Printf("Gagal menyimpan user admin: %v", err)
		} else {
			log.Printf("User Admin (%s) berhasil ditambahkan.", newAdmin.Email)
		}
	}

	firstNames := []string{"Budi", "Siti", "Agus", "Dewi", "Joko", "Rina", "Andi", "Maya", "Fajar", "Putri", "Bayu", "Hana"}
	lastNames := []string{"Santoso", "Wijaya", "Putra", "Utami", "Nugroho", "Rahayu", "Pratama", "Lestari", "Setiawan", "Gunawan"}

	for i := 1; i <= count; i++ {
		email := fmt.Sprintf("staf%02d@restoran.id", i)
		existingUser, err := userRepo.FindUserByEmail(ctx, email)
		if err == nil && existingUser != nil {
			log.Printf("Skipping: User %s sudah ada.", email)
			continue
		}

		role := seedRoles[rand.Intn(len(seedRoles))]
		payload := models.EmployeeCreatePayload{
			Name:         fmt.Sprintf("%s %s", firstNames[rand.Intn(len(firstNames))], lastNames[rand.Intn(len(lastNames))]),
			Email:        email,
			Role:         role.Role,
			Department:   role.Department,
			PayrollType:  models.PayrollMonthly,
			BaseSalary:   float64(rand.Intn(2000001) + 4000000),
			OvertimeRate: 30000,
			ShiftStart:   "10:00",
			ShiftEnd:     "19:00",
			BreakMinutes: 60,
			WeeklyOffs:   []string{"monday"},
		}
		if i%4 == 0 {
			payload.PayrollType = models.PayrollHourly
			payload.BaseSalary = 0
			payload.HourlyRate = 25000
		}

		employee, err := employees.CreateEmployee(ctx, payload)
		if err != nil {
			log.Printf("Gagal menyimpan karyawan %s: %v", payload.Name, err)
			continue
		}

		staff := &models.User{
			Name:       employee.Name,
			Email:      email,
			Password:   string(hashedPassword),
			Role:       models.RoleStaff,
			EmployeeID: &employee.ID,
		}
		if _, err := userRepo.CreateUser(ctx, staff); err != nil {
			log.Printf("Gagal menyimpan user %s: %v", email, err)
			continue
		}
		log.Printf("Karyawan %s (%s, %s - %s) berhasil ditambahkan.", employee.Name, employee.EmployeeCode, employee.Role, employee.Department)
	}

	log.Println("Seeding user selesai.")
}
