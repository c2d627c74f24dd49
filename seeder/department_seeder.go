package seeder

import (
	"context"
	"log"
	"time"

	"Sistem-Manajemen-Restoran/models"
	"Sistem-Manajemen-Restoran/repository"
)

var restaurantDepartments = []models.DepartmentPayload{
	{Name: "Kitchen", Description: "Dapur utama, persiapan dan memasak"},
	{Name: "Service", Description: "Pelayan dan host ruang makan"},
	{Name: "Bar", Description: "Minuman dan bartender"},
	{Name: "Cashier", Description: "Kasir dan pembayaran"},
	{Name: "Housekeeping", Description: "Kebersihan area restoran"},
	{Name: "Management", Description: "Manajer restoran dan shift"},
}

// SeedDepartments memasukkan departemen restoran yang belum ada.
func SeedDepartments(departmentRepo repository.DepartmentRepository) {
	log.Println("Memulai seeding departemen...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, dept := range restaurantDepartments {
		existingDept, err := departmentRepo.FindDepartmentByName(ctx, dept.Name)
		if err != nil {
			log.Printf("Gagal memeriksa departemen '%s': %v", dept.Name, err)
			continue
		}
		if existingDept != nil {
			log.Printf("Skipping: Departemen '%s' sudah ada.", dept.Name)
			continue
		}

		newDepartment := &models.Department{Name: dept.Name, Description: dept.Description}
		if _, err := departmentRepo.CreateDepartment(ctx, newDepartment); err != nil {
			log.Printf("Gagal menyimpan departemen '%s': %v", dept.Name, err)
			continue
		}
		log.Printf("Departemen '%s' berhasil ditambahkan.", dept.Name)
	}

	log.Println("Seeding departemen selesai.")
}
