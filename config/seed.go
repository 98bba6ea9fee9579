package config

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/Rian448/SMAve-System/models"
)

// Seed creates the default branch network and the initial administrator
// account. Each piece is created only when absent, so restarting is safe.
func Seed() {
	seedBranches()
	seedAdmin()
}

func seedBranches() {
	branches := []models.Branch{
		{Name: "Main Warehouse", Code: "MW", Address: "123 Main St", IsWarehouse: true, IsActive: true},
		{Name: "Branch A", Code: "BA", Address: "456 Branch A St", IsActive: true},
		{Name: "Branch B", Code: "BB", Address: "789 Branch B St", IsActive: true},
		{Name: "Branch C", Code: "BC", Address: "321 Branch C St", IsActive: true},
	}
	for _, b := range branches {
		var cnt int64
		DB.Model(&models.Branch{}).Where("code = ?", b.Code).Count(&cnt)
		if cnt == 0 {
			DB.Create(&b)
		}
	}
}

func seedAdmin() {
	var cnt int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleAdministrator).Count(&cnt)
	if cnt > 0 {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("warning: failed to hash seed admin password: %v", err)
		return
	}

	var main models.Branch
	DB.Where("code = ?", "MW").First(&main)

	DB.Create(&models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Email:        "admin@seatmakers.com",
		FullName:     "System Administrator",
		Role:         models.RoleAdministrator,
		BranchID:     main.ID,
		IsActive:     true,
	})
	log.Println("seeded initial administrator account")
}
