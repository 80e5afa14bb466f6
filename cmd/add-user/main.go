// add-user creates or updates a backend user from the command line.
// Mostly used to bootstrap the first admin before the API has any users.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... \
//     go run ./cmd/add-user -username admin -name "Claims Admin" -password secret -role admin
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"bitbucket.org/mmdatafocus/claims_backend/config"
	"bitbucket.org/mmdatafocus/claims_backend/models"
	"bitbucket.org/mmdatafocus/claims_backend/utils"
	"gorm.io/gorm"
)

func main() {
	username := flag.String("username", "", "login username (required)")
	name := flag.String("name", "", "display name (required)")
	password := flag.String("password", "", "password (required)")
	role := flag.String("role", "employee", "role: employee, manager, finance or admin")
	email := flag.String("email", "", "email address")
	phone := flag.String("phone", "", "phone number")
	flag.Parse()

	if *username == "" || *name == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "username, name and password are required")
		flag.Usage()
		os.Exit(2)
	}
	userRole := models.UserRole(*role)
	if !userRole.IsValid() {
		fmt.Fprintf(os.Stderr, "invalid role %q\n", *role)
		os.Exit(2)
	}

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	var existing models.User
	err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", *username).First(&existing).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			fmt.Fprintf(os.Stderr, "failed to lookup user: %v\n", err)
			os.Exit(1)
		}
		u, err := models.CreateUser(ctx, &models.NewUser{
			Username: *username,
			Name:     *name,
			Email:    *email,
			Phone:    *phone,
			Password: *password,
			IsActive: utils.NewTrue(),
			Role:     userRole,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created user: username=%q role=%s id=%d\n", u.Username, u.Role, u.ID)
		return
	}

	// Update existing user: reset password, name and role.
	hashed, err := utils.HashPassword(*password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}
	if err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", *username).Updates(map[string]any{
		"password":  string(hashed),
		"name":      *name,
		"is_active": utils.NewTrue(),
		"role":      userRole,
	}).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to update user: %v\n", err)
		os.Exit(1)
	}
	_ = existing.RemoveInstanceRedis()
	fmt.Printf("Updated user: username=%q role=%s\n", *username, userRole)
}
