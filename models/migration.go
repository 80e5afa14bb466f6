package models

import (
	"log"

	"bitbucket.org/mmdatafocus/claims_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&User{},
		&Company{},
		&Expense{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
