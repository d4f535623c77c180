package db

import (
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"codementor-backend/internal/models"
	"codementor-backend/internal/review"
)

func Connect(dsn string) *gorm.DB {
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := gdb.AutoMigrate(&models.User{}, &review.Session{}); err != nil {
		log.Fatalf("automigrate: %v", err)
	}
	return gdb
}
