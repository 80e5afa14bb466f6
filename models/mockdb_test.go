package models

import (
	"testing"

	"bitbucket.org/mmdatafocus/claims_backend/config"
	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB installs a sqlmock-backed gorm handle as the global DB for the
// duration of the test, so model functions run against scripted SQL instead
// of a live MySQL.
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	config.SetDB(gdb)
	t.Cleanup(func() {
		config.SetDB(nil)
		sqlDB.Close()
	})
	return mock
}
