// Package database initializes the sqlite-backed user store and seeds the
// default accounts on first start.
package database

import (
	"io/fs"
	"log"
	"os"
	"path"
	"strings"

	"usergate/config"
	"usergate/database/model"
	"usergate/util/crypto"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// Default accounts created when the store is empty. An operational default
// inherited from the system this replaces, not a security recommendation.
var seedUsers = []struct {
	username string
	password string
	role     string
}{
	{"Admin", "admin", "admin"},
	{"user1", "User1", "notadmin"},
	{"user2", "User2", "notadmin"},
}

func initModels() error {
	models := []any{
		&model.User{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// initUsers seeds the default accounts the first time the users table is
// empty. Passwords are stored hashed only.
func initUsers() error {
	empty, err := isTableEmpty("users")
	if err != nil {
		log.Printf("Error checking if users table is empty: %v", err)
		return err
	}
	if !empty {
		return nil
	}
	for _, seed := range seedUsers {
		hash, err := crypto.HashPassword(seed.password)
		if err != nil {
			return err
		}
		user := &model.User{
			Username:     seed.username,
			PasswordHash: hash,
			Role:         seed.role,
		}
		if err := db.Create(user).Error; err != nil {
			return err
		}
	}
	return nil
}

func isTableEmpty(tableName string) (bool, error) {
	var count int64
	err := db.Table(tableName).Count(&count).Error
	return count == 0, err
}

func isMemoryDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "file::memory:") || strings.Contains(dsn, "mode=memory")
}

// InitDB opens the sqlite database at the given DSN, migrates the schema and
// seeds the default accounts when the store is empty.
func InitDB(dsn string) error {
	if !isMemoryDSN(dsn) {
		dir := path.Dir(dsn)
		if err := os.MkdirAll(dir, fs.ModePerm); err != nil {
			return err
		}
		dsn += "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
	}

	var gormLogger logger.Interface
	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}

	var err error
	db, err = gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return err
	}

	if isMemoryDSN(dsn) {
		// The shared in-memory database is dropped once the last connection
		// closes; pin the pool so that never happens mid-process.
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	}

	if err := initModels(); err != nil {
		return err
	}
	return initUsers()
}

func CloseDB() error {
	if db != nil {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}
