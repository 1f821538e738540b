package inits

import (
	"fmt"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"splitboard/app/server/constants"
	"splitboard/app/server/models"
)

func DB(driver string, conn string) (db *gorm.DB, err error) {
	var dialector gorm.Dialector
	switch driver {
	case constants.DBDriverPostgres:
		dialector = postgres.Open(conn)
	case constants.DBDriverSQLite:
		dialector = sqlite.Open(conn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	// 打开连接
	if db, err = gorm.Open(dialector, &gorm.Config{
		TranslateError: true, // 唯一约束冲突统一转换为 gorm.ErrDuplicatedKey
	}); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// sqlite 只允许一个写入者，直接限制为单连接
	if driver == constants.DBDriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql db: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	// 迁移
	if err = mig(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 返回
	return db, nil
}

func mig(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.Env{},
	)
}
