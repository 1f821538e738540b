package inits

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"splitboard/app/server/constants"
	"splitboard/app/server/models"
)

// Secret 返回用于签发令牌的密钥。
// 优先使用配置中的密钥；否则从数据库读取，不存在时生成并写入。
// 并发的首次启动依靠 key 的唯一索引，只有一条写入会生效，之后统一以数据库中的值为准。
func Secret(ctx context.Context, db *gorm.DB, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	buf := make([]byte, constants.AppSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}

	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).
		Create(&models.Env{
			Key:   constants.AppSecretKey,
			Value: hex.EncodeToString(buf),
		}).Error; err != nil {
		return "", fmt.Errorf("failed to provision secret: %w", err)
	}

	// 读回实际生效的值
	var env models.Env
	if err := db.WithContext(ctx).Where(&models.Env{Key: constants.AppSecretKey}).First(&env).Error; err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}

	return env.Value, nil
}
