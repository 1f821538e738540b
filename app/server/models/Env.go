package models

// Env 存放运行时生成、需要在重启后保留的配置（例如签名密钥）
type Env struct {
	ID    uint   `gorm:"primarykey"`
	Key   string `gorm:"column:key;uniqueIndex"` // 配置名，唯一索引保证首次创建的竞争只会留下一条
	Value string `gorm:"column:value"`
}
