package mysql

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

// InitDB 连接 MySQL，tablePrefix 用实例 id 做多租户隔离
func InitDB(dsn, tablePrefix string) error {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{TablePrefix: tablePrefix + "_"},
	})
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// lockForUpdate 行锁；sqlite（测试库）不认识 FOR UPDATE，跳过
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
