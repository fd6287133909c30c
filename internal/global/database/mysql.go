package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"innovation-hub/config"
	"innovation-hub/internal/global/sentry/tracing"
	"innovation-hub/internal/model"
	"innovation-hub/tools"
)

var DB *gorm.DB

// autoMigrateModels 定义需要自动迁移的模型列表
var autoMigrateModels = []any{
	&model.User{},
	&model.Event{},
	&model.Team{},
	&model.TeamMember{},
	&model.Idea{},
	&model.Project{},
	&model.Criteria{},
	&model.Judge{},
	&model.JudgeScore{},
	&model.CriteriaScore{},
}

// DSN 根据配置拼接 MySQL 连接串
func DSN(c config.Mysql) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.DBName,
	)
}

// Open 建立连接并完成自动迁移
func Open(cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true}, // 还是单数表名好
	}

	switch cfg.Mode {
	case config.ModeDebug:
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	case config.ModeRelease:
		gormConfig.Logger = logger.Discard
	}

	db, err := gorm.Open(mysql.Open(DSN(cfg.Mysql)), gormConfig)
	if err != nil {
		return nil, err
	}
	if tracing.IsEnabled() {
		if err := db.Use(tracing.NewGormPlugin()); err != nil {
			return nil, err
		}
	}
	if err := db.AutoMigrate(autoMigrateModels...); err != nil {
		return nil, err
	}
	return db, nil
}

func Init() {
	db, err := Open(config.Get())
	tools.PanicOnErr(err)
	DB = db
}
