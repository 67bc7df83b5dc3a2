// @title Lingua 学习进度服务 API
// @version 1.0
// @description 英语学习平台的学习进度、考试评分与统计接口。

// @contact.name API支持
// @contact.email support@lingua.local

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"flag"
	"lingua_backend/internal/app"
	"lingua_backend/internal/config"
	"lingua_backend/pkg/logger"
	"log"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	orphanReport := flag.Bool("orphan-report", false, "输出课程已删除的孤立进度记录后退出")
	flag.Parse()

	// .env 不存在时只用环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 设置迁移标志
	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 迁移完成后直接退出
	if *migrateOnly {
		log.Println("数据库迁移完成，退出程序")
		return
	}

	if *orphanReport {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := application.OrphanReport(ctx); err != nil {
			log.Fatalf("Orphan report failed: %v", err)
		}
		return
	}

	application.Run()
}
