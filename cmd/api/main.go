package main

import (
	"context"
	"os"
	"strings"

	"Postbook/internal/model"
	"Postbook/internal/pkg"
	"Postbook/internal/repository/mysql"
	"Postbook/internal/repository/redis"
	"Postbook/internal/router"
	"Postbook/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "user:password@tcp(127.0.0.1:3306)/postbook?charset=utf8mb4&parseTime=True"
	}
	if err := mysql.InitDB(dsn); err != nil {
		pkg.L.Fatal("mysql init failed", zap.Error(err))
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}
	if err := redis.Init(redisAddr, os.Getenv("REDIS_PASSWORD"), 0); err != nil {
		pkg.L.Fatal("redis init failed", zap.Error(err))
	}
	defer redis.Close()

	if err := mysql.DB.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Vote{},
		&model.EventOutbox{},
	); err != nil {
		pkg.L.Fatal("migration failed", zap.Error(err))
	}

	// background loops: outbox relay + counter audit
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	postRepo := &mysql.PostRepository{DB: mysql.DB}
	voteRepo := &mysql.VoteRepository{DB: mysql.DB}
	outboxRepo := &mysql.OutboxRepository{DB: mysql.DB}

	sender := service.LogSender
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		producer := pkg.NewKafkaProducer(strings.Split(brokers, ","), "postbook.events")
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}

	go service.NewOutboxRelayer(outboxRepo, sender).Run(ctx)
	go service.NewCountReconciler(postRepo, voteRepo, redis.NewVoteCountRepository()).Run(ctx)

	r := router.InitRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		pkg.L.Fatal("server exited", zap.Error(err))
	}
}
