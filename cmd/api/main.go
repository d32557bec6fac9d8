package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/PresidentDoug/my-game-sync/internal/config"
	"github.com/PresidentDoug/my-game-sync/internal/model"
	"github.com/PresidentDoug/my-game-sync/internal/pkg"
	"github.com/PresidentDoug/my-game-sync/internal/repository/mysql"
	"github.com/PresidentDoug/my-game-sync/internal/repository/redis"
	"github.com/PresidentDoug/my-game-sync/internal/router"
	"github.com/PresidentDoug/my-game-sync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "config.yaml", "config file path")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	pkg.InitSecrets(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret)

	if err = mysql.InitDB(cfg.MySQL.DSN, cfg.AppID); err != nil {
		log.Fatal().Err(err).Msg("mysql init failed")
	}
	if err = mysql.DB.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.DirectoryEntry{},
		&model.Guild{},
		&model.GuildMember{},
		&model.Session{},
		&model.SessionParticipant{},
		&model.Feedback{},
		&model.ActivityOutbox{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto migrate failed")
	}

	if err = redis.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.AppID); err != nil {
		log.Fatal().Err(err).Msg("redis init failed")
	}
	defer redis.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// kafka 可选：brokers 未配置时动态事件只打日志
	sender := service.Sender(service.LogSender)
	if len(cfg.Kafka.Brokers) > 0 {
		producer := pkg.NewActivityProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}
	go service.NewActivityRelayer(mysql.DB, sender).Run(ctx)
	go service.NewOrphanSessionReconciler(mysql.DB).Run(ctx)

	gin.SetMode(cfg.Server.Mode)
	r := router.InitRouter(cfg, mysql.DB)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		cancel()
	}()

	log.Info().Str("addr", cfg.Server.Addr).Str("app", cfg.AppID).Msg("server starting")
	if err = r.Run(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
