package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"

	"brocante_back_end/internal/config"
	"brocante_back_end/internal/logger"
)

// --- Variables Globales ---
var (
	DB          *sql.DB
	RedisClient *redis.Client
	MinioClient *minio.Client
)

// ConnectDatabases ouvre toutes les connexions (MySQL, Redis, MinIO).
// MySQL est obligatoire ; Redis et MinIO dégradent proprement s'ils manquent.
func ConnectDatabases() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := connectMySQL(); err != nil {
		return err
	}
	connectRedis(ctx)
	connectMinio()

	logger.Log.Info("✅ Toutes les bases de données sont connectées")
	return nil
}

func connectMySQL() error {
	cfg := mysql.NewConfig()
	cfg.User = config.Get("DB_USER", "root")
	cfg.Passwd = config.Get("DB_PASSWORD", "")
	cfg.Net = "tcp"
	cfg.Addr = config.Get("DB_ADDR", "127.0.0.1:3306")
	cfg.DBName = config.Get("DB_NAME", "brocante")
	cfg.ParseTime = true

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		logger.Log.Errorw("❌ Échec ouverture MySQL", "error", err)
		return fmt.Errorf("connectMySQL: %v", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		logger.Log.Errorw("❌ MySQL injoignable", "addr", cfg.Addr, "error", err)
		return fmt.Errorf("connectMySQL: ping: %v", err)
	}

	DB = db
	logger.Log.Infow("✅ Connecté à MySQL", "addr", cfg.Addr, "database", cfg.DBName)
	return nil
}

func connectRedis(ctx context.Context) {
	addr := config.Get("REDIS_ADDR", "localhost:6379")

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.Get("REDIS_PASSWORD", ""),
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Log.Warnw("⚠️ Redis non disponible — repli en mémoire locale pour l'état de santé modération", "addr", addr, "error", err)
		return
	}

	RedisClient = client
	logger.Log.Infow("✅ Connecté à Redis", "addr", addr)
}

func connectMinio() {
	endpoint := config.Get("MINIO_ENDPOINT", "")
	if endpoint == "" {
		logger.Log.Warn("⚠️ MinIO non configuré — upload d'images désactivé")
		return
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.Get("MINIO_ACCESS_KEY", ""), config.Get("MINIO_SECRET_KEY", ""), ""),
		Secure: config.Get("MINIO_USE_SSL", "false") == "true",
	})
	if err != nil {
		logger.Log.Warnw("⚠️ MinIO non configuré", "error", err)
		return
	}

	MinioClient = client
	logger.Log.Infow("✅ Connecté à MinIO", "endpoint", endpoint)
}
