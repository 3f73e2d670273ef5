// Package config 從環境變數（以及可選的 .env 檔）讀取服務設定
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const maxPageSize = 100

// Config 服務啟動所需設定
type Config struct {
	DatabaseURL     string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	HTTPAddr        string
	WorkerCount     int
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	PageSize        int
	Debug           bool
	ResetDB         bool
}

var loadDotenv = godotenv.Load

// Load 讀取 .env（不存在時忽略）後解析環境變數
func Load(files ...string) (*Config, error) {
	if err := loadDotenv(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("載入 .env 失敗: %w", err)
	}

	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("環境變數 REDIS_ADDR 未設定")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("環境變數 JWT_SECRET 未設定")
	}

	redisDBStr := os.Getenv("REDIS_DB")
	if redisDBStr == "" {
		return nil, fmt.Errorf("環境變數 REDIS_DB 未設定")
	}
	redisDB, err := strconv.Atoi(redisDBStr)
	if err != nil {
		return nil, fmt.Errorf("無效的 REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	if cfg.WorkerCount, err = positiveInt("WORKER_COUNT", 1, 0); err != nil {
		return nil, err
	}
	if cfg.PageSize, err = positiveInt("PAGE_SIZE", 4, maxPageSize); err != nil {
		return nil, err
	}
	if cfg.AccessTokenTTL, err = duration("ACCESS_TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RefreshTokenTTL, err = duration("REFRESH_TOKEN_TTL", 30*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Debug, err = boolEnv("DEBUG"); err != nil {
		return nil, err
	}
	// RESET_DB=true 時啟動前先退回所有 migration
	if cfg.ResetDB, err = boolEnv("RESET_DB"); err != nil {
		return nil, err
	}
	return cfg, nil
}

func boolEnv(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("無效的 %s: %w", key, err)
	}
	return b, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// positiveInt 解析 > 0 的整數；max 為 0 代表不設上限
func positiveInt(key string, def, max int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || (max > 0 && n > max) {
		return 0, fmt.Errorf("無效的 %s: %q", key, v)
	}
	return n, nil
}

func duration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("無效的 %s: %q", key, v)
	}
	return d, nil
}
