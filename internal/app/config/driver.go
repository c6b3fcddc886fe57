package config

import "time"

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
	}
	MongoDB struct {
		Port           string
		Host           string
		Username       string
		Password       string
		DbName         string
		ConnectTimeout time.Duration
		MaxPoolSize    uint64
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		Database int
		PoolSize int
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
		AccessLogFileName   string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
		VHost    string
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		Region   string
		UseSSL   bool
	}
)
