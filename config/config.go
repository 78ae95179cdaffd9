package config

import (
	"errors"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name string `mapstructure:"name"`
		Port string `mapstructure:"port"`
	} `mapstructure:"app"`
	Mongo struct {
		URI      string `mapstructure:"uri"`
		Database string `mapstructure:"database"`
	} `mapstructure:"mongo"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	NewsAPI struct {
		Key     string `mapstructure:"key"`
		Country string `mapstructure:"country"`
	} `mapstructure:"newsapi"`
	Azure struct {
		Endpoint   string `mapstructure:"endpoint"`
		Deployment string `mapstructure:"deployment"`
		Key        string `mapstructure:"key"`
	} `mapstructure:"azure"`
	JWT struct {
		Secret string `mapstructure:"secret"`
	} `mapstructure:"jwt"`
}

var AppConfig *Config

func InitConfig() {
	// Optional .env for local development; real deployments set env vars.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")

	viper.SetDefault("app.name", "newsvoice")
	viper.SetDefault("app.port", ":5000")
	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "newsvoice")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("newsapi.country", "us")
	viper.SetDefault("azure.deployment", "gpt-4o-mini-realtime-preview")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Legacy environment names kept from earlier deployments.
	_ = viper.BindEnv("mongo.uri", "MONGO_URI", "MONGODB_URI")
	_ = viper.BindEnv("newsapi.key", "NEWSAPI_KEY")
	_ = viper.BindEnv("azure.endpoint", "AZURE_ENDPOINT", "AZURE_OAI_ENDPOINT")
	_ = viper.BindEnv("azure.deployment", "AZURE_DEPLOYMENT", "AZURE_OAI_DEPLOYMENT")
	_ = viper.BindEnv("azure.key", "AZURE_KEY", "AZURE_OAI_KEY")
	_ = viper.BindEnv("jwt.secret", "JWT_SECRET")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatalf("Failed to read config file: %v", err)
		}
	}

	AppConfig = &Config{}
	if err := viper.Unmarshal(AppConfig); err != nil {
		log.Fatalf("Failed to unmarshal config: %v", err)
	}

	initStore()
	initRedis()
	initNews()
}
