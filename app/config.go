package main

import "github.com/spf13/viper"

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	Version     string `mapstructure:"VERSION"`

	MongoURI string `mapstructure:"MONGO_URI"`
	MongoDB  string `mapstructure:"MONGO_DB"`

	JWTSecret string `mapstructure:"JWT_SECRET"`

	AdminID           string `mapstructure:"ADMIN_ID"`
	AdminUsername     string `mapstructure:"ADMIN_USERNAME"`
	AdminName         string `mapstructure:"ADMIN_NAME"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`

	MailHost     string `mapstructure:"MAIL_HOST"`
	MailPort     int    `mapstructure:"MAIL_PORT"`
	MailUser     string `mapstructure:"MAIL_USER"`
	MailPassword string `mapstructure:"MAIL_PASSWORD"`
	MailSender   string `mapstructure:"MAIL_SENDER"`
	OwnerEmail   string `mapstructure:"OWNER_EMAIL"`

	MQHost     string `mapstructure:"RABBITMQ_HOST"`
	MQPort     string `mapstructure:"RABBITMQ_PORT"`
	MQUser     string `mapstructure:"RABBITMQ_USER"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`

	RateLimitEnabled bool    `mapstructure:"LIMITER_ENABLED"`
	RateLimitRPS     float64 `mapstructure:"LIMITER_RPS"`
	RateLimitBurst   int     `mapstructure:"LIMITER_BURST"`
}

func loadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
