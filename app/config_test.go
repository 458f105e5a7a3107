package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	tempFile, err := os.CreateTemp("", "config-*.env")
	if err != nil {
		t.Fatalf("Failed to create temporary config file: %v", err)
	}
	defer os.Remove(tempFile.Name())

	configData := []byte(`
PORT=:8080
ENVIRONMENT=development
VERSION=1.0.0
MONGO_URI=mongodb://localhost:27017
MONGO_DB=portfolio
JWT_SECRET=testsecret
ADMIN_ID=1
ADMIN_USERNAME=admin
ADMIN_NAME=Site Owner
ADMIN_PASSWORD_HASH='$2a$12$abcdefghijklmnopqrstuv'
MAIL_HOST=smtp.example.com
MAIL_PORT=587
MAIL_USER=testuser@example.com
MAIL_PASSWORD=testpassword
MAIL_SENDER=sender@example.com
OWNER_EMAIL=owner@example.com
RABBITMQ_HOST=rabbitmq.example.com
RABBITMQ_PORT=5672
RABBITMQ_USER=testuser
RABBITMQ_PASSWORD=testpassword
LIMITER_ENABLED=true
LIMITER_RPS=2
LIMITER_BURST=4
`)
	if _, err := tempFile.Write(configData); err != nil {
		t.Fatalf("Failed to write test configuration to temporary file: %v", err)
	}

	config, err := loadConfig(tempFile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.Equal(t, ":8080", config.Port)
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "1.0.0", config.Version)
	assert.Equal(t, "mongodb://localhost:27017", config.MongoURI)
	assert.Equal(t, "portfolio", config.MongoDB)
	assert.Equal(t, "testsecret", config.JWTSecret)
	assert.Equal(t, "1", config.AdminID)
	assert.Equal(t, "admin", config.AdminUsername)
	assert.Equal(t, "Site Owner", config.AdminName)
	assert.Equal(t, "smtp.example.com", config.MailHost)
	assert.Equal(t, 587, config.MailPort)
	assert.Equal(t, "testuser@example.com", config.MailUser)
	assert.Equal(t, "testpassword", config.MailPassword)
	assert.Equal(t, "sender@example.com", config.MailSender)
	assert.Equal(t, "owner@example.com", config.OwnerEmail)
	assert.Equal(t, "rabbitmq.example.com", config.MQHost)
	assert.Equal(t, "5672", config.MQPort)
	assert.Equal(t, "testuser", config.MQUser)
	assert.Equal(t, "testpassword", config.MQPassword)
	assert.True(t, config.RateLimitEnabled)
	assert.Equal(t, 2.0, config.RateLimitRPS)
	assert.Equal(t, 4, config.RateLimitBurst)
}
