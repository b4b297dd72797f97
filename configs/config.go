package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI   string
	DBName     string
	DBNameTest string
	JWTSecret  string
	Port       int
	UploadDir  string
	RedisHost  string
	RedisPort  int
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8000
	}

	redisPort, err := strconv.Atoi(os.Getenv("REDIS_PORT"))
	if err != nil {
		redisPort = 6379
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "neighbouraid"
	}

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		secret = "secret"
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	return Config{
		MongoURI:   mongoURI,
		DBName:     dbName,
		DBNameTest: os.Getenv("DB_NAME_TEST"),
		JWTSecret:  secret,
		Port:       port,
		UploadDir:  uploadDir,
		RedisHost:  os.Getenv("REDIS_HOST"),
		RedisPort:  redisPort,
	}
}
