package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config reúne as configurações do serviço, carregadas do ambiente.
type Config struct {
	Port         string
	DatabaseURL  string
	OllamaURL    string
	OllamaModel  string
	EmailLogPath string
}

// Load carrega as variáveis de ambiente (incluindo um arquivo .env, se existir)
// e aplica os valores padrão.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Nenhum arquivo .env encontrado, usando apenas o ambiente.")
	}

	return Config{
		Port:         getEnv("PORT", "8080"),
		DatabaseURL:  getEnv("DATABASE_URL", "host=localhost port=5432 user=recupera password=recupera dbname=recupera sslmode=disable"),
		OllamaURL:    getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:  getEnv("OLLAMA_MODEL", "llama3"),
		EmailLogPath: getEnv("EMAIL_LOG", "emails.json"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
