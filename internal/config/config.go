package config

import (
	"encoding/json"
	"flag"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port     string `json:"port"`
	VocabDir string `json:"vocabDir"`
	DBURL    string `json:"dbUrl"`

	// Внешний генератор (Gemini); пустой ключ = детерминированный режим
	GeminiAPIKey  string  `json:"geminiApiKey"`
	GeminiModel   string  `json:"geminiModel"`
	GeminiBaseURL string  `json:"geminiBaseUrl"` // опционально (прокси/тесты)
	GenTimeoutSec int     `json:"genTimeoutSec"`
	GenRPS        float64 `json:"genRps"`

	DefaultTemperature float64 `json:"defaultTemperature"`
}

func def() Config {
	return Config{
		Port:     "8080",
		VocabDir: "reference/vocab",
		DBURL:    "",

		GeminiAPIKey:  "",
		GeminiModel:   "gemini-2.0-flash",
		GeminiBaseURL: "",
		GenTimeoutSec: 20,
		GenRPS:        1,

		DefaultTemperature: 0.2,
	}
}

func loadJSON(path string) (Config, error) {
	c := def()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return c, nil
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getenvFloat(k string, fallback float64) float64 {
	if v, ok := os.LookupEnv(k); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return fallback
}

func getenvInt(k string, fallback int) int {
	if v, ok := os.LookupEnv(k); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

// LoadWithPath читает JSON по указанному пути, потом применяет ENV и флаги.
func LoadWithPath(jsonPath string) Config {
	cfg := def()

	// JSON (если файл существует)
	if st, err := os.Stat(jsonPath); err == nil && !st.IsDir() {
		if c2, err := loadJSON(jsonPath); err == nil {
			cfg = c2
		}
	}

	// ENV overrides
	cfg.Port = getenv("SHEMA_PORT", cfg.Port)
	cfg.VocabDir = getenv("SHEMA_VOCAB_DIR", cfg.VocabDir)
	cfg.DBURL = getenv("SHEMA_DB_URL", cfg.DBURL)

	cfg.GeminiAPIKey = getenv("SHEMA_GEMINI_API_KEY", getenv("GEMINI_API_KEY", cfg.GeminiAPIKey))
	cfg.GeminiModel = getenv("SHEMA_GEMINI_MODEL", cfg.GeminiModel)
	cfg.GeminiBaseURL = getenv("SHEMA_GEMINI_BASE_URL", cfg.GeminiBaseURL)
	cfg.GenTimeoutSec = getenvInt("SHEMA_GEN_TIMEOUT_SEC", cfg.GenTimeoutSec)
	cfg.GenRPS = getenvFloat("SHEMA_GEN_RPS", cfg.GenRPS)

	cfg.DefaultTemperature = getenvFloat("SHEMA_DEFAULT_TEMPERATURE", cfg.DefaultTemperature)

	// Flags overrides
	configPath := flag.String("config", jsonPath, "Path to config JSON")
	port := flag.String("port", cfg.Port, "HTTP port")
	vocab := flag.String("vocab", cfg.VocabDir, "Path to vocabulary directory")
	db := flag.String("db", cfg.DBURL, "Postgres URL (empty = in-memory only)")
	model := flag.String("gemini-model", cfg.GeminiModel, "Gemini model name")
	baseURL := flag.String("gemini-base-url", cfg.GeminiBaseURL, "Gemini base URL override")
	genTimeout := flag.Int("gen-timeout", cfg.GenTimeoutSec, "Generator call timeout, seconds")
	genRPS := flag.Float64("gen-rps", cfg.GenRPS, "Generator rate limit, calls per second")
	temp := flag.Float64("temperature", cfg.DefaultTemperature, "Default generator temperature [0,1]")

	flag.Parse()

	// Если через флаг передали другой конфиг — перечитаем
	if *configPath != jsonPath {
		return LoadWithPath(*configPath)
	}

	cfg.Port = strings.TrimSpace(*port)
	cfg.VocabDir = strings.TrimSpace(*vocab)
	cfg.DBURL = strings.TrimSpace(*db)
	cfg.GeminiModel = strings.TrimSpace(*model)
	cfg.GeminiBaseURL = strings.TrimSpace(*baseURL)
	cfg.GenTimeoutSec = *genTimeout
	cfg.GenRPS = *genRPS
	cfg.DefaultTemperature = *temp

	return cfg
}
