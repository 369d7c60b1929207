package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DatabaseURL   string
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	WorkerCount   int
	LogLevel      string

	RosterPath      string
	SpeciesDir      string
	SpeciesPattern  string
	MastersheetPath string
	CalcSetsPath    string
	SpeciesCSVPath  string

	// FlushTrailingTrainer files the trainer still open at end of roster.
	FlushTrailingTrainer bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		DatabaseURL:   getEnv("DATABASE_URL", "postgres://localhost:5432/dexsheet?sslmode=disable"),
		Neo4jURI:      getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:     getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword: getEnv("NEO4J_PASSWORD", "password"),
		WorkerCount:   getEnvInt("WORKER_COUNT", 8),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		RosterPath:      getEnv("ROSTER_PATH", "src/data/trainers.party"),
		SpeciesDir:      getEnv("SPECIES_DIR", "src/data/pokemon/species_info"),
		SpeciesPattern:  getEnv("SPECIES_PATTERN", "gen_*_families.h"),
		MastersheetPath: getEnv("MASTERSHEET_PATH", "mastersheet.md"),
		CalcSetsPath:    getEnv("CALC_SETS_PATH", "gen9.js"),
		SpeciesCSVPath:  getEnv("SPECIES_CSV_PATH", "pokemon_data_all_gens.csv"),

		FlushTrailingTrainer: getEnvBool("FLUSH_TRAILING_TRAINER", true),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Invalid integer, using default")
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Invalid boolean, using default")
		return fallback
	}
	return b
}
