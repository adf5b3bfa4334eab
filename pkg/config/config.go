package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL                  string
	Port                         string
	IsProduction                 bool
	JWTSecret                    string
	TemplatesPath                string // journal template config file
	CorpusAccountID              string // corpus retention account in the chart of accounts
	FallbackCharityBeneficiaryID string // receives the pool when no heirs are eligible
	IBANPrefix                   string
	IBANLength                   int
	RateLimit                    string // ulule/limiter format, e.g. "60-M"
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	dbURL := os.Getenv("PGSQL_URL")
	if dbURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", port)
	}

	isProdStr := os.Getenv("IS_PRODUCTION")
	isProd, err := strconv.ParseBool(isProdStr)
	if err != nil {
		isProd = false
		if isProdStr != "" {
			log.Printf("Warning: Invalid value for IS_PRODUCTION ('%s'). Defaulting to false.\n", isProdStr)
		}
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Println("Warning: JWT_SECRET environment variable not set.")
	}

	templatesPath := os.Getenv("JOURNAL_TEMPLATES_PATH")
	if templatesPath == "" {
		templatesPath = "configs/journal_templates.yaml"
	}

	ibanPrefix := os.Getenv("IBAN_PREFIX")
	if ibanPrefix == "" {
		ibanPrefix = "SA"
	}

	ibanLength := 24 // Saudi IBAN
	if s := os.Getenv("IBAN_LENGTH"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= len(ibanPrefix) {
			log.Printf("Warning: Invalid value for IBAN_LENGTH ('%s'). Defaulting to %d.\n", s, ibanLength)
		} else {
			ibanLength = n
		}
	}

	rateLimit := os.Getenv("RATE_LIMIT")
	if rateLimit == "" {
		rateLimit = "120-M"
	}

	// Matches the corpus account seeded by the initial migration.
	corpusAccountID := os.Getenv("CORPUS_ACCOUNT_ID")
	if corpusAccountID == "" {
		corpusAccountID = "3000"
	}

	return &Config{
		DatabaseURL:                  dbURL,
		Port:                         port,
		IsProduction:                 isProd,
		JWTSecret:                    jwtSecret,
		TemplatesPath:                templatesPath,
		CorpusAccountID:              corpusAccountID,
		FallbackCharityBeneficiaryID: os.Getenv("FALLBACK_CHARITY_BENEFICIARY_ID"),
		IBANPrefix:                   ibanPrefix,
		IBANLength:                   ibanLength,
		RateLimit:                    rateLimit,
	}, nil
}
