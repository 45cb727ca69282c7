package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The allocation constants are meters; they feed
// the immutable geometry object built at startup, so deterministic tests can
// run alternate geometries without touching the environment.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	DBMaxOpenConns int    // connection pool open limit (0 = driver default)
	DBMaxIdleConns int    // connection pool idle limit (0 = follow open limit)
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing

	MinTruckLength float64 // floor length for trucks without layout sections
	CabinThreshold float64 // section sums below this get the cabin added
	CabinLength    float64 // tractor cabin allowance
	MinSpacing     float64 // gap unit between trucks in a full lane
	EndMargin      float64 // fixed margin per lane end

	LaneLengths map[string]float64 // per-garage lane length overrides
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Allocation constants
// fall back to the reference deployment values when unset.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		DBMaxOpenConns: envInt("DB_MAX_OPEN_CONNS", 0),
		DBMaxIdleConns: envInt("DB_MAX_IDLE_CONNS", 0),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),

		MinTruckLength: envFloat("MIN_TRUCK_LENGTH_M", 4.5),
		CabinThreshold: envFloat("CABIN_THRESHOLD_M", 6.0),
		CabinLength:    envFloat("CABIN_LENGTH_M", 2.0),
		MinSpacing:     envFloat("MIN_SPACING_M", 1.0),
		EndMargin:      envFloat("END_MARGIN_M", 0.2),

		LaneLengths: parseLaneLengths(os.Getenv("GARAGE_LANE_LENGTHS")),
	}
}

// parseLaneLengths reads a "G1=15,G2=18" style override list.  Entries that
// do not parse are skipped; an empty input yields an empty map and the
// built-in geometry defaults apply.
func parseLaneLengths(s string) map[string]float64 {
	out := map[string]float64{}
	for _, part := range strings.Split(s, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 || kv[0] == "" {
			continue
		}
		if v, err := strconv.ParseFloat(kv[1], 64); err == nil && v > 0 {
			out[kv[0]] = v
		}
	}
	return out
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// envFloat reads an optional float variable with a default.
func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("invalid float for %s: %q", key, v)
	}
	return f
}
