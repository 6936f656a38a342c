package globals

import "os"

var JwtSecret = resolveJwtSecret()

// Init re-resolves environment-backed settings. Package init runs before main
// loads the .env file, so main must call this after godotenv.
func Init() {
	JwtSecret = resolveJwtSecret()
}

func resolveJwtSecret() []byte {
	return []byte(envOr("JWT_SECRET_KEY", "your-super-secret-jwt-key-change-this-in-production"))
}

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
