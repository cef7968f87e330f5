package contextkeys

// Custom key type to avoid collisions with other context values.
type contextKey string

// DBContextKey is the key under which the request-scoped *gorm.DB
// (connection pool or transaction) is stored.
const DBContextKey = contextKey("db")
