package contextkeys

type contextKey string

const (
	PersonaIDKey contextKey = "PersonaID"
	RolKey       contextKey = "Rol"
	RequestIDKey contextKey = "RequestID"
)
