package entity

// Roles de la aplicación.
const (
	RoleAdmin  = "admin"  // todo, incluido registrar movimientos
	RoleStaff  = "staff"  // consulta y registro de movimientos
	RoleViewer = "viewer" // sólo consulta
)

// User usuario configurado (no hay tabla de usuarios; se leen de AUTH_USERS).
type User struct {
	Username     string
	PasswordHash string // bcrypt
	Role         string
}
