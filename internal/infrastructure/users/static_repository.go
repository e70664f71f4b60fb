// Package users usuarios definidos por configuración (AUTH_USERS).
package users

import (
	"fmt"
	"strings"

	"github.com/jhoicas/cmi-stock/internal/domain/entity"
	"github.com/jhoicas/cmi-stock/internal/domain/repository"
)

var _ repository.UserRepository = (*StaticRepo)(nil)

// StaticRepo usuarios en memoria, inmutables tras la construcción.
type StaticRepo struct {
	users map[string]*entity.User
}

// Parse interpreta "usuario:hashbcrypt:rol;usuario2:hash2:rol2". El rol es opcional (viewer).
// Los hashes bcrypt no contienen ':' ni ';'.
func Parse(raw string) (*StaticRepo, error) {
	repo := &StaticRepo{users: map[string]*entity.User{}}
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		bits := strings.Split(part, ":")
		if len(bits) < 2 || len(bits) > 3 || bits[0] == "" || bits[1] == "" {
			return nil, fmt.Errorf("users: entrada inválida %q", part)
		}
		role := entity.RoleViewer
		if len(bits) == 3 && bits[2] != "" {
			role = bits[2]
		}
		switch role {
		case entity.RoleAdmin, entity.RoleStaff, entity.RoleViewer:
		default:
			return nil, fmt.Errorf("users: rol desconocido %q para %s", role, bits[0])
		}
		repo.users[bits[0]] = &entity.User{Username: bits[0], PasswordHash: bits[1], Role: role}
	}
	return repo, nil
}

// FindByUsername devuelve nil, nil si el usuario no existe.
func (r *StaticRepo) FindByUsername(username string) (*entity.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// Len cantidad de usuarios configurados.
func (r *StaticRepo) Len() int { return len(r.users) }
