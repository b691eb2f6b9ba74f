package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Convenios-api/internal/application/dto"
	"github.com/jhoicas/Convenios-api/internal/domain"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/repository"
	"github.com/jhoicas/Convenios-api/pkg/jwt"
	"github.com/jhoicas/Convenios-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y logout con sesión de servidor.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	auditRepo repository.AuditRepository
	sessions  SessionStore
	jwtCfg    JWTConfig
	log       *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
	sessions SessionStore,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, auditRepo: auditRepo, sessions: sessions, jwtCfg: jwtCfg, log: log.Component("auth")}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste. domain.ErrDuplicate si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("email", "email inválido")
	}
	if len(in.Password) < 8 {
		return nil, domain.NewValidationError("password", "la contraseña debe tener al menos 8 caracteres")
	}
	role := in.Role
	if role == "" {
		role = entity.RoleConsulta
	}
	if !entity.IsValidRole(role) {
		return nil, domain.NewValidationError("role", "rol %q inválido", role)
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		DepartmentID: in.DepartmentID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, crea la sesión y genera el JWT que la referencia.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	sess := Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, sess.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.sessions.Save(sess)
	uc.audit(ctx, user.ID, entity.AuditLogin, sess.ID, now)

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
		User:      *toUserResponse(user),
	}, nil
}

// Logout elimina la sesión; los tokens que la referencian dejan de ser válidos.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	sess, ok := uc.sessions.Get(sessionID)
	if !ok {
		return domain.ErrSessionEnded
	}
	uc.sessions.Delete(sessionID)
	uc.audit(ctx, sess.UserID, entity.AuditLogout, sessionID, time.Now())
	return nil
}

// Authenticate valida el token y que su sesión siga viva.
func (uc *AuthUseCase) Authenticate(token string) (Session, error) {
	id, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	sess, ok := uc.sessions.Get(id.SessionID)
	if !ok || sess.UserID != id.UserID {
		return Session{}, domain.ErrSessionEnded
	}
	return sess, nil
}

// audit registra el evento sin bloquear el flujo de auth si la bitácora falla.
func (uc *AuthUseCase) audit(ctx context.Context, userID, action, sessionID string, at time.Time) {
	if uc.auditRepo == nil {
		return
	}
	err := uc.auditRepo.Create(ctx, &entity.AuditLog{
		ID:         uuid.New().String(),
		UserID:     userID,
		Action:     action,
		EntityType: "session",
		EntityID:   sessionID,
		CreatedAt:  at,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		uc.log.Warn().Err(err).Str("action", action).Msg("no se pudo registrar en bitácora")
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		DepartmentID: u.DepartmentID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
	}
}
