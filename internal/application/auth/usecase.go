package auth

import (
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase autenticación: login por número de empleado o email. El registro y
// la administración de usuarios quedan fuera del núcleo; solo se necesita la
// identidad del operador y su capacidad de administrador.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica credenciales, genera JWT con la identidad del operador
// (incluida la capacidad de administrador) y retorna token + usuario.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByLogin(in.Login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.EmployeeID, user.Name, user.IsAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.OperatorResponse{
			ID:         user.ID,
			EmployeeID: user.EmployeeID,
			Name:       user.Name,
			GroupName:  user.GroupName,
			IsAdmin:    user.IsAdmin,
		},
	}, nil
}

// VerifyPassword reconfirma la contraseña del propio operador; las operaciones
// destructivas (anular, eliminar artículo) la exigen además del rol.
func (uc *UseCase) VerifyPassword(operator entity.Operator, password string) error {
	user, err := uc.userRepo.GetByID(operator.ID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.ErrForbidden
	}
	return nil
}
