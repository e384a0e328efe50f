package user

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("usuário ou senha inválidos")
	ErrMissingPassword    = errors.New("senha do operador não configurada")
)

// Role representa o papel/função do usuário
type Role string

const (
	RoleAdmin Role = "admin" // Dono da loja, único operador
)

// User é o operador da loja. O sistema tem uma única credencial configurada.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Password string `json:"-"` // hash bcrypt, nunca retornado nas respostas JSON
}

// SetPassword configura a senha do usuário com hash
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Operator guarda a credencial única do sistema
type Operator struct {
	user User
}

// NewOperator monta o operador a partir do hash bcrypt ou, na falta dele, da senha em texto
func NewOperator(username, password, passwordHash string) (*Operator, error) {
	u := User{
		ID:       username,
		Username: username,
		Name:     username,
		Role:     RoleAdmin,
	}
	switch {
	case passwordHash != "":
		u.Password = passwordHash
	case password != "":
		if err := u.SetPassword(password); err != nil {
			return nil, err
		}
	default:
		return nil, ErrMissingPassword
	}
	return &Operator{user: u}, nil
}

// Authenticate confere usuário e senha
func (o *Operator) Authenticate(username, password string) (*User, error) {
	if username != o.user.Username || !o.user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	u := o.user
	return &u, nil
}

// Find retorna o operador pelo ID
func (o *Operator) Find(id string) (*User, bool) {
	if id != o.user.ID {
		return nil, false
	}
	u := o.user
	return &u, true
}
