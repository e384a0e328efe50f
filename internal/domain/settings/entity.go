package settings

import (
	"context"
	"errors"
)

var ErrInvalidThreshold = errors.New("limite de alerta não pode ser negativo")

// Settings são as preferências da loja
type Settings struct {
	Theme           string `json:"theme"`           // Tema da interface (light/dark/system)
	LowStockAlert   int    `json:"lowStockAlert"`   // Alerta de estoque baixo (quantidade)
	OldDevicesAlert int    `json:"oldDevicesAlert"` // Dias até um aparelho ser considerado parado
	Currency        string `json:"currency"`        // Moeda
	Language        string `json:"language"`        // Idioma
	Notifications   bool   `json:"notifications"`   // Notificações ativas
	BackupReminders bool   `json:"backupReminders"` // Lembretes de backup
	CompanyName     string `json:"companyName"`     // Nome da empresa
	ContactInfo     string `json:"contactInfo"`     // Contato da empresa
}

// DefaultOldDevicesAlert é o prazo padrão, em dias, do alerta de estoque parado
const DefaultOldDevicesAlert = 30

// Default retorna as preferências de fábrica
func Default() Settings {
	return Settings{
		Theme:           "system",
		LowStockAlert:   5,
		OldDevicesAlert: DefaultOldDevicesAlert,
		Currency:        "BRL",
		Language:        "pt-BR",
		Notifications:   true,
		BackupReminders: true,
		CompanyName:     "",
		ContactInfo:     "",
	}
}

// Validate verifica os limites numéricos
func (s *Settings) Validate() error {
	if s.LowStockAlert < 0 || s.OldDevicesAlert < 0 {
		return ErrInvalidThreshold
	}
	return nil
}

// Patch é uma atualização parcial: campos nil ficam como estão
type Patch struct {
	Theme           *string `json:"theme,omitempty"`
	LowStockAlert   *int    `json:"lowStockAlert,omitempty"`
	OldDevicesAlert *int    `json:"oldDevicesAlert,omitempty"`
	Currency        *string `json:"currency,omitempty"`
	Language        *string `json:"language,omitempty"`
	Notifications   *bool   `json:"notifications,omitempty"`
	BackupReminders *bool   `json:"backupReminders,omitempty"`
	CompanyName     *string `json:"companyName,omitempty"`
	ContactInfo     *string `json:"contactInfo,omitempty"`
}

// Apply devolve uma cópia das preferências com os campos do patch sobrescritos
func (p Patch) Apply(s Settings) Settings {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.LowStockAlert != nil {
		s.LowStockAlert = *p.LowStockAlert
	}
	if p.OldDevicesAlert != nil {
		s.OldDevicesAlert = *p.OldDevicesAlert
	}
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
	if p.Notifications != nil {
		s.Notifications = *p.Notifications
	}
	if p.BackupReminders != nil {
		s.BackupReminders = *p.BackupReminders
	}
	if p.CompanyName != nil {
		s.CompanyName = *p.CompanyName
	}
	if p.ContactInfo != nil {
		s.ContactInfo = *p.ContactInfo
	}
	return s
}

// Repository define a persistência das preferências
type Repository interface {
	// Find retorna as preferências gravadas ou as de fábrica
	Find(ctx context.Context) Settings

	// Save grava as preferências
	Save(ctx context.Context, s Settings)
}
