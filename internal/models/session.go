package models

import "time"

// Session status values
const (
	SessionActive    = "ativa"
	SessionCompleted = "concluida"
)

// CountingSession is one user's counting pass.
// EndedAt is set if and only if Status is concluida; a user has at most
// one ativa session at a time (enforced by the login gate, not the schema).
type CountingSession struct {
	ID                string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID            string     `gorm:"column:usuario_id;type:uuid;index;not null" json:"usuario_id"`
	Status            string     `gorm:"default:'ativa';index" json:"status"`
	StartedAt         time.Time  `gorm:"column:data_inicio;autoCreateTime" json:"data_inicio"`
	EndedAt           *time.Time `gorm:"column:data_fim" json:"data_fim,omitempty"`
	TotalItemsCounted int        `gorm:"column:total_itens_contados;default:0" json:"total_itens_contados"`
	TotalUnitsCounted float64    `gorm:"column:total_unidades_contadas;default:0" json:"total_unidades_contadas"`

	User User `gorm:"foreignKey:UserID" json:"usuario,omitempty"`
}

// TableName specifies the table name for CountingSession
func (CountingSession) TableName() string {
	return "sessoes_contagem"
}
