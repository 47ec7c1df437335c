package models

import "time"

// Counting operations recorded in the audit trail
const (
	OpAdd     = "adicionar"
	OpCorrect = "corrigir"
	OpRemove  = "remover"
)

// CountHistory is one audit row per counting operation
type CountHistory struct {
	ID            string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ItemID        string    `gorm:"column:item_contado_id;type:uuid;index" json:"item_contado_id"`
	SessionID     string    `gorm:"column:sessao_id;type:uuid;index" json:"sessao_id"`
	UserID        string    `gorm:"column:usuario_id;type:uuid" json:"usuario_id"`
	Operation     string    `gorm:"column:operacao;not null" json:"operacao"`
	QuantityDelta float64   `gorm:"column:quantidade_adicionada" json:"quantidade_adicionada"`
	Timestamp     time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

// TableName specifies the table name for CountHistory
func (CountHistory) TableName() string {
	return "historico_contagem"
}
