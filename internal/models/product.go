package models

import (
	"time"

	"gorm.io/datatypes"
)

// Product is one catalog entry ("produtos" in the legacy store).
// Column names mirror the legacy schema so existing exports stay compatible.
type Product struct {
	ID          int64          `gorm:"primaryKey" json:"id"`
	Code        string         `gorm:"column:codigo;uniqueIndex;not null" json:"codigo"`
	Description string         `gorm:"column:descricao;not null" json:"descricao"`
	Barcode     *string        `gorm:"column:codigo_barras;uniqueIndex" json:"codigo_barras,omitempty"`
	Category    string         `gorm:"column:categoria" json:"categoria"`
	Unit        string         `gorm:"column:unidade_padrao;default:'UN'" json:"unidade_padrao"`
	Active      bool           `gorm:"column:ativo;default:true" json:"ativo"`
	RawData     datatypes.JSON `gorm:"type:jsonb" json:"-"` // original import row, kept for audit

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "produtos"
}
