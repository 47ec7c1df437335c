package models

import "time"

// CountedItem accumulates the quantity counted for one product within one
// session. Quantity never goes negative; additions fold into Quantity and
// bump RecordCount, corrections replace Quantity wholesale.
type CountedItem struct {
	ID            string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	SessionID     string    `gorm:"column:sessao_id;type:uuid;uniqueIndex:idx_sessao_produto;not null" json:"sessao_id"`
	ProductID     int64     `gorm:"column:produto_id;uniqueIndex:idx_sessao_produto;not null" json:"produto_id"`
	Quantity      float64   `gorm:"column:quantidade_total;not null;check:quantidade_total >= 0" json:"quantidade_total"`
	RecordCount   int       `gorm:"column:numero_registros;default:1" json:"numero_registros"`
	LastUpdatedAt time.Time `gorm:"column:ultima_atualizacao;autoUpdateTime" json:"ultima_atualizacao"`
	LastUpdatedBy string    `gorm:"column:atualizado_por;type:uuid" json:"atualizado_por"`

	Session CountingSession `gorm:"foreignKey:SessionID" json:"-"`
	Product Product         `gorm:"foreignKey:ProductID" json:"produto,omitempty"`
	Updater User            `gorm:"foreignKey:LastUpdatedBy" json:"-"`
}

// TableName specifies the table name for CountedItem
func (CountedItem) TableName() string {
	return "itens_contados"
}
