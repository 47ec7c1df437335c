package counting

import (
	"errors"
	"time"

	"github.com/agrocampo/contagemgo/internal/models"
	"github.com/agrocampo/contagemgo/internal/report"
	"gorm.io/gorm"
)

// ItemView is one counted item joined with its product and last updater,
// in the shape the counting UI lists
type ItemView struct {
	ID            string    `gorm:"column:id" json:"id"`
	ProductID     int64     `gorm:"column:produto_id" json:"produto_id"`
	Code          string    `gorm:"column:codigo" json:"codigo"`
	Description   string    `gorm:"column:descricao" json:"descricao"`
	Category      string    `gorm:"column:categoria" json:"categoria"`
	Unit          string    `gorm:"column:unidade_padrao" json:"unidade"`
	Barcode       string    `gorm:"column:codigo_barras" json:"codigo_barras"`
	Quantity      float64   `gorm:"column:quantidade_total" json:"quantidade"`
	RecordCount   int       `gorm:"column:numero_registros" json:"numRegistros"`
	LastUpdatedAt time.Time `gorm:"column:ultima_atualizacao" json:"ultimaAtualizacao"`
	UpdatedBy     string    `gorm:"column:atualizado_por_nome" json:"atualizadoPor"`
}

const itemViewSelect = `
	itens_contados.id,
	itens_contados.produto_id,
	produtos.codigo,
	produtos.descricao,
	produtos.categoria,
	produtos.unidade_padrao,
	coalesce(produtos.codigo_barras, '') AS codigo_barras,
	itens_contados.quantidade_total,
	itens_contados.numero_registros,
	itens_contados.ultima_atualizacao,
	coalesce(usuarios.nome, '') AS atualizado_por_nome`

// SearchProducts finds active products whose code or description contains
// the term, case-insensitively
func (s *Service) SearchProducts(term string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + term + "%"

	var products []models.Product
	err := s.db.
		Where("ativo = ?", true).
		Where("codigo ILIKE ? OR descricao ILIKE ?", pattern, pattern).
		Limit(limit).
		Find(&products).Error
	return products, err
}

// LookupItem fetches one counted item by id
func (s *Service) LookupItem(itemID string) (*models.CountedItem, error) {
	var item models.CountedItem
	if err := s.db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// LookupProduct fetches one product by id
func (s *Service) LookupProduct(productID int64) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// LookupBarcode finds the product a scanned code refers to, matching the
// barcode first and the internal code as fallback. ErrNotFound is the
// distinguished "offer to link this code" state, not a failure.
func (s *Service) LookupBarcode(code string) (*models.Product, error) {
	var product models.Product
	err := s.db.
		Where("ativo = ?", true).
		Where("codigo_barras = ? OR codigo = ?", code, code).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// LinkBarcode associates a scanned-but-unknown barcode with an existing
// product record
func (s *Service) LinkBarcode(productID int64, barcode string) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	product.Barcode = &barcode
	if err := s.db.Model(&product).Update("codigo_barras", barcode).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// SessionItems lists the counted items of one session, newest update first
func (s *Service) SessionItems(sessionID string) ([]ItemView, error) {
	items := []ItemView{}
	err := s.db.Table("itens_contados").
		Select(itemViewSelect).
		Joins("JOIN produtos ON produtos.id = itens_contados.produto_id").
		Joins("LEFT JOIN usuarios ON usuarios.id = itens_contados.atualizado_por").
		Where("itens_contados.sessao_id = ?", sessionID).
		Order("itens_contados.ultima_atualizacao DESC").
		Scan(&items).Error
	return items, err
}

// SessionHistory returns the most recent audit entries of a session
func (s *Service) SessionHistory(sessionID string, limit int) ([]models.CountHistory, error) {
	if limit <= 0 {
		limit = 100
	}
	history := []models.CountHistory{}
	err := s.db.
		Where("sessao_id = ?", sessionID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&history).Error
	return history, err
}

// SessionFilter narrows dashboard session listings
type SessionFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
}

// ListSessions returns sessions with their users, newest first
func (s *Service) ListSessions(filter SessionFilter) ([]models.CountingSession, error) {
	query := s.db.Preload("User").Order("data_inicio DESC")
	if filter.Status != "" && filter.Status != "todas" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		query = query.Where("data_inicio >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("data_inicio <= ?", *filter.To)
	}

	sessions := []models.CountingSession{}
	err := query.Find(&sessions).Error
	return sessions, err
}

// ActiveSessions returns the sessions currently being counted, for the
// dashboard telemetry panel
func (s *Service) ActiveSessions() ([]models.CountingSession, error) {
	return s.ListSessions(SessionFilter{Status: models.SessionActive})
}

// SessionDetail returns one session with its user and item list
func (s *Service) SessionDetail(sessionID string) (*models.CountingSession, []ItemView, error) {
	var session models.CountingSession
	if err := s.db.Preload("User").First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	items, err := s.SessionItems(sessionID)
	if err != nil {
		return nil, nil, err
	}
	return &session, items, nil
}

// SessionReportRows fetches one session's items as aggregator input rows
func (s *Service) SessionReportRows(sessionID string) ([]report.ItemRow, error) {
	return s.itemRows(s.db.Where("itens_contados.sessao_id = ?", sessionID))
}

// AllItemRows fetches every counted item within the date window (bounds on
// session start), joined with the owning session's user name. This is the
// input of the consolidated report.
func (s *Service) AllItemRows(from, to *time.Time) ([]report.ItemRow, error) {
	query := s.db
	if from != nil {
		query = query.Where("sessoes_contagem.data_inicio >= ?", *from)
	}
	if to != nil {
		query = query.Where("sessoes_contagem.data_inicio <= ?", *to)
	}
	return s.itemRows(query)
}

func (s *Service) itemRows(query *gorm.DB) ([]report.ItemRow, error) {
	rows := []report.ItemRow{}
	err := query.Table("itens_contados").
		Select(`
			produtos.codigo AS code,
			produtos.descricao AS description,
			produtos.categoria AS category,
			produtos.unidade_padrao AS unit,
			coalesce(produtos.codigo_barras, '') AS barcode,
			itens_contados.quantidade_total AS quantity,
			itens_contados.numero_registros AS record_count,
			itens_contados.ultima_atualizacao AS last_updated_at,
			usuarios.nome AS user_name`).
		Joins("JOIN produtos ON produtos.id = itens_contados.produto_id").
		Joins("JOIN sessoes_contagem ON sessoes_contagem.id = itens_contados.sessao_id").
		Joins("JOIN usuarios ON usuarios.id = sessoes_contagem.usuario_id").
		Scan(&rows).Error
	return rows, err
}

// GeneralStats summarizes the whole store for the dashboard header
type GeneralStats struct {
	TotalSessions        int64   `json:"totalSessoes"`
	ActiveSessions       int64   `json:"sessoesAtivas"`
	DistinctItems        int64   `json:"totalItensUnicos"`
	TotalUnits           float64 `json:"totalUnidades"`
	DistinctContributors int64   `json:"totalContadores"`
}

// Stats computes the dashboard summary numbers
func (s *Service) Stats() (*GeneralStats, error) {
	var stats GeneralStats

	if err := s.db.Model(&models.CountingSession{}).Count(&stats.TotalSessions).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.CountingSession{}).
		Where("status = ?", models.SessionActive).
		Count(&stats.ActiveSessions).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.CountedItem{}).Count(&stats.DistinctItems).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.CountedItem{}).
		Select("coalesce(sum(quantidade_total), 0)").
		Scan(&stats.TotalUnits).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.CountingSession{}).
		Distinct("usuario_id").
		Count(&stats.DistinctContributors).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
