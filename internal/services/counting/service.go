package counting

import (
	"errors"
	"fmt"

	"github.com/agrocampo/contagemgo/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Operation failures the handlers translate into HTTP statuses
var (
	ErrNotFound         = errors.New("registro não encontrado")
	ErrUnauthorized     = errors.New("usuário não autorizado para esta operação")
	ErrNegativeQuantity = errors.New("quantidade deve ser maior ou igual a zero")
	ErrSessionClosed    = errors.New("sessão já foi finalizada")
	ErrNameRequired     = errors.New("nome do usuário é obrigatório")
)

// Service executes counting operations against the store. The legacy system
// delegated these to server-side stored procedures; here each one is a single
// transaction preserving the same contract: atomic accumulate, wholesale
// overwrite, authorized delete.
type Service struct {
	db *gorm.DB
}

// NewService creates a counting service on top of the given database handle
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// AddQuantity accumulates amount onto the (session, product) counted item,
// creating it on first use. The increment happens in one upsert statement so
// concurrent additions to the same pair never lose updates.
func (s *Service) AddQuantity(sessionID string, productID int64, amount float64, actingUserID string) (*models.CountedItem, error) {
	if amount < 0 {
		return nil, ErrNegativeQuantity
	}

	var item models.CountedItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureActiveSession(tx, sessionID); err != nil {
			return err
		}

		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("produto %d: %w", productID, ErrNotFound)
			}
			return err
		}

		item = models.CountedItem{
			SessionID:     sessionID,
			ProductID:     productID,
			Quantity:      amount,
			RecordCount:   1,
			LastUpdatedBy: actingUserID,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "sessao_id"}, {Name: "produto_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantidade_total":   gorm.Expr("itens_contados.quantidade_total + EXCLUDED.quantidade_total"),
				"numero_registros":   gorm.Expr("itens_contados.numero_registros + 1"),
				"ultima_atualizacao": gorm.Expr("now()"),
				"atualizado_por":     actingUserID,
			}),
		}).Create(&item).Error
		if err != nil {
			return err
		}

		// Re-read: on conflict the struct does not carry the merged row
		if err := tx.Where("sessao_id = ? AND produto_id = ?", sessionID, productID).First(&item).Error; err != nil {
			return err
		}

		if err := appendHistory(tx, item.ID, sessionID, actingUserID, models.OpAdd, amount); err != nil {
			return err
		}
		return refreshSessionTotals(tx, sessionID)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CorrectQuantity replaces the stored quantity wholesale. Last write wins;
// the record count is not touched additively.
func (s *Service) CorrectQuantity(itemID string, newAmount float64, actingUserID string) (*models.CountedItem, error) {
	if newAmount < 0 {
		return nil, ErrNegativeQuantity
	}

	var item models.CountedItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Session").First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := sessionWritable(item.Session.Status); err != nil {
			return err
		}

		delta := newAmount - item.Quantity
		result := tx.Model(&item).Updates(map[string]interface{}{
			"quantidade_total": newAmount,
			"atualizado_por":   actingUserID,
		})
		if result.Error != nil {
			return result.Error
		}

		if err := appendHistory(tx, item.ID, item.SessionID, actingUserID, models.OpCorrect, delta); err != nil {
			return err
		}
		if err := refreshSessionTotals(tx, item.SessionID); err != nil {
			return err
		}
		return tx.First(&item, "id = ?", itemID).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes a counted item. Only the owner of the session the item
// belongs to may remove it.
func (s *Service) RemoveItem(itemID string, actingUserID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var item models.CountedItem
		if err := tx.Preload("Session").First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := sessionWritable(item.Session.Status); err != nil {
			return err
		}
		if item.Session.UserID != actingUserID {
			return ErrUnauthorized
		}

		if err := appendHistory(tx, item.ID, item.SessionID, actingUserID, models.OpRemove, -item.Quantity); err != nil {
			return err
		}
		if err := tx.Delete(&models.CountedItem{}, "id = ?", itemID).Error; err != nil {
			return err
		}
		return refreshSessionTotals(tx, item.SessionID)
	})
}

// sessionWritable rejects mutations against a session that is no longer
// ativa. All three counting operations share this guard.
func sessionWritable(status string) error {
	if status != models.SessionActive {
		return ErrSessionClosed
	}
	return nil
}

// ensureActiveSession rejects writes against missing or finished sessions
func ensureActiveSession(tx *gorm.DB, sessionID string) error {
	var session models.CountingSession
	if err := tx.First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("sessão %s: %w", sessionID, ErrNotFound)
		}
		return err
	}
	return sessionWritable(session.Status)
}

// refreshSessionTotals recomputes the session counters from its items inside
// the same transaction as the mutation they reflect
func refreshSessionTotals(tx *gorm.DB, sessionID string) error {
	return tx.Exec(`
		UPDATE sessoes_contagem SET
			total_itens_contados = (SELECT count(*) FROM itens_contados WHERE sessao_id = ?),
			total_unidades_contadas = (SELECT coalesce(sum(quantidade_total), 0) FROM itens_contados WHERE sessao_id = ?)
		WHERE id = ?`, sessionID, sessionID, sessionID).Error
}

func appendHistory(tx *gorm.DB, itemID, sessionID, userID, operation string, delta float64) error {
	return tx.Create(&models.CountHistory{
		ID:            uuid.NewString(),
		ItemID:        itemID,
		SessionID:     sessionID,
		UserID:        userID,
		Operation:     operation,
		QuantityDelta: delta,
	}).Error
}
