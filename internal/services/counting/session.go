package counting

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agrocampo/contagemgo/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoginResult is what the counting UI needs after a login
type LoginResult struct {
	UserID    string `json:"usuario_id"`
	SessionID string `json:"sessao_id"`
	Resumed   bool   `json:"retomada"`
}

// normalizeLoginName trims the login name and rejects blank input. Counters
// identify themselves by name only, so this is the whole of login validation.
func normalizeLoginName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	return name, nil
}

// gateAction is what a login has to do given what the store already holds
type gateAction int

const (
	gateResume gateAction = iota
	gateNewSession
	gateNewUserAndSession
)

// decideGate implements the login gate: a known user with an active session
// resumes it, a known user without one gets a fresh session, an unknown name
// gets user and session created together. A user never ends up with two
// active sessions through this path.
func decideGate(userFound, hasActiveSession bool) gateAction {
	switch {
	case userFound && hasActiveSession:
		return gateResume
	case userFound:
		return gateNewSession
	default:
		return gateNewUserAndSession
	}
}

// StartSession resolves a login: an existing active session for the named
// user is resumed, otherwise the user is upserted and a fresh active session
// is created. Both creation steps run in one transaction so a failure never
// leaves a user without a session or vice versa.
func (s *Service) StartSession(name string) (*LoginResult, error) {
	name, err := normalizeLoginName(name)
	if err != nil {
		return nil, err
	}

	var result LoginResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		userFound := true
		if err := tx.Where("nome = ?", name).First(&user).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			userFound = false
		}

		var active models.CountingSession
		hasActive := false
		if userFound {
			err := tx.Where("usuario_id = ? AND status = ?", user.ID, models.SessionActive).
				Order("data_inicio DESC").
				First(&active).Error
			if err == nil {
				hasActive = true
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		switch decideGate(userFound, hasActive) {
		case gateResume:
			result = LoginResult{UserID: user.ID, SessionID: active.ID, Resumed: true}
			return nil
		case gateNewUserAndSession:
			user = models.User{Name: name}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "nome"}},
				DoNothing: true,
			}).Create(&user).Error; err != nil {
				return err
			}
			// DoNothing leaves the ID empty when the row already existed
			if user.ID == "" {
				if err := tx.Where("nome = ?", name).First(&user).Error; err != nil {
					return err
				}
			}
		}

		session := models.CountingSession{
			ID:     uuid.NewString(),
			UserID: user.ID,
			Status: models.SessionActive,
		}
		if err := tx.Create(&session).Error; err != nil {
			return fmt.Errorf("falha ao criar sessão: %w", err)
		}

		result = LoginResult{UserID: user.ID, SessionID: session.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// FinishSession marks an active session as completed and stamps its end time
func (s *Service) FinishSession(sessionID string) (*models.CountingSession, error) {
	now := time.Now().UTC()
	result := s.db.Model(&models.CountingSession{}).
		Where("id = ? AND status = ?", sessionID, models.SessionActive).
		Updates(map[string]interface{}{
			"status":   models.SessionCompleted,
			"data_fim": now,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var session models.CountingSession
	if err := s.db.Preload("User").First(&session, "id = ?", sessionID).Error; err != nil {
		return nil, err
	}
	return &session, nil
}
