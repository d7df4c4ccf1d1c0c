package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	WizardModeCreate = "create"
	WizardModeEdit   = "edit"
)

type CLOWizardSessionModel struct {
	CLOWizardSessionID       uuid.UUID `gorm:"column:clo_wizard_session_id;type:uuid;primaryKey" json:"clo_wizard_session_id"`
	CLOWizardSessionOwner    string    `gorm:"column:clo_wizard_session_owner;size:100;not null;index" json:"clo_wizard_session_owner"`
	CLOWizardSessionCourseID string    `gorm:"column:clo_wizard_session_course_id;size:64;not null" json:"clo_wizard_session_course_id"`
	CLOWizardSessionMode     string    `gorm:"column:clo_wizard_session_mode;size:10;not null;default:'create'" json:"clo_wizard_session_mode"`
	CLOWizardSessionTotal    int       `gorm:"column:clo_wizard_session_total;not null" json:"clo_wizard_session_total"`
	CLOWizardSessionStep     int       `gorm:"column:clo_wizard_session_step;not null;default:1" json:"clo_wizard_session_step"`
	CLOWizardSessionDone     bool      `gorm:"column:clo_wizard_session_done;not null;default:false" json:"clo_wizard_session_done"`

	// drafts per step, the wizard's own JSON encoding
	CLOWizardSessionState datatypes.JSON `gorm:"column:clo_wizard_session_state;type:jsonb;not null" json:"clo_wizard_session_state"`

	// backend ids of the CLOs saved so far, indexed by step-1
	CLOWizardSessionSavedIDs pq.StringArray `gorm:"column:clo_wizard_session_saved_ids;type:text[]" json:"clo_wizard_session_saved_ids"`

	CLOWizardSessionExpiresAt time.Time `gorm:"column:clo_wizard_session_expires_at;not null;index" json:"clo_wizard_session_expires_at"`
	CLOWizardSessionCreatedAt time.Time `gorm:"column:clo_wizard_session_created_at;not null;autoCreateTime" json:"clo_wizard_session_created_at"`
	CLOWizardSessionUpdatedAt time.Time `gorm:"column:clo_wizard_session_updated_at;not null;autoUpdateTime" json:"clo_wizard_session_updated_at"`
}

func (CLOWizardSessionModel) TableName() string { return "clo_wizard_sessions" }
