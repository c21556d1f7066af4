// Package domain defines the persistence models for reclamations, their
// status history, reminder audit rows, and the read-only user and
// reclamation type projections.
// These types are mapped with GORM and form the core data layer of the
// application.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Status is the workflow state of a reclamation.
type Status string

const (
	StatusPending    Status = "EN_ATTENTE"
	StatusInProgress Status = "EN_COURS"
	StatusResolved   Status = "TRAITEE"
	StatusRejected   Status = "REJETEE"

	// Pseudo-statuses recorded in history for archive bookkeeping only.
	// They are never stored in Reclamation.Statut.
	StatusArchived Status = "ARCHIVEE"
	StatusRestored Status = "RESTAUREE"
)

// Statuses lists the values a reclamation may hold.
var Statuses = []Status{StatusPending, StatusInProgress, StatusResolved, StatusRejected}

// Valid reports whether s is one of the four workflow statuses.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Reclamation is an account-correction request raised by a front-office
// agent and routed to supervisors for resolution.
//
// Fields:
//   - ID: store-assigned primary key.
//   - NumeroDossier: REC-YYYYMMDD-NNNNN, assigned once at creation.
//   - UserID / BureauID / TypeID: foreign identities, not owned.
//   - Statut: current workflow status.
//   - Archived: soft-archive flag, only settable while TRAITEE.
//   - Reminder*: nullable reminder bookkeeping, meaningful only while the
//     reclamation is not TRAITEE.
//
// CreatedAt and UpdatedAt are written explicitly from the injected clock;
// GORM's automatic timestamps are disabled.
type Reclamation struct {
	ID             uint   `json:"id"              gorm:"primaryKey"`
	NumeroDossier  string `json:"numero_dossier"  gorm:"type:varchar(32);index"`
	BureauID       *uint  `json:"bureau_id"       gorm:"index"`
	UserID         uint   `json:"user_id"         gorm:"not null;index"`
	TypeID         uint   `json:"type_id"         gorm:"not null;index"`
	NumeroCompte   string `json:"numero_compte"   gorm:"type:varchar(64);not null"`
	NomClient      string `json:"nom_client"      gorm:"type:varchar(255);not null"`
	AncienneValeur string `json:"ancienne_valeur" gorm:"type:text"`
	NouvelleValeur string `json:"nouvelle_valeur" gorm:"type:text"`
	Motif          string `json:"motif"           gorm:"type:text"`
	Statut         Status `json:"statut"          gorm:"type:varchar(16);not null;default:'EN_ATTENTE';index"`
	Observation    string `json:"observation"     gorm:"type:text"`
	Archived       bool   `json:"archived"        gorm:"not null;default:false;index"`

	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime:false"`
	UpdatedAt *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`

	ReminderRequestedAt   *time.Time `json:"reminder_requested_at"`
	ReminderDisabledUntil *time.Time `json:"reminder_disabled_until"`
	ReminderAutoAt        *time.Time `json:"reminder_auto_at"       gorm:"index"`
	ReminderLastSentAt    *time.Time `json:"reminder_last_sent_at"`
	ReminderAutoSentAt    *time.Time `json:"reminder_auto_sent_at"`
}

// TableName returns the database table name for Reclamation.
func (Reclamation) TableName() string { return "reclamations" }

// StatusHistory is an append-only audit record of a status change,
// including creation (AncienStatut nil) and archive/unarchive.
type StatusHistory struct {
	ID            uint      `json:"id"             gorm:"primaryKey"`
	ReclamationID uint      `json:"reclamation_id" gorm:"not null;index:idx_history_recl,priority:1"`
	AncienStatut  *Status   `json:"ancien_statut"  gorm:"type:varchar(16)"`
	NouveauStatut Status    `json:"nouveau_statut" gorm:"type:varchar(16);not null"`
	Observation   string    `json:"observation"    gorm:"type:text"`
	UserID        uint      `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"     gorm:"autoCreateTime:false;index:idx_history_recl,priority:2"`
}

// TableName returns the database table name for StatusHistory.
func (StatusHistory) TableName() string { return "historique_statut" }

// ReminderKind distinguishes user-requested from scheduler-fired reminders.
type ReminderKind string

const (
	ReminderManual ReminderKind = "MANUAL"
	ReminderAuto   ReminderKind = "AUTO"
)

// ReminderLog records a reminder the system committed to sending. It is
// written in the same transaction as the reminder bookkeeping update.
type ReminderLog struct {
	ID            uint              `json:"id"             gorm:"primaryKey"`
	ReclamationID uint              `json:"reclamation_id" gorm:"not null;index"`
	Kind          ReminderKind      `json:"kind"           gorm:"type:varchar(8);not null"`
	UserID        *uint             `json:"user_id"`
	SentAt        time.Time         `json:"sent_at"        gorm:"not null"`
	Details       datatypes.JSONMap `json:"details"`
}

// TableName returns the database table name for ReminderLog.
func (ReminderLog) TableName() string { return "reminder_logs" }

// User is the subset of the users table this service reads. Accounts are
// managed elsewhere.
type User struct {
	ID       uint   `json:"id"        gorm:"primaryKey"`
	Username string `json:"username"  gorm:"type:varchar(64);uniqueIndex"`
	Prenom   string `json:"prenom"`
	Nom      string `json:"nom"`
	Role     string `json:"role"      gorm:"type:varchar(16)"`
	BureauID *uint  `json:"bureau_id"`
	Active   bool   `json:"active"    gorm:"not null;default:true"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// DisplayName returns "prenom nom" when available, otherwise the username.
func (u User) DisplayName() string {
	switch {
	case u.Prenom != "" && u.Nom != "":
		return u.Prenom + " " + u.Nom
	case u.Prenom != "":
		return u.Prenom
	case u.Nom != "":
		return u.Nom
	}
	return u.Username
}

// ReclamationType is the read-only catalogue of reclamation kinds. The
// code decides type-specific rules such as the AUTRE motif requirement.
type ReclamationType struct {
	ID      uint   `json:"id"      gorm:"primaryKey"`
	Code    string `json:"code"    gorm:"type:varchar(32);uniqueIndex;not null"`
	Libelle string `json:"libelle" gorm:"type:varchar(255)"`
	Actif   bool   `json:"actif"   gorm:"not null;default:true"`
}

// TableName returns the database table name for ReclamationType.
func (ReclamationType) TableName() string { return "types_reclamation" }
