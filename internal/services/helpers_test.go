package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/solrobto/reclamation-mytsinjo/internal/clock"
	"github.com/solrobto/reclamation-mytsinjo/internal/domain"
	"github.com/solrobto/reclamation-mytsinjo/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", t.Name(), uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	types := []domain.ReclamationType{
		{ID: 1, Code: "SOLDE", Libelle: "Correction de solde", Actif: true},
		{ID: 2, Code: "ADRESSE", Libelle: "Changement d'adresse", Actif: true},
		{ID: 3, Code: TypeCodeOther, Libelle: "Autre", Actif: true},
	}
	if err := db.Create(&types).Error; err != nil {
		t.Fatalf("seed types: %v", err)
	}
	return db
}

func at(h, m int) time.Time { return time.Date(2024, 1, 1, h, m, 0, 0, time.UTC) }

type sentNote struct{ Title, Message string }

type recordingNotifier struct {
	mu    sync.Mutex
	notes []sentNote
	err   error
}

func (n *recordingNotifier) Notify(_ context.Context, title, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, sentNote{title, message})
	return n.err
}

func (n *recordingNotifier) sent() []sentNote {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentNote(nil), n.notes...)
}

type fixture struct {
	db    *gorm.DB
	clk   *clock.Manual
	notes *recordingNotifier
	recl  *ReclamationService
	rem   *ReminderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	clk := clock.NewManual(at(10, 0))
	notes := &recordingNotifier{}
	return &fixture{
		db:    db,
		clk:   clk,
		notes: notes,
		recl:  NewReclamationService(db, GormRepo{}, clk, notes),
		rem:   NewReminderService(db, GormRepo{}, clk, notes),
	}
}

var (
	agent      = Actor{ID: 7, Role: RoleAgent}
	otherAgent = Actor{ID: 8, Role: RoleAgent}
	supervisor = Actor{ID: 2, Role: RoleSupervisor}
)

// create inserts a reclamation owned by agent at the fixture's current time.
func (f *fixture) create(t *testing.T) *domain.Reclamation {
	t.Helper()
	return f.createAs(t, agent)
}

func (f *fixture) createAs(t *testing.T, owner Actor) *domain.Reclamation {
	t.Helper()
	r, err := f.recl.Create(context.Background(), CreateInput{
		TypeID:       1,
		NumeroCompte: "00012345",
		NomClient:    "Rakoto Jean",
	}, owner)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return r
}

func (f *fixture) reload(t *testing.T, id uint) *domain.Reclamation {
	t.Helper()
	r, err := repo.GetReclamation(context.Background(), f.db, id)
	if err != nil {
		t.Fatalf("reload %d: %v", id, err)
	}
	return r
}

func (f *fixture) history(t *testing.T, id uint) []domain.StatusHistory {
	t.Helper()
	h, err := repo.ListHistory(context.Background(), f.db, id)
	if err != nil {
		t.Fatalf("history %d: %v", id, err)
	}
	return h
}

func sameTime(p *time.Time, want time.Time) bool { return p != nil && p.Equal(want) }
