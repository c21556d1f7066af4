package repo

import (
	"context"
	"testing"

	"github.com/solrobto/reclamation-mytsinjo/internal/domain"
)

func TestListHistory_NewestFirst(t *testing.T) {
	db := newTestDB(t, &domain.Reclamation{}, &domain.StatusHistory{})
	ctx := context.Background()
	r := seed(t, db, nil)

	pending := domain.StatusPending
	rows := []domain.StatusHistory{
		{ReclamationID: r.ID, NouveauStatut: domain.StatusPending, Observation: "Creation", CreatedAt: at(9, 0)},
		{ReclamationID: r.ID, AncienStatut: &pending, NouveauStatut: domain.StatusInProgress, CreatedAt: at(10, 0)},
	}
	for i := range rows {
		if err := InsertHistory(ctx, db, &rows[i]); err != nil {
			t.Fatalf("InsertHistory: %v", err)
		}
	}

	got, err := ListHistory(ctx, db, r.ID)
	if err != nil {
		t.Fatalf("ListHistory: %v", err)
	}
	if len(got) != 2 || got[0].NouveauStatut != domain.StatusInProgress || got[1].AncienStatut != nil {
		t.Fatalf("unexpected history: %+v", got)
	}
}

func TestListUpdatesSince_OwnerAndStrictlyAfter(t *testing.T) {
	db := newTestDB(t, &domain.Reclamation{}, &domain.StatusHistory{})
	ctx := context.Background()
	mine := seed(t, db, nil)
	theirs := seed(t, db, func(r *domain.Reclamation) { r.UserID = 99 })

	for _, h := range []domain.StatusHistory{
		{ReclamationID: mine.ID, NouveauStatut: domain.StatusPending, CreatedAt: at(9, 0)},
		{ReclamationID: mine.ID, NouveauStatut: domain.StatusInProgress, CreatedAt: at(10, 0)},
		{ReclamationID: mine.ID, NouveauStatut: domain.StatusResolved, CreatedAt: at(11, 0)},
		{ReclamationID: theirs.ID, NouveauStatut: domain.StatusResolved, CreatedAt: at(11, 0)},
	} {
		h := h
		if err := InsertHistory(ctx, db, &h); err != nil {
			t.Fatalf("InsertHistory: %v", err)
		}
	}

	got, err := ListUpdatesSince(ctx, db, mine.UserID, at(10, 0))
	if err != nil {
		t.Fatalf("ListUpdatesSince: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 update, got %+v", got)
	}
	if got[0].NouveauStatut != domain.StatusResolved || got[0].NumeroDossier != mine.NumeroDossier {
		t.Fatalf("unexpected update: %+v", got[0])
	}
}

func TestReminderLogs_AppendAndList(t *testing.T) {
	db := newTestDB(t, &domain.ReminderLog{})
	ctx := context.Background()
	uid := uint(7)

	if err := InsertReminderLog(ctx, db, &domain.ReminderLog{ReclamationID: 1, Kind: domain.ReminderManual, UserID: &uid, SentAt: at(10, 0), Details: map[string]any{"dossier": "REC-20240101-00001"}}); err != nil {
		t.Fatalf("insert manual: %v", err)
	}
	if err := InsertReminderLog(ctx, db, &domain.ReminderLog{ReclamationID: 1, Kind: domain.ReminderAuto, SentAt: at(11, 0)}); err != nil {
		t.Fatalf("insert auto: %v", err)
	}

	got, err := ListReminderLogs(ctx, db, 1)
	if err != nil {
		t.Fatalf("ListReminderLogs: %v", err)
	}
	if len(got) != 2 || got[0].Kind != domain.ReminderManual || got[1].Kind != domain.ReminderAuto || got[1].UserID != nil {
		t.Fatalf("unexpected logs: %+v", got)
	}
	if got[0].Details["dossier"] != "REC-20240101-00001" {
		t.Fatalf("details not persisted: %+v", got[0].Details)
	}
}

func TestGetUser(t *testing.T) {
	db := newTestDB(t, &domain.User{})
	ctx := context.Background()
	if err := db.Create(&domain.User{ID: 3, Username: "sup", Prenom: "Hery", Nom: "Rasoa", Role: "supervisor", Active: true}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	u, err := GetUser(ctx, db, 3)
	if err != nil || u.DisplayName() != "Hery Rasoa" {
		t.Fatalf("GetUser: %+v %v", u, err)
	}
	if _, err := GetUser(ctx, db, 4); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetReclamationType(t *testing.T) {
	db := newTestDB(t, &domain.ReclamationType{})
	ctx := context.Background()
	if err := db.Create(&domain.ReclamationType{ID: 3, Code: "AUTRE", Libelle: "Autre", Actif: true}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	rt, err := GetReclamationType(ctx, db, 3)
	if err != nil || rt.Code != "AUTRE" || !rt.Actif {
		t.Fatalf("GetReclamationType: %+v %v", rt, err)
	}
	if _, err := GetReclamationType(ctx, db, 4); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
