package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/solrobto/reclamation-mytsinjo/internal/domain"
	"github.com/solrobto/reclamation-mytsinjo/internal/repo"
)

func TestAvailability(t *testing.T) {
	now := at(10, 0)
	until := func(d time.Duration) *time.Time { v := now.Add(d); return &v }

	cases := []struct {
		name string
		r    domain.Reclamation
		want ReminderAvailability
	}{
		{"fresh", domain.Reclamation{Statut: domain.StatusPending}, ReminderAvailability{Available: true}},
		{"resolved", domain.Reclamation{Statut: domain.StatusResolved}, ReminderAvailability{Resolved: true}},
		{"cooldown over at boundary", domain.Reclamation{Statut: domain.StatusPending, ReminderDisabledUntil: until(0)}, ReminderAvailability{Available: true}},
		{"one second left", domain.Reclamation{Statut: domain.StatusPending, ReminderDisabledUntil: until(time.Second)}, ReminderAvailability{RemainingMinutes: 1}},
		{"rounds up", domain.Reclamation{Statut: domain.StatusInProgress, ReminderDisabledUntil: until(20*time.Minute + time.Second)}, ReminderAvailability{RemainingMinutes: 21}},
		{"exact minutes", domain.Reclamation{Statut: domain.StatusRejected, ReminderDisabledUntil: until(20 * time.Minute)}, ReminderAvailability{RemainingMinutes: 20}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Availability(&tc.r, now); got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestRequestManualReminder_SetsBookkeepingAndNotifies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.create(t)

	got, err := f.rem.RequestManualReminder(ctx, r.ID, agent)
	if err != nil {
		t.Fatalf("RequestManualReminder: %v", err)
	}
	row := f.reload(t, r.ID)
	for name, ok := range map[string]bool{
		"requested_at":   sameTime(row.ReminderRequestedAt, at(10, 0)),
		"disabled_until": sameTime(row.ReminderDisabledUntil, at(10, 30)),
		"auto_at":        sameTime(row.ReminderAutoAt, at(11, 0)),
		"last_sent_at":   sameTime(row.ReminderLastSentAt, at(10, 0)),
		"auto_sent_at":   row.ReminderAutoSentAt == nil,
		"returned row":   sameTime(got.ReminderAutoAt, at(11, 0)),
	} {
		if !ok {
			t.Fatalf("%s not set as expected: %+v", name, row)
		}
	}

	notes := f.notes.sent()
	if len(notes) != 1 || notes[0].Title != "Rappel reclamation" || notes[0].Message != "La reclamation REC-20240101-00001 n'a pas encore ete traitee." {
		t.Fatalf("unexpected notifications: %+v", notes)
	}

	logs, err := f.recl.Reminders(ctx, r.ID)
	if err != nil || len(logs) != 1 || logs[0].Kind != domain.ReminderManual || logs[0].UserID == nil || *logs[0].UserID != agent.ID {
		t.Fatalf("unexpected reminder logs: %+v err=%v", logs, err)
	}
}

func TestRequestManualReminder_ResolvedNeverWritesOrNotifies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.create(t)
	if _, err := f.recl.ApplyStatusTransition(ctx, r.ID, domain.StatusResolved, "", supervisor); err != nil {
		t.Fatalf("transition: %v", err)
	}
	sentBefore := len(f.notes.sent())

	for _, a := range []Actor{agent, supervisor} {
		if _, err := f.rem.RequestManualReminder(ctx, r.ID, a); !errors.Is(err, ErrAlreadyResolved) {
			t.Fatalf("expected ErrAlreadyResolved, got %v", err)
		}
	}
	after := f.reload(t, r.ID)
	if after.ReminderRequestedAt != nil || after.ReminderAutoAt != nil || after.ReminderLastSentAt != nil {
		t.Fatalf("resolved row mutated: %+v", after)
	}
	if len(f.notes.sent()) != sentBefore {
		t.Fatalf("notifier called for resolved reclamation")
	}
	if logs, _ := repo.ListReminderLogs(ctx, f.db, r.ID); len(logs) != 0 {
		t.Fatalf("no reminder log expected, got %+v", logs)
	}
}

func TestRequestManualReminder_CooldownRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.create(t)

	if _, err := f.rem.RequestManualReminder(ctx, r.ID, agent); err != nil {
		t.Fatalf("first reminder: %v", err)
	}

	f.clk.Set(at(10, 10))
	_, err := f.rem.RequestManualReminder(ctx, r.ID, agent)
	var ce *CooldownError
	if !errors.As(err, &ce) || !errors.Is(err, ErrCooldown) || ce.RemainingMinutes != 20 {
		t.Fatalf("expected Cooldown(20), got %v", err)
	}

	f.clk.Set(at(10, 31))
	if _, err := f.rem.RequestManualReminder(ctx, r.ID, agent); err != nil {
		t.Fatalf("reminder after cooldown: %v", err)
	}
	row := f.reload(t, r.ID)
	if !sameTime(row.ReminderDisabledUntil, at(11, 1)) || !sameTime(row.ReminderAutoAt, at(11, 31)) {
		t.Fatalf("second reminder should re-arm the cycle: %+v", row)
	}
	if n := len(f.notes.sent()); n != 2 {
		t.Fatalf("expected 2 notifications, got %d", n)
	}
}

func TestRequestManualReminder_NotFoundAndForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.create(t)

	if _, err := f.rem.RequestManualReminder(ctx, 999, agent); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := f.rem.RequestManualReminder(ctx, r.ID, otherAgent); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.rem.RequestManualReminder(ctx, r.ID, supervisor); err != nil {
		t.Fatalf("supervisor may remind any reclamation: %v", err)
	}
}

// raceRepo simulates a concurrent manual reminder committing between our
// read and our guarded update.
type raceRepo struct {
	GormRepo
	winnerUntil time.Time
}

func (r raceRepo) ClaimManualReminder(ctx context.Context, db *gorm.DB, id uint, now time.Time, fields map[string]any) (bool, error) {
	if err := repo.UpdateReclamationFields(ctx, db, id, map[string]any{"reminder_disabled_until": r.winnerUntil}); err != nil {
		return false, err
	}
	return r.GormRepo.ClaimManualReminder(ctx, db, id, now, fields)
}

func TestRequestManualReminder_LostRaceBecomesCooldown(t *testing.T) {
	f := newFixture(t)
	r := f.create(t)
	f.rem.Repo = raceRepo{winnerUntil: at(10, 30)}

	_, err := f.rem.RequestManualReminder(context.Background(), r.ID, agent)
	var ce *CooldownError
	if !errors.As(err, &ce) || ce.RemainingMinutes != 30 {
		t.Fatalf("expected Cooldown(30) after losing the race, got %v", err)
	}
	if len(f.notes.sent()) != 0 {
		t.Fatalf("loser must not notify")
	}
}

func TestScan_SelectsOnlyDueRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	due := f.create(t)
	archived := f.create(t)
	resolved := f.create(t)
	future := f.create(t)
	f.create(t) // never reminded
	for _, r := range []*domain.Reclamation{due, archived, resolved} {
		if _, err := f.rem.RequestManualReminder(ctx, r.ID, supervisor); err != nil {
			t.Fatalf("arm %d: %v", r.ID, err)
		}
	}
	f.clk.Set(at(10, 20))
	if _, err := f.rem.RequestManualReminder(ctx, future.ID, supervisor); err != nil { // due at 11:20
		t.Fatalf("arm future: %v", err)
	}
	if err := repo.UpdateReclamationFields(ctx, f.db, archived.ID, map[string]any{"archived": true}); err != nil {
		t.Fatalf("archive: %v", err)
	}
	if err := repo.UpdateReclamationFields(ctx, f.db, resolved.ID, map[string]any{"statut": domain.StatusResolved}); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	res, err := f.rem.ScanAndFireAutoReminders(ctx, at(11, 0))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if res != (ScanResult{Due: 1, Fired: 1}) {
		t.Fatalf("unexpected scan result: %+v", res)
	}
	row := f.reload(t, due.ID)
	if !sameTime(row.ReminderAutoSentAt, at(11, 0)) || !sameTime(row.ReminderLastSentAt, at(11, 0)) ||
		!sameTime(row.ReminderDisabledUntil, at(11, 30)) || !sameTime(row.ReminderAutoAt, at(11, 0)) {
		t.Fatalf("auto bookkeeping wrong: %+v", row)
	}
}

func TestScan_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.create(t)
	if _, err := f.rem.RequestManualReminder(ctx, r.ID, agent); err != nil {
		t.Fatalf("arm: %v", err)
	}

	first, err := f.rem.ScanAndFireAutoReminders(ctx, at(11, 0))
	if err != nil || first.Fired != 1 {
		t.Fatalf("first scan: %+v err=%v", first, err)
	}
	second, err := f.rem.ScanAndFireAutoReminders(ctx, at(11, 0))
	if err != nil || second != (ScanResult{}) {
		t.Fatalf("second scan should find nothing: %+v err=%v", second, err)
	}
	// Much later the cycle stays spent until a manual reminder re-arms it.
	later, err := f.rem.ScanAndFireAutoReminders(ctx, at(23, 0))
	if err != nil || later.Fired != 0 {
		t.Fatalf("no second automatic reminder per cycle: %+v err=%v", later, err)
	}

	auto := 0
	for _, n := range f.notes.sent() {
		if n.Title == "Rappel automatique" {
			auto++
		}
	}
	if auto != 1 {
		t.Fatalf("expected exactly one automatic notification, got %d", auto)
	}

	logs, _ := repo.ListReminderLogs(ctx, f.db, r.ID)
	if len(logs) != 2 || logs[1].Kind != domain.ReminderAuto || logs[1].UserID != nil {
		t.Fatalf("unexpected reminder logs: %+v", logs)
	}
}

// failingLogRepo fails the audit insert for one reclamation, after its
// guarded update already ran.
type failingLogRepo struct {
	GormRepo
	failFor uint
}

func (r failingLogRepo) InsertReminderLog(ctx context.Context, db *gorm.DB, l *domain.ReminderLog) error {
	if l.ReclamationID == r.failFor {
		return errors.New("disk I/O error")
	}
	return r.GormRepo.InsertReminderLog(ctx, db, l)
}

func TestScan_RowFailureIsIsolated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bad := f.create(t)
	good := f.create(t)
	for _, r := range []*domain.Reclamation{bad, good} {
		if _, err := f.rem.RequestManualReminder(ctx, r.ID, supervisor); err != nil {
			t.Fatalf("arm: %v", err)
		}
	}
	f.rem.Repo = failingLogRepo{failFor: bad.ID}

	res, err := f.rem.ScanAndFireAutoReminders(ctx, at(11, 0))
	if err != nil {
		t.Fatalf("scan must not fail as a whole: %v", err)
	}
	if res != (ScanResult{Due: 2, Fired: 1, Failed: 1}) {
		t.Fatalf("unexpected result: %+v", res)
	}
	if f.reload(t, bad.ID).ReminderAutoSentAt != nil {
		t.Fatalf("failed row must be rolled back to its savepoint")
	}
	if !sameTime(f.reload(t, good.ID).ReminderAutoSentAt, at(11, 0)) {
		t.Fatalf("good row must be committed")
	}

	// The failed row is picked up by the next healthy scan.
	f.rem.Repo = GormRepo{}
	res, err = f.rem.ScanAndFireAutoReminders(ctx, at(11, 1))
	if err != nil || res.Fired != 1 {
		t.Fatalf("retry scan: %+v err=%v", res, err)
	}
}

func TestScan_ManualReminderReArmsCycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.create(t)
	if _, err := f.rem.RequestManualReminder(ctx, r.ID, agent); err != nil {
		t.Fatalf("arm: %v", err)
	}
	if _, err := f.rem.ScanAndFireAutoReminders(ctx, at(11, 0)); err != nil {
		t.Fatalf("scan: %v", err)
	}

	// Auto reminder started a cooldown that also blocks manual reminders.
	f.clk.Set(at(11, 10))
	if _, err := f.rem.RequestManualReminder(ctx, r.ID, agent); !errors.Is(err, ErrCooldown) {
		t.Fatalf("expected cooldown after auto reminder, got %v", err)
	}

	f.clk.Set(at(11, 30))
	if _, err := f.rem.RequestManualReminder(ctx, r.ID, agent); err != nil {
		t.Fatalf("manual after auto cooldown: %v", err)
	}
	res, err := f.rem.ScanAndFireAutoReminders(ctx, at(12, 30))
	if err != nil || res.Fired != 1 {
		t.Fatalf("re-armed cycle should fire again: %+v err=%v", res, err)
	}
}

func TestReminderLifecycleScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 10:00 created, then reminded by its agent.
	r := f.create(t)
	if _, err := f.rem.RequestManualReminder(ctx, r.ID, agent); err != nil {
		t.Fatalf("10:00 manual reminder: %v", err)
	}
	row := f.reload(t, r.ID)
	if !sameTime(row.ReminderDisabledUntil, at(10, 30)) || !sameTime(row.ReminderAutoAt, at(11, 0)) {
		t.Fatalf("after 10:00 reminder: %+v", row)
	}

	// 11:00 scan fires the automatic reminder.
	f.clk.Set(at(11, 0))
	res, err := f.rem.ScanAndFireAutoReminders(ctx, f.clk.Now())
	if err != nil || res.Fired != 1 {
		t.Fatalf("11:00 scan: %+v err=%v", res, err)
	}
	row = f.reload(t, r.ID)
	if !sameTime(row.ReminderAutoSentAt, at(11, 0)) || !sameTime(row.ReminderDisabledUntil, at(11, 30)) {
		t.Fatalf("after 11:00 scan: %+v", row)
	}

	// 11:15 supervisor resolves it.
	f.clk.Set(at(11, 15))
	if _, err := f.recl.ApplyStatusTransition(ctx, r.ID, domain.StatusResolved, "corrige", supervisor); err != nil {
		t.Fatalf("11:15 transition: %v", err)
	}
	row = f.reload(t, r.ID)
	if row.ReminderAutoAt != nil || row.ReminderAutoSentAt != nil || row.ReminderDisabledUntil != nil {
		t.Fatalf("after 11:15 transition: %+v", row)
	}

	// 11:30 scan finds nothing.
	f.clk.Set(at(11, 30))
	res, err = f.rem.ScanAndFireAutoReminders(ctx, f.clk.Now())
	if err != nil || res.Due != 0 || res.Fired != 0 {
		t.Fatalf("11:30 scan: %+v err=%v", res, err)
	}
}
