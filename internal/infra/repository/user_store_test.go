package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/domain"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/testutil"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 9, 0, 0, 0, time.UTC)
}

func setupStore(t *testing.T) (*gorm.DB, domain.UserStore) {
	t.Helper()
	db := testutil.SetupSQLite(t, Models()...)
	return db, NewUserStore(db)
}

func mustCreate(t *testing.T, db *gorm.DB, rows ...any) {
	t.Helper()
	for _, row := range rows {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("failed to set up test data: %v", err)
		}
	}
}

func TestFindAllUsersWithProfileAndPreferences(t *testing.T) {
	ctx := context.Background()
	db, store := setupStore(t)

	wednesday := int(time.Wednesday)
	mustCreate(t, db,
		&UserModel{ID: "u2", Email: "b@example.com", Name: "B"},
		&UserModel{ID: "u1", Email: "a@example.com", Name: "A"},
		&ProfileModel{UserID: "u1", StartingWeightKg: 100, GoalWeightKg: 80, PreferredInjectionDay: &wednesday, ReminderDaysBefore: 2},
		&NotificationPreferenceModel{UserID: "u1", Type: "weight_reminder", Enabled: false},
		&NotificationPreferenceModel{UserID: "u2", Type: "weekly_summary", Enabled: true},
	)

	users, err := store.FindAllUsersWithProfileAndPreferences(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}

	u1, u2 := users[0], users[1]
	if u1.ID != "u1" || u2.ID != "u2" {
		t.Fatalf("expected users ordered by id, got %s, %s", u1.ID, u2.ID)
	}

	if u1.Profile == nil {
		t.Fatal("expected profile for u1")
	}
	if u1.Profile.ReminderDaysBefore != 2 {
		t.Errorf("expected ReminderDaysBefore 2, got %d", u1.Profile.ReminderDaysBefore)
	}
	if u1.Profile.PreferredInjectionDay == nil || *u1.Profile.PreferredInjectionDay != time.Wednesday {
		t.Errorf("expected preferred day Wednesday, got %v", u1.Profile.PreferredInjectionDay)
	}
	if u1.Preferences.Enabled(domain.NotificationWeightReminder) {
		t.Error("expected weight reminders disabled for u1")
	}
	if !u1.Preferences.Enabled(domain.NotificationInjectionReminder) {
		t.Error("expected absent preference to be enabled")
	}

	if u2.Profile != nil {
		t.Errorf("expected no profile for u2, got %+v", u2.Profile)
	}
	if !u2.Preferences.Enabled(domain.NotificationWeeklySummary) {
		t.Error("expected weekly summary enabled for u2")
	}
}

func TestFindAllUsersEmpty(t *testing.T) {
	_, store := setupStore(t)

	users, err := store.FindAllUsersWithProfileAndPreferences(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", users)
	}
}

func TestFindProfile(t *testing.T) {
	ctx := context.Background()
	db, store := setupStore(t)
	mustCreate(t, db, &ProfileModel{UserID: "u1", StartingWeightKg: 100, GoalWeightKg: 80, ReminderDaysBefore: 1})

	tests := []struct {
		name    string
		userID  string
		wantErr error
	}{
		{name: "existing profile", userID: "u1"},
		{name: "missing profile", userID: "u9", wantErr: domain.ErrProfileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := store.FindProfile(ctx, tt.userID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.StartingWeightKg != 100 || p.PreferredInjectionDay != nil {
				t.Errorf("unexpected profile %+v", p)
			}
		})
	}
}

func TestFindLastRecords(t *testing.T) {
	ctx := context.Background()
	db, store := setupStore(t)
	mustCreate(t, db,
		&InjectionModel{ID: "i1", UserID: "u1", DoseMg: 2.5, Site: "abdomen_left", InjectedAt: day(1)},
		&InjectionModel{ID: "i2", UserID: "u1", DoseMg: 5, Site: "abdomen_right", InjectedAt: day(8)},
		&WeightEntryModel{ID: "w1", UserID: "u1", WeightKg: 100, RecordedAt: day(1)},
		&WeightEntryModel{ID: "w2", UserID: "u1", WeightKg: 99, RecordedAt: day(3)},
	)

	inj, err := store.FindLastInjection(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inj == nil || inj.ID != "i2" || inj.Dose != 5 || inj.Site != domain.SiteAbdomenRight {
		t.Errorf("expected latest injection i2, got %+v", inj)
	}

	w, err := store.FindLastWeight(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w == nil || w.ID != "w2" {
		t.Errorf("expected latest weight w2, got %+v", w)
	}

	inj, err = store.FindLastInjection(ctx, "nobody")
	if err != nil || inj != nil {
		t.Errorf("expected (nil, nil) for user without injections, got (%v, %v)", inj, err)
	}
	w, err = store.FindLastWeight(ctx, "nobody")
	if err != nil || w != nil {
		t.Errorf("expected (nil, nil) for user without weights, got (%v, %v)", w, err)
	}
}

func TestFindWeightsBetween(t *testing.T) {
	ctx := context.Background()
	db, store := setupStore(t)
	mustCreate(t, db,
		&WeightEntryModel{ID: "w3", UserID: "u1", WeightKg: 97, RecordedAt: day(15)},
		&WeightEntryModel{ID: "w1", UserID: "u1", WeightKg: 100, RecordedAt: day(1)},
		&WeightEntryModel{ID: "w2", UserID: "u1", WeightKg: 98, RecordedAt: day(8)},
		&WeightEntryModel{ID: "x1", UserID: "u2", WeightKg: 70, RecordedAt: day(8)},
	)

	start, end := day(5), day(10)

	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
		want  []string
	}{
		{name: "open window", want: []string{"w1", "w2", "w3"}},
		{name: "start only", start: &start, want: []string{"w2", "w3"}},
		{name: "end only", end: &end, want: []string{"w1", "w2"}},
		{name: "bounded", start: &start, end: &end, want: []string{"w2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.FindWeightsBetween(ctx, "u1", tt.start, tt.end)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d entries, got %d", len(tt.want), len(got))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("entry %d: expected %s, got %s", i, id, got[i].ID)
				}
			}
		})
	}

	since, err := store.FindWeightsSince(ctx, "u1", day(8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(since) != 2 {
		t.Errorf("expected 2 entries since day 8, got %d", len(since))
	}
}

func TestFindInjectionsSkipsInvalidRows(t *testing.T) {
	ctx := context.Background()
	db, store := setupStore(t)
	mustCreate(t, db,
		&InjectionModel{ID: "i1", UserID: "u1", DoseMg: 2.5, Site: "thigh_left", InjectedAt: day(1)},
		&InjectionModel{ID: "bad-dose", UserID: "u1", DoseMg: 3, Site: "thigh_left", InjectedAt: day(4)},
		&InjectionModel{ID: "bad-site", UserID: "u1", DoseMg: 5, Site: "elbow", InjectedAt: day(6)},
		&InjectionModel{ID: "i2", UserID: "u1", DoseMg: 5, Site: "thigh_right", InjectedAt: day(8)},
	)

	got, err := store.FindInjectionsSince(ctx, "u1", day(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "i1" || got[1].ID != "i2" {
		t.Errorf("expected [i1 i2], got %+v", got)
	}
}

func TestFindPushSubscriptions(t *testing.T) {
	ctx := context.Background()
	db, store := setupStore(t)
	mustCreate(t, db,
		&PushSubscriptionModel{UserID: "u1", Token: "tok-a"},
		&PushSubscriptionModel{UserID: "u1", Token: "tok-b"},
		&PushSubscriptionModel{UserID: "u2", Token: "tok-c"},
	)

	subs, err := store.FindPushSubscriptions(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs) != 2 || subs[0].Token != "tok-a" || subs[1].Token != "tok-b" {
		t.Errorf("unexpected subscriptions %+v", subs)
	}
}

func TestAppendEmailLog(t *testing.T) {
	ctx := context.Background()
	db, store := setupStore(t)

	err := store.AppendEmailLog(ctx, domain.EmailLog{
		UserID:       "u1",
		Type:         domain.NotificationInjectionOverdue,
		Status:       domain.EmailStatusFailed,
		ErrorMessage: "rejected",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var rows []EmailLogModel
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("failed to read email logs: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Type != "injection_overdue" || row.Status != "failed" || row.ErrorMessage != "rejected" {
		t.Errorf("unexpected row %+v", row)
	}
	if row.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be filled")
	}
}
