package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"pilotconnect/internal/apperrors"
	"pilotconnect/internal/db"
	models "pilotconnect/internal/models/gorm"

	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	orm, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(orm); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return orm
}

func createUser(t *testing.T, orm *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "x", IsActive: true}
	if err := NewUserRepositoryGORM(orm).Create(context.Background(), user); err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return user
}

func TestAirportRepository(t *testing.T) {
	orm := setupTestDB(t)
	repo := NewAirportRepository(orm)
	ctx := context.Background()

	airports := []models.Airport{
		{ICAO: "KSFO", IATA: "SFO", Name: "San Francisco Intl", State: "CA"},
		{ICAO: "KOAK", IATA: "OAK", Name: "Oakland Intl", State: "CA"},
		{ICAO: "KLAS", IATA: "LAS", Name: "Harry Reid Intl", State: "NV"},
	}
	if err := repo.BatchInsert(ctx, airports, 2); err != nil {
		t.Fatalf("BatchInsert failed: %v", err)
	}

	found, err := repo.FindByICAO(ctx, "ksfo")
	if err != nil || found == nil || found.IATA != "SFO" {
		t.Fatalf("Expected KSFO, got %+v, %v", found, err)
	}

	missing, err := repo.FindByICAO(ctx, "ZZZZ")
	if err != nil || missing != nil {
		t.Errorf("Expected nil, nil for unknown ICAO, got %+v, %v", missing, err)
	}

	count, err := repo.CountExisting(ctx, []uint{found.ID, 999})
	if err != nil || count != 1 {
		t.Errorf("Expected 1 existing id, got %d, %v", count, err)
	}

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	total, _ := repo.Count(ctx)
	if total != 0 {
		t.Errorf("Expected empty table, got %d", total)
	}
}

func TestAirportDirectoryOrdering(t *testing.T) {
	orm := setupTestDB(t)
	ctx := context.Background()

	orm.Create(&[]models.Airport{
		{ICAO: "KSFO", Name: "San Francisco Intl", State: "CA"},
		{ICAO: "KLAS", Name: "Harry Reid Intl", State: "NV"},
		{ICAO: "KOAK", Name: "Oakland Intl", State: "CA"},
		{ICAO: "KOAK", Name: "Oakland Intl (dup)", State: "CA"},
	})

	x, err := db.WrapSQLX(orm, "sqlite3")
	if err != nil {
		t.Fatalf("Failed to wrap: %v", err)
	}
	repo := NewAirportDirectoryRepo(x)

	all, err := repo.ListOrderedByCode(ctx)
	if err != nil {
		t.Fatalf("ListOrderedByCode failed: %v", err)
	}
	want := []string{"KLAS", "KOAK", "KOAK", "KSFO"}
	if len(all) != len(want) {
		t.Fatalf("Expected %d airports, got %d", len(want), len(all))
	}
	for i, a := range all {
		if a.ICAO != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], a.ICAO)
		}
	}
	if all[1].ID > all[2].ID {
		t.Error("Expected duplicate ICAO codes ordered by id")
	}

	ca, err := repo.FilterByState(ctx, "CA")
	if err != nil || len(ca) != 3 || ca[0].ICAO != "KOAK" || ca[2].ICAO != "KSFO" {
		t.Errorf("Unexpected CA listing: %+v, %v", ca, err)
	}

	none, err := repo.FilterByState(ctx, "ZZ")
	if err != nil {
		t.Fatalf("Expected no error for unknown state, got %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", none)
	}

	count, err := repo.Count(ctx)
	if err != nil || count != 4 {
		t.Errorf("Expected 4, got %d, %v", count, err)
	}
}

func TestUserRepositoryUniqueUsername(t *testing.T) {
	orm := setupTestDB(t)
	repo := NewUserRepositoryGORM(orm)
	ctx := context.Background()

	createUser(t, orm, "maverick")

	err := repo.Create(ctx, &models.User{Username: "maverick", PasswordHash: "y"})
	if !errors.Is(err, apperrors.ErrUniqueness) {
		t.Errorf("Expected ErrUniqueness, got %v", err)
	}

	if _, err := repo.GetByUsername(ctx, "goose"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestProfileGetOrCreate(t *testing.T) {
	orm := setupTestDB(t)
	repo := NewProfileRepository(orm)
	ctx := context.Background()
	user := createUser(t, orm, "iceman")

	first, created, err := repo.GetOrCreate(ctx, user.ID)
	if err != nil || !created {
		t.Fatalf("Expected new profile, got created=%v err=%v", created, err)
	}
	if first.FlightHours != 0 || len(first.Capabilities()) != 0 {
		t.Errorf("Expected zero-valued profile, got %+v", first)
	}

	second, created, err := repo.GetOrCreate(ctx, user.ID)
	if err != nil || created {
		t.Fatalf("Expected existing profile, got created=%v err=%v", created, err)
	}
	if second.ID != first.ID {
		t.Errorf("Expected same profile id %d, got %d", first.ID, second.ID)
	}

	err = repo.Create(ctx, &models.PilotProfile{UserID: user.ID})
	if !errors.Is(err, apperrors.ErrUniqueness) {
		t.Errorf("Expected ErrUniqueness on second create, got %v", err)
	}

	var count int64
	orm.Model(&models.PilotProfile{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 profile row, got %d", count)
	}
}

func TestProfileSaveDoesNotStampActivity(t *testing.T) {
	orm := setupTestDB(t)
	repo := NewProfileRepository(orm)
	ctx := context.Background()
	user := createUser(t, orm, "viper")

	profile, _, _ := repo.GetOrCreate(ctx, user.ID)
	profile.FlightHours = 1200
	profile.InstructorOfferCFI = true
	if err := repo.Save(ctx, profile); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, _ := repo.GetByUserID(ctx, user.ID)
	if reloaded.FlightHours != 1200 || !reloaded.InstructorOfferCFI {
		t.Errorf("Expected saved fields, got %+v", reloaded)
	}
	if reloaded.LastActivityAt != nil {
		t.Errorf("Expected no activity stamp, got %v", reloaded.LastActivityAt)
	}

	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	if err := repo.Touch(ctx, user.ID, at); err != nil {
		t.Fatalf("Touch failed: %v", err)
	}
	reloaded, _ = repo.GetByUserID(ctx, user.ID)
	if reloaded.LastActivityAt == nil || !reloaded.LastActivityAt.Equal(at) {
		t.Errorf("Expected activity %v, got %v", at, reloaded.LastActivityAt)
	}

	if err := repo.Touch(ctx, 9999, at); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound touching unknown profile, got %v", err)
	}
}

func TestProfileSaveKeepsActivityStamp(t *testing.T) {
	orm := setupTestDB(t)
	repo := NewProfileRepository(orm)
	ctx := context.Background()
	user := createUser(t, orm, "jester")

	stale, _, err := repo.GetOrCreate(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}

	// a login lands between the edit's read and its write
	at := time.Date(2030, 5, 5, 9, 0, 0, 0, time.UTC)
	if err := repo.Touch(ctx, user.ID, at); err != nil {
		t.Fatalf("Touch failed: %v", err)
	}

	stale.FlightHours = 350
	if err := repo.Save(ctx, stale); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, _ := repo.GetByUserID(ctx, user.ID)
	if reloaded.FlightHours != 350 {
		t.Errorf("Expected 350 flight hours, got %d", reloaded.FlightHours)
	}
	if reloaded.LastActivityAt == nil || !reloaded.LastActivityAt.Equal(at) {
		t.Errorf("Expected activity %v to survive Save, got %v", at, reloaded.LastActivityAt)
	}
}

func TestMessageSoftDelete(t *testing.T) {
	orm := setupTestDB(t)
	repo := NewMessageRepository(orm)
	ctx := context.Background()
	alice := createUser(t, orm, "alice")
	bob := createUser(t, orm, "bob")

	msg := &models.Message{SenderID: alice.ID, RecipientID: bob.ID, Subject: "Safety pilot", Content: "Saturday?"}
	if err := repo.Create(ctx, msg); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	original, _ := repo.GetByID(ctx, msg.ID)

	if err := repo.MarkDeleted(ctx, msg.ID, bob.ID); err != nil {
		t.Fatalf("MarkDeleted failed: %v", err)
	}
	if err := repo.MarkDeleted(ctx, msg.ID, bob.ID); err != nil {
		t.Fatalf("Second MarkDeleted should be a no-op, got %v", err)
	}

	inbox, _ := repo.ListInbox(ctx, bob.ID)
	if len(inbox) != 0 {
		t.Errorf("Expected empty inbox for bob, got %d", len(inbox))
	}

	sent, _ := repo.ListSent(ctx, alice.ID)
	if len(sent) != 1 || sent[0].ID != msg.ID {
		t.Fatalf("Expected alice to still see the message, got %+v", sent)
	}
	if !sent[0].Timestamp.Equal(original.Timestamp) {
		t.Errorf("Expected timestamp unchanged, got %v vs %v", sent[0].Timestamp, original.Timestamp)
	}

	var deletions []models.MessageDeletion
	orm.Where("message_id = ?", msg.ID).Find(&deletions)
	if len(deletions) != 1 || deletions[0].UserID != bob.ID {
		t.Errorf("Expected one deletion by %d, got %+v", bob.ID, deletions)
	}
}

func TestMessageListOrdering(t *testing.T) {
	orm := setupTestDB(t)
	repo := NewMessageRepository(orm)
	ctx := context.Background()
	alice := createUser(t, orm, "alice")
	bob := createUser(t, orm, "bob")

	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	for i, subject := range []string{"first", "second", "third"} {
		m := &models.Message{SenderID: alice.ID, RecipientID: bob.ID, Subject: subject, Content: "c", Timestamp: base.Add(time.Duration(i) * time.Hour)}
		if err := repo.Create(ctx, m); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	inbox, _ := repo.ListInbox(ctx, bob.ID)
	if len(inbox) != 3 || inbox[0].Subject != "third" || inbox[2].Subject != "first" {
		t.Errorf("Expected newest first, got %+v", inbox)
	}
	if inbox[0].Sender == nil || inbox[0].Sender.Username != "alice" {
		t.Error("Expected sender preloaded")
	}
}

func TestEventListUpcomingBoundary(t *testing.T) {
	orm := setupTestDB(t)
	repo := NewEventRepository(orm)
	ctx := context.Background()
	host := createUser(t, orm, "host")

	today := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	events := []*models.PilotEvent{
		{HostID: host.ID, EventName: "past", EventStartDate: today.Add(-3 * day), EventFinishDate: today.Add(-day), EventDescription: "d"},
		{HostID: host.ID, EventName: "ends-today", EventStartDate: today.Add(-day), EventFinishDate: today, EventDescription: "d"},
		{HostID: host.ID, EventName: "future", EventStartDate: today.Add(2 * day), EventFinishDate: today.Add(3 * day), EventDescription: "d"},
	}
	for _, e := range events {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	upcoming, err := repo.ListUpcoming(ctx, today)
	if err != nil {
		t.Fatalf("ListUpcoming failed: %v", err)
	}
	if len(upcoming) != 2 || upcoming[0].EventName != "ends-today" || upcoming[1].EventName != "future" {
		t.Errorf("Unexpected upcoming events: %+v", upcoming)
	}

	hosted, _ := repo.ListHostedBy(ctx, host.ID)
	if len(hosted) != 3 || hosted[0].EventName != "past" {
		t.Errorf("Expected all hosted events by start date, got %+v", hosted)
	}

	if err := repo.Delete(ctx, events[0].ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, events[0].ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}
