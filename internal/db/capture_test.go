package db

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/jobtrail/jobtrail/internal/models"
)

// Change-capture policy through the store surface: which mutations emit
// events, what the payloads carry, and how SyncVersion moves.

func companyEvents(t *testing.T, database *DB, id string) []models.ChangeEvent {
	t.Helper()
	events, err := database.Outbox().EventsForRecord("companies", id)
	if err != nil {
		t.Fatalf("EventsForRecord() error = %v", err)
	}
	return events
}

func TestCreate_CapturesEvent(t *testing.T) {
	database := testDB(t)

	company := &models.Company{Name: "Acme"}
	if err := database.CreateCompany(company); err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}

	if company.SyncStatus != models.SyncStatusPending {
		t.Errorf("SyncStatus = %q, want default pending", company.SyncStatus)
	}
	if company.SyncVersion != 1 {
		t.Errorf("SyncVersion = %d, want 1 after create", company.SyncVersion)
	}

	events := companyEvents(t, database, company.ID)
	if len(events) != 1 || events[0].Operation != models.OpCreate {
		t.Fatalf("events = %v, want one create event", events)
	}
}

func TestLocalOnly_NeverEmits(t *testing.T) {
	database := testDB(t)

	company := &models.Company{
		Name:     "Secret Corp",
		SyncMeta: models.SyncMeta{SyncStatus: models.SyncStatusLocalOnly},
	}
	if err := database.CreateCompany(company); err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}
	if company.SyncVersion != 0 {
		t.Errorf("SyncVersion = %d, want 0 for local-only records", company.SyncVersion)
	}

	got, _ := database.GetCompany(company.ID)
	got.Notes = "still secret"
	if err := database.UpdateCompany(got); err != nil {
		t.Fatalf("UpdateCompany() error = %v", err)
	}

	if err := database.DeleteCompany(company.ID); err != nil {
		t.Fatalf("DeleteCompany() error = %v", err)
	}

	if events := companyEvents(t, database, company.ID); len(events) != 0 {
		t.Errorf("local-only record emitted %d events, want 0", len(events))
	}

	// Local-only deletes are hard deletes: no tombstone survives.
	var count int64
	database.Unscoped().Model(&models.Company{}).Where("id = ?", company.ID).Count(&count)
	if count != 0 {
		t.Error("local-only delete should remove the row outright")
	}
}

func TestUpdate_EmitsOnlyOnAllowlistedChange(t *testing.T) {
	database := testDB(t)

	att := &models.Attachment{FileName: "resume.pdf", Path: "/old/resume.pdf"}
	if err := database.CreateAttachment(att); err != nil {
		t.Fatalf("CreateAttachment() error = %v", err)
	}

	// Path is not allow-listed: no event, but the attempt still counts.
	att.Path = "/new/resume.pdf"
	if err := database.UpdateAttachment(att); err != nil {
		t.Fatalf("UpdateAttachment() error = %v", err)
	}

	att.FileName = "resume-v2.pdf"
	if err := database.UpdateAttachment(att); err != nil {
		t.Fatalf("UpdateAttachment() error = %v", err)
	}

	events, err := database.Outbox().EventsForRecord("attachments", att.ID)
	if err != nil {
		t.Fatalf("EventsForRecord() error = %v", err)
	}
	// Create plus the file_name update; the path update emitted nothing.
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[1].Operation != models.OpUpdate {
		t.Errorf("second event = %q, want update", events[1].Operation)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(events[1].Payload), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["file_name"] != "resume-v2.pdf" {
		t.Errorf("payload file_name = %v, want the new value", payload["file_name"])
	}
	if _, ok := payload["path"]; ok {
		t.Error("path must never appear in event payloads")
	}

	// SyncVersion counts both update attempts.
	got, _ := database.GetAttachment(att.ID)
	if got.SyncVersion != 3 {
		t.Errorf("SyncVersion = %d, want 3 (create + two attempts)", got.SyncVersion)
	}
}

func TestDelete_NeverSynced_HardDeletesWithoutEvent(t *testing.T) {
	database := testDB(t)

	company := &models.Company{Name: "Acme"}
	if err := database.CreateCompany(company); err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}
	if err := database.DeleteCompany(company.ID); err != nil {
		t.Fatalf("DeleteCompany() error = %v", err)
	}

	events := companyEvents(t, database, company.ID)
	if len(events) != 1 || events[0].Operation != models.OpCreate {
		t.Errorf("events = %v, want only the original create", events)
	}

	var count int64
	database.Unscoped().Model(&models.Company{}).Where("id = ?", company.ID).Count(&count)
	if count != 0 {
		t.Error("never-synced delete should remove the row outright")
	}
}

func TestDelete_Synced_TombstonesAndEmits(t *testing.T) {
	database := testDB(t)

	company := &models.Company{Name: "Acme"}
	if err := database.CreateCompany(company); err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}
	if err := database.MarkSynced(company, "srv-42"); err != nil {
		t.Fatalf("MarkSynced() error = %v", err)
	}

	if err := database.DeleteCompany(company.ID); err != nil {
		t.Fatalf("DeleteCompany() error = %v", err)
	}

	// Reads no longer see the record.
	got, err := database.GetCompany(company.ID)
	if err != nil {
		t.Fatalf("GetCompany() error = %v", err)
	}
	if got != nil {
		t.Error("tombstoned record should be invisible to reads")
	}

	// The tombstone row survives so the remote id outlives the delete.
	var count int64
	database.Unscoped().Model(&models.Company{}).Where("id = ?", company.ID).Count(&count)
	if count != 1 {
		t.Error("synced delete should keep a tombstone row")
	}

	events := companyEvents(t, database, company.ID)
	if len(events) != 2 {
		t.Fatalf("got %d events, want create + delete", len(events))
	}
	last := events[len(events)-1]
	if last.Operation != models.OpDelete {
		t.Fatalf("last event = %q, want delete", last.Operation)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(last.Payload), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(payload) != 1 || payload["remote_id"] != "srv-42" {
		t.Errorf("delete payload = %v, want exactly {remote_id: srv-42}", payload)
	}
}

func TestCaptureFailure_RollsBackMutation(t *testing.T) {
	database := testDB(t)

	// With the event log gone the capture append fails; the row write must
	// fail with it.
	if err := database.Exec(`DROP TABLE change_events;`).Error; err != nil {
		t.Fatalf("drop change_events: %v", err)
	}

	company := &models.Company{Name: "Acme"}
	if err := database.CreateCompany(company); err == nil {
		t.Fatal("CreateCompany() should fail when capture cannot append")
	}

	var count int64
	database.Unscoped().Model(&models.Company{}).Count(&count)
	if count != 0 {
		t.Error("mutation should roll back when its capture fails")
	}
}

func TestMarkSynced(t *testing.T) {
	database := testDB(t)

	company := &models.Company{Name: "Acme"}
	if err := database.CreateCompany(company); err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}

	if err := database.MarkSynced(company, "srv-1"); err != nil {
		t.Fatalf("MarkSynced() error = %v", err)
	}

	got, _ := database.GetCompany(company.ID)
	if got.SyncStatus != models.SyncStatusSynced {
		t.Errorf("SyncStatus = %q, want synced", got.SyncStatus)
	}
	if got.RemoteID == nil || *got.RemoteID != "srv-1" {
		t.Errorf("RemoteID = %v, want srv-1", got.RemoteID)
	}
	if got.LastSyncedAt == nil {
		t.Error("LastSyncedAt should be set")
	}
	// Sync bookkeeping is not a local change.
	if got.SyncVersion != 1 {
		t.Errorf("SyncVersion = %d, want 1 (unchanged by MarkSynced)", got.SyncVersion)
	}

	// Re-syncing under the same remote id is fine; a different id is not.
	if err := database.MarkSynced(got, "srv-1"); err != nil {
		t.Errorf("MarkSynced() with same id error = %v", err)
	}
	err := database.MarkSynced(got, "srv-2")
	if !errors.Is(err, ErrRemoteIDImmutable) {
		t.Errorf("MarkSynced() with different id error = %v, want ErrRemoteIDImmutable", err)
	}
}

func TestMarkSynced_LocalOnly(t *testing.T) {
	database := testDB(t)

	company := &models.Company{
		Name:     "Secret Corp",
		SyncMeta: models.SyncMeta{SyncStatus: models.SyncStatusLocalOnly},
	}
	if err := database.CreateCompany(company); err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}

	if err := database.MarkSynced(company, "srv-1"); !errors.Is(err, ErrLocalOnly) {
		t.Errorf("MarkSynced() error = %v, want ErrLocalOnly", err)
	}
	if err := database.MarkSyncError(company); !errors.Is(err, ErrLocalOnly) {
		t.Errorf("MarkSyncError() error = %v, want ErrLocalOnly", err)
	}
}

func TestMarkSyncError(t *testing.T) {
	database := testDB(t)

	company := &models.Company{Name: "Acme"}
	if err := database.CreateCompany(company); err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}

	if err := database.MarkSyncError(company); err != nil {
		t.Fatalf("MarkSyncError() error = %v", err)
	}
	got, _ := database.GetCompany(company.ID)
	if got.SyncStatus != models.SyncStatusError {
		t.Errorf("SyncStatus = %q, want error", got.SyncStatus)
	}
}

func TestUpdate_IgnoresCallerSyncBookkeeping(t *testing.T) {
	database := testDB(t)

	company := &models.Company{Name: "Acme"}
	if err := database.CreateCompany(company); err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}
	if err := database.MarkSynced(company, "srv-1"); err != nil {
		t.Fatalf("MarkSynced() error = %v", err)
	}

	// A caller fiddling with sync fields cannot make them stick: the store
	// carries bookkeeping over from the persisted state.
	tampered := &models.Company{
		ID:   company.ID,
		Name: "Acme Industries",
		SyncMeta: models.SyncMeta{
			SyncStatus:  models.SyncStatusSynced,
			SyncVersion: 999,
		},
	}
	if err := database.UpdateCompany(tampered); err != nil {
		t.Fatalf("UpdateCompany() error = %v", err)
	}

	got, _ := database.GetCompany(company.ID)
	if got.RemoteID == nil || *got.RemoteID != "srv-1" {
		t.Error("remote id must survive an update")
	}
	if got.SyncVersion != 2 {
		t.Errorf("SyncVersion = %d, want 2 (create + update, caller value ignored)", got.SyncVersion)
	}
	// A local change on a synced record leaves it pending again.
	if got.SyncStatus != models.SyncStatusPending {
		t.Errorf("SyncStatus = %q, want pending after a local change", got.SyncStatus)
	}
}
