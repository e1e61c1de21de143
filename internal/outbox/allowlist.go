package outbox

// Allowlist maps each synchronizable table to the fields whose change is
// meaningful remotely. Only these fields appear in event payloads, and only a
// difference in one of them makes an update worth capturing; purely local
// bookkeeping (row timestamps, blob paths) never triggers emission on its own.
//
// This is the single source of truth for the sync-relevant shape of each
// entity — do not duplicate field comparisons elsewhere.
var Allowlist = map[string][]string{
	"companies":    {"name", "website", "industry", "location", "notes"},
	"contacts":     {"company_id", "name", "email", "phone", "role", "notes"},
	"applications": {"company_id", "position", "stage", "applied_at", "salary_range", "location", "url", "notes"},
	"reminders":    {"application_id", "title", "notes", "due_at", "completed"},
	"attachments":  {"application_id", "file_name", "mime_type", "size_bytes"},
}
