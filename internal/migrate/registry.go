package migrate

import "gorm.io/gorm"

// Registry returns the fixed, ordered migration sequence for the jobtrail
// store. Forward steps use create-if-absent DDL so a half-failed apply cannot
// fail on re-run merely because an object already exists — but the ledger,
// not the schema, decides whether a version counts as applied.
//
// Never reorder or renumber entries; append new versions at the end.
func Registry() []Definition {
	return []Definition{
		{
			Version: "001",
			Apply:   execAll(createCompaniesSQL, createContactsSQL, createApplicationsSQL),
			Revert:  execAll(`DROP TABLE IF EXISTS applications;`, `DROP TABLE IF EXISTS contacts;`, `DROP TABLE IF EXISTS companies;`),
		},
		{
			Version: "002",
			Apply:   execAll(createChangeEventsSQL),
			Revert:  execAll(`DROP TABLE IF EXISTS change_events;`),
		},
		{
			Version: "003",
			Apply:   execAll(createRemindersSQL),
			Revert:  execAll(`DROP TABLE IF EXISTS reminders;`),
		},
		{
			Version: "004",
			Apply:   execAll(createAttachmentsSQL),
			Revert:  execAll(`DROP TABLE IF EXISTS attachments;`),
		},
		{
			Version: "005",
			Apply:   execAll(syncIndexSQL...),
			Revert:  execAll(dropSyncIndexSQL...),
		},
	}
}

// execAll runs each statement in order on the migration transaction.
func execAll(statements ...string) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		for _, stmt := range statements {
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return nil
	}
}

const createCompaniesSQL = `
CREATE TABLE IF NOT EXISTS companies (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	website TEXT NOT NULL DEFAULT '',
	industry TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	sync_status TEXT NOT NULL DEFAULT 'pending',
	sync_version INTEGER NOT NULL DEFAULT 0,
	remote_id TEXT,
	last_synced_at DATETIME,
	deleted_at DATETIME,
	created_at DATETIME,
	updated_at DATETIME
);`

const createContactsSQL = `
CREATE TABLE IF NOT EXISTS contacts (
	id TEXT PRIMARY KEY,
	company_id TEXT REFERENCES companies(id),
	name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	sync_status TEXT NOT NULL DEFAULT 'pending',
	sync_version INTEGER NOT NULL DEFAULT 0,
	remote_id TEXT,
	last_synced_at DATETIME,
	deleted_at DATETIME,
	created_at DATETIME,
	updated_at DATETIME
);`

const createApplicationsSQL = `
CREATE TABLE IF NOT EXISTS applications (
	id TEXT PRIMARY KEY,
	company_id TEXT REFERENCES companies(id),
	position TEXT NOT NULL DEFAULT '',
	stage TEXT NOT NULL DEFAULT 'applied',
	applied_at DATETIME,
	salary_range TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	sync_status TEXT NOT NULL DEFAULT 'pending',
	sync_version INTEGER NOT NULL DEFAULT 0,
	remote_id TEXT,
	last_synced_at DATETIME,
	deleted_at DATETIME,
	created_at DATETIME,
	updated_at DATETIME
);`

const createChangeEventsSQL = `
CREATE TABLE IF NOT EXISTS change_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	table_name TEXT NOT NULL,
	record_id TEXT NOT NULL,
	operation TEXT NOT NULL,
	payload TEXT NOT NULL DEFAULT '{}',
	retry_count INTEGER NOT NULL DEFAULT 0,
	last_retry_at DATETIME,
	error_message TEXT NOT NULL DEFAULT '',
	created_at DATETIME,
	synced_at DATETIME
);`

const createRemindersSQL = `
CREATE TABLE IF NOT EXISTS reminders (
	id TEXT PRIMARY KEY,
	application_id TEXT REFERENCES applications(id),
	title TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	due_at DATETIME NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	sync_status TEXT NOT NULL DEFAULT 'pending',
	sync_version INTEGER NOT NULL DEFAULT 0,
	remote_id TEXT,
	last_synced_at DATETIME,
	deleted_at DATETIME,
	created_at DATETIME,
	updated_at DATETIME
);`

const createAttachmentsSQL = `
CREATE TABLE IF NOT EXISTS attachments (
	id TEXT PRIMARY KEY,
	application_id TEXT REFERENCES applications(id),
	file_name TEXT NOT NULL DEFAULT '',
	mime_type TEXT NOT NULL DEFAULT '',
	size_bytes INTEGER NOT NULL DEFAULT 0,
	path TEXT NOT NULL DEFAULT '',
	sync_status TEXT NOT NULL DEFAULT 'pending',
	sync_version INTEGER NOT NULL DEFAULT 0,
	remote_id TEXT,
	last_synced_at DATETIME,
	deleted_at DATETIME,
	created_at DATETIME,
	updated_at DATETIME
);`

var syncIndexSQL = []string{
	`CREATE INDEX IF NOT EXISTS idx_change_events_record ON change_events(table_name, record_id);`,
	`CREATE INDEX IF NOT EXISTS idx_change_events_synced_at ON change_events(synced_at);`,
	`CREATE INDEX IF NOT EXISTS idx_companies_sync_status ON companies(sync_status);`,
	`CREATE INDEX IF NOT EXISTS idx_contacts_sync_status ON contacts(sync_status);`,
	`CREATE INDEX IF NOT EXISTS idx_applications_sync_status ON applications(sync_status);`,
	`CREATE INDEX IF NOT EXISTS idx_reminders_sync_status ON reminders(sync_status);`,
	`CREATE INDEX IF NOT EXISTS idx_attachments_sync_status ON attachments(sync_status);`,
	`CREATE INDEX IF NOT EXISTS idx_reminders_due_at ON reminders(due_at);`,
}

var dropSyncIndexSQL = []string{
	`DROP INDEX IF EXISTS idx_change_events_record;`,
	`DROP INDEX IF EXISTS idx_change_events_synced_at;`,
	`DROP INDEX IF EXISTS idx_companies_sync_status;`,
	`DROP INDEX IF EXISTS idx_contacts_sync_status;`,
	`DROP INDEX IF EXISTS idx_applications_sync_status;`,
	`DROP INDEX IF EXISTS idx_attachments_sync_status;`,
	`DROP INDEX IF EXISTS idx_reminders_sync_status;`,
	`DROP INDEX IF EXISTS idx_reminders_due_at;`,
}
