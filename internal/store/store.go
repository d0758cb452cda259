// Package store provides SQLite-backed persistence for the mythology
// collection. Narrative fragments and dreams share one table with a kind
// discriminator, mirroring the single document collection they began as.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/eidora/mythos/internal/myth"
)

// searchLimit caps keyword search results.
const searchLimit = 100

// Archive wraps a SQLite connection holding the mythology collection and
// status checks.
type Archive struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Archive, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	a := &Archive{conn: conn}
	if err := a.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return a, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.conn.Close()
}

func (a *Archive) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS mythology (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		title TEXT,
		prose TEXT NOT NULL,
		tags_json TEXT,
		archetype TEXT,
		emotional_tone TEXT NOT NULL,
		name_suggestion TEXT,
		resonance_score REAL,
		timestamp INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS status_checks (
		id TEXT PRIMARY KEY,
		client_name TEXT NOT NULL,
		timestamp INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_mythology_kind_time ON mythology(kind, timestamp);
	`
	_, err := a.conn.Exec(schema)
	return err
}

// record is the flat row shape shared by both kinds. Kind-specific columns
// are nullable in the schema; the conversion methods enforce presence.
type record struct {
	ID             string          `db:"id"`
	Kind           string          `db:"kind"`
	Title          sql.NullString  `db:"title"`
	Prose          string          `db:"prose"`
	TagsJSON       sql.NullString  `db:"tags_json"`
	Archetype      sql.NullString  `db:"archetype"`
	EmotionalTone  string          `db:"emotional_tone"`
	NameSuggestion sql.NullString  `db:"name_suggestion"`
	ResonanceScore sql.NullFloat64 `db:"resonance_score"`
	Timestamp      int64           `db:"timestamp"`
}

const recordColumns = "id, kind, title, prose, tags_json, archetype, emotional_tone, name_suggestion, resonance_score, timestamp"

func (r record) fragment() (myth.Fragment, error) {
	if r.Kind != myth.KindNarrative {
		return myth.Fragment{}, fmt.Errorf("record %s: kind %q is not a narrative", r.ID, r.Kind)
	}
	if !r.Title.Valid || !r.TagsJSON.Valid || !r.Archetype.Valid {
		return myth.Fragment{}, fmt.Errorf("record %s: narrative row missing required fields", r.ID)
	}
	var tags []string
	if err := json.Unmarshal([]byte(r.TagsJSON.String), &tags); err != nil {
		return myth.Fragment{}, fmt.Errorf("record %s: decode tags: %w", r.ID, err)
	}
	return myth.Fragment{
		ID:            r.ID,
		Title:         r.Title.String,
		Prose:         r.Prose,
		Tags:          tags,
		Archetype:     myth.Archetype(r.Archetype.String),
		EmotionalTone: myth.Tone(r.EmotionalTone),
		Timestamp:     time.Unix(0, r.Timestamp).UTC(),
		Kind:          r.Kind,
	}, nil
}

func (r record) dream() (myth.Dream, error) {
	if r.Kind != myth.KindDream {
		return myth.Dream{}, fmt.Errorf("record %s: kind %q is not a dream", r.ID, r.Kind)
	}
	if !r.NameSuggestion.Valid || !r.ResonanceScore.Valid {
		return myth.Dream{}, fmt.Errorf("record %s: dream row missing required fields", r.ID)
	}
	return myth.Dream{
		ID:             r.ID,
		Prose:          r.Prose,
		NameSuggestion: r.NameSuggestion.String,
		ResonanceScore: r.ResonanceScore.Float64,
		EmotionalTone:  myth.Tone(r.EmotionalTone),
		Timestamp:      time.Unix(0, r.Timestamp).UTC(),
		Kind:           r.Kind,
	}, nil
}

// SaveFragment appends a narrative fragment to the mythology collection.
func (a *Archive) SaveFragment(ctx context.Context, f myth.Fragment) error {
	tagsJSON, err := json.Marshal(f.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	_, err = a.conn.ExecContext(ctx, `INSERT INTO mythology
		(id, kind, title, prose, tags_json, archetype, emotional_tone, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, myth.KindNarrative, f.Title, f.Prose, string(tagsJSON),
		string(f.Archetype), string(f.EmotionalTone), f.Timestamp.UTC().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert fragment %s: %w", f.ID, err)
	}
	return nil
}

// SaveDream appends a dream to the mythology collection.
func (a *Archive) SaveDream(ctx context.Context, d myth.Dream) error {
	_, err := a.conn.ExecContext(ctx, `INSERT INTO mythology
		(id, kind, prose, emotional_tone, name_suggestion, resonance_score, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, myth.KindDream, d.Prose, string(d.EmotionalTone),
		d.NameSuggestion, d.ResonanceScore, d.Timestamp.UTC().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert dream %s: %w", d.ID, err)
	}
	return nil
}

// Fragments returns the newest narrative fragments, most recent first.
func (a *Archive) Fragments(ctx context.Context, limit int) ([]myth.Fragment, error) {
	var rows []record
	err := a.conn.SelectContext(ctx, &rows,
		"SELECT "+recordColumns+" FROM mythology WHERE kind = ? ORDER BY timestamp DESC LIMIT ?",
		myth.KindNarrative, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list fragments: %w", err)
	}

	fragments := make([]myth.Fragment, 0, len(rows))
	for _, r := range rows {
		f, err := r.fragment()
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, f)
	}
	return fragments, nil
}

// Dreams returns the newest dreams, most recent first.
func (a *Archive) Dreams(ctx context.Context, limit int) ([]myth.Dream, error) {
	var rows []record
	err := a.conn.SelectContext(ctx, &rows,
		"SELECT "+recordColumns+" FROM mythology WHERE kind = ? ORDER BY timestamp DESC LIMIT ?",
		myth.KindDream, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list dreams: %w", err)
	}

	dreams := make([]myth.Dream, 0, len(rows))
	for _, r := range rows {
		d, err := r.dream()
		if err != nil {
			return nil, err
		}
		dreams = append(dreams, d)
	}
	return dreams, nil
}

// SearchFragments returns records whose prose contains the keyword,
// case-insensitive, newest first, capped at the search limit. The scan is
// kind-agnostic but results decode as narratives, so a matching dream row
// surfaces as a malformed-record error.
func (a *Archive) SearchFragments(ctx context.Context, keyword string) ([]myth.Fragment, error) {
	var rows []record
	err := a.conn.SelectContext(ctx, &rows,
		"SELECT "+recordColumns+" FROM mythology WHERE prose LIKE ? ORDER BY timestamp DESC LIMIT ?",
		"%"+keyword+"%", searchLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("search fragments: %w", err)
	}

	fragments := make([]myth.Fragment, 0, len(rows))
	for _, r := range rows {
		f, err := r.fragment()
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, f)
	}
	return fragments, nil
}
