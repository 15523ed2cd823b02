// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists finalized ideation sessions to SQLite so
// history survives process restarts. The in-memory engine never touches
// it; the CLI archives completions and reads them back.
// Implements: prd004-session-archive (R1-R5);
//
//	docs/ARCHITECTURE § Session Archive.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/ideation-engine/pkg/types"
)

// Store manages the session archive SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the archive database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			technique TEXT NOT NULL,
			problem_statement TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT,
			participants TEXT NOT NULL,
			current_step INTEGER NOT NULL,
			total_steps INTEGER NOT NULL,
			technique_data TEXT NOT NULL,
			summary TEXT NOT NULL,
			archived_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ideas (
			session_id TEXT NOT NULL REFERENCES sessions(id),
			ord INTEGER NOT NULL,
			step INTEGER NOT NULL,
			ts TEXT NOT NULL,
			text TEXT NOT NULL,
			participant TEXT NOT NULL,
			novelty REAL NOT NULL,
			complexity REAL NOT NULL,
			specificity REAL NOT NULL,
			quality REAL NOT NULL,
			key_concepts TEXT NOT NULL,
			PRIMARY KEY (session_id, ord)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ideas_session_id ON ideas(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_technique ON sessions(technique)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Archive writes a finalized session and its summary. Re-archiving the
// same session id replaces the previous record, so retries are safe.
func (s *Store) Archive(ctx context.Context, sess *types.Session, summary types.SessionSummary) error {
	participantsJSON, err := json.Marshal(sess.Participants)
	if err != nil {
		return fmt.Errorf("marshaling participants: %w", err)
	}
	dataJSON, err := json.Marshal(sess.TechniqueData)
	if err != nil {
		return fmt.Errorf("marshaling technique data: %w", err)
	}
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}

	endTime := ""
	if sess.EndTime != nil {
		endTime = sess.EndTime.UTC().Format(time.RFC3339Nano)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, technique, problem_statement, start_time, end_time,
			participants, current_step, total_steps, technique_data, summary, archived_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			technique=excluded.technique, problem_statement=excluded.problem_statement,
			start_time=excluded.start_time, end_time=excluded.end_time,
			participants=excluded.participants, current_step=excluded.current_step,
			total_steps=excluded.total_steps, technique_data=excluded.technique_data,
			summary=excluded.summary, archived_at=excluded.archived_at`,
		sess.ID, string(sess.Technique), sess.ProblemStatement,
		sess.StartTime.UTC().Format(time.RFC3339Nano), endTime,
		string(participantsJSON), sess.CurrentStep, sess.TotalSteps,
		string(dataJSON), string(summaryJSON),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upserting session %s: %w", sess.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM ideas WHERE session_id = ?`, sess.ID); err != nil {
		return fmt.Errorf("clearing old ideas: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO ideas (session_id, ord, step, ts, text, participant,
			novelty, complexity, specificity, quality, key_concepts)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing idea insert: %w", err)
	}
	defer stmt.Close()

	for ord, idea := range sess.Ideas {
		conceptsJSON, _ := json.Marshal(idea.Quality.KeyConcepts)
		_, err := stmt.ExecContext(ctx,
			sess.ID, ord, idea.Step, idea.Timestamp.UTC().Format(time.RFC3339Nano),
			idea.Text, idea.Participant,
			idea.Quality.Novelty, idea.Quality.Complexity,
			idea.Quality.Specificity, idea.Quality.Quality,
			string(conceptsJSON),
		)
		if err != nil {
			return fmt.Errorf("inserting idea %d: %w", ord, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing archive: %w", err)
	}
	return nil
}

// SessionInfo is one row of the archive listing.
type SessionInfo struct {
	ID               string          `json:"id" yaml:"id"`
	Technique        types.Technique `json:"technique" yaml:"technique"`
	ProblemStatement string          `json:"problem_statement" yaml:"problem_statement"`
	StartTime        time.Time       `json:"start_time" yaml:"start_time"`
	EndTime          *time.Time      `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	StepsCompleted   int             `json:"steps_completed" yaml:"steps_completed"`
	TotalSteps       int             `json:"total_steps" yaml:"total_steps"`
	IdeaCount        int             `json:"idea_count" yaml:"idea_count"`
	ArchivedAt       time.Time       `json:"archived_at" yaml:"archived_at"`
}

// List returns archived sessions, most recently archived first.
func (s *Store) List(ctx context.Context) ([]SessionInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, technique, problem_statement, start_time, end_time,
			current_step, total_steps, archived_at,
			(SELECT COUNT(*) FROM ideas WHERE ideas.session_id = sessions.id)
		 FROM sessions
		 ORDER BY archived_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var infos []SessionInfo
	for rows.Next() {
		var (
			info        SessionInfo
			startStr    string
			endStr      string
			archivedStr string
		)
		if err := rows.Scan(&info.ID, &info.Technique, &info.ProblemStatement,
			&startStr, &endStr, &info.StepsCompleted, &info.TotalSteps,
			&archivedStr, &info.IdeaCount); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		if info.StartTime, err = time.Parse(time.RFC3339Nano, startStr); err != nil {
			return nil, fmt.Errorf("parsing start time for %s: %w", info.ID, err)
		}
		if endStr != "" {
			end, err := time.Parse(time.RFC3339Nano, endStr)
			if err != nil {
				return nil, fmt.Errorf("parsing end time for %s: %w", info.ID, err)
			}
			info.EndTime = &end
		}
		if info.ArchivedAt, err = time.Parse(time.RFC3339Nano, archivedStr); err != nil {
			return nil, fmt.Errorf("parsing archive time for %s: %w", info.ID, err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Load rebuilds a full session and its summary from the archive.
// Returns sql.ErrNoRows wrapped when the id is not archived.
func (s *Store) Load(ctx context.Context, id string) (*types.Session, *types.SessionSummary, error) {
	var (
		sess             types.Session
		technique        string
		startStr         string
		endStr           string
		participantsJSON string
		dataJSON         string
		summaryJSON      string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, technique, problem_statement, start_time, end_time,
			participants, current_step, total_steps, technique_data, summary
		 FROM sessions WHERE id = ?`, id).
		Scan(&sess.ID, &technique, &sess.ProblemStatement, &startStr, &endStr,
			&participantsJSON, &sess.CurrentStep, &sess.TotalSteps, &dataJSON, &summaryJSON)
	if err != nil {
		return nil, nil, fmt.Errorf("loading session %s: %w", id, err)
	}

	sess.Technique = types.Technique(technique)
	if sess.StartTime, err = time.Parse(time.RFC3339Nano, startStr); err != nil {
		return nil, nil, fmt.Errorf("parsing start time: %w", err)
	}
	if endStr != "" {
		end, err := time.Parse(time.RFC3339Nano, endStr)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing end time: %w", err)
		}
		sess.EndTime = &end
	}
	if err := json.Unmarshal([]byte(participantsJSON), &sess.Participants); err != nil {
		return nil, nil, fmt.Errorf("unmarshaling participants: %w", err)
	}
	if err := json.Unmarshal([]byte(dataJSON), &sess.TechniqueData); err != nil {
		return nil, nil, fmt.Errorf("unmarshaling technique data: %w", err)
	}
	var summary types.SessionSummary
	if err := json.Unmarshal([]byte(summaryJSON), &summary); err != nil {
		return nil, nil, fmt.Errorf("unmarshaling summary: %w", err)
	}

	if sess.Ideas, err = s.loadIdeas(ctx, id); err != nil {
		return nil, nil, err
	}
	return &sess, &summary, nil
}

func (s *Store) loadIdeas(ctx context.Context, sessionID string) ([]types.IdeaRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT step, ts, text, participant, novelty, complexity, specificity, quality, key_concepts
		 FROM ideas WHERE session_id = ? ORDER BY ord`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying ideas: %w", err)
	}
	defer rows.Close()

	ideas := []types.IdeaRecord{}
	for rows.Next() {
		var (
			idea         types.IdeaRecord
			tsStr        string
			conceptsJSON string
		)
		if err := rows.Scan(&idea.Step, &tsStr, &idea.Text, &idea.Participant,
			&idea.Quality.Novelty, &idea.Quality.Complexity,
			&idea.Quality.Specificity, &idea.Quality.Quality, &conceptsJSON); err != nil {
			return nil, fmt.Errorf("scanning idea row: %w", err)
		}
		if idea.Timestamp, err = time.Parse(time.RFC3339Nano, tsStr); err != nil {
			return nil, fmt.Errorf("parsing idea timestamp: %w", err)
		}
		if err := json.Unmarshal([]byte(conceptsJSON), &idea.Quality.KeyConcepts); err != nil {
			return nil, fmt.Errorf("unmarshaling key concepts: %w", err)
		}
		ideas = append(ideas, idea)
	}
	return ideas, rows.Err()
}

// Count reports how many sessions are archived.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting sessions: %w", err)
	}
	return n, nil
}
