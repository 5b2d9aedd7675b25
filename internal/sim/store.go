// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package sim

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"grimm.is/cybershield/internal/model"
)

// Stats are the aggregate counters over everything ever logged.
type Stats struct {
	TotalTraffic       int
	MaliciousCount     int
	BlockedCount       int
	ThreatDistribution model.ThreatDistribution
}

// Store persists traffic and the block list to SQLite. It outlives session
// resets.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the traffic database.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open traffic db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS traffic_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ts INTEGER NOT NULL, -- Unix millis
		src_ip TEXT,
		dst_ip TEXT,
		protocol TEXT,
		service TEXT,
		prediction TEXT NOT NULL,
		confidence REAL DEFAULT 0,
		threat_level TEXT,
		is_blocked INTEGER DEFAULT 0,
		rqa_rr REAL DEFAULT 0,
		rqa_det REAL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_traffic_logs_prediction ON traffic_logs(prediction);

	CREATE TABLE IF NOT EXISTS blocked_ips (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ip_address TEXT NOT NULL UNIQUE,
		blocked_at INTEGER NOT NULL,
		reason TEXT
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// LogTraffic appends one classified packet.
func (s *Store) LogTraffic(ctx context.Context, at time.Time, e model.LogEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO traffic_logs (ts, src_ip, dst_ip, protocol, service, prediction, confidence, threat_level, is_blocked, rqa_rr, rqa_det)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		at.UnixMilli(), e.SrcIP, e.DstIP, e.Protocol, e.Service,
		e.Prediction, e.Confidence, e.ThreatLevel, e.Blocked, e.RQARR, e.RQADet,
	)
	return err
}

// BlockIP adds ip to the block list. Blocking an address twice keeps the
// first record.
func (s *Store) BlockIP(ctx context.Context, ip, reason string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO blocked_ips (ip_address, blocked_at, reason) VALUES (?, ?, ?)`,
		ip, at.UnixMilli(), reason)
	return err
}

// RecentLogs returns up to limit entries, newest first.
func (s *Store) RecentLogs(ctx context.Context, limit int) ([]model.LogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ts, src_ip, dst_ip, protocol, service, prediction, confidence, threat_level, is_blocked, rqa_rr, rqa_det
		FROM traffic_logs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.LogEntry
	for rows.Next() {
		var (
			e  model.LogEntry
			ts int64
		)
		if err := rows.Scan(&ts, &e.SrcIP, &e.DstIP, &e.Protocol, &e.Service,
			&e.Prediction, &e.Confidence, &e.ThreatLevel, &e.Blocked, &e.RQARR, &e.RQADet); err != nil {
			return nil, err
		}
		e.Timestamp = time.UnixMilli(ts).Format(TimestampLayout)
		out = append(out, e)
	}
	return out, rows.Err()
}

// BlockedIPs lists blocked addresses, most recently blocked first.
func (s *Store) BlockedIPs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT ip_address FROM blocked_ips ORDER BY blocked_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ips := []string{}
	for rows.Next() {
		var ip string
		if err := rows.Scan(&ip); err != nil {
			return nil, err
		}
		ips = append(ips, ip)
	}
	return ips, rows.Err()
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	st := Stats{ThreatDistribution: model.ThreatDistribution{}}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM traffic_logs`).Scan(&st.TotalTraffic); err != nil {
		return st, err
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM traffic_logs WHERE prediction != ?`, model.CategoryNormal).Scan(&st.MaliciousCount); err != nil {
		return st, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blocked_ips`).Scan(&st.BlockedCount); err != nil {
		return st, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT prediction, COUNT(*) FROM traffic_logs GROUP BY prediction`)
	if err != nil {
		return st, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			pred string
			n    int
		)
		if err := rows.Scan(&pred, &n); err != nil {
			return st, err
		}
		st.ThreatDistribution[pred] = n
	}
	return st, rows.Err()
}
