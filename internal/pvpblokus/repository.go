package pvpblokus

import (
    "context"
    "database/sql"
    "encoding/json"
    "fmt"
    "strings"
    "time"

    _ "github.com/lib/pq"
)

// ResultStore receives final results. The archive is write-only; rooms are never restored from it.
type ResultStore interface {
    SaveResult(ctx context.Context, r *Result) error
}

// Repository archives results in Postgres table blokus_games:
//
//   CREATE TABLE blokus_games (
//       room_id      TEXT PRIMARY KEY,
//       seat0_name   TEXT NOT NULL,
//       seat0_score  INT  NOT NULL,
//       seat1_name   TEXT NOT NULL,
//       seat1_score  INT  NOT NULL,
//       winner       TEXT NOT NULL DEFAULT '',
//       moves        INT  NOT NULL,
//       scores       JSONB NOT NULL,
//       started_at   TIMESTAMPTZ,
//       ended_at     TIMESTAMPTZ,
//       duration_ms  BIGINT NOT NULL DEFAULT 0
//   );
type Repository struct {
    db *sql.DB
}

func NewRepository(databaseURL string) (*Repository, error) {
    if strings.TrimSpace(databaseURL) == "" {
        return nil, fmt.Errorf("DATABASE_URL is required")
    }
    db, err := sql.Open("postgres", databaseURL)
    if err != nil {
        return nil, err
    }
    db.SetMaxOpenConns(8)
    db.SetMaxIdleConns(4)
    db.SetConnMaxLifetime(30 * time.Minute)
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    if err := db.PingContext(ctx); err != nil {
        _ = db.Close()
        return nil, err
    }
    return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
    if r == nil || r.db == nil { return nil }
    return r.db.Close()
}

const upsertResult = `INSERT INTO blokus_games (
        room_id, seat0_name, seat0_score, seat1_name, seat1_score,
        winner, moves, scores, started_at, ended_at, duration_ms
      ) VALUES (
        $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11
      ) ON CONFLICT (room_id) DO UPDATE SET
        seat0_name=EXCLUDED.seat0_name,
        seat0_score=EXCLUDED.seat0_score,
        seat1_name=EXCLUDED.seat1_name,
        seat1_score=EXCLUDED.seat1_score,
        winner=EXCLUDED.winner,
        moves=EXCLUDED.moves,
        scores=EXCLUDED.scores,
        started_at=EXCLUDED.started_at,
        ended_at=EXCLUDED.ended_at,
        duration_ms=EXCLUDED.duration_ms`

// SaveResult upserts a final result keyed by room id.
func (r *Repository) SaveResult(ctx context.Context, res *Result) error {
    if r == nil || r.db == nil || res == nil {
        return nil
    }
    args, err := resultArgs(res)
    if err != nil { return err }
    _, err = r.db.ExecContext(ctx, upsertResult, args...)
    return err
}

// resultArgs flattens res into upsertResult's positional parameters.
func resultArgs(res *Result) ([]any, error) {
    var names [2]string
    var scores [2]int
    for _, s := range res.Scores {
        if s.Seat < 0 || s.Seat > 1 { continue }
        names[s.Seat], scores[s.Seat] = s.Name, s.Score
    }
    raw, err := json.Marshal(res.Scores)
    if err != nil { return nil, err }
    duration := res.EndedAt.Sub(res.StartedAt).Milliseconds()
    if res.StartedAt.IsZero() || duration < 0 { duration = 0 }
    return []any{
        res.RoomID,
        names[0], scores[0],
        names[1], scores[1],
        res.Winner, res.Moves, string(raw),
        nullTime(res.StartedAt), nullTime(res.EndedAt), duration,
    }, nil
}

func nullTime(t time.Time) sql.NullTime { return sql.NullTime{Time: t, Valid: !t.IsZero()} }
