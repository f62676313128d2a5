package eventbus

import (
    "context"
    "encoding/json"
    "fmt"
    "net/url"
    "strconv"
    "strings"
    "time"

    "github.com/redis/go-redis/v9"
)

const (
    ttlHistory   = 24 * time.Hour
    historyLimit = 200
)

// Message is the JSON form of a room event on the bus.
type Message struct {
    Kind    string          `json:"kind"`
    RoomID  string          `json:"room_id"`
    To      []string        `json:"to,omitempty"`
    Payload json.RawMessage `json:"payload,omitempty"`
    At      time.Time       `json:"at"`
}

type Store struct {
    rdb    *redis.Client
    prefix string
}

func NewStore(rdb *redis.Client, prefix string) *Store {
    if strings.TrimSpace(prefix) == "" { prefix = "blokus:room:" }
    return &Store{rdb: rdb, prefix: prefix}
}

// Channel is the pub/sub channel of a room.
func (s *Store) Channel(roomID string) string  { return s.prefix + strings.TrimSpace(roomID) }
func (s *Store) keyHistory(roomID string) string { return s.Channel(roomID) + ":history" }

// Append publishes raw to the room channel and keeps it in a capped history list.
func (s *Store) Append(ctx context.Context, roomID string, raw []byte) error {
    pipe := s.rdb.TxPipeline()
    pipe.Publish(ctx, s.Channel(roomID), raw)
    pipe.RPush(ctx, s.keyHistory(roomID), raw)
    pipe.LTrim(ctx, s.keyHistory(roomID), -historyLimit, -1)
    pipe.Expire(ctx, s.keyHistory(roomID), ttlHistory)
    _, err := pipe.Exec(ctx)
    return err
}

// History returns up to the last limit messages of a room, oldest first.
func (s *Store) History(ctx context.Context, roomID string, limit int) ([]Message, error) {
    if limit <= 0 || limit > historyLimit { limit = historyLimit }
    raws, err := s.rdb.LRange(ctx, s.keyHistory(roomID), int64(-limit), -1).Result()
    if err == redis.Nil { return nil, nil }
    if err != nil { return nil, err }
    out := make([]Message, 0, len(raws))
    for _, r := range raws {
        var m Message
        if err := json.Unmarshal([]byte(r), &m); err != nil { return nil, err }
        out = append(out, m)
    }
    return out, nil
}

// Subscribe follows one room's channel until ctx ends.
func (s *Store) Subscribe(ctx context.Context, roomID string) (<-chan Message, error) {
    sub := s.rdb.Subscribe(ctx, s.Channel(roomID))
    if _, err := sub.Receive(ctx); err != nil {
        _ = sub.Close()
        return nil, err
    }
    out := make(chan Message, 16)
    go func() {
        defer close(out)
        defer sub.Close()
        ch := sub.Channel()
        for {
            select {
            case <-ctx.Done():
                return
            case msg, ok := <-ch:
                if !ok { return }
                var m Message
                if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil { continue }
                select {
                case out <- m:
                case <-ctx.Done():
                    return
                }
            }
        }
    }()
    return out, nil
}

// NewClient connects to REDIS_URL and pings it.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
    if strings.TrimSpace(redisURL) == "" {
        return nil, fmt.Errorf("REDIS_URL is required")
    }
    opts, err := parseRedisURL(redisURL)
    if err != nil { return nil, err }
    rdb := redis.NewClient(opts)
    if err := rdb.Ping(ctx).Err(); err != nil {
        _ = rdb.Close()
        return nil, fmt.Errorf("redis ping: %w", err)
    }
    return rdb, nil
}

func parseRedisURL(raw string) (*redis.Options, error) {
    u, err := url.Parse(raw)
    if err != nil { return nil, err }
    if u.Scheme != "redis" && u.Scheme != "rediss" { return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme) }
    db := 0
    if p := strings.TrimPrefix(u.Path, "/"); p != "" { if n, err := strconv.Atoi(p); err == nil { db = n } }
    pass, _ := u.User.Password()
    return &redis.Options{Addr: u.Host, Password: pass, DB: db}, nil
}
