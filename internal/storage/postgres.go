package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/lib/pq"
	"github.com/xaenox/pathway-assist/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config DatabaseConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	storage := &PostgresStorage{db: db}

	// Initialize database schema
	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %v", err)
	}

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %v", err)
	}

	_, err = s.db.Exec(string(migrationSQL))
	if err != nil {
		return fmt.Errorf("error executing migrations: %v", err)
	}

	return nil
}

func (s *PostgresStorage) SaveMessage(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (id, session_id, user_id, role, content, agent, channel)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err := s.db.QueryRowContext(
		ctx,
		query,
		msg.ID,
		msg.SessionID,
		msg.UserID,
		msg.Role,
		msg.Content,
		msg.Agent,
		msg.Channel,
	).Scan(&msg.CreatedAt)

	if err != nil {
		return fmt.Errorf("error saving message: %v", err)
	}

	return nil
}

func (s *PostgresStorage) GetSessionMessages(ctx context.Context, sessionID string, limit int) ([]*models.Message, error) {
	query := `
		SELECT id, session_id, user_id, role, content, agent, channel, created_at
		FROM messages
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying messages: %v", err)
	}
	defer rows.Close()

	var msgs []*models.Message
	for rows.Next() {
		msg := &models.Message{}
		err := rows.Scan(
			&msg.ID,
			&msg.SessionID,
			&msg.UserID,
			&msg.Role,
			&msg.Content,
			&msg.Agent,
			&msg.Channel,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning message: %v", err)
		}
		msgs = append(msgs, msg)
	}

	return msgs, nil
}

// AppendAuditEvent writes one scan audit record. Used by the Postgres audit
// sink; failures are surfaced to the sink, which swallows them.
func (s *PostgresStorage) AppendAuditEvent(ctx context.Context, event models.AuditEvent) error {
	query := `
		INSERT INTO audit_events (occurred_at, channel, session_id, user_id, blocked, reason, flags)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		event.Timestamp,
		event.Channel,
		event.SessionID,
		event.UserID,
		event.Blocked,
		event.Reason,
		pq.Array(event.Flags),
	)
	if err != nil {
		return fmt.Errorf("error appending audit event: %v", err)
	}

	return nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
