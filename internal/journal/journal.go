// Package journal records the API calls made through the CLI so that
// payments, refunds and link changes can be traced after the fact.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexbotov/iyzipay-go/pkg/iyzipay"
)

// Entry statuses
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusError   = "error"
)

// Entry is one recorded API call
type Entry struct {
	ID             string          `json:"id"`
	Timestamp      time.Time       `json:"timestamp"`
	Operation      string          `json:"operation"`
	Method         string          `json:"method"`
	Endpoint       string          `json:"endpoint"`
	Scheme         string          `json:"scheme"`
	ConversationID string          `json:"conversation_id,omitempty"`
	Status         string          `json:"status"`
	ErrorCode      string          `json:"error_code,omitempty"`
	ErrorMessage   string          `json:"error_message,omitempty"`
	HTTPStatus     int             `json:"http_status,omitempty"`
	Duration       time.Duration   `json:"duration"`
	Data           json.RawMessage `json:"data,omitempty"`
}

// Service provides journal storage
type Service struct {
	db *sql.DB
}

// New creates a new journal service
func New(db *sql.DB) *Service {
	return &Service{db: db}
}

// Record stores an entry, filling in its id and timestamp when unset.
func (s *Service) Record(ctx context.Context, entry *Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	var data interface{}
	if len(entry.Data) > 0 {
		data = string(entry.Data)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO journal_entries (id, timestamp, operation, method, endpoint, scheme, conversation_id,
			status, error_code, error_message, http_status, duration_ms, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, entry.ID, entry.Timestamp, entry.Operation, entry.Method, entry.Endpoint, entry.Scheme,
		entry.ConversationID, entry.Status, entry.ErrorCode, entry.ErrorMessage, entry.HTTPStatus,
		entry.Duration.Milliseconds(), data)
	if err != nil {
		return fmt.Errorf("failed to record journal entry: %w", err)
	}
	return nil
}

// Option is a functional option for configuring journal entries
type Option func(*Entry)

// WithConversation sets the conversation id of the entry
func WithConversation(conversationID string) Option {
	return func(e *Entry) {
		e.ConversationID = conversationID
	}
}

// WithData attaches a JSON summary of the result
func WithData(data interface{}) Option {
	return func(e *Entry) {
		if raw, err := json.Marshal(data); err == nil {
			e.Data = raw
		}
	}
}

// WithDuration sets how long the call took
func WithDuration(d time.Duration) Option {
	return func(e *Entry) {
		e.Duration = d
	}
}

// NewEntry builds an entry for a finished call. err decides the status:
// API failures keep their iyzico error code, other errors are recorded as
// transport errors.
func NewEntry(operation, method, endpoint, scheme string, err error, opts ...Option) *Entry {
	entry := &Entry{
		Operation: operation,
		Method:    method,
		Endpoint:  endpoint,
		Scheme:    scheme,
		Status:    StatusSuccess,
	}

	var apiErr *iyzipay.APIError
	var httpErr *iyzipay.HTTPError
	switch {
	case err == nil:
	case errors.As(err, &apiErr):
		entry.Status = StatusFailure
		entry.ErrorCode = apiErr.Code
		entry.ErrorMessage = apiErr.Message
		entry.HTTPStatus = apiErr.StatusCode
	case errors.As(err, &httpErr):
		entry.Status = StatusError
		entry.ErrorMessage = httpErr.Error()
		entry.HTTPStatus = httpErr.StatusCode
	default:
		entry.Status = StatusError
		entry.ErrorMessage = err.Error()
	}

	for _, opt := range opts {
		opt(entry)
	}
	return entry
}

// Filter defines criteria for listing entries
type Filter struct {
	Operation      string
	ConversationID string
	Status         string
	From           time.Time
	To             time.Time
	Limit          int
}

const defaultLimit = 100

// buildQuery renders the SELECT for filter with its positional arguments.
func buildQuery(filter *Filter) (string, []interface{}) {
	query := `SELECT id, timestamp, operation, method, endpoint, scheme, conversation_id,
			  status, error_code, error_message, http_status, duration_ms, data
			  FROM journal_entries WHERE 1=1`
	args := []interface{}{}
	paramIdx := 1

	if filter != nil {
		if filter.Operation != "" {
			query += fmt.Sprintf(" AND operation = $%d", paramIdx)
			args = append(args, filter.Operation)
			paramIdx++
		}
		if filter.ConversationID != "" {
			query += fmt.Sprintf(" AND conversation_id = $%d", paramIdx)
			args = append(args, filter.ConversationID)
			paramIdx++
		}
		if filter.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", paramIdx)
			args = append(args, filter.Status)
			paramIdx++
		}
		if !filter.From.IsZero() {
			query += fmt.Sprintf(" AND timestamp >= $%d", paramIdx)
			args = append(args, filter.From)
			paramIdx++
		}
		if !filter.To.IsZero() {
			query += fmt.Sprintf(" AND timestamp <= $%d", paramIdx)
			args = append(args, filter.To)
			paramIdx++
		}
	}

	query += " ORDER BY timestamp DESC"

	limit := defaultLimit
	if filter != nil && filter.Limit > 0 {
		limit = filter.Limit
	}
	query += fmt.Sprintf(" LIMIT $%d", paramIdx)
	args = append(args, limit)

	return query, args
}

// List returns entries matching filter, newest first
func (s *Service) List(ctx context.Context, filter *Filter) ([]*Entry, error) {
	query, args := buildQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var conversationID, errorCode, errorMessage, data sql.NullString
		var durationMs int64

		err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.Operation, &entry.Method, &entry.Endpoint,
			&entry.Scheme, &conversationID, &entry.Status, &errorCode, &errorMessage,
			&entry.HTTPStatus, &durationMs, &data)
		if err != nil {
			return nil, err
		}

		entry.ConversationID = conversationID.String
		entry.ErrorCode = errorCode.String
		entry.ErrorMessage = errorMessage.String
		entry.Duration = time.Duration(durationMs) * time.Millisecond
		if data.Valid && data.String != "" {
			entry.Data = json.RawMessage(data.String)
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
