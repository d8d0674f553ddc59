package messaging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nutricoach/server/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrMessageNotFound = errors.New("message not found")

type ListParams struct {
	ClientID int
	Page     int
	Size     int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, message Message) (_ *Message, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.messaging.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("client.id", message.ClientID))
	span.SetAttributes(attribute.String("author", message.Author.String()))

	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO message
				(client_id, author, body, read, created_at)
				VALUES ($1, $2, $3, $4, $5)
			RETURNING id;`,
		message.ClientID, message.Author, message.Body, message.Read, message.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("message.id", id))

	message.ID = id
	return &message, nil
}

// List returns one page of a client's thread, newest first, plus the
// total message count for paging controls.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Message, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.messaging.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("client.id", params.ClientID))
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))

	if params.Page < 1 {
		params.Page = 1
	}
	if params.Size < 1 {
		params.Size = 20
	}

	if err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM message WHERE client_id = $1;`,
		params.ClientID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count messages: %w", err)
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, client_id, author, body, read, created_at
			FROM message
			WHERE client_id = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3;`,
		params.ClientID, params.Size, (params.Page-1)*params.Size,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows: %w", err)
	}

	messages, err := r.rows2messages(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("rows2messages: %w", err)
	}
	return messages, total, nil
}

// UnreadCount counts unread messages written by the given author, i.e.
// what the other side has not read yet.
func (r *Repo) UnreadCount(ctx context.Context, clientID int, author Author) (count int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.messaging.unreadCount")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("client.id", clientID))
	span.SetAttributes(attribute.String("author", author.String()))

	if err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM message WHERE client_id = $1 AND author = $2 AND read = FALSE;`,
		clientID, author,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return count, nil
}

// MarkRead marks every message from the given author as read.
func (r *Repo) MarkRead(ctx context.Context, clientID int, author Author) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.messaging.markRead")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("client.id", clientID))
	span.SetAttributes(attribute.String("author", author.String()))

	if _, err := r.db.Exec(
		ctx,
		`UPDATE message SET read = TRUE WHERE client_id = $1 AND author = $2 AND read = FALSE;`,
		clientID, author,
	); err != nil {
		return err
	}
	return nil
}

func (r *Repo) rows2messages(rows pgx.Rows) ([]Message, error) {
	var messages []Message
	for rows.Next() {
		var m Message
		var author string
		if err := rows.Scan(&m.ID, &m.ClientID, &author, &m.Body, &m.Read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		m.Author = Author(author)
		messages = append(messages, m)
	}
	return messages, nil
}
