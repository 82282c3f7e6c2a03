package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/noah-isme/kidtask-api/internal/board"
	"github.com/noah-isme/kidtask-api/internal/observability"
)

// TaskAssignment is a submitted task-assignment form.
type TaskAssignment struct {
	BoardID     string          `json:"board_id"`
	Role        board.Role      `json:"role"`
	Task        board.TaskDraft `json:"task"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

// TaskAssignmentPublisher hands submitted task forms to whatever backend stores them.
type TaskAssignmentPublisher interface {
	Publish(ctx context.Context, assignment TaskAssignment) error
}

type natsTaskPublisher struct {
	conn    *nats.Conn
	subject string
}

type logTaskPublisher struct {
	logger zerolog.Logger
}

// NewTaskAssignmentPublisher publishes on the NATS subject when a connection is
// configured and otherwise only logs the assignment.
func NewTaskAssignmentPublisher(conn *nats.Conn, subject string, logger zerolog.Logger) TaskAssignmentPublisher {
	if conn != nil && subject != "" {
		return &natsTaskPublisher{conn: conn, subject: subject}
	}
	return &logTaskPublisher{logger: logger.With().Str("component", "task_assignment_publisher").Logger()}
}

func (p *natsTaskPublisher) Publish(_ context.Context, assignment TaskAssignment) error {
	payload, err := json.Marshal(assignment)
	if err != nil {
		return err
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("publish task assignment: %w", err)
	}
	return nil
}

func (p *logTaskPublisher) Publish(_ context.Context, assignment TaskAssignment) error {
	p.logger.Info().
		Str("board_id", assignment.BoardID).
		Str("role", string(assignment.Role)).
		Str("title", assignment.Task.Title).
		Str("due_date", assignment.Task.DueDate).
		Msg("task assigned")
	return nil
}

// dispatchTaskAssignment publishes the assignment and records the outcome. A
// failed publish is logged but never blocks the form reset.
func dispatchTaskAssignment(ctx context.Context, publisher TaskAssignmentPublisher, logger zerolog.Logger, assignment TaskAssignment) {
	outcome := "published"
	defer func() {
		observability.TaskAssignments().WithLabelValues(string(assignment.Role), outcome).Inc()
	}()

	if publisher == nil {
		outcome = "skipped"
		return
	}
	if err := publisher.Publish(ctx, assignment); err != nil {
		outcome = "failed"
		logger.Warn().Err(err).Str("board_id", assignment.BoardID).Msg("failed to publish task assignment")
	}
}
