package handler

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/kidtask-api/internal/board"
	"github.com/noah-isme/kidtask-api/internal/dto"
)

func TestWriteBoardEventUsesActionAsEventName(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	event := dto.BoardEvent{
		BoardID:    "board-1",
		Role:       board.RoleParent,
		Action:     "approve_submission",
		Metadata:   map[string]interface{}{"submission_id": 2},
		OccurredAt: time.Date(2024, 12, 28, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, writeBoardEvent(w, event))

	lines := strings.Split(buf.String(), "\n")
	require.Equal(t, "event: approve_submission", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "data: {"))
	require.Contains(t, lines[1], `"board_id":"board-1"`)
	require.Contains(t, lines[1], `"submission_id":2`)
	require.True(t, strings.HasSuffix(buf.String(), "\n\n"))
}

func TestWriteKeepAliveIsComment(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	require.NoError(t, writeKeepAlive(w))
	require.True(t, strings.HasPrefix(buf.String(), ": keep-alive "))
}

func TestPumpBoardEventsStopsOnShutdown(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	events := make(chan dto.BoardEvent)
	shutdown := make(chan struct{})
	done := make(chan struct{})
	go func() {
		pumpBoardEvents(w, events, nil, shutdown, zerolog.Nop())
		close(done)
	}()

	close(shutdown)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream kept running after shutdown")
	}
	require.Zero(t, buf.Len())
}

func TestPumpBoardEventsEndsAfterUnmount(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	events := make(chan dto.BoardEvent, 3)
	keepAlive := make(chan time.Time, 1)
	events <- dto.BoardEvent{BoardID: "board-1", Role: board.RoleChild, Action: "complete_task"}
	events <- dto.BoardEvent{BoardID: "board-1", Role: board.RoleChild, Action: "unmount"}
	events <- dto.BoardEvent{BoardID: "board-1", Role: board.RoleChild, Action: "complete_task"}

	pumpBoardEvents(w, events, keepAlive, make(chan struct{}), zerolog.Nop())

	out := buf.String()
	require.Equal(t, 1, strings.Count(out, "event: complete_task\n"))
	require.Contains(t, out, "event: unmount\n")
	require.Len(t, events, 1)
}
