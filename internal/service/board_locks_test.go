package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoardLocksSerialisePerBoard(t *testing.T) {
	locks := newBoardLocks()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("board-1")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	require.Equal(t, 50, counter)
	require.Zero(t, locks.size())
}

func TestBoardLocksIndependentBoards(t *testing.T) {
	locks := newBoardLocks()

	unlockA := locks.Lock("a")
	unlockB := locks.Lock("b")
	require.Equal(t, 2, locks.size())

	unlockA()
	unlockB()
	require.Zero(t, locks.size())
}
