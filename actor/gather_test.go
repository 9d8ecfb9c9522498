package actor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWaitAllRecordsBothExitsAndExceptionsInOrder(t *testing.T) {
	reg := newTestRegistry()
	ok := SpawnIn(reg, func(ctx context.Context, self *Actor) (Value, error) {
		return int64(1), nil
	})
	killed := SpawnIn(reg, func(ctx context.Context, self *Actor) (Value, error) {
		_, _, err := self.Receive(ctx)
		return nil, err
	})
	require.NoError(t, killed.Kill())

	records, err := WaitAll(context.Background(), ok, killed)
	require.NoError(t, err)
	require.Len(t, records, 2)

	okRecord := records[0].(Map)
	require.True(t, okRecord["address"].(Address).Equal(ok))
	require.Equal(t, int64(1), okRecord["exit"])

	killedRecord := records[1].(Map)
	require.True(t, killedRecord["address"].(Address).Equal(killed))
	exc := killedRecord["exception"].(Map)
	require.Equal(t, ErrKilled.Error(), exc["message"])
}

func TestGatherSpawnsOnePerRun(t *testing.T) {
	records, err := Gather(context.Background(),
		func(ctx context.Context, self *Actor) (Value, error) { return int64(1), nil },
		func(ctx context.Context, self *Actor) (Value, error) { return int64(2), nil },
		func(ctx context.Context, self *Actor) (Value, error) { return int64(3), nil },
	)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, want := range []int64{1, 2, 3} {
		require.Equal(t, want, records[i].(Map)["exit"])
	}
}

func TestWaitAllContextDeadlineReturnsPartialRecords(t *testing.T) {
	reg := newTestRegistry()
	fast := SpawnIn(reg, func(ctx context.Context, self *Actor) (Value, error) {
		return int64(1), nil
	})
	stuck := SpawnIn(reg, func(ctx context.Context, self *Actor) (Value, error) {
		_, _, err := self.Receive(ctx)
		return nil, err
	})
	defer stuck.Kill()

	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()

	records, err := WaitAll(ctx, fast, stuck)
	require.Error(t, err)
	require.NotNil(t, records)
}
