package actor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestRegistry() *Registry {
	return NewRegistry()
}

func TestSpawnReturnsValue(t *testing.T) {
	reg := newTestRegistry()
	addr := SpawnIn(reg, func(ctx context.Context, self *Actor) (Value, error) {
		return int64(42), nil
	})

	result, err := addr.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(42), result)
}

func TestSpawnLinkNotifiesOnExit(t *testing.T) {
	reg := newTestRegistry()
	done := make(chan Value, 1)

	SpawnIn(reg, func(ctx context.Context, self *Actor) (Value, error) {
		childResult := int64(7)
		SpawnLinkIn(reg, self, func(ctx context.Context, self *Actor) (Value, error) {
			return childResult, nil
		})
		_, msg, err := self.Receive(ctx, Map{"address": AnyAddress, "exit": Any})
		require.NoError(t, err)
		m := msg.(Map)
		done <- m["exit"]
		return nil, nil
	})

	select {
	case v := <-done:
		require.Equal(t, int64(7), v)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for exit notification")
	}
}

func TestSpawnLinkNotifiesOnException(t *testing.T) {
	reg := newTestRegistry()
	done := make(chan Value, 1)
	boom := errors.New("boom")

	SpawnIn(reg, func(ctx context.Context, self *Actor) (Value, error) {
		SpawnLinkIn(reg, self, func(ctx context.Context, self *Actor) (Value, error) {
			return nil, boom
		})
		_, msg, err := self.Receive(ctx, Map{"address": AnyAddress, "exception": Any})
		require.NoError(t, err)
		m := msg.(Map)
		done <- m["exception"]
		return nil, nil
	})

	select {
	case v := <-done:
		m := v.(Map)
		require.Equal(t, "boom", m["message"])
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for exception notification")
	}
}

func TestSpawnLinkNotifiesOnPanic(t *testing.T) {
	reg := newTestRegistry()
	done := make(chan Value, 1)

	SpawnIn(reg, func(ctx context.Context, self *Actor) (Value, error) {
		SpawnLinkIn(reg, self, func(ctx context.Context, self *Actor) (Value, error) {
			panic("kaboom")
		})
		_, msg, err := self.Receive(ctx, Map{"address": AnyAddress, "exception": Any})
		require.NoError(t, err)
		m := msg.(Map)
		done <- m["exception"]
		return nil, nil
	})

	select {
	case v := <-done:
		m := v.(Map)
		require.Equal(t, "panic", m["kind"])
		require.Contains(t, m["message"], "kaboom")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for panic notification")
	}
}

func TestReceiveSelectsByShape(t *testing.T) {
	reg := newTestRegistry()

	addr := SpawnIn(reg, func(ctx context.Context, self *Actor) (Value, error) {
		_, msg, err := self.Receive(ctx, AnyString)
		if err != nil {
			return nil, err
		}
		return msg, nil
	})

	require.NoError(t, addr.Cast(int64(1)))
	require.NoError(t, addr.Cast("hello"))

	result, err := addr.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, "hello", result)
}

func TestReceiveTimeoutReturnsNilWithoutError(t *testing.T) {
	reg := newTestRegistry()
	addr := SpawnIn(reg, func(ctx context.Context, self *Actor) (Value, error) {
		shape, msg, err := self.ReceiveTimeout(ctx, 20*time.Millisecond, AnyString)
		if err != nil {
			return nil, err
		}
		return Tuple{shape == nil, msg == nil}, nil
	})

	result, err := addr.Wait(context.Background())
	require.NoError(t, err)
	got := result.(Tuple)
	require.Equal(t, true, got[0])
	require.Equal(t, true, got[1])
}

func TestKillSurfacesAsErrKilled(t *testing.T) {
	reg := newTestRegistry()
	started := make(chan struct{})
	addr := SpawnIn(reg, func(ctx context.Context, self *Actor) (Value, error) {
		close(started)
		_, _, err := self.Receive(ctx)
		return nil, err
	})

	<-started
	require.NoError(t, addr.Kill())

	_, err := addr.Wait(context.Background())
	require.ErrorIs(t, err, ErrKilled)
}

func TestCastRoundTripsThroughCodec(t *testing.T) {
	reg := newTestRegistry()
	addr := SpawnIn(reg, func(ctx context.Context, self *Actor) (Value, error) {
		_, msg, err := self.Receive(ctx, Map{"binary": AnyBinary, "nested": Any})
		if err != nil {
			return nil, err
		}
		return msg, nil
	})

	sent := Map{"binary": Binary("hello"), "nested": Seq{int64(1), int64(2)}}
	require.NoError(t, addr.Cast(sent))

	result, err := addr.Wait(context.Background())
	require.NoError(t, err)
	got := result.(Map)
	require.True(t, got["binary"].(Binary).Equal(Binary("hello")))
	require.Equal(t, Seq{int64(1), int64(2)}, got["nested"])
}

func TestCallReturnsResponse(t *testing.T) {
	reg := newTestRegistry()
	server := SpawnIn(reg, func(ctx context.Context, self *Actor) (Value, error) {
		return nil, Serve(ctx, self, MethodTable{
			"echo": func(ctx context.Context, self *Actor, method string, payload Value) (Value, error) {
				return payload, nil
			},
		}, ServerOptions{})
	})

	caller := SpawnIn(reg, func(ctx context.Context, self *Actor) (Value, error) {
		return server.Call(ctx, self, "echo", "ping", time.Second)
	})

	result, err := caller.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ping", result)
	require.NoError(t, server.Kill())
}

func TestCallUnknownMethod(t *testing.T) {
	reg := newTestRegistry()
	server := SpawnIn(reg, func(ctx context.Context, self *Actor) (Value, error) {
		return nil, Serve(ctx, self, MethodTable{}, ServerOptions{})
	})

	caller := SpawnIn(reg, func(ctx context.Context, self *Actor) (Value, error) {
		_, err := server.Call(ctx, self, "missing", nil, time.Second)
		return nil, err
	})

	_, err := caller.Wait(context.Background())
	var methodErr *RemoteMethodError
	require.ErrorAs(t, err, &methodErr)
	require.Equal(t, "missing", methodErr.Method)
	require.NoError(t, server.Kill())
}

func TestCallRemoteException(t *testing.T) {
	reg := newTestRegistry()
	server := SpawnIn(reg, func(ctx context.Context, self *Actor) (Value, error) {
		return nil, Serve(ctx, self, MethodTable{
			"fail": func(ctx context.Context, self *Actor, method string, payload Value) (Value, error) {
				return nil, errors.New("nope")
			},
		}, ServerOptions{})
	})

	caller := SpawnIn(reg, func(ctx context.Context, self *Actor) (Value, error) {
		_, err := server.Call(ctx, self, "fail", nil, time.Second)
		return nil, err
	})

	_, err := caller.Wait(context.Background())
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	require.Equal(t, "nope", remoteErr.Detail.Message)
	require.NoError(t, server.Kill())
}

func TestRenamePreservesAddressResolution(t *testing.T) {
	reg := newTestRegistry()
	addr := SpawnIn(reg, func(ctx context.Context, self *Actor) (Value, error) {
		self.Rename("renamed")
		_, msg, err := self.Receive(ctx, AnyString)
		return msg, err
	})

	require.NoError(t, addr.Cast("after-rename"))
	result, err := addr.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, "after-rename", result)
}
