package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

// watchRows turns postgres LISTEN/NOTIFY into a snapshot stream: every
// notification for the watched row triggers the light read and pushes
// its result. The read deliberately skips joined and payload-heavy
// columns; consumers reconcile through the entity merge policies.
func watchRows[T any](ctx context.Context, pool *pgxpool.Pool, channel string, id int64, read func(context.Context) (T, error)) (<-chan T, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(ctx, "LISTEN "+channel); err != nil {
		conn.Release()
		return nil, err
	}

	want := strconv.FormatInt(id, 10)
	out := make(chan T, 1)
	go func() {
		defer close(out)
		defer conn.Release()
		for {
			notification, err := conn.Conn().WaitForNotification(ctx)
			if err != nil {
				return
			}
			if notification.Payload != want {
				continue
			}
			snapshot, err := read(ctx)
			if err != nil {
				continue
			}
			select {
			case out <- snapshot:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
