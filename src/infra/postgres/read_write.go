package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ReadWriteClient keeps queries on a read replica and mutations on the primary.
// Both pools may point to the same host.
type ReadWriteClient struct {
	readPool  *pgxpool.Pool
	writePool *pgxpool.Pool
}

func NewReadWriteClient(
	readHost string,
	writeHost string,
	readPort string,
	writePort string,
	dbname string,
	username string,
	password string,
	maxConnections int,
) (*ReadWriteClient, error) {

	writePool, err := NewPostgresClient(writeHost, writePort, dbname, username, password, maxConnections)
	if err != nil {
		return nil, err
	}

	if readHost == writeHost && readPort == writePort {
		return NewReadWriteClientFromPool(writePool), nil
	}

	readPool, err := NewPostgresClient(readHost, readPort, dbname, username, password, maxConnections)
	if err != nil {
		writePool.Close()
		return nil, err
	}

	return &ReadWriteClient{
		readPool:  readPool,
		writePool: writePool,
	}, nil
}

// NewReadWriteClientFromPool uses a single pool for both roles.
func NewReadWriteClientFromPool(pool *pgxpool.Pool) *ReadWriteClient {
	return &ReadWriteClient{readPool: pool, writePool: pool}
}

func (rwc *ReadWriteClient) GetReadPool() *pgxpool.Pool {
	return rwc.readPool
}

func (rwc *ReadWriteClient) GetWritePool() *pgxpool.Pool {
	return rwc.writePool
}

func (rwc *ReadWriteClient) Ping(ctx context.Context) error {
	if err := rwc.writePool.Ping(ctx); err != nil {
		return err
	}
	if rwc.readPool != rwc.writePool {
		return rwc.readPool.Ping(ctx)
	}
	return nil
}

func (rwc *ReadWriteClient) Close() {
	if rwc.readPool != nil && rwc.readPool != rwc.writePool {
		rwc.readPool.Close()
	}
	if rwc.writePool != nil {
		rwc.writePool.Close()
	}
}

var errNilPool = errors.New("postgres pool is nil")
