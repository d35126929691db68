// Package mockclickhouseconnection provides a testify mock for the native
// ClickHouse connection. The event log repository only exercises Exec,
// PrepareBatch and Query; the remaining methods exist to satisfy the
// clickhouse.Conn interface.
package mockclickhouseconnection

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/stretchr/testify/mock"
)

type Connection struct {
	mock.Mock
}

var _ clickhouse.Conn = &Connection{}

func (m *Connection) Exec(ctx context.Context, query string, args ...any) error {
	call := append([]any{ctx, query}, args...)
	return m.Called(call...).Error(0)
}

// PrepareBatch records only ctx and query; the repository never passes batch
// options, so expectations stay two-argument.
func (m *Connection) PrepareBatch(ctx context.Context, query string, _ ...driver.PrepareBatchOption) (driver.Batch, error) {
	args := m.Called(ctx, query)
	if batch, ok := args.Get(0).(driver.Batch); ok {
		return batch, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Connection) Query(ctx context.Context, query string, queryArgs ...any) (driver.Rows, error) {
	args := m.Called(ctx, query, queryArgs)
	if rows, ok := args.Get(0).(driver.Rows); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Connection) QueryRow(ctx context.Context, query string, queryArgs ...any) driver.Row {
	args := m.Called(ctx, query, queryArgs)
	return args.Get(0).(driver.Row)
}

func (m *Connection) Select(ctx context.Context, dest any, query string, queryArgs ...any) error {
	return m.Called(ctx, dest, query, queryArgs).Error(0)
}

func (m *Connection) AsyncInsert(ctx context.Context, query string, wait bool, insertArgs ...any) error {
	call := append([]any{ctx, query, wait}, insertArgs...)
	return m.Called(call...).Error(0)
}

func (m *Connection) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *Connection) Stats() driver.Stats {
	return m.Called().Get(0).(driver.Stats)
}

func (m *Connection) ServerVersion() (*driver.ServerVersion, error) {
	args := m.Called()
	return args.Get(0).(*clickhouse.ServerVersion), args.Error(1)
}

func (m *Connection) Contributors() []string {
	return m.Called().Get(0).([]string)
}

func (m *Connection) Close() error {
	return m.Called().Error(0)
}
