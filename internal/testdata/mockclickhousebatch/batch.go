// Package mockclickhousebatch provides a testify mock for a prepared
// ClickHouse insert batch. Append and Send are the methods the event log
// repository drives; the rest satisfy driver.Batch.
package mockclickhousebatch

import (
	"github.com/ClickHouse/clickhouse-go/v2/lib/column"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/stretchr/testify/mock"
)

type Batch struct {
	mock.Mock
}

var _ driver.Batch = &Batch{}

func (m *Batch) Append(rowArgs ...any) error {
	call := append([]any{}, rowArgs...)
	return m.Called(call...).Error(0)
}

func (m *Batch) AppendStruct(v any) error {
	return m.Called(v).Error(0)
}

func (m *Batch) Send() error {
	return m.Called().Error(0)
}

func (m *Batch) Abort() error {
	return m.Called().Error(0)
}

func (m *Batch) Flush() error {
	return m.Called().Error(0)
}

func (m *Batch) IsSent() bool {
	return m.Called().Bool(0)
}

func (m *Batch) Rows() int {
	return m.Called().Int(0)
}

func (m *Batch) Columns() []column.Interface {
	args := m.Called()
	if cols, ok := args.Get(0).([]column.Interface); ok {
		return cols
	}
	return nil
}

func (m *Batch) Column(id int) driver.BatchColumn {
	return m.Called(id).Get(0).(driver.BatchColumn)
}

func (m *Batch) Close() error {
	return m.Called().Error(0)
}
