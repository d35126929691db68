package mockworker

import (
	"github.com/stretchr/testify/mock"

	"formforge-api/internal/model"
)

type Worker struct {
	mock.Mock
}

func (m *Worker) Enqueue(event model.InteractionEvent) bool {
	args := m.Called(event)
	return args.Bool(0)
}

func (m *Worker) Shutdown() {
	m.Called()
}
