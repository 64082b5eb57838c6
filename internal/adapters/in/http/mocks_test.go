package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// handlerMock stands in for any command or query handler.
type handlerMock[Q, R any] struct {
	mock.Mock
}

func (m *handlerMock[Q, R]) Handle(ctx context.Context, q Q) (R, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(R), args.Error(1)
}
