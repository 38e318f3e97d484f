package grid

import (
	"context"
	"strings"
)

type mockStore struct {
	UsedFunc        func(ctx context.Context, ordinal int) bool
	SortUsedFunc    func(ctx context.Context) bool
	SetUsedFunc     func(ctx context.Context, ordinal int, used bool) error
	SetSortUsedFunc func(ctx context.Context, sortUsed bool) error
}

func (m mockStore) Used(ctx context.Context, ordinal int) bool {
	return m.UsedFunc(ctx, ordinal)
}

func (m mockStore) SortUsed(ctx context.Context) bool {
	return m.SortUsedFunc(ctx)
}

func (m mockStore) SetUsed(ctx context.Context, ordinal int, used bool) error {
	return m.SetUsedFunc(ctx, ordinal, used)
}

func (m mockStore) SetSortUsed(ctx context.Context, sortUsed bool) error {
	return m.SetSortUsedFunc(ctx, sortUsed)
}

type mockErrorLog struct {
	messages []string
}

func (m *mockErrorLog) Error(text string) {
	m.messages = append(m.messages, text)
}

func (m *mockErrorLog) String() string {
	return strings.Join(m.messages, "\n")
}

type mockListener struct {
	UsedChangedFunc func(ctx context.Context, t *Tile, used bool) error
}

func (m mockListener) UsedChanged(ctx context.Context, t *Tile, used bool) error {
	return m.UsedChangedFunc(ctx, t, used)
}
