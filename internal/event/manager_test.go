package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchOrderAndConsume(t *testing.T) {
	m := NewManager()
	var got []string

	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		got = append(got, "first:"+e.Data.(BufferSavedData).FilePath)
		return false
	})
	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		got = append(got, "second")
		return true
	})
	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		got = append(got, "third")
		return false
	})

	m.Dispatch(TypeBufferSaved, BufferSavedData{FilePath: "a.txt"})
	assert.Equal(t, []string{"first:a.txt", "second"}, got)
}

func TestDispatchOnlyMatchingType(t *testing.T) {
	m := NewManager()
	calls := 0
	m.Subscribe(TypeFoldsChanged, func(Event) bool { calls++; return false })

	m.Dispatch(TypeBufferModified, BufferModifiedData{})
	assert.Zero(t, calls)
	m.Dispatch(TypeFoldsChanged, FoldsChangedData{Regions: 2})
	assert.Equal(t, 1, calls)
}

func TestUnsubscribe(t *testing.T) {
	m := NewManager()
	calls := 0
	var sub Subscription
	sub = m.Subscribe(TypeCursorMoved, func(Event) bool {
		calls++
		m.Unsubscribe(sub)
		return false
	})

	m.Dispatch(TypeCursorMoved, CursorMovedData{})
	m.Dispatch(TypeCursorMoved, CursorMovedData{})
	assert.Equal(t, 1, calls, "handler removed itself during dispatch")

	m.Unsubscribe(sub) // unknown now, no panic
}

func TestNilManagerDispatch(t *testing.T) {
	var m *Manager
	assert.NotPanics(t, func() { m.Dispatch(TypeBufferLoaded, nil) })
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "SearchChanged", TypeSearchChanged.String())
	assert.Equal(t, "Unknown", Type(99).String())
}
