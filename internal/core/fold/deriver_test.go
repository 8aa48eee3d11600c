package fold

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitProposal(t *testing.T, d *Deriver) Proposal {
	t.Helper()
	select {
	case <-d.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("no proposal produced")
	}
	p, ok := d.Poll()
	require.True(t, ok)
	return p
}

func TestDeriverProposesLatestRequest(t *testing.T) {
	d := NewDeriver(ModeIndent, 4, 10*time.Millisecond)
	defer d.Close()

	d.Request("a\n  b", 1)
	d.Request(pySource, 2)

	p := waitProposal(t, d)
	assert.Equal(t, uint64(2), p.Revision)
	assert.Len(t, p.Regions, 3)

	_, ok := d.Poll()
	assert.False(t, ok, "a proposal is taken only once")
}

func TestApplyChecksRevision(t *testing.T) {
	m := NewModel(ModeIndent, 4)
	m.DeriveRegions(pySource)
	require.NoError(t, m.Toggle(RegionID{StartLine: 0, Level: 0}))
	m.MarkDirty()

	stale := Proposal{Revision: 3, Regions: []Region{{StartLine: 0, EndLine: 1}}}
	assert.False(t, m.Apply(stale, 4))
	assert.True(t, m.Dirty(), "a discarded proposal leaves the model dirty")
	assert.Len(t, m.Regions(), 3)

	fresh := Proposal{Revision: 4, Regions: []Region{{StartLine: 0, EndLine: 1}}}
	assert.True(t, m.Apply(fresh, 4))
	assert.False(t, m.Dirty())
	assert.Equal(t, []Region{{StartLine: 0, EndLine: 1, Collapsed: true}}, m.Regions())
}

func TestDeriverCloseDropsWork(t *testing.T) {
	d := NewDeriver(ModeIndent, 4, 20*time.Millisecond)
	d.Request(pySource, 1)
	d.Close()

	time.Sleep(60 * time.Millisecond)
	_, ok := d.Poll()
	assert.False(t, ok)

	d.Request(pySource, 2)
	time.Sleep(60 * time.Millisecond)
	_, ok = d.Poll()
	assert.False(t, ok, "requests after Close are ignored")
}
