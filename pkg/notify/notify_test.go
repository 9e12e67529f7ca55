package notify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/foodsync/pkg/notify"
)

func TestListIsValueThreaded(t *testing.T) {
	var base notify.List
	a := base.Add(notify.KindInfo, "", "first")
	b := a.Add(notify.KindTruncated, "7", "note of %s shortened", "Brot")

	assert.Empty(t, base)
	require.Len(t, a, 1)
	require.Len(t, b, 2)
	assert.Equal(t, "note of Brot shortened", b[1].Message)
	assert.Equal(t, "7", b[1].OrderNumber)
}

func TestListAppendAndFilter(t *testing.T) {
	first := notify.List{}.Add(notify.KindManualChange, "1", "kept")
	second := notify.List{}.Add(notify.KindNoBaseline, "", "no baseline")

	all := first.Append(second, nil)
	require.Len(t, all, 2)
	assert.Equal(t, []string{"kept", "no baseline"}, all.Messages())
	assert.Len(t, all.OfKind(notify.KindManualChange), 1)
	assert.Empty(t, all.OfKind(notify.KindPlatform))
	assert.Equal(t, "- kept\n- no baseline", all.String())
}
