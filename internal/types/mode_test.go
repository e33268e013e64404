package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFastBudgetsNeverExceedFull(t *testing.T) {
	fast, full := FastMode(), FullMode()

	assert.LessOrEqual(t, fast.MapLimit, full.MapLimit)
	assert.LessOrEqual(t, fast.SearchLimit, full.SearchLimit)
	assert.LessOrEqual(t, fast.PageCap, full.PageCap)
	assert.LessOrEqual(t, fast.SuccessTarget, full.SuccessTarget)
	assert.False(t, fast.CrawlFallback)
	assert.True(t, full.CrawlFallback)
}

func TestSuccessTargetWithinPageCap(t *testing.T) {
	for _, mode := range []RunMode{FastMode(), FullMode()} {
		assert.LessOrEqual(t, mode.SuccessTarget, mode.PageCap, "mode: %s", mode.Name)
	}
}
