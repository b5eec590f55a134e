package core

import (
	"testing"

	mtime "github.com/yieldvault/yieldvault/middleware/time"
)

const (
	testStart    = mtime.TimeStamp(1600000000)
	testDuration = int64(180 * daySeconds)
)

func testWindow() Window {
	return Window{
		Start:     testStart,
		LockupEnd: testStart.Add(90 * daySeconds),
		End:       testStart.Add(testDuration),
	}
}

func TestElapsedScaled(t *testing.T) {
	w := testWindow()
	cases := []struct {
		name   string
		anchor mtime.TimeStamp
		now    mtime.TimeStamp
		expect uint64
	}{
		{"at anchor", testStart, testStart, 0},
		{"half window", testStart, testStart.Add(90 * daySeconds), precision / 2},
		{"full window", testStart, testStart.Add(180 * daySeconds), precision},
		{"past end", testStart, testStart.Add(400 * daySeconds), precision},
		{"anchor before start", testStart.Add(-30 * daySeconds), testStart.Add(90 * daySeconds), precision / 2},
		{"anchor mid window", testStart.Add(90 * daySeconds), testStart.Add(135 * daySeconds), precision / 4},
		{"anchor mid window past end", testStart.Add(90 * daySeconds), testStart.Add(400 * daySeconds), precision / 2},
		{"anchor at end", testStart.Add(180 * daySeconds), testStart.Add(400 * daySeconds), 0},
	}
	for _, c := range cases {
		if got := elapsedScaled(c.anchor, w, testDuration, c.now); got != c.expect {
			t.Errorf("%v: expect %v, got %v", c.name, c.expect, got)
		}
	}
}

func TestElapsedScaledWindowNotStarted(t *testing.T) {
	var w Window
	if got := elapsedScaled(testStart, w, testDuration, testStart.Add(90*daySeconds)); got != 0 {
		t.Errorf("no accrual before the window opens, got %v", got)
	}
}

func TestPendingRewardFullWindow(t *testing.T) {
	w := testWindow()
	p := &Position{Principal: 1000, Anchor: testStart}
	got := pendingReward(p, w, 50, testDuration, w.End)
	if got != 500 {
		t.Errorf("full window yield should be principal*apy/100 = 500, got %v", got)
	}
}

func TestPendingRewardHalfWindow(t *testing.T) {
	w := testWindow()
	p := &Position{Principal: 1000, Anchor: testStart}
	got := pendingReward(p, w, 50, testDuration, testStart.Add(90*daySeconds))
	if got != 250 {
		t.Errorf("expect 1000 * 50 * (90/180) / 100 = 250, got %v", got)
	}
}

func TestPendingRewardIncludesUnrealized(t *testing.T) {
	w := testWindow()
	p := &Position{Principal: 1000, Unrealized: 7, Anchor: testStart.Add(90 * daySeconds)}
	got := pendingReward(p, w, 50, testDuration, testStart.Add(135*daySeconds))
	// quarter window on 1000 at 50% = 125, plus the banked 7
	if got != 132 {
		t.Errorf("expect 132, got %v", got)
	}
}

func TestPendingRewardTruncates(t *testing.T) {
	w := testWindow()
	p := &Position{Principal: 3, Anchor: testStart}
	// 3 * 50 * 500000 / (1000000 * 100) = 0.75, floored
	got := pendingReward(p, w, 50, testDuration, testStart.Add(90*daySeconds))
	if got != 0 {
		t.Errorf("division must floor, got %v", got)
	}
}

func TestSettleRewardsRebasesAnchor(t *testing.T) {
	w := testWindow()
	p := &Position{Principal: 1000, Anchor: testStart, StakedAt: testStart}

	now := testStart.Add(90 * daySeconds)
	settleRewards(p, w, 50, testDuration, now)
	if p.Unrealized != 250 {
		t.Errorf("expect banked 250, got %v", p.Unrealized)
	}
	if p.Anchor != now {
		t.Errorf("anchor should rebase to now, got %v", p.Anchor)
	}

	// once the window has closed the anchor clamps to the end
	late := w.End.Add(30 * daySeconds)
	settleRewards(p, w, 50, testDuration, late)
	if p.Anchor != w.End {
		t.Errorf("anchor should clamp to window end, got %v", p.Anchor)
	}
	if p.Unrealized != 500 {
		t.Errorf("no accrual past the end, expect 500, got %v", p.Unrealized)
	}

	// settling again after the end must not mint anything
	settleRewards(p, w, 50, testDuration, late.Add(daySeconds))
	if p.Unrealized != 500 {
		t.Errorf("repeated settle after end changed the reward: %v", p.Unrealized)
	}
}

func TestLockupStart(t *testing.T) {
	w := testWindow()

	if got := lockupStart(nil, w); got != 0 {
		t.Errorf("nil position should have no lockup start, got %v", got)
	}
	if got := lockupStart(&Position{}, w); got != 0 {
		t.Errorf("zeroed position should have no lockup start, got %v", got)
	}

	// deposits before the window opens run their clock from the start
	p := &Position{Principal: 10, StakedAt: testStart.Add(-30 * daySeconds)}
	if got := lockupStart(p, w); got != w.Start {
		t.Errorf("pre-start deposit should anchor at window start, got %v", got)
	}

	p = &Position{Principal: 10, StakedAt: testStart.Add(30 * daySeconds)}
	if got := lockupStart(p, w); got != p.StakedAt {
		t.Errorf("expect the first-deposit time, got %v", got)
	}
}

func TestLockupOver(t *testing.T) {
	w := testWindow()
	lockup := int64(90 * daySeconds)
	p := &Position{Principal: 10, StakedAt: testStart}

	if lockupOver(p, w, lockup, testStart.Add(89*daySeconds)) {
		t.Errorf("lockup should still be active at day 89")
	}
	if !lockupOver(p, w, lockup, testStart.Add(90*daySeconds)) {
		t.Errorf("lockup should be over at day 90")
	}
	// shrinking the duration releases participants immediately
	if !lockupOver(p, w, int64(30*daySeconds), testStart.Add(31*daySeconds)) {
		t.Errorf("shortened lockup should apply immediately")
	}
}
