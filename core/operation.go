//   Copyright (C) 2020 YieldVault
//
//   This program is free software: you can redistribute it and/or modify
//   it under the terms of the GNU General Public License as published by
//   the Free Software Foundation, either version 3 of the License, or
//   (at your option) any later version.
//
//   This program is distributed in the hope that it will be useful,
//   but WITHOUT ANY WARRANTY; without even the implied warranty of
//   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//   GNU General Public License for more details.
//
//   You should have received a copy of the GNU General Public License
//   along with this program.  If not, see <https://www.gnu.org/licenses/>.

package core

import (
	"fmt"

	"github.com/yieldvault/yieldvault/common"
	"github.com/yieldvault/yieldvault/middleware/notify"
	mtime "github.com/yieldvault/yieldvault/middleware/time"
)

// OpType is the type of a pool operation
type OpType byte

const (
	OpTypeDeposit OpType = iota + 1
	OpTypeWithdraw
	OpTypeWithdrawAll
	OpTypeClaimRewards
	OpTypeStartPeriod
	OpTypeSweepResidual
	OpTypePause
	OpTypeUnpause
	OpTypeSetMaxPerUser
	OpTypeSetPoolCap
	OpTypeSetLockupDays
)

// StakeMessage is the message of the pool operations. For the tunable
// setters the new value rides the Amount field, the lockup setter takes days
type StakeMessage interface {
	OpType() OpType
	Operator() *common.Address
	Amount() uint64
}

// pOperation is the pool operation interface. Validate rejects the request
// without touching the state, Operation applies the state change with the
// external token transfer as the last side effect
type pOperation interface {
	Validate() error
	Operation() error
	Events() []opEvent
}

type opEvent struct {
	topic string
	msg   notify.Message
}

type baseOperation struct {
	state  *poolState
	token  TokenLedger
	cfg    *PoolConfig
	source common.Address
	amount uint64
	now    mtime.TimeStamp
	events []opEvent
}

// newOperation creates the pool operation instance by the operation type
func newOperation(state *poolState, token TokenLedger, cfg *PoolConfig, msg StakeMessage, now mtime.TimeStamp) pOperation {
	base := &baseOperation{
		state:  state,
		token:  token,
		cfg:    cfg,
		source: *msg.Operator(),
		amount: msg.Amount(),
		now:    now,
	}
	var operation pOperation
	switch msg.OpType() {
	case OpTypeDeposit:
		operation = &depositOp{baseOperation: base}
	case OpTypeWithdraw:
		operation = &withdrawOp{baseOperation: base}
	case OpTypeWithdrawAll:
		operation = &withdrawAllOp{baseOperation: base}
	case OpTypeClaimRewards:
		operation = &claimRewardsOp{baseOperation: base}
	case OpTypeStartPeriod:
		operation = &startPeriodOp{baseOperation: base}
	case OpTypeSweepResidual:
		operation = &sweepResidualOp{baseOperation: base}
	case OpTypePause:
		operation = &pauseOp{baseOperation: base}
	case OpTypeUnpause:
		operation = &unpauseOp{baseOperation: base}
	case OpTypeSetMaxPerUser:
		operation = &setMaxPerUserOp{baseOperation: base}
	case OpTypeSetPoolCap:
		operation = &setPoolCapOp{baseOperation: base}
	case OpTypeSetLockupDays:
		operation = &setLockupDaysOp{baseOperation: base}
	default:
	}
	return operation
}

func (op *baseOperation) Events() []opEvent {
	return op.events
}

func (op *baseOperation) emit(topic string, msg notify.Message) {
	op.events = append(op.events, opEvent{topic: topic, msg: msg})
}

func (op *baseOperation) checkOwner() error {
	if op.source != op.cfg.Owner {
		return ErrAccessDenied
	}
	return nil
}

func (op *baseOperation) checkNotPaused() error {
	if op.state.paused {
		return ErrPoolPaused
	}
	return nil
}

// withdrawUnlocked tells whether principal may leave the pool: either the
// global window has ended or the participant's own lockup has elapsed
func (op *baseOperation) withdrawUnlocked(p *Position) bool {
	w := op.state.window
	if w.started() && op.now >= w.End {
		return true
	}
	return lockupOver(p, w, op.state.tunables.LockupDuration, op.now)
}

// settle banks the accrued interest of the given live position at now
func (op *baseOperation) settle(p *Position) {
	settleRewards(p, op.state.window, op.cfg.FixedAPY, op.cfg.StakingDuration, op.now)
}

type depositOp struct {
	*baseOperation
}

func (op *depositOp) Validate() error {
	if err := op.checkNotPaused(); err != nil {
		return err
	}
	w := op.state.window
	if w.started() && op.now >= w.End {
		return ErrStakingEnded
	}
	if op.amount == 0 {
		return ErrInvalidAmount
	}
	total := op.state.total
	if total+op.amount < total {
		return ErrPoolCapExceeded
	}
	t := op.state.tunables
	if t.StakingMax > 0 && total+op.amount > t.StakingMax {
		return ErrPoolCapExceeded
	}
	p, err := op.state.position(op.source)
	if err != nil {
		return err
	}
	var staked uint64
	if p != nil {
		staked = p.Principal
	}
	if staked+op.amount < staked {
		return ErrUserCapExceeded
	}
	if t.MaxPerUser > 0 && staked+op.amount > t.MaxPerUser {
		return ErrUserCapExceeded
	}
	return nil
}

func (op *depositOp) Operation() error {
	p, err := op.state.mutatePosition(op.source)
	if err != nil {
		return err
	}
	// lock in the interest of the old principal before the weight changes
	op.settle(p)
	if p.StakedAt == 0 {
		p.StakedAt = op.now
	}
	p.Principal += op.amount
	op.state.addTotal(op.amount)

	if err := op.token.TransferFrom(op.source, common.PoolAddress, op.amount); err != nil {
		return fmt.Errorf("token transfer rejected: %v", err)
	}
	op.emit(notify.StakeDeposit, &notify.StakeEventMessage{Staker: op.source, Amount: op.amount})
	return nil
}

type withdrawOp struct {
	*baseOperation
}

func (op *withdrawOp) Validate() error {
	if err := op.checkNotPaused(); err != nil {
		return err
	}
	if op.amount == 0 {
		return ErrInvalidAmount
	}
	p, err := op.state.position(op.source)
	if err != nil {
		return err
	}
	if p == nil || op.amount > p.Principal {
		return ErrInvalidAmount
	}
	if !op.withdrawUnlocked(p) {
		return ErrLockupActive
	}
	return nil
}

func (op *withdrawOp) Operation() error {
	p, err := op.state.mutatePosition(op.source)
	if err != nil {
		return err
	}
	op.settle(p)
	reward := p.Unrealized
	p.Unrealized = 0
	p.Principal -= op.amount
	op.state.subTotal(op.amount)
	if p.Principal == 0 {
		p.Anchor = 0
		p.StakedAt = 0
	}

	payout := op.amount + reward
	if payout < op.amount {
		panic("withdraw payout overflow")
	}
	if err := op.token.Transfer(op.source, payout); err != nil {
		return fmt.Errorf("token transfer rejected: %v", err)
	}
	op.emit(notify.StakeWithdraw, &notify.StakeEventMessage{Staker: op.source, Amount: op.amount})
	if reward > 0 {
		op.emit(notify.RewardsClaim, &notify.StakeEventMessage{Staker: op.source, Amount: reward})
	}
	return nil
}

type withdrawAllOp struct {
	*baseOperation
}

func (op *withdrawAllOp) Validate() error {
	if err := op.checkNotPaused(); err != nil {
		return err
	}
	p, err := op.state.position(op.source)
	if err != nil {
		return err
	}
	if p == nil || p.Principal == 0 {
		return ErrInvalidAmount
	}
	if !op.withdrawUnlocked(p) {
		return ErrLockupActive
	}
	return nil
}

func (op *withdrawAllOp) Operation() error {
	p, err := op.state.mutatePosition(op.source)
	if err != nil {
		return err
	}
	op.settle(p)
	amount := p.Principal
	reward := p.Unrealized
	p.Principal = 0
	p.Unrealized = 0
	p.Anchor = 0
	p.StakedAt = 0
	op.state.subTotal(amount)

	payout := amount + reward
	if payout < amount {
		panic("withdraw payout overflow")
	}
	if err := op.token.Transfer(op.source, payout); err != nil {
		return fmt.Errorf("token transfer rejected: %v", err)
	}
	op.emit(notify.StakeWithdraw, &notify.StakeEventMessage{Staker: op.source, Amount: amount})
	if reward > 0 {
		op.emit(notify.RewardsClaim, &notify.StakeEventMessage{Staker: op.source, Amount: reward})
	}
	return nil
}

type claimRewardsOp struct {
	*baseOperation
}

func (op *claimRewardsOp) Validate() error {
	if err := op.checkNotPaused(); err != nil {
		return err
	}
	p, err := op.state.position(op.source)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrNothingToClaim
	}
	if pendingReward(p, op.state.window, op.cfg.FixedAPY, op.cfg.StakingDuration, op.now) == 0 {
		return ErrNothingToClaim
	}
	return nil
}

func (op *claimRewardsOp) Operation() error {
	p, err := op.state.mutatePosition(op.source)
	if err != nil {
		return err
	}
	op.settle(p)
	reward := p.Unrealized
	p.Unrealized = 0

	if err := op.token.Transfer(op.source, reward); err != nil {
		return fmt.Errorf("token transfer rejected: %v", err)
	}
	op.emit(notify.RewardsClaim, &notify.StakeEventMessage{Staker: op.source, Amount: reward})
	return nil
}

type startPeriodOp struct {
	*baseOperation
}

func (op *startPeriodOp) Validate() error {
	if err := op.checkOwner(); err != nil {
		return err
	}
	if err := op.checkNotPaused(); err != nil {
		return err
	}
	if op.state.window.started() {
		return ErrAlreadyStarted
	}
	return nil
}

func (op *startPeriodOp) Operation() error {
	w := Window{
		Start:     op.now,
		LockupEnd: op.now.Add(op.state.tunables.LockupDuration),
		End:       op.now.Add(op.cfg.StakingDuration),
	}
	op.state.setWindow(w)
	op.emit(notify.PeriodStart, &notify.PeriodStartMessage{Start: w.Start, LockupEnd: w.LockupEnd, End: w.End})
	return nil
}

type sweepResidualOp struct {
	*baseOperation
}

func (op *sweepResidualOp) Validate() error {
	if err := op.checkOwner(); err != nil {
		return err
	}
	if err := op.checkNotPaused(); err != nil {
		return err
	}
	w := op.state.window
	if !w.started() || op.now < w.End.Add(residualGracePeriod) {
		return ErrPeriodNotOver
	}
	return nil
}

// Operation sweeps the surplus above totalPrincipal to the owner. The
// principal owed to participants never leaves through this path
func (op *sweepResidualOp) Operation() error {
	balance := op.token.BalanceOf(common.PoolAddress)
	if balance <= op.state.total {
		return ErrNothingToClaim
	}
	surplus := balance - op.state.total

	if err := op.token.Transfer(op.cfg.Owner, surplus); err != nil {
		return fmt.Errorf("token transfer rejected: %v", err)
	}
	op.emit(notify.ResidualSweep, &notify.StakeEventMessage{Staker: op.cfg.Owner, Amount: surplus})
	return nil
}

type pauseOp struct {
	*baseOperation
}

func (op *pauseOp) Validate() error {
	if err := op.checkOwner(); err != nil {
		return err
	}
	if op.state.paused {
		return ErrPoolPaused
	}
	return nil
}

func (op *pauseOp) Operation() error {
	op.state.setPaused(true)
	op.emit(notify.PoolPaused, &notify.DummyMessage{})
	return nil
}

type unpauseOp struct {
	*baseOperation
}

func (op *unpauseOp) Validate() error {
	if err := op.checkOwner(); err != nil {
		return err
	}
	if !op.state.paused {
		return ErrNotPaused
	}
	return nil
}

func (op *unpauseOp) Operation() error {
	op.state.setPaused(false)
	op.emit(notify.PoolUnpaused, &notify.DummyMessage{})
	return nil
}

type setMaxPerUserOp struct {
	*baseOperation
}

func (op *setMaxPerUserOp) Validate() error {
	if err := op.checkOwner(); err != nil {
		return err
	}
	return op.checkNotPaused()
}

func (op *setMaxPerUserOp) Operation() error {
	t := op.state.tunables
	t.MaxPerUser = op.amount
	op.state.setTunables(t)
	return nil
}

type setPoolCapOp struct {
	*baseOperation
}

func (op *setPoolCapOp) Validate() error {
	if err := op.checkOwner(); err != nil {
		return err
	}
	return op.checkNotPaused()
}

func (op *setPoolCapOp) Operation() error {
	t := op.state.tunables
	t.StakingMax = op.amount
	op.state.setTunables(t)
	return nil
}

type setLockupDaysOp struct {
	*baseOperation
}

func (op *setLockupDaysOp) Validate() error {
	if err := op.checkOwner(); err != nil {
		return err
	}
	return op.checkNotPaused()
}

// Operation changes the lockup duration for all future eligibility checks
// immediately. The global window set at period start is untouched
func (op *setLockupDaysOp) Operation() error {
	t := op.state.tunables
	t.LockupDuration = int64(op.amount) * daySeconds
	op.state.setTunables(t)
	return nil
}
