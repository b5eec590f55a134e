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

package cli

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/rs/cors"

	"github.com/yieldvault/yieldvault/common"
	"github.com/yieldvault/yieldvault/core"
	"github.com/yieldvault/yieldvault/log"
)

// opMessage adapts an rpc request to the pool operation message
type opMessage struct {
	typ    core.OpType
	source common.Address
	value  uint64
}

func (m *opMessage) OpType() core.OpType        { return m.typ }
func (m *opMessage) Operator() *common.Address  { return &m.source }
func (m *opMessage) Amount() uint64             { return m.value }

// rpcServer handles the http api of a running node. Requests carry the
// acting address in the params, the dev setup does no signing
type rpcServer struct {
	pool   *core.PoolManager
	ledger *devLedger
}

func successResult(data interface{}) *Result {
	return &Result{Message: "success", Data: data, Status: 0}
}

func failResult(err error) *Result {
	return &Result{Message: err.Error(), Status: 1}
}

func (s *rpcServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "only POST allowed", http.StatusMethodNotAllowed)
		return
	}
	var req RPCReqObj
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("bad request: %v", err), http.StatusBadRequest)
		return
	}

	res := RPCResObj{Jsonrpc: "2.0", ID: req.ID}
	result, err := s.dispatch(req.Method, req.Params)
	if err != nil {
		log.RPCLogger.Warnf("method %v fail: %v", req.Method, err)
		res.Result = failResult(err)
	} else {
		log.RPCLogger.Infof("method %v ok", req.Method)
		res.Result = result
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(&res); err != nil {
		log.RPCLogger.Errorf("encode response fail: %v", err)
	}
}

func paramAddr(params []interface{}, i int) (common.Address, error) {
	if i >= len(params) {
		return common.Address{}, fmt.Errorf("missing address param %v", i)
	}
	s, ok := params[i].(string)
	if !ok {
		return common.Address{}, fmt.Errorf("param %v is not an address", i)
	}
	return common.HexToAddress(s), nil
}

func paramUint64(params []interface{}, i int) (uint64, error) {
	if i >= len(params) {
		return 0, fmt.Errorf("missing amount param %v", i)
	}
	switch v := params[i].(type) {
	case float64:
		if v < 0 {
			return 0, fmt.Errorf("param %v is negative", i)
		}
		return uint64(v), nil
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("param %v is not an amount: %v", i, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("param %v is not an amount", i)
	}
}

// execOp builds the operation message and runs it through the pool
func (s *rpcServer) execOp(typ core.OpType, params []interface{}, withAmount bool) (*Result, error) {
	source, err := paramAddr(params, 0)
	if err != nil {
		return nil, err
	}
	var amount uint64
	if withAmount {
		amount, err = paramUint64(params, 1)
		if err != nil {
			return nil, err
		}
	}
	if err := s.pool.ExecuteOperation(&opMessage{typ: typ, source: source, value: amount}); err != nil {
		return nil, err
	}
	return successResult(nil), nil
}

func (s *rpcServer) dispatch(method string, params []interface{}) (*Result, error) {
	switch method {
	case "Gyv_status":
		return successResult(s.status()), nil
	case "Gyv_position":
		addr, err := paramAddr(params, 0)
		if err != nil {
			return nil, err
		}
		return successResult(s.position(addr)), nil
	case "Gyv_recentOps":
		return successResult(s.recentOps()), nil

	case "Gyv_deposit":
		return s.execOp(core.OpTypeDeposit, params, true)
	case "Gyv_withdraw":
		return s.execOp(core.OpTypeWithdraw, params, true)
	case "Gyv_withdrawAll":
		return s.execOp(core.OpTypeWithdrawAll, params, false)
	case "Gyv_claim":
		return s.execOp(core.OpTypeClaimRewards, params, false)
	case "Gyv_start":
		return s.execOp(core.OpTypeStartPeriod, params, false)
	case "Gyv_sweep":
		return s.execOp(core.OpTypeSweepResidual, params, false)
	case "Gyv_pause":
		return s.execOp(core.OpTypePause, params, false)
	case "Gyv_unpause":
		return s.execOp(core.OpTypeUnpause, params, false)
	case "Gyv_setMaxPerUser":
		return s.execOp(core.OpTypeSetMaxPerUser, params, true)
	case "Gyv_setPoolCap":
		return s.execOp(core.OpTypeSetPoolCap, params, true)
	case "Gyv_setLockupDays":
		return s.execOp(core.OpTypeSetLockupDays, params, true)

	case "Gyv_approve":
		addr, err := paramAddr(params, 0)
		if err != nil {
			return nil, err
		}
		amount, err := paramUint64(params, 1)
		if err != nil {
			return nil, err
		}
		s.ledger.Approve(addr, amount)
		return successResult(nil), nil
	case "Gyv_faucet":
		addr, err := paramAddr(params, 0)
		if err != nil {
			return nil, err
		}
		amount, err := paramUint64(params, 1)
		if err != nil {
			return nil, err
		}
		s.ledger.Mint(addr, amount)
		return successResult(s.ledger.BalanceOf(addr)), nil

	default:
		return nil, fmt.Errorf("unknown method %v", method)
	}
}

func (s *rpcServer) status() *PoolStatus {
	w := s.pool.Window()
	t := s.pool.Tunables()
	return &PoolStatus{
		Owner:          s.pool.Owner().Hex(),
		Paused:         s.pool.Paused(),
		TotalStaked:    s.pool.TotalStaked(),
		WindowStart:    w.Start.Unix(),
		WindowLockup:   w.LockupEnd.Unix(),
		WindowEnd:      w.End.Unix(),
		StakingMax:     t.StakingMax,
		MaxPerUser:     t.MaxPerUser,
		LockupDuration: t.LockupDuration,
		FixedAPY:       s.pool.FixedAPY(),
	}
}

func (s *rpcServer) position(addr common.Address) *PositionView {
	return &PositionView{
		Address:     addr.Hex(),
		Staked:      s.pool.StakedOf(addr),
		Pending:     s.pool.PendingReward(addr),
		LockupStart: s.pool.LockupStartOf(addr).Unix(),
		Balance:     s.ledger.BalanceOf(addr),
	}
}

func (s *rpcServer) recentOps() []*OpRecordView {
	records := s.pool.RecentOps()
	views := make([]*OpRecordView, 0, len(records))
	for _, r := range records {
		views = append(views, &OpRecordView{
			Seq:    r.Seq,
			Type:   byte(r.Type),
			Source: r.Source.Hex(),
			Amount: r.Amount,
			Time:   r.Time.UTC().String(),
		})
	}
	return views
}

// startRPC exposes the pool api over http with permissive cors so a local
// dashboard can call it
func startRPC(addr string, port uint16, pool *core.PoolManager, ledger *devLedger) error {
	server := &rpcServer{pool: pool, ledger: ledger}
	handler := cors.AllowAll().Handler(server)

	endpoint := net.JoinHostPort(addr, strconv.Itoa(int(port)))
	ln, err := net.Listen("tcp", endpoint)
	if err != nil {
		return fmt.Errorf("rpc listen on %v fail: %v", endpoint, err)
	}
	log.RPCLogger.Infof("rpc serving at %v", endpoint)
	fmt.Printf("RPC serving at http://%v\n", endpoint)

	go func() {
		if err := http.Serve(ln, handler); err != nil {
			log.RPCLogger.Errorf("rpc serve fail: %v", err)
		}
	}()
	return nil
}
