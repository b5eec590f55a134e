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
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/yieldvault/yieldvault/common"
)

// consoleCmd is one console command: name, a short help line, the rpc
// method behind it and the params it expects
type consoleCmd struct {
	name   string
	help   string
	method string
	params []string
}

var consoleCmds = []*consoleCmd{
	{"status", "show the pool overview", "Gyv_status", nil},
	{"position", "show a participant's stake", "Gyv_position", []string{"addr"}},
	{"recentops", "show the recent operations", "Gyv_recentOps", nil},
	{"deposit", "stake tokens", "Gyv_deposit", []string{"addr", "amount"}},
	{"withdraw", "withdraw part of the stake", "Gyv_withdraw", []string{"addr", "amount"}},
	{"withdrawall", "withdraw the whole stake", "Gyv_withdrawAll", []string{"addr"}},
	{"claim", "claim the accrued rewards", "Gyv_claim", []string{"addr"}},
	{"start", "open the staking period (owner)", "Gyv_start", []string{"addr"}},
	{"sweep", "sweep the residual surplus (owner)", "Gyv_sweep", []string{"addr"}},
	{"pause", "pause the pool (owner)", "Gyv_pause", []string{"addr"}},
	{"unpause", "unpause the pool (owner)", "Gyv_unpause", []string{"addr"}},
	{"setmaxperuser", "set the per-user cap (owner)", "Gyv_setMaxPerUser", []string{"addr", "amount"}},
	{"setpoolcap", "set the pool cap (owner)", "Gyv_setPoolCap", []string{"addr", "amount"}},
	{"setlockupdays", "set the lockup duration in days (owner)", "Gyv_setLockupDays", []string{"addr", "days"}},
	{"approve", "approve the pool to pull a deposit", "Gyv_approve", []string{"addr", "amount"}},
	{"faucet", "mint dev tokens", "Gyv_faucet", []string{"addr", "amount"}},
}

type console struct {
	endpoint    string
	showRequest bool
	reqID       uint
}

func output(msg ...interface{}) {
	fmt.Println(msg...)
}

func usage() {
	output("command list:")
	for _, cmd := range consoleCmds {
		output(fmt.Sprintf("  %-14v %v  %v", cmd.name, cmd.params, cmd.help))
	}
	output("  help")
	output("  exit")
}

// ConsoleInit starts the interactive console against a running node
func ConsoleInit(host string, port int, showRequest bool) error {
	if host == "" {
		host = "127.0.0.1"
	}
	c := &console{
		endpoint:    fmt.Sprintf("http://%v:%v", host, port),
		showRequest: showRequest,
	}
	c.loop()
	return nil
}

func (c *console) loop() {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(input string) (completions []string) {
		for _, cmd := range consoleCmds {
			if strings.HasPrefix(cmd.name, strings.ToLower(input)) {
				completions = append(completions, cmd.name)
			}
		}
		return
	})

	for {
		input, err := line.Prompt(fmt.Sprintf("gyv:%v > ", c.endpoint))
		if err != nil {
			if err == liner.ErrPromptAborted {
				line.Close()
				os.Exit(0)
			}
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		line.AppendHistory(input)

		fields := strings.Fields(input)
		if len(fields) == 0 {
			continue
		}
		name := strings.ToLower(fields[0])
		args := fields[1:]

		switch name {
		case "exit", "quit":
			output("bye")
			line.Close()
			os.Exit(0)
		case "help":
			usage()
		default:
			cmd := findConsoleCmd(name)
			if cmd == nil {
				output("unknown command, try help")
				continue
			}
			if len(args) != len(cmd.params) {
				output(fmt.Sprintf("usage: %v %v", cmd.name, cmd.params))
				continue
			}
			c.request(cmd, args)
		}
	}
}

func findConsoleCmd(name string) *consoleCmd {
	for _, cmd := range consoleCmds {
		if cmd.name == name {
			return cmd
		}
	}
	return nil
}

func (c *console) request(cmd *consoleCmd, args []string) {
	params := make([]interface{}, 0, len(args))
	for i, arg := range args {
		// the first param of every mutating command is the address
		if strings.HasPrefix(arg, "0x") || cmd.params[i] == "addr" {
			params = append(params, arg)
			continue
		}
		n, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			// amounts also accept denominated form, e.g. 5kuv or 1vlt
			n, err = common.ParseCoin(arg)
			if err != nil {
				output(fmt.Sprintf("bad %v: %v", cmd.params[i], arg))
				return
			}
		}
		params = append(params, n)
	}

	c.reqID++
	req := RPCReqObj{
		Method:  cmd.method,
		Params:  params,
		Jsonrpc: "2.0",
		ID:      c.reqID,
	}
	body, err := json.Marshal(&req)
	if err != nil {
		output("marshal request fail:", err)
		return
	}
	if c.showRequest {
		output("request:", string(body))
	}

	resp, err := http.Post(c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		output("request fail:", err)
		return
	}
	defer resp.Body.Close()

	var res RPCResObj
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		output("decode response fail:", err)
		return
	}
	if res.Error != nil {
		output("error:", res.Error.Message)
		return
	}
	if res.Result == nil {
		output("empty response")
		return
	}
	if !res.Result.IsSuccess() {
		output("fail:", res.Result.Message)
		return
	}
	if res.Result.Data == nil {
		output("ok")
		return
	}
	pretty, err := json.MarshalIndent(res.Result.Data, "", "  ")
	if err != nil {
		output(res.Result.Data)
		return
	}
	output(string(pretty))
}
