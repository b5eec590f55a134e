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
	"fmt"
	"os"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/yieldvault/yieldvault/common"
	"github.com/yieldvault/yieldvault/core"
	"github.com/yieldvault/yieldvault/log"
	"github.com/yieldvault/yieldvault/middleware"
	"github.com/yieldvault/yieldvault/storage/pooldb"
)

// Gyv is the node entry. serve runs the pool with its rpc surface, console
// attaches to a running node
type Gyv struct {
	inited bool
	pool   *core.PoolManager
	ledger *devLedger
	db     *pooldb.LDBDatabase
}

func NewGyv() *Gyv {
	return &Gyv{}
}

// serve initializes the middleware, the pool ledger and the rpc surface
func (gyv *Gyv) serve(cfg *nodeConfig) error {
	if err := middleware.InitMiddleware(); err != nil {
		return err
	}

	poolCfg, err := poolConfig()
	if err != nil {
		return err
	}

	db, err := pooldb.NewLDBDatabase(databaseDir(), nil)
	if err != nil {
		return fmt.Errorf("open pool database fail: %v", err)
	}
	gyv.db = db

	gyv.ledger = newDevLedger()
	if cfg.faucetAmount > 0 {
		gyv.ledger.Mint(common.PoolAddress, cfg.faucetAmount)
	}

	pool, err := core.NewPoolManager(poolCfg, db, gyv.ledger, nil)
	if err != nil {
		return err
	}
	gyv.pool = pool

	if cfg.rpcEnable() {
		if err := startRPC(cfg.rpcAddr, cfg.rpcPort, gyv.pool, gyv.ledger); err != nil {
			return err
		}
	}
	gyv.inited = true
	fmt.Printf("pool owner: %v\n", poolCfg.Owner.Hex())
	return nil
}

func (gyv *Gyv) exit(ctrlC <-chan bool, quit chan<- bool) {
	<-ctrlC
	fmt.Println("exiting...")
	if gyv.db != nil {
		gyv.db.Close()
	}
	if gyv.inited {
		quit <- true
	} else {
		os.Exit(0)
	}
}

func (gyv *Gyv) Run() {
	ctrlC := Signals()
	quitChan := make(chan bool)
	go gyv.exit(ctrlC, quitChan)

	app := kingpin.New("gyv", "A fixed-yield staking pool node.")
	app.HelpFlag.Short('h')
	configFile := app.Flag("config", "Config file").Default("yv.ini").String()

	// Version
	versionCmd := app.Command("version", "show gyv version")

	// Serve
	serveCmd := app.Command("serve", "start the pool node")
	rpcAddr := serveCmd.Flag("rpcaddr", "rpc service host").Short('r').Default("0.0.0.0").String()
	rpcPort := serveCmd.Flag("rpcport", "rpc service port").Short('p').Default("8201").Uint16()
	faucet := serveCmd.Flag("faucet", "seed the vault with dev reward funding").Default("0").Uint64()

	// Console
	consoleCmd := app.Command("console", "start gyv console")
	showRequest := consoleCmd.Flag("show", "show the request json").Short('v').Bool()
	remoteHost := consoleCmd.Flag("host", "the node host address to connect").Short('i').String()
	remotePort := consoleCmd.Flag("port", "the node host port to connect").Short('p').Default("8201").Int()

	// Clear
	clearCmd := app.Command("clear", "clear the local pool database")

	command, err := app.Parse(os.Args[1:])
	if err != nil {
		kingpin.Fatalf("%s, try --help", err)
	}

	common.InitConf(*configFile)

	switch command {
	case versionCmd.FullCommand():
		fmt.Println("gyv Version:", common.GyvVersion)
		os.Exit(0)
	case consoleCmd.FullCommand():
		err := ConsoleInit(*remoteHost, *remotePort, *showRequest)
		if err != nil {
			fmt.Println(err.Error())
		}
	case serveCmd.FullCommand():
		cfg := &nodeConfig{
			rpcAddr:      *rpcAddr,
			rpcPort:      *rpcPort,
			faucetAmount: *faucet,
		}
		if err := gyv.serve(cfg); err != nil {
			fmt.Println(err.Error())
			log.DefaultLogger.Error(err.Error())
			return
		}
		<-quitChan
		fmt.Println("quit...")
	case clearCmd.FullCommand():
		if err := clearPoolData(); err != nil {
			fmt.Println(err.Error())
		} else {
			fmt.Println("clear data success")
		}
	}
}

func clearPoolData() error {
	dir := databaseDir()
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	return os.RemoveAll(dir)
}
