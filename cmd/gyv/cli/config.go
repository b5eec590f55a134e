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
	"github.com/yieldvault/yieldvault/common"
	"github.com/yieldvault/yieldvault/core"
)

const (
	// Section is default section configuration
	Section = "gyv"
	// ini configuration file pool section
	poolSection = "pool"
	// The key below the pool section
	databaseKey = "database"
)

const defaultDatabase = "d_pool"

// nodeConfig is the serve command setup merged from flags and the ini file
type nodeConfig struct {
	rpcAddr string
	rpcPort uint16

	// dev ledger seeding
	faucetAmount uint64
}

func (cfg *nodeConfig) rpcEnable() bool {
	return cfg.rpcPort > 0
}

// poolConfig reads the pool parameters from the pool section of the ini
// file. Durations are configured in days
func poolConfig() (*core.PoolConfig, error) {
	sec := common.GlobalConf.GetSectionManager(poolSection)

	owner := sec.GetString("owner", "")
	if owner == "" {
		return nil, ErrorOwnerUnset
	}

	day := int64(24 * 60 * 60)
	cfg := &core.PoolConfig{
		Owner:           common.HexToAddress(owner),
		FixedAPY:        uint64(sec.GetInt("fixed_apy", 50)),
		StakingDuration: int64(sec.GetInt("staking_duration_days", 180)) * day,
		LockupDuration:  int64(sec.GetInt("lockup_days", 90)) * day,
		StakingMax:      uint64(sec.GetInt("staking_max", 0)),
		MaxPerUser:      uint64(sec.GetInt("max_per_user", 0)),
	}
	return cfg, nil
}

func databaseDir() string {
	return common.GlobalConf.GetString(poolSection, databaseKey, defaultDatabase)
}
