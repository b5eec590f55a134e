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

// Package middleware provides important functionality such as event bus,
// time zone independent service and ticker schedule
package middleware

import (
	"github.com/yieldvault/yieldvault/middleware/notify"
	"github.com/yieldvault/yieldvault/middleware/time"
)

func InitMiddleware() error {
	notify.BUS = notify.NewBus()
	time.InitTimeSync()
	return nil
}
