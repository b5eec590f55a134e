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

package common

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Token denominations. All accounting is done in the smallest unit (UV);
// one whole vault token (VLT) is 1e9 UV.
const (
	UV  uint64 = 1
	KUV        = 1000
	MUV        = 1000000
	VLT        = 1000000000
)

var (
	ErrEmptyStr   = fmt.Errorf("empty string")
	ErrIllegalStr = fmt.Errorf("illegal amount string")
)

var re, _ = regexp.Compile("^([0-9]+)(uv|kuv|muv|vlt)$")

// ParseCoin parses string to amount
func ParseCoin(s string) (uint64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, ErrEmptyStr
	}

	arr := re.FindAllStringSubmatch(s, -1)
	if arr == nil || len(arr) == 0 {
		return 0, ErrIllegalStr
	}
	ret := arr[0]
	if ret == nil || len(ret) != 3 {
		return 0, ErrIllegalStr
	}
	num, err := strconv.Atoi(ret[1])
	if err != nil {
		return 0, err
	}
	unit := UV
	switch ret[2] {
	case "kuv":
		unit = KUV
	case "muv":
		unit = MUV
	case "vlt":
		unit = VLT
	}
	return uint64(num) * unit, nil
}

func VLT2UV(v uint64) uint64 {
	return v * VLT
}

func UV2VLT(v uint64) float64 {
	return float64(v) / float64(VLT)
}
