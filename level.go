// The MIT License (MIT)
//
// Copyright (c) 2026 The Voile Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package voile

import (
	"fortio.org/safecast"

	"github.com/voile-lang/voile/core"
)

// LevelPolicy computes the universe levels which the checking rules leave open.
type LevelPolicy interface {
	// Level of the empty type when it is checked against Type(level).
	BotLevel(info core.Info, level core.Level) (core.Level, error)
	// Validate a dependent type former which was checked against Type(level).
	DtLevel(info core.Info, dt *core.Dt, level core.Level) error
}

// DefaultLevels grades the empty type one level below its universe and places no
// constraint on the levels of dependent type formers.
type DefaultLevels struct{}

func (DefaultLevels) BotLevel(info core.Info, level core.Level) (core.Level, error) {
	lower, err := safecast.Conv[core.Level](int64(level) - 1)
	if err != nil {
		return 0, &LevelMismatch{Info: info, Small: 1, Big: level}
	}
	return lower, nil
}

func (DefaultLevels) DtLevel(core.Info, *core.Dt, core.Level) error { return nil }

// StrictLevels behaves like DefaultLevels but also requires a parameter type which is
// itself a universe to live strictly below the universe of the dependent type.
type StrictLevels struct {
	DefaultLevels
}

func (StrictLevels) DtLevel(info core.Info, dt *core.Dt, level core.Level) error {
	if u, ok := dt.Closure.ParamType.(*core.Type); ok && u.Level >= level {
		small, err := nextLevel(u.Level)
		if err != nil {
			return err
		}
		return &LevelMismatch{Info: info, Small: small, Big: level}
	}
	return nil
}

// nextLevel returns level+1, failing when it cannot be represented.
func nextLevel(level core.Level) (core.Level, error) {
	next, err := safecast.Conv[core.Level](uint64(level) + 1)
	if err != nil {
		return 0, &Unsupported{What: "universe level " + levelString(level) + "+1"}
	}
	return next, nil
}
