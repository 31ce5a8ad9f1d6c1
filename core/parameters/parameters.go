/*
Package parameters holds typesetting registers, the configuration of the
line breaking and justification engine.

Registers are organized in groups, comparable to TeX's grouping: values pushed
inside a group are visible until the group ends, shadowing the base values.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package parameters

import (
	"github.com/npillmayer/textblock/core/dimen"
)

type TypesettingParameter int

const (
	none TypesettingParameter = iota
	P_MAXLINES
	P_MINJUSTIFYWORDS
	P_JUSTIFY
	P_LINEBREAKER
	P_BASELINESKIP
	P_PAGEMARGIN
	P_STOPPER
)

// Names of the line breakers selectable with P_LINEBREAKER.
const (
	OptimalBreaker  = "optimal"
	FirstFitBreaker = "firstfit"
)

type ParameterGroup struct {
	params map[TypesettingParameter]interface{}
	level  int
	next   *ParameterGroup
}

type TypesettingRegisters struct {
	base       [P_STOPPER]interface{}
	groups     *ParameterGroup
	grouplevel int
}

// ----------------------------------------------------------------------

func NewTypesettingRegisters() *TypesettingRegisters {
	regs := &TypesettingRegisters{}
	initParameters(&regs.base)
	return regs
}

func initParameters(p *[P_STOPPER]interface{}) {
	p[P_MAXLINES] = 1000              // an int; upper bound of lines per block
	p[P_MINJUSTIFYWORDS] = 3          // an int; lines with fewer words keep nominal spacing
	p[P_JUSTIFY] = true               // a bool
	p[P_LINEBREAKER] = OptimalBreaker // a string
	p[P_BASELINESKIP] = dimen.Px(20)  // dimension
	p[P_PAGEMARGIN] = dimen.Px(10)    // dimension
}

func (regs *TypesettingRegisters) Begingroup() {
	regs.grouplevel++
}

func (regs *TypesettingRegisters) Endgroup() {
	if regs.grouplevel > 0 {
		if regs.groups != nil && regs.groups.level == regs.grouplevel {
			regs.groups = regs.groups.next
		}
		regs.grouplevel--
	}
}

func (regs *TypesettingRegisters) Push(key TypesettingParameter, value interface{}) {
	if key <= none || key >= P_STOPPER {
		panic("parameter key outside range of typesetting parameters")
	}
	if regs.grouplevel > 0 {
		var g *ParameterGroup
		if regs.groups == nil || regs.groups.level < regs.grouplevel {
			g = &ParameterGroup{}
			g.params = make(map[TypesettingParameter]interface{})
			g.level = regs.grouplevel
			g.next = regs.groups
			regs.groups = g
		} else {
			g = regs.groups
		}
		g.params[key] = value
	} else {
		regs.base[key] = value
	}
}

func (regs *TypesettingRegisters) Get(key TypesettingParameter) interface{} {
	if key <= none || key >= P_STOPPER {
		panic("parameter key outside range of typesetting parameters")
	}
	var value interface{}
	if regs.grouplevel > 0 {
		for g := regs.groups; g != nil; g = g.next {
			value = g.params[key]
			if value != nil {
				break
			}
		}
	}
	if value == nil {
		value = regs.base[key]
	}
	return value
}

func (regs *TypesettingRegisters) S(key TypesettingParameter) string {
	return regs.Get(key).(string)
}

func (regs *TypesettingRegisters) N(key TypesettingParameter) int {
	return regs.Get(key).(int)
}

func (regs *TypesettingRegisters) B(key TypesettingParameter) bool {
	return regs.Get(key).(bool)
}

func (regs *TypesettingRegisters) D(key TypesettingParameter) dimen.Px {
	return regs.Get(key).(dimen.Px)
}

// OrDefault returns regs, or a fresh set of default registers if regs is nil.
func OrDefault(regs *TypesettingRegisters) *TypesettingRegisters {
	if regs == nil {
		return NewTypesettingRegisters()
	}
	return regs
}
