package program

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestExecute(t *testing.T) {
	Convey("Given a program with a single internal ADD", t, func() {
		p := New(1, 2, 0)
		p.Registers[0] = 2
		p.Registers[1] = 3
		p.Instructions[0] = Instruction{Op: Add, SourceIndex: 1, TargetIndex: 0, Mode: Internal}

		Convey("When executed with no external input", func() {
			Execute(p, nil, 1)

			Convey("Then the target register accumulates the source", func() {
				So(p.Registers[0], ShouldEqual, 5)
			})
		})
	})

	Convey("Given a program reading an external input with a non-unit factor", t, func() {
		p := New(1, 1, 0)
		p.Registers[0] = 10
		p.Instructions[0] = Instruction{Op: Sub, SourceIndex: 0, TargetIndex: 0, Mode: External}

		Convey("When executed", func() {
			Execute(p, []float64{4}, 2.5)

			Convey("Then the external value is scaled by externalFactor before use", func() {
				So(p.Registers[0], ShouldEqual, 0)
			})
		})
	})

	Convey("Given a DIV2 instruction", t, func() {
		p := New(1, 1, 0)
		p.Registers[0] = 9
		p.Instructions[0] = Instruction{Op: Div2, SourceIndex: 99, TargetIndex: 0, Mode: Internal}

		Convey("When executed", func() {
			Execute(p, nil, 1)

			Convey("Then the target is halved regardless of SourceIndex", func() {
				So(p.Registers[0], ShouldEqual, 4.5)
			})
		})
	})

	Convey("Given out-of-range indices", t, func() {
		p := New(1, 2, 0)
		p.Registers[0] = 1
		p.Registers[1] = 10
		p.Instructions[0] = Instruction{Op: Add, SourceIndex: 5, TargetIndex: 4, Mode: Internal}

		Convey("When executed", func() {
			Execute(p, nil, 1)

			Convey("Then indices are normalized by modulo against register length", func() {
				// TargetIndex 4 % 2 == 0, SourceIndex 5 % 2 == 1
				So(p.Registers[0], ShouldEqual, 11)
			})
		})
	})

	Convey("Given an instruction that produces NaN", t, func() {
		p := New(2, 1, 0)
		p.Registers[0] = 0
		p.Instructions[0] = Instruction{Op: Mul, SourceIndex: 0, TargetIndex: 0, Mode: External}
		p.Instructions[1] = Instruction{Op: Add, SourceIndex: 0, TargetIndex: 0, Mode: Internal}

		Convey("When executed with an infinite external input", func() {
			Execute(p, []float64{math.Inf(1)}, 1)

			Convey("Then NaN propagates uncorrected through later instructions", func() {
				So(math.IsNaN(p.Registers[0]), ShouldBeTrue)
			})
		})
	})

	Convey("Given no external inputs available", t, func() {
		p := New(1, 1, 0)
		p.Registers[0] = 3
		p.Instructions[0] = Instruction{Op: Add, SourceIndex: 0, TargetIndex: 0, Mode: External}

		Convey("When executed with an empty input vector", func() {
			Execute(p, nil, 1)

			Convey("Then the external read is skipped and the register is unaffected", func() {
				So(p.Registers[0], ShouldEqual, 3)
			})
		})
	})
}

func TestArgmax(t *testing.T) {
	Convey("Given registers with a unique maximum", t, func() {
		regs := []float64{1, 4, 2}

		Convey("Then Argmax returns its index", func() {
			So(Argmax(regs, 3), ShouldEqual, 1)
		})
	})

	Convey("Given registers with a tie", t, func() {
		regs := []float64{4, 4, 1}

		Convey("Then Argmax returns the lowest tied index", func() {
			So(Argmax(regs, 3), ShouldEqual, 0)
		})
	})
}
