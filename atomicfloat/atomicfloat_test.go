package atomicfloat

import (
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFloat64(t *testing.T) {
	Convey("Given a Float64 initialized to 1.5", t, func() {
		af := New(1.5)

		Convey("Then Read returns the initial value", func() {
			So(af.Read(), ShouldEqual, 1.5)
		})

		Convey("When Set succeeds", func() {
			ok := af.Set(2.5)

			Convey("Then it reports success and Read reflects the new value", func() {
				So(ok, ShouldBeTrue)
				So(af.Read(), ShouldEqual, 2.5)
			})
		})

		Convey("When RaiseTo is called with a lower value", func() {
			af.RaiseTo(0.5)

			Convey("Then the value is unchanged", func() {
				So(af.Read(), ShouldEqual, 1.5)
			})
		})

		Convey("When RaiseTo is called with a higher value", func() {
			af.RaiseTo(9)

			Convey("Then the value is raised", func() {
				So(af.Read(), ShouldEqual, 9)
			})
		})
	})

	Convey("Given many goroutines racing to raise the same gauge", t, func() {
		af := New(0)
		var wg sync.WaitGroup
		for i := 1; i <= 100; i++ {
			wg.Add(1)
			go func(v float64) {
				defer wg.Done()
				af.RaiseTo(v)
			}(float64(i))
		}
		wg.Wait()

		Convey("Then the gauge converges to the largest candidate", func() {
			So(af.Read(), ShouldEqual, 100)
		})
	})
}
