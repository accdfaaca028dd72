package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		So(SetLevelString("info"), ShouldBeNil)
		var buf bytes.Buffer
		log := New(&buf)
		ctx := context.Background()

		Convey("Info records carry fields and the caller", func() {
			log.Info(ctx, "company created", String("code", "apple"), Int("rows", 1))
			out := buf.String()
			So(out, ShouldContainSubstring, "company created")
			So(out, ShouldContainSubstring, "code=apple")
			So(out, ShouldContainSubstring, "rows=1")
			So(out, ShouldContainSubstring, "logger_test.go")
		})

		Convey("Named loggers tag their records", func() {
			log.Named("http").Error(ctx, "boom", Error(errors.New("db down")))
			out := buf.String()
			So(out, ShouldContainSubstring, "logger=http")
			So(out, ShouldContainSubstring, "db down")
		})

		Convey("Debug is suppressed at info level", func() {
			log.Debug(ctx, "noisy")
			So(buf.String(), ShouldBeEmpty)
		})

		Convey("Unknown levels are rejected", func() {
			So(SetLevelString("loud"), ShouldNotBeNil)
		})
	})
}
