package logger

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given the Logger package", t, func() {
		Convey("New function", func() {
			Convey("When creating a logger with console output only", func() {
				logger, err := New("info", "")

				Convey("It should create a logger successfully", func() {
					So(err, ShouldBeNil)
					So(logger, ShouldNotBeNil)
					So(func() { logger.Infof("test %s", "log") }, ShouldNotPanic)
				})
			})

			Convey("When creating a logger with a log file", func() {
				tempDir := t.TempDir()
				logFile := filepath.Join(tempDir, "logs", "pgvault.log")

				logger, err := New("debug", logFile)

				Convey("It should create the log directory and write to the file", func() {
					So(err, ShouldBeNil)
					So(logger, ShouldNotBeNil)

					logger.Debugf("test debug log")
					logger.Sync()

					_, err := os.Stat(logFile)
					So(err, ShouldBeNil)

					logger.Close()
				})
			})

			Convey("When the log level is unknown", func() {
				logger, err := New("chatty", "")

				Convey("It should fall back to info", func() {
					So(err, ShouldBeNil)
					So(logger, ShouldNotBeNil)
					So(func() { logger.Infof("still works") }, ShouldNotPanic)
				})
			})

			Convey("When the log directory cannot be created", func() {
				tempDir := t.TempDir()
				blocker := filepath.Join(tempDir, "blocker")
				So(os.WriteFile(blocker, []byte("x"), 0644), ShouldBeNil)

				// A path component that is a regular file makes MkdirAll fail
				// regardless of privileges.
				logger, err := New("info", filepath.Join(blocker, "sub", "pgvault.log"))

				Convey("It should return an error", func() {
					So(err, ShouldNotBeNil)
					So(err.Error(), ShouldContainSubstring, "failed to create log directory")
					So(logger, ShouldBeNil)
				})
			})
		})

		Convey("Close method", func() {
			Convey("When closing a logger with console output only", func() {
				logger, err := New("info", "")
				So(err, ShouldBeNil)

				Convey("It should close without panic", func() {
					So(func() { logger.Close() }, ShouldNotPanic)
				})
			})
		})
	})
}
