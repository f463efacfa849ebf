package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) Errorf(template string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf(template, args...))
}

func (l *recordingLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages)
}

func (l *recordingLogger) first() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.messages) == 0 {
		return ""
	}
	return l.messages[0]
}

func TestScheduler(t *testing.T) {
	Convey("Given a Scheduler", t, func() {
		log := &recordingLogger{}

		Convey("New function", func() {
			scheduler := New(log)

			Convey("It should create a new scheduler successfully", func() {
				So(scheduler, ShouldNotBeNil)
				So(scheduler.cron, ShouldNotBeNil)
			})
		})

		Convey("AddJob function", func() {
			scheduler := New(log)

			Convey("When adding a job with a valid cron spec", func() {
				var mu sync.Mutex
				executed := false
				job := func(ctx context.Context) error {
					mu.Lock()
					defer mu.Unlock()
					executed = true
					return nil
				}

				err := scheduler.AddJob("* * * * * *", job) // Every second

				Convey("It should add and run the job", func() {
					So(err, ShouldBeNil)

					scheduler.Start()
					time.Sleep(2 * time.Second)
					scheduler.Stop()

					mu.Lock()
					defer mu.Unlock()
					So(executed, ShouldBeTrue)
					So(log.count(), ShouldEqual, 0)
				})
			})

			Convey("When the job keeps failing", func() {
				job := func(ctx context.Context) error {
					return errors.New("boom")
				}

				err := scheduler.AddJob("* * * * * *", job)

				Convey("It should log the failure and keep running", func() {
					So(err, ShouldBeNil)

					scheduler.Start()
					time.Sleep(2 * time.Second)
					scheduler.Stop()

					So(log.count(), ShouldBeGreaterThanOrEqualTo, 1)
					So(log.first(), ShouldContainSubstring, "boom")
				})
			})

			Convey("When adding a job with an invalid cron spec", func() {
				job := func(ctx context.Context) error { return nil }
				err := scheduler.AddJob("invalid spec", job)

				Convey("It should return an error", func() {
					So(err, ShouldNotBeNil)
				})
			})
		})
	})
}
