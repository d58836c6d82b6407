package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/mergington/internal/config"
	"github.com/okian/mergington/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	_ = logger.SetLevelString("error")
}

const seedYAML = `activities:
  - name: Robotics Club
    description: Build and program robots
    schedule: Thursdays, 3:30 PM - 5:00 PM
    max_participants: 10
    participants:
      - ada@mergington.edu
`

func TestNewService(t *testing.T) {
	convey.Convey("Given configuration", t, func() {
		ctx := context.Background()

		convey.Convey("When no seed file is configured", func() {
			svc, err := newService(ctx, config.New())

			convey.Convey("Then the built-in activities are served", func() {
				convey.So(err, convey.ShouldBeNil)
				all, err := svc.ListActivities(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(all, convey.ShouldContainKey, "Chess Club")
				convey.So(all, convey.ShouldContainKey, "Programming Class")
			})
		})

		convey.Convey("When a seed file is configured", func() {
			path := filepath.Join(t.TempDir(), "seed.yaml")
			convey.So(os.WriteFile(path, []byte(seedYAML), 0o600), convey.ShouldBeNil)
			cfg := config.New()
			cfg.SeedFile = path

			svc, err := newService(ctx, cfg)

			convey.Convey("Then it replaces the built-in table", func() {
				convey.So(err, convey.ShouldBeNil)
				all, err := svc.ListActivities(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(all), convey.ShouldEqual, 1)
				convey.So(all["Robotics Club"].Participants, convey.ShouldResemble, []string{"ada@mergington.edu"})
			})
		})

		convey.Convey("When the seed file is missing", func() {
			cfg := config.New()
			cfg.SeedFile = filepath.Join(t.TempDir(), "absent.yaml")

			_, err := newService(ctx, cfg)

			convey.Convey("Then construction fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestNewMux(t *testing.T) {
	convey.Convey("Given the assembled mux", t, func() {
		ctx := context.Background()
		cfg := config.New()
		svc, err := newService(ctx, cfg)
		convey.So(err, convey.ShouldBeNil)
		mux := newMux(ctx, svc, cfg)

		get := func(path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
			return w
		}

		convey.Convey("Then every route group answers", func() {
			convey.So(get("/").Code, convey.ShouldEqual, http.StatusTemporaryRedirect)
			convey.So(get("/static/").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api-docs").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/activities").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/healthz").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/metrics").Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("And the API works end to end", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/activities/Chess%20Club/signup?email=e2e@mergington.edu", http.NoBody)
			mux.ServeHTTP(w, req)
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)

			w = httptest.NewRecorder()
			req = httptest.NewRequest(http.MethodPost, "/activities/Chess%20Club/unregister",
				strings.NewReader(`{"participant":"e2e@mergington.edu"}`))
			mux.ServeHTTP(w, req)
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
		})
	})
}

func TestUpdateSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("Then a single update does not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("And the loop exits when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan struct{})
			go func() {
				startSystemMetricsUpdater(ctx)
				close(done)
			}()
			cancel()
			<-done
			convey.So(ctx.Err(), convey.ShouldNotBeNil)
		})
	})
}
