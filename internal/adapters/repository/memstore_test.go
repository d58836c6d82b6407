package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/mergington/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	s, err := NewMemoryStore(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestMemoryStore_Seed(t *testing.T) {
	Convey("Given a store with the default seed", t, func() {
		ctx := context.Background()
		s := newTestStore(t)

		Convey("Then every default activity is listed", func() {
			all, err := s.List(ctx)
			So(err, ShouldBeNil)
			So(all, ShouldContainKey, "Chess Club")
			So(all, ShouldContainKey, "Programming Class")
			So(len(all), ShouldEqual, len(DefaultCatalog()))
			So(s.Count(ctx), ShouldEqual, len(DefaultCatalog()))
		})

		Convey("When the listed snapshot is mutated", func() {
			all, _ := s.List(ctx)
			chess := all["Chess Club"]
			chess.Participants[0] = "intruder@mergington.edu"
			delete(all, "Programming Class")

			Convey("Then the store is unaffected", func() {
				a, err := s.Get(ctx, "Chess Club")
				So(err, ShouldBeNil)
				So(a.Participants[0], ShouldEqual, "michael@mergington.edu")
				So(s.Count(ctx), ShouldEqual, len(DefaultCatalog()))
			})
		})
	})

	Convey("Given a custom seed", t, func() {
		seed := model.Catalog{
			"Robotics": {Description: "Build robots", Schedule: "Mondays", MaxParticipants: 5, Participants: []string{}},
		}

		Convey("When creating the store", func() {
			s, err := NewMemoryStore(context.Background(), WithSeed(seed))

			Convey("Then only the custom activities exist", func() {
				So(err, ShouldBeNil)
				So(s.Count(context.Background()), ShouldEqual, 1)
				_, err := s.Get(context.Background(), "Chess Club")
				So(errors.Is(err, model.ErrActivityNotFound), ShouldBeTrue)
			})
		})
	})

	Convey("Given an invalid seed", t, func() {
		seed := model.Catalog{
			"Broken": {Description: "x", Schedule: "y", MaxParticipants: 0},
		}

		Convey("When creating the store", func() {
			s, err := NewMemoryStore(context.Background(), WithSeed(seed))

			Convey("Then it should fail validation", func() {
				So(s, ShouldBeNil)
				So(errors.Is(err, ErrInvalidSeed), ShouldBeTrue)
			})
		})
	})
}

func TestMemoryStore_AddParticipant(t *testing.T) {
	Convey("Given a seeded store", t, func() {
		ctx := context.Background()
		s := newTestStore(t)

		Convey("When adding a new participant", func() {
			err := s.AddParticipant(ctx, "Chess Club", "test@mergington.edu")

			Convey("Then it is appended at the end", func() {
				So(err, ShouldBeNil)
				a, _ := s.Get(ctx, "Chess Club")
				So(a.Participants, ShouldResemble, []string{
					"michael@mergington.edu", "daniel@mergington.edu", "test@mergington.edu",
				})
			})
		})

		Convey("When adding the same participant twice", func() {
			So(s.AddParticipant(ctx, "Chess Club", "dup@mergington.edu"), ShouldBeNil)
			err := s.AddParticipant(ctx, "Chess Club", "dup@mergington.edu")

			Convey("Then the second call reports a duplicate and changes nothing", func() {
				So(errors.Is(err, model.ErrAlreadySignedUp), ShouldBeTrue)
				a, _ := s.Get(ctx, "Chess Club")
				So(len(a.Participants), ShouldEqual, 3)
			})
		})

		Convey("When adding to an unknown activity", func() {
			err := s.AddParticipant(ctx, "Nonexistent Club", "test@mergington.edu")

			Convey("Then it reports not found", func() {
				So(errors.Is(err, model.ErrActivityNotFound), ShouldBeTrue)
				So(s.Count(ctx), ShouldEqual, len(DefaultCatalog()))
			})
		})

		Convey("When a snapshot was taken before a signup", func() {
			before, _ := s.Get(ctx, "Chess Club")
			So(s.AddParticipant(ctx, "Chess Club", "later@mergington.edu"), ShouldBeNil)

			Convey("Then the earlier snapshot does not see it", func() {
				So(before.Has("later@mergington.edu"), ShouldBeFalse)
			})
		})
	})
}

func TestMemoryStore_RemoveParticipant(t *testing.T) {
	Convey("Given a seeded store", t, func() {
		ctx := context.Background()
		s := newTestStore(t)

		Convey("When removing an enrolled participant", func() {
			err := s.RemoveParticipant(ctx, "Chess Club", "michael@mergington.edu")

			Convey("Then the rest of the roster keeps its order", func() {
				So(err, ShouldBeNil)
				a, _ := s.Get(ctx, "Chess Club")
				So(a.Participants, ShouldResemble, []string{"daniel@mergington.edu"})
			})
		})

		Convey("When removing someone who never signed up", func() {
			err := s.RemoveParticipant(ctx, "Chess Club", "nonexistent@mergington.edu")

			Convey("Then it reports participant not found", func() {
				So(errors.Is(err, model.ErrParticipantNotFound), ShouldBeTrue)
				a, _ := s.Get(ctx, "Chess Club")
				So(len(a.Participants), ShouldEqual, 2)
			})
		})

		Convey("When removing from an unknown activity", func() {
			err := s.RemoveParticipant(ctx, "Nonexistent Club", "michael@mergington.edu")

			Convey("Then it reports activity not found", func() {
				So(errors.Is(err, model.ErrActivityNotFound), ShouldBeTrue)
			})
		})

		Convey("When signing up and then removing", func() {
			before, _ := s.Get(ctx, "Programming Class")
			So(s.AddParticipant(ctx, "Programming Class", "roundtrip@mergington.edu"), ShouldBeNil)
			So(s.RemoveParticipant(ctx, "Programming Class", "roundtrip@mergington.edu"), ShouldBeNil)

			Convey("Then the roster is back to where it started", func() {
				after, _ := s.Get(ctx, "Programming Class")
				So(after.Participants, ShouldResemble, before.Participants)
			})
		})
	})
}

func TestMemoryStore_Concurrency(t *testing.T) {
	Convey("Given a seeded store", t, func() {
		ctx := context.Background()
		s := newTestStore(t)

		Convey("When many distinct students sign up concurrently", func() {
			const n = 100
			var wg sync.WaitGroup
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_ = s.AddParticipant(ctx, "Gym Class", fmt.Sprintf("student%d@mergington.edu", i))
				}(i)
			}
			wg.Wait()

			Convey("Then no signup is lost", func() {
				a, _ := s.Get(ctx, "Gym Class")
				So(len(a.Participants), ShouldEqual, n+2)
			})
		})

		Convey("When the same student signs up concurrently", func() {
			const n = 50
			var (
				wg sync.WaitGroup
				mu sync.Mutex
				ok int
			)
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if err := s.AddParticipant(ctx, "Math Club", "race@mergington.edu"); err == nil {
						mu.Lock()
						ok++
						mu.Unlock()
					}
				}()
			}
			wg.Wait()

			Convey("Then exactly one signup succeeds", func() {
				So(ok, ShouldEqual, 1)
				a, _ := s.Get(ctx, "Math Club")
				So(len(a.Participants), ShouldEqual, 3)
			})
		})
	})
}
