package postgres_test

import (
	"errors"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mfauzanap/event-registration/internal"
	eventDatamodel "github.com/mfauzanap/event-registration/internal/core/datamodel/event"
	"github.com/mfauzanap/event-registration/internal/event"
	eventPostgres "github.com/mfauzanap/event-registration/internal/event/postgres"
)

func TestEventPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Event Postgres Suite")
}

var _ = Describe("Event Repository", func() {
	var (
		db   *gorm.DB
		repo *eventPostgres.EventRepository
	)

	newEvent := func(title, status string, start, end time.Time) *event.Event {
		return &event.Event{
			Title:     title,
			StartDate: start,
			EndDate:   end,
			Status:    status,
		}
	}

	day := func(offset int) time.Time {
		return time.Date(2025, time.June, 1+offset, 0, 0, 0, 0, time.UTC)
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&eventDatamodel.Event{})
		Expect(err).NotTo(HaveOccurred())

		repo = eventPostgres.NewEventRepository(db)
	})

	Describe("Create and GetByID", func() {
		It("round-trips an event", func() {
			e := newEvent("Town Hall", event.StatusUpcoming, day(10), day(12))
			Expect(repo.Create(e)).To(Succeed())
			Expect(e.ID).To(BeNumerically(">", 0))

			loaded, err := repo.GetByID(e.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Title).To(Equal("Town Hall"))
			Expect(loaded.Status).To(Equal(event.StatusUpcoming))
		})

		It("returns not found for an unknown id", func() {
			_, err := repo.GetByID(999)
			Expect(errors.Is(err, internal.ErrEventNotFound)).To(BeTrue())
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			Expect(repo.Create(newEvent("A", event.StatusOpen, day(5), day(6)))).To(Succeed())
			Expect(repo.Create(newEvent("B", event.StatusClosed, day(1), day(2)))).To(Succeed())
			Expect(repo.Create(newEvent("C", event.StatusOpen, day(3), day(4)))).To(Succeed())
		})

		It("orders by start date", func() {
			all, err := repo.List("")
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(3))
			Expect(all[0].Title).To(Equal("B"))
			Expect(all[2].Title).To(Equal("A"))
		})

		It("filters by status", func() {
			open, err := repo.List(event.StatusOpen)
			Expect(err).NotTo(HaveOccurred())
			Expect(open).To(HaveLen(2))
		})
	})

	Describe("ListActive", func() {
		It("returns only upcoming and open events", func() {
			Expect(repo.Create(newEvent("up", event.StatusUpcoming, day(5), day(6)))).To(Succeed())
			Expect(repo.Create(newEvent("open", event.StatusOpen, day(3), day(4)))).To(Succeed())
			Expect(repo.Create(newEvent("closed", event.StatusClosed, day(1), day(2)))).To(Succeed())
			Expect(repo.Create(newEvent("cancelled", event.StatusCancelled, day(7), day(8)))).To(Succeed())

			active, err := repo.ListActive()
			Expect(err).NotTo(HaveOccurred())
			Expect(active).To(HaveLen(2))
			Expect(active[0].Title).To(Equal("open"))
			Expect(active[1].Title).To(Equal("up"))
		})
	})

	Describe("UpdateStatus", func() {
		It("persists the new status", func() {
			e := newEvent("Town Hall", event.StatusUpcoming, day(10), day(12))
			Expect(repo.Create(e)).To(Succeed())

			Expect(repo.UpdateStatus(e.ID, event.StatusOpen)).To(Succeed())

			loaded, err := repo.GetByID(e.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Status).To(Equal(event.StatusOpen))
		})

		It("is a 404 for an unknown id", func() {
			err := repo.UpdateStatus(999, event.StatusOpen)
			Expect(errors.Is(err, internal.ErrEventNotFound)).To(BeTrue())
		})
	})

	Describe("SoftDelete", func() {
		It("hides the event from every read path", func() {
			e := newEvent("Town Hall", event.StatusOpen, day(10), day(12))
			Expect(repo.Create(e)).To(Succeed())

			Expect(repo.SoftDelete(e.ID, 1, time.Now())).To(Succeed())

			_, err := repo.GetByID(e.ID)
			Expect(errors.Is(err, internal.ErrEventNotFound)).To(BeTrue())

			all, err := repo.List("")
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(BeEmpty())

			active, err := repo.ListActive()
			Expect(err).NotTo(HaveOccurred())
			Expect(active).To(BeEmpty())
		})

		It("refuses a second delete", func() {
			e := newEvent("Town Hall", event.StatusOpen, day(10), day(12))
			Expect(repo.Create(e)).To(Succeed())

			Expect(repo.SoftDelete(e.ID, 1, time.Now())).To(Succeed())
			err := repo.SoftDelete(e.ID, 1, time.Now())
			Expect(errors.Is(err, internal.ErrEventNotFound)).To(BeTrue())
		})
	})
})
