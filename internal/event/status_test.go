package event_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mfauzanap/event-registration/internal/event"
)

func TestEvent(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Event Suite")
}

func date(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	Expect(err).NotTo(HaveOccurred())
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

var _ = Describe("DeriveStatus", func() {
	Context("with a registration window", func() {
		var e *event.Event

		BeforeEach(func() {
			e = &event.Event{
				Title:                 "Town Hall",
				StartDate:             date("2025-03-10"),
				EndDate:               date("2025-03-12"),
				RegistrationStartDate: datePtr("2025-03-01"),
				RegistrationEndDate:   datePtr("2025-03-05"),
			}
		})

		It("is upcoming before the window opens", func() {
			Expect(event.DeriveStatus(e, date("2025-02-20"))).To(Equal(event.StatusUpcoming))
		})

		It("is open on the first day of the window", func() {
			Expect(event.DeriveStatus(e, date("2025-03-01"))).To(Equal(event.StatusOpen))
		})

		It("is open inside the window", func() {
			Expect(event.DeriveStatus(e, date("2025-03-03"))).To(Equal(event.StatusOpen))
		})

		It("is still open on the last day of the window", func() {
			Expect(event.DeriveStatus(e, date("2025-03-05"))).To(Equal(event.StatusOpen))
		})

		It("is closed the day after the window ends", func() {
			Expect(event.DeriveStatus(e, date("2025-03-06"))).To(Equal(event.StatusClosed))
		})

		It("stays closed even before the event itself starts", func() {
			Expect(event.DeriveStatus(e, date("2025-03-08"))).To(Equal(event.StatusClosed))
		})
	})

	Context("without a registration window", func() {
		var e *event.Event

		BeforeEach(func() {
			e = &event.Event{
				Title:     "Offsite",
				StartDate: date("2025-06-01"),
				EndDate:   date("2025-06-03"),
			}
		})

		It("falls back to the event's own dates", func() {
			Expect(event.DeriveStatus(e, date("2025-05-31"))).To(Equal(event.StatusUpcoming))
			Expect(event.DeriveStatus(e, date("2025-06-01"))).To(Equal(event.StatusOpen))
			Expect(event.DeriveStatus(e, date("2025-06-03"))).To(Equal(event.StatusOpen))
			Expect(event.DeriveStatus(e, date("2025-06-04"))).To(Equal(event.StatusClosed))
		})
	})

	Context("when the event is cancelled", func() {
		It("stays cancelled regardless of dates", func() {
			e := &event.Event{
				Title:                 "Cancelled Meetup",
				StartDate:             date("2025-03-10"),
				EndDate:               date("2025-03-12"),
				RegistrationStartDate: datePtr("2025-03-01"),
				RegistrationEndDate:   datePtr("2025-03-05"),
				Status:                event.StatusCancelled,
			}
			Expect(event.DeriveStatus(e, date("2025-03-03"))).To(Equal(event.StatusCancelled))
			Expect(event.DeriveStatus(e, date("2025-02-01"))).To(Equal(event.StatusCancelled))
		})
	})

	Context("with sub-day timestamps", func() {
		It("compares on calendar days, not instants", func() {
			e := &event.Event{
				Title:     "Evening Talk",
				StartDate: date("2025-04-01"),
				EndDate:   date("2025-04-01"),
			}
			lateInDay := time.Date(2025, 4, 1, 23, 59, 0, 0, time.UTC)
			Expect(event.DeriveStatus(e, lateInDay)).To(Equal(event.StatusOpen))
		})
	})
})

var _ = Describe("Day", func() {
	It("truncates to midnight UTC", func() {
		in := time.Date(2025, 7, 15, 18, 30, 45, 12345, time.FixedZone("WIB", 7*3600))
		out := event.Day(in)
		Expect(out.Hour()).To(Equal(0))
		Expect(out.Location()).To(Equal(time.UTC))
		// 18:30 WIB is 11:30 UTC, still July 15.
		Expect(out.Day()).To(Equal(15))
	})
})
