package event_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mfauzanap/event-registration/internal"
	"github.com/mfauzanap/event-registration/internal/core/events"
	"github.com/mfauzanap/event-registration/internal/event"
)

type mockEventRepository struct {
	events      map[int64]*event.Event
	createError error
	updateError error
	nextID      int64
}

func newMockEventRepository() *mockEventRepository {
	return &mockEventRepository{
		events: make(map[int64]*event.Event),
		nextID: 1,
	}
}

func (m *mockEventRepository) Create(e *event.Event) error {
	if m.createError != nil {
		return m.createError
	}
	e.ID = m.nextID
	m.nextID++
	e.CreatedAt = time.Now()
	e.UpdatedAt = time.Now()
	stored := *e
	m.events[e.ID] = &stored
	return nil
}

func (m *mockEventRepository) GetByID(id int64) (*event.Event, error) {
	e, exists := m.events[id]
	if !exists || e.IsDeleted {
		return nil, internal.ErrEventNotFound
	}
	copied := *e
	return &copied, nil
}

func (m *mockEventRepository) List(status string) ([]*event.Event, error) {
	var out []*event.Event
	for _, e := range m.events {
		if e.IsDeleted {
			continue
		}
		if status != "" && e.Status != status {
			continue
		}
		copied := *e
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockEventRepository) Update(e *event.Event) error {
	if m.updateError != nil {
		return m.updateError
	}
	stored := *e
	m.events[e.ID] = &stored
	return nil
}

func (m *mockEventRepository) SoftDelete(id, actorID int64, at time.Time) error {
	e, exists := m.events[id]
	if !exists || e.IsDeleted {
		return internal.ErrEventNotFound
	}
	e.IsDeleted = true
	e.DeletedAt = &at
	e.DeletedBy = &actorID
	return nil
}

type mockPublisher struct {
	published []events.Event
	syncOnly  []events.Event
}

func (m *mockPublisher) Publish(ctx context.Context, evt events.Event) error {
	m.published = append(m.published, evt)
	return nil
}

func (m *mockPublisher) PublishSync(ctx context.Context, evt events.Event) error {
	m.syncOnly = append(m.syncOnly, evt)
	return nil
}

var _ = Describe("EventService", func() {
	var (
		svc      *event.Service
		mockRepo *mockEventRepository
		mockBus  *mockPublisher
		today    time.Time
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = newMockEventRepository()
		mockBus = &mockPublisher{}
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		today = date("2025-02-20")
		ctx = context.Background()
		svc = event.NewService(mockRepo, mockBus, lg).WithClock(func() time.Time { return today })
	})

	Describe("CreateEvent", func() {
		It("derives the initial status and publishes a created event", func() {
			dto := event.CreateEventDTO{
				Title:                 "Town Hall",
				StartDate:             "2025-03-10",
				EndDate:               "2025-03-12",
				RegistrationStartDate: "2025-03-01",
				RegistrationEndDate:   "2025-03-05",
			}

			created, err := svc.CreateEvent(ctx, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.Status).To(Equal(event.StatusUpcoming))

			Expect(mockBus.published).To(HaveLen(1))
			Expect(mockBus.published[0].EventType()).To(Equal(events.EventTypeEventCreated))
		})

		It("rejects a missing title", func() {
			_, err := svc.CreateEvent(ctx, event.CreateEventDTO{
				StartDate: "2025-03-10",
				EndDate:   "2025-03-12",
			})
			Expect(err).To(HaveOccurred())
			Expect(mockBus.published).To(BeEmpty())
		})

		It("rejects a start date in the past", func() {
			_, err := svc.CreateEvent(ctx, event.CreateEventDTO{
				Title:     "Yesterday's News",
				StartDate: "2025-02-19",
				EndDate:   "2025-02-21",
			})
			Expect(err).To(HaveOccurred())
		})

		It("rejects end before start", func() {
			_, err := svc.CreateEvent(ctx, event.CreateEventDTO{
				Title:     "Backwards",
				StartDate: "2025-03-12",
				EndDate:   "2025-03-10",
			})
			Expect(err).To(HaveOccurred())
		})

		It("rejects a half-specified registration window", func() {
			_, err := svc.CreateEvent(ctx, event.CreateEventDTO{
				Title:                 "Half Window",
				StartDate:             "2025-03-10",
				EndDate:               "2025-03-12",
				RegistrationStartDate: "2025-03-01",
			})
			Expect(err).To(HaveOccurred())
		})

		It("rejects registration closing after the event ends", func() {
			_, err := svc.CreateEvent(ctx, event.CreateEventDTO{
				Title:                 "Late Close",
				StartDate:             "2025-03-10",
				EndDate:               "2025-03-12",
				RegistrationStartDate: "2025-03-01",
				RegistrationEndDate:   "2025-03-15",
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UpdateEvent", func() {
		var existing *event.Event

		BeforeEach(func() {
			var err error
			existing, err = svc.CreateEvent(ctx, event.CreateEventDTO{
				Title:                 "Town Hall",
				StartDate:             "2025-03-10",
				EndDate:               "2025-03-12",
				RegistrationStartDate: "2025-03-01",
				RegistrationEndDate:   "2025-03-05",
			})
			Expect(err).NotTo(HaveOccurred())
			mockBus.published = nil
		})

		It("recomputes status when dates move", func() {
			today = date("2025-03-03")
			updated, err := svc.UpdateEvent(ctx, existing.ID, event.UpdateEventDTO{})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(event.StatusOpen))
		})

		It("classifies a title-only change as a title change", func() {
			newTitle := "All Hands"
			_, err := svc.UpdateEvent(ctx, existing.ID, event.UpdateEventDTO{Title: &newTitle})
			Expect(err).NotTo(HaveOccurred())

			Expect(mockBus.published).To(HaveLen(1))
			updatedEvt := mockBus.published[0].(*events.EventUpdatedEvent)
			Expect(updatedEvt.Change).To(Equal(events.ChangeTitle))
		})

		It("lets cancellation win over a simultaneous title change", func() {
			newTitle := "Renamed And Gone"
			cancelled := event.StatusCancelled
			_, err := svc.UpdateEvent(ctx, existing.ID, event.UpdateEventDTO{
				Title:  &newTitle,
				Status: &cancelled,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(mockBus.published).To(HaveLen(1))
			updatedEvt := mockBus.published[0].(*events.EventUpdatedEvent)
			Expect(updatedEvt.Change).To(Equal(events.ChangeCancelled))
		})

		It("keeps a pinned status instead of recomputing", func() {
			cancelled := event.StatusCancelled
			updated, err := svc.UpdateEvent(ctx, existing.ID, event.UpdateEventDTO{Status: &cancelled})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(event.StatusCancelled))

			// A later no-override update on a cancelled event stays cancelled.
			mockBus.published = nil
			updated, err = svc.UpdateEvent(ctx, existing.ID, event.UpdateEventDTO{})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(event.StatusCancelled))
			Expect(mockBus.published).To(BeEmpty())
		})

		It("publishes nothing when nothing notifiable changed", func() {
			_, err := svc.UpdateEvent(ctx, existing.ID, event.UpdateEventDTO{})
			Expect(err).NotTo(HaveOccurred())
			Expect(mockBus.published).To(BeEmpty())
		})

		It("rejects an unknown status value", func() {
			bogus := "postponed"
			_, err := svc.UpdateEvent(ctx, existing.ID, event.UpdateEventDTO{Status: &bogus})
			Expect(err).To(HaveOccurred())
		})

		It("returns not found for a missing event", func() {
			_, err := svc.UpdateEvent(ctx, 999, event.UpdateEventDTO{})
			Expect(errors.Is(err, internal.ErrEventNotFound)).To(BeTrue())
		})
	})

	Describe("SoftDelete", func() {
		var existing *event.Event

		BeforeEach(func() {
			var err error
			existing, err = svc.CreateEvent(ctx, event.CreateEventDTO{
				Title:     "Doomed",
				StartDate: "2025-03-10",
				EndDate:   "2025-03-12",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("notifies registrants synchronously before flagging", func() {
			err := svc.SoftDelete(ctx, existing.ID, 42)
			Expect(err).NotTo(HaveOccurred())

			Expect(mockBus.syncOnly).To(HaveLen(1))
			Expect(mockBus.syncOnly[0].EventType()).To(Equal(events.EventTypeEventDeleted))

			_, err = svc.GetEvent(existing.ID)
			Expect(errors.Is(err, internal.ErrEventNotFound)).To(BeTrue())
		})

		It("records the acting admin", func() {
			Expect(svc.SoftDelete(ctx, existing.ID, 42)).To(Succeed())

			stored := mockRepo.events[existing.ID]
			Expect(stored.IsDeleted).To(BeTrue())
			Expect(stored.DeletedAt).NotTo(BeNil())
			Expect(*stored.DeletedBy).To(Equal(int64(42)))
		})

		It("is a 404 when already deleted", func() {
			Expect(svc.SoftDelete(ctx, existing.ID, 42)).To(Succeed())
			err := svc.SoftDelete(ctx, existing.ID, 42)
			Expect(errors.Is(err, internal.ErrEventNotFound)).To(BeTrue())
		})
	})

	Describe("ListEvents", func() {
		It("rejects an unknown status filter", func() {
			_, err := svc.ListEvents("postponed")
			Expect(err).To(HaveOccurred())
		})

		It("filters by status", func() {
			_, err := svc.CreateEvent(ctx, event.CreateEventDTO{
				Title: "Soon", StartDate: "2025-03-10", EndDate: "2025-03-12",
			})
			Expect(err).NotTo(HaveOccurred())

			listed, err := svc.ListEvents(event.StatusUpcoming)
			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(HaveLen(1))

			listed, err = svc.ListEvents(event.StatusClosed)
			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(BeEmpty())
		})
	})
})
