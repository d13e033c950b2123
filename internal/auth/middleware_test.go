package auth_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mfauzanap/event-registration/internal/auth"
)

var _ = Describe("RequireRoles", func() {
	var (
		next    http.Handler
		reached bool
	)

	lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	BeforeEach(func() {
		reached = false
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			w.WriteHeader(http.StatusOK)
		})
	})

	serve := func(mw func(http.Handler) http.Handler, user *auth.User) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin/events", nil)
		if user != nil {
			req = req.WithContext(auth.ContextWithUser(req.Context(), user))
		}
		rec := httptest.NewRecorder()
		mw(next).ServeHTTP(rec, req)
		return rec
	}

	decodeError := func(rec *httptest.ResponseRecorder) map[string]interface{} {
		var body map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		return body
	}

	It("passes a matching role through", func() {
		rec := serve(auth.RequireAdmin(lg), &auth.User{ID: 1, RoleName: auth.RoleAdmin})
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(reached).To(BeTrue())
	})

	It("answers 401 as JSON when no user is in context", func() {
		rec := serve(auth.RequireAdmin(lg), nil)
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(reached).To(BeFalse())

		Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))
		body := decodeError(rec)
		Expect(body["code"]).To(BeEquivalentTo(http.StatusUnauthorized))
		Expect(body["message"]).NotTo(BeEmpty())
	})

	It("answers 403 as JSON for an insufficient role", func() {
		rec := serve(auth.RequireAdmin(lg), &auth.User{ID: 2, RoleName: auth.RoleEmployee})
		Expect(rec.Code).To(Equal(http.StatusForbidden))
		Expect(reached).To(BeFalse())

		Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))
		body := decodeError(rec)
		Expect(body["code"]).To(BeEquivalentTo(http.StatusForbidden))
		Expect(body["message"]).To(Equal("insufficient role"))
	})

	It("accepts any of several allowed roles", func() {
		mw := auth.RequireRoles(lg, auth.RoleAdmin, auth.RoleEmployee)
		rec := serve(mw, &auth.User{ID: 3, RoleName: auth.RoleEmployee})
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(reached).To(BeTrue())
	})
})
