package storage_test

import (
	"bytes"
	"errors"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mfauzanap/event-registration/internal"
	"github.com/mfauzanap/event-registration/internal/storage"
)

func TestStorage(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Storage Suite")
}

// uploadedFile builds a real multipart.FileHeader the way net/http would.
func uploadedFile(name, content string) *multipart.FileHeader {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	Expect(err).NotTo(HaveOccurred())
	_, err = part.Write([]byte(content))
	Expect(err).NotTo(HaveOccurred())
	Expect(mw.Close()).To(Succeed())

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(1 << 20)
	Expect(err).NotTo(HaveOccurred())
	return form.File["file"][0]
}

var _ = Describe("FileStore", func() {
	var (
		dir   string
		store *storage.FileStore
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "uploads")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)

		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		store, err = storage.NewFileStore(dir, "/uploads", 64, lg)
		Expect(err).NotTo(HaveOccurred())
	})

	It("stores an accepted file under a generated name", func() {
		path, err := store.Save(uploadedFile("cv.pdf", "content"), ".pdf,.doc")
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(HavePrefix("/uploads/"))
		Expect(path).To(HaveSuffix(".pdf"))
		Expect(path).NotTo(ContainSubstring("cv"))

		stored, err := os.ReadFile(filepath.Join(dir, filepath.Base(path)))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(stored)).To(Equal("content"))
	})

	It("accepts any extension when the allow-list is empty", func() {
		_, err := store.Save(uploadedFile("notes.xyz", "content"), "")
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects a disallowed extension", func() {
		_, err := store.Save(uploadedFile("script.exe", "content"), ".pdf,.doc")
		Expect(err).To(HaveOccurred())

		var appErr *internal.AppError
		Expect(errors.As(err, &appErr)).To(BeTrue())
		Expect(appErr.Code).To(Equal(internal.ErrCodeFileTypeRejected))
	})

	It("matches extensions case-insensitively with or without the dot", func() {
		_, err := store.Save(uploadedFile("CV.PDF", "content"), "pdf")
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects a file over the size cap", func() {
		_, err := store.Save(uploadedFile("big.pdf", strings.Repeat("x", 65)), ".pdf")
		Expect(err).To(HaveOccurred())

		var appErr *internal.AppError
		Expect(errors.As(err, &appErr)).To(BeTrue())
		Expect(appErr.Code).To(Equal(internal.ErrCodeFileTooLarge))
	})

	It("removes a stored file by its public path", func() {
		path, err := store.Save(uploadedFile("cv.pdf", "content"), ".pdf")
		Expect(err).NotTo(HaveOccurred())

		Expect(store.Remove(path)).To(Succeed())
		_, err = os.Stat(filepath.Join(dir, filepath.Base(path)))
		Expect(os.IsNotExist(err)).To(BeTrue())

		// A second remove of the same path is a no-op.
		Expect(store.Remove(path)).To(Succeed())
	})
})
