package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"pdf-chatbot/internal/app"
	"pdf-chatbot/internal/budget"
	"pdf-chatbot/internal/chat"
	"pdf-chatbot/internal/document"
	"pdf-chatbot/internal/extract"
	"pdf-chatbot/internal/httputil"
)

// User-facing messages.
const (
	msgAPIName            = "PDF-Grounded Chatbot API"
	msgOnlyPDF            = "Only PDF files are supported."
	msgFileRequired       = "A PDF file is required in the 'file' form field."
	msgFileTooLarge       = "Uploaded file is too large."
	msgProcessingFailed   = "Could not process this PDF. Please try another file."
	msgPDFTooLarge        = "PDF too large, please shorten or split."
	msgQuestionRequired   = "Question must be provided."
	msgPDFNotUploaded     = "Please upload a PDF first."
	msgAnswerFailed       = "We're having trouble generating an answer. Please try again."
	msgSomethingWentWrong = "Something went wrong, please try again."
)

// multipartOverhead allows for boundaries and part headers around the file.
const multipartOverhead = 1024

type askRequest struct {
	Question string `json:"question" validate:"required"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			deps.Log.Warn("failed to close dependencies", "err", err)
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", deps.Config.Port),
		Handler:           newRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		deps.Log.Error("server stopped", "err", err)
	}
}

func newRouter(deps app.Deps) *chi.Mux {
	r := httputil.NewRouter(deps.Log, deps.Config.LLMTimeout+30*time.Second)

	r.Get("/", rootHandler())
	r.Get("/healthz", httputil.HealthHandler(deps.Log))
	r.Post("/upload-pdf", uploadHandler(deps))
	r.Post("/ask", askHandler(deps))

	return r
}

func rootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"message": msgAPIName,
		})
	}
}

func uploadHandler(deps app.Deps) http.HandlerFunc {
	maxFileSize := deps.Config.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		// Validate size before parsing
		if r.ContentLength > maxFileSize+multipartOverhead {
			httputil.Fail(deps.Log, w, msgFileTooLarge, nil, http.StatusBadRequest)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxFileSize+multipartOverhead)

		file, header, err := r.FormFile("file")
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				httputil.Fail(deps.Log, w, msgFileTooLarge, err, http.StatusBadRequest)
				return
			}
			httputil.Fail(deps.Log, w, msgFileRequired, err, http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Size > maxFileSize {
			httputil.Fail(deps.Log, w, msgFileTooLarge, nil, http.StatusBadRequest)
			return
		}

		contentType := header.Header.Get("Content-Type")
		if !extract.IsPDF(header.Filename, contentType) {
			httputil.Fail(deps.Log, w, msgOnlyPDF, nil, http.StatusBadRequest)
			return
		}

		content, err := io.ReadAll(file)
		if err != nil {
			httputil.Fail(deps.Log, w, msgSomethingWentWrong, err, http.StatusInternalServerError)
			return
		}

		if _, err := deps.Chat.Upload(r.Context(), header.Filename, contentType, content); err != nil {
			message, status := uploadFailure(err)
			httputil.Fail(deps.Log.With("filename", header.Filename), w, message, err, status)
			return
		}

		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "processed"})
	}
}

func uploadFailure(err error) (string, int) {
	switch {
	case errors.Is(err, chat.ErrNotPDF):
		return msgOnlyPDF, http.StatusBadRequest
	case errors.Is(err, budget.ErrTooLarge):
		return msgPDFTooLarge, http.StatusRequestEntityTooLarge
	case errors.Is(err, extract.ErrUnreadable), errors.Is(err, extract.ErrNoText):
		return msgProcessingFailed, http.StatusUnprocessableEntity
	default:
		return msgSomethingWentWrong, http.StatusInternalServerError
	}
}

func askHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req askRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, msgQuestionRequired, err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err, msgQuestionRequired)
			return
		}

		answer, err := deps.Chat.Ask(r.Context(), req.Question)
		if err != nil {
			message, status := askFailure(err)
			httputil.Fail(deps.Log, w, message, err, status)
			return
		}

		httputil.WriteJSON(w, http.StatusOK, askResponse{Answer: answer})
	}
}

func askFailure(err error) (string, int) {
	switch {
	case errors.Is(err, chat.ErrEmptyQuestion):
		return msgQuestionRequired, http.StatusBadRequest
	case errors.Is(err, document.ErrEmpty):
		return msgPDFNotUploaded, http.StatusConflict
	default:
		return msgAnswerFailed, http.StatusInternalServerError
	}
}
