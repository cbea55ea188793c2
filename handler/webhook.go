package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"hash"
	"io"
	"net/http"
	"strings"

	"ewintr.nl/captionsbot/process"
	"golang.org/x/exp/slog"
)

const maxPayload = 1 << 20

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidPayload   = errors.New("invalid payload")
)

type CardMoveProcessor interface {
	CardMoved(ctx context.Context, move process.CardMove) (process.Delta, error)
}

// WebhookAPI receives the project_card events of the repository.
type WebhookAPI struct {
	processor CardMoveProcessor
	secret    []byte
	logger    *slog.Logger
}

func NewWebhookAPI(processor CardMoveProcessor, secret string, logger *slog.Logger) *WebhookAPI {
	return &WebhookAPI{
		processor: processor,
		secret:    []byte(secret),
		logger:    logger,
	}
}

type cardEvent struct {
	Action      string `json:"action"`
	ProjectCard *struct {
		ID         int64  `json:"id"`
		ColumnID   int64  `json:"column_id"`
		ContentURL string `json:"content_url"`
	} `json:"project_card"`
}

func (wa *WebhookAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sub, _ := ShiftPath(r.URL.Path)
	if r.Method != http.MethodPost || sub != "" {
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("method %s with subpath %q was not registered in the webhook api", r.Method, sub))
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayload+1))
	if err != nil {
		wa.logger.Error("could not read payload", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if len(body) > maxPayload {
		wa.logger.Error("rejected webhook", slog.String("error", fmt.Sprintf("payload larger than %d bytes", maxPayload)))
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		return
	}
	if err := wa.verify(r.Header, body); err != nil {
		wa.logger.Error("rejected webhook", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusForbidden)
		return
	}

	if r.Header.Get("X-GitHub-Event") == "ping" {
		wa.logger.Info("received ping")
		w.WriteHeader(http.StatusOK)
		return
	}

	move, err := parseCardMove(body)
	if err != nil {
		wa.logger.Error("rejected webhook", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	wa.logger.Debug("received card event", slog.String("action", move.Action), slog.Int64("card", move.CardID))

	if _, err := wa.processor.CardMoved(r.Context(), move); err != nil {
		wa.logger.Error("could not update labels", slog.Int64("card", move.CardID), slog.String("error", err.Error()))
	}
	w.WriteHeader(http.StatusOK)
}

// verify checks the signature of the raw body. The sha256 header is
// preferred when both are sent.
func (wa *WebhookAPI) verify(header http.Header, body []byte) error {
	if sig := header.Get("X-Hub-Signature-256"); sig != "" {
		return checkSignature(sha256.New, "sha256=", wa.secret, body, sig)
	}
	return checkSignature(sha1.New, "sha1=", wa.secret, body, header.Get("X-Hub-Signature"))
}

func checkSignature(h func() hash.Hash, prefix string, secret, body []byte, provided string) error {
	hexSum, ok := strings.CutPrefix(provided, prefix)
	if !ok {
		return fmt.Errorf("%w: missing %s digest", ErrInvalidSignature, strings.TrimSuffix(prefix, "="))
	}
	sum, err := hex.DecodeString(hexSum)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	mac := hmac.New(h, secret)
	mac.Write(body)
	if !hmac.Equal(sum, mac.Sum(nil)) {
		return fmt.Errorf("%w: digest mismatch", ErrInvalidSignature)
	}
	return nil
}

// Sign returns the X-Hub-Signature value for body.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(body)
	return "sha1=" + hex.EncodeToString(mac.Sum(nil))
}

func parseCardMove(body []byte) (process.CardMove, error) {
	var event cardEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return process.CardMove{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if event.Action == "" || event.ProjectCard == nil {
		return process.CardMove{}, fmt.Errorf("%w: not a project_card event", ErrInvalidPayload)
	}

	return process.CardMove{
		Action:     event.Action,
		CardID:     event.ProjectCard.ID,
		ColumnID:   event.ProjectCard.ColumnID,
		ContentURL: event.ProjectCard.ContentURL,
	}, nil
}
