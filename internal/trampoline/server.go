package trampoline

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/chainguard-dev/clog"

	"github.com/chainguard-dev/background-events/pkg/httpmetrics"
	"github.com/chainguard-dev/background-events/pkg/legacyevents"
)

// Server receives legacy background-event pushes, translates them to
// CloudEvents, and forwards them through a Sender. Hard translation
// failures surface as request failures; the soft-degradation paths of
// the translator (unknown types, unrecoverable Pub/Sub topics) still
// forward an event.
type Server struct {
	sender    Sender
	converter *legacyevents.Converter
}

func NewServer(sender Sender) *Server {
	return &Server{
		sender:    sender,
		converter: legacyevents.New(),
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := clog.FromContext(ctx)

	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Errorf("failed to read body: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	event, err := s.converter.Convert(ctx, body, r.URL.Path)
	if err != nil {
		var malformed *legacyevents.MalformedContextError
		var mismatch *legacyevents.ResourcePatternMismatchError
		if errors.As(err, &malformed) || errors.As(err, &mismatch) {
			log.Errorf("cannot translate event: %v", err)
			httpmetrics.CountConversion("", "rejected")
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "cannot translate event: %v", err)
			return
		}
		log.Errorf("conversion failed: %v", err)
		httpmetrics.CountConversion("", "error")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	httpmetrics.CountConversion(event.Type, "ok")

	log = log.With("event-type", event.Type, "event-id", event.ID)
	log.Debugf("forwarding event: %s", event.Type)

	if err := s.sender.Send(ctx, event); err != nil {
		log.Errorf("failed to forward event: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	log.Debugf("event forwarded")
}
