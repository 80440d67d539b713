package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/islandbook/quote/internal/quote"
)

type errorResponse struct {
	Error string `json:"error"`
	Date  string `json:"date,omitempty"`
}

func (s *Server) encode(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.l.LogErrorf("Could not encode response: %v", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// writeQuoteError maps the engine's error taxonomy onto HTTP statuses:
// user-input problems are 400, availability conflicts 412, unknown items 404.
func (s *Server) writeQuoteError(w http.ResponseWriter, err error) {
	if inputErr := quote.IsInputError(err); inputErr != nil {
		s.encode(w, http.StatusBadRequest, inputErr.Fields())

		return
	}

	if parseErr := quote.IsParseError(err); parseErr != nil {
		s.encode(w, http.StatusBadRequest, errorResponse{Error: parseErr.Error()})

		return
	}

	if unavailableErr := quote.IsRangeUnavailableError(err); unavailableErr != nil {
		s.encode(w, http.StatusPreconditionFailed, errorResponse{
			Error: unavailableErr.Error(),
			Date:  unavailableErr.Date.Format(quote.DateLayout),
		})

		return
	}

	if errors.Is(err, quote.ErrInvalidParticipantSplit) {
		s.encode(w, http.StatusBadRequest, errorResponse{Error: quote.ErrInvalidParticipantSplit.Error()})

		return
	}

	if addOnErr := quote.IsUnknownAddOnError(err); addOnErr != nil {
		s.encode(w, http.StatusBadRequest, errorResponse{Error: addOnErr.Error()})

		return
	}

	if participantsErr := quote.IsParticipantRangeError(err); participantsErr != nil {
		s.encode(w, http.StatusBadRequest, errorResponse{Error: participantsErr.Error()})

		return
	}

	if errors.Is(err, quote.ErrItemNotFound) {
		s.encode(w, http.StatusNotFound, errorResponse{Error: "item not found"})

		return
	}

	s.l.LogErrorf("Could not build a quote: %v", err.Error())
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Server) createQuoteHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req quote.QuoteRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	out, err := s.qManager.BuildQuote(ctx, &req)
	if err != nil {
		s.writeQuoteError(w, err)

		return
	}

	s.encode(w, http.StatusOK, out)
}

type slotsResponse struct {
	Slots []quote.ScheduleSlot `json:"slots"`
}

func (s *Server) openSlotsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID := r.URL.Query().Get("item")
	date := r.URL.Query().Get("date")

	slots, err := s.qManager.OpenSlots(ctx, itemID, date)
	if err != nil {
		s.writeQuoteError(w, err)

		return
	}

	s.encode(w, http.StatusOK, slotsResponse{Slots: slots})
}

type rangeResponse struct {
	Available     bool   `json:"available"`
	FirstConflict string `json:"first_conflict,omitempty"`
}

func (s *Server) checkRangeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID := r.URL.Query().Get("item")
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	err := s.qManager.CheckRange(ctx, itemID, from, to)
	if unavailableErr := quote.IsRangeUnavailableError(err); unavailableErr != nil {
		s.encode(w, http.StatusOK, rangeResponse{
			Available:     false,
			FirstConflict: unavailableErr.Date.Format(quote.DateLayout),
		})

		return
	}

	if err != nil {
		s.writeQuoteError(w, err)

		return
	}

	s.encode(w, http.StatusOK, rangeResponse{Available: true})
}

func (s *Server) livenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addRoutes(r *http.ServeMux) {
	r.Handle(
		"POST /api/quotes/v1",
		s.applyMiddlewares(http.HandlerFunc(s.createQuoteHandler), s.requestIDMiddleware(), s.loggerMiddleware(), s.recoverMiddleware()),
	)
	r.Handle(
		"GET /api/items/v1/slots",
		s.applyMiddlewares(http.HandlerFunc(s.openSlotsHandler), s.requestIDMiddleware(), s.loggerMiddleware(), s.recoverMiddleware()),
	)
	r.Handle(
		"GET /api/items/v1/range",
		s.applyMiddlewares(http.HandlerFunc(s.checkRangeHandler), s.requestIDMiddleware(), s.loggerMiddleware(), s.recoverMiddleware()),
	)
	r.Handle(
		fmt.Sprintf("GET %s", s.conf.LivenessEndpoint),
		s.applyMiddlewares(http.HandlerFunc(s.livenessHandler), s.loggerMiddleware(), s.recoverMiddleware()),
	)
}
