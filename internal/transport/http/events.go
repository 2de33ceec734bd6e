package http

import "net/http"

// HandleEvent serves the event-scoped routes: ticket type creation/listing
// and poll creation.
func HandleEvent(tickets TicketService, polls PollService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, action, ok := parseResourcePath(r.URL.Path, "event")
		if !ok {
			writeError(w, http.StatusNotFound, msgNotFound)
			return
		}

		switch {
		case action == "ticketType" && r.Method == http.MethodPost:
			createTicketType(w, r, tickets, eventID)
		case action == "ticketTypes" && r.Method == http.MethodGet:
			listTicketTypes(w, r, tickets, eventID)
		case action == "poll" && r.Method == http.MethodPost:
			createPoll(w, r, polls, eventID)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	}
}
