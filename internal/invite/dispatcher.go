package invite

import (
	"encoding/json"
	"log"
	"net/http"
)

// Request is the invite HTTP payload.
type Request struct {
	Destination   string `json:"destination"`
	InviteCode    string `json:"inviteCode"`
	HouseholdName string `json:"householdName"`
}

// Dispatcher normalizes invite destinations and forwards the invite message
// to the SMS provider. It is exposed as a single HTTP endpoint.
type Dispatcher struct {
	sender     SMSSender
	appBaseURL string
}

// NewDispatcher creates a new Dispatcher. A nil sender means the provider
// is not configured; requests then fail with a 500.
func NewDispatcher(sender SMSSender, appBaseURL string) *Dispatcher {
	return &Dispatcher{sender: sender, appBaseURL: appBaseURL}
}

// ServeHTTP handles POST invite requests and CORS pre-flight.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	case http.MethodPost:
		d.handleSend(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (d *Dispatcher) handleSend(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Destination == "" {
		writeError(w, http.StatusBadRequest, "destination is required")
		return
	}
	if req.InviteCode == "" {
		writeError(w, http.StatusBadRequest, "inviteCode is required")
		return
	}

	to, err := NormalizeDestination(req.Destination)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid destination")
		return
	}

	if d.sender == nil {
		writeError(w, http.StatusInternalServerError, "service not configured")
		return
	}

	body := ComposeMessage(d.appBaseURL, req.InviteCode, req.HouseholdName)
	messageID, err := d.sender.SendSMS(r.Context(), to, body)
	if err != nil {
		log.Printf("Failed to send invite to %s: %v", to, err)
		writeError(w, http.StatusInternalServerError, "failed to send invite")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"messageId": messageID,
	})
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
