package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/dcode-github/dormdash/gateway"
	"github.com/dcode-github/dormdash/models"
	"github.com/dcode-github/dormdash/utils"
)

// CreateInquiry sends a student's message about a listing. Anyone may send
// one; a signed-in session fills in the sender fields it knows.
func CreateInquiry(gw *gateway.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, sess, ok := backendFor(gw, r)
		if !ok {
			missingSession(w, r)
			return
		}

		var inq models.Inquiry
		if !decodeBody(w, r, &inq) {
			return
		}
		inq.PropertyID = mux.Vars(r)["id"]
		inq.SenderName = strings.TrimSpace(inq.SenderName)
		inq.Message = strings.TrimSpace(inq.Message)
		if id := sess.Store.Identity(); id != nil {
			if inq.SenderName == "" {
				inq.SenderName = id.Name
			}
			if inq.SenderEmail == "" {
				inq.SenderEmail = id.Email
			}
			if inq.SenderPhone == "" {
				inq.SenderPhone = id.Phone
			}
		}
		inq.Timestamp = time.Now().UTC().Format(time.RFC3339)

		if err := utils.ValidateStruct(inq); err != nil {
			renderView(w, http.StatusUnprocessableEntity, models.PropertyDetailPage, nil, models.Failure(utils.ValidationMessage(err)))
			return
		}

		if _, err := client.CreateInquiry(r.Context(), inq); err != nil {
			log.Printf("Error sending inquiry for %s: %v", inq.PropertyID, err)
			renderView(w, failureStatus(err), models.PropertyDetailPage, nil, models.Failure(gateway.Message(err, "Failed to send message")))
			return
		}

		renderView(w, http.StatusCreated, models.PropertyDetailPage, inq, models.Success("Message sent"))
	}
}
