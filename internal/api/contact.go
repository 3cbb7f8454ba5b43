package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/christianselig/contact-relay/internal/domain"
	"github.com/christianselig/contact-relay/internal/mail"
)

// Same as the default JSON body limit the frontend was built against.
const maxContactBodyBytes = 100 << 10

const (
	msgFieldsRequired = "All fields are required"
	msgInvalidBody    = "Invalid request body"
	msgSendFailed     = "Failed to send email"
	msgSent           = "Email sent successfully!"
)

type sendMessageResponse struct {
	Message string `json:"message"`
}

func (a *api) contactHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxContactBodyBytes))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			a.errorResponse(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("Request body exceeds %s", humanize.IBytes(uint64(mbe.Limit))))
			return
		}
		a.errorResponse(w, r, http.StatusBadRequest, msgInvalidBody)
		return
	}

	var cs domain.ContactSubmission
	if len(bytes.TrimSpace(body)) > 0 {
		parser := a.pool.Get()
		defer a.pool.Put(parser)

		val, err := parser.ParseBytes(body)
		if err != nil {
			a.logger.Debug("failed to parse request json", zap.Error(err))
			a.countSubmission("invalid")
			a.errorResponse(w, r, http.StatusBadRequest, msgInvalidBody)
			return
		}

		cs = domain.NewContactSubmission(val)
	}

	if err := cs.Validate(); err != nil {
		a.logger.Debug("rejected contact submission", zap.Error(err), zap.String("request#id", requestID(r.Context())))
		a.countSubmission("invalid")
		a.errorResponse(w, r, http.StatusBadRequest, msgFieldsRequired)
		return
	}

	msg := mail.Compose(cs, a.operator)
	res := <-mail.Dispatch(r.Context(), a.sender, msg)

	_ = a.statsd.Timing("contact.mail.latency", res.Elapsed, []string{"provider:" + a.provider}, 1)

	if res.OK() {
		a.countSubmission("sent")
		a.logger.Info("contact form email sent",
			zap.String("contact#email", cs.Email),
			zap.String("request#id", requestID(r.Context())),
		)
	} else {
		a.countSubmission("failed")
		a.logger.Error("failed to send contact form email",
			zap.Error(res.Err),
			zap.String("contact#email", cs.Email),
			zap.String("mail#provider", a.provider),
			zap.String("request#id", requestID(r.Context())),
		)
	}

	status, message := contactResult(res)
	if status != http.StatusOK {
		a.errorResponse(w, r, status, message)
		return
	}
	a.jsonResponse(w, status, sendMessageResponse{Message: message})
}

// contactResult maps a dispatch outcome to what the caller gets to see. The
// underlying error never leaves the process.
func contactResult(res mail.Result) (int, string) {
	if res.OK() {
		return http.StatusOK, msgSent
	}
	return http.StatusInternalServerError, msgSendFailed
}

func (a *api) countSubmission(outcome string) {
	_ = a.statsd.Incr("contact.submissions", []string{"outcome:" + outcome, "provider:" + a.provider}, 1)
}
