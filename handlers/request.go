package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"biztime/apperror"
	"biztime/repository"
)

const maxBodyBytes = 1 << 20

var jsonNull = []byte("null")

// decodeBody parses the JSON request body into dst. An absent body, an empty
// one or a literal null is a bad request, as is malformed JSON.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperror.BadRequest("")
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return apperror.BadRequest(err.Error())
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return apperror.BadRequest("")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return apperror.BadRequest(err.Error())
	}
	return nil
}

// nonEmptyString reports the string held by raw, if it is a non-empty JSON string.
func nonEmptyString(raw json.RawMessage) (string, bool) {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil || s == "" {
		return "", false
	}
	return s, true
}

// nonZeroAmount accepts a JSON number or numeric string that is finite and
// not zero. Zero is rejected even though it is a valid amount.
func nonZeroAmount(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		v, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
	}
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseInvoiceID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.BadRequest("invalid invoice id: " + raw)
	}
	return id, nil
}

// translate maps repository not-found errors to typed 404s; everything else
// passes through unclassified.
func translate(err error) error {
	var nf *repository.NotFoundError
	if errors.As(err, &nf) {
		return apperror.NotFound("Not found: " + nf.Key)
	}
	return err
}
