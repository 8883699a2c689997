package asr

import (
	"errors"
	"fmt"
)

// Vendor sentinels. The service reports codeOK in the body of every
// successful call; order status is only ever meaningful as processing or
// complete, anything else is terminal.
const (
	codeOK = "000000"

	StatusProcessing = 3
	StatusComplete   = 4

	// DefaultSpeaker labels sentences the vendor returned without a
	// speaker id.
	DefaultSpeaker = "S0"
)

// uploadResponse is the body of POST /v1/upload.
type uploadResponse struct {
	Code     string `json:"code"`
	DescInfo string `json:"descInfo"`
	Content  struct {
		OrderID string `json:"orderId"`
	} `json:"content"`
}

// ResultResponse is the body of POST /v1/getResult.
type ResultResponse struct {
	Code     string        `json:"code"`
	DescInfo string        `json:"descInfo"`
	Content  ResultContent `json:"content"`
}

type ResultContent struct {
	OrderInfo   OrderInfo   `json:"orderInfo"`
	OrderResult OrderResult `json:"orderResult"`
}

type OrderInfo struct {
	Status int `json:"status"`
}

type OrderResult struct {
	Sentences []Sentence `json:"sentences"`
}

// Sentence is one diarized utterance as returned by the vendor.
type Sentence struct {
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
	BeginTime int64  `json:"beginTime"`
	EndTime   int64  `json:"endTime"`
}

// ErrNoOrderID reports a 2xx/OK upload response that carried no order id.
var ErrNoOrderID = errors.New("upload succeeded but no order id returned")

// ErrUnexpectedResponse marks payloads that do not match the documented
// endpoint shapes.
var ErrUnexpectedResponse = errors.New("unexpected response shape")

// APIError is a terminal vendor-side failure, carrying whatever diagnostics
// the response offered.
type APIError struct {
	Op         string
	HTTPStatus int
	Code       string
	Desc       string
	Body       string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("asr %s: vendor code %s: %s", e.Op, e.Code, e.Desc)
	}
	return fmt.Sprintf("asr %s: http %d: %s", e.Op, e.HTTPStatus, e.Body)
}

// UnexpectedStatusError reports an order status outside the two values the
// client understands.
type UnexpectedStatusError struct {
	Status int
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("asr poll: unexpected order status %d", e.Status)
}

// PollTimeoutError reports an exhausted retry budget.
type PollTimeoutError struct {
	Attempts int
}

func (e *PollTimeoutError) Error() string {
	return fmt.Sprintf("asr poll: order still processing after %d attempts", e.Attempts)
}
