// Package asr implements the client for the vendor's long-form
// transcription HTTP API: a signed multipart upload that yields an order id,
// followed by a bounded polling loop on the order status.
package asr

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/noteflow/noteflow/internal/audio"
	"github.com/noteflow/noteflow/internal/logx"
	"github.com/noteflow/noteflow/internal/metrics"
)

// Config holds credentials and tuning for the transcription service.
type Config struct {
	BaseURL         string
	AppID           string
	AccessKeyID     string
	AccessKeySecret string
	Language        string
	MaxRetries      int
	PollInterval    time.Duration
	HTTPTimeout     time.Duration
}

// Client talks to the transcription service. It is immutable after
// construction and safe for concurrent use; each Transcribe call is an
// independent job.
type Client struct {
	cfg   Config
	httpc *http.Client
	nonce func() (string, error)
}

// New returns a Client with defaults applied: 100 poll attempts 10 seconds
// apart, matching the vendor's recommended budget.
func New(cfg Config) *Client {
	if cfg.Language == "" {
		cfg.Language = "cn"
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 100
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Second
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 60 * time.Second
	}
	return &Client{
		cfg:   cfg,
		httpc: &http.Client{Timeout: cfg.HTTPTimeout},
		nonce: randomNonce,
	}
}

// Transcribe runs the full pipeline for one audio file: validate, upload,
// poll until the order completes, parse the sentence list.
func (c *Client) Transcribe(ctx context.Context, path string) (*Transcription, error) {
	if err := audio.Validate(path); err != nil {
		return nil, err
	}
	start := time.Now()
	orderID, err := c.Upload(ctx, path)
	if err != nil {
		metrics.RecordTranscription(time.Since(start), false)
		return nil, err
	}
	res, err := c.Poll(ctx, orderID)
	if err != nil {
		metrics.RecordTranscription(time.Since(start), false)
		return nil, err
	}
	segments, text := ParseSentences(res.Content.OrderResult.Sentences)
	metrics.RecordTranscription(time.Since(start), true)
	return &Transcription{OrderID: orderID, Text: text, Segments: segments}, nil
}

// Upload sends the audio file as a signed multipart request and returns the
// server-issued order id.
func (c *Client) Upload(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat audio file: %w", err)
	}
	params, err := c.baseParams()
	if err != nil {
		return "", err
	}
	params["fileSize"] = strconv.FormatInt(info.Size(), 10)
	params["fileName"] = filepath.Base(path)
	params["language"] = c.cfg.Language
	params["duration"] = "0"
	signature := Sign(params, c.cfg.AccessKeySecret)

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open audio file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(fw, f); err != nil {
		return "", fmt.Errorf("read audio file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/v1/upload", params), &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("signature", signature)

	logx.Log.Debug().Str("file", params["fileName"]).Str("size", params["fileSize"]).Msg("uploading audio")
	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("asr upload: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("asr upload: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{Op: "upload", HTTPStatus: resp.StatusCode, Body: string(raw)}
	}
	var ur uploadResponse
	if err := json.Unmarshal(raw, &ur); err != nil {
		return "", fmt.Errorf("%w: upload: %v", ErrUnexpectedResponse, err)
	}
	if ur.Code != codeOK {
		return "", &APIError{Op: "upload", HTTPStatus: resp.StatusCode, Code: ur.Code, Desc: ur.DescInfo}
	}
	if ur.Content.OrderID == "" {
		return "", ErrNoOrderID
	}
	logx.Log.Info().Str("order_id", ur.Content.OrderID).Msg("audio accepted for transcription")
	return ur.Content.OrderID, nil
}

// Poll queries the order status until it completes, fails, or the retry
// budget runs out. Only the processing status retries; every attempt is
// signed fresh so stale signatures are never reused. The loop is cancellable
// through ctx and can otherwise block for up to MaxRetries×PollInterval.
func (c *Client) Poll(ctx context.Context, orderID string) (*ResultResponse, error) {
	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		res, err := c.fetchResult(ctx, orderID)
		if err != nil {
			return nil, err
		}
		switch res.Content.OrderInfo.Status {
		case StatusComplete:
			return res, nil
		case StatusProcessing:
			logx.Log.Debug().Str("order_id", orderID).Int("attempt", attempt+1).Msg("order still processing")
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("asr poll canceled: %w", ctx.Err())
			case <-time.After(c.cfg.PollInterval):
			}
		default:
			return nil, &UnexpectedStatusError{Status: res.Content.OrderInfo.Status}
		}
	}
	return nil, &PollTimeoutError{Attempts: c.cfg.MaxRetries}
}

func (c *Client) fetchResult(ctx context.Context, orderID string) (*ResultResponse, error) {
	params, err := c.baseParams()
	if err != nil {
		return nil, err
	}
	params["orderId"] = orderID
	signature := Sign(params, c.cfg.AccessKeySecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/v1/getResult", params), bytes.NewReader([]byte("{}")))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("signature", signature)

	metrics.RecordPoll()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("asr poll: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("asr poll: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Op: "poll", HTTPStatus: resp.StatusCode, Body: string(raw)}
	}
	var rr ResultResponse
	if err := json.Unmarshal(raw, &rr); err != nil {
		return nil, fmt.Errorf("%w: poll: %v", ErrUnexpectedResponse, err)
	}
	if rr.Code != codeOK {
		return nil, &APIError{Op: "poll", HTTPStatus: resp.StatusCode, Code: rr.Code, Desc: rr.DescInfo}
	}
	return &rr, nil
}

// baseParams returns the signed parameter set shared by both endpoints with
// a fresh timestamp and nonce.
func (c *Client) baseParams() (map[string]string, error) {
	nonce, err := c.nonce()
	if err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return map[string]string{
		"appId":       c.cfg.AppID,
		"accessKeyId": c.cfg.AccessKeyID,
		"ts":          strconv.FormatInt(time.Now().Unix(), 10),
		"nonce":       nonce,
	}, nil
}

func (c *Client) endpoint(path string, params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	return c.cfg.BaseURL + path + "?" + q.Encode()
}

// randomNonce returns 16 bytes of entropy, hex-encoded.
func randomNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
