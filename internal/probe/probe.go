// Package probe smoke-tests a running assessment API.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// SampleRecord is the payload posted to /api/predict. It uses the numeric
// encoding, which every server variant accepts.
var SampleRecord = map[string]any{
	"sleep_hours":          7,
	"academic_performance": 1, // Average
	"bullied":              0,
	"has_close_friends":    1,
	"homesick_level":       2,
	"mess_food_rating":     3,
	"sports_participation": 1,
	"social_activities":    5,
	"study_hours":          4,
	"screen_time":          3,
}

// Check is the outcome of one probed endpoint.
type Check struct {
	Name   string
	Path   string
	Status int
	Body   json.RawMessage
	OK     bool
	Err    error
}

// Client probes a base URL.
type Client struct {
	http *resty.Client
	log  *zap.Logger
}

// New creates a probe client for baseURL. log may be nil.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{http: client, log: log}
}

// Run checks the banner endpoint and then posts the sample record.
// It stops after the first connection failure.
func (c *Client) Run(ctx context.Context) []Check {
	home := c.get(ctx, "api", "/")
	checks := []Check{home}
	if home.Err != nil {
		return checks
	}
	return append(checks, c.predict(ctx))
}

func (c *Client) get(ctx context.Context, name, path string) Check {
	check := Check{Name: name, Path: path}
	resp, err := c.http.R().SetContext(ctx).Get(path)
	return c.finish(check, resp, err)
}

func (c *Client) predict(ctx context.Context) Check {
	check := Check{Name: "predict", Path: "/api/predict"}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(SampleRecord).
		Post(check.Path)
	check = c.finish(check, resp, err)
	if check.OK {
		var out struct {
			Condition      string `json:"condition"`
			Recommendation string `json:"recommendation"`
		}
		if err := json.Unmarshal(check.Body, &out); err != nil || out.Condition == "" {
			check.OK = false
			check.Err = fmt.Errorf("response has no condition")
		}
	}
	return check
}

func (c *Client) finish(check Check, resp *resty.Response, err error) Check {
	if err != nil {
		check.Err = err
		c.log.Warn("probe failed", zap.String("path", check.Path), zap.Error(err))
		return check
	}
	check.Status = resp.StatusCode()
	check.Body = json.RawMessage(resp.Body())
	check.OK = resp.IsSuccess()
	c.log.Info("probe",
		zap.String("path", check.Path),
		zap.Int("status", check.Status),
		zap.Duration("latency", resp.Time()),
	)
	return check
}
