// Package courseapi talks to the course service's REST API.
package courseapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/coursedraft/internal/curriculum"
	"github.com/alexanderramin/coursedraft/internal/domain"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// Config points the client at a course API deployment.
type Config struct {
	BaseURL     string
	Token       string
	DialTimeout time.Duration
}

// Client implements the course endpoints the draft builder needs. It never
// retries; a failed call is reported once and the caller decides.
type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: cfg.DialTimeout,
				}).DialContext,
			},
		},
		log: log.With().Str("component", "courseapi").Logger(),
	}
}

// CreateCourseDraft creates a new draft course from basic info.
func (c *Client) CreateCourseDraft(ctx context.Context, info domain.BasicInfo) (CreatedCourse, error) {
	var out envelope[courseDTO]
	if err := c.do(ctx, http.MethodPost, "/courses", NewBasicInfoPayload(info), &out); err != nil {
		return CreatedCourse{}, err
	}
	id := out.Data.id()
	if id == "" {
		return CreatedCourse{}, fmt.Errorf("create course: %w: no course id in response", ErrMalformedResponse)
	}
	return CreatedCourse{ID: id}, nil
}

// UpdateCourseBasicInfo replaces the basic info of an existing course.
func (c *Client) UpdateCourseBasicInfo(ctx context.Context, courseID string, info domain.BasicInfo) error {
	return c.do(ctx, http.MethodPatch, coursePath(courseID, "basic-info"), NewBasicInfoPayload(info), nil)
}

func (c *Client) UpdateCourseAdvancedInfo(ctx context.Context, courseID string, payload AdvancedInfoPayload) error {
	return c.do(ctx, http.MethodPatch, coursePath(courseID, "advanced-info"), payload, nil)
}

// UpdateCourseCurriculum replaces the whole curriculum of a course.
func (c *Client) UpdateCourseCurriculum(ctx context.Context, courseID string, payload curriculum.Serialized) (CurriculumAck, error) {
	var out envelope[CurriculumAck]
	if err := c.do(ctx, http.MethodPut, coursePath(courseID, "curriculum"), payload, &out); err != nil {
		return CurriculumAck{}, err
	}
	return out.Data, nil
}

// ListCategories returns the public category list.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var out envelope[[]categoryDTO]
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &out); err != nil {
		return nil, err
	}
	cats := make([]domain.Category, 0, len(out.Data))
	for _, dto := range out.Data {
		cats = append(cats, dto.toDomain())
	}
	return cats, nil
}

func coursePath(courseID, section string) string {
	return "/courses/" + url.PathEscape(courseID) + "/" + section
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	start := time.Now()
	target := c.cfg.BaseURL + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Str("method", method).Str("path", path).Err(err).Msg("request failed")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		if isConnectionError(err) {
			return fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("course api call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Message:    extractMessage(respBody),
		}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding %s %s: %w: %v", method, path, ErrMalformedResponse, err)
	}
	return nil
}

func extractMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if eb.Message != "" {
		return eb.Message
	}
	return eb.Error
}

func isConnectionError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
