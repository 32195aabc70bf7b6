// Package transport talks to the generation service: submit-job, get-status
// and the download endpoint the finished audio is served from.
package transport

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/krishna-deora/Synthetic-Radio-Host/config"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/dto"
	"github.com/krishna-deora/Synthetic-Radio-Host/log"
	apperrors "github.com/krishna-deora/Synthetic-Radio-Host/pkg/errors"
)

const (
	generatePath = "/api/generate"
	statusPath   = "/api/status/{job_id}"
	DownloadPath = "/api/download/"

	requestIdHeader = "X-Request-Id"
)

type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Proxy     string
	UserAgent string
}

// Client is the HTTP implementation of the session transport.
type Client struct {
	http    *resty.Client
	baseURL string
}

func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")

	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	if opts.Proxy != "" {
		c.SetProxy(opts.Proxy)
	}
	if opts.UserAgent != "" {
		c.SetHeader("User-Agent", opts.UserAgent)
	}

	c.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if r.Header.Get(requestIdHeader) == "" {
			r.SetHeader(requestIdHeader, uuid.NewString())
		}
		return nil
	})
	c.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		log.GetLogger().Debug("remote call",
			zap.String("method", resp.Request.Method),
			zap.String("url", resp.Request.URL),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("took", resp.Time()),
			zap.String("request_id", resp.Request.Header.Get(requestIdHeader)))
		return nil
	})

	return &Client{http: c, baseURL: baseURL}
}

// NewFromConfig builds a client from the [remote] config section.
func NewFromConfig(conf config.Config) *Client {
	return NewClient(Options{
		BaseURL:   conf.Remote.BaseUrl,
		Timeout:   conf.RemoteTimeout(),
		Proxy:     conf.Remote.Proxy,
		UserAgent: conf.Remote.UserAgent,
	})
}

// SubmitJob posts the topic and returns the job id assigned by the service.
func (c *Client) SubmitJob(ctx context.Context, topic string) (string, error) {
	var res dto.GenerateResData
	var errRes dto.ErrorResData

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(dto.GenerateReq{Topic: topic}).
		SetResult(&res).
		SetError(&errRes).
		Post(generatePath)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeSubmitFailed, "Failed to start generation", err)
	}
	if resp.IsError() {
		return "", apperrors.WrapWithDetail(apperrors.CodeSubmitFailed, "Failed to start generation",
			errRes.Detail, fmt.Errorf("unexpected status %d", resp.StatusCode()))
	}
	if strings.TrimSpace(res.JobId) == "" {
		return "", apperrors.New(apperrors.CodeBadResponse, "Server response has no job_id")
	}
	return res.JobId, nil
}

// GetStatus fetches the current state of a job. Any non-2xx answer, a 404
// included, is a transport failure.
func (c *Client) GetStatus(ctx context.Context, jobID string) (*dto.JobStatusResData, error) {
	var res dto.JobStatusResData
	var errRes dto.ErrorResData

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("job_id", jobID).
		SetResult(&res).
		SetError(&errRes).
		Get(statusPath)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStatusFailed, "Failed to check job status", err)
	}
	if resp.IsError() {
		return nil, apperrors.WrapWithDetail(apperrors.CodeStatusFailed, "Failed to check job status",
			errRes.Detail, fmt.Errorf("unexpected status %d", resp.StatusCode()))
	}
	if strings.TrimSpace(res.Status) == "" {
		return nil, apperrors.New(apperrors.CodeBadResponse, "Server response has no status")
	}
	return &res, nil
}

// AudioPath is the service-relative reference to a generated file.
func AudioPath(filename string) string {
	return DownloadPath + url.PathEscape(filename)
}

// DownloadURL is AudioPath resolved against the service base URL.
func (c *Client) DownloadURL(filename string) string {
	return c.baseURL + AudioPath(filename)
}

// Download stores the generated audio at dest and returns its size.
func (c *Client) Download(ctx context.Context, filename, dest string) (int64, error) {
	if strings.TrimSpace(filename) == "" {
		return 0, apperrors.New(apperrors.CodeInvalidParams, "Filename must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to create episode dir", err)
	}

	tmp := dest + ".part"
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "audio/mpeg").
		SetOutput(tmp).
		Get(AudioPath(filename))
	if err != nil {
		_ = os.Remove(tmp)
		return 0, apperrors.Wrap(apperrors.CodeDownloadFailed, "Failed to download episode", err)
	}
	if resp.IsError() {
		_ = os.Remove(tmp)
		return 0, apperrors.WrapWithDetail(apperrors.CodeDownloadFailed, "Failed to download episode",
			filename, fmt.Errorf("unexpected status %d", resp.StatusCode()))
	}

	if err = os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return 0, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to store episode", err)
	}
	info, err := os.Stat(dest)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to store episode", err)
	}
	return info.Size(), nil
}
