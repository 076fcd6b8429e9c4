package syncthing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrUnauthorized marks a request the daemon rejected for a missing or wrong
// API key. Callers should surface it instead of retrying.
var ErrUnauthorized = errors.New("api key rejected by daemon")

// idHeader carries the local device ID on every daemon response.
const idHeader = "X-Syncthing-Id"

const (
	defaultAddress   = "http://127.0.0.1:8384"
	defaultUserAgent = "synctui/0.1"
	requestTimeout   = 10 * time.Second
)

// Client talks to the Syncthing REST API. The zero value is not usable;
// construct one with NewClient.
type Client struct {
	baseURL   *url.URL
	apiKey    string
	http      *http.Client
	longPoll  *http.Client
	userAgent string
}

// NewClient builds a Client for the daemon at address, authenticating every
// request with the given API key.
func NewClient(address, apiKey string) (*Client, error) {
	base, err := parseBaseURL(address)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		// Event long-polls block until the daemon has something to say;
		// cancellation comes from the request context instead.
		longPoll:  &http.Client{},
		userAgent: defaultUserAgent,
	}, nil
}

// LocalID fetches the daemon's own device ID from the ping response header.
func (c *Client) LocalID(ctx context.Context) (string, error) {
	resp, err := c.request(ctx, c.http, http.MethodGet, &url.URL{Path: "/rest/system/ping"}, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	id := resp.Header.Get(idHeader)
	if id == "" {
		return "", fmt.Errorf("daemon did not send %s header", idHeader)
	}
	return id, nil
}

// Ping probes daemon liveness.
func (c *Client) Ping(ctx context.Context) error {
	return c.get(ctx, &url.URL{Path: "/rest/system/ping"}, nil)
}

// Configuration fetches the full daemon configuration.
func (c *Client) Configuration(ctx context.Context) (Configuration, error) {
	var cfg Configuration
	if err := c.get(ctx, &url.URL{Path: "/rest/config"}, &cfg); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}

// Events long-polls for events newer than since. It returns as soon as the
// daemon has at least one event, or an empty batch on the daemon's own
// long-poll timeout.
func (c *Client) Events(ctx context.Context, since int64) ([]Event, error) {
	values := url.Values{}
	values.Set("since", strconv.FormatInt(since, 10))
	rel := &url.URL{Path: "/rest/events", RawQuery: values.Encode()}

	resp, err := c.request(ctx, c.longPoll, http.MethodGet, rel, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return events, nil
}

// PendingDevices fetches devices that tried to connect but are not configured.
func (c *Client) PendingDevices(ctx context.Context) (PendingDevices, error) {
	var pending PendingDevices
	if err := c.get(ctx, &url.URL{Path: "/rest/cluster/pending/devices"}, &pending); err != nil {
		return nil, err
	}
	return pending, nil
}

// PendingFolders fetches folders remote devices offered but we do not share back.
func (c *Client) PendingFolders(ctx context.Context) (PendingFolders, error) {
	var pending PendingFolders
	if err := c.get(ctx, &url.URL{Path: "/rest/cluster/pending/folders"}, &pending); err != nil {
		return nil, err
	}
	return pending, nil
}

// Connections fetches the per-device transport state.
func (c *Client) Connections(ctx context.Context) (Connections, error) {
	var conns Connections
	if err := c.get(ctx, &url.URL{Path: "/rest/connections"}, &conns); err != nil {
		return Connections{}, err
	}
	return conns, nil
}

// Completion fetches sync completion. With only folder set it reports the
// local completion of that folder; with only device set it aggregates across
// everything shared with that device.
func (c *Client) Completion(ctx context.Context, folder, device string) (Completion, error) {
	values := url.Values{}
	if folder != "" {
		values.Set("folder", folder)
	}
	if device != "" {
		values.Set("device", device)
	}
	rel := &url.URL{Path: "/rest/db/completion", RawQuery: values.Encode()}
	var completion Completion
	if err := c.get(ctx, rel, &completion); err != nil {
		return Completion{}, err
	}
	return completion, nil
}

// PutFolder creates a folder, or updates it if the ID already exists.
func (c *Client) PutFolder(ctx context.Context, folder FolderConfig) error {
	return c.post(ctx, &url.URL{Path: "/rest/config/folders"}, folder)
}

// AddDevice adds a device to the daemon configuration.
func (c *Client) AddDevice(ctx context.Context, device DeviceConfig) error {
	return c.post(ctx, &url.URL{Path: "/rest/config/devices"}, device)
}

// DismissPendingDevice drops the record of a pending connection attempt. The
// device may reappear the next time it dials us.
func (c *Client) DismissPendingDevice(ctx context.Context, deviceID string) error {
	values := url.Values{}
	values.Set("device", deviceID)
	rel := &url.URL{Path: "/rest/cluster/pending/devices", RawQuery: values.Encode()}
	return c.doJSON(ctx, http.MethodDelete, rel, nil, nil)
}

// DismissPendingFolder drops a share offer. With an empty deviceID the offer
// is removed for all offering devices.
func (c *Client) DismissPendingFolder(ctx context.Context, folderID, deviceID string) error {
	values := url.Values{}
	values.Set("folder", folderID)
	if deviceID != "" {
		values.Set("device", deviceID)
	}
	rel := &url.URL{Path: "/rest/cluster/pending/folders", RawQuery: values.Encode()}
	return c.doJSON(ctx, http.MethodDelete, rel, nil, nil)
}

func (c *Client) get(ctx context.Context, rel *url.URL, dest any) error {
	return c.doJSON(ctx, http.MethodGet, rel, nil, dest)
}

func (c *Client) post(ctx context.Context, rel *url.URL, body any) error {
	return c.doJSON(ctx, http.MethodPost, rel, body, nil)
}

func (c *Client) doJSON(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	resp, err := c.request(ctx, c.http, method, rel, body)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) request(ctx context.Context, hc *http.Client, method string, rel *url.URL, body any) (*http.Response, error) {
	reqURL := c.baseURL.ResolveReference(rel)

	var payload *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(encoded)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), payload)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-API-Key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("api %s: %w", rel.Path, ErrUnauthorized)
	}
	if resp.StatusCode >= 400 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("api %s returned status %d", rel.String(), resp.StatusCode)
	}
	return resp, nil
}

func parseBaseURL(address string) (*url.URL, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		trimmed = defaultAddress
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse address %q: %w", address, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
